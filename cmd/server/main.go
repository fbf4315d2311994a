// @title           LunchBox Express API
// @version         1.0
// @description     School lunch delivery platform: role dashboards, order tracking and realtime notifications

// @BasePath  /api

// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Enter the token with the `Bearer ` prefix
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/routes"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/database"
	Logger "github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件，失败时继续使用已有的环境变量
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()
	if cfg.EnvType == "SERVER" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		Logger.Error("无法创建数据库连接池: %v", err)
		os.Exit(1)
	}
	defer pool.Close()
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	if cfg.DBMigrationMode == "drop" {
		Logger.Warning("在drop模式下运行，将删除并重建所有表")
		err = dropAndRecreateTables(db)
	} else {
		Logger.Info("在标准模式下运行，将只添加新列和新表")
		err = autoMigrate(db)
	}
	if err != nil {
		Logger.Error("数据库迁移失败: %v", err)
		os.Exit(1)
	}

	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg)
	defer serviceContainer.Close()

	// 确保系统中有管理员账户
	accounts := serviceContainer.GetService("account").(services.InterfaceAccountService)
	if err := accounts.EnsureAdmin(); err != nil {
		Logger.Error("创建默认管理员失败: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	serviceContainer.Start(ctx)

	// 初始化路由
	r := routes.SetupRouter(serviceContainer)

	printSystemInfo(pool)

	// 监听所有接口
	Logger.Info("服务器启动在: http://0.0.0.0:%s", cfg.ServerPort)
	if err := r.Run("0.0.0.0:" + cfg.ServerPort); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	Logger.Info("数据库迁移完成")
	return nil
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	tables := models.All()
	// 按依赖的反序删除
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			Logger.Warning("删除表失败: %v", err)
		}
	}
	return autoMigrate(db)
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	stats, err := pool.Stats()
	if err == nil {
		Logger.Info("数据库连接池状态: %+v", stats)
	}

	Logger.Info("系统CPU核心数: %d", runtime.NumCPU())
	Logger.Info("当前Go协程数: %d", runtime.NumGoroutine())

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	Logger.Info("系统内存使用: Alloc=%v MiB, Sys=%v MiB", m.Alloc/1024/1024, m.Sys/1024/1024)
}
