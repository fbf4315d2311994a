package container

import (
	"context"
	"sync"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"gorm.io/gorm"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config

	// 基础服务
	accountService services.InterfaceAccountService
	jwtService     services.InterfaceJWTService

	// 实时推送
	hub             *services.Hub
	redisBus        *services.RedisBus
	mqttBridge      *services.MQTTBridge
	realtimeService services.InterfaceRealtimeService

	// 业务服务
	parentService       services.InterfaceParentService
	deliveryService     services.InterfaceDeliveryService
	schoolService       services.InterfaceSchoolService
	catererService      services.InterfaceCatererService
	adminService        services.InterfaceAdminService
	dashboardService    services.InterfaceDashboardService
	orderService        services.InterfaceOrderService
	notificationService services.InterfaceNotificationService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.accountService = services.NewAccountService(c.db, c.config)
	c.jwtService = services.NewJWTService(c.config, c.accountService)

	// 初始化实时推送，Redis 和 MQTT 不可用时只做本地推送
	c.hub = services.NewHub()
	if c.config.RedisEnabled {
		bus := services.NewRedisBus(c.config, c.hub)
		if err := bus.Ping(); err != nil {
			logger.Warning("Redis连接测试失败: %v，实时事件只在本实例推送", err)
			bus.Close()
		} else {
			c.redisBus = bus
		}
	}
	if c.config.MQTTEnabled {
		bridge := services.NewMQTTBridge(c.config)
		if err := bridge.Connect(); err != nil {
			logger.Warning("MQTT服务连接失败: %v", err)
		} else {
			c.mqttBridge = bridge
		}
	}
	c.realtimeService = services.NewRealtimeService(c.hub, c.redisBus, c.mqttBridge)

	// 初始化业务服务
	c.parentService = services.NewParentService(c.db, c.config)
	c.deliveryService = services.NewDeliveryService(c.db, c.config)
	c.schoolService = services.NewSchoolService(c.db, c.config)
	c.catererService = services.NewCatererService(c.db, c.config)
	c.adminService = services.NewAdminService(c.db, c.config)
	c.dashboardService = services.NewDashboardService(c.config,
		c.parentService, c.deliveryService, c.schoolService, c.catererService, c.adminService)
	c.orderService = services.NewOrderService(c.db, c.config, c.realtimeService)
	c.notificationService = services.NewNotificationService(c.db, c.config)
}

// Start 启动后台任务，ctx 取消后停止
func (c *ServiceContainer) Start(ctx context.Context) {
	c.mu.RLock()
	bus := c.redisBus
	c.mu.RUnlock()

	if bus == nil {
		return
	}
	go func() {
		if err := bus.Run(ctx); err != nil {
			logger.Error("Redis订阅中断: %v", err)
		}
	}()
}

// Close 通知本实例的实时连接服务即将停止，然后释放外部连接
func (c *ServiceContainer) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hub != nil {
		notified := c.hub.PublishGlobal(services.Event{Event: services.EventServerShutdown})
		logger.Info("已向 %d 个实时连接发送停机通知", notified)
	}
	if c.redisBus != nil {
		c.redisBus.Close()
	}
	if c.mqttBridge != nil {
		c.mqttBridge.Disconnect()
	}
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "account":
		return c.accountService
	case "jwt":
		return c.jwtService
	case "realtime":
		return c.realtimeService
	case "parent":
		return c.parentService
	case "delivery":
		return c.deliveryService
	case "school":
		return c.schoolService
	case "caterer":
		return c.catererService
	case "admin":
		return c.adminService
	case "dashboard":
		return c.dashboardService
	case "order":
		return c.orderService
	case "notification":
		return c.notificationService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}

// GetConfig 获取配置
func (c *ServiceContainer) GetConfig() *config.Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}
