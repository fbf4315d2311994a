package controllers

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/middleware"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// HealthController 健康检查控制器
type HealthController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHealthController 创建健康检查控制器
func NewHealthController(ctx *gin.Context, container *container.ServiceContainer) *HealthController {
	return &HealthController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleHealthFunc 返回一个处理健康检查请求的Gin处理函数
func HandleHealthFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHealthController(ctx, container)

		switch method {
		case "ping":
			controller.Ping()
		case "cacheStats":
			controller.CacheStats()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// Ping 健康检查，同时检查数据库连接
// @Summary      Health check
// @Description  Liveness probe including a database ping
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /ping [get]
func (c *HealthController) Ping() {
	sqlDB, err := c.Container.GetDB().DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "数据库连接异常", gin.H{"status": "unhealthy"})
		return
	}

	response.Success(c.Ctx, gin.H{
		"status":   "healthy",
		"message":  "pong",
		"database": "connected",
	})
}

// CacheStats 响应缓存统计
// @Summary      Cache statistics
// @Tags         Health
// @Produce      json
// @Success      200  {object}  SuccessResponse
// @Router       /health/cache-stats [get]
func (c *HealthController) CacheStats() {
	response.Success(c.Ctx, middleware.CacheStats())
}
