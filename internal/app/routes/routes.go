package routes

import (
	"time"

	_ "github.com/Samanvis-dev/LunchBoxExpress/docs"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/controllers"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/app/middleware"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// dashboardCacheTTL 看板数据的缓存时间
const dashboardCacheTTL = 5 * time.Second

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(serviceContainer *container.ServiceContainer) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()
	cfg := serviceContainer.GetConfig()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", cfg.CORSOrigin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, Accept, Origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// 初始化中间件
	middleware.InitAuthMiddleware(serviceContainer.GetService("jwt").(services.InterfaceJWTService))
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// jsonContentType 设置正确的Content-Type，确保UTF-8编码
func jsonContentType() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	}
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// websocket 连接不能带 JSON 的 Content-Type
	r.GET("/ws", middleware.IPRateLimiter(2, 10), controllers.HandleRealtimeFunc(container, "connect"))

	// API 路由根路径
	api := r.Group("/api")
	api.Use(jsonContentType())
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 每秒允许10个请求，最多突发20个请求
	public := api.Group("")
	public.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	public.GET("/ping", controllers.HandleHealthFunc(container, "ping"))
	public.GET("/health", controllers.HandleHealthFunc(container, "ping"))
	public.GET("/health/cache-stats", controllers.HandleHealthFunc(container, "cacheStats"))

	// 认证路由，登录和注册单独限流
	authGroup := public.Group("/auth")
	authGroup.Use(middleware.PathRateLimiter(5, 10))
	authGroup.POST("/login", controllers.HandleJWTFunc(container, "login"))
	authGroup.POST("/register", middleware.PurgeOnSuccess(), controllers.HandleJWTFunc(container, "register"))

	// 公开列表
	public.GET("/schools", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleCatalogFunc(container, "listSchools"))
	public.GET("/caterers", middleware.Cache(middleware.CacheConfig{Expiration: 30 * time.Second}), controllers.HandleCatalogFunc(container, "listCaterers"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("")
	auth.Use(middleware.Authentication())

	// 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	// 看板
	auth.GET("/dashboard/:role", middleware.CachePerUser(dashboardCacheTTL), controllers.HandleDashboardFunc(container, "getDashboard"))

	// 家长
	auth.POST("/children", middleware.PurgeOnSuccess(middleware.UserCacheNamespace), controllers.HandleChildFunc(container, "addChild"))

	// 配送员
	auth.PATCH("/delivery/availability", middleware.PurgeOnSuccess(middleware.UserCacheNamespace), controllers.HandleDeliveryFunc(container, "setAvailability"))

	// 订单
	auth.PATCH("/orders/:id/status", middleware.PurgeOnSuccess(middleware.UserCacheNamespace), controllers.HandleOrderFunc(container, "updateStatus"))

	// 通知
	notificationGroup := auth.Group("/notifications")
	notificationGroup.GET("", controllers.HandleNotificationFunc(container, "list"))
	notificationGroup.PATCH("/:id/read", middleware.PurgeOnSuccess(middleware.UserCacheNamespace), controllers.HandleNotificationFunc(container, "markRead"))
}
