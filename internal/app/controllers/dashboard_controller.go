package controllers

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// DashboardController 角色看板控制器
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建看板控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 返回一个处理看板请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetDashboard 获取角色看板
// @Summary      Role dashboard
// @Description  Aggregated view for parent, delivery_staff, school_admin, caterer or admin, always scoped to the caller's own profile
// @Tags         Dashboard
// @Produce      json
// @Security     BearerAuth
// @Param        role  path  string  true  "Role view"  Enums(parent, delivery_staff, school_admin, caterer, admin)
// @Success      200  {object}  SuccessResponse
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /dashboard/{role} [get]
func (c *DashboardController) GetDashboard() {
	identity, ok := requireIdentity(c.Ctx)
	if !ok {
		return
	}

	dashboardService := c.Container.GetService("dashboard").(services.InterfaceDashboardService)
	view, err := dashboardService.GetDashboard(identity, c.Ctx.Param("role"))
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, view)
}
