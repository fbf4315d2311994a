package controllers

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// ChildController 孩子管理控制器
type ChildController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewChildController 创建孩子管理控制器
func NewChildController(ctx *gin.Context, container *container.ServiceContainer) *ChildController {
	return &ChildController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleChildFunc 返回一个处理孩子请求的Gin处理函数
func HandleChildFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewChildController(ctx, container)

		switch method {
		case "addChild":
			controller.AddChild()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// AddChild 为当前家长添加孩子
// @Summary      Add child
// @Tags         Parent
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body services.AddChildInput true "Child"
// @Success      201  {object}  SuccessResponse{data=models.Child}
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /children [post]
func (c *ChildController) AddChild() {
	identity, ok := requireIdentity(c.Ctx)
	if !ok {
		return
	}

	var req services.AddChildInput
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	parentService := c.Container.GetService("parent").(services.InterfaceParentService)
	child, err := parentService.AddChild(identity.UserID, &req)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}

	response.Created(c.Ctx, "添加成功", child)
}
