package controllers

import (
	"errors"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// DeliveryController 配送员控制器
type DeliveryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDeliveryController 创建配送员控制器
func NewDeliveryController(ctx *gin.Context, container *container.ServiceContainer) *DeliveryController {
	return &DeliveryController{
		Ctx:       ctx,
		Container: container,
	}
}

// AvailabilityRequest 配送员状态请求
type AvailabilityRequest struct {
	Status string `json:"status" binding:"required" example:"available"`
}

// HandleDeliveryFunc 返回一个处理配送员请求的Gin处理函数
func HandleDeliveryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDeliveryController(ctx, container)

		switch method {
		case "setAvailability":
			controller.SetAvailability()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// SetAvailability 更新当前配送员的在线状态
// @Summary      Set availability
// @Tags         Delivery
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body AvailabilityRequest true "available, busy or offline"
// @Success      200  {object}  SuccessResponse{data=models.DeliveryStaff}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /delivery/availability [patch]
func (c *DeliveryController) SetAvailability() {
	identity, ok := requireIdentity(c.Ctx)
	if !ok {
		return
	}

	var req AvailabilityRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	deliveryService := c.Container.GetService("delivery").(services.InterfaceDeliveryService)
	staff, err := deliveryService.SetAvailability(identity.UserID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			response.Fail(c.Ctx, code.ErrAvailabilityInvalid, nil)
			return
		}
		respondError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, staff)
}
