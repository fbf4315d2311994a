package controllers

import (
	"errors"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// OrderController 订单控制器
type OrderController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewOrderController 创建订单控制器
func NewOrderController(ctx *gin.Context, container *container.ServiceContainer) *OrderController {
	return &OrderController{
		Ctx:       ctx,
		Container: container,
	}
}

// OrderStatusRequest 订单状态请求
type OrderStatusRequest struct {
	Status string `json:"status" binding:"required" example:"in_transit"`
}

// HandleOrderFunc 返回一个处理订单请求的Gin处理函数
func HandleOrderFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewOrderController(ctx, container)

		switch method {
		case "updateStatus":
			controller.UpdateStatus()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// UpdateStatus 更新订单状态并推送给相关账户
// @Summary      Update order status
// @Tags         Orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                 true  "Order ID"
// @Param        request  body  OrderStatusRequest  true  "pending, confirmed, in_transit, delivered or cancelled"
// @Success      200  {object}  SuccessResponse{data=models.Order}
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /orders/{id}/status [patch]
func (c *OrderController) UpdateStatus() {
	if _, ok := requireIdentity(c.Ctx); !ok {
		return
	}

	orderID, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	var req OrderStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrBind, "无效的请求参数", nil)
		return
	}

	orderService := c.Container.GetService("order").(services.InterfaceOrderService)
	order, err := orderService.SetStatus(orderID, req.Status)
	if err != nil {
		if errors.Is(err, services.ErrInvalidArgument) {
			response.Fail(c.Ctx, code.ErrOrderStatusInvalid, nil)
			return
		}
		respondError(c.Ctx, err)
		return
	}

	response.Success(c.Ctx, order)
}
