package controllers

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/services/container"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/code"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/error/response"

	"github.com/gin-gonic/gin"
)

// NotificationController 通知控制器
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "list":
			controller.List()
		case "markRead":
			controller.MarkRead()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// List 当前账户最新的通知
// @Summary      List notifications
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SuccessResponse{data=[]models.Notification}
// @Failure      401  {object}  ErrorResponse
// @Router       /notifications [get]
func (c *NotificationController) List() {
	identity, ok := requireIdentity(c.Ctx)
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notifications, err := notificationService.List(identity.UserID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, notifications)
}

// MarkRead 标记通知已读
// @Summary      Mark notification read
// @Tags         Notifications
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Notification ID"
// @Success      200  {object}  SuccessResponse{data=models.Notification}
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [patch]
func (c *NotificationController) MarkRead() {
	identity, ok := requireIdentity(c.Ctx)
	if !ok {
		return
	}

	notificationID, ok := parseID(c.Ctx, "id")
	if !ok {
		return
	}

	notificationService := c.Container.GetService("notification").(services.InterfaceNotificationService)
	notification, err := notificationService.MarkRead(identity.UserID, notificationID)
	if err != nil {
		respondError(c.Ctx, err)
		return
	}
	response.Success(c.Ctx, notification)
}
