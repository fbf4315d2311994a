package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"

	"gorm.io/gorm"
)

// InterfaceOrderService 订单状态接口
type InterfaceOrderService interface {
	SetStatus(orderID uint, status string) (*models.Order, error)
}

// OrderService 更新订单状态并通知相关账户
type OrderService struct {
	DB       *gorm.DB
	Config   *config.Config
	Realtime InterfaceRealtimeService
	now      func() time.Time
}

// NewOrderService 创建订单服务，realtime 为 nil 时不推送事件
func NewOrderService(db *gorm.DB, cfg *config.Config, realtime InterfaceRealtimeService) InterfaceOrderService {
	return &OrderService{
		DB:       db,
		Config:   cfg,
		Realtime: realtime,
		now:      time.Now,
	}
}

// WithClock 替换时钟
func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

// 1 SetStatus 更新订单状态，送达时记录送达时间；成功后通知家长、学校和配送员
func (s *OrderService) SetStatus(orderID uint, status string) (*models.Order, error) {
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, ErrInvalidArgument
	}

	var order models.Order
	var recipients []uint
	now := s.now()

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		updates := map[string]interface{}{
			"status":     st,
			"updated_at": now,
		}
		if st == models.OrderStatusDelivered {
			updates["delivered_at"] = now
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", order.ID).Updates(updates).Error; err != nil {
			return err
		}
		order.Status = st
		order.UpdatedAt = now
		if st == models.OrderStatusDelivered {
			deliveredAt := now
			order.DeliveredAt = &deliveredAt
		}

		parentUserID, err := profileUserID(tx, "parents", order.ParentID)
		if err != nil {
			return err
		}
		schoolUserID, err := profileUserID(tx, "schools", order.SchoolID)
		if err != nil {
			return err
		}
		var staffUserID uint
		if order.DeliveryStaffID != nil {
			if staffUserID, err = profileUserID(tx, "delivery_staff", *order.DeliveryStaffID); err != nil {
				return err
			}
		}
		recipients = []uint{parentUserID, schoolUserID, staffUserID}

		if parentUserID == 0 {
			return nil
		}
		return tx.Create(&models.Notification{
			UserID:    parentUserID,
			Title:     "订单状态更新",
			Message:   fmt.Sprintf("订单 %s 的状态已更新为 %s", order.TrackingID, st),
			Type:      "order",
			CreatedAt: now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	logger.Info("订单状态已更新: order_id=%d status=%s", order.ID, st)

	if s.Realtime != nil {
		s.Realtime.NotifyUsers(recipients, Event{
			Event: EventOrderStatusUpdated,
			Data: OrderStatusEvent{
				OrderID:    order.ID,
				Status:     st,
				TrackingID: order.TrackingID,
			},
		})
	}
	return &order, nil
}

// profileUserID 查询角色资料对应的账户ID，资料不存在时返回0
func profileUserID(tx *gorm.DB, table string, profileID uint) (uint, error) {
	var userIDs []uint
	if err := tx.Table(table).Where("id = ?", profileID).Limit(1).Pluck("user_id", &userIDs).Error; err != nil {
		return 0, err
	}
	if len(userIDs) == 0 {
		return 0, nil
	}
	return userIDs[0], nil
}
