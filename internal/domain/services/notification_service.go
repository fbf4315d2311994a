package services

import (
	"errors"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

const notificationListLimit = 20

// InterfaceNotificationService 通知接口
type InterfaceNotificationService interface {
	List(userID uint) ([]models.Notification, error)
	MarkRead(userID, notificationID uint) (*models.Notification, error)
}

// NotificationService 提供通知相关的服务
type NotificationService struct {
	DB     *gorm.DB
	Config *config.Config
	now    func() time.Time
}

// NewNotificationService 创建通知服务
func NewNotificationService(db *gorm.DB, cfg *config.Config) InterfaceNotificationService {
	return &NotificationService{
		DB:     db,
		Config: cfg,
		now:    time.Now,
	}
}

// 1 List 返回账户最新的20条通知
func (s *NotificationService) List(userID uint) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := s.DB.Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(notificationListLimit).
		Find(&notifications).Error
	return notifications, err
}

// 2 MarkRead 标记通知已读，重复调用结果不变；只能操作自己的通知
func (s *NotificationService) MarkRead(userID, notificationID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.DB.Where("id = ? AND user_id = ?", notificationID, userID).First(&notification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotificationNotFound
		}
		return nil, err
	}

	if notification.IsRead {
		return &notification, nil
	}

	readAt := s.now()
	if err := s.DB.Model(&models.Notification{}).
		Where("id = ?", notification.ID).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error; err != nil {
		return nil, err
	}
	notification.IsRead = true
	notification.ReadAt = &readAt
	return &notification, nil
}
