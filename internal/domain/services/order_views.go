package services

import (
	"errors"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

const (
	unreadNotificationLimit = 5
	recentOrderLimit        = 10
	catererOrderLimit       = 20
	leaderboardLimit        = 10
)

// OrderView 订单及关联的展示名称，不同看板只填充各自需要的名称
type OrderView struct {
	models.Order
	ChildName      *string `json:"child_name,omitempty"`
	SchoolName     *string `json:"school_name,omitempty"`
	ParentName     *string `json:"parent_name,omitempty"`
	DeliveryPerson *string `json:"delivery_person,omitempty"`
	PaymentStatus  *string `json:"payment_status,omitempty"`
}

// ChildView 孩子信息及学校名称
type ChildView struct {
	models.Child
	SchoolName *string `json:"school_name"`
}

// dayClock 提供"今日"时间窗口，所有看板共用
type dayClock struct {
	Now      func() time.Time
	Location *time.Location
}

func newDayClock(cfg *config.Config) dayClock {
	loc := time.Local
	if cfg != nil {
		loc = cfg.Location()
	}
	return dayClock{Now: time.Now, Location: loc}
}

// today 返回 [当日零点, 次日零点)
func (c dayClock) today() (time.Time, time.Time) {
	now := c.Now().In(c.Location)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.Location)
	return start, start.AddDate(0, 0, 1)
}

// orderViewQuery 订单查询的公共部分
func orderViewQuery(db *gorm.DB, selects string) *gorm.DB {
	return db.Table("orders AS o").Select("o.*, " + selects)
}

// unreadNotifications 获取用户最新的未读通知
func unreadNotifications(db *gorm.DB, userID uint, limit int) ([]models.Notification, error) {
	notifications := []models.Notification{}
	err := db.Where("user_id = ? AND is_read = ?", userID, false).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&notifications).Error
	return notifications, err
}

// findProfile 按账户ID查找角色资料，不存在时返回 ErrProfileNotFound
func findProfile(db *gorm.DB, userID uint, dest interface{}) error {
	err := db.Where("user_id = ?", userID).First(dest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProfileNotFound
	}
	return err
}
