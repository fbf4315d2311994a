package services

import (
	"errors"
	"strings"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceParentService 家长看板和孩子管理接口
type InterfaceParentService interface {
	GetDashboard(userID uint) (*ParentDashboard, error)
	AddChild(userID uint, input *AddChildInput) (*models.Child, error)
}

// ParentStats 家长看板统计
type ParentStats struct {
	ChildrenCount     int   `json:"childrenCount"`
	TodaysOrdersCount int   `json:"todaysOrdersCount"`
	TotalOrders       int64 `json:"totalOrders"`
	LoyaltyPoints     int   `json:"loyaltyPoints"`
}

// ParentDashboard 家长看板
type ParentDashboard struct {
	Parent        models.Parent         `json:"parent"`
	Children      []ChildView           `json:"children"`
	TodaysOrders  []OrderView           `json:"todaysOrders"`
	RecentOrders  []OrderView           `json:"recentOrders"`
	Stats         ParentStats           `json:"stats"`
	Notifications []models.Notification `json:"notifications"`
}

// AddChildInput 添加孩子请求
type AddChildInput struct {
	Name            string   `json:"name" binding:"required" example:"Aarav"`
	Age             int      `json:"age" binding:"gte=0,lte=25" example:"8"`
	ClassName       string   `json:"className" example:"3A"`
	SchoolID        *uint    `json:"schoolId" example:"1"`
	Allergies       []string `json:"allergies"`
	FoodPreferences []string `json:"foodPreferences"`
}

// ParentService 提供家长相关的服务
type ParentService struct {
	DB     *gorm.DB
	Config *config.Config
	Clock  dayClock
}

// NewParentService 创建家长服务
func NewParentService(db *gorm.DB, cfg *config.Config) InterfaceParentService {
	return &ParentService{
		DB:     db,
		Config: cfg,
		Clock:  newDayClock(cfg),
	}
}

// 1 GetDashboard 组装家长看板
func (s *ParentService) GetDashboard(userID uint) (*ParentDashboard, error) {
	var parent models.Parent
	if err := findProfile(s.DB, userID, &parent); err != nil {
		return nil, err
	}

	children := []ChildView{}
	if err := s.DB.Table("children AS c").
		Select("c.*, s.school_name").
		Joins("LEFT JOIN schools s ON c.school_id = s.id").
		Where("c.parent_id = ?", parent.ID).
		Order("c.id").
		Scan(&children).Error; err != nil {
		return nil, err
	}

	start, end := s.Clock.today()
	todaysOrders := []OrderView{}
	if err := orderViewQuery(s.DB, "c.name AS child_name, s.school_name, ds.duplicate_name AS delivery_person").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN schools s ON o.school_id = s.id").
		Joins("LEFT JOIN delivery_staff ds ON o.delivery_staff_id = ds.id").
		Where("o.parent_id = ? AND o.created_at >= ? AND o.created_at < ?", parent.ID, start, end).
		Order("o.created_at DESC, o.id DESC").
		Scan(&todaysOrders).Error; err != nil {
		return nil, err
	}

	recentOrders := []OrderView{}
	if err := orderViewQuery(s.DB, "c.name AS child_name, s.school_name, "+
		"(SELECT p.status FROM payments p WHERE p.order_id = o.id ORDER BY p.id DESC LIMIT 1) AS payment_status").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN schools s ON o.school_id = s.id").
		Where("o.parent_id = ?", parent.ID).
		Order("o.created_at DESC, o.id DESC").
		Limit(recentOrderLimit).
		Scan(&recentOrders).Error; err != nil {
		return nil, err
	}

	var totalOrders int64
	if err := s.DB.Model(&models.Order{}).Where("parent_id = ?", parent.ID).Count(&totalOrders).Error; err != nil {
		return nil, err
	}

	notifications, err := unreadNotifications(s.DB, userID, unreadNotificationLimit)
	if err != nil {
		return nil, err
	}

	return &ParentDashboard{
		Parent:       parent,
		Children:     children,
		TodaysOrders: todaysOrders,
		RecentOrders: recentOrders,
		Stats: ParentStats{
			ChildrenCount:     len(children),
			TodaysOrdersCount: len(todaysOrders),
			TotalOrders:       totalOrders,
			LoyaltyPoints:     parent.LoyaltyPoints,
		},
		Notifications: notifications,
	}, nil
}

// 2 AddChild 为当前家长添加孩子
func (s *ParentService) AddChild(userID uint, input *AddChildInput) (*models.Child, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" || input.Age < 0 {
		return nil, ErrInvalidArgument
	}

	var parent models.Parent
	if err := findProfile(s.DB, userID, &parent); err != nil {
		return nil, err
	}

	if input.SchoolID != nil {
		var school models.School
		if err := s.DB.Select("id").First(&school, *input.SchoolID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrSchoolNotFound
			}
			return nil, err
		}
	}

	child := &models.Child{
		ParentID:        parent.ID,
		SchoolID:        input.SchoolID,
		Name:            name,
		Age:             input.Age,
		ClassName:       strings.TrimSpace(input.ClassName),
		Allergies:       nonNil(input.Allergies),
		FoodPreferences: nonNil(input.FoodPreferences),
	}
	if err := s.DB.Create(child).Error; err != nil {
		return nil, err
	}
	return child, nil
}
