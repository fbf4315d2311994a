package services

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceAdminService 管理员看板接口
type InterfaceAdminService interface {
	GetDashboard(userID uint) (*AdminDashboard, error)
}

// RoleCount 按角色统计的账户数
type RoleCount struct {
	Role  models.Role `json:"role"`
	Count int64       `json:"count"`
}

// AvailabilityCount 按在线状态统计的配送员数
type AvailabilityCount struct {
	Status models.Availability `json:"status"`
	Count  int64               `json:"count"`
}

// OrderTotals 订单汇总，没有订单时金额为0
type OrderTotals struct {
	TotalOrders   int64   `json:"totalOrders"`
	TodaysOrders  int64   `json:"todaysOrders"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TodaysRevenue float64 `json:"todaysRevenue"`
}

// AdminDashboard 管理员看板
type AdminDashboard struct {
	UserStats     []RoleCount         `json:"userStats"`
	OrderStats    OrderTotals         `json:"orderStats"`
	DeliveryStats []AvailabilityCount `json:"deliveryStats"`
	RecentOrders  []OrderView         `json:"recentOrders"`
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
	Clock  dayClock
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
		Clock:  newDayClock(cfg),
	}
}

// 1 GetDashboard 组装全平台看板
func (s *AdminService) GetDashboard(userID uint) (*AdminDashboard, error) {
	var admin models.AdminProfile
	if err := findProfile(s.DB, userID, &admin); err != nil {
		return nil, err
	}

	userStats := []RoleCount{}
	if err := s.DB.Model(&models.User{}).
		Select("role, COUNT(*) AS count").
		Group("role").
		Order("role").
		Scan(&userStats).Error; err != nil {
		return nil, err
	}

	start, end := s.Clock.today()
	var totals OrderTotals
	if err := s.DB.Model(&models.Order{}).
		Select("COUNT(*) AS total_orders, "+
			"COALESCE(SUM(CASE WHEN created_at >= ? AND created_at < ? THEN 1 ELSE 0 END), 0) AS todays_orders, "+
			"COALESCE(SUM(total_amount), 0) AS total_revenue, "+
			"COALESCE(SUM(CASE WHEN created_at >= ? AND created_at < ? THEN total_amount ELSE 0 END), 0) AS todays_revenue",
			start, end, start, end).
		Scan(&totals).Error; err != nil {
		return nil, err
	}

	deliveryStats := []AvailabilityCount{}
	if err := s.DB.Model(&models.DeliveryStaff{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Order("status").
		Scan(&deliveryStats).Error; err != nil {
		return nil, err
	}

	recentOrders := []OrderView{}
	if err := orderViewQuery(s.DB, "c.name AS child_name, s.school_name, p.full_name AS parent_name").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN schools s ON o.school_id = s.id").
		Joins("LEFT JOIN parents p ON o.parent_id = p.id").
		Order("o.created_at DESC, o.id DESC").
		Limit(recentOrderLimit).
		Scan(&recentOrders).Error; err != nil {
		return nil, err
	}

	return &AdminDashboard{
		UserStats:     userStats,
		OrderStats:    totals,
		DeliveryStats: deliveryStats,
		RecentOrders:  recentOrders,
	}, nil
}
