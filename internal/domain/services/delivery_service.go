package services

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceDeliveryService 配送员看板和状态接口
type InterfaceDeliveryService interface {
	GetDashboard(userID uint) (*DeliveryDashboard, error)
	SetAvailability(userID uint, status string) (*models.DeliveryStaff, error)
}

// LeaderboardEntry 排行榜条目，名次从1开始
type LeaderboardEntry struct {
	Rank            int     `json:"rank"`
	ID              uint    `json:"id"`
	DuplicateName   string  `json:"duplicate_name"`
	TotalDeliveries int     `json:"total_deliveries"`
	Rating          float64 `json:"rating"`
}

// DeliveryStats 配送员看板统计
type DeliveryStats struct {
	TotalDeliveries  int     `json:"totalDeliveries"`
	Rating           float64 `json:"rating"`
	TotalEarnings    float64 `json:"totalEarnings"`
	TodaysDeliveries int     `json:"todaysDeliveries"`
	Rank             int64   `json:"rank"`
}

// DeliveryDashboard 配送员看板
type DeliveryDashboard struct {
	DeliveryStaff models.DeliveryStaff  `json:"deliveryStaff"`
	TodaysOrders  []OrderView           `json:"todaysOrders"`
	Leaderboard   []LeaderboardEntry    `json:"leaderboard"`
	MyRank        int64                 `json:"myRank"`
	Stats         DeliveryStats         `json:"stats"`
	Notifications []models.Notification `json:"notifications"`
}

// DeliveryService 提供配送员相关的服务
type DeliveryService struct {
	DB     *gorm.DB
	Config *config.Config
	Clock  dayClock
}

// NewDeliveryService 创建配送员服务
func NewDeliveryService(db *gorm.DB, cfg *config.Config) InterfaceDeliveryService {
	return &DeliveryService{
		DB:     db,
		Config: cfg,
		Clock:  newDayClock(cfg),
	}
}

// 1 GetDashboard 组装配送员看板
func (s *DeliveryService) GetDashboard(userID uint) (*DeliveryDashboard, error) {
	var staff models.DeliveryStaff
	if err := findProfile(s.DB, userID, &staff); err != nil {
		return nil, err
	}

	start, end := s.Clock.today()
	todaysOrders := []OrderView{}
	if err := orderViewQuery(s.DB, "p.full_name AS parent_name, c.name AS child_name, s.school_name").
		Joins("LEFT JOIN parents p ON o.parent_id = p.id").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN schools s ON o.school_id = s.id").
		Where("o.delivery_staff_id = ? AND o.created_at >= ? AND o.created_at < ?", staff.ID, start, end).
		Order("o.created_at DESC, o.id DESC").
		Scan(&todaysOrders).Error; err != nil {
		return nil, err
	}

	var top []models.DeliveryStaff
	if err := s.DB.Select("id", "duplicate_name", "total_deliveries", "rating").
		Order("total_deliveries DESC, rating DESC, id ASC").
		Limit(leaderboardLimit).
		Find(&top).Error; err != nil {
		return nil, err
	}

	myRank, err := s.rankOf(&staff)
	if err != nil {
		return nil, err
	}

	notifications, err := unreadNotifications(s.DB, userID, unreadNotificationLimit)
	if err != nil {
		return nil, err
	}

	return &DeliveryDashboard{
		DeliveryStaff: staff,
		TodaysOrders:  todaysOrders,
		Leaderboard:   rankLeaderboard(top),
		MyRank:        myRank,
		Stats: DeliveryStats{
			TotalDeliveries:  staff.TotalDeliveries,
			Rating:           staff.Rating,
			TotalEarnings:    staff.TotalEarnings,
			TodaysDeliveries: len(todaysOrders),
			Rank:             myRank,
		},
		Notifications: notifications,
	}, nil
}

// rankOf 统计排在该配送员之前的人数，排序规则与排行榜一致
func (s *DeliveryService) rankOf(staff *models.DeliveryStaff) (int64, error) {
	var ahead int64
	err := s.DB.Model(&models.DeliveryStaff{}).
		Where("total_deliveries > ?", staff.TotalDeliveries).
		Or("total_deliveries = ? AND rating > ?", staff.TotalDeliveries, staff.Rating).
		Or("total_deliveries = ? AND rating = ? AND id < ?", staff.TotalDeliveries, staff.Rating, staff.ID).
		Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return ahead + 1, nil
}

// rankLeaderboard 按已排序的列表分配名次
func rankLeaderboard(staff []models.DeliveryStaff) []LeaderboardEntry {
	entries := make([]LeaderboardEntry, 0, len(staff))
	for i, st := range staff {
		entries = append(entries, LeaderboardEntry{
			Rank:            i + 1,
			ID:              st.ID,
			DuplicateName:   st.DuplicateName,
			TotalDeliveries: st.TotalDeliveries,
			Rating:          st.Rating,
		})
	}
	return entries
}

// 2 SetAvailability 更新配送员在线状态
func (s *DeliveryService) SetAvailability(userID uint, status string) (*models.DeliveryStaff, error) {
	availability, ok := models.ParseAvailability(status)
	if !ok {
		return nil, ErrInvalidArgument
	}

	var staff models.DeliveryStaff
	if err := findProfile(s.DB, userID, &staff); err != nil {
		return nil, err
	}

	if err := s.DB.Model(&staff).Update("status", availability).Error; err != nil {
		return nil, err
	}
	staff.Status = availability
	return &staff, nil
}
