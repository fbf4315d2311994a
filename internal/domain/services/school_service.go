package services

import (
	"sort"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceSchoolService 学校看板接口
type InterfaceSchoolService interface {
	GetDashboard(userID uint) (*SchoolDashboard, error)
	ListSchools() ([]SchoolOption, error)
}

// ClassSummary 班级当日的午餐送达情况
type ClassSummary struct {
	ClassName     string `json:"class_name"`
	ExpectedToday int64  `json:"expected_today"`
	ReceivedToday int64  `json:"received_today"`
	PendingToday  int64  `json:"pending_today"`
}

// SchoolStats 学校看板统计
type SchoolStats struct {
	TotalExpected int `json:"totalExpected"`
	TotalReceived int `json:"totalReceived"`
	TotalMissing  int `json:"totalMissing"`
}

// SchoolDashboard 学校看板
type SchoolDashboard struct {
	School       models.School  `json:"school"`
	TodaysOrders []OrderView    `json:"todaysOrders"`
	ClassSummary []ClassSummary `json:"classSummary"`
	Stats        SchoolStats    `json:"stats"`
}

// SchoolOption 公开的学校列表项
type SchoolOption struct {
	ID         uint   `json:"id"`
	SchoolName string `json:"school_name"`
}

// SchoolService 提供学校相关的服务
type SchoolService struct {
	DB     *gorm.DB
	Config *config.Config
	Clock  dayClock
}

// NewSchoolService 创建学校服务
func NewSchoolService(db *gorm.DB, cfg *config.Config) InterfaceSchoolService {
	return &SchoolService{
		DB:     db,
		Config: cfg,
		Clock:  newDayClock(cfg),
	}
}

// 1 GetDashboard 组装学校看板
func (s *SchoolService) GetDashboard(userID uint) (*SchoolDashboard, error) {
	var school models.School
	if err := findProfile(s.DB, userID, &school); err != nil {
		return nil, err
	}

	start, end := s.Clock.today()
	todaysOrders := []OrderView{}
	if err := orderViewQuery(s.DB, "c.name AS child_name, p.full_name AS parent_name, ds.duplicate_name AS delivery_person").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN parents p ON o.parent_id = p.id").
		Joins("LEFT JOIN delivery_staff ds ON o.delivery_staff_id = ds.id").
		Where("o.school_id = ? AND o.created_at >= ? AND o.created_at < ?", school.ID, start, end).
		Order("o.created_at DESC, o.id DESC").
		Scan(&todaysOrders).Error; err != nil {
		return nil, err
	}

	summary, err := s.classSummary(school.ID, start, end)
	if err != nil {
		return nil, err
	}

	return &SchoolDashboard{
		School:       school,
		TodaysOrders: todaysOrders,
		ClassSummary: summary,
		Stats:        summarizeDeliveries(todaysOrders),
	}, nil
}

// classSummary 按班级统计当日订单，订单集合与当日订单列表一致；本校没有订单的班级也列出
func (s *SchoolService) classSummary(schoolID uint, start, end time.Time) ([]ClassSummary, error) {
	summary := []ClassSummary{}
	if err := s.DB.Table("orders AS o").
		Select("COALESCE(c.class_name, '') AS class_name, "+
			"COUNT(o.id) AS expected_today, "+
			"SUM(CASE WHEN o.status = ? THEN 1 ELSE 0 END) AS received_today, "+
			"SUM(CASE WHEN o.status NOT IN (?, ?) THEN 1 ELSE 0 END) AS pending_today",
			models.OrderStatusDelivered, models.OrderStatusDelivered, models.OrderStatusCancelled).
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Where("o.school_id = ? AND o.created_at >= ? AND o.created_at < ?", schoolID, start, end).
		Group("COALESCE(c.class_name, '')").
		Scan(&summary).Error; err != nil {
		return nil, err
	}

	var classes []string
	if err := s.DB.Model(&models.Child{}).
		Where("school_id = ? AND class_name <> ''", schoolID).
		Distinct().
		Pluck("class_name", &classes).Error; err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(summary))
	for _, row := range summary {
		seen[row.ClassName] = struct{}{}
	}
	for _, name := range classes {
		if _, ok := seen[name]; !ok {
			summary = append(summary, ClassSummary{ClassName: name})
			seen[name] = struct{}{}
		}
	}

	sort.Slice(summary, func(i, j int) bool {
		return summary[i].ClassName < summary[j].ClassName
	})
	return summary, nil
}

// summarizeDeliveries 根据当日订单计算送达统计，已取消的订单不计为缺失
func summarizeDeliveries(orders []OrderView) SchoolStats {
	stats := SchoolStats{TotalExpected: len(orders)}
	for _, o := range orders {
		switch o.Status {
		case models.OrderStatusDelivered:
			stats.TotalReceived++
		case models.OrderStatusCancelled:
		default:
			stats.TotalMissing++
		}
	}
	return stats
}

// 2 ListSchools 公开的学校列表，按名称排序
func (s *SchoolService) ListSchools() ([]SchoolOption, error) {
	schools := []SchoolOption{}
	err := s.DB.Model(&models.School{}).
		Select("id, school_name").
		Order("school_name").
		Scan(&schools).Error
	return schools, err
}
