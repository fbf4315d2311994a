package services

import (
	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceCatererService 餐饮供应商看板接口
type InterfaceCatererService interface {
	GetDashboard(userID uint) (*CatererDashboard, error)
	ListCaterers() ([]CatererListing, error)
}

// CatererStats 供应商看板统计
type CatererStats struct {
	TotalMenuItems  int     `json:"totalMenuItems"`
	ActiveMenuItems int     `json:"activeMenuItems"`
	TotalOrders     int     `json:"totalOrders"`
	Rating          float64 `json:"rating"`
}

// CatererDashboard 供应商看板
type CatererDashboard struct {
	Caterer   models.Caterer    `json:"caterer"`
	MenuItems []models.MenuItem `json:"menuItems"`
	Orders    []OrderView       `json:"orders"`
	Stats     CatererStats      `json:"stats"`
}

// CatererListing 公开列表中的供应商，没有可售菜品时 menu_items 为空数组
type CatererListing struct {
	models.Caterer
	MenuItems []models.MenuItem `json:"menu_items"`
}

// CatererService 提供餐饮供应商相关的服务
type CatererService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewCatererService 创建供应商服务
func NewCatererService(db *gorm.DB, cfg *config.Config) InterfaceCatererService {
	return &CatererService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetDashboard 组装供应商看板
func (s *CatererService) GetDashboard(userID uint) (*CatererDashboard, error) {
	var caterer models.Caterer
	if err := findProfile(s.DB, userID, &caterer); err != nil {
		return nil, err
	}

	menuItems := []models.MenuItem{}
	if err := s.DB.Where("caterer_id = ?", caterer.ID).
		Order("created_at DESC, id DESC").
		Find(&menuItems).Error; err != nil {
		return nil, err
	}

	// 一个订单包含多个本店菜品时只返回一次
	containing := s.DB.Table("order_items AS oi").
		Select("oi.order_id").
		Joins("JOIN menu_items mi ON oi.menu_item_id = mi.id").
		Where("mi.caterer_id = ?", caterer.ID)

	orders := []OrderView{}
	if err := orderViewQuery(s.DB, "c.name AS child_name, s.school_name").
		Joins("LEFT JOIN children c ON o.child_id = c.id").
		Joins("LEFT JOIN schools s ON o.school_id = s.id").
		Where("o.id IN (?)", containing).
		Order("o.created_at DESC, o.id DESC").
		Limit(catererOrderLimit).
		Scan(&orders).Error; err != nil {
		return nil, err
	}

	active := 0
	for _, item := range menuItems {
		if item.IsAvailable {
			active++
		}
	}

	return &CatererDashboard{
		Caterer:   caterer,
		MenuItems: menuItems,
		Orders:    orders,
		Stats: CatererStats{
			TotalMenuItems:  len(menuItems),
			ActiveMenuItems: active,
			TotalOrders:     len(orders),
			Rating:          caterer.Rating,
		},
	}, nil
}

// 2 ListCaterers 公开的供应商列表，只带可售菜品
func (s *CatererService) ListCaterers() ([]CatererListing, error) {
	var caterers []models.Caterer
	err := s.DB.Where("is_active = ?", true).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_available = ?", true).Order("id")
		}).
		Order("rating DESC, id ASC").
		Find(&caterers).Error
	if err != nil {
		return nil, err
	}

	listings := make([]CatererListing, 0, len(caterers))
	for _, c := range caterers {
		items := c.MenuItems
		if items == nil {
			items = []models.MenuItem{}
		}
		c.MenuItems = nil
		listings = append(listings, CatererListing{Caterer: c, MenuItems: items})
	}
	return listings, nil
}
