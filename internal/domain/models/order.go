package models

import (
	"time"

	"gorm.io/datatypes"
)

// OrderStatus 订单生命周期状态
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// ParseOrderStatus 校验订单状态
func ParseOrderStatus(s string) (OrderStatus, bool) {
	switch st := OrderStatus(s); st {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusInTransit, OrderStatusDelivered, OrderStatusCancelled:
		return st, true
	}
	return "", false
}

// Child 孩子信息，属于一个家长，可关联一所学校
type Child struct {
	BaseModel
	ParentID        uint                        `gorm:"index;not null" json:"parent_id"`
	SchoolID        *uint                       `gorm:"index" json:"school_id"`
	Name            string                      `gorm:"type:varchar(100);not null" json:"name"`
	Age             int                         `json:"age"`
	ClassName       string                      `gorm:"type:varchar(50)" json:"class_name"`
	Allergies       datatypes.JSONSlice[string] `json:"allergies"`
	FoodPreferences datatypes.JSONSlice[string] `json:"food_preferences"`
}

// Order 午餐订单，同时被家长、孩子、学校和配送员引用
type Order struct {
	BaseModel
	TrackingID          string      `gorm:"type:varchar(50);uniqueIndex" json:"tracking_id"`
	ParentID            uint        `gorm:"index;not null" json:"parent_id"`
	ChildID             uint        `gorm:"index;not null" json:"child_id"`
	SchoolID            uint        `gorm:"index;not null" json:"school_id"`
	DeliveryStaffID     *uint       `gorm:"index" json:"delivery_staff_id"`
	Status              OrderStatus `gorm:"type:varchar(20);default:'confirmed'" json:"status"`
	TotalAmount         float64     `gorm:"type:decimal(10,2);default:0" json:"total_amount"`
	EstimatedDeliveryAt *time.Time  `json:"estimated_delivery_at"`
	DeliveredAt         *time.Time  `json:"delivered_at"`
}

// OrderItem 订单明细
type OrderItem struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    uint    `gorm:"index;not null" json:"order_id"`
	MenuItemID uint    `gorm:"index;not null" json:"menu_item_id"`
	Quantity   int     `gorm:"default:1" json:"quantity"`
	UnitPrice  float64 `gorm:"type:decimal(10,2)" json:"unit_price"`
}

// MenuItem 菜品，属于一个餐饮供应商
type MenuItem struct {
	BaseModel
	CatererID   uint                        `gorm:"index;not null" json:"caterer_id"`
	Name        string                      `gorm:"type:varchar(100);not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Category    string                      `gorm:"type:varchar(50)" json:"category"`
	Price       float64                     `gorm:"type:decimal(10,2)" json:"price"`
	Calories    int                         `json:"calories"`
	Protein     float64                     `json:"protein"`
	Allergens   datatypes.JSONSlice[string] `json:"allergens"`
	ImageURL    string                      `gorm:"type:varchar(255)" json:"image_url"`
	IsAvailable bool                        `gorm:"default:true" json:"is_available"`
}

// Payment 订单支付记录，本服务只读取状态
type Payment struct {
	BaseModel
	OrderID uint    `gorm:"index;not null" json:"order_id"`
	Amount  float64 `gorm:"type:decimal(10,2)" json:"amount"`
	Method  string  `gorm:"type:varchar(30)" json:"method"`
	Status  string  `gorm:"type:varchar(20);default:'pending'" json:"status"`
}

// Notification 用户通知
type Notification struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	Title     string     `gorm:"type:varchar(150);not null" json:"title"`
	Message   string     `gorm:"type:text" json:"message"`
	Type      string     `gorm:"type:varchar(30)" json:"type"`
	IsRead    bool       `gorm:"default:false" json:"is_read"`
	ReadAt    *time.Time `json:"read_at"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

// All 返回需要迁移的全部模型
func All() []interface{} {
	return []interface{}{
		&User{},
		&Parent{},
		&DeliveryStaff{},
		&School{},
		&Caterer{},
		&AdminProfile{},
		&Child{},
		&MenuItem{},
		&Order{},
		&OrderItem{},
		&Payment{},
		&Notification{},
	}
}
