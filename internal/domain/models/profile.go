package models

import "gorm.io/datatypes"

// Availability 配送员在线状态
type Availability string

const (
	AvailabilityAvailable Availability = "available"
	AvailabilityBusy      Availability = "busy"
	AvailabilityOffline   Availability = "offline"
)

// ParseAvailability 校验配送员状态
func ParseAvailability(s string) (Availability, bool) {
	switch a := Availability(s); a {
	case AvailabilityAvailable, AvailabilityBusy, AvailabilityOffline:
		return a, true
	}
	return "", false
}

// Parent 家长资料
type Parent struct {
	BaseModel
	UserID        uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName      string `gorm:"type:varchar(100);not null" json:"full_name"`
	HouseNumber   string `gorm:"type:varchar(50)" json:"house_number"`
	LocationName  string `gorm:"type:varchar(100)" json:"location_name"`
	CityName      string `gorm:"type:varchar(100)" json:"city_name"`
	FullAddress   string `gorm:"type:text" json:"full_address"`
	LoyaltyPoints int    `gorm:"default:0" json:"loyalty_points"`
}

// DeliveryStaff 配送员资料
type DeliveryStaff struct {
	BaseModel
	UserID          uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName        string                      `gorm:"type:varchar(100);not null" json:"full_name"`
	DuplicateName   string                      `gorm:"type:varchar(100)" json:"duplicate_name"` // 对外展示的昵称
	VehicleType     string                      `gorm:"type:varchar(50)" json:"vehicle_type"`
	VehicleNumber   string                      `gorm:"type:varchar(50)" json:"vehicle_number"`
	ServiceAreas    datatypes.JSONSlice[string] `json:"service_areas"`
	Address         string                      `gorm:"type:text" json:"address"`
	Status          Availability                `gorm:"type:varchar(20);default:'offline'" json:"status"`
	Rating          float64                     `gorm:"default:0" json:"rating"`
	TotalDeliveries int                         `gorm:"default:0" json:"total_deliveries"`
	TotalEarnings   float64                     `gorm:"default:0" json:"total_earnings"`
}

// TableName 与原有库表保持一致
func (DeliveryStaff) TableName() string {
	return "delivery_staff"
}

// School 学校管理员资料
type School struct {
	BaseModel
	UserID          uint                        `gorm:"uniqueIndex;not null" json:"user_id"`
	SchoolName      string                      `gorm:"type:varchar(150);not null" json:"school_name"`
	SchoolCode      string                      `gorm:"type:varchar(50)" json:"school_code"` // 学校对外编号
	ContactPerson   string                      `gorm:"type:varchar(100)" json:"contact_person"`
	EstablishedYear int                         `json:"established_year"`
	ClassesOffered  datatypes.JSONSlice[string] `json:"classes_offered"`
	SchoolAddress   string                      `gorm:"type:text" json:"school_address"`
}

// Caterer 餐饮供应商资料
type Caterer struct {
	BaseModel
	UserID          uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	BusinessName    string     `gorm:"type:varchar(150);not null" json:"business_name"`
	ContactPerson   string     `gorm:"type:varchar(100)" json:"contact_person"`
	BusinessAddress string     `gorm:"type:text" json:"business_address"`
	Rating          float64    `gorm:"default:0" json:"rating"`
	IsActive        bool       `gorm:"default:true" json:"is_active"`
	MenuItems       []MenuItem `gorm:"foreignKey:CatererID" json:"menu_items,omitempty"`
}

// AdminProfile 管理员资料
type AdminProfile struct {
	BaseModel
	UserID   uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	FullName string `gorm:"type:varchar(100)" json:"full_name"`
}

// TableName 管理员资料表
func (AdminProfile) TableName() string {
	return "admins"
}
