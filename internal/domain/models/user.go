package models

import "time"

// Role 账户角色，创建后不可修改，决定资料所在的表
type Role string

const (
	RoleParent        Role = "parent"
	RoleDeliveryStaff Role = "delivery_staff"
	RoleSchoolAdmin   Role = "school_admin"
	RoleCaterer       Role = "caterer"
	RoleAdmin         Role = "admin"
)

// AllRoles 全部角色，看板分发表需要覆盖其中每一项
var AllRoles = []Role{RoleParent, RoleDeliveryStaff, RoleSchoolAdmin, RoleCaterer, RoleAdmin}

// ParseRole 解析角色字符串，未知值返回 false
func ParseRole(s string) (Role, bool) {
	for _, r := range AllRoles {
		if string(r) == s {
			return r, true
		}
	}
	return "", false
}

// User 登录账户，每个账户在对应角色表中恰好有一条资料
type User struct {
	BaseModel
	Username     string     `gorm:"type:varchar(50);uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	Phone        string     `gorm:"type:varchar(20)" json:"phone"`
	PasswordHash string     `gorm:"type:varchar(100);not null" json:"-"`
	Role         Role       `gorm:"type:varchar(20);not null;index" json:"role"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
}
