package services

import (
	"errors"
	"strings"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/pkg/logger"
	"github.com/Samanvis-dev/LunchBoxExpress/utils"

	"gorm.io/gorm"
)

// InterfaceAccountService 账户存储接口
type InterfaceAccountService interface {
	FindByUsername(username string) (*models.User, error)
	Register(input *RegisterInput) (*RegisterResult, error)
	UpdateLastLogin(userID uint) error
	EnsureAdmin() error
}

// UserData 注册时的账户信息
type UserData struct {
	Username string `json:"username" binding:"required" example:"rajesh_sharma"`
	Email    string `json:"email" binding:"required,email" example:"rajesh@example.com"`
	Phone    string `json:"phone" example:"9876543210"`
	Password string `json:"password" binding:"required,min=6" example:"password123"`
}

// RoleData 注册时的角色资料，按角色取用其中的字段
type RoleData struct {
	FullName string `json:"fullName"`

	// 家长
	HouseNumber  string `json:"houseNumber"`
	LocationName string `json:"locationName"`
	CityName     string `json:"cityName"`
	FullAddress  string `json:"fullAddress"`

	// 配送员
	DuplicateName string   `json:"duplicateName"`
	VehicleType   string   `json:"vehicleType"`
	VehicleNumber string   `json:"vehicleNumber"`
	ServiceAreas  []string `json:"serviceAreas"`
	Address       string   `json:"address"`

	// 学校
	SchoolName      string   `json:"schoolName"`
	SchoolID        string   `json:"schoolId"`
	ContactPerson   string   `json:"contactPerson"`
	EstablishedYear *int     `json:"establishedYear"`
	ClassesOffered  []string `json:"classesOffered"`
	SchoolAddress   string   `json:"schoolAddress"`

	// 餐饮供应商
	BusinessName    string `json:"businessName"`
	BusinessAddress string `json:"businessAddress"`
}

// RegisterInput 注册请求
type RegisterInput struct {
	UserData UserData `json:"userData" binding:"required"`
	RoleData RoleData `json:"roleData"`
	Role     string   `json:"role" binding:"required" example:"parent"`
}

// RegisterResult 注册结果
type RegisterResult struct {
	UserID uint `json:"userId"`
	RoleID uint `json:"roleId"`
}

// AccountService 提供账户相关的服务
type AccountService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAccountService 创建账户服务
func NewAccountService(db *gorm.DB, cfg *config.Config) InterfaceAccountService {
	return &AccountService{
		DB:     db,
		Config: cfg,
	}
}

// 1 FindByUsername 根据用户名查找账户
func (s *AccountService) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

// 2 Register 在同一事务中创建账户和角色资料，任一步失败都会回滚
func (s *AccountService) Register(input *RegisterInput) (*RegisterResult, error) {
	role, ok := models.ParseRole(input.Role)
	if !ok || role == models.RoleAdmin {
		return nil, ErrInvalidRole
	}

	username := strings.TrimSpace(input.UserData.Username)
	email := strings.TrimSpace(input.UserData.Email)
	if username == "" || email == "" || input.UserData.Password == "" {
		return nil, ErrInvalidArgument
	}

	hashed, err := utils.HashPassword(input.UserData.Password)
	if err != nil {
		return nil, err
	}

	result := &RegisterResult{}
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).
			Where("username = ? OR email = ?", username, email).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrDuplicateIdentity
		}

		user := &models.User{
			Username:     username,
			Email:        email,
			Phone:        input.UserData.Phone,
			PasswordHash: hashed,
			Role:         role,
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}

		roleID, err := createProfile(tx, user.ID, role, &input.RoleData)
		if err != nil {
			return err
		}

		result.UserID = user.ID
		result.RoleID = roleID
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateIdentity
		}
		return nil, err
	}

	logger.Info("新账户注册成功: user_id=%d role=%s", result.UserID, role)
	return result, nil
}

// createProfile 按角色写入资料表，返回资料ID
func createProfile(tx *gorm.DB, userID uint, role models.Role, data *RoleData) (uint, error) {
	switch role {
	case models.RoleParent:
		parent := &models.Parent{
			UserID:       userID,
			FullName:     data.FullName,
			HouseNumber:  data.HouseNumber,
			LocationName: data.LocationName,
			CityName:     data.CityName,
			FullAddress:  data.FullAddress,
		}
		if err := tx.Create(parent).Error; err != nil {
			return 0, err
		}
		return parent.ID, nil

	case models.RoleDeliveryStaff:
		staff := &models.DeliveryStaff{
			UserID:        userID,
			FullName:      data.FullName,
			DuplicateName: data.DuplicateName,
			VehicleType:   data.VehicleType,
			VehicleNumber: data.VehicleNumber,
			ServiceAreas:  nonNil(data.ServiceAreas),
			Address:       data.Address,
			Status:        models.AvailabilityOffline,
		}
		if err := tx.Create(staff).Error; err != nil {
			return 0, err
		}
		return staff.ID, nil

	case models.RoleSchoolAdmin:
		school := &models.School{
			UserID:         userID,
			SchoolName:     data.SchoolName,
			SchoolCode:     data.SchoolID,
			ContactPerson:  data.ContactPerson,
			ClassesOffered: nonNil(data.ClassesOffered),
			SchoolAddress:  data.SchoolAddress,
		}
		if data.EstablishedYear != nil {
			school.EstablishedYear = *data.EstablishedYear
		}
		if err := tx.Create(school).Error; err != nil {
			return 0, err
		}
		return school.ID, nil

	case models.RoleCaterer:
		caterer := &models.Caterer{
			UserID:          userID,
			BusinessName:    data.BusinessName,
			ContactPerson:   data.ContactPerson,
			BusinessAddress: data.BusinessAddress,
			IsActive:        true,
		}
		if err := tx.Create(caterer).Error; err != nil {
			return 0, err
		}
		return caterer.ID, nil

	case models.RoleAdmin:
		admin := &models.AdminProfile{UserID: userID, FullName: data.FullName}
		if err := tx.Create(admin).Error; err != nil {
			return 0, err
		}
		return admin.ID, nil
	}

	return 0, ErrInvalidRole
}

// 3 UpdateLastLogin 更新最后登录时间
func (s *AccountService) UpdateLastLogin(userID uint) error {
	return s.DB.Model(&models.User{}).Where("id = ?", userID).Update("last_login", time.Now()).Error
}

// 4 EnsureAdmin 确保系统中有管理员账户
func (s *AccountService) EnsureAdmin() error {
	var count int64
	if err := s.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hashed, err := utils.HashPassword(s.Config.DefaultAdminPassword)
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		admin := &models.User{
			Username:     "admin",
			Email:        "admin@lunchbox.local",
			PasswordHash: hashed,
			Role:         models.RoleAdmin,
		}
		if err := tx.Create(admin).Error; err != nil {
			return err
		}
		_, err := createProfile(tx, admin.ID, models.RoleAdmin, &RoleData{FullName: "System Admin"})
		return err
	})
	if err != nil {
		return err
	}

	logger.Info("已创建默认管理员账户 (用户名: admin)")
	return nil
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
