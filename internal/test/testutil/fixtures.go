// Package testutil 提供测试用的内存数据库、固定时钟和数据构造函数
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/infrastructure/config"
	"github.com/Samanvis-dev/LunchBoxExpress/utils"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Password 测试账户的明文密码
const Password = "password123"

// Noon 测试中的"现在"
var Noon = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

// Clock 返回固定时间的时钟
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// Config 测试配置，时区固定为UTC
func Config() *config.Config {
	return &config.Config{
		EnvType:              "LOCAL",
		DBDriver:             "sqlite",
		TimeZone:             "UTC",
		JWTSecretKey:         "test-secret",
		TokenTTLHours:        24,
		DefaultAdminPassword: "admin123",
		CORSOrigin:           "http://localhost:5173",
	}
}

// NewDB 每次创建独立的内存数据库并迁移全部模型
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// 内存库只在同一连接内可见
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...))
	return db
}

// CreateUser 创建账户
func CreateUser(t testing.TB, db *gorm.DB, username string, role models.Role) *models.User {
	t.Helper()

	hashed, err := utils.HashPassword(Password)
	require.NoError(t, err)

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hashed,
		Role:         role,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// CreateParent 创建家长账户和资料
func CreateParent(t testing.TB, db *gorm.DB, username, fullName string) (*models.User, *models.Parent) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleParent)
	parent := &models.Parent{UserID: user.ID, FullName: fullName}
	require.NoError(t, db.Create(parent).Error)
	return user, parent
}

// CreateSchool 创建学校账户和资料
func CreateSchool(t testing.TB, db *gorm.DB, username, schoolName string) (*models.User, *models.School) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleSchoolAdmin)
	school := &models.School{UserID: user.ID, SchoolName: schoolName, ClassesOffered: []string{}}
	require.NoError(t, db.Create(school).Error)
	return user, school
}

// CreateDeliveryStaff 创建配送员账户和资料
func CreateDeliveryStaff(t testing.TB, db *gorm.DB, username, alias string, deliveries int, rating float64) (*models.User, *models.DeliveryStaff) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleDeliveryStaff)
	staff := &models.DeliveryStaff{
		UserID:          user.ID,
		FullName:        alias,
		DuplicateName:   alias,
		ServiceAreas:    []string{},
		Status:          models.AvailabilityOffline,
		TotalDeliveries: deliveries,
		Rating:          rating,
	}
	require.NoError(t, db.Create(staff).Error)
	return user, staff
}

// CreateCaterer 创建供应商账户和资料
func CreateCaterer(t testing.TB, db *gorm.DB, username, businessName string, rating float64) (*models.User, *models.Caterer) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleCaterer)
	caterer := &models.Caterer{UserID: user.ID, BusinessName: businessName, Rating: rating, IsActive: true}
	require.NoError(t, db.Create(caterer).Error)
	return user, caterer
}

// CreateAdmin 创建管理员账户和资料
func CreateAdmin(t testing.TB, db *gorm.DB, username string) (*models.User, *models.AdminProfile) {
	t.Helper()

	user := CreateUser(t, db, username, models.RoleAdmin)
	admin := &models.AdminProfile{UserID: user.ID, FullName: username}
	require.NoError(t, db.Create(admin).Error)
	return user, admin
}

// CreateChild 创建孩子
func CreateChild(t testing.TB, db *gorm.DB, parentID uint, schoolID *uint, name, className string) *models.Child {
	t.Helper()

	child := &models.Child{
		ParentID:        parentID,
		SchoolID:        schoolID,
		Name:            name,
		ClassName:       className,
		Allergies:       []string{},
		FoodPreferences: []string{},
	}
	require.NoError(t, db.Create(child).Error)
	return child
}

// CreateMenuItem 创建菜品，available 为 false 时在插入后更新，避免被默认值覆盖
func CreateMenuItem(t testing.TB, db *gorm.DB, catererID uint, name string, available bool, createdAt time.Time) *models.MenuItem {
	t.Helper()

	item := &models.MenuItem{CatererID: catererID, Name: name, Price: 50, Allergens: []string{}, IsAvailable: true}
	item.CreatedAt = createdAt
	require.NoError(t, db.Create(item).Error)
	if !available {
		require.NoError(t, db.Model(item).Update("is_available", false).Error)
		item.IsAvailable = false
	}
	return item
}

// OrderSpec 构造订单的参数
type OrderSpec struct {
	Parent    *models.Parent
	Child     *models.Child
	School    *models.School
	Staff     *models.DeliveryStaff
	Status    models.OrderStatus
	Amount    float64
	CreatedAt time.Time
}

// CreateOrder 创建订单
func CreateOrder(t testing.TB, db *gorm.DB, spec OrderSpec) *models.Order {
	t.Helper()

	status := spec.Status
	if status == "" {
		status = models.OrderStatusConfirmed
	}
	order := &models.Order{
		TrackingID:  "LB" + uuid.New().String()[:8],
		ParentID:    spec.Parent.ID,
		ChildID:     spec.Child.ID,
		SchoolID:    spec.School.ID,
		Status:      status,
		TotalAmount: spec.Amount,
	}
	if spec.Staff != nil {
		order.DeliveryStaffID = &spec.Staff.ID
	}
	order.CreatedAt = spec.CreatedAt
	order.UpdatedAt = spec.CreatedAt
	require.NoError(t, db.Create(order).Error)
	return order
}

// CreateNotification 创建通知
func CreateNotification(t testing.TB, db *gorm.DB, userID uint, title string, createdAt time.Time) *models.Notification {
	t.Helper()

	notification := &models.Notification{UserID: userID, Title: title, Type: "system", CreatedAt: createdAt}
	require.NoError(t, db.Create(notification).Error)
	return notification
}
