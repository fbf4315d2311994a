package services

import (
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentDashboardScopedToCaller(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewParentService(db, testutil.Config()).(*ParentService)
	svc.Clock.Now = testutil.Clock(testutil.Noon)

	user, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	_, otherParent := testutil.CreateParent(t, db, "meera", "Meera Iyer")
	_, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")
	_, staff := testutil.CreateDeliveryStaff(t, db, "vikram", "Vicky", 3, 4.5)

	aarav := testutil.CreateChild(t, db, parent.ID, &school.ID, "Aarav", "3A")
	testutil.CreateChild(t, db, parent.ID, nil, "Diya", "")
	otherChild := testutil.CreateChild(t, db, otherParent.ID, &school.ID, "Kabir", "3A")

	yesterday := testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: aarav, School: school, Status: models.OrderStatusDelivered, CreatedAt: testutil.Noon.Add(-24 * time.Hour)})
	today := testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: aarav, School: school, Staff: staff, Status: models.OrderStatusInTransit, CreatedAt: testutil.Noon.Add(-time.Hour)})
	testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: otherParent, Child: otherChild, School: school, CreatedAt: testutil.Noon})

	require.NoError(t, db.Create(&models.Payment{OrderID: yesterday.ID, Amount: 80, Status: "pending"}).Error)
	require.NoError(t, db.Create(&models.Payment{OrderID: yesterday.ID, Amount: 80, Status: "paid"}).Error)

	testutil.CreateNotification(t, db, user.ID, "welcome", testutil.Noon)
	read := testutil.CreateNotification(t, db, user.ID, "old", testutil.Noon.Add(-time.Hour))
	require.NoError(t, db.Model(read).Update("is_read", true).Error)

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, parent.ID, dashboard.Parent.ID)
	require.Len(t, dashboard.Children, 2)
	require.NotNil(t, dashboard.Children[0].SchoolName)
	assert.Equal(t, "Green Valley", *dashboard.Children[0].SchoolName)
	assert.Nil(t, dashboard.Children[1].SchoolName)

	require.Len(t, dashboard.TodaysOrders, 1)
	assert.Equal(t, today.ID, dashboard.TodaysOrders[0].ID)
	require.NotNil(t, dashboard.TodaysOrders[0].DeliveryPerson)
	assert.Equal(t, "Vicky", *dashboard.TodaysOrders[0].DeliveryPerson)
	assert.Equal(t, "Aarav", *dashboard.TodaysOrders[0].ChildName)

	require.Len(t, dashboard.RecentOrders, 2)
	assert.Equal(t, today.ID, dashboard.RecentOrders[0].ID)
	assert.Nil(t, dashboard.RecentOrders[0].PaymentStatus)
	require.NotNil(t, dashboard.RecentOrders[1].PaymentStatus)
	assert.Equal(t, "paid", *dashboard.RecentOrders[1].PaymentStatus)

	require.Len(t, dashboard.Notifications, 1)
	assert.Equal(t, "welcome", dashboard.Notifications[0].Title)

	assert.Equal(t, ParentStats{ChildrenCount: 2, TodaysOrdersCount: 1, TotalOrders: 2}, dashboard.Stats)
}

func TestParentDashboardWithoutProfile(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewParentService(db, testutil.Config()).(*ParentService)
	user, _ := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")

	_, err := svc.GetDashboard(user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestParentDashboardEmpty(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewParentService(db, testutil.Config()).(*ParentService)
	user, _ := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.NotNil(t, dashboard.Children)
	assert.NotNil(t, dashboard.TodaysOrders)
	assert.NotNil(t, dashboard.RecentOrders)
	assert.NotNil(t, dashboard.Notifications)
	assert.Empty(t, dashboard.TodaysOrders)
}

func TestAddChild(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewParentService(db, testutil.Config()).(*ParentService)
	user, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")

	child, err := svc.AddChild(user.ID, &AddChildInput{Name: " Aarav ", Age: 8, ClassName: "3A", SchoolID: &school.ID})
	require.NoError(t, err)
	assert.Equal(t, parent.ID, child.ParentID)
	assert.Equal(t, "Aarav", child.Name)
	assert.NotNil(t, child.Allergies)
	assert.NotNil(t, child.FoodPreferences)

	missing := uint(999)
	_, err = svc.AddChild(user.ID, &AddChildInput{Name: "Diya", SchoolID: &missing})
	assert.ErrorIs(t, err, ErrSchoolNotFound)

	_, err = svc.AddChild(user.ID, &AddChildInput{Name: "  "})
	assert.ErrorIs(t, err, ErrInvalidArgument)

	schoolUser := testutil.CreateUser(t, db, "teacher", models.RoleSchoolAdmin)
	_, err = svc.AddChild(schoolUser.ID, &AddChildInput{Name: "Diya"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	var count int64
	db.Model(&models.Child{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
