package services

import (
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminDashboardEmptyPlatform(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db, testutil.Config()).(*AdminService)
	svc.Clock.Now = testutil.Clock(testutil.Noon)
	user, _ := testutil.CreateAdmin(t, db, "admin")

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, []RoleCount{{Role: models.RoleAdmin, Count: 1}}, dashboard.UserStats)
	assert.Equal(t, OrderTotals{}, dashboard.OrderStats)
	assert.Empty(t, dashboard.DeliveryStats)
	assert.NotNil(t, dashboard.RecentOrders)
	assert.Empty(t, dashboard.RecentOrders)
}

func TestAdminDashboardTotals(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db, testutil.Config()).(*AdminService)
	svc.Clock.Now = testutil.Clock(testutil.Noon)
	user, _ := testutil.CreateAdmin(t, db, "admin")

	_, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")
	child := testutil.CreateChild(t, db, parent.ID, &school.ID, "Aarav", "3A")
	_, busy := testutil.CreateDeliveryStaff(t, db, "vikram", "Vicky", 0, 0)
	testutil.CreateDeliveryStaff(t, db, "arjun", "Arjun", 0, 0)
	require.NoError(t, db.Model(busy).Update("status", models.AvailabilityBusy).Error)

	testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: child, School: school, Amount: 120, CreatedAt: testutil.Noon.Add(-time.Hour)})
	testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: child, School: school, Amount: 80, CreatedAt: testutil.Noon.Add(-30 * time.Hour)})

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	assert.Equal(t, OrderTotals{TotalOrders: 2, TodaysOrders: 1, TotalRevenue: 200, TodaysRevenue: 120}, dashboard.OrderStats)
	assert.Equal(t, []AvailabilityCount{
		{Status: models.AvailabilityBusy, Count: 1},
		{Status: models.AvailabilityOffline, Count: 1},
	}, dashboard.DeliveryStats)
	assert.Len(t, dashboard.UserStats, 4)

	require.Len(t, dashboard.RecentOrders, 2)
	assert.Equal(t, "Rajesh Sharma", *dashboard.RecentOrders[0].ParentName)
	assert.Equal(t, 120.0, dashboard.RecentOrders[0].TotalAmount)
}

func TestAdminDashboardRequiresAdminProfile(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewAdminService(db, testutil.Config()).(*AdminService)
	user, _ := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")

	_, err := svc.GetDashboard(user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
