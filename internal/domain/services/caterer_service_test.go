package services

import (
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatererDashboardOrdersAreDistinct(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCatererService(db, testutil.Config()).(*CatererService)

	user, caterer := testutil.CreateCaterer(t, db, "tiffin", "Tiffin Co", 4.6)
	_, rival := testutil.CreateCaterer(t, db, "spice", "Spice Kitchen", 4.1)
	_, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")
	child := testutil.CreateChild(t, db, parent.ID, &school.ID, "Aarav", "3A")

	rice := testutil.CreateMenuItem(t, db, caterer.ID, "Rice Bowl", true, testutil.Noon.Add(-2*time.Hour))
	dal := testutil.CreateMenuItem(t, db, caterer.ID, "Dal", false, testutil.Noon.Add(-time.Hour))
	curry := testutil.CreateMenuItem(t, db, rival.ID, "Curry", true, testutil.Noon)

	both := testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: child, School: school, CreatedAt: testutil.Noon})
	other := testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: child, School: school, CreatedAt: testutil.Noon})
	require.NoError(t, db.Create(&[]models.OrderItem{
		{OrderID: both.ID, MenuItemID: rice.ID, Quantity: 1, UnitPrice: 50},
		{OrderID: both.ID, MenuItemID: dal.ID, Quantity: 2, UnitPrice: 50},
		{OrderID: other.ID, MenuItemID: curry.ID, Quantity: 1, UnitPrice: 50},
	}).Error)

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)

	require.Len(t, dashboard.Orders, 1)
	assert.Equal(t, both.ID, dashboard.Orders[0].ID)
	assert.Equal(t, "Aarav", *dashboard.Orders[0].ChildName)
	assert.Equal(t, "Green Valley", *dashboard.Orders[0].SchoolName)

	require.Len(t, dashboard.MenuItems, 2)
	assert.Equal(t, dal.ID, dashboard.MenuItems[0].ID, "最新的菜品在前")
	assert.Equal(t, CatererStats{TotalMenuItems: 2, ActiveMenuItems: 1, TotalOrders: 1, Rating: 4.6}, dashboard.Stats)
}

func TestCatererDashboardWithoutProfile(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCatererService(db, testutil.Config()).(*CatererService)
	user := testutil.CreateUser(t, db, "ghost", models.RoleCaterer)

	_, err := svc.GetDashboard(user.ID)
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

func TestListCaterers(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewCatererService(db, testutil.Config()).(*CatererService)

	_, tiffin := testutil.CreateCaterer(t, db, "tiffin", "Tiffin Co", 4.6)
	_, empty := testutil.CreateCaterer(t, db, "empty", "Empty Plates", 4.8)
	_, closed := testutil.CreateCaterer(t, db, "closed", "Closed Kitchen", 5.0)
	require.NoError(t, db.Model(closed).Update("is_active", false).Error)

	rice := testutil.CreateMenuItem(t, db, tiffin.ID, "Rice Bowl", true, testutil.Noon)
	testutil.CreateMenuItem(t, db, tiffin.ID, "Dal", false, testutil.Noon)
	testutil.CreateMenuItem(t, db, closed.ID, "Soup", true, testutil.Noon)

	listings, err := svc.ListCaterers()
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, empty.ID, listings[0].ID)
	assert.NotNil(t, listings[0].MenuItems)
	assert.Empty(t, listings[0].MenuItems)

	assert.Equal(t, tiffin.ID, listings[1].ID)
	require.Len(t, listings[1].MenuItems, 1)
	assert.Equal(t, rice.ID, listings[1].MenuItems[0].ID)
}
