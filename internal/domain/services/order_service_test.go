package services

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// receive 非阻塞读取一条事件
func receive(t *testing.T, client *Client) (Event, bool) {
	t.Helper()
	select {
	case payload, ok := <-client.Send():
		if !ok {
			return Event{}, false
		}
		var event Event
		require.NoError(t, json.Unmarshal(payload, &event))
		return event, true
	default:
		return Event{}, false
	}
}

func TestSetStatusDelivered(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := testutil.Config()
	realtime := NewRealtimeService(NewHub(), nil, nil)
	svc := NewOrderService(db, cfg, realtime).(*OrderService).WithClock(testutil.Clock(testutil.Noon))

	parentUser, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	schoolUser, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")
	staffUser, staff := testutil.CreateDeliveryStaff(t, db, "vikram", "Vicky", 0, 0)
	outsider := testutil.CreateUser(t, db, "outsider", models.RoleParent)
	child := testutil.CreateChild(t, db, parent.ID, &school.ID, "Aarav", "3A")
	order := testutil.CreateOrder(t, db, testutil.OrderSpec{
		Parent: parent, Child: child, School: school, Staff: staff,
		Status: models.OrderStatusInTransit, CreatedAt: testutil.Noon.Add(-time.Hour),
	})

	listeners := map[uint]*Client{}
	for _, u := range []*models.User{parentUser, schoolUser, staffUser, outsider} {
		client := NewClient(u.ID, u.Role, 4)
		realtime.Hub().Subscribe(UserChannel(u.ID), client)
		listeners[u.ID] = client
	}

	updated, err := svc.SetStatus(order.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	require.NotNil(t, updated.DeliveredAt)
	assert.True(t, testutil.Noon.Equal(*updated.DeliveredAt))

	var stored models.Order
	require.NoError(t, db.First(&stored, order.ID).Error)
	assert.Equal(t, models.OrderStatusDelivered, stored.Status)
	require.NotNil(t, stored.DeliveredAt)

	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ?", parentUser.ID).Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, "order", notifications[0].Type)
	assert.Contains(t, notifications[0].Message, order.TrackingID)

	for _, id := range []uint{parentUser.ID, schoolUser.ID, staffUser.ID} {
		event, ok := receive(t, listeners[id])
		require.True(t, ok, "user %d 应收到事件", id)
		assert.Equal(t, EventOrderStatusUpdated, event.Event)
		data := event.Data.(map[string]interface{})
		assert.Equal(t, float64(order.ID), data["orderId"])
		assert.Equal(t, "delivered", data["status"])
		assert.Equal(t, order.TrackingID, data["trackingId"])

		_, more := receive(t, listeners[id])
		assert.False(t, more)
	}
	_, ok := receive(t, listeners[outsider.ID])
	assert.False(t, ok)

	// 学校看板随之把该订单计为已送达
	schools := NewSchoolService(db, cfg).(*SchoolService)
	schools.Clock.Now = testutil.Clock(testutil.Noon)
	dashboard, err := schools.GetDashboard(schoolUser.ID)
	require.NoError(t, err)
	assert.Equal(t, SchoolStats{TotalExpected: 1, TotalReceived: 1}, dashboard.Stats)
}

func TestSetStatusWithoutStaff(t *testing.T) {
	db := testutil.NewDB(t)
	realtime := NewRealtimeService(NewHub(), nil, nil)
	svc := NewOrderService(db, testutil.Config(), realtime).(*OrderService).WithClock(testutil.Clock(testutil.Noon))

	_, parent := testutil.CreateParent(t, db, "rajesh", "Rajesh Sharma")
	_, school := testutil.CreateSchool(t, db, "greenvalley", "Green Valley")
	child := testutil.CreateChild(t, db, parent.ID, &school.ID, "Aarav", "3A")
	order := testutil.CreateOrder(t, db, testutil.OrderSpec{Parent: parent, Child: child, School: school, CreatedAt: testutil.Noon})

	updated, err := svc.SetStatus(order.ID, "in_transit")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusInTransit, updated.Status)
	assert.Nil(t, updated.DeliveredAt)
}

func TestSetStatusErrors(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewOrderService(db, testutil.Config(), nil).(*OrderService)

	_, err := svc.SetStatus(1, "lost")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.SetStatus(999, "delivered")
	assert.ErrorIs(t, err, ErrOrderNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Notification{}).Count(&count).Error)
	assert.Zero(t, count)
}
