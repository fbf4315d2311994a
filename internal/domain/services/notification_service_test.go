package services

import (
	"testing"
	"time"

	"github.com/Samanvis-dev/LunchBoxExpress/internal/domain/models"
	"github.com/Samanvis-dev/LunchBoxExpress/internal/test/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListNotifications(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNotificationService(db, testutil.Config()).(*NotificationService)
	user := testutil.CreateUser(t, db, "rajesh", models.RoleParent)
	other := testutil.CreateUser(t, db, "priya", models.RoleParent)

	for i := 0; i < 25; i++ {
		testutil.CreateNotification(t, db, user.ID, "n", testutil.Noon.Add(time.Duration(i)*time.Minute))
	}
	testutil.CreateNotification(t, db, other.ID, "other", testutil.Noon.Add(time.Hour))

	list, err := svc.List(user.ID)
	require.NoError(t, err)
	require.Len(t, list, notificationListLimit)
	for _, n := range list {
		assert.Equal(t, user.ID, n.UserID)
	}
	assert.True(t, list[0].CreatedAt.After(list[1].CreatedAt))

	empty, err := svc.List(9999)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)
}

func TestMarkRead(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewNotificationService(db, testutil.Config()).(*NotificationService)
	svc.now = testutil.Clock(testutil.Noon)
	user := testutil.CreateUser(t, db, "rajesh", models.RoleParent)
	other := testutil.CreateUser(t, db, "priya", models.RoleParent)
	notification := testutil.CreateNotification(t, db, user.ID, "hello", testutil.Noon)

	read, err := svc.MarkRead(user.ID, notification.ID)
	require.NoError(t, err)
	assert.True(t, read.IsRead)
	require.NotNil(t, read.ReadAt)

	// 再次标记不改变已读时间
	svc.now = testutil.Clock(testutil.Noon.Add(time.Hour))
	again, err := svc.MarkRead(user.ID, notification.ID)
	require.NoError(t, err)
	assert.True(t, again.IsRead)
	assert.True(t, testutil.Noon.Equal(*again.ReadAt))

	_, err = svc.MarkRead(other.ID, notification.ID)
	assert.ErrorIs(t, err, ErrNotificationNotFound)

	_, err = svc.MarkRead(user.ID, 9999)
	assert.ErrorIs(t, err, ErrNotificationNotFound)
}
