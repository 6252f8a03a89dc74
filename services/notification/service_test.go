package notification

import (
	"errors"
	"testing"

	"courier-service/apperr"
	"courier-service/database"
	notificationModel "courier-service/models/notification"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return NewNotificationService(db)
}

func emit(t *testing.T, svc *Service, userID uint, title string) *notificationModel.Notification {
	t.Helper()

	n, err := svc.Emit(nil, EmitInput{
		UserID:   userID,
		Category: notificationModel.CategoryInfo,
		Title:    title,
		Message:  "message for " + title,
	})
	require.NoError(t, err)
	return n
}

func TestEmitCreatesUnreadNotification(t *testing.T) {
	svc := setupService(t)

	n := emit(t, svc, 1, "first")
	assert.Nil(t, n.ReadAt)
	assert.False(t, n.IsRead())
	assert.Equal(t, notificationModel.CategoryInfo, n.Category)
}

func TestEmitDefaultsUnknownCategoryToInfo(t *testing.T) {
	svc := setupService(t)

	n, err := svc.Emit(nil, EmitInput{
		UserID:   1,
		Category: notificationModel.NotificationCategory("shouting"),
		Title:    "t",
		Message:  "m",
	})
	require.NoError(t, err)
	assert.Equal(t, notificationModel.CategoryInfo, n.Category)
}

func TestMarkReadIsIdempotent(t *testing.T) {
	svc := setupService(t)
	n := emit(t, svc, 1, "first")

	first, err := svc.MarkRead(n.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, first.ReadAt)
	readAt := *first.ReadAt

	// Re-marking must be a no-op that keeps the original timestamp
	second, err := svc.MarkRead(n.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, second.ReadAt)
	assert.True(t, second.ReadAt.Equal(readAt), "read timestamp must not move on re-mark")
}

func TestMarkReadRejectsForeignNotification(t *testing.T) {
	svc := setupService(t)
	n := emit(t, svc, 1, "first")

	_, err := svc.MarkRead(n.ID, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Unauthorized))

	_, err = svc.MarkRead(99999, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.NotFound))
}

func TestMarkAllReadIsScopedToOwner(t *testing.T) {
	svc := setupService(t)
	emit(t, svc, 1, "a")
	emit(t, svc, 1, "b")
	other := emit(t, svc, 2, "c")

	affected, err := svc.MarkAllRead(1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, affected)

	// Other users' notifications stay unread
	remaining, err := svc.List(2, true)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)

	// A second pass finds nothing left to mark
	affected, err = svc.MarkAllRead(1)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestListUnreadOnlyFilters(t *testing.T) {
	svc := setupService(t)
	a := emit(t, svc, 1, "a")
	emit(t, svc, 1, "b")

	_, err := svc.MarkRead(a.ID, 1)
	require.NoError(t, err)

	all, err := svc.List(1, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	unread, err := svc.List(1, true)
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "b", unread[0].Title)
}

func TestDeleteChecksOwnership(t *testing.T) {
	svc := setupService(t)
	n := emit(t, svc, 1, "first")

	err := svc.Delete(n.ID, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.Unauthorized))

	require.NoError(t, svc.Delete(n.ID, 1))

	err = svc.Delete(n.ID, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.NotFound))
}
