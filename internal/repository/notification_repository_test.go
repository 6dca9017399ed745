package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ridgeline-exteriors/deal-api/internal/domain"
	"github.com/ridgeline-exteriors/deal-api/internal/repository"
	"github.com/ridgeline-exteriors/deal-api/internal/testutil"
)

func seedNotification(t *testing.T, repo *repository.NotificationRepository, userID uuid.UUID, title string) *domain.Notification {
	t.Helper()
	n := &domain.Notification{
		UserID:  userID,
		Type:    string(domain.NotificationTypeAwaitingAdmin),
		Title:   title,
		Message: "A deal needs office action",
	}
	require.NoError(t, repo.Create(context.Background(), n))
	return n
}

func TestNotificationRepository_ListAndCount(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	otherID := uuid.New()
	seedNotification(t, repo, userID, "first")
	second := seedNotification(t, repo, userID, "second")
	seedNotification(t, repo, otherID, "not yours")

	list, total, err := repo.ListByUser(ctx, userID, 1, 20, false)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)

	unread, err := repo.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	require.NoError(t, repo.MarkAsRead(ctx, second.ID, userID))

	unreadOnly, total, err := repo.ListByUser(ctx, userID, 1, 20, true)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, unreadOnly, 1)
	assert.Equal(t, "first", unreadOnly[0].Title)
}

func TestNotificationRepository_MarkAsRead_WrongUser(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	n := seedNotification(t, repo, uuid.New(), "private")

	err := repo.MarkAsRead(ctx, n.ID, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "cannot read someone else's notification")
}

func TestNotificationRepository_MarkAllAsRead(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	seedNotification(t, repo, userID, "a")
	seedNotification(t, repo, userID, "b")

	require.NoError(t, repo.MarkAllAsRead(ctx, userID))

	unread, err := repo.CountUnread(ctx, userID)
	require.NoError(t, err)
	assert.Zero(t, unread)
}

func TestNotificationRepository_CreateBatch(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	admins := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	batch := make([]*domain.Notification, len(admins))
	for i, id := range admins {
		batch[i] = &domain.Notification{
			UserID:  id,
			Type:    string(domain.NotificationTypeAwaitingAdmin),
			Title:   "Deal waiting on office",
			Message: "Pat Miller's deal reached adjuster_met",
		}
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.NoError(t, repo.CreateBatch(ctx, nil), "empty batch is a no-op")

	for _, id := range admins {
		count, err := repo.CountUnread(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}
}

func TestNotificationRepository_HasRecentForEntity(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	userID := uuid.New()
	dealID := uuid.New()
	n := &domain.Notification{
		UserID:     userID,
		Type:       string(domain.NotificationTypeStaleDealReminder),
		Title:      "Deal going stale",
		Message:    "No movement in 3 days",
		EntityID:   &dealID,
		EntityType: "deal",
	}
	require.NoError(t, repo.Create(ctx, n))

	recent, err := repo.HasRecentForEntity(ctx, userID, string(domain.NotificationTypeStaleDealReminder), dealID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.True(t, recent)

	recent, err = repo.HasRecentForEntity(ctx, userID, string(domain.NotificationTypeStaleDealReminder), dealID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.False(t, recent, "cutoff in the future finds nothing")

	recent, err = repo.HasRecentForEntity(ctx, userID, string(domain.NotificationTypeAwaitingAdmin), dealID, time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.False(t, recent, "different type does not match")
}
