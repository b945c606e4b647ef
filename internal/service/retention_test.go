package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/storage"
)

const testHorizon = 168 * time.Hour

func newRetentionFixture(t *testing.T) (*memory.Store, *storage.MemoryStore, *RetentionService) {
	t.Helper()
	store := memory.NewStore()
	objects := storage.NewMemory("event-assets")
	svc := NewRetentionService(store.Events(), objects, testHorizon, newTestLogger(t))
	return store, objects, svc
}

func seedObject(t *testing.T, objects *storage.MemoryStore, key string) string {
	t.Helper()
	url, err := objects.Put(context.Background(), key, strings.NewReader("payload"), 7, "application/octet-stream")
	require.NoError(t, err)
	return url
}

func TestRetention_SevenDayBoundary(t *testing.T) {
	store, _, svc := newRetentionFixture(t)

	old := seedEvent(t, store, sweepNow.Add(-7*24*time.Hour))
	fresh := seedEvent(t, store, sweepNow.Add(-6*24*time.Hour))

	deleted, err := svc.CleanupExpired(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.Events().GetByID(context.Background(), old.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound, "exactly-seven-days-old event must go")

	_, err = store.Events().GetByID(context.Background(), fresh.ID)
	assert.NoError(t, err, "six-days-old event must stay")
}

func TestRetention_RemovesOwnedAssets(t *testing.T) {
	store, objects, svc := newRetentionFixture(t)

	event := seedEvent(t, store, sweepNow.Add(-10*24*time.Hour))
	event.ImageURL = seedObject(t, objects, "uploads/poster.png")
	event.DocumentURL = seedObject(t, objects, "uploads/schedule.pdf")
	require.NoError(t, store.Events().Create(context.Background(), event))

	deleted, err := svc.CleanupExpired(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	keys, err := objects.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestRetention_SkipsForeignURLs(t *testing.T) {
	store, objects, svc := newRetentionFixture(t)

	seedObject(t, objects, "uploads/unrelated.png")

	event := seedEvent(t, store, sweepNow.Add(-10*24*time.Hour))
	event.ImageURL = "https://images.unsplash.com/photo-12345?w=800"
	require.NoError(t, store.Events().Create(context.Background(), event))

	deleted, err := svc.CleanupExpired(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	// Placeholder never resolved to a key, so nothing was touched.
	keys, err := objects.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestRetention_CascadesSavedAndNotifications(t *testing.T) {
	store, _, svc := newRetentionFixture(t)

	event := seedEvent(t, store, sweepNow.Add(-8*24*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	err := store.Notifications().Create(context.Background(), &domain.Notification{
		ID:      "n1",
		UserID:  "u1",
		EventID: event.ID,
		Type:    domain.TemplateEventReminder,
		Title:   "x",
	})
	require.NoError(t, err)

	_, err = svc.CleanupExpired(context.Background(), sweepNow)
	require.NoError(t, err)

	saved, err := store.SavedEvents().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, saved)

	inbox, err := store.Notifications().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Empty(t, inbox)
}

func TestRetention_NoExpiredIsNoop(t *testing.T) {
	store, _, svc := newRetentionFixture(t)

	seedEvent(t, store, sweepNow.Add(24*time.Hour))

	deleted, err := svc.CleanupExpired(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)

	// Running again stays clean.
	deleted, err = svc.CleanupExpired(context.Background(), sweepNow)
	require.NoError(t, err)
	assert.Equal(t, 0, deleted)
}

type failingRemoveStore struct {
	*storage.MemoryStore
}

func (f *failingRemoveStore) RemoveKeys(context.Context, []string) error {
	return errors.New("storage unavailable")
}

func TestRetention_StorageFailureStillDeletesRows(t *testing.T) {
	store := memory.NewStore()
	objects := storage.NewMemory("event-assets")
	svc := NewRetentionService(store.Events(), &failingRemoveStore{objects}, testHorizon, newTestLogger(t))

	event := seedEvent(t, store, sweepNow.Add(-9*24*time.Hour))
	event.ImageURL = seedObject(t, objects, "uploads/stuck.png")
	require.NoError(t, store.Events().Create(context.Background(), event))

	deleted, err := svc.CleanupExpired(context.Background(), sweepNow)

	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = store.Events().GetByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
