package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
)

func newSavedFixture(t *testing.T) (*memory.Store, *SavedEventService) {
	t.Helper()
	store := memory.NewStore()
	svc := NewSavedEventService(store.SavedEvents(), store.Events(), newTestLogger(t))
	return store, svc
}

func TestSavedEvents_SaveIsIdempotent(t *testing.T) {
	store, svc := newSavedFixture(t)
	event := seedEvent(t, store, sweepNow.Add(48*time.Hour))

	require.NoError(t, svc.Save(context.Background(), "u1", event.ID))
	require.NoError(t, svc.Save(context.Background(), "u1", event.ID))

	count, err := svc.Count(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestSavedEvents_RepeatSaveKeepsFlags(t *testing.T) {
	store, svc := newSavedFixture(t)
	event := seedEvent(t, store, sweepNow.Add(48*time.Hour))

	require.NoError(t, svc.Save(context.Background(), "u1", event.ID))

	err := store.SavedEvents().UpsertReminderFlags(context.Background(), []domain.ReminderFlagUpdate{
		{UserID: "u1", EventID: event.ID, Reminder24hSent: true},
	})
	require.NoError(t, err)

	// Saving again must not reset the row.
	require.NoError(t, svc.Save(context.Background(), "u1", event.ID))

	assert.True(t, savedRow(t, store, "u1", event.ID).Reminder24hSent)
}

func TestSavedEvents_SaveUnknownEvent(t *testing.T) {
	_, svc := newSavedFixture(t)

	err := svc.Save(context.Background(), "u1", "no-such-event")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestSavedEvents_Unsave(t *testing.T) {
	store, svc := newSavedFixture(t)
	event := seedEvent(t, store, sweepNow.Add(48*time.Hour))

	require.NoError(t, svc.Save(context.Background(), "u1", event.ID))
	require.NoError(t, svc.Unsave(context.Background(), "u1", event.ID))

	count, err := svc.Count(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSavedEvents_ListSkipsDeletedEvents(t *testing.T) {
	store, svc := newSavedFixture(t)

	kept := seedEvent(t, store, sweepNow.Add(48*time.Hour))
	gone := seedEvent(t, store, sweepNow.Add(72*time.Hour))

	require.NoError(t, svc.Save(context.Background(), "u1", kept.ID))
	require.NoError(t, svc.Save(context.Background(), "u1", gone.ID))

	require.NoError(t, store.Events().Delete(context.Background(), gone.ID))

	events, err := svc.ListEvents(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, kept.ID, events[0].ID)
}
