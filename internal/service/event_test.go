package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/storage"
)

type userMessage struct {
	userID string
	msg    domain.Message
}

// recordingNotifier collects dispatches on channels so tests can wait for
// the async lifecycle notifications without sleeping.
type recordingNotifier struct {
	sent       chan userMessage
	broadcasts chan domain.Message
}

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{
		sent:       make(chan userMessage, 8),
		broadcasts: make(chan domain.Message, 8),
	}
}

func (n *recordingNotifier) SendToUser(_ context.Context, userID string, msg domain.Message) error {
	n.sent <- userMessage{userID: userID, msg: msg}
	return nil
}

func (n *recordingNotifier) Broadcast(_ context.Context, msg domain.Message) error {
	n.broadcasts <- msg
	return nil
}

func (n *recordingNotifier) waitSent(t *testing.T) userMessage {
	t.Helper()
	select {
	case m := <-n.sent:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a user notification")
		return userMessage{}
	}
}

func (n *recordingNotifier) waitBroadcast(t *testing.T) domain.Message {
	t.Helper()
	select {
	case m := <-n.broadcasts:
		return m
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a broadcast")
		return domain.Message{}
	}
}

func newEventFixture(t *testing.T) (*memory.Store, *storage.MemoryStore, *recordingNotifier, *EventService) {
	t.Helper()
	store := memory.NewStore()
	objects := storage.NewMemory("event-assets")
	notifier := newRecordingNotifier()
	cleaner := NewRetentionService(store.Events(), objects, testHorizon, newTestLogger(t))
	svc := NewEventService(store.Events(), objects, cleaner, notifier, newTestLogger(t))
	return store, objects, notifier, svc
}

func validInput() domain.CreateEventInput {
	clock := "18:30"
	return domain.CreateEventInput{
		Title:     "Inter-Hall Debate",
		Date:      sweepNow.Add(72 * time.Hour),
		Time:      &clock,
		Venue:     "Arts Faculty Lounge",
		Category:  domain.CategoryClub,
		Organizer: "Debating Society",
		CreatedBy: "u1",
		UserID:    "u1",
	}
}

func TestEventCreate_StartsUnapproved(t *testing.T) {
	store, _, _, svc := newEventFixture(t)

	event, err := svc.Create(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.False(t, event.IsApproved)

	stored, err := store.Events().GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsApproved)
}

func TestEventCreate_Validation(t *testing.T) {
	_, _, _, svc := newEventFixture(t)

	cases := []struct {
		name   string
		mutate func(*domain.CreateEventInput)
	}{
		{"missing title", func(in *domain.CreateEventInput) { in.Title = "" }},
		{"missing venue", func(in *domain.CreateEventInput) { in.Venue = "" }},
		{"missing organizer", func(in *domain.CreateEventInput) { in.Organizer = "" }},
		{"zero date", func(in *domain.CreateEventInput) { in.Date = time.Time{} }},
		{"unknown category", func(in *domain.CreateEventInput) { in.Category = "Carnival" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			input := validInput()
			tc.mutate(&input)

			_, err := svc.Create(context.Background(), input)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestEventList_SweepsExpiredFirst(t *testing.T) {
	store, _, _, svc := newEventFixture(t)

	stale := seedEvent(t, store, time.Now().UTC().Add(-10*24*time.Hour))
	live := seedEvent(t, store, time.Now().UTC().Add(48*time.Hour))

	events, err := svc.List(context.Background())

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, live.ID, events[0].ID)

	_, err = store.Events().GetByID(context.Background(), stale.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestEventApprove_NotifiesSubmitterAndBroadcasts(t *testing.T) {
	store, _, notifier, svc := newEventFixture(t)

	event := seedEvent(t, store, sweepNow.Add(72*time.Hour))
	event.IsApproved = false
	event.UserID = "u1"
	require.NoError(t, store.Events().Create(context.Background(), event))

	require.NoError(t, svc.Approve(context.Background(), event.ID))

	stored, err := store.Events().GetByID(context.Background(), event.ID)
	require.NoError(t, err)
	assert.True(t, stored.IsApproved)

	direct := notifier.waitSent(t)
	assert.Equal(t, "u1", direct.userID)
	assert.Equal(t, domain.TemplateEventApproved, direct.msg.Template)
	assert.Equal(t, event.ID, direct.msg.EventID)

	broadcast := notifier.waitBroadcast(t)
	assert.Equal(t, domain.TemplateNewEvent, broadcast.Template)
	assert.Equal(t, event.Title, broadcast.EventName)
}

func TestEventReject_DeletesAndNotifies(t *testing.T) {
	store, objects, notifier, svc := newEventFixture(t)

	event := seedEvent(t, store, sweepNow.Add(72*time.Hour))
	event.UserID = "u1"
	event.ImageURL = seedObject(t, objects, "uploads/rejected-poster.png")
	require.NoError(t, store.Events().Create(context.Background(), event))
	saveEvent(t, store, "u2", event.ID)

	require.NoError(t, svc.Reject(context.Background(), event.ID))

	_, err := store.Events().GetByID(context.Background(), event.ID)
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	saved, err := store.SavedEvents().ListByUser(context.Background(), "u2")
	require.NoError(t, err)
	assert.Empty(t, saved)

	keys, err := objects.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)

	rejection := notifier.waitSent(t)
	assert.Equal(t, "u1", rejection.userID)
	assert.Equal(t, domain.TemplateEventRejected, rejection.msg.Template)
}

func TestEventDelete_SparesForeignAssets(t *testing.T) {
	store, objects, _, svc := newEventFixture(t)

	seedObject(t, objects, "uploads/someone-elses.png")

	event := seedEvent(t, store, sweepNow.Add(72*time.Hour))
	event.ImageURL = "https://images.unsplash.com/photo-999"
	require.NoError(t, store.Events().Create(context.Background(), event))

	require.NoError(t, svc.Delete(context.Background(), event.ID))

	keys, err := objects.ListKeys(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}
