package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/repository/memory"
)

var sweepNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func newReminderFixture(t *testing.T) (*memory.Store, *mockNotifier, *ReminderService) {
	t.Helper()
	store := memory.NewStore()
	notifier := &mockNotifier{}
	svc := NewReminderService(
		store.SavedEvents(),
		store.Notifications(),
		notifier,
		DefaultWindows(),
		newTestLogger(t),
	)
	return store, notifier, svc
}

func windowMatcher(window domain.ReminderWindow) any {
	return mock.MatchedBy(func(msg domain.Message) bool {
		return msg.Template == domain.TemplateEventReminder && msg.Window == window
	})
}

func TestReminderSweep_24hWindowFires(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(24*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	notifier.On("SendToUser", mock.Anything, "u1", windowMatcher(domain.Window24h)).Return(nil).Once()

	res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent24h)
	assert.Equal(t, 0, res.Sent1h)
	assert.Equal(t, 0, res.Errors)
	assert.Equal(t, 1, res.Processed)

	row := savedRow(t, store, "u1", event.ID)
	assert.True(t, row.Reminder24hSent)
	assert.False(t, row.Reminder1hSent)

	notifier.AssertExpectations(t)
}

func TestReminderSweep_WindowEdges(t *testing.T) {
	cases := []struct {
		name    string
		offset  time.Duration
		sent24h int
		sent1h  int
	}{
		{"26h out, too early", 26 * time.Hour, 0, 0},
		{"25h out, inside day window edge", 25 * time.Hour, 1, 0},
		{"24h out, inside day window", 24 * time.Hour, 1, 0},
		{"23h out, outside day window (exclusive)", 23 * time.Hour, 0, 0},
		{"22h out, between windows", 22 * time.Hour, 0, 0},
		{"90m out, inside hour window edge", 90 * time.Minute, 0, 1},
		{"30m out, inside hour window", 30 * time.Minute, 0, 1},
		{"already started", -6 * time.Minute, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store, notifier, svc := newReminderFixture(t)

			event := seedEvent(t, store, sweepNow.Add(tc.offset))
			saveEvent(t, store, "u1", event.ID)

			notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(nil).Maybe()

			res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})

			require.NoError(t, err)
			assert.Equal(t, tc.sent24h, res.Sent24h)
			assert.Equal(t, tc.sent1h, res.Sent1h)
			assert.Equal(t, 0, res.Errors)
		})
	}
}

func TestReminderSweep_SecondRunIsSilent(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(24*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(nil).Once()

	first, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)
	require.Equal(t, 1, first.Sent24h)

	// Same instant, no time elapsed: the flag suppresses re-firing.
	second, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 0, second.Sent24h)
	assert.Equal(t, 0, second.Sent1h)
	assert.Equal(t, 0, second.Processed)

	notifier.AssertNumberOfCalls(t, "SendToUser", 1)
}

func TestReminderSweep_FlagsNeverRegress(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(1*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	// 24h flag already set from an earlier sweep.
	err := store.SavedEvents().UpsertReminderFlags(context.Background(), []domain.ReminderFlagUpdate{
		{UserID: "u1", EventID: event.ID, Reminder24hSent: true},
	})
	require.NoError(t, err)

	notifier.On("SendToUser", mock.Anything, "u1", windowMatcher(domain.Window1h)).Return(nil).Once()

	_, err = svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)

	row := savedRow(t, store, "u1", event.ID)
	assert.True(t, row.Reminder24hSent, "24h flag must survive the 1h firing")
	assert.True(t, row.Reminder1hSent)
}

func TestReminderSweep_DispatchFailureRetriesNextSweep(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(1*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(errors.New("push gateway down")).Once()

	res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 0, res.Sent1h)
	assert.Equal(t, 0, res.Processed)

	// Flag untouched, so the next sweep re-fires and succeeds.
	row := savedRow(t, store, "u1", event.ID)
	require.False(t, row.Reminder1hSent)

	notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(nil).Once()

	res, err = svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent1h)
	assert.Equal(t, 0, res.Errors)

	row = savedRow(t, store, "u1", event.ID)
	assert.True(t, row.Reminder1hSent)
}

func TestReminderSweep_FailureDoesNotBlockOtherRows(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(1*time.Hour))
	saveEvent(t, store, "u1", event.ID)
	saveEvent(t, store, "u2", event.ID)

	notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(errors.New("boom"))
	notifier.On("SendToUser", mock.Anything, "u2", mock.Anything).Return(nil)

	res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})

	require.NoError(t, err)
	assert.Equal(t, 1, res.Sent1h)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.Processed)

	assert.True(t, savedRow(t, store, "u2", event.ID).Reminder1hSent)
	assert.False(t, savedRow(t, store, "u1", event.ID).Reminder1hSent)
}

func TestReminderSweep_TestModeOnlyTouchesCaller(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	// Another user's event sits inside a real window; the admin's own
	// saved event is nowhere near one.
	inWindow := seedEvent(t, store, sweepNow.Add(24*time.Hour))
	saveEvent(t, store, "student", inWindow.ID)

	farOut := seedEvent(t, store, sweepNow.Add(96*time.Hour))
	saveEvent(t, store, "admin", farOut.ID)

	notifier.On("SendToUser", mock.Anything, "admin", windowMatcher(domain.Window1h)).Return(nil).Once()

	res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{TestMode: true, UserID: "admin"})

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent24h)
	assert.Equal(t, 1, res.Sent1h, "test mode forces a synthetic 1h firing")

	assert.False(t, savedRow(t, store, "student", inWindow.ID).Reminder24hSent,
		"test mode must not touch other users' rows")
	assert.True(t, savedRow(t, store, "admin", farOut.ID).Reminder1hSent)

	notifier.AssertExpectations(t)
}

func TestReminderSweep_MissingTimeMeansMidnight(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	// Event tomorrow with no clock time: starts at midnight, 12h away
	// from a noon sweep, which is inside neither window.
	event := seedEvent(t, store, sweepNow.Add(24*time.Hour))
	event.Time = nil
	require.NoError(t, store.Events().Create(context.Background(), event))
	saveEvent(t, store, "u1", event.ID)

	res, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})

	require.NoError(t, err)
	assert.Equal(t, 0, res.Sent24h)
	assert.Equal(t, 0, res.Sent1h)

	notifier.AssertNotCalled(t, "SendToUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestReminderSweep_RecordsInboxNotification(t *testing.T) {
	store, notifier, svc := newReminderFixture(t)

	event := seedEvent(t, store, sweepNow.Add(1*time.Hour))
	saveEvent(t, store, "u1", event.ID)

	notifier.On("SendToUser", mock.Anything, "u1", mock.Anything).Return(nil)

	_, err := svc.Sweep(context.Background(), sweepNow, SweepOptions{})
	require.NoError(t, err)

	inbox, err := store.Notifications().ListByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, domain.TemplateEventReminder, inbox[0].Type)
	assert.Equal(t, event.ID, inbox[0].EventID)
	assert.Equal(t, "Starting in 1 hour! ⏰", inbox[0].Title)
}
