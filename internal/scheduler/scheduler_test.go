package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/service"
	"github.com/wb-go/wbf/logger"
)

type stubReminders struct {
	calls atomic.Int32
	err   error
}

func (s *stubReminders) Sweep(context.Context, time.Time, service.SweepOptions) (*service.SweepResult, error) {
	s.calls.Add(1)
	if s.err != nil {
		return nil, s.err
	}
	return &service.SweepResult{}, nil
}

type stubRetention struct {
	calls atomic.Int32
	err   error
}

func (s *stubRetention) CleanupExpired(context.Context, time.Time) (int, error) {
	s.calls.Add(1)
	if s.err != nil {
		return 0, s.err
	}
	return 0, nil
}

func newSchedulerLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.InitLogger("slog", "test", "test", logger.WithLevel(logger.ErrorLevel))
	require.NoError(t, err)
	return log
}

func TestScheduler_RunsBothSweepsEveryTick(t *testing.T) {
	reminders := &stubReminders{}
	retention := &stubRetention{}
	s := New(reminders, retention, 10*time.Millisecond, newSchedulerLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return reminders.calls.Load() >= 2 && retention.calls.Load() >= 2
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestScheduler_ReminderFailureDoesNotStopTicking(t *testing.T) {
	reminders := &stubReminders{err: errors.New("db gone")}
	retention := &stubRetention{}
	s := New(reminders, retention, 10*time.Millisecond, newSchedulerLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return reminders.calls.Load() >= 3
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestScheduler_RetentionFailureStillRunsReminders(t *testing.T) {
	reminders := &stubReminders{}
	retention := &stubRetention{err: errors.New("storage gone")}
	s := New(reminders, retention, 10*time.Millisecond, newSchedulerLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		return reminders.calls.Load() >= 1 && retention.calls.Load() >= 1
	}, 2*time.Second, 5*time.Millisecond)

	cancel()
	<-done
}

func TestScheduler_StopsOnContextCancel(t *testing.T) {
	reminders := &stubReminders{}
	retention := &stubRetention{}
	s := New(reminders, retention, time.Hour, newSchedulerLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}

	assert.Equal(t, int32(0), reminders.calls.Load())
}
