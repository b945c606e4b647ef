package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/AxisMaster/AMU-Campus-Hub/internal/domain"
	"github.com/AxisMaster/AMU-Campus-Hub/internal/service/ports"
	"github.com/wb-go/wbf/logger"
)

// Windows bounds the two reminder firing windows relative to event start.
// The day window fires when DayMin < diff <= DayMax, the hour window when
// 0 < diff <= HourMax. Bounds are wide enough that a sub-hourly sweep
// always lands inside them; the monotonic flags prevent duplicates
// regardless of width.
type Windows struct {
	DayMin  time.Duration
	DayMax  time.Duration
	HourMax time.Duration
}

func DefaultWindows() Windows {
	return Windows{
		DayMin:  23 * time.Hour,
		DayMax:  25 * time.Hour,
		HourMax: 90 * time.Minute,
	}
}

type SweepOptions struct {
	// TestMode restricts the sweep to UserID's own saved events and
	// forces a synthetic hour-window firing for each, so an admin can
	// exercise the dispatch path without touching anyone else's rows.
	TestMode bool
	UserID   string
}

type SweepResult struct {
	Sent24h   int `json:"sent24h"`
	Sent1h    int `json:"sent1h"`
	Errors    int `json:"errors"`
	Processed int `json:"processed"`
}

type ReminderService struct {
	savedRepo ports.SavedEventRepo
	notifRepo ports.NotificationRepo
	notifier  ports.Notifier
	windows   Windows
	logger    logger.Logger
}

func NewReminderService(
	savedRepo ports.SavedEventRepo,
	notifRepo ports.NotificationRepo,
	notifier ports.Notifier,
	windows Windows,
	logger logger.Logger,
) *ReminderService {
	return &ReminderService{
		savedRepo: savedRepo,
		notifRepo: notifRepo,
		notifier:  notifier,
		windows:   windows,
		logger:    logger,
	}
}

// Sweep walks every saved-event row with a pending reminder, dispatches a
// notification for each window the row has entered, and persists the
// advanced flags in one batch. Dispatch failures are counted per row and
// leave the row's flags untouched, so it is retried on the next sweep:
// delivery is at-least-once, never silent.
func (s *ReminderService) Sweep(ctx context.Context, now time.Time, opts SweepOptions) (*SweepResult, error) {
	var (
		rows []*domain.PendingReminder
		err  error
	)
	if opts.TestMode {
		rows, err = s.savedRepo.ListForUser(ctx, opts.UserID)
	} else {
		rows, err = s.savedRepo.ListPending(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}

	res := &SweepResult{}
	var updates []domain.ReminderFlagUpdate

	for _, row := range rows {
		update, ok := s.processRow(ctx, now, row, opts.TestMode, res)
		if ok {
			updates = append(updates, update)
		}
	}

	if len(updates) > 0 {
		// Already-dispatched notifications are not rolled back on a
		// failed upsert; the affected rows re-fire next sweep.
		if err := s.savedRepo.UpsertReminderFlags(ctx, updates); err != nil {
			s.logger.Error("failed to persist reminder flags",
				logger.Int("count", len(updates)),
				logger.String("error", err.Error()),
			)
		}
	}
	res.Processed = len(updates)

	return res, nil
}

func (s *ReminderService) processRow(
	ctx context.Context,
	now time.Time,
	row *domain.PendingReminder,
	testMode bool,
	res *SweepResult,
) (domain.ReminderFlagUpdate, bool) {
	diff := row.EventStartsAt().Sub(now)

	fire24 := !testMode && !row.Reminder24hSent &&
		diff > s.windows.DayMin && diff <= s.windows.DayMax
	fire1 := testMode || (!row.Reminder1hSent && diff > 0 && diff <= s.windows.HourMax)
	if testMode {
		fire24 = false
	}

	update := domain.ReminderFlagUpdate{
		UserID:          row.UserID,
		EventID:         row.EventID,
		Reminder24hSent: row.Reminder24hSent,
		Reminder1hSent:  row.Reminder1hSent,
	}
	staged := false

	if fire24 {
		if s.dispatch(ctx, row, domain.Window24h, res) {
			update.Reminder24hSent = true
			res.Sent24h++
			staged = true
		}
	}
	if fire1 {
		if s.dispatch(ctx, row, domain.Window1h, res) {
			update.Reminder1hSent = true
			res.Sent1h++
			staged = true
		}
	}

	return update, staged
}

func (s *ReminderService) dispatch(
	ctx context.Context,
	row *domain.PendingReminder,
	window domain.ReminderWindow,
	res *SweepResult,
) bool {
	msg := buildReminderMessage(row, window)

	if err := s.notifier.SendToUser(ctx, row.UserID, msg); err != nil {
		res.Errors++
		s.logger.Error("reminder dispatch failed",
			logger.String("user_id", row.UserID),
			logger.String("event_id", row.EventID),
			logger.String("window", string(window)),
			logger.String("error", err.Error()),
		)
		return false
	}

	// Inbox record is best effort; a miss never blocks the flag update.
	n := &domain.Notification{
		ID:        uuid.New().String(),
		UserID:    row.UserID,
		EventID:   row.EventID,
		Type:      domain.TemplateEventReminder,
		Title:     msg.Title,
		Body:      msg.Body,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.notifRepo.Create(ctx, n); err != nil {
		s.logger.Error("failed to record inbox notification",
			logger.String("user_id", row.UserID),
			logger.String("event_id", row.EventID),
			logger.String("error", err.Error()),
		)
	}

	return true
}

func buildReminderMessage(row *domain.PendingReminder, window domain.ReminderWindow) domain.Message {
	startTime := "TBA"
	if row.EventTime != nil && *row.EventTime != "" {
		startTime = *row.EventTime
	}

	msg := domain.Message{
		Template:  domain.TemplateEventReminder,
		EventID:   row.EventID,
		EventName: row.EventTitle,
		Venue:     row.Venue,
		StartTime: startTime,
		Window:    window,
	}

	if window == domain.Window24h {
		msg.Title = "Still planning to go? 📅"
		msg.Body = fmt.Sprintf("%q starts tomorrow at %s in %s.", row.EventTitle, startTime, row.Venue)
	} else {
		msg.Title = "Starting in 1 hour! ⏰"
		msg.Body = fmt.Sprintf("Get ready! %q is about to kick off at %s.", row.EventTitle, row.Venue)
	}

	return msg
}
