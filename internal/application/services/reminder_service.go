package services

import (
	"context"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
)

// ReminderScheduler is the slice of the scheduler the service needs
type ReminderScheduler interface {
	Schedule(r entities.Reminder)
	Cancel(id int)
}

// ReminderService handles the reminder lifecycle. Every successful
// mutation resyncs the scheduler so pending timers always match the
// store.
type ReminderService struct {
	store     ports.ReminderStore
	scheduler ReminderScheduler
	logger    *logger.Logger
}

// NewReminderService creates a new reminder service
func NewReminderService(store ports.ReminderStore, sched ReminderScheduler, log *logger.Logger) *ReminderService {
	return &ReminderService{
		store:     store,
		scheduler: sched,
		logger:    log,
	}
}

// ListReminders returns all reminders in insertion order
func (s *ReminderService) ListReminders(ctx context.Context) []entities.Reminder {
	return s.store.List(ctx)
}

// CreateReminder validates and stores a new reminder, then arms its timer
func (s *ReminderService) CreateReminder(ctx context.Context, req ports.CreateReminderRequest) (*entities.Reminder, error) {
	enabled := true
	if req.Enabled != nil {
		enabled = *req.Enabled
	}

	reminder, err := s.store.Create(ctx, entities.Reminder{
		Type:      req.Type,
		Title:     req.Title,
		Time:      req.Time,
		Frequency: req.Frequency,
		Enabled:   enabled,
	})
	if err != nil {
		return nil, err
	}

	s.scheduler.Schedule(*reminder)
	s.logger.Infow("Reminder created", "reminder_id", reminder.ID, "title", reminder.Title, "time", reminder.Time)

	return reminder, nil
}

// UpdateReminder merges the partial request into the stored record and
// re-arms (or cancels) its timer
func (s *ReminderService) UpdateReminder(ctx context.Context, id int, req ports.UpdateReminderRequest) (*entities.Reminder, error) {
	reminder, err := s.store.Update(ctx, id, ports.ReminderPatch{
		Type:      req.Type,
		Title:     req.Title,
		Time:      req.Time,
		Frequency: req.Frequency,
		Enabled:   req.Enabled,
	})
	if err != nil {
		return nil, err
	}

	// Schedule cancels the old timer and only re-arms when enabled, so a
	// disabled reminder never fires.
	s.scheduler.Schedule(*reminder)
	s.logger.Infow("Reminder updated", "reminder_id", reminder.ID, "enabled", reminder.Enabled)

	return reminder, nil
}

// DeleteReminder removes the reminder and cancels any pending timer
func (s *ReminderService) DeleteReminder(ctx context.Context, id int) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}

	s.scheduler.Cancel(id)
	s.logger.Infow("Reminder deleted", "reminder_id", id)

	return nil
}
