package repository

import (
	"context"
	"sync"
	"time"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/ports"
)

// ReminderStore holds the canonical reminder list in memory for the
// process lifetime. State is intentionally not persisted: a restart
// clears all reminders. A single mutex makes each operation atomic
// under echo's concurrent request handling.
type ReminderStore struct {
	mu        sync.Mutex
	reminders []entities.Reminder
	nextID    int
}

// NewReminderStore creates an empty store. The first reminder gets id 1.
func NewReminderStore() *ReminderStore {
	return &ReminderStore{
		reminders: make([]entities.Reminder, 0),
		nextID:    1,
	}
}

// List returns all reminders in insertion order
func (s *ReminderStore) List(ctx context.Context) []entities.Reminder {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entities.Reminder, len(s.reminders))
	copy(out, s.reminders)
	return out
}

// Create validates the reminder, assigns the next id and appends it
func (s *ReminderStore) Create(ctx context.Context, r entities.Reminder) (*entities.Reminder, error) {
	if r.Title == "" || r.Time == "" {
		return nil, entities.NewValidationError("missing required fields")
	}
	if !validClockTime(r.Time) {
		return nil, entities.NewValidationError("time must be a valid 24-hour HH:MM value")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.nextID
	s.nextID++
	r.CreatedAt = time.Now()
	r.UpdatedAt = nil

	s.reminders = append(s.reminders, r)

	created := r
	return &created, nil
}

// Update merges the set fields of the patch into the stored record
func (s *ReminderStore) Update(ctx context.Context, id int, patch ports.ReminderPatch) (*entities.Reminder, error) {
	if patch.Time != nil && !validClockTime(*patch.Time) {
		return nil, entities.NewValidationError("time must be a valid 24-hour HH:MM value")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return nil, entities.ErrReminderNotFound
	}

	r := &s.reminders[idx]
	if patch.Type != nil {
		r.Type = *patch.Type
	}
	if patch.Title != nil {
		r.Title = *patch.Title
	}
	if patch.Time != nil {
		r.Time = *patch.Time
	}
	if patch.Frequency != nil {
		r.Frequency = *patch.Frequency
	}
	if patch.Enabled != nil {
		r.Enabled = *patch.Enabled
	}

	now := time.Now()
	r.UpdatedAt = &now

	updated := *r
	return &updated, nil
}

// Delete removes the record irreversibly. The id is never reused.
func (s *ReminderStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return entities.ErrReminderNotFound
	}

	s.reminders = append(s.reminders[:idx], s.reminders[idx+1:]...)
	return nil
}

// indexOf must be called with the mutex held
func (s *ReminderStore) indexOf(id int) int {
	for i := range s.reminders {
		if s.reminders[i].ID == id {
			return i
		}
	}
	return -1
}

func validClockTime(value string) bool {
	_, err := time.Parse("15:04", value)
	return err == nil
}
