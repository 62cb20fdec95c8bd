package ports

import (
	"context"

	"github.com/healthhelper/core/internal/domain/entities"
)

// ReminderStore defines the interface for the authoritative reminder
// collection. Implementations must make every operation atomic with
// respect to the others.
type ReminderStore interface {
	// List returns all reminders in insertion order. It never fails.
	List(ctx context.Context) []entities.Reminder
	// Create validates the reminder, assigns the next id, stamps
	// createdAt and appends it. Returns *entities.ValidationError when
	// title or time is missing or time is not a valid 24h HH:MM value.
	Create(ctx context.Context, r entities.Reminder) (*entities.Reminder, error)
	// Update merges the set fields of the patch into the record and
	// stamps updatedAt. Returns entities.ErrReminderNotFound for an
	// unknown id.
	Update(ctx context.Context, id int, patch ReminderPatch) (*entities.Reminder, error)
	// Delete removes the record irreversibly. Returns
	// entities.ErrReminderNotFound for an unknown id. The id is never
	// reused afterwards.
	Delete(ctx context.Context, id int) error
}

// ReminderPatch carries the optional fields of a partial update. Nil
// fields are left unchanged.
type ReminderPatch struct {
	Type      *string
	Title     *string
	Time      *string
	Frequency *string
	Enabled   *bool
}

// DoctorDirectory defines the interface for the doctor listing lookup
type DoctorDirectory interface {
	Nearby(ctx context.Context, specialty string) []entities.Doctor
	GetByID(ctx context.Context, id int) (*entities.DoctorDetail, error)
}

// SymptomIndex defines the interface for the symptom catalog
type SymptomIndex interface {
	Lookup(ctx context.Context, symptom string) (*entities.SymptomInfo, bool)
	Suggestions(ctx context.Context) []string
}

// TipCatalog defines the interface for the health tip catalog
type TipCatalog interface {
	All(ctx context.Context) []entities.HealthTip
	Categories(ctx context.Context) []string
	ByCategory(ctx context.Context, category string) ([]entities.HealthTip, error)
	Random(ctx context.Context) entities.HealthTip
}

// EmergencyDirectory defines the interface for per-country emergency numbers
type EmergencyDirectory interface {
	Countries(ctx context.Context) []string
	ByCountry(ctx context.Context, country string) (entities.EmergencyContacts, error)
}
