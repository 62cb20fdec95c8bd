package ports

import (
	"context"
	"mime/multipart"

	"github.com/healthhelper/core/internal/domain/entities"
)

// ReminderService defines the interface for reminder lifecycle operations
type ReminderService interface {
	ListReminders(ctx context.Context) []entities.Reminder
	CreateReminder(ctx context.Context, req CreateReminderRequest) (*entities.Reminder, error)
	UpdateReminder(ctx context.Context, id int, req UpdateReminderRequest) (*entities.Reminder, error)
	DeleteReminder(ctx context.Context, id int) error
}

// SymptomService defines the interface for the symptom checker
type SymptomService interface {
	CheckSymptoms(ctx context.Context, req CheckSymptomsRequest) []entities.SymptomResult
	GetSuggestions(ctx context.Context) []string
}

// DoctorService defines the interface for the doctor search
type DoctorService interface {
	FindNearby(ctx context.Context, specialty string) []entities.Doctor
	GetDoctor(ctx context.Context, id int) (*entities.DoctorDetail, error)
}

// TipService defines the interface for health tips
type TipService interface {
	GetAllTips(ctx context.Context) ([]entities.HealthTip, []string)
	GetTipsByCategory(ctx context.Context, category string) ([]entities.HealthTip, error)
	GetRandomTip(ctx context.Context) entities.HealthTip
}

// EmergencyService defines the interface for emergency contact lookups
type EmergencyService interface {
	GetCountries(ctx context.Context) []string
	GetContacts(ctx context.Context, country string) (entities.EmergencyContacts, error)
}

// UploadService defines the interface for image upload handling
type UploadService interface {
	StoreImage(ctx context.Context, file *multipart.FileHeader) (string, *entities.ImageAnalysis, error)
}

// CreateReminderRequest is the body of POST /api/reminders
type CreateReminderRequest struct {
	Type      string `json:"type"`
	Title     string `json:"title" validate:"required"`
	Time      string `json:"time" validate:"required,datetime=15:04"`
	Frequency string `json:"frequency"`
	Enabled   *bool  `json:"enabled"` // defaults to true when omitted
}

// UpdateReminderRequest is the partial body of PUT /api/reminders/:id.
// Absent fields leave the stored value unchanged.
type UpdateReminderRequest struct {
	Type      *string `json:"type"`
	Title     *string `json:"title"`
	Time      *string `json:"time" validate:"omitempty,datetime=15:04"`
	Frequency *string `json:"frequency"`
	Enabled   *bool   `json:"enabled"`
}

// CheckSymptomsRequest is the body of POST /api/symptoms/check
type CheckSymptomsRequest struct {
	Symptoms []string `json:"symptoms" validate:"required,min=1"`
	Language string   `json:"language"`
}
