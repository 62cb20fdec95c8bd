package entities

import (
	"errors"
	"time"
)

// Common errors
var (
	ErrReminderNotFound = errors.New("reminder not found")
	ErrDoctorNotFound   = errors.New("doctor not found")
	ErrCountryNotFound  = errors.New("emergency contacts not found for this country")
	ErrCategoryNotFound = errors.New("category not found")
)

// ValidationError reports a rejected create/update before any state is mutated.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a validation error with the given message
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

// Reminder type hints. The type field is free-form and not validated
// against this set.
const (
	ReminderTypeMedication = "medication"
	ReminderTypeWater      = "water"
	ReminderTypeExercise   = "exercise"
)

// Reminder frequency hints. Only daily recurrence is scheduled.
const (
	FrequencyDaily  = "daily"
	FrequencyWeekly = "weekly"
)

// Reminder represents a user-defined scheduled notification with a
// time-of-day and a recurrence hint. IDs are assigned by the store and
// never reused, even after deletion.
type Reminder struct {
	ID        int        `json:"id"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Time      string     `json:"time"` // "HH:MM", 24h, local wall clock
	Frequency string     `json:"frequency"`
	Enabled   bool       `json:"enabled"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Coordinates is a latitude/longitude pair
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Doctor represents a doctor listing
type Doctor struct {
	ID           int         `json:"id"`
	Name         string      `json:"name"`
	Specialty    string      `json:"specialty"`
	Rating       float64     `json:"rating"`
	Distance     string      `json:"distance"`
	Address      string      `json:"address"`
	Phone        string      `json:"phone"`
	Availability string      `json:"availability"`
	Coordinates  Coordinates `json:"coordinates"`
}

// Review is a single patient review on a doctor profile
type Review struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// DoctorDetail is the full doctor profile returned by the detail endpoint
type DoctorDetail struct {
	Doctor
	Reviews   []Review `json:"reviews"`
	Services  []string `json:"services"`
	Languages []string `json:"languages"`
}

// SymptomInfo holds the catalog entry for a known symptom
type SymptomInfo struct {
	PossibleConditions []string `json:"possibleConditions"`
	Recommendations    []string `json:"recommendations"`
	Severity           string   `json:"severity"`
}

// SymptomResult is the per-symptom answer of the symptom checker
type SymptomResult struct {
	Symptom            string   `json:"symptom"`
	PossibleConditions []string `json:"possibleConditions"`
	Recommendations    []string `json:"recommendations"`
	Severity           string   `json:"severity"`
	Language           string   `json:"language,omitempty"`
}

// HealthTip is a single tip entry
type HealthTip struct {
	ID       int    `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Category string `json:"category"`
	Language string `json:"language"`
}

// EmergencyContacts maps a contact kind (emergency, poison, ...) to a
// phone number for one country.
type EmergencyContacts map[string]string

// ImageAnalysis is the mocked analysis returned for an uploaded image
type ImageAnalysis struct {
	Condition       string   `json:"condition"`
	Confidence      float64  `json:"confidence"`
	Recommendations []string `json:"recommendations"`
}
