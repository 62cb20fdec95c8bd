package repository

import (
	"context"
	"math/rand"
	"sort"
	"strings"

	"github.com/healthhelper/core/internal/domain/entities"
)

// The catalogs below serve hard-coded demo data. They satisfy the same
// ports as a real directory service would, so swapping in a live
// backend later only touches wiring.

// DoctorDirectory is an in-memory doctor listing
type DoctorDirectory struct {
	doctors []entities.Doctor
}

// NewDoctorDirectory creates the directory with the built-in demo listing
func NewDoctorDirectory() *DoctorDirectory {
	return &DoctorDirectory{doctors: []entities.Doctor{
		{
			ID:           1,
			Name:         "Dr. Sarah Johnson",
			Specialty:    "General Medicine",
			Rating:       4.8,
			Distance:     "0.5 km",
			Address:      "123 Health Street, Medical District",
			Phone:        "+1-555-0123",
			Availability: "Available now",
			Coordinates:  entities.Coordinates{Lat: 40.7128, Lng: -74.0060},
		},
		{
			ID:           2,
			Name:         "Dr. Michael Chen",
			Specialty:    "Cardiology",
			Rating:       4.9,
			Distance:     "1.2 km",
			Address:      "456 Heart Avenue, Cardiac Center",
			Phone:        "+1-555-0456",
			Availability: "Available in 30 mins",
			Coordinates:  entities.Coordinates{Lat: 40.7589, Lng: -73.9851},
		},
		{
			ID:           3,
			Name:         "Dr. Emily Rodriguez",
			Specialty:    "Dermatology",
			Rating:       4.7,
			Distance:     "2.1 km",
			Address:      "789 Skin Care Blvd, Derma Clinic",
			Phone:        "+1-555-0789",
			Availability: "Available tomorrow",
			Coordinates:  entities.Coordinates{Lat: 40.7505, Lng: -73.9934},
		},
	}}
}

// Nearby returns the listing, optionally filtered by specialty substring
func (d *DoctorDirectory) Nearby(ctx context.Context, specialty string) []entities.Doctor {
	if specialty == "" {
		out := make([]entities.Doctor, len(d.doctors))
		copy(out, d.doctors)
		return out
	}

	needle := strings.ToLower(specialty)
	out := make([]entities.Doctor, 0)
	for _, doc := range d.doctors {
		if strings.Contains(strings.ToLower(doc.Specialty), needle) {
			out = append(out, doc)
		}
	}
	return out
}

// GetByID returns the full profile for one doctor
func (d *DoctorDirectory) GetByID(ctx context.Context, id int) (*entities.DoctorDetail, error) {
	for _, doc := range d.doctors {
		if doc.ID == id {
			return &entities.DoctorDetail{
				Doctor: doc,
				Reviews: []entities.Review{
					{Rating: 5, Comment: "Excellent care and very professional"},
					{Rating: 4, Comment: "Good doctor, helpful staff"},
				},
				Services:  []string{"Consultation", "Health Checkup", "Prescription"},
				Languages: []string{"English", "Spanish", "Hindi"},
			}, nil
		}
	}
	return nil, entities.ErrDoctorNotFound
}

// SymptomIndex is an in-memory symptom catalog keyed by lower-case name
type SymptomIndex struct {
	symptoms map[string]entities.SymptomInfo
}

// NewSymptomIndex creates the index with the built-in demo entries
func NewSymptomIndex() *SymptomIndex {
	return &SymptomIndex{symptoms: map[string]entities.SymptomInfo{
		"headache": {
			PossibleConditions: []string{"Tension headache", "Migraine", "Dehydration"},
			Recommendations:    []string{"Rest in a dark room", "Stay hydrated", "Consider over-the-counter pain relief"},
			Severity:           "mild",
		},
		"fever": {
			PossibleConditions: []string{"Viral infection", "Bacterial infection", "Heat exhaustion"},
			Recommendations:    []string{"Rest and hydration", "Monitor temperature", "Seek medical attention if fever persists"},
			Severity:           "moderate",
		},
		"chest pain": {
			PossibleConditions: []string{"Heart attack", "Angina", "Muscle strain"},
			Recommendations:    []string{"Seek immediate medical attention", "Call emergency services"},
			Severity:           "severe",
		},
	}}
}

// Lookup finds a symptom entry, case-insensitively
func (s *SymptomIndex) Lookup(ctx context.Context, symptom string) (*entities.SymptomInfo, bool) {
	info, ok := s.symptoms[strings.ToLower(symptom)]
	if !ok {
		return nil, false
	}
	return &info, true
}

// Suggestions returns the known symptom names, sorted
func (s *SymptomIndex) Suggestions(ctx context.Context) []string {
	out := make([]string, 0, len(s.symptoms))
	for name := range s.symptoms {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// TipCatalog is an in-memory health tip catalog grouped by category
type TipCatalog struct {
	byCategory map[string][]entities.HealthTip
	categories []string
}

// NewTipCatalog creates the catalog with the built-in demo tips
func NewTipCatalog() *TipCatalog {
	byCategory := map[string][]entities.HealthTip{
		"general": {
			{ID: 1, Title: "Stay Hydrated", Content: "Drink at least 8 glasses of water daily to maintain proper hydration.", Category: "general", Language: "en"},
			{ID: 2, Title: "Regular Exercise", Content: "Aim for at least 30 minutes of moderate exercise 5 days a week.", Category: "fitness", Language: "en"},
			{ID: 3, Title: "Balanced Diet", Content: "Include fruits, vegetables, whole grains, and lean proteins in your diet.", Category: "nutrition", Language: "en"},
		},
		"mental_health": {
			{ID: 4, Title: "Practice Mindfulness", Content: "Take 10 minutes daily for meditation or deep breathing exercises.", Category: "mental_health", Language: "en"},
			{ID: 5, Title: "Quality Sleep", Content: "Aim for 7-9 hours of quality sleep each night for better mental health.", Category: "mental_health", Language: "en"},
		},
		"nutrition": {
			{ID: 6, Title: "Eat Rainbow Colors", Content: "Include colorful fruits and vegetables to get diverse nutrients.", Category: "nutrition", Language: "en"},
			{ID: 7, Title: "Limit Processed Foods", Content: "Reduce intake of processed and packaged foods high in sodium and sugar.", Category: "nutrition", Language: "en"},
		},
	}

	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	return &TipCatalog{byCategory: byCategory, categories: categories}
}

// All returns every tip across categories
func (t *TipCatalog) All(ctx context.Context) []entities.HealthTip {
	out := make([]entities.HealthTip, 0)
	for _, cat := range t.categories {
		out = append(out, t.byCategory[cat]...)
	}
	return out
}

// Categories returns the category names, sorted
func (t *TipCatalog) Categories(ctx context.Context) []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// ByCategory returns the tips of one category
func (t *TipCatalog) ByCategory(ctx context.Context, category string) ([]entities.HealthTip, error) {
	tips, ok := t.byCategory[category]
	if !ok {
		return nil, entities.ErrCategoryNotFound
	}
	out := make([]entities.HealthTip, len(tips))
	copy(out, tips)
	return out, nil
}

// Random returns one tip picked uniformly across all categories
func (t *TipCatalog) Random(ctx context.Context) entities.HealthTip {
	all := t.All(ctx)
	return all[rand.Intn(len(all))]
}

// EmergencyDirectory is an in-memory table of per-country emergency numbers
type EmergencyDirectory struct {
	contacts map[string]entities.EmergencyContacts
}

// NewEmergencyDirectory creates the directory with the built-in numbers
func NewEmergencyDirectory() *EmergencyDirectory {
	return &EmergencyDirectory{contacts: map[string]entities.EmergencyContacts{
		"US": {
			"emergency":         "911",
			"poison":            "1-800-222-1222",
			"suicide":           "988",
			"domestic_violence": "1-800-799-7233",
		},
		"UK": {
			"emergency":         "999",
			"poison":            "111",
			"suicide":           "116 123",
			"domestic_violence": "0808 2000 247",
		},
		"IN": {
			"emergency":      "112",
			"police":         "100",
			"fire":           "101",
			"ambulance":      "108",
			"women_helpline": "1091",
		},
		"CA": {
			"emergency":         "911",
			"poison":            "1-844-764-7669",
			"suicide":           "1-833-456-4566",
			"domestic_violence": "1-800-799-7233",
		},
	}}
}

// Countries returns the supported country codes, sorted
func (e *EmergencyDirectory) Countries(ctx context.Context) []string {
	out := make([]string, 0, len(e.contacts))
	for country := range e.contacts {
		out = append(out, country)
	}
	sort.Strings(out)
	return out
}

// ByCountry returns the numbers for one country code (case-insensitive)
func (e *EmergencyDirectory) ByCountry(ctx context.Context, country string) (entities.EmergencyContacts, error) {
	contacts, ok := e.contacts[strings.ToUpper(country)]
	if !ok {
		return nil, entities.ErrCountryNotFound
	}
	return contacts, nil
}
