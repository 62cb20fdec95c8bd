package services

import (
	"context"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
)

// SymptomService answers symptom-checker queries from the catalog
type SymptomService struct {
	index  ports.SymptomIndex
	logger *logger.Logger
}

// NewSymptomService creates a new symptom service
func NewSymptomService(index ports.SymptomIndex, log *logger.Logger) *SymptomService {
	return &SymptomService{index: index, logger: log}
}

// CheckSymptoms maps each submitted symptom to its catalog entry, or to
// a generic "see a professional" answer when unknown. Matched results
// carry the request language, defaulting to "en".
func (s *SymptomService) CheckSymptoms(ctx context.Context, req ports.CheckSymptomsRequest) []entities.SymptomResult {
	language := req.Language
	if language == "" {
		language = "en"
	}

	results := make([]entities.SymptomResult, 0, len(req.Symptoms))
	for _, symptom := range req.Symptoms {
		if info, ok := s.index.Lookup(ctx, symptom); ok {
			results = append(results, entities.SymptomResult{
				Symptom:            symptom,
				PossibleConditions: info.PossibleConditions,
				Recommendations:    info.Recommendations,
				Severity:           info.Severity,
				Language:           language,
			})
			continue
		}
		results = append(results, entities.SymptomResult{
			Symptom:            symptom,
			PossibleConditions: []string{"Unknown condition"},
			Recommendations:    []string{"Consult a healthcare professional"},
			Severity:           "unknown",
		})
	}

	s.logger.Infow("Symptom check completed", "count", len(results))
	return results
}

// GetSuggestions returns the known symptom names
func (s *SymptomService) GetSuggestions(ctx context.Context) []string {
	return s.index.Suggestions(ctx)
}

// DoctorService answers doctor-search queries from the directory
type DoctorService struct {
	directory ports.DoctorDirectory
	logger    *logger.Logger
}

// NewDoctorService creates a new doctor service
func NewDoctorService(directory ports.DoctorDirectory, log *logger.Logger) *DoctorService {
	return &DoctorService{directory: directory, logger: log}
}

// FindNearby returns the listing filtered by specialty. The demo data
// carries pre-computed distances, so radius is accepted but ignored.
func (s *DoctorService) FindNearby(ctx context.Context, specialty string) []entities.Doctor {
	return s.directory.Nearby(ctx, specialty)
}

// GetDoctor returns the full profile for one doctor
func (s *DoctorService) GetDoctor(ctx context.Context, id int) (*entities.DoctorDetail, error) {
	return s.directory.GetByID(ctx, id)
}

// TipService answers health-tip queries from the catalog
type TipService struct {
	catalog ports.TipCatalog
	logger  *logger.Logger
}

// NewTipService creates a new tip service
func NewTipService(catalog ports.TipCatalog, log *logger.Logger) *TipService {
	return &TipService{catalog: catalog, logger: log}
}

// GetAllTips returns every tip plus the category names
func (s *TipService) GetAllTips(ctx context.Context) ([]entities.HealthTip, []string) {
	return s.catalog.All(ctx), s.catalog.Categories(ctx)
}

// GetTipsByCategory returns the tips of one category
func (s *TipService) GetTipsByCategory(ctx context.Context, category string) ([]entities.HealthTip, error) {
	return s.catalog.ByCategory(ctx, category)
}

// GetRandomTip returns one random tip
func (s *TipService) GetRandomTip(ctx context.Context) entities.HealthTip {
	return s.catalog.Random(ctx)
}

// EmergencyService answers emergency-number lookups from the directory
type EmergencyService struct {
	directory ports.EmergencyDirectory
	logger    *logger.Logger
}

// NewEmergencyService creates a new emergency service
func NewEmergencyService(directory ports.EmergencyDirectory, log *logger.Logger) *EmergencyService {
	return &EmergencyService{directory: directory, logger: log}
}

// GetCountries returns the supported country codes
func (s *EmergencyService) GetCountries(ctx context.Context) []string {
	return s.directory.Countries(ctx)
}

// GetContacts returns the emergency numbers for one country
func (s *EmergencyService) GetContacts(ctx context.Context, country string) (entities.EmergencyContacts, error) {
	return s.directory.ByCountry(ctx, country)
}
