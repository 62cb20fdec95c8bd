package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
)

const symptomDisclaimer = "This is not a substitute for professional medical advice"
const emergencyDisclaimer = "In case of emergency, call immediately. These numbers are for reference only."

// SymptomHandler handles symptom-checker requests
type SymptomHandler struct {
	symptomService ports.SymptomService
	logger         *logger.Logger
}

// NewSymptomHandler creates a new symptom handler
func NewSymptomHandler(symptomService ports.SymptomService, logger *logger.Logger) *SymptomHandler {
	return &SymptomHandler{symptomService: symptomService, logger: logger}
}

// CheckSymptoms handles POST /api/symptoms/check
func (h *SymptomHandler) CheckSymptoms(c echo.Context) error {
	var req ports.CheckSymptomsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No symptoms provided")
	}

	results := h.symptomService.CheckSymptoms(c.Request().Context(), req)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"results":    results,
		"disclaimer": symptomDisclaimer,
	})
}

// GetSuggestions handles GET /api/symptoms/suggestions
func (h *SymptomHandler) GetSuggestions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"suggestions": h.symptomService.GetSuggestions(c.Request().Context()),
	})
}

// DoctorHandler handles doctor-search requests
type DoctorHandler struct {
	doctorService ports.DoctorService
	logger        *logger.Logger
}

// NewDoctorHandler creates a new doctor handler
func NewDoctorHandler(doctorService ports.DoctorService, logger *logger.Logger) *DoctorHandler {
	return &DoctorHandler{doctorService: doctorService, logger: logger}
}

// FindNearby handles GET /api/doctors/nearby
func (h *DoctorHandler) FindNearby(c echo.Context) error {
	specialty := c.QueryParam("specialty")

	doctors := h.doctorService.FindNearby(c.Request().Context(), specialty)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"doctors": doctors,
		"total":   len(doctors),
	})
}

// GetDoctor handles GET /api/doctors/:id
func (h *DoctorHandler) GetDoctor(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid doctor ID")
	}

	doctor, err := h.doctorService.GetDoctor(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, entities.ErrDoctorNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Doctor not found")
		}
		h.logger.Error("Get doctor failed", "error", err, "doctor_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve doctor")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"doctor":  doctor,
	})
}

// TipHandler handles health-tip requests
type TipHandler struct {
	tipService ports.TipService
	logger     *logger.Logger
}

// NewTipHandler creates a new tip handler
func NewTipHandler(tipService ports.TipService, logger *logger.Logger) *TipHandler {
	return &TipHandler{tipService: tipService, logger: logger}
}

// GetAllTips handles GET /api/tips
func (h *TipHandler) GetAllTips(c echo.Context) error {
	tips, categories := h.tipService.GetAllTips(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"tips":       tips,
		"categories": categories,
		"total":      len(tips),
	})
}

// GetRandomTip handles GET /api/tips/random
func (h *TipHandler) GetRandomTip(c echo.Context) error {
	tip := h.tipService.GetRandomTip(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"tip":     tip,
	})
}

// GetTipsByCategory handles GET /api/tips/:category
func (h *TipHandler) GetTipsByCategory(c echo.Context) error {
	category := c.Param("category")

	tips, err := h.tipService.GetTipsByCategory(c.Request().Context(), category)
	if err != nil {
		_, categories := h.tipService.GetAllTips(c.Request().Context())
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error":                "Category not found",
			"available_categories": categories,
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"category": category,
		"tips":     tips,
		"total":    len(tips),
	})
}

// EmergencyHandler handles emergency-contact requests
type EmergencyHandler struct {
	emergencyService ports.EmergencyService
	logger           *logger.Logger
}

// NewEmergencyHandler creates a new emergency handler
func NewEmergencyHandler(emergencyService ports.EmergencyService, logger *logger.Logger) *EmergencyHandler {
	return &EmergencyHandler{emergencyService: emergencyService, logger: logger}
}

// GetCountries handles GET /api/emergency
func (h *EmergencyHandler) GetCountries(c echo.Context) error {
	countries := h.emergencyService.GetCountries(c.Request().Context())

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":             true,
		"available_countries": countries,
		"total":               len(countries),
	})
}

// GetContacts handles GET /api/emergency/:country
func (h *EmergencyHandler) GetContacts(c echo.Context) error {
	country := c.Param("country")

	contacts, err := h.emergencyService.GetContacts(c.Request().Context(), country)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"error":               "Emergency contacts not found for this country",
			"available_countries": h.emergencyService.GetCountries(c.Request().Context()),
		})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"country":    strings.ToUpper(country),
		"contacts":   contacts,
		"disclaimer": emergencyDisclaimer,
	})
}

// UploadHandler handles image uploads
type UploadHandler struct {
	uploadService ports.UploadService
	logger        *logger.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(uploadService ports.UploadService, logger *logger.Logger) *UploadHandler {
	return &UploadHandler{uploadService: uploadService, logger: logger}
}

// UploadImage handles POST /api/upload-image
func (h *UploadHandler) UploadImage(c echo.Context) error {
	file, err := c.FormFile("image")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No image uploaded")
	}

	filename, analysis, err := h.uploadService.StoreImage(c.Request().Context(), file)
	if err != nil {
		h.logger.Error("Image upload failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store image")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":  true,
		"filename": filename,
		"analysis": analysis,
	})
}
