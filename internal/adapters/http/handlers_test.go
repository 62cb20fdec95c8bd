package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelper/core/internal/adapters/repository"
	"github.com/healthhelper/core/internal/application/services"
	"github.com/healthhelper/core/internal/infrastructure/logger"
)

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func TestCheckSymptoms(t *testing.T) {
	e := newTestEcho()
	handler := NewSymptomHandler(services.NewSymptomService(repository.NewSymptomIndex(), logger.NewNop()), logger.NewNop())

	body := `{"symptoms":["Headache","sore toe"]}`
	c, rec := doJSON(e, http.MethodPost, "/api/symptoms/check", body)
	require.NoError(t, handler.CheckSymptoms(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success    bool   `json:"success"`
		Disclaimer string `json:"disclaimer"`
		Results    []struct {
			Symptom            string   `json:"symptom"`
			PossibleConditions []string `json:"possibleConditions"`
			Severity           string   `json:"severity"`
			Language           string   `json:"language"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Disclaimer)
	require.Len(t, resp.Results, 2)

	// Known symptom matched case-insensitively, language defaults to en
	assert.Equal(t, "Headache", resp.Results[0].Symptom)
	assert.Contains(t, resp.Results[0].PossibleConditions, "Migraine")
	assert.Equal(t, "mild", resp.Results[0].Severity)
	assert.Equal(t, "en", resp.Results[0].Language)

	// Unknown symptom falls back to the generic answer, no language
	assert.Equal(t, []string{"Unknown condition"}, resp.Results[1].PossibleConditions)
	assert.Equal(t, "unknown", resp.Results[1].Severity)
	assert.Empty(t, resp.Results[1].Language)
}

func TestCheckSymptomsHonorsRequestLanguage(t *testing.T) {
	e := newTestEcho()
	handler := NewSymptomHandler(services.NewSymptomService(repository.NewSymptomIndex(), logger.NewNop()), logger.NewNop())

	body := `{"symptoms":["fever"],"language":"es"}`
	c, rec := doJSON(e, http.MethodPost, "/api/symptoms/check", body)
	require.NoError(t, handler.CheckSymptoms(c))

	var resp struct {
		Results []struct {
			Language string `json:"language"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "es", resp.Results[0].Language)
}

func TestCheckSymptomsRejectsEmptyList(t *testing.T) {
	e := newTestEcho()
	handler := NewSymptomHandler(services.NewSymptomService(repository.NewSymptomIndex(), logger.NewNop()), logger.NewNop())

	for _, body := range []string{`{}`, `{"symptoms":[]}`} {
		c, _ := doJSON(e, http.MethodPost, "/api/symptoms/check", body)
		err := handler.CheckSymptoms(c)

		var he *echo.HTTPError
		require.ErrorAs(t, err, &he, "body %s", body)
		assert.Equal(t, http.StatusBadRequest, he.Code)
	}
}

func TestGetSymptomSuggestions(t *testing.T) {
	e := newTestEcho()
	handler := NewSymptomHandler(services.NewSymptomService(repository.NewSymptomIndex(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/symptoms/suggestions", "")
	require.NoError(t, handler.GetSuggestions(c))

	var resp struct {
		Suggestions []string `json:"suggestions"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"chest pain", "fever", "headache"}, resp.Suggestions)
}

func TestFindNearbyDoctors(t *testing.T) {
	e := newTestEcho()
	handler := NewDoctorHandler(services.NewDoctorService(repository.NewDoctorDirectory(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/doctors/nearby", "")
	require.NoError(t, handler.FindNearby(c))

	var resp struct {
		Success bool `json:"success"`
		Total   int  `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 3, resp.Total)
}

func TestFindNearbyDoctorsFiltersBySpecialty(t *testing.T) {
	e := newTestEcho()
	handler := NewDoctorHandler(services.NewDoctorService(repository.NewDoctorDirectory(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/doctors/nearby?specialty=cardio", "")
	require.NoError(t, handler.FindNearby(c))

	var resp struct {
		Doctors []struct {
			Specialty string `json:"specialty"`
		} `json:"doctors"`
		Total int `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, "Cardiology", resp.Doctors[0].Specialty)
}

func TestGetDoctorDetail(t *testing.T) {
	e := newTestEcho()
	handler := NewDoctorHandler(services.NewDoctorService(repository.NewDoctorDirectory(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/doctors/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, handler.GetDoctor(c))

	var resp struct {
		Success bool `json:"success"`
		Doctor  struct {
			Name    string `json:"name"`
			Reviews []struct {
				Rating int `json:"rating"`
			} `json:"reviews"`
		} `json:"doctor"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Dr. Sarah Johnson", resp.Doctor.Name)
	assert.NotEmpty(t, resp.Doctor.Reviews)
}

func TestGetDoctorNotFound(t *testing.T) {
	e := newTestEcho()
	handler := NewDoctorHandler(services.NewDoctorService(repository.NewDoctorDirectory(), logger.NewNop()), logger.NewNop())

	c, _ := doJSON(e, http.MethodGet, "/api/doctors/99", "")
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := handler.GetDoctor(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestGetAllTips(t *testing.T) {
	e := newTestEcho()
	handler := NewTipHandler(services.NewTipService(repository.NewTipCatalog(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/tips", "")
	require.NoError(t, handler.GetAllTips(c))

	var resp struct {
		Success    bool     `json:"success"`
		Categories []string `json:"categories"`
		Total      int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"general", "mental_health", "nutrition"}, resp.Categories)
	assert.Equal(t, 7, resp.Total)
}

func TestGetTipsByCategory(t *testing.T) {
	e := newTestEcho()
	handler := NewTipHandler(services.NewTipService(repository.NewTipCatalog(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/tips/mental_health", "")
	c.SetParamNames("category")
	c.SetParamValues("mental_health")
	require.NoError(t, handler.GetTipsByCategory(c))

	var resp struct {
		Success  bool   `json:"success"`
		Category string `json:"category"`
		Total    int    `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "mental_health", resp.Category)
	assert.Equal(t, 2, resp.Total)
}

func TestGetTipsByUnknownCategory(t *testing.T) {
	e := newTestEcho()
	handler := NewTipHandler(services.NewTipService(repository.NewTipCatalog(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/tips/sleep", "")
	c.SetParamNames("category")
	c.SetParamValues("sleep")
	require.NoError(t, handler.GetTipsByCategory(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error               string   `json:"error"`
		AvailableCategories []string `json:"available_categories"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Category not found", resp.Error)
	assert.Equal(t, []string{"general", "mental_health", "nutrition"}, resp.AvailableCategories)
}

func TestGetRandomTip(t *testing.T) {
	e := newTestEcho()
	handler := NewTipHandler(services.NewTipService(repository.NewTipCatalog(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/tips/random", "")
	require.NoError(t, handler.GetRandomTip(c))

	var resp struct {
		Success bool `json:"success"`
		Tip     struct {
			Title string `json:"title"`
		} `json:"tip"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.Tip.Title)
}

func TestGetEmergencyCountries(t *testing.T) {
	e := newTestEcho()
	handler := NewEmergencyHandler(services.NewEmergencyService(repository.NewEmergencyDirectory(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/emergency", "")
	require.NoError(t, handler.GetCountries(c))

	var resp struct {
		Success            bool     `json:"success"`
		AvailableCountries []string `json:"available_countries"`
		Total              int      `json:"total"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, []string{"CA", "IN", "UK", "US"}, resp.AvailableCountries)
	assert.Equal(t, 4, resp.Total)
}

func TestGetEmergencyContacts(t *testing.T) {
	e := newTestEcho()
	handler := NewEmergencyHandler(services.NewEmergencyService(repository.NewEmergencyDirectory(), logger.NewNop()), logger.NewNop())

	// Lower-case lookup still resolves
	c, rec := doJSON(e, http.MethodGet, "/api/emergency/us", "")
	c.SetParamNames("country")
	c.SetParamValues("us")
	require.NoError(t, handler.GetContacts(c))

	var resp struct {
		Success  bool              `json:"success"`
		Country  string            `json:"country"`
		Contacts map[string]string `json:"contacts"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "US", resp.Country)
	assert.Equal(t, "911", resp.Contacts["emergency"])
}

func TestGetEmergencyContactsUnknownCountry(t *testing.T) {
	e := newTestEcho()
	handler := NewEmergencyHandler(services.NewEmergencyService(repository.NewEmergencyDirectory(), logger.NewNop()), logger.NewNop())

	c, rec := doJSON(e, http.MethodGet, "/api/emergency/FR", "")
	c.SetParamNames("country")
	c.SetParamValues("FR")
	require.NoError(t, handler.GetContacts(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp struct {
		Error              string   `json:"error"`
		AvailableCountries []string `json:"available_countries"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Error)
	assert.Contains(t, resp.AvailableCountries, "US")
}

func TestUploadImageWithoutFile(t *testing.T) {
	e := newTestEcho()
	uploadService, err := services.NewUploadService(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	handler := NewUploadHandler(uploadService, logger.NewNop())

	c, _ := doJSON(e, http.MethodPost, "/api/upload-image", "")
	err = handler.UploadImage(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}
