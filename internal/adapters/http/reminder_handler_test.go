package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthhelper/core/internal/adapters/repository"
	"github.com/healthhelper/core/internal/application/services"
	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
)

type testValidator struct {
	validator *validator.Validate
}

func (tv *testValidator) Validate(i interface{}) error {
	return tv.validator.Struct(i)
}

// fakeScheduler records scheduling calls so tests can assert the
// service keeps timers in lockstep with the store
type fakeScheduler struct {
	mu        sync.Mutex
	scheduled []entities.Reminder
	cancelled []int
}

func (f *fakeScheduler) Schedule(r entities.Reminder) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scheduled = append(f.scheduled, r)
}

func (f *fakeScheduler) Cancel(id int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, id)
}

func newReminderTestSetup() (*echo.Echo, *ReminderHandler, *fakeScheduler) {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	sched := &fakeScheduler{}
	store := repository.NewReminderStore()
	service := services.NewReminderService(store, sched, logger.NewNop())
	handler := NewReminderHandler(service, logger.NewNop())

	return e, handler, sched
}

func doJSON(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListRemindersEmpty(t *testing.T) {
	e, handler, _ := newReminderTestSetup()

	c, rec := doJSON(e, http.MethodGet, "/api/reminders", "")
	require.NoError(t, handler.ListReminders(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReminderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Empty(t, resp.Reminders)
}

func TestCreateReminder(t *testing.T) {
	e, handler, sched := newReminderTestSetup()

	body := `{"type":"water","title":"Drink water","time":"14:00","frequency":"daily"}`
	c, rec := doJSON(e, http.MethodPost, "/api/reminders", body)
	require.NoError(t, handler.CreateReminder(c))

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Reminder)
	assert.Equal(t, 1, resp.Reminder.ID)
	assert.Equal(t, "Drink water", resp.Reminder.Title)
	assert.True(t, resp.Reminder.Enabled, "enabled defaults to true when omitted")
	assert.False(t, resp.Reminder.CreatedAt.IsZero())

	require.Len(t, sched.scheduled, 1)
	assert.Equal(t, 1, sched.scheduled[0].ID)
}

func TestCreateReminderDisabled(t *testing.T) {
	e, handler, _ := newReminderTestSetup()

	body := `{"title":"Evening pills","time":"21:00","enabled":false}`
	c, rec := doJSON(e, http.MethodPost, "/api/reminders", body)
	require.NoError(t, handler.CreateReminder(c))

	var resp ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Reminder.Enabled)
}

func TestCreateReminderRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title", `{"time":"14:00"}`},
		{"missing time", `{"title":"Drink water"}`},
		{"malformed time", `{"title":"Drink water","time":"25:99"}`},
		{"non-numeric time", `{"title":"Drink water","time":"soon"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, handler, sched := newReminderTestSetup()

			c, _ := doJSON(e, http.MethodPost, "/api/reminders", tt.body)
			err := handler.CreateReminder(c)

			var he *echo.HTTPError
			require.ErrorAs(t, err, &he)
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Empty(t, sched.scheduled)
		})
	}
}

func TestUpdateReminderPartial(t *testing.T) {
	e, handler, sched := newReminderTestSetup()

	c, _ := doJSON(e, http.MethodPost, "/api/reminders", `{"title":"Drink water","time":"14:00"}`)
	require.NoError(t, handler.CreateReminder(c))

	c, rec := doJSON(e, http.MethodPut, "/api/reminders/1", `{"enabled":false}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, handler.UpdateReminder(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Reminder.Enabled)
	assert.Equal(t, "Drink water", resp.Reminder.Title)
	assert.Equal(t, "14:00", resp.Reminder.Time)
	assert.NotNil(t, resp.Reminder.UpdatedAt)

	// Create armed it, the disable update re-scheduled it
	require.Len(t, sched.scheduled, 2)
	assert.False(t, sched.scheduled[1].Enabled)
}

func TestUpdateReminderLastWriteWins(t *testing.T) {
	e, handler, _ := newReminderTestSetup()

	c, _ := doJSON(e, http.MethodPost, "/api/reminders", `{"title":"Drink water","time":"14:00"}`)
	require.NoError(t, handler.CreateReminder(c))

	c, _ = doJSON(e, http.MethodPut, "/api/reminders/1", `{"time":"15:00"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, handler.UpdateReminder(c))

	c, rec := doJSON(e, http.MethodPut, "/api/reminders/1", `{"time":"16:30"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, handler.UpdateReminder(c))

	var resp ReminderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "16:30", resp.Reminder.Time)

	c, rec = doJSON(e, http.MethodGet, "/api/reminders", "")
	require.NoError(t, handler.ListReminders(c))
	var list ReminderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Reminders, 1)
	assert.Equal(t, "16:30", list.Reminders[0].Time)
}

func TestUpdateReminderNotFound(t *testing.T) {
	e, handler, _ := newReminderTestSetup()

	c, _ := doJSON(e, http.MethodPut, "/api/reminders/99", `{"enabled":false}`)
	c.SetParamNames("id")
	c.SetParamValues("99")
	err := handler.UpdateReminder(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestUpdateReminderBadID(t *testing.T) {
	e, handler, _ := newReminderTestSetup()

	c, _ := doJSON(e, http.MethodPut, "/api/reminders/abc", `{"enabled":false}`)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	err := handler.UpdateReminder(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestDeleteReminder(t *testing.T) {
	e, handler, sched := newReminderTestSetup()

	c, _ := doJSON(e, http.MethodPost, "/api/reminders", `{"title":"Drink water","time":"14:00"}`)
	require.NoError(t, handler.CreateReminder(c))

	c, rec := doJSON(e, http.MethodDelete, "/api/reminders/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, handler.DeleteReminder(c))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Reminder deleted", resp.Message)
	assert.Equal(t, []int{1}, sched.cancelled)

	// Deleting again reports not found
	c, _ = doJSON(e, http.MethodDelete, "/api/reminders/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := handler.DeleteReminder(c)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusNotFound, he.Code)
}
