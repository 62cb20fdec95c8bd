package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/healthhelper/core/internal/domain/entities"
	"github.com/healthhelper/core/internal/infrastructure/logger"
	"github.com/healthhelper/core/internal/ports"
)

// ReminderHandler handles reminder-related requests
type ReminderHandler struct {
	reminderService ports.ReminderService
	logger          *logger.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(reminderService ports.ReminderService, logger *logger.Logger) *ReminderHandler {
	return &ReminderHandler{
		reminderService: reminderService,
		logger:          logger,
	}
}

// ListReminders handles GET /api/reminders
func (h *ReminderHandler) ListReminders(c echo.Context) error {
	reminders := h.reminderService.ListReminders(c.Request().Context())

	return c.JSON(http.StatusOK, ReminderListResponse{
		Success:   true,
		Reminders: reminders,
	})
}

// CreateReminder handles POST /api/reminders
func (h *ReminderHandler) CreateReminder(c echo.Context) error {
	var req ports.CreateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Missing required fields")
	}

	reminder, err := h.reminderService.CreateReminder(c.Request().Context(), req)
	if err != nil {
		var ve *entities.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
		}
		h.logger.Error("Create reminder failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create reminder")
	}

	return c.JSON(http.StatusCreated, ReminderResponse{
		Success:  true,
		Reminder: reminder,
	})
}

// UpdateReminder handles PUT /api/reminders/:id
func (h *ReminderHandler) UpdateReminder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reminder ID")
	}

	var req ports.UpdateReminderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid field values")
	}

	reminder, err := h.reminderService.UpdateReminder(c.Request().Context(), id, req)
	if err != nil {
		if errors.Is(err, entities.ErrReminderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reminder not found")
		}
		var ve *entities.ValidationError
		if errors.As(err, &ve) {
			return echo.NewHTTPError(http.StatusBadRequest, ve.Message)
		}
		h.logger.Error("Update reminder failed", "error", err, "reminder_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to update reminder")
	}

	return c.JSON(http.StatusOK, ReminderResponse{
		Success:  true,
		Reminder: reminder,
	})
}

// DeleteReminder handles DELETE /api/reminders/:id
func (h *ReminderHandler) DeleteReminder(c echo.Context) error {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid reminder ID")
	}

	if err := h.reminderService.DeleteReminder(c.Request().Context(), id); err != nil {
		if errors.Is(err, entities.ErrReminderNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, "Reminder not found")
		}
		h.logger.Error("Delete reminder failed", "error", err, "reminder_id", id)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to delete reminder")
	}

	return c.JSON(http.StatusOK, MessageResponse{
		Success: true,
		Message: "Reminder deleted",
	})
}

// Response types shared by the reminder routes

type ReminderListResponse struct {
	Success   bool                `json:"success"`
	Reminders []entities.Reminder `json:"reminders"`
}

type ReminderResponse struct {
	Success  bool               `json:"success"`
	Reminder *entities.Reminder `json:"reminder"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
