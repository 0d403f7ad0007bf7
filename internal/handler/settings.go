package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/verdant/plantcare/internal/domain"
	"github.com/verdant/plantcare/internal/service"
)

// SettingsHandler handles reminder-settings endpoints.
type SettingsHandler struct {
	settings *service.SettingsService
	validate *AppValidator
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings *service.SettingsService, validate *AppValidator) *SettingsHandler {
	return &SettingsHandler{settings: settings, validate: validate}
}

// Get handles GET /settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}
	settings, err := h.settings.Get(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, settings)
}

type updateSettingsRequest struct {
	WateringEnabled       bool   `json:"watering_enabled"`
	FertilizingEnabled    bool   `json:"fertilizing_enabled"`
	PruningEnabled        bool   `json:"pruning_enabled"`
	PestInspectionEnabled bool   `json:"pest_inspection_enabled"`
	HarvestEnabled        bool   `json:"harvest_enabled"`
	CustomEnabled         bool   `json:"custom_enabled"`
	WeekendReminders      bool   `json:"weekend_reminders"`
	WeatherAdjustment     bool   `json:"weather_adjustment"`
	QuietStart            string `json:"quiet_start" validate:"omitempty"`
	QuietEnd              string `json:"quiet_end" validate:"omitempty"`
	PreferredTime         string `json:"preferred_time" validate:"required"`
}

// Update handles PUT /settings.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}

	var req updateSettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		WriteError(w, err)
		return
	}

	preferred, err := domain.ParseClockTime(req.PreferredTime)
	if err != nil {
		WriteError(w, fmt.Errorf("%w: preferred_time must be HH:MM", domain.ErrInvalidInput))
		return
	}

	settings := domain.ReminderSettings{
		UserID:                userID,
		WateringEnabled:       req.WateringEnabled,
		FertilizingEnabled:    req.FertilizingEnabled,
		PruningEnabled:        req.PruningEnabled,
		PestInspectionEnabled: req.PestInspectionEnabled,
		HarvestEnabled:        req.HarvestEnabled,
		CustomEnabled:         req.CustomEnabled,
		WeekendReminders:      req.WeekendReminders,
		WeatherAdjustment:     req.WeatherAdjustment,
		PreferredTime:         preferred,
	}

	if req.QuietStart != "" {
		c, err := domain.ParseClockTime(req.QuietStart)
		if err != nil {
			WriteError(w, fmt.Errorf("%w: quiet_start must be HH:MM", domain.ErrInvalidInput))
			return
		}
		settings.QuietStart = &c
	}
	if req.QuietEnd != "" {
		c, err := domain.ParseClockTime(req.QuietEnd)
		if err != nil {
			WriteError(w, fmt.Errorf("%w: quiet_end must be HH:MM", domain.ErrInvalidInput))
			return
		}
		settings.QuietEnd = &c
	}

	updated, err := h.settings.Update(r.Context(), settings)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, updated)
}
