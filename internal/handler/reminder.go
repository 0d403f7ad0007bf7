package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
	"github.com/verdant/plantcare/internal/service"
)

// ReminderHandler handles reminder endpoints.
type ReminderHandler struct {
	reminders *service.ReminderService
	validate  *AppValidator
}

// NewReminderHandler creates a new ReminderHandler.
func NewReminderHandler(reminders *service.ReminderService, validate *AppValidator) *ReminderHandler {
	return &ReminderHandler{reminders: reminders, validate: validate}
}

type createReminderRequest struct {
	PlantID       string `json:"plant_id" validate:"required,uuid"`
	TaskType      string `json:"task_type" validate:"required,oneof=watering fertilizing pruning pest_inspection harvest custom"`
	Title         string `json:"title" validate:"required,max=120"`
	Message       string `json:"message" validate:"max=500"`
	Priority      string `json:"priority" validate:"omitempty,oneof=low medium high critical"`
	FrequencyKind string `json:"frequency_kind" validate:"required,oneof=daily every_other_day twice_weekly weekly biweekly monthly custom once"`
	FrequencyDays int    `json:"frequency_days" validate:"required_if=FrequencyKind custom,omitempty,min=1"`
	Recurring     *bool  `json:"recurring"`
	PreferredAt   string `json:"preferred_at" validate:"omitempty"`
}

// Create handles POST /reminders.
func (h *ReminderHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}

	var req createReminderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		WriteError(w, err)
		return
	}

	plantID, err := uuid.Parse(req.PlantID)
	if err != nil {
		WriteError(w, fmt.Errorf("%w: invalid plant id", domain.ErrInvalidInput))
		return
	}

	in := service.CreateReminderInput{
		PlantID:  plantID,
		TaskType: domain.TaskType(req.TaskType),
		Title:    req.Title,
		Message:  req.Message,
		Priority: domain.PriorityMedium,
		Frequency: domain.Frequency{
			Kind:       domain.FrequencyKind(req.FrequencyKind),
			CustomDays: req.FrequencyDays,
		},
		Recurring: req.FrequencyKind != string(domain.FrequencyOnce),
	}
	if req.Priority != "" {
		in.Priority = domain.Priority(req.Priority)
	}
	if req.Recurring != nil {
		in.Recurring = *req.Recurring
	}
	if req.PreferredAt != "" {
		preferred, err := domain.ParseClockTime(req.PreferredAt)
		if err != nil {
			WriteError(w, fmt.Errorf("%w: preferred_at must be HH:MM", domain.ErrInvalidInput))
			return
		}
		in.PreferredAt = &preferred
	}

	reminder, err := h.reminders.Create(r.Context(), userID, in)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, reminder)
}

// Get handles GET /reminders/{id}.
func (h *ReminderHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}
	reminder, err := h.reminders.Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminder)
}

// Complete handles POST /reminders/{id}/complete.
func (h *ReminderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}
	reminder, err := h.reminders.Complete(r.Context(), userID, id)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminder)
}

type snoozeRequest struct {
	Duration string `json:"duration" validate:"required"`
}

// Snooze handles POST /reminders/{id}/snooze.
func (h *ReminderHandler) Snooze(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req snoozeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		WriteError(w, err)
		return
	}
	duration, err := time.ParseDuration(req.Duration)
	if err != nil {
		WriteError(w, fmt.Errorf("%w: duration must be like 1h30m", domain.ErrInvalidInput))
		return
	}

	reminder, err := h.reminders.Snooze(r.Context(), userID, id, duration)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminder)
}

type toggleRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

// Toggle handles POST /reminders/{id}/toggle.
func (h *ReminderHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}

	var req toggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		WriteError(w, err)
		return
	}

	reminder, err := h.reminders.Toggle(r.Context(), userID, id, *req.Enabled)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminder)
}

// Delete handles DELETE /reminders/{id}.
func (h *ReminderHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, id, ok := h.identify(w, r)
	if !ok {
		return
	}
	if err := h.reminders.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Due handles GET /reminders/due?days=N (default 7).
func (h *ReminderHandler) Due(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}

	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			WriteError(w, fmt.Errorf("%w: days must be a non-negative integer", domain.ErrInvalidInput))
			return
		}
		days = n
	}

	reminders, err := h.reminders.ListDueWithin(r.Context(), userID, days)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminders)
}

// CompleteOverdue handles POST /reminders/complete-overdue.
func (h *ReminderHandler) CompleteOverdue(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}
	completed, err := h.reminders.CompleteAllOverdue(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]int{"completed": completed})
}

// ListForPlant handles GET /plants/{id}/reminders.
func (h *ReminderHandler) ListForPlant(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := h.identify(w, r)
	if !ok {
		return
	}
	reminders, err := h.reminders.ListForPlant(r.Context(), userID, plantID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, reminders)
}

// Suggest handles GET /plants/{id}/suggestions.
func (h *ReminderHandler) Suggest(w http.ResponseWriter, r *http.Request) {
	userID, plantID, ok := h.identify(w, r)
	if !ok {
		return
	}
	suggestions, err := h.reminders.Suggest(r.Context(), userID, plantID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, suggestions)
}

// identify pulls the authenticated user and the {id} route parameter.
func (h *ReminderHandler) identify(w http.ResponseWriter, r *http.Request) (userID, id uuid.UUID, ok bool) {
	userID, ok = GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, fmt.Errorf("%w: invalid id", domain.ErrInvalidInput))
		return uuid.Nil, uuid.Nil, false
	}
	return userID, id, true
}
