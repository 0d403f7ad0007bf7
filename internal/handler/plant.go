package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
	"github.com/verdant/plantcare/internal/service"
)

// PlantHandler handles plant endpoints.
type PlantHandler struct {
	plants   *service.PlantService
	validate *AppValidator
}

// NewPlantHandler creates a new PlantHandler.
func NewPlantHandler(plants *service.PlantService, validate *AppValidator) *PlantHandler {
	return &PlantHandler{plants: plants, validate: validate}
}

type createPlantRequest struct {
	Name     string  `json:"name" validate:"required,max=120"`
	Species  string  `json:"species" validate:"max=120"`
	Location *string `json:"location"`
	Edible   bool    `json:"edible"`
}

// Create handles POST /plants.
func (h *PlantHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}

	var req createPlantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err))
		return
	}
	if err := h.validate.Validate(req); err != nil {
		WriteError(w, err)
		return
	}

	plant, err := h.plants.Create(r.Context(), userID, service.CreatePlantInput{
		Name:     req.Name,
		Species:  req.Species,
		Location: req.Location,
		Edible:   req.Edible,
	})
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, plant)
}

// List handles GET /plants.
func (h *PlantHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}
	plants, err := h.plants.List(r.Context(), userID)
	if err != nil {
		WriteError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, plants)
}

// Delete handles DELETE /plants/{id}; the plant's reminders go with it.
func (h *PlantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserID(r.Context())
	if !ok {
		WriteError(w, domain.ErrUnauthorized)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteError(w, fmt.Errorf("%w: invalid id", domain.ErrInvalidInput))
		return
	}
	if err := h.plants.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
