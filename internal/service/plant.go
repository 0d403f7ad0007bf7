package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

// PlantWriter extends PlantStore with the mutating operations.
type PlantWriter interface {
	PlantStore
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Plant, error)
	Create(ctx context.Context, p *domain.Plant) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlantService manages plants and the reminder cleanup that goes with
// removing one.
type PlantService struct {
	plants    PlantWriter
	reminders ReminderStore
	projector NotificationProjector
	now       func() time.Time
}

// NewPlantService creates a new PlantService.
func NewPlantService(plants PlantWriter, reminders ReminderStore, projector NotificationProjector) *PlantService {
	return &PlantService{plants: plants, reminders: reminders, projector: projector, now: time.Now}
}

// CreatePlantInput carries the validated parameters for a new plant.
type CreatePlantInput struct {
	Name     string
	Species  string
	Location *string
	Edible   bool
}

// Create registers a plant for the user.
func (s *PlantService) Create(ctx context.Context, userID uuid.UUID, in CreatePlantInput) (*domain.Plant, error) {
	now := s.now()
	p := domain.Plant{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      in.Name,
		Species:   in.Species,
		Location:  in.Location,
		Edible:    in.Edible,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.plants.Create(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns the user's plants.
func (s *PlantService) List(ctx context.Context, userID uuid.UUID) ([]domain.Plant, error) {
	return s.plants.ListByUser(ctx, userID)
}

// Delete removes a plant. Its reminders are deleted by the store's cascade;
// their notifications are retracted first so none is left orphaned.
func (s *PlantService) Delete(ctx context.Context, userID, plantID uuid.UUID) error {
	p, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return err
	}
	if p.UserID != userID {
		return domain.ErrNotFound
	}

	reminders, err := s.reminders.ListByPlant(ctx, plantID)
	if err != nil {
		return err
	}
	for i := range reminders {
		if err := s.projector.Retract(ctx, &reminders[i]); err != nil {
			slog.Warn("retract during plant delete failed",
				"plant_id", plantID, "reminder_id", reminders[i].ID, "error", err)
		}
	}
	return s.plants.Delete(ctx, plantID)
}
