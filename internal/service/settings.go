package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

// SettingsWriter extends SettingsStore with the update operation.
type SettingsWriter interface {
	SettingsStore
	Upsert(ctx context.Context, s domain.ReminderSettings) (*domain.ReminderSettings, error)
}

// SettingsService reads and updates a user's reminder settings.
type SettingsService struct {
	store SettingsWriter
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(store SettingsWriter) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the user's settings, falling back to defaults when none were
// ever saved.
func (s *SettingsService) Get(ctx context.Context, userID uuid.UUID) (*domain.ReminderSettings, error) {
	settings, err := s.store.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			def := domain.DefaultSettings(userID)
			return &def, nil
		}
		return nil, err
	}
	return settings, nil
}

// Update validates and persists new settings for the user.
func (s *SettingsService) Update(ctx context.Context, settings domain.ReminderSettings) (*domain.ReminderSettings, error) {
	if err := validateSettings(settings); err != nil {
		return nil, err
	}
	return s.store.Upsert(ctx, settings)
}

func validateSettings(s domain.ReminderSettings) error {
	if (s.QuietStart == nil) != (s.QuietEnd == nil) {
		return fmt.Errorf("%w: quiet hours need both a start and an end", domain.ErrInvalidInput)
	}
	for _, c := range []*domain.ClockTime{s.QuietStart, s.QuietEnd} {
		if c != nil && (*c < 0 || *c >= 24*60) {
			return fmt.Errorf("%w: quiet hour out of range", domain.ErrInvalidInput)
		}
	}
	if s.PreferredTime < 0 || s.PreferredTime >= 24*60 {
		return fmt.Errorf("%w: preferred time out of range", domain.ErrInvalidInput)
	}
	return nil
}
