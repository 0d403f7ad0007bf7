package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/verdant/plantcare/internal/domain"
)

const settingsColumns = `user_id, watering_enabled, fertilizing_enabled, pruning_enabled,
	pest_inspection_enabled, harvest_enabled, custom_enabled, weekend_reminders,
	weather_adjustment, quiet_start, quiet_end, preferred_time, created_at, updated_at`

// SettingsRepository handles reminder-settings data access operations.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// FindByUser retrieves a user's reminder settings.
func (r *SettingsRepository) FindByUser(ctx context.Context, userID uuid.UUID) (*domain.ReminderSettings, error) {
	var s domain.ReminderSettings
	err := r.db.GetContext(ctx, &s,
		`SELECT `+settingsColumns+` FROM reminder_settings WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find settings for user %s: %w", userID, err)
	}
	return &s, nil
}

// Upsert creates or replaces a user's reminder settings and returns the
// stored row.
func (r *SettingsRepository) Upsert(ctx context.Context, s domain.ReminderSettings) (*domain.ReminderSettings, error) {
	var result domain.ReminderSettings
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO reminder_settings (user_id, watering_enabled, fertilizing_enabled,
		        pruning_enabled, pest_inspection_enabled, harvest_enabled, custom_enabled,
		        weekend_reminders, weather_adjustment, quiet_start, quiet_end, preferred_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id)
		 DO UPDATE SET watering_enabled = EXCLUDED.watering_enabled,
		               fertilizing_enabled = EXCLUDED.fertilizing_enabled,
		               pruning_enabled = EXCLUDED.pruning_enabled,
		               pest_inspection_enabled = EXCLUDED.pest_inspection_enabled,
		               harvest_enabled = EXCLUDED.harvest_enabled,
		               custom_enabled = EXCLUDED.custom_enabled,
		               weekend_reminders = EXCLUDED.weekend_reminders,
		               weather_adjustment = EXCLUDED.weather_adjustment,
		               quiet_start = EXCLUDED.quiet_start,
		               quiet_end = EXCLUDED.quiet_end,
		               preferred_time = EXCLUDED.preferred_time,
		               updated_at = NOW()
		 RETURNING `+settingsColumns,
		s.UserID, s.WateringEnabled, s.FertilizingEnabled, s.PruningEnabled,
		s.PestInspectionEnabled, s.HarvestEnabled, s.CustomEnabled,
		s.WeekendReminders, s.WeatherAdjustment, s.QuietStart, s.QuietEnd, s.PreferredTime,
	).StructScan(&result)
	if err != nil {
		return nil, fmt.Errorf("upsert settings for user %s: %w", s.UserID, err)
	}
	return &result, nil
}
