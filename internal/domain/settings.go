package domain

import (
	"time"

	"github.com/google/uuid"
)

// ReminderSettings holds a user's notification preferences. The due-date
// calculator reads them on every computation; they change only through the
// settings update operation.
type ReminderSettings struct {
	UserID                uuid.UUID  `json:"user_id" db:"user_id"`
	WateringEnabled       bool       `json:"watering_enabled" db:"watering_enabled"`
	FertilizingEnabled    bool       `json:"fertilizing_enabled" db:"fertilizing_enabled"`
	PruningEnabled        bool       `json:"pruning_enabled" db:"pruning_enabled"`
	PestInspectionEnabled bool       `json:"pest_inspection_enabled" db:"pest_inspection_enabled"`
	HarvestEnabled        bool       `json:"harvest_enabled" db:"harvest_enabled"`
	CustomEnabled         bool       `json:"custom_enabled" db:"custom_enabled"`
	WeekendReminders      bool       `json:"weekend_reminders" db:"weekend_reminders"`
	WeatherAdjustment     bool       `json:"weather_adjustment" db:"weather_adjustment"`
	QuietStart            *ClockTime `json:"quiet_start,omitempty" db:"quiet_start"`
	QuietEnd              *ClockTime `json:"quiet_end,omitempty" db:"quiet_end"`
	PreferredTime         ClockTime  `json:"preferred_time" db:"preferred_time"`
	CreatedAt             time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at" db:"updated_at"`
}

// DefaultSettings returns the settings applied to a user who has never
// saved any: all task types on, weekends on, no quiet hours, 09:00 alerts.
func DefaultSettings(userID uuid.UUID) ReminderSettings {
	return ReminderSettings{
		UserID:                userID,
		WateringEnabled:       true,
		FertilizingEnabled:    true,
		PruningEnabled:        true,
		PestInspectionEnabled: true,
		HarvestEnabled:        true,
		CustomEnabled:         true,
		WeekendReminders:      true,
		PreferredTime:         NewClockTime(9, 0),
	}
}

// TaskEnabled reports whether reminders of the given task type are enabled.
func (s ReminderSettings) TaskEnabled(t TaskType) bool {
	switch t {
	case TaskWatering:
		return s.WateringEnabled
	case TaskFertilizing:
		return s.FertilizingEnabled
	case TaskPruning:
		return s.PruningEnabled
	case TaskPestInspection:
		return s.PestInspectionEnabled
	case TaskHarvest:
		return s.HarvestEnabled
	case TaskCustom:
		return s.CustomEnabled
	default:
		return false
	}
}

// QuietConfigured reports whether a quiet-hours window is set.
func (s ReminderSettings) QuietConfigured() bool {
	return s.QuietStart != nil && s.QuietEnd != nil && *s.QuietStart != *s.QuietEnd
}
