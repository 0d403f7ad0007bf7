package domain

import (
	"time"

	"github.com/google/uuid"
)

// TaskType represents the kind of plant-care task a reminder tracks.
type TaskType string

const (
	TaskWatering       TaskType = "watering"
	TaskFertilizing    TaskType = "fertilizing"
	TaskPruning        TaskType = "pruning"
	TaskPestInspection TaskType = "pest_inspection"
	TaskHarvest        TaskType = "harvest"
	TaskCustom         TaskType = "custom"
)

// Priority represents the urgency of a reminder.
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// FrequencyKind identifies a recurrence pattern.
type FrequencyKind string

const (
	FrequencyDaily         FrequencyKind = "daily"
	FrequencyEveryOtherDay FrequencyKind = "every_other_day"
	FrequencyTwiceWeekly   FrequencyKind = "twice_weekly"
	FrequencyWeekly        FrequencyKind = "weekly"
	FrequencyBiweekly      FrequencyKind = "biweekly"
	FrequencyMonthly       FrequencyKind = "monthly"
	FrequencyCustom        FrequencyKind = "custom"
	FrequencyOnce          FrequencyKind = "once"
)

// Frequency describes how often a reminder recurs. CustomDays is only
// meaningful for FrequencyCustom and must be >= 1 by the time it reaches
// the scheduling code.
type Frequency struct {
	Kind       FrequencyKind `json:"kind"`
	CustomDays int           `json:"custom_days,omitempty"`
}

// ReminderState is the derived lifecycle state of a reminder.
type ReminderState string

const (
	StateActive    ReminderState = "active"
	StateDue       ReminderState = "due"
	StateSnoozed   ReminderState = "snoozed"
	StateDisabled  ReminderState = "disabled"
	StateCompleted ReminderState = "completed"
)

// Reminder represents a scheduled, possibly recurring plant-care task.
// NotificationID is the platform-side notification identifier the reminder
// currently projects to; it is distinct from the reminder's own identity.
type Reminder struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	PlantID        uuid.UUID     `json:"plant_id" db:"plant_id"`
	UserID         uuid.UUID     `json:"user_id" db:"user_id"`
	TaskType       TaskType      `json:"task_type" db:"task_type"`
	Title          string        `json:"title" db:"title"`
	Message        string        `json:"message" db:"message"`
	Priority       Priority      `json:"priority" db:"priority"`
	FrequencyKind  FrequencyKind `json:"frequency_kind" db:"frequency_kind"`
	FrequencyDays  int           `json:"frequency_days,omitempty" db:"frequency_days"`
	PreferredAt    ClockTime     `json:"preferred_at" db:"preferred_at"`
	NextDueAt      time.Time     `json:"next_due_at" db:"next_due_at"`
	Enabled        bool          `json:"enabled" db:"enabled"`
	Recurring      bool          `json:"recurring" db:"recurring"`
	SnoozedUntil   *time.Time    `json:"snoozed_until,omitempty" db:"snoozed_until"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
	NotificationID *uuid.UUID    `json:"notification_id,omitempty" db:"notification_id"`
	PendingAuth    bool          `json:"pending_authorization" db:"pending_authorization"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at" db:"updated_at"`
}

// Frequency returns the reminder's frequency descriptor.
func (r Reminder) Frequency() Frequency {
	return Frequency{Kind: r.FrequencyKind, CustomDays: r.FrequencyDays}
}

// State derives the lifecycle state at the given instant.
func (r Reminder) State(now time.Time) ReminderState {
	switch {
	case r.CompletedAt != nil && !r.Recurring:
		return StateCompleted
	case !r.Enabled:
		return StateDisabled
	case r.SnoozedUntil != nil && r.SnoozedUntil.After(now):
		return StateSnoozed
	case !r.NextDueAt.After(now):
		return StateDue
	default:
		return StateActive
	}
}

// EffectiveDueAt is the instant the projected notification should fire:
// the snooze deadline when one is set, otherwise the next due date.
func (r Reminder) EffectiveDueAt() time.Time {
	if r.SnoozedUntil != nil {
		return *r.SnoozedUntil
	}
	return r.NextDueAt
}
