package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
	"github.com/verdant/plantcare/internal/schedule"
)

// ReminderStore defines the reminder data access interface consumed by
// ReminderService.
type ReminderStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error)
	ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.Reminder, error)
	ListDueBefore(ctx context.Context, userID uuid.UUID, t time.Time) ([]domain.Reminder, error)
	Create(ctx context.Context, r *domain.Reminder) error
	Update(ctx context.Context, r *domain.Reminder) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// PlantStore defines the plant data access interface consumed by ReminderService.
type PlantStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Plant, error)
}

// SettingsStore defines the settings data access interface consumed by
// ReminderService.
type SettingsStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) (*domain.ReminderSettings, error)
}

// NotificationProjector keeps the platform notification for a reminder in
// step with its due date.
type NotificationProjector interface {
	Project(ctx context.Context, r *domain.Reminder) error
	Cancel(ctx context.Context, r *domain.Reminder) error
	Retract(ctx context.Context, r *domain.Reminder) error
}

// ReminderService owns the reminder lifecycle: creation, completion,
// snoozing, toggling, and deletion, each committed to the store before the
// notification projection is touched.
type ReminderService struct {
	reminders ReminderStore
	plants    PlantStore
	settings  SettingsStore
	projector NotificationProjector
	weather   WeatherSource

	weatherDeferDays int
	now              func() time.Time
}

// NewReminderService creates a new ReminderService. weatherDeferDays caps
// the rain deferral applied to watering reminders.
func NewReminderService(
	reminders ReminderStore,
	plants PlantStore,
	settings SettingsStore,
	projector NotificationProjector,
	weather WeatherSource,
	weatherDeferDays int,
) *ReminderService {
	return &ReminderService{
		reminders:        reminders,
		plants:           plants,
		settings:         settings,
		projector:        projector,
		weather:          weather,
		weatherDeferDays: weatherDeferDays,
		now:              time.Now,
	}
}

// CreateReminderInput carries the validated parameters for a new reminder.
type CreateReminderInput struct {
	PlantID     uuid.UUID
	TaskType    domain.TaskType
	Title       string
	Message     string
	Priority    domain.Priority
	Frequency   domain.Frequency
	Recurring   bool
	PreferredAt *domain.ClockTime
}

// Create builds a reminder, computes its first due date, persists it, and
// projects its notification. A custom frequency below one day is rejected;
// request validation should have caught it earlier.
func (s *ReminderService) Create(ctx context.Context, userID uuid.UUID, in CreateReminderInput) (*domain.Reminder, error) {
	if in.Frequency.Kind == domain.FrequencyCustom && in.Frequency.CustomDays < 1 {
		return nil, fmt.Errorf("%w: custom interval must be at least 1 day", domain.ErrInvalidFrequency)
	}

	plant, err := s.plants.FindByID(ctx, in.PlantID)
	if err != nil {
		return nil, err
	}
	if plant.UserID != userID {
		return nil, domain.ErrNotFound
	}

	settings := s.settingsFor(ctx, userID)
	now := s.now()

	preferred := settings.PreferredTime
	if in.PreferredAt != nil {
		preferred = *in.PreferredAt
	}

	intervalDays, recurring := schedule.Interval(in.Frequency)
	recurring = recurring && in.Recurring

	r := domain.Reminder{
		ID:            uuid.New(),
		PlantID:       in.PlantID,
		UserID:        userID,
		TaskType:      in.TaskType,
		Title:         in.Title,
		Message:       in.Message,
		Priority:      in.Priority,
		FrequencyKind: in.Frequency.Kind,
		FrequencyDays: in.Frequency.CustomDays,
		PreferredAt:   preferred,
		Enabled:       settings.TaskEnabled(in.TaskType),
		Recurring:     recurring,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	r.NextDueAt = schedule.NextDue(now, now, intervalDays, preferred, settings, s.weatherHint(ctx, in.TaskType, settings))

	if err := s.reminders.Create(ctx, &r); err != nil {
		return nil, err
	}

	if r.Enabled {
		if err := s.project(ctx, &r); err != nil {
			return nil, err
		}
	} else {
		slog.Info("reminder created disabled: task type muted in settings",
			"reminder_id", r.ID, "task_type", string(r.TaskType))
	}
	return &r, nil
}

// Complete records a completion. A recurring reminder gets a fresh due date
// computed from now, so a late completion does not compound drift. A
// one-time reminder becomes terminal and its notification is retracted.
func (s *ReminderService) Complete(ctx context.Context, userID, id uuid.UUID) (*domain.Reminder, error) {
	r, err := s.ownedReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if r.State(now) == domain.StateCompleted {
		return nil, fmt.Errorf("%w: reminder already completed", domain.ErrConflict)
	}

	cp := *r
	cp.CompletedAt = &now
	cp.SnoozedUntil = nil
	cp.UpdatedAt = now

	if cp.Recurring {
		settings := s.settingsFor(ctx, userID)
		intervalDays, _ := schedule.Interval(cp.Frequency())
		cp.NextDueAt = schedule.NextDue(now, now, intervalDays, cp.PreferredAt, settings,
			s.weatherHint(ctx, cp.TaskType, settings))
	}

	if err := s.reminders.Update(ctx, &cp); err != nil {
		return nil, err
	}

	if cp.Recurring {
		if cp.Enabled {
			// Retire the delivered notification before the next cycle's is
			// scheduled, so the badge count reflects the completion.
			if err := s.projector.Cancel(ctx, &cp); err != nil {
				slog.Warn("cancel after completion failed", "reminder_id", cp.ID, "error", err)
			}
			if err := s.project(ctx, &cp); err != nil {
				return nil, err
			}
		}
		return &cp, nil
	}

	// Terminal: withdraw the notification and persist the cleared identifier.
	if err := s.projector.Retract(ctx, &cp); err != nil {
		slog.Warn("retract after terminal completion failed", "reminder_id", cp.ID, "error", err)
	}
	if err := s.reminders.Update(ctx, &cp); err != nil {
		slog.Warn("persisting cleared notification id failed", "reminder_id", cp.ID, "error", err)
	}
	return &cp, nil
}

// Snooze defers the reminder's next alert by duration without touching the
// underlying recurrence.
func (s *ReminderService) Snooze(ctx context.Context, userID, id uuid.UUID, duration time.Duration) (*domain.Reminder, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: snooze duration must be positive", domain.ErrInvalidInput)
	}
	r, err := s.ownedReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if r.State(now) == domain.StateCompleted {
		return nil, fmt.Errorf("%w: reminder already completed", domain.ErrConflict)
	}

	until := now.Add(duration)
	cp := *r
	cp.SnoozedUntil = &until
	cp.UpdatedAt = now

	if err := s.reminders.Update(ctx, &cp); err != nil {
		return nil, err
	}
	if cp.Enabled {
		if err := s.project(ctx, &cp); err != nil {
			return nil, err
		}
	}
	return &cp, nil
}

// Toggle enables or disables a reminder. Disabling cancels the notification
// and freezes the due date; enabling keeps the frozen date when it is still
// in the future and recomputes from now when it has elapsed.
func (s *ReminderService) Toggle(ctx context.Context, userID, id uuid.UUID, enabled bool) (*domain.Reminder, error) {
	r, err := s.ownedReminder(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	now := s.now()
	if r.State(now) == domain.StateCompleted {
		return nil, fmt.Errorf("%w: reminder already completed", domain.ErrConflict)
	}
	if r.Enabled == enabled {
		return r, nil
	}

	cp := *r
	cp.Enabled = enabled
	cp.UpdatedAt = now

	if !enabled {
		if err := s.reminders.Update(ctx, &cp); err != nil {
			return nil, err
		}
		if err := s.projector.Cancel(ctx, &cp); err != nil {
			slog.Warn("cancel on disable failed", "reminder_id", cp.ID, "error", err)
		}
		return &cp, nil
	}

	// A snooze that expired while the reminder was disabled must not
	// supersede the due date, or the projection would target a past instant.
	if cp.SnoozedUntil != nil && !cp.SnoozedUntil.After(now) {
		cp.SnoozedUntil = nil
	}
	if !cp.NextDueAt.After(now) {
		settings := s.settingsFor(ctx, userID)
		intervalDays, _ := schedule.Interval(cp.Frequency())
		cp.NextDueAt = schedule.NextDue(now, now, intervalDays, cp.PreferredAt, settings,
			s.weatherHint(ctx, cp.TaskType, settings))
	}
	if err := s.reminders.Update(ctx, &cp); err != nil {
		return nil, err
	}
	if err := s.project(ctx, &cp); err != nil {
		return nil, err
	}
	return &cp, nil
}

// Delete cancels the reminder's notification and removes the record.
func (s *ReminderService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	r, err := s.ownedReminder(ctx, userID, id)
	if err != nil {
		return err
	}
	if err := s.projector.Retract(ctx, r); err != nil {
		slog.Warn("retract before delete failed", "reminder_id", r.ID, "error", err)
	}
	return s.reminders.Delete(ctx, id)
}

// Get returns a single reminder.
func (s *ReminderService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Reminder, error) {
	return s.ownedReminder(ctx, userID, id)
}

// ListForPlant returns the reminders attached to one of the user's plants.
func (s *ReminderService) ListForPlant(ctx context.Context, userID, plantID uuid.UUID) ([]domain.Reminder, error) {
	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if plant.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return s.reminders.ListByPlant(ctx, plantID)
}

// ListDueWithin returns the user's reminders whose effective due time falls
// within the next `days` days.
func (s *ReminderService) ListDueWithin(ctx context.Context, userID uuid.UUID, days int) ([]domain.Reminder, error) {
	return s.reminders.ListDueBefore(ctx, userID, s.now().AddDate(0, 0, days))
}

// CompleteAllOverdue completes every overdue reminder belonging to the user.
// Each completion commits independently; when ctx is cancelled mid-batch the
// reminders already completed stay completed and their projections stand.
func (s *ReminderService) CompleteAllOverdue(ctx context.Context, userID uuid.UUID) (int, error) {
	overdue, err := s.reminders.ListDueBefore(ctx, userID, s.now())
	if err != nil {
		return 0, err
	}

	completed := 0
	var errs []error
	for _, r := range overdue {
		if err := ctx.Err(); err != nil {
			return completed, err
		}
		if _, err := s.Complete(ctx, userID, r.ID); err != nil {
			slog.Warn("overdue completion failed", "reminder_id", r.ID, "error", err)
			errs = append(errs, fmt.Errorf("reminder %s: %w", r.ID, err))
			continue
		}
		completed++
	}
	return completed, errors.Join(errs...)
}

// Suggest proposes reminders for a plant that are not covered by an active
// one. The result feeds Create on user acceptance.
func (s *ReminderService) Suggest(ctx context.Context, userID, plantID uuid.UUID) ([]schedule.Suggestion, error) {
	plant, err := s.plants.FindByID(ctx, plantID)
	if err != nil {
		return nil, err
	}
	if plant.UserID != userID {
		return nil, domain.ErrNotFound
	}
	existing, err := s.reminders.ListByPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}
	return schedule.Suggest(*plant, existing, s.now()), nil
}

// project wraps the projector call; projection failures after a committed
// write are surfaced so the caller can retry, which reissues the projection.
func (s *ReminderService) project(ctx context.Context, r *domain.Reminder) error {
	if err := s.projector.Project(ctx, r); err != nil {
		return fmt.Errorf("project reminder %s: %w", r.ID, err)
	}
	if err := s.reminders.Update(ctx, r); err != nil {
		slog.Warn("persisting notification id failed", "reminder_id", r.ID, "error", err)
	}
	return nil
}

func (s *ReminderService) ownedReminder(ctx context.Context, userID, id uuid.UUID) (*domain.Reminder, error) {
	r, err := s.reminders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return r, nil
}

func (s *ReminderService) settingsFor(ctx context.Context, userID uuid.UUID) domain.ReminderSettings {
	settings, err := s.settings.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("settings lookup failed, using defaults", "user_id", userID, "error", err)
		}
		return domain.DefaultSettings(userID)
	}
	return *settings
}

// weatherHint consults the weather source for watering tasks when the user
// opted into weather adjustment. Source failures degrade to "no rain".
func (s *ReminderService) weatherHint(ctx context.Context, task domain.TaskType, settings domain.ReminderSettings) schedule.WeatherHint {
	if task != domain.TaskWatering || !settings.WeatherAdjustment || s.weather == nil {
		return schedule.WeatherHint{}
	}
	rain, err := s.weather.RainExpected(ctx)
	if err != nil {
		slog.Warn("weather source failed, skipping adjustment", "error", err)
		return schedule.WeatherHint{}
	}
	return schedule.WeatherHint{RainExpected: rain, MaxDeferDays: s.weatherDeferDays}
}
