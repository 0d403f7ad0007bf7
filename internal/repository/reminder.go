package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/verdant/plantcare/internal/domain"
)

const reminderColumns = `id, plant_id, user_id, task_type, title, message, priority,
	frequency_kind, frequency_days, preferred_at, next_due_at, enabled, recurring,
	snoozed_until, completed_at, notification_id, pending_authorization,
	created_at, updated_at`

// ReminderRepository handles reminder data access operations.
type ReminderRepository struct {
	db *sqlx.DB
}

// NewReminderRepository creates a new ReminderRepository.
func NewReminderRepository(db *sqlx.DB) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// FindByID retrieves a reminder by its ID.
func (r *ReminderRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Reminder, error) {
	var rem domain.Reminder
	err := r.db.GetContext(ctx, &rem,
		`SELECT `+reminderColumns+` FROM reminders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find reminder %s: %w", id, err)
	}
	return &rem, nil
}

// ListByPlant returns all reminders for a plant.
func (r *ReminderRepository) ListByPlant(ctx context.Context, plantID uuid.UUID) ([]domain.Reminder, error) {
	var rems []domain.Reminder
	err := r.db.SelectContext(ctx, &rems,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE plant_id = $1 ORDER BY next_due_at ASC`, plantID)
	if err != nil {
		return nil, fmt.Errorf("list reminders for plant %s: %w", plantID, err)
	}
	return rems, nil
}

// ListDueBefore returns the user's enabled, non-completed reminders whose
// effective due time (snooze deadline when set, next due date otherwise) is
// at or before t.
func (r *ReminderRepository) ListDueBefore(ctx context.Context, userID uuid.UUID, t time.Time) ([]domain.Reminder, error) {
	var rems []domain.Reminder
	err := r.db.SelectContext(ctx, &rems,
		`SELECT `+reminderColumns+` FROM reminders
		 WHERE user_id = $1
		   AND enabled
		   AND NOT (completed_at IS NOT NULL AND NOT recurring)
		   AND COALESCE(snoozed_until, next_due_at) <= $2
		 ORDER BY next_due_at ASC`, userID, t)
	if err != nil {
		return nil, fmt.Errorf("list reminders due before %s: %w", t, err)
	}
	return rems, nil
}

// CountActive counts enabled reminders that are not terminally completed.
func (r *ReminderRepository) CountActive(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM reminders
		 WHERE enabled AND NOT (completed_at IS NOT NULL AND NOT recurring)`)
	if err != nil {
		return 0, fmt.Errorf("count active reminders: %w", err)
	}
	return n, nil
}

// Create inserts a new reminder.
func (r *ReminderRepository) Create(ctx context.Context, rem *domain.Reminder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reminders (id, plant_id, user_id, task_type, title, message, priority,
		        frequency_kind, frequency_days, preferred_at, next_due_at, enabled, recurring,
		        snoozed_until, completed_at, notification_id, pending_authorization,
		        created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		rem.ID, rem.PlantID, rem.UserID, rem.TaskType, rem.Title, rem.Message, rem.Priority,
		rem.FrequencyKind, rem.FrequencyDays, rem.PreferredAt, rem.NextDueAt, rem.Enabled,
		rem.Recurring, rem.SnoozedUntil, rem.CompletedAt, rem.NotificationID, rem.PendingAuth,
		rem.CreatedAt, rem.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

// Update persists the reminder's mutable fields.
func (r *ReminderRepository) Update(ctx context.Context, rem *domain.Reminder) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reminders
		 SET title = $2, message = $3, priority = $4,
		     frequency_kind = $5, frequency_days = $6, preferred_at = $7,
		     next_due_at = $8, enabled = $9, recurring = $10,
		     snoozed_until = $11, completed_at = $12, notification_id = $13,
		     pending_authorization = $14, updated_at = $15
		 WHERE id = $1`,
		rem.ID, rem.Title, rem.Message, rem.Priority,
		rem.FrequencyKind, rem.FrequencyDays, rem.PreferredAt,
		rem.NextDueAt, rem.Enabled, rem.Recurring,
		rem.SnoozedUntil, rem.CompletedAt, rem.NotificationID,
		rem.PendingAuth, rem.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update reminder %s: %w", rem.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update reminder %s: %w", rem.ID, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a reminder.
func (r *ReminderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reminder %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete reminder %s: %w", id, err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
