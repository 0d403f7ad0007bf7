package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const schema = `
CREATE TABLE IF NOT EXISTS plants (
	id                 UUID PRIMARY KEY,
	user_id            UUID NOT NULL,
	name               TEXT NOT NULL,
	species            TEXT NOT NULL DEFAULT '',
	location           TEXT,
	edible             BOOLEAN NOT NULL DEFAULT FALSE,
	last_inspection_at TIMESTAMPTZ,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS reminders (
	id                    UUID PRIMARY KEY,
	plant_id              UUID NOT NULL REFERENCES plants(id) ON DELETE CASCADE,
	user_id               UUID NOT NULL,
	task_type             TEXT NOT NULL,
	title                 TEXT NOT NULL,
	message               TEXT NOT NULL DEFAULT '',
	priority              TEXT NOT NULL DEFAULT 'medium',
	frequency_kind        TEXT NOT NULL,
	frequency_days        INT NOT NULL DEFAULT 0,
	preferred_at          INT NOT NULL DEFAULT 540,
	next_due_at           TIMESTAMPTZ NOT NULL,
	enabled               BOOLEAN NOT NULL DEFAULT TRUE,
	recurring             BOOLEAN NOT NULL DEFAULT TRUE,
	snoozed_until         TIMESTAMPTZ,
	completed_at          TIMESTAMPTZ,
	notification_id       UUID,
	pending_authorization BOOLEAN NOT NULL DEFAULT FALSE,
	created_at            TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at            TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_reminders_plant ON reminders(plant_id);
CREATE INDEX IF NOT EXISTS idx_reminders_due ON reminders(next_due_at) WHERE enabled;

CREATE TABLE IF NOT EXISTS reminder_settings (
	user_id                 UUID PRIMARY KEY,
	watering_enabled        BOOLEAN NOT NULL DEFAULT TRUE,
	fertilizing_enabled     BOOLEAN NOT NULL DEFAULT TRUE,
	pruning_enabled         BOOLEAN NOT NULL DEFAULT TRUE,
	pest_inspection_enabled BOOLEAN NOT NULL DEFAULT TRUE,
	harvest_enabled         BOOLEAN NOT NULL DEFAULT TRUE,
	custom_enabled          BOOLEAN NOT NULL DEFAULT TRUE,
	weekend_reminders       BOOLEAN NOT NULL DEFAULT TRUE,
	weather_adjustment      BOOLEAN NOT NULL DEFAULT FALSE,
	quiet_start             INT,
	quiet_end               INT,
	preferred_time          INT NOT NULL DEFAULT 540,
	created_at              TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at              TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

// EnsureSchema creates the tables on startup if they do not exist yet.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
