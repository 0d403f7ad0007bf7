// Package notify projects reminder due dates onto a platform notification
// subsystem and keeps the two consistent: at most one live notification per
// reminder, no stale or orphaned schedules, and an advisory badge counter.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AuthStatus is the notification subsystem's authorization state.
type AuthStatus string

const (
	AuthNotDetermined AuthStatus = "not_determined"
	AuthDenied        AuthStatus = "denied"
	AuthAuthorized    AuthStatus = "authorized"
)

// Request describes a notification to schedule.
type Request struct {
	ID    uuid.UUID
	At    time.Time
	Title string
	Body  string
	Badge int
}

// Center is the platform notification subsystem. Implementations must make
// ScheduleAt replace any pending notification with the same ID, and Cancel
// of an unknown ID must succeed, so cancel-then-reschedule under one
// identifier is idempotent.
type Center interface {
	ScheduleAt(ctx context.Context, req Request) error
	Cancel(ctx context.Context, id uuid.UUID) error
	Pending(ctx context.Context) ([]Request, error)
	Authorization(ctx context.Context) (AuthStatus, error)
	RequestAuthorization(ctx context.Context) (AuthStatus, error)
	SetBadge(ctx context.Context, n int) error
}
