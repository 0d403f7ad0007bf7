package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

// ActiveCounter reports how many reminders should currently carry a
// notification. Resync uses it as the source of truth for the badge.
type ActiveCounter interface {
	CountActive(ctx context.Context) (int, error)
}

// Projector maintains the 1:1 mapping from a reminder to its platform
// notification. Operations on the same reminder are serialized through a
// per-identifier lock; different reminders never block each other. The
// badge counter is advisory and periodically resynchronized from the store.
type Projector struct {
	center  Center
	counter ActiveCounter

	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
	badge int
}

// NewProjector creates a Projector over the given notification center.
func NewProjector(center Center, counter ActiveCounter) *Projector {
	return &Projector{
		center:  center,
		counter: counter,
		locks:   make(map[uuid.UUID]*sync.Mutex),
	}
}

// Project schedules (or reschedules) the notification for a reminder at its
// effective due date. An existing notification is cancelled first; the
// cancel is best-effort and never blocks the new schedule. When the
// subsystem is not authorized the reminder is marked pending authorization
// and no error is returned — the reminder keeps its computed state.
func (p *Projector) Project(ctx context.Context, r *domain.Reminder) error {
	lock := p.lockFor(r.ID)
	lock.Lock()
	defer lock.Unlock()

	status, err := p.center.Authorization(ctx)
	if err != nil {
		return fmt.Errorf("query notification authorization: %w", err)
	}
	if status != AuthAuthorized {
		r.PendingAuth = true
		slog.Warn("notification skipped: not authorized",
			"reminder_id", r.ID, "status", string(status))
		return nil
	}

	if r.NotificationID != nil {
		if err := p.center.Cancel(ctx, *r.NotificationID); err != nil {
			slog.Warn("best-effort cancel failed before reschedule",
				"reminder_id", r.ID, "notification_id", *r.NotificationID, "error", err)
		}
	} else {
		id := uuid.New()
		r.NotificationID = &id
	}

	req := Request{
		ID:    *r.NotificationID,
		At:    r.EffectiveDueAt(),
		Title: r.Title,
		Body:  r.Message,
		Badge: 1,
	}
	if err := p.center.ScheduleAt(ctx, req); err != nil {
		return fmt.Errorf("schedule notification for reminder %s: %w", r.ID, err)
	}

	r.PendingAuth = false
	p.addBadge(1)
	return nil
}

// Cancel withdraws the reminder's notification but keeps the stored
// identifier, so a later re-projection reuses it. Used by toggle-off.
func (p *Projector) Cancel(ctx context.Context, r *domain.Reminder) error {
	return p.withdraw(ctx, r, false)
}

// Retract withdraws the notification and clears the stored identifier.
// Used by deletion and terminal completion.
func (p *Projector) Retract(ctx context.Context, r *domain.Reminder) error {
	return p.withdraw(ctx, r, true)
}

func (p *Projector) withdraw(ctx context.Context, r *domain.Reminder, clearID bool) error {
	lock := p.lockFor(r.ID)
	lock.Lock()
	defer lock.Unlock()

	if r.NotificationID == nil {
		return nil
	}
	if err := p.center.Cancel(ctx, *r.NotificationID); err != nil {
		slog.Warn("best-effort cancel failed",
			"reminder_id", r.ID, "notification_id", *r.NotificationID, "error", err)
	}
	if clearID {
		r.NotificationID = nil
	}
	p.addBadge(-1)
	return nil
}

// Badge returns the running advisory badge count.
func (p *Projector) Badge() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.badge
}

// Resync replaces the running badge count with the store's count of
// currently active reminders and pushes it to the platform.
func (p *Projector) Resync(ctx context.Context) error {
	n, err := p.counter.CountActive(ctx)
	if err != nil {
		return fmt.Errorf("count active reminders: %w", err)
	}

	p.mu.Lock()
	p.badge = n
	p.mu.Unlock()

	if err := p.center.SetBadge(ctx, n); err != nil {
		return fmt.Errorf("set badge: %w", err)
	}
	slog.Debug("badge resynchronized", "count", n)
	return nil
}

func (p *Projector) lockFor(id uuid.UUID) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	lock, ok := p.locks[id]
	if !ok {
		lock = &sync.Mutex{}
		p.locks[id] = lock
	}
	return lock
}

func (p *Projector) addBadge(delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.badge += delta
	if p.badge < 0 {
		p.badge = 0
	}
}
