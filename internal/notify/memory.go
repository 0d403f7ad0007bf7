package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/verdant/plantcare/internal/domain"
)

// MemoryCenter is an in-process Center. It backs the server's delivery
// sweep and stands in for the platform subsystem in tests.
type MemoryCenter struct {
	mu      sync.Mutex
	pending map[uuid.UUID]Request
	status  AuthStatus
	badge   int
}

// NewMemoryCenter returns a MemoryCenter in the given authorization state.
func NewMemoryCenter(status AuthStatus) *MemoryCenter {
	return &MemoryCenter{
		pending: make(map[uuid.UUID]Request),
		status:  status,
	}
}

func (c *MemoryCenter) ScheduleAt(_ context.Context, req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == AuthDenied {
		return domain.ErrNotificationDenied
	}
	c.pending[req.ID] = req
	return nil
}

func (c *MemoryCenter) Cancel(_ context.Context, id uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.pending, id)
	return nil
}

func (c *MemoryCenter) Pending(_ context.Context) ([]Request, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Request, 0, len(c.pending))
	for _, req := range c.pending {
		out = append(out, req)
	}
	return out, nil
}

func (c *MemoryCenter) Authorization(_ context.Context) (AuthStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status, nil
}

// RequestAuthorization grants authorization unless it was explicitly denied.
func (c *MemoryCenter) RequestAuthorization(_ context.Context) (AuthStatus, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.status == AuthNotDetermined {
		c.status = AuthAuthorized
	}
	return c.status, nil
}

func (c *MemoryCenter) SetBadge(_ context.Context, n int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.badge = n
	return nil
}

// Badge returns the last badge count pushed to the center.
func (c *MemoryCenter) Badge() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.badge
}

// SetAuthorization overrides the authorization state. Test hook.
func (c *MemoryCenter) SetAuthorization(status AuthStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
}

// DeliverDue removes and returns every pending notification whose trigger
// time is at or before now. The delivery sweep calls this on a cron tick.
func (c *MemoryCenter) DeliverDue(now time.Time) []Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	var due []Request
	for id, req := range c.pending {
		if !req.At.After(now) {
			due = append(due, req)
			delete(c.pending, id)
		}
	}
	return due
}
