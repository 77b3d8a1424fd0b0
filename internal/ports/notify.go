package ports

import (
	"context"
	"time"
)

// Notification is a reminder request for a single activity boundary.
type Notification struct {
	Title      string
	FireAt     time.Time
	ID         string
	GroupLabel string
	GroupID    string
	Icon       string
}

// Notifier schedules and cancels reminder notifications. Delivery is
// best-effort: callers log failures and carry on.
// This is a driven port (implemented by adapters).
type Notifier interface {
	// Schedule arms a notification to fire at the given instant.
	Schedule(ctx context.Context, n Notification) error

	// CancelGroup cancels every pending notification in a group.
	CancelGroup(ctx context.Context, groupID string) error
}
