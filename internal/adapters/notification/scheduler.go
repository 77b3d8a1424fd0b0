// Package notification provides a desktop implementation of the notifier
// port: reminders are armed as in-process timers and delivered via the
// platform notification system when they fire.
package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"minder/internal/config"
	"minder/internal/ports"
)

// Scheduler implements ports.Notifier with beeep-backed delivery.
type Scheduler struct {
	cfg *config.NotificationConfig

	mu     sync.Mutex
	groups map[string]map[string]*time.Timer
}

// Ensure Scheduler implements ports.Notifier.
var _ ports.Notifier = (*Scheduler)(nil)

// New creates a scheduler with the given configuration.
func New(cfg *config.NotificationConfig) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		groups: make(map[string]map[string]*time.Timer),
	}
}

// Schedule arms a reminder to fire at the given instant. A reminder already
// armed with the same id in the same group is replaced. Disabled
// notifications are a silent no-op.
func (s *Scheduler) Schedule(_ context.Context, n ports.Notification) error {
	if s.cfg == nil || !s.cfg.Enabled {
		return nil
	}

	delay := s.fireDelay(n.FireAt)

	s.mu.Lock()
	defer s.mu.Unlock()

	group := s.groups[n.GroupID]
	if group == nil {
		group = make(map[string]*time.Timer)
		s.groups[n.GroupID] = group
	}
	if prev, ok := group[n.ID]; ok {
		prev.Stop()
	}

	title := n.Title
	message := fmt.Sprintf("%s: time to start", n.GroupLabel)
	group[n.ID] = time.AfterFunc(delay, func() {
		s.deliver(title, message)
	})
	return nil
}

// CancelGroup stops every pending reminder in a group.
func (s *Scheduler) CancelGroup(_ context.Context, groupID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, timer := range s.groups[groupID] {
		timer.Stop()
	}
	delete(s.groups, groupID)
	return nil
}

// Pending returns how many reminders are armed for a group.
func (s *Scheduler) Pending(groupID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.groups[groupID])
}

// fireDelay converts a boundary instant into a timer delay, pulled
// earlier by the configured lead time and clamped at zero.
func (s *Scheduler) fireDelay(fireAt time.Time) time.Duration {
	if s.cfg.LeadTime > 0 {
		fireAt = fireAt.Add(-time.Duration(s.cfg.LeadTime) * time.Minute)
	}
	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}
	return delay
}

func (s *Scheduler) deliver(title, message string) {
	if s.cfg.Sound {
		_ = beeep.Alert(title, message, "")
		return
	}
	_ = beeep.Notify(title, message, "")
}
