package notification

import (
	"context"
	"testing"
	"time"

	"minder/internal/config"
	"minder/internal/ports"
)

func testNotification(id string) ports.Notification {
	return ports.Notification{
		Title:      "Coffee",
		FireAt:     time.Now().Add(time.Hour),
		ID:         id,
		GroupLabel: "morning",
		GroupID:    "group-1",
		Icon:       "minder",
	}
}

func TestSchedulerPending(t *testing.T) {
	s := New(&config.NotificationConfig{Enabled: true})
	ctx := context.Background()

	if err := s.Schedule(ctx, testNotification("a1")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if err := s.Schedule(ctx, testNotification("a2")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if got := s.Pending("group-1"); got != 2 {
		t.Errorf("Pending() = %d, want 2", got)
	}
	if got := s.Pending("other"); got != 0 {
		t.Errorf("Pending(other) = %d, want 0", got)
	}
}

func TestSchedulerReplacesSameID(t *testing.T) {
	s := New(&config.NotificationConfig{Enabled: true})
	ctx := context.Background()

	if err := s.Schedule(ctx, testNotification("a1")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if err := s.Schedule(ctx, testNotification("a1")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if got := s.Pending("group-1"); got != 1 {
		t.Errorf("Pending() = %d, want 1 (re-arm replaces)", got)
	}
}

func TestSchedulerCancelGroup(t *testing.T) {
	s := New(&config.NotificationConfig{Enabled: true})
	ctx := context.Background()

	if err := s.Schedule(ctx, testNotification("a1")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if err := s.CancelGroup(ctx, "group-1"); err != nil {
		t.Fatalf("CancelGroup() error = %v", err)
	}
	if got := s.Pending("group-1"); got != 0 {
		t.Errorf("Pending() = %d, want 0 after cancel", got)
	}

	// Cancelling an unknown group is a no-op.
	if err := s.CancelGroup(ctx, "ghost"); err != nil {
		t.Errorf("CancelGroup(ghost) error = %v", err)
	}
}

func TestSchedulerLeadTime(t *testing.T) {
	s := New(&config.NotificationConfig{Enabled: true, LeadTime: 5})

	got := s.fireDelay(time.Now().Add(30 * time.Minute))
	if got < 24*time.Minute || got > 25*time.Minute {
		t.Errorf("fireDelay() = %v, want about 25m", got)
	}

	// A lead time reaching past now clamps to an immediate fire.
	if got := s.fireDelay(time.Now().Add(2 * time.Minute)); got != 0 {
		t.Errorf("fireDelay() = %v, want 0", got)
	}

	noLead := New(&config.NotificationConfig{Enabled: true})
	got = noLead.fireDelay(time.Now().Add(30 * time.Minute))
	if got < 29*time.Minute || got > 30*time.Minute {
		t.Errorf("fireDelay() = %v, want about 30m", got)
	}
}

func TestSchedulerDisabled(t *testing.T) {
	s := New(&config.NotificationConfig{Enabled: false})

	if err := s.Schedule(context.Background(), testNotification("a1")); err != nil {
		t.Fatalf("Schedule() error = %v", err)
	}
	if got := s.Pending("group-1"); got != 0 {
		t.Errorf("Pending() = %d, want 0 when disabled", got)
	}
}
