package domain

import (
	"testing"
	"time"
)

func TestSessionStartStop(t *testing.T) {
	sess := NewSession("sched-1")
	if sess.Active {
		t.Fatal("new session must be idle")
	}

	start := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	anchor := start.Add(30 * time.Minute)
	sess.Start(start, anchor, []string{"a1", "a2"})

	if !sess.Active {
		t.Error("Active = false after Start")
	}
	if !sess.StartedAt.Equal(start) {
		t.Errorf("StartedAt = %v, want %v", sess.StartedAt, start)
	}
	if !sess.Anchor.Equal(anchor) {
		t.Errorf("Anchor = %v, want %v", sess.Anchor, anchor)
	}
	if len(sess.Completed) != 2 {
		t.Errorf("len(Completed) = %d, want 2", len(sess.Completed))
	}

	sess.Stop()
	if sess.Active || !sess.StartedAt.IsZero() || !sess.Anchor.IsZero() || sess.Completed != nil {
		t.Error("Stop() must fully reset the session")
	}

	// Stopping an idle session is a no-op, not an error.
	sess.Stop()
	if sess.Active {
		t.Error("second Stop() must leave the session idle")
	}
}

func TestSessionMarkCompleted(t *testing.T) {
	sess := NewSession("sched-1")
	sess.Start(time.Now(), time.Time{}, nil)

	sess.MarkCompleted("a1")
	sess.MarkCompleted("a1", "a2")
	if len(sess.Completed) != 2 {
		t.Errorf("len(Completed) = %d, want 2 (duplicates ignored)", len(sess.Completed))
	}
	if !sess.IsCompleted("a1") || !sess.IsCompleted("a2") {
		t.Error("IsCompleted must report marked ids")
	}
	if sess.IsCompleted("a3") {
		t.Error("IsCompleted(a3) = true, want false")
	}

	set := sess.CompletedSet()
	if !set["a1"] || !set["a2"] || len(set) != 2 {
		t.Errorf("CompletedSet() = %v", set)
	}
}
