package domain

import (
	"errors"
	"testing"
	"time"
)

func TestReconcile_OnTime(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	rec, err := Reconcile(s, windows, t0)
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(rec.SkippedIDs) != 0 {
		t.Errorf("SkippedIDs = %v, want none", rec.SkippedIDs)
	}
}

func TestReconcile_LateStartSkipsElapsed(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	// 22 minutes in: C (ends t0+15) and B (ends t0+20) are gone, A is live.
	rec, err := Reconcile(s, windows, t0.Add(22*time.Minute))
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(rec.SkippedIDs) != 2 {
		t.Fatalf("len(SkippedIDs) = %d, want 2", len(rec.SkippedIDs))
	}
	if rec.SkippedNames[0] != "B" || rec.SkippedNames[1] != "C" {
		t.Errorf("SkippedNames = %v, want [B C]", rec.SkippedNames)
	}
}

func TestReconcile_WindowEndingNowIsSkipped(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	// Exactly at C's end: half-open windows mean C has already elapsed.
	rec, err := Reconcile(s, windows, t0.Add(15*time.Minute))
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}
	if len(rec.SkippedIDs) != 1 || rec.SkippedNames[0] != "C" {
		t.Errorf("SkippedNames = %v, want [C]", rec.SkippedNames)
	}
}

func TestReconcile_TooLate(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	_, err := Reconcile(s, windows, t0.Add(30*time.Minute))
	var tooLate *TooLateError
	if !errors.As(err, &tooLate) {
		t.Fatalf("Reconcile() error = %v, want TooLateError", err)
	}
	if !tooLate.LastEnd.Equal(t0.Add(30 * time.Minute)) {
		t.Errorf("LastEnd = %v, want %v", tooLate.LastEnd, t0.Add(30*time.Minute))
	}
}
