package domain

import (
	"testing"
	"time"
)

func TestPartitionBoundaries(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	// 5 minutes in: C started at t0, B starts t0+15, A starts t0+20.
	p := PartitionBoundaries(s, windows, t0.Add(5*time.Minute))

	if len(p.Past) != 1 || p.Past[0].Name != "C" {
		t.Errorf("Past = %v, want [C]", p.Past)
	}
	if len(p.Future) != 2 {
		t.Fatalf("len(Future) = %d, want 2", len(p.Future))
	}
	if p.Future[0].Name != "A" || p.Future[1].Name != "B" {
		t.Errorf("Future names = %q, %q, want A, B", p.Future[0].Name, p.Future[1].Name)
	}
}

func TestPartitionBoundaries_AtNowIsPast(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	p := PartitionBoundaries(s, windows, t0)
	for _, b := range p.Future {
		if b.Name == "C" {
			t.Error("a boundary exactly at now must count as past")
		}
	}
	if len(p.Past) != 1 {
		t.Errorf("len(Past) = %d, want 1", len(p.Past))
	}
}

func TestRollover(t *testing.T) {
	s := countdownSchedule(t)
	t0 := time.Date(2024, 6, 15, 14, 0, 0, 0, time.Local)
	windows := ResolveWindows(s, t0)

	// Some boundaries still ahead: no rollover.
	p := PartitionBoundaries(s, windows, t0.Add(5*time.Minute))
	if p.Rollover() != nil {
		t.Error("Rollover() != nil while future boundaries remain")
	}

	// All boundaries passed: propose the same clock times tomorrow.
	p = PartitionBoundaries(s, windows, t0.Add(25*time.Minute))
	prop := p.Rollover()
	if prop == nil {
		t.Fatal("Rollover() = nil, want proposal")
	}
	if len(prop.Boundaries) != 3 {
		t.Fatalf("len(Boundaries) = %d, want 3", len(prop.Boundaries))
	}
	for i, b := range prop.Boundaries {
		want := p.Past[i].At.Add(24 * time.Hour)
		if !b.At.Equal(want) {
			t.Errorf("Boundaries[%d].At = %v, want %v", i, b.At, want)
		}
	}
}

func TestRollover_EmptyPartition(t *testing.T) {
	var p Partition
	if p.Rollover() != nil {
		t.Error("Rollover() on an empty partition must be nil")
	}
}
