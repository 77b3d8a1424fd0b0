package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"minder/internal/domain"
	"minder/internal/ports"
)

// notificationIcon is passed through to the platform notifier.
const notificationIcon = "minder"

// SessionService is the session controller: a small state machine that owns
// the idle/running lifecycle, late-start reconciliation, and reminder
// scheduling. All mutations funnel through its entry points.
type SessionService struct {
	mu       sync.Mutex
	storage  ports.Storage
	notifier ports.Notifier
	clock    ports.Clock
}

// NewSessionService creates a new session controller.
func NewSessionService(storage ports.Storage, notifier ports.Notifier, clock ports.Clock) *SessionService {
	return &SessionService{
		storage:  storage,
		notifier: notifier,
		clock:    clock,
	}
}

// StartResult reports the outcome of a successful start.
type StartResult struct {
	Session *domain.Session
	// Skipped lists the names of activities whose windows had already
	// elapsed; a non-fatal warning for the user to acknowledge.
	Skipped []string
	// LateBy is how far past the plan's nominal start the session began.
	LateBy time.Duration
	// Rollover is set when every reminder boundary has already passed
	// today; nothing fires unless it is accepted.
	Rollover *domain.RolloverProposal
}

// Start transitions a schedule from idle to running. Under a deadline the
// plan is pinned so its last window closes at the deadline, so a late press
// of start reports skipped activities rather than shifting the plan.
// Returns domain.ErrSessionActive if any session is already running, or a
// *domain.TooLateError when the whole plan has already elapsed.
func (s *SessionService) Start(ctx context.Context, schedule *domain.Schedule) (*StartResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := schedule.Validate(); err != nil {
		return nil, err
	}

	active, err := s.storage.Sessions().FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to check active sessions: %w", err)
	}
	if active != nil {
		return nil, domain.ErrSessionActive
	}

	now := s.clock.Now()
	start, anchor := domain.NominalStart(schedule, now)
	windows := domain.ResolveWindows(schedule, start)

	rec, err := domain.Reconcile(schedule, windows, now)
	if err != nil {
		return nil, err
	}

	session := domain.NewSession(schedule.ID)
	session.Start(start, anchor, rec.SkippedIDs)
	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	result := &StartResult{
		Session:  session,
		Skipped:  rec.SkippedNames,
		Rollover: s.refreshNotifications(ctx, schedule, session, now),
	}
	if now.After(start) {
		result.LateBy = now.Sub(start)
	}
	return result, nil
}

// Stop returns a schedule's session to idle. It is idempotent and always
// attempts notification cancellation, even when no session was running, to
// guard against orphaned reminders from a previous run.
func (s *SessionService) Stop(ctx context.Context, scheduleID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.notifier.CancelGroup(ctx, scheduleID); err != nil {
		log.Printf("warning: failed to cancel notifications: %v", err)
	}

	session, err := s.storage.Sessions().Find(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active {
		return nil
	}
	session.Stop()
	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Snapshot is the evaluated view of a schedule at one instant.
type Snapshot struct {
	Now       time.Time
	Active    bool
	StartedAt time.Time
	Anchor    time.Time
	Total     time.Duration
	Progress  float64
	Statuses  []domain.ActivityStatus
}

// Current returns the current activity's status, if any.
func (sn *Snapshot) Current() (domain.ActivityStatus, bool) {
	return domain.Current(sn.Statuses)
}

// Snapshot evaluates the schedule against the clock. While running, windows
// are resolved against the session's original start; while idle the result
// is a preview of starting now.
func (s *SessionService) Snapshot(ctx context.Context, schedule *domain.Schedule) (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.Sessions().Find(ctx, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	now := s.clock.Now()
	start := session.StartedAt
	anchor := session.Anchor
	if !session.Active {
		start, anchor = domain.NominalStart(schedule, now)
	}

	windows := domain.ResolveWindows(schedule, start)
	snap := &Snapshot{
		Now:       now,
		Active:    session.Active,
		StartedAt: start,
		Anchor:    anchor,
		Total:     schedule.TotalDuration(),
		Statuses:  domain.Evaluate(schedule, windows, now, session.CompletedSet()),
	}
	if session.Active {
		snap.Progress = domain.Progress(now, start, snap.Total)
	}
	return snap, nil
}

// HandleEdit refreshes reminders after the activity list changed while a
// session is running. Windows are re-resolved against the existing start so
// elapsed progress is preserved; reconciliation is deliberately not re-run,
// so an edit never marks anything skipped mid-session.
func (s *SessionService) HandleEdit(ctx context.Context, schedule *domain.Schedule) (*domain.RolloverProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.Sessions().Find(ctx, schedule.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active {
		return nil, nil
	}
	return s.refreshNotifications(ctx, schedule, session, s.clock.Now()), nil
}

// MarkDone force-marks an activity completed by hand. The mark persists for
// the rest of the session; nothing ever removes it while active.
func (s *SessionService) MarkDone(ctx context.Context, scheduleID, activityID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, err := s.storage.Sessions().Find(ctx, scheduleID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active {
		return domain.ErrNoActiveSession
	}
	session.MarkCompleted(activityID)
	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// PendingRollover returns the unaccepted next-day proposal for a schedule.
func (s *SessionService) PendingRollover(ctx context.Context, schedule *domain.Schedule) (*domain.RolloverProposal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, proposal, err := s.pendingProposal(ctx, schedule)
	return proposal, err
}

// AcceptRollover schedules the pending next-day reminders and marks the
// proposal accepted. Returns how many reminders were armed.
func (s *SessionService) AcceptRollover(ctx context.Context, schedule *domain.Schedule) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, proposal, err := s.pendingProposal(ctx, schedule)
	if err != nil {
		return 0, err
	}
	if proposal == nil {
		return 0, domain.ErrNoPendingRollover
	}
	scheduled := 0
	for _, b := range proposal.Boundaries {
		if err := s.scheduleBoundary(ctx, schedule, b); err != nil {
			log.Printf("warning: failed to schedule reminder for %q: %v", b.Name, err)
			continue
		}
		scheduled++
	}
	session.RolloverDone = true
	if err := s.storage.Sessions().Save(ctx, session); err != nil {
		return scheduled, fmt.Errorf("failed to save session: %w", err)
	}
	return scheduled, nil
}

// pendingProposal derives the unaccepted proposal from persisted session
// state. Each CLI command runs in its own process, so the proposal must be
// recoverable from storage rather than held in memory.
func (s *SessionService) pendingProposal(ctx context.Context, schedule *domain.Schedule) (*domain.Session, *domain.RolloverProposal, error) {
	session, err := s.storage.Sessions().Find(ctx, schedule.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load session: %w", err)
	}
	if !session.Active || session.RolloverDone {
		return session, nil, nil
	}
	windows := domain.ResolveWindows(schedule, session.StartedAt)
	partition := domain.PartitionBoundaries(schedule, windows, s.clock.Now())
	return session, partition.Rollover(), nil
}

// Run drives the tick loop at the given period while the session is active,
// invoking onTick with a fresh snapshot. It returns when the session goes
// idle or the context is cancelled; the ticker is always released.
func (s *SessionService) Run(ctx context.Context, schedule *domain.Schedule, period time.Duration, onTick func(*Snapshot)) error {
	ticker := s.clock.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C():
			snap, err := s.Snapshot(ctx, schedule)
			if err != nil {
				return err
			}
			if !snap.Active {
				return nil
			}
			onTick(snap)
		}
	}
}

// refreshNotifications cancels the schedule's reminder group, arms a
// reminder for every boundary still ahead of now, and returns a rollover
// proposal when nothing remains today. Notifier failures are logged and
// swallowed; reminders are best-effort.
func (s *SessionService) refreshNotifications(ctx context.Context, schedule *domain.Schedule, session *domain.Session, now time.Time) *domain.RolloverProposal {
	if err := s.notifier.CancelGroup(ctx, schedule.ID); err != nil {
		log.Printf("warning: failed to cancel notifications: %v", err)
	}

	windows := domain.ResolveWindows(schedule, session.StartedAt)
	partition := domain.PartitionBoundaries(schedule, windows, now)
	for _, b := range partition.Future {
		if err := s.scheduleBoundary(ctx, schedule, b); err != nil {
			log.Printf("warning: failed to schedule reminder for %q: %v", b.Name, err)
		}
	}

	proposal := partition.Rollover()
	if proposal != nil && session.RolloverDone {
		// An edit re-created an all-past plan after an earlier acceptance;
		// the new proposal must be acceptable again.
		session.RolloverDone = false
		if err := s.storage.Sessions().Save(ctx, session); err != nil {
			log.Printf("warning: failed to save session: %v", err)
		}
	}
	return proposal
}

func (s *SessionService) scheduleBoundary(ctx context.Context, schedule *domain.Schedule, b domain.Boundary) error {
	return s.notifier.Schedule(ctx, ports.Notification{
		Title:      b.Name,
		FireAt:     b.At,
		ID:         b.ActivityID,
		GroupLabel: schedule.Name,
		GroupID:    schedule.ID,
		Icon:       notificationIcon,
	})
}
