package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"minder/internal/adapters/clock"
	"minder/internal/adapters/notification"
	"minder/internal/adapters/storage"
	"minder/internal/config"
	"minder/internal/domain"
	"minder/internal/ports"
	"minder/internal/services"
)

// setupTestStorage creates a temporary database for integration tests.
func setupTestStorage(t *testing.T) (ports.Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.New(dbPath)
	require.NoError(t, err, "failed to create storage")
	t.Cleanup(func() { store.Close() })
	return store, dbPath
}

func setupServices(t *testing.T, store ports.Storage) (*services.ScheduleService, *services.SessionService) {
	t.Helper()

	notifier := notification.New(&config.NotificationConfig{Enabled: false})
	sessions := services.NewSessionService(store, notifier, clock.New())
	schedules := services.NewScheduleService(store)
	schedules.SetSessionService(sessions)
	return schedules, sessions
}

// TestFullSessionLifecycle runs a schedule through create, start, mark done,
// and stop against real storage and the system clock.
func TestFullSessionLifecycle(t *testing.T) {
	store, _ := setupTestStorage(t)
	schedules, sessions := setupServices(t, store)
	ctx := context.Background()

	// 1. Create a countdown schedule with no deadline: it starts now.
	schedule, err := schedules.Create(ctx, "afternoon", "deadline")
	require.NoError(t, err)

	for _, name := range []string{"Review", "Email", "Warmup"} {
		_, _, err := schedules.AddActivity(ctx, schedule, name, 10*time.Minute, nil)
		require.NoError(t, err)
	}

	// 2. Start the session.
	result, err := sessions.Start(ctx, schedule)
	require.NoError(t, err)
	assert.True(t, result.Session.Active)
	assert.Empty(t, result.Skipped, "an on-time start skips nothing")

	// 3. The highest position runs first: Warmup is current, Review ends last.
	snap, err := sessions.Snapshot(ctx, schedule)
	require.NoError(t, err)
	current, ok := snap.Current()
	require.True(t, ok, "expected a current activity")
	assert.Equal(t, "Warmup", current.Name)

	// 4. Mark an activity done by hand.
	review, err := schedules.ResolveActivity(schedule, "Review")
	require.NoError(t, err)
	require.NoError(t, sessions.MarkDone(ctx, schedule.ID, review.ID))

	snap, err = sessions.Snapshot(ctx, schedule)
	require.NoError(t, err)
	assert.Equal(t, domain.StateCompleted, snap.Statuses[0].State)
	assert.True(t, snap.Statuses[0].Skipped)

	// 5. Stop and verify nothing active remains.
	require.NoError(t, sessions.Stop(ctx, schedule.ID))
	active, err := store.Sessions().FindActive(ctx)
	require.NoError(t, err)
	assert.Nil(t, active)
}

// TestLateStartAgainstDeadline pins a 40 minute plan to a deadline 10
// minutes out, so the two earliest activities have already elapsed.
func TestLateStartAgainstDeadline(t *testing.T) {
	now := time.Now()
	if now.Hour() == 23 && now.Minute() >= 45 {
		t.Skip("deadline math wraps at midnight")
	}

	store, _ := setupTestStorage(t)
	schedules, sessions := setupServices(t, store)
	ctx := context.Background()

	schedule, err := schedules.Create(ctx, "evening", "deadline")
	require.NoError(t, err)

	for _, spec := range []struct {
		name string
		d    time.Duration
	}{
		{"Wrap up", 20 * time.Minute},
		{"Email", 5 * time.Minute},
		{"Review", 15 * time.Minute},
	} {
		_, _, err := schedules.AddActivity(ctx, schedule, spec.name, spec.d, nil)
		require.NoError(t, err)
	}
	dl := now.Add(10 * time.Minute)
	_, err = schedules.SetDeadline(ctx, schedule, domain.TimeOfDay{Hour: dl.Hour(), Minute: dl.Minute()})
	require.NoError(t, err)

	result, err := sessions.Start(ctx, schedule)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Email", "Review"}, result.Skipped)
	assert.Greater(t, result.LateBy, time.Duration(0))

	snap, err := sessions.Snapshot(ctx, schedule)
	require.NoError(t, err)
	current, ok := snap.Current()
	require.True(t, ok)
	assert.Equal(t, "Wrap up", current.Name)
	assert.Greater(t, snap.Progress, 0.0)

	require.NoError(t, sessions.Stop(ctx, schedule.ID))
}

// TestEditWhileRunning renames and extends an activity mid-session and
// verifies the session start and skip set survive the edit.
func TestEditWhileRunning(t *testing.T) {
	store, _ := setupTestStorage(t)
	schedules, sessions := setupServices(t, store)
	ctx := context.Background()

	schedule, err := schedules.Create(ctx, "afternoon", "deadline")
	require.NoError(t, err)
	_, _, err = schedules.AddActivity(ctx, schedule, "Review", 10*time.Minute, nil)
	require.NoError(t, err)

	result, err := sessions.Start(ctx, schedule)
	require.NoError(t, err)
	startedAt := result.Session.StartedAt

	_, err = schedules.UpdateActivity(ctx, schedule, "Review", func(a *domain.Activity) {
		a.Name = "Deep review"
		a.Duration = 25 * time.Minute
	})
	require.NoError(t, err)

	snap, err := sessions.Snapshot(ctx, schedule)
	require.NoError(t, err)
	assert.True(t, snap.Active)
	assert.True(t, snap.StartedAt.Equal(startedAt), "edit must not move the session start")
	current, ok := snap.Current()
	require.True(t, ok)
	assert.Equal(t, "Deep review", current.Name)

	require.NoError(t, sessions.Stop(ctx, schedule.ID))
}

// TestPersistenceAcrossReopen closes the database and reopens it, checking
// schedules and session state survive.
func TestPersistenceAcrossReopen(t *testing.T) {
	store, dbPath := setupTestStorage(t)
	schedules, _ := setupServices(t, store)
	ctx := context.Background()

	schedule, err := schedules.Create(ctx, "morning", "start_times")
	require.NoError(t, err)
	at := domain.TimeOfDay{Hour: 8, Minute: 30}
	_, _, err = schedules.AddActivity(ctx, schedule, "Coffee", 15*time.Minute, &at)
	require.NoError(t, err)

	require.NoError(t, store.Close())

	reopened, err := storage.New(dbPath)
	require.NoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.Schedules().FindByName(ctx, "morning")
	require.NoError(t, err)
	assert.Equal(t, domain.AnchorStartTimes, loaded.Mode)
	require.Len(t, loaded.Activities, 1)
	require.NotNil(t, loaded.Activities[0].StartAt)
	assert.Equal(t, "08:30", loaded.Activities[0].StartAt.String())
}
