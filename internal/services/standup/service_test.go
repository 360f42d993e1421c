package standup

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
	boardservice "github.com/flowboard/flowboard/internal/services/board"
	"github.com/flowboard/flowboard/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	testutil.SeedProject(t, db, "PROJ", "Test Project", 5)

	svc := NewService(repo, repo, boardservice.NewService(), nil)
	return svc, repo
}

func TestStartRequiresProjectKey(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	_, err := svc.Start(context.Background(), "")
	if !errors.Is(err, ErrInvalidProjectKey) {
		t.Fatalf("Expected ErrInvalidProjectKey, got %v", err)
	}
}

func TestStartSnapshotsBoard(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t)
	ctx := context.Background()

	now := time.Now().UTC()
	for i, status := range []string{models.StatusOpen, models.StatusInProgress, models.StatusResolved} {
		_, err := repo.CreateIssue(ctx, &models.Issue{
			Key:        []string{"PROJ-001", "PROJ-002", "PROJ-003"}[i],
			ProjectKey: "PROJ",
			Summary:    "issue",
			Status:     status,
			Reporter:   "tester",
			CreatedAt:  now,
			UpdatedAt:  now,
		})
		if err != nil {
			t.Fatalf("Failed to create issue: %v", err)
		}
	}

	session, err := svc.Start(ctx, "PROJ")
	if err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	if !session.Active {
		t.Error("Expected session to be active")
	}
	if session.Snapshot == nil {
		t.Fatal("Expected board snapshot, got nil")
	}
	if got := len(session.Snapshot[models.ColumnToDo]); got != 1 {
		t.Errorf("Expected 1 issue in To Do, got %d", got)
	}
	if got := len(session.Snapshot[models.ColumnInProgress]); got != 1 {
		t.Errorf("Expected 1 issue in In Progress, got %d", got)
	}
	if got := len(session.Snapshot[models.ColumnDone]); got != 1 {
		t.Errorf("Expected 1 issue in Done, got %d", got)
	}
}

func TestStartTwiceReturnsConflict(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "PROJ"); err != nil {
		t.Fatalf("First start failed: %v", err)
	}

	_, err := svc.Start(ctx, "PROJ")
	if !errors.Is(err, ErrStandupActive) {
		t.Fatalf("Expected ErrStandupActive, got %v", err)
	}
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("Expected error to wrap models.ErrConflict, got %v", err)
	}
}

func TestSessionsIndependentAcrossProjects(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	testutil.SeedProject(t, db, "ALPHA", "Alpha", 5)
	testutil.SeedProject(t, db, "BETA", "Beta", 5)
	svc := NewService(repo, repo, boardservice.NewService(), nil)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "ALPHA"); err != nil {
		t.Fatalf("Start ALPHA failed: %v", err)
	}
	if _, err := svc.Start(ctx, "BETA"); err != nil {
		t.Fatalf("Start BETA should not conflict with ALPHA: %v", err)
	}

	if _, err := svc.End(ctx, "ALPHA"); err != nil {
		t.Fatalf("End ALPHA failed: %v", err)
	}

	// BETA is still running
	_, err := svc.Start(ctx, "BETA")
	if !errors.Is(err, ErrStandupActive) {
		t.Errorf("Expected BETA to still be active, got %v", err)
	}
}

func TestEndWithoutStartReturnsNotActive(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	_, err := svc.End(context.Background(), "PROJ")
	if !errors.Is(err, ErrNoActiveStandup) {
		t.Fatalf("Expected ErrNoActiveStandup, got %v", err)
	}
	if !errors.Is(err, models.ErrNotActive) {
		t.Errorf("Expected error to wrap models.ErrNotActive, got %v", err)
	}
}

func TestEndClearsSessionAndIsRetryable(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "PROJ"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	session, err := svc.End(ctx, "PROJ")
	if err != nil {
		t.Fatalf("End failed: %v", err)
	}
	if session.Active {
		t.Error("Expected session to be inactive after end")
	}
	if session.EndedAt == nil {
		t.Error("Expected EndedAt to be set")
	}
	if session.Snapshot != nil {
		t.Error("Expected snapshot to be cleared after end")
	}

	// Retrying End is a stable no-op error, not a crash
	_, err = svc.End(ctx, "PROJ")
	if !errors.Is(err, ErrNoActiveStandup) {
		t.Errorf("Expected ErrNoActiveStandup on retry, got %v", err)
	}
}

func TestStartAfterEndBeginsNewSession(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, err := svc.Start(ctx, "PROJ"); err != nil {
		t.Fatalf("First start failed: %v", err)
	}
	if _, err := svc.End(ctx, "PROJ"); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	session, err := svc.Start(ctx, "PROJ")
	if err != nil {
		t.Fatalf("Second start failed: %v", err)
	}
	if !session.Active {
		t.Error("Expected new session to be active")
	}
	if session.EndedAt != nil {
		t.Error("Expected new session to have no end time")
	}
}

// failingStandupStore fails every persistence call
type failingStandupStore struct{}

func (f *failingStandupStore) CreateStandup(ctx context.Context, projectKey string, startedAt time.Time) (int, error) {
	return 0, models.ErrStoreUnavailable
}

func (f *failingStandupStore) EndStandup(ctx context.Context, standupID int, endedAt time.Time) error {
	return models.ErrStoreUnavailable
}

func (f *failingStandupStore) GetLastStandupEnd(ctx context.Context, projectKey string) (*time.Time, error) {
	return nil, models.ErrStoreUnavailable
}

func TestStartFailureLeavesStateUnchanged(t *testing.T) {
	t.Parallel()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	testutil.SeedProject(t, db, "PROJ", "Test Project", 5)
	svc := NewService(repo, &failingStandupStore{}, boardservice.NewService(), nil)
	ctx := context.Background()

	_, err := svc.Start(ctx, "PROJ")
	if !errors.Is(err, models.ErrStoreUnavailable) {
		t.Fatalf("Expected store error, got %v", err)
	}

	// The failed start must not have left a half-active session behind
	_, err = svc.End(ctx, "PROJ")
	if !errors.Is(err, ErrNoActiveStandup) {
		t.Errorf("Expected no active session after failed start, got %v", err)
	}
}

func TestConcurrentStartsExactlyOneWins(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	const workers = 10
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes, conflicts int

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Start(ctx, "PROJ")
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, ErrStandupActive):
				conflicts++
			default:
				t.Errorf("Unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Errorf("Expected exactly 1 successful start, got %d", successes)
	}
	if conflicts != workers-1 {
		t.Errorf("Expected %d conflicts, got %d", workers-1, conflicts)
	}
}

func TestChangedSinceLastStandupWithoutHistory(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t)
	ctx := context.Background()

	now := time.Now().UTC()
	if _, err := repo.CreateIssue(ctx, &models.Issue{
		Key: "PROJ-001", ProjectKey: "PROJ", Summary: "first",
		Status: models.StatusOpen, Reporter: "tester",
		CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		t.Fatalf("Failed to create issue: %v", err)
	}

	issues, err := svc.ChangedSinceLastStandup(ctx, "PROJ")
	if err != nil {
		t.Fatalf("ChangedSinceLastStandup failed: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("Expected all issues when no standup ever ended, got %d", len(issues))
	}
}

func TestChangedSinceLastStandupFiltersByEndTime(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t)
	ctx := context.Background()

	before := time.Now().UTC().Add(-time.Hour)
	stale, err := repo.CreateIssue(ctx, &models.Issue{
		Key: "PROJ-001", ProjectKey: "PROJ", Summary: "stale",
		Status: models.StatusOpen, Reporter: "tester",
		CreatedAt: before, UpdatedAt: before,
	})
	if err != nil {
		t.Fatalf("Failed to create issue: %v", err)
	}

	if _, err := svc.Start(ctx, "PROJ"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	if _, err := svc.End(ctx, "PROJ"); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	// Touch one issue strictly after the standup ended
	time.Sleep(20 * time.Millisecond)
	stale.Summary = "updated after standup"
	if err := repo.UpdateIssue(ctx, stale); err != nil {
		t.Fatalf("UpdateIssue failed: %v", err)
	}

	issues, err := svc.ChangedSinceLastStandup(ctx, "PROJ")
	if err != nil {
		t.Fatalf("ChangedSinceLastStandup failed: %v", err)
	}
	if len(issues) != 1 {
		t.Fatalf("Expected 1 changed issue, got %d", len(issues))
	}
	if issues[0].Summary != "updated after standup" {
		t.Errorf("Expected the touched issue, got %q", issues[0].Summary)
	}
}

func TestCurrentReflectsLifecycle(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	if _, ok := svc.Current("PROJ"); ok {
		t.Fatal("Expected no session before start")
	}

	if _, err := svc.Start(ctx, "PROJ"); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	session, ok := svc.Current("PROJ")
	if !ok || !session.Active {
		t.Fatalf("Expected active session, got ok=%v session=%+v", ok, session)
	}

	if _, err := svc.End(ctx, "PROJ"); err != nil {
		t.Fatalf("End failed: %v", err)
	}
	session, ok = svc.Current("PROJ")
	if !ok || session.Active {
		t.Fatalf("Expected ended session record, got ok=%v session=%+v", ok, session)
	}
}
