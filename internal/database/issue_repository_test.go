package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowboard/flowboard/internal/models"
	_ "modernc.org/sqlite"
)

func TestCreateIssueIncrementsProjectCount(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mustCreateProject(t, repo, "PROJ", "Test Project")

	issue := mustCreateIssue(t, repo, "PROJ-001", "PROJ", "First issue")
	if issue.ID == 0 {
		t.Error("Issue should have a valid ID")
	}
	if issue.Status != models.StatusOpen {
		t.Errorf("Expected status %q, got %q", models.StatusOpen, issue.Status)
	}
	if issueCount(t, db, "PROJ") != 1 {
		t.Error("Project issue count should be 1 after first issue")
	}

	mustCreateIssue(t, repo, "PROJ-002", "PROJ", "Second issue")
	if issueCount(t, db, "PROJ") != 2 {
		t.Error("Project issue count should be 2 after second issue")
	}
}

func TestCreateIssueUnknownProjectRollsBack(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.CreateIssue(context.Background(), &models.Issue{
		Key:        "GHOST-001",
		ProjectKey: "GHOST",
		Summary:    "Orphan issue",
		Status:     models.StatusOpen,
		IssueType:  models.IssueTypeTask,
		Reporter:   "tester",
	})
	if err == nil {
		t.Fatal("Expected error creating issue for unknown project")
	}

	// The whole transaction must roll back, leaving no issue row behind
	var count int
	err = db.QueryRowContext(context.Background(),
		`SELECT COUNT(*) FROM issues WHERE key = 'GHOST-001'`).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count issues: %v", err)
	}
	if count != 0 {
		t.Error("No issue row should survive a failed create")
	}
}

func TestGetIssueByIDNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	_, err := repo.GetIssueByID(context.Background(), 999)
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestUpdateIssuePersistsWorkflowTimestamps(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mustCreateProject(t, repo, "PROJ", "Test Project")
	issue := mustCreateIssue(t, repo, "PROJ-001", "PROJ", "Workflow issue")

	started := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	resolved := time.Date(2026, 3, 5, 17, 0, 0, 0, time.UTC)
	issue.Status = models.StatusResolved
	issue.StartedAt = timePtr(started)
	issue.ResolvedAt = timePtr(resolved)

	if err := repo.UpdateIssue(context.Background(), issue); err != nil {
		t.Fatalf("Failed to update issue: %v", err)
	}

	got, err := repo.GetIssueByID(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("Failed to reload issue: %v", err)
	}
	if got.Status != models.StatusResolved {
		t.Errorf("Expected status resolved, got %q", got.Status)
	}
	if got.StartedAt == nil || !got.StartedAt.Equal(started) {
		t.Errorf("Expected started_at %v, got %v", started, got.StartedAt)
	}
	if got.ResolvedAt == nil || !got.ResolvedAt.Equal(resolved) {
		t.Errorf("Expected resolved_at %v, got %v", resolved, got.ResolvedAt)
	}

	// Clearing resolved_at must round-trip as nil
	got.Status = models.StatusOpen
	got.ResolvedAt = nil
	if err := repo.UpdateIssue(context.Background(), got); err != nil {
		t.Fatalf("Failed to reopen issue: %v", err)
	}
	reopened, err := repo.GetIssueByID(context.Background(), issue.ID)
	if err != nil {
		t.Fatalf("Failed to reload reopened issue: %v", err)
	}
	if reopened.ResolvedAt != nil {
		t.Error("resolved_at should be nil after reopening")
	}
}

func TestUpdateIssueNotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	err := repo.UpdateIssue(context.Background(), &models.Issue{
		ID:       999,
		Summary:  "Ghost",
		Status:   models.StatusOpen,
		Reporter: "tester",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestCountIssuesByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mustCreateProject(t, repo, "PROJ", "Test Project")

	first := mustCreateIssue(t, repo, "PROJ-001", "PROJ", "One")
	mustCreateIssue(t, repo, "PROJ-002", "PROJ", "Two")

	first.Status = models.StatusInProgress
	if err := repo.UpdateIssue(context.Background(), first); err != nil {
		t.Fatalf("Failed to move issue: %v", err)
	}

	inProgress, err := repo.CountIssuesByStatus(context.Background(), "PROJ", models.StatusInProgress)
	if err != nil {
		t.Fatalf("Failed to count issues: %v", err)
	}
	if inProgress != 1 {
		t.Errorf("Expected 1 in-progress issue, got %d", inProgress)
	}

	open, err := repo.CountIssuesByStatus(context.Background(), "PROJ", models.StatusOpen)
	if err != nil {
		t.Fatalf("Failed to count issues: %v", err)
	}
	if open != 1 {
		t.Errorf("Expected 1 open issue, got %d", open)
	}
}

func TestGetIssuesByProjectOrderedByCreation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mustCreateProject(t, repo, "PROJ", "Test Project")
	mustCreateProject(t, repo, "OTHER", "Other Project")

	mustCreateIssue(t, repo, "PROJ-001", "PROJ", "First")
	mustCreateIssue(t, repo, "OTHER-001", "OTHER", "Elsewhere")
	mustCreateIssue(t, repo, "PROJ-002", "PROJ", "Second")

	issues, err := repo.GetIssuesByProject(context.Background(), "PROJ")
	if err != nil {
		t.Fatalf("Failed to get issues: %v", err)
	}
	if len(issues) != 2 {
		t.Fatalf("Expected 2 issues, got %d", len(issues))
	}
	if issues[0].Key != "PROJ-001" || issues[1].Key != "PROJ-002" {
		t.Errorf("Issues out of creation order: %s, %s", issues[0].Key, issues[1].Key)
	}
}

func TestGetIssuesUpdatedSince(t *testing.T) {
	db := setupTestDB(t)
	repo := NewRepository(db)

	mustCreateProject(t, repo, "PROJ", "Test Project")
	mustCreateIssue(t, repo, "PROJ-001", "PROJ", "Stale")
	fresh := mustCreateIssue(t, repo, "PROJ-002", "PROJ", "Fresh")

	// Pin timestamps explicitly so the cutoff comparison is deterministic
	cutoff := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	before := cutoff.Add(-time.Hour)
	after := cutoff.Add(time.Hour)
	if _, err := db.ExecContext(context.Background(),
		`UPDATE issues SET updated_at = ? WHERE key = 'PROJ-001'`, before); err != nil {
		t.Fatalf("Failed to backdate issue: %v", err)
	}
	if _, err := db.ExecContext(context.Background(),
		`UPDATE issues SET updated_at = ? WHERE key = ?`, after, fresh.Key); err != nil {
		t.Fatalf("Failed to touch issue: %v", err)
	}

	changed, err := repo.GetIssuesUpdatedSince(context.Background(), "PROJ", cutoff)
	if err != nil {
		t.Fatalf("Failed to get changed issues: %v", err)
	}
	if len(changed) != 1 {
		t.Fatalf("Expected 1 changed issue, got %d", len(changed))
	}
	if changed[0].Key != "PROJ-002" {
		t.Errorf("Expected PROJ-002, got %s", changed[0].Key)
	}
}
