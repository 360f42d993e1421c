package issue

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
	"github.com/flowboard/flowboard/internal/testutil"
)

func setupService(t *testing.T, wipLimit int) (Service, *database.Repository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	testutil.SeedProject(t, db, "PROJ", "Test Project", wipLimit)

	svc := NewService(repo, repo, nil)
	return svc, repo
}

func strPtr(s string) *string { return &s }

func TestCreateIssueValidation(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	tests := []struct {
		name    string
		req     CreateIssueRequest
		wantErr error
	}{
		{"missing project", CreateIssueRequest{Summary: "s", Reporter: "r"}, ErrInvalidProjectKey},
		{"missing summary", CreateIssueRequest{ProjectKey: "PROJ", Reporter: "r"}, ErrInvalidSummary},
		{"missing reporter", CreateIssueRequest{ProjectKey: "PROJ", Summary: "s"}, ErrInvalidReporter},
		{"bad issue type", CreateIssueRequest{ProjectKey: "PROJ", Summary: "s", Reporter: "r", IssueType: "epic"}, ErrInvalidIssueType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateIssue(ctx, tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestCreateIssueUnknownProject(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)

	_, err := svc.CreateIssue(context.Background(), CreateIssueRequest{
		ProjectKey: "NOPE", Summary: "s", Reporter: "r",
	})
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected models.ErrNotFound, got %v", err)
	}
}

func TestCreateIssueGeneratesSequentialKeys(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	for i, want := range []string{"PROJ-001", "PROJ-002", "PROJ-003"} {
		created, err := svc.CreateIssue(ctx, CreateIssueRequest{
			ProjectKey: "PROJ",
			Summary:    fmt.Sprintf("issue %d", i+1),
			Reporter:   "tester",
		})
		if err != nil {
			t.Fatalf("CreateIssue %d failed: %v", i+1, err)
		}
		if created.Key != want {
			t.Errorf("Expected key %s, got %s", want, created.Key)
		}
		if created.Status != models.StatusOpen {
			t.Errorf("Expected new issue to be open, got %s", created.Status)
		}
		if created.IssueType != models.IssueTypeTask {
			t.Errorf("Expected default type task, got %s", created.IssueType)
		}
	}
}

func TestUpdateIssueStampsStartedAt(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	created, err := svc.CreateIssue(ctx, CreateIssueRequest{ProjectKey: "PROJ", Summary: "s", Reporter: "r"})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}
	if created.StartedAt != nil {
		t.Fatal("Expected no started_at on a new issue")
	}

	updated, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr(models.StatusInProgress)})
	if err != nil {
		t.Fatalf("UpdateIssue failed: %v", err)
	}
	if updated.StartedAt == nil {
		t.Fatal("Expected started_at to be stamped on first move to in_progress")
	}
	firstStart := *updated.StartedAt

	// Bouncing back and forth must not re-stamp
	if _, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr(models.StatusOpen)}); err != nil {
		t.Fatalf("Move back to open failed: %v", err)
	}
	updated, err = svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr(models.StatusInProgress)})
	if err != nil {
		t.Fatalf("Second move to in_progress failed: %v", err)
	}
	if updated.StartedAt == nil || !updated.StartedAt.Equal(firstStart) {
		t.Errorf("Expected started_at to keep its original value %v, got %v", firstStart, updated.StartedAt)
	}
}

func TestUpdateIssueStampsAndClearsResolvedAt(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	created, err := svc.CreateIssue(ctx, CreateIssueRequest{ProjectKey: "PROJ", Summary: "s", Reporter: "r"})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	resolved, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr(models.StatusResolved)})
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if resolved.ResolvedAt == nil {
		t.Fatal("Expected resolved_at to be stamped")
	}

	reopened, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr(models.StatusOpen)})
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	if reopened.ResolvedAt != nil {
		t.Errorf("Expected resolved_at cleared on reopen, got %v", reopened.ResolvedAt)
	}
}

func TestUpdateIssueRejectsUnknownStatus(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	created, err := svc.CreateIssue(ctx, CreateIssueRequest{ProjectKey: "PROJ", Summary: "s", Reporter: "r"})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	_, err = svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Status: strPtr("blocked")})
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("Expected ErrInvalidStatus, got %v", err)
	}
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected error to wrap models.ErrInvalidState, got %v", err)
	}
}

func TestUpdateIssueEnforcesWIPLimit(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 2)
	ctx := context.Background()

	var ids []int
	for i := 0; i < 3; i++ {
		created, err := svc.CreateIssue(ctx, CreateIssueRequest{
			ProjectKey: "PROJ",
			Summary:    fmt.Sprintf("issue %d", i+1),
			Reporter:   "tester",
		})
		if err != nil {
			t.Fatalf("CreateIssue failed: %v", err)
		}
		ids = append(ids, created.ID)
	}

	for _, id := range ids[:2] {
		if _, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: id, Status: strPtr(models.StatusInProgress)}); err != nil {
			t.Fatalf("Move within limit failed: %v", err)
		}
	}

	_, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: ids[2], Status: strPtr(models.StatusInProgress)})
	if !errors.Is(err, ErrWIPLimitExceeded) {
		t.Fatalf("Expected ErrWIPLimitExceeded, got %v", err)
	}
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("Expected error to wrap models.ErrConflict, got %v", err)
	}

	// Resolving one frees a slot
	if _, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: ids[0], Status: strPtr(models.StatusResolved)}); err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if _, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: ids[2], Status: strPtr(models.StatusInProgress)}); err != nil {
		t.Errorf("Expected move to succeed after freeing a slot, got %v", err)
	}
}

func TestUpdateIssuePartialFields(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	created, err := svc.CreateIssue(ctx, CreateIssueRequest{
		ProjectKey: "PROJ", Summary: "original", Description: "desc", Reporter: "tester",
	})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	updated, err := svc.UpdateIssue(ctx, UpdateIssueRequest{ID: created.ID, Assignee: strPtr("alice")})
	if err != nil {
		t.Fatalf("UpdateIssue failed: %v", err)
	}
	if updated.Assignee != "alice" {
		t.Errorf("Expected assignee alice, got %q", updated.Assignee)
	}
	if updated.Summary != "original" || updated.Description != "desc" {
		t.Errorf("Expected untouched fields preserved, got %+v", updated)
	}
	if updated.Status != models.StatusOpen {
		t.Errorf("Expected status unchanged, got %s", updated.Status)
	}
}

func TestGetIssuesByProjectOrdering(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t, 5)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateIssue(ctx, CreateIssueRequest{
			ProjectKey: "PROJ",
			Summary:    fmt.Sprintf("issue %d", i+1),
			Reporter:   "tester",
		}); err != nil {
			t.Fatalf("CreateIssue failed: %v", err)
		}
	}

	issues, err := svc.GetIssuesByProject(ctx, "PROJ")
	if err != nil {
		t.Fatalf("GetIssuesByProject failed: %v", err)
	}
	if len(issues) != 3 {
		t.Fatalf("Expected 3 issues, got %d", len(issues))
	}
	for i, issue := range issues {
		want := fmt.Sprintf("PROJ-%03d", i+1)
		if issue.Key != want {
			t.Errorf("Position %d: expected %s, got %s", i, want, issue.Key)
		}
	}
}
