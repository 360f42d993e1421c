package sprint

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
	"github.com/flowboard/flowboard/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	testutil.SeedProject(t, db, "ALPHA", "Alpha", 5)
	testutil.SeedProject(t, db, "BETA", "Beta", 5)

	svc := NewService(repo, repo, repo)
	return svc, repo
}

func validRequest() CreateSprintRequest {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	return CreateSprintRequest{
		Name:       "Sprint 1",
		ProjectKey: "ALPHA",
		StartDate:  start,
		EndDate:    start.AddDate(0, 0, 14),
	}
}

func TestCreateSprintValidation(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)
	ctx := context.Background()

	req := validRequest()
	req.Name = ""
	if _, err := svc.CreateSprint(ctx, req); !errors.Is(err, ErrInvalidName) {
		t.Errorf("Expected ErrInvalidName, got %v", err)
	}

	req = validRequest()
	req.EndDate = req.StartDate
	if _, err := svc.CreateSprint(ctx, req); !errors.Is(err, ErrInvalidDates) {
		t.Errorf("Expected ErrInvalidDates, got %v", err)
	}

	req = validRequest()
	req.ProjectKey = "NOPE"
	if _, err := svc.CreateSprint(ctx, req); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("Expected models.ErrNotFound, got %v", err)
	}
}

func TestCreateSprintStoresRecord(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	created, err := svc.CreateSprint(context.Background(), validRequest())
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}
	if created.ID == 0 {
		t.Error("Expected sprint ID to be assigned")
	}
	if created.ProjectKey != "ALPHA" {
		t.Errorf("Expected project ALPHA, got %q", created.ProjectKey)
	}
}

func TestAddIssueToSprintRejectsCrossProject(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateSprint(ctx, validRequest())
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}

	now := time.Now().UTC()
	outsider, err := repo.CreateIssue(ctx, &models.Issue{
		Key: "BETA-001", ProjectKey: "BETA", Summary: "other team",
		Status: models.StatusOpen, Reporter: "tester",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	err = svc.AddIssueToSprint(ctx, created.ID, outsider.ID)
	if !errors.Is(err, ErrCrossProjectIssue) {
		t.Fatalf("Expected ErrCrossProjectIssue, got %v", err)
	}
	if !errors.Is(err, models.ErrConflict) {
		t.Errorf("Expected error to wrap models.ErrConflict, got %v", err)
	}
}

func TestAddIssueToSprintIsIdempotent(t *testing.T) {
	t.Parallel()
	svc, repo := setupService(t)
	ctx := context.Background()

	created, err := svc.CreateSprint(ctx, validRequest())
	if err != nil {
		t.Fatalf("CreateSprint failed: %v", err)
	}

	now := time.Now().UTC()
	issue, err := repo.CreateIssue(ctx, &models.Issue{
		Key: "ALPHA-001", ProjectKey: "ALPHA", Summary: "ours",
		Status: models.StatusOpen, Reporter: "tester",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	if err := svc.AddIssueToSprint(ctx, created.ID, issue.ID); err != nil {
		t.Fatalf("AddIssueToSprint failed: %v", err)
	}
	if err := svc.AddIssueToSprint(ctx, created.ID, issue.ID); err != nil {
		t.Fatalf("Re-adding issue should be a no-op, got %v", err)
	}

	issues, err := svc.GetIssuesInSprint(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetIssuesInSprint failed: %v", err)
	}
	if len(issues) != 1 {
		t.Errorf("Expected 1 issue in sprint, got %d", len(issues))
	}
}

func TestGetIssuesInSprintUnknownSprint(t *testing.T) {
	t.Parallel()
	svc, _ := setupService(t)

	_, err := svc.GetIssuesInSprint(context.Background(), 999)
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("Expected models.ErrNotFound, got %v", err)
	}
}
