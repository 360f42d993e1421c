// Package sprint manages time-boxed iterations and their issue membership.
package sprint

import (
	"context"
	"fmt"
	"time"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
)

// CreateSprintRequest contains the data needed to create a sprint
type CreateSprintRequest struct {
	Name        string
	Description string
	ProjectKey  string
	StartDate   time.Time
	EndDate     time.Time
}

// Service defines sprint management operations
type Service interface {
	CreateSprint(ctx context.Context, req CreateSprintRequest) (*models.Sprint, error)
	GetSprint(ctx context.Context, id int) (*models.Sprint, error)

	// AddIssueToSprint associates an issue with a sprint. The issue must
	// belong to the sprint's project; re-adding a member is a no-op.
	AddIssueToSprint(ctx context.Context, sprintID, issueID int) error

	GetIssuesInSprint(ctx context.Context, sprintID int) ([]*models.Issue, error)
}

// service implements Service
type service struct {
	sprints  database.SprintStore
	issues   database.IssueStore
	projects database.ProjectStore
}

// NewService creates a new sprint service
func NewService(sprints database.SprintStore, issues database.IssueStore, projects database.ProjectStore) Service {
	return &service{
		sprints:  sprints,
		issues:   issues,
		projects: projects,
	}
}

func (s *service) CreateSprint(ctx context.Context, req CreateSprintRequest) (*models.Sprint, error) {
	if req.Name == "" {
		return nil, ErrInvalidName
	}
	if !req.EndDate.After(req.StartDate) {
		return nil, ErrInvalidDates
	}

	if _, err := s.projects.GetProjectByKey(ctx, req.ProjectKey); err != nil {
		return nil, err
	}

	return s.sprints.CreateSprint(ctx, &models.Sprint{
		Name:        req.Name,
		Description: req.Description,
		ProjectKey:  req.ProjectKey,
		StartDate:   req.StartDate.UTC(),
		EndDate:     req.EndDate.UTC(),
	})
}

func (s *service) GetSprint(ctx context.Context, id int) (*models.Sprint, error) {
	return s.sprints.GetSprintByID(ctx, id)
}

func (s *service) AddIssueToSprint(ctx context.Context, sprintID, issueID int) error {
	sprint, err := s.sprints.GetSprintByID(ctx, sprintID)
	if err != nil {
		return err
	}
	issue, err := s.issues.GetIssueByID(ctx, issueID)
	if err != nil {
		return err
	}

	if issue.ProjectKey != sprint.ProjectKey {
		return fmt.Errorf("issue %s is in %q, sprint %q is in %q: %w",
			issue.Key, issue.ProjectKey, sprint.Name, sprint.ProjectKey, ErrCrossProjectIssue)
	}

	return s.sprints.AddIssueToSprint(ctx, sprintID, issueID)
}

func (s *service) GetIssuesInSprint(ctx context.Context, sprintID int) ([]*models.Issue, error) {
	if _, err := s.sprints.GetSprintByID(ctx, sprintID); err != nil {
		return nil, err
	}
	return s.sprints.GetIssuesInSprint(ctx, sprintID)
}
