// Package issue owns the issue lifecycle: creation with generated keys,
// workflow transitions with WIP enforcement, and the timestamps the
// metrics layer depends on.
package issue

import (
	"context"
	"fmt"
	"time"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/events"
	"github.com/flowboard/flowboard/internal/models"
)

// CreateIssueRequest contains the data needed to create an issue.
// Status is not accepted here; new issues always start open.
type CreateIssueRequest struct {
	ProjectKey  string
	Summary     string
	Description string
	IssueType   string // Defaults to task
	Reporter    string
	Assignee    string
}

// UpdateIssueRequest carries partial updates; nil fields are left unchanged
type UpdateIssueRequest struct {
	ID          int
	Summary     *string
	Description *string
	Status      *string
	IssueType   *string
	Assignee    *string
}

// Service defines issue management operations
type Service interface {
	// CreateIssue creates an open issue with a generated sequential key
	// like "PROJ-004"
	CreateIssue(ctx context.Context, req CreateIssueRequest) (*models.Issue, error)

	// UpdateIssue applies the non-nil fields of the request. Moving an
	// issue into in_progress is refused with ErrWIPLimitExceeded when the
	// project already has wip_limit issues in progress. First entry into
	// in_progress stamps started_at; entry into resolved stamps
	// resolved_at; reopening clears it.
	UpdateIssue(ctx context.Context, req UpdateIssueRequest) (*models.Issue, error)

	GetIssue(ctx context.Context, id int) (*models.Issue, error)
	GetIssuesByProject(ctx context.Context, projectKey string) ([]*models.Issue, error)
}

// service implements Service
type service struct {
	issues      database.IssueStore
	projects    database.ProjectStore
	eventClient events.EventPublisher
}

// NewService creates a new issue service
func NewService(issues database.IssueStore, projects database.ProjectStore, eventClient events.EventPublisher) Service {
	return &service{
		issues:      issues,
		projects:    projects,
		eventClient: eventClient,
	}
}

func (s *service) CreateIssue(ctx context.Context, req CreateIssueRequest) (*models.Issue, error) {
	if req.ProjectKey == "" {
		return nil, ErrInvalidProjectKey
	}
	if req.Summary == "" {
		return nil, ErrInvalidSummary
	}
	if req.Reporter == "" {
		return nil, ErrInvalidReporter
	}

	issueType := req.IssueType
	if issueType == "" {
		issueType = models.IssueTypeTask
	}
	if !validIssueType(issueType) {
		return nil, fmt.Errorf("%q: %w", issueType, ErrInvalidIssueType)
	}

	project, err := s.projects.GetProjectByKey(ctx, req.ProjectKey)
	if err != nil {
		return nil, err
	}

	issue := &models.Issue{
		Key:         fmt.Sprintf("%s-%03d", project.Key, project.IssueCount+1),
		ProjectKey:  project.Key,
		Summary:     req.Summary,
		Description: req.Description,
		Status:      models.StatusOpen,
		IssueType:   issueType,
		Reporter:    req.Reporter,
		Assignee:    req.Assignee,
	}

	created, err := s.issues.CreateIssue(ctx, issue)
	if err != nil {
		return nil, err
	}

	s.publishIssueEvent(created.ProjectKey)
	return created, nil
}

func (s *service) UpdateIssue(ctx context.Context, req UpdateIssueRequest) (*models.Issue, error) {
	issue, err := s.issues.GetIssueByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Summary != nil {
		if *req.Summary == "" {
			return nil, ErrInvalidSummary
		}
		issue.Summary = *req.Summary
	}
	if req.Description != nil {
		issue.Description = *req.Description
	}
	if req.IssueType != nil {
		if !validIssueType(*req.IssueType) {
			return nil, fmt.Errorf("%q: %w", *req.IssueType, ErrInvalidIssueType)
		}
		issue.IssueType = *req.IssueType
	}
	if req.Assignee != nil {
		issue.Assignee = *req.Assignee
	}

	if req.Status != nil && *req.Status != issue.Status {
		if err := s.applyStatusTransition(ctx, issue, *req.Status); err != nil {
			return nil, err
		}
	}

	if err := s.issues.UpdateIssue(ctx, issue); err != nil {
		return nil, err
	}

	updated, err := s.issues.GetIssueByID(ctx, issue.ID)
	if err != nil {
		return nil, err
	}

	s.publishIssueEvent(updated.ProjectKey)
	return updated, nil
}

// applyStatusTransition mutates the issue's status and workflow timestamps,
// enforcing the project's WIP limit on entry into in_progress
func (s *service) applyStatusTransition(ctx context.Context, issue *models.Issue, newStatus string) error {
	if !validStatus(newStatus) {
		return fmt.Errorf("%q: %w", newStatus, ErrInvalidStatus)
	}

	wasResolved := issue.Resolved()

	if newStatus == models.StatusInProgress {
		project, err := s.projects.GetProjectByKey(ctx, issue.ProjectKey)
		if err != nil {
			return err
		}

		inProgress, err := s.issues.CountIssuesByStatus(ctx, issue.ProjectKey, models.StatusInProgress)
		if err != nil {
			return err
		}
		if inProgress >= project.WIPLimit {
			return fmt.Errorf("project %q has %d issues in progress (limit %d): %w",
				issue.ProjectKey, inProgress, project.WIPLimit, ErrWIPLimitExceeded)
		}

		if issue.StartedAt == nil {
			now := time.Now().UTC()
			issue.StartedAt = &now
		}
	}

	issue.Status = newStatus

	switch {
	case issue.Resolved() && issue.ResolvedAt == nil:
		now := time.Now().UTC()
		issue.ResolvedAt = &now
	case wasResolved && !issue.Resolved():
		// Reopened: the issue no longer counts toward throughput
		issue.ResolvedAt = nil
	}

	return nil
}

func (s *service) GetIssue(ctx context.Context, id int) (*models.Issue, error) {
	return s.issues.GetIssueByID(ctx, id)
}

func (s *service) GetIssuesByProject(ctx context.Context, projectKey string) ([]*models.Issue, error) {
	if projectKey == "" {
		return nil, ErrInvalidProjectKey
	}
	return s.issues.GetIssuesByProject(ctx, projectKey)
}

func validStatus(status string) bool {
	switch status {
	case models.StatusOpen, models.StatusInProgress, models.StatusResolved, models.StatusClosed:
		return true
	}
	return false
}

func validIssueType(issueType string) bool {
	switch issueType {
	case models.IssueTypeTask, models.IssueTypeStory, models.IssueTypeBug:
		return true
	}
	return false
}

func (s *service) publishIssueEvent(projectKey string) {
	if s.eventClient == nil {
		return
	}
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:       events.EventIssueChanged,
		ProjectKey: projectKey,
		Timestamp:  time.Now(),
	}, 3)
}
