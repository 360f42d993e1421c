// Package scope rolls multiple projects up into named reporting units.
// A scope owns no issues; everything it reports is computed on the fly by
// concatenating member projects' issues in stored order.
package scope

import (
	"context"
	"fmt"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
	boardservice "github.com/flowboard/flowboard/internal/services/board"
)

// IssueLookup fetches the issues of a single project. Aggregation is
// parameterized on it so callers can plug in any issue source.
type IssueLookup func(ctx context.Context, projectKey string) ([]*models.Issue, error)

// CreateScopeRequest contains the data needed to create a scope
type CreateScopeRequest struct {
	Name        string
	Description string
	ProjectKeys []string
}

// Service defines scope management and cross-project aggregation
type Service interface {
	// IssuesForScope concatenates member projects' issues in scope order.
	// A scope with no projects yields an empty slice. Any lookup failure
	// aborts the whole aggregation with an error naming the project.
	IssuesForScope(ctx context.Context, scope *models.Scope, lookup IssueLookup) ([]*models.Issue, error)

	// IssuesForScopeID is IssuesForScope backed by the issue store
	IssuesForScopeID(ctx context.Context, scopeID int) ([]*models.Issue, error)

	// BoardForScopeID builds a combined kanban board over a scope's issues
	BoardForScopeID(ctx context.Context, scopeID int) (models.Board, error)

	CreateScope(ctx context.Context, req CreateScopeRequest) (*models.Scope, error)
	GetScope(ctx context.Context, id int) (*models.Scope, error)
	GetAllScopes(ctx context.Context) ([]*models.Scope, error)

	// AddProjectToScope appends a project to the scope's member list.
	// Adding a project that is already a member is a no-op.
	AddProjectToScope(ctx context.Context, scopeID int, projectKey string) (*models.Scope, error)

	// RemoveProjectsFromScope removes the given members and returns the
	// updated scope. Keys not in the scope are ignored.
	RemoveProjectsFromScope(ctx context.Context, scopeID int, projectKeys []string) (*models.Scope, error)
}

// service implements Service
type service struct {
	scopes   database.ScopeStore
	projects database.ProjectStore
	issues   database.IssueStore
	board    boardservice.Service
}

// NewService creates a new scope service
func NewService(scopes database.ScopeStore, projects database.ProjectStore, issues database.IssueStore, board boardservice.Service) Service {
	return &service{
		scopes:   scopes,
		projects: projects,
		issues:   issues,
		board:    board,
	}
}

func (s *service) IssuesForScope(ctx context.Context, scope *models.Scope, lookup IssueLookup) ([]*models.Issue, error) {
	if scope == nil {
		return nil, ErrNilScope
	}
	if lookup == nil {
		return nil, ErrNilLookup
	}

	combined := []*models.Issue{}
	for _, projectKey := range scope.ProjectKeys {
		issues, err := lookup(ctx, projectKey)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issues for project %q in scope %q: %w", projectKey, scope.Name, err)
		}
		combined = append(combined, issues...)
	}
	return combined, nil
}

func (s *service) IssuesForScopeID(ctx context.Context, scopeID int) ([]*models.Issue, error) {
	scope, err := s.scopes.GetScopeByID(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	return s.IssuesForScope(ctx, scope, s.issues.GetIssuesByProject)
}

func (s *service) BoardForScopeID(ctx context.Context, scopeID int) (models.Board, error) {
	issues, err := s.IssuesForScopeID(ctx, scopeID)
	if err != nil {
		return nil, err
	}
	return s.board.Build(issues), nil
}

func (s *service) CreateScope(ctx context.Context, req CreateScopeRequest) (*models.Scope, error) {
	if req.Name == "" {
		return nil, ErrInvalidName
	}

	seen := make(map[string]bool, len(req.ProjectKeys))
	for _, key := range req.ProjectKeys {
		if seen[key] {
			return nil, fmt.Errorf("project %q: %w", key, ErrDuplicateProject)
		}
		seen[key] = true

		// Surface a not-found error before the insert trips a constraint
		if _, err := s.projects.GetProjectByKey(ctx, key); err != nil {
			return nil, err
		}
	}

	return s.scopes.CreateScope(ctx, req.Name, req.Description, req.ProjectKeys)
}

func (s *service) GetScope(ctx context.Context, id int) (*models.Scope, error) {
	return s.scopes.GetScopeByID(ctx, id)
}

func (s *service) GetAllScopes(ctx context.Context) ([]*models.Scope, error) {
	return s.scopes.GetAllScopes(ctx)
}

func (s *service) AddProjectToScope(ctx context.Context, scopeID int, projectKey string) (*models.Scope, error) {
	if _, err := s.projects.GetProjectByKey(ctx, projectKey); err != nil {
		return nil, err
	}
	if _, err := s.scopes.GetScopeByID(ctx, scopeID); err != nil {
		return nil, err
	}

	if err := s.scopes.AddProjectToScope(ctx, scopeID, projectKey); err != nil {
		return nil, err
	}
	return s.scopes.GetScopeByID(ctx, scopeID)
}

func (s *service) RemoveProjectsFromScope(ctx context.Context, scopeID int, projectKeys []string) (*models.Scope, error) {
	if _, err := s.scopes.GetScopeByID(ctx, scopeID); err != nil {
		return nil, err
	}

	if err := s.scopes.RemoveProjectsFromScope(ctx, scopeID, projectKeys); err != nil {
		return nil, err
	}
	return s.scopes.GetScopeByID(ctx, scopeID)
}
