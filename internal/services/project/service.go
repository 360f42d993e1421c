// Package project manages project records, their WIP limits, and user
// assignments.
package project

import (
	"context"
	"errors"
	"fmt"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/models"
)

// CreateProjectRequest contains the data needed to create a project
type CreateProjectRequest struct {
	Key         string
	Name        string
	Description string
	Lead        string
	WIPLimit    int // Zero means use the configured default
}

// Service defines project management operations
type Service interface {
	CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error)
	GetProject(ctx context.Context, key string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)

	// AssignUser sets a user's role on a project, replacing any prior role
	AssignUser(ctx context.Context, projectKey string, userID int, role string) error

	// RemoveUser removes a user's assignment from a project
	RemoveUser(ctx context.Context, projectKey string, userID int) error
}

// service implements Service
type service struct {
	projects        database.ProjectStore
	users           database.UserStore
	defaultWIPLimit int
}

// NewService creates a new project service. defaultWIPLimit is applied to
// projects created without an explicit limit; non-positive values fall back
// to models.DefaultWIPLimit.
func NewService(projects database.ProjectStore, users database.UserStore, defaultWIPLimit int) Service {
	if defaultWIPLimit <= 0 {
		defaultWIPLimit = models.DefaultWIPLimit
	}
	return &service{
		projects:        projects,
		users:           users,
		defaultWIPLimit: defaultWIPLimit,
	}
}

func (s *service) CreateProject(ctx context.Context, req CreateProjectRequest) (*models.Project, error) {
	if !validKey(req.Key) {
		return nil, fmt.Errorf("%q: %w", req.Key, ErrInvalidKey)
	}
	if req.Name == "" {
		return nil, ErrInvalidName
	}

	wipLimit := req.WIPLimit
	if wipLimit <= 0 {
		wipLimit = s.defaultWIPLimit
	}

	if _, err := s.projects.GetProjectByKey(ctx, req.Key); err == nil {
		return nil, fmt.Errorf("project %q: %w", req.Key, ErrProjectExists)
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	return s.projects.CreateProject(ctx, &models.Project{
		Key:         req.Key,
		Name:        req.Name,
		Description: req.Description,
		Lead:        req.Lead,
		WIPLimit:    wipLimit,
	})
}

func (s *service) GetProject(ctx context.Context, key string) (*models.Project, error) {
	if key == "" {
		return nil, ErrInvalidKey
	}
	return s.projects.GetProjectByKey(ctx, key)
}

func (s *service) GetAllProjects(ctx context.Context) ([]*models.Project, error) {
	return s.projects.GetAllProjects(ctx)
}

func (s *service) AssignUser(ctx context.Context, projectKey string, userID int, role string) error {
	if !validRole(role) {
		return fmt.Errorf("%q: %w", role, ErrInvalidRole)
	}

	project, err := s.projects.GetProjectByKey(ctx, projectKey)
	if err != nil {
		return err
	}
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return err
	}

	return s.projects.AssignUserToProject(ctx, project.ID, userID, role)
}

func (s *service) RemoveUser(ctx context.Context, projectKey string, userID int) error {
	project, err := s.projects.GetProjectByKey(ctx, projectKey)
	if err != nil {
		return err
	}
	return s.projects.RemoveUserFromProject(ctx, project.ID, userID)
}

// validKey accepts 2-10 uppercase letters or digits starting with a letter
func validKey(key string) bool {
	if len(key) < 2 || len(key) > 10 {
		return false
	}
	for i, c := range key {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func validRole(role string) bool {
	switch role {
	case models.RoleLead, models.RoleMember, models.RoleObserver:
		return true
	}
	return false
}
