// Package database defines repository interfaces for data access
package database

import (
	"context"
	"time"

	"github.com/flowboard/flowboard/internal/models"
)

// IssueStore defines issue-related data operations
type IssueStore interface {
	CreateIssue(ctx context.Context, issue *models.Issue) (*models.Issue, error)
	GetIssueByID(ctx context.Context, id int) (*models.Issue, error)
	GetIssuesByProject(ctx context.Context, projectKey string) ([]*models.Issue, error)
	GetIssuesUpdatedSince(ctx context.Context, projectKey string, since time.Time) ([]*models.Issue, error)
	UpdateIssue(ctx context.Context, issue *models.Issue) error
	CountIssuesByStatus(ctx context.Context, projectKey, status string) (int, error)
}

// ProjectStore defines project-related data operations
type ProjectStore interface {
	CreateProject(ctx context.Context, project *models.Project) (*models.Project, error)
	GetProjectByKey(ctx context.Context, key string) (*models.Project, error)
	GetAllProjects(ctx context.Context) ([]*models.Project, error)
	IncrementIssueCount(ctx context.Context, projectKey string) error
	AssignUserToProject(ctx context.Context, projectID, userID int, role string) error
	RemoveUserFromProject(ctx context.Context, projectID, userID int) error
}

// ScopeStore defines scope-related data operations
type ScopeStore interface {
	CreateScope(ctx context.Context, name, description string, projectKeys []string) (*models.Scope, error)
	GetScopeByID(ctx context.Context, id int) (*models.Scope, error)
	GetAllScopes(ctx context.Context) ([]*models.Scope, error)
	AddProjectToScope(ctx context.Context, scopeID int, projectKey string) error
	RemoveProjectsFromScope(ctx context.Context, scopeID int, projectKeys []string) error
}

// StandupStore defines standup session persistence
type StandupStore interface {
	CreateStandup(ctx context.Context, projectKey string, startedAt time.Time) (int, error)
	EndStandup(ctx context.Context, standupID int, endedAt time.Time) error
	GetLastStandupEnd(ctx context.Context, projectKey string) (*time.Time, error)
}

// SprintStore defines sprint-related data operations
type SprintStore interface {
	CreateSprint(ctx context.Context, sprint *models.Sprint) (*models.Sprint, error)
	GetSprintByID(ctx context.Context, id int) (*models.Sprint, error)
	AddIssueToSprint(ctx context.Context, sprintID, issueID int) error
	GetIssuesInSprint(ctx context.Context, sprintID int) ([]*models.Issue, error)
}

// UserStore defines user-related data operations
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

// DataStore is the unified interface over all data operations.
// It is composed of smaller, domain-specific interfaces so consumers can
// depend on just the slice they need.
type DataStore interface {
	IssueStore
	ProjectStore
	ScopeStore
	StandupStore
	SprintStore
	UserStore
}
