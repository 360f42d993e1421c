package app

import (
	"github.com/flowboard/flowboard/internal/config"
	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/events"
	boardservice "github.com/flowboard/flowboard/internal/services/board"
	issueservice "github.com/flowboard/flowboard/internal/services/issue"
	metricsservice "github.com/flowboard/flowboard/internal/services/metrics"
	projectservice "github.com/flowboard/flowboard/internal/services/project"
	scopeservice "github.com/flowboard/flowboard/internal/services/scope"
	sprintservice "github.com/flowboard/flowboard/internal/services/sprint"
	standupservice "github.com/flowboard/flowboard/internal/services/standup"
)

// App holds all application services and provides dependency injection.
// This is the main application container that manages service lifecycles.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Event system for live updates
	eventClient events.EventPublisher

	// Service layer (business logic)
	BoardService   boardservice.Service
	MetricsService metricsservice.Service
	IssueService   issueservice.Service
	ProjectService projectservice.Service
	ScopeService   scopeservice.Service
	SprintService  sprintservice.Service
	StandupService standupservice.Service
}

// New creates a new App with all services initialized.
// This is the single entry point for creating the application container.
func New(repo database.DataStore, eventClient events.EventPublisher, cfg *config.Config) *App {
	board := boardservice.NewService()

	defaultWIPLimit := 0
	if cfg != nil {
		defaultWIPLimit = cfg.Workflow.DefaultWIPLimit
	}

	return &App{
		repo:           repo,
		eventClient:    eventClient,
		BoardService:   board,
		MetricsService: metricsservice.NewService(),
		IssueService:   issueservice.NewService(repo, repo, eventClient),
		ProjectService: projectservice.NewService(repo, repo, defaultWIPLimit),
		ScopeService:   scopeservice.NewService(repo, repo, repo, board),
		SprintService:  sprintservice.NewService(repo, repo, repo),
		StandupService: standupservice.NewService(repo, repo, board, eventClient),
	}
}

// Repo returns the underlying repository for direct database access
func (a *App) Repo() database.DataStore {
	return a.repo
}

// Close performs cleanup of application resources
func (a *App) Close() error {
	if a.eventClient != nil {
		return a.eventClient.Close()
	}
	return nil
}
