// Package cli provides the shared plumbing for flowboard's command-line
// interface: application context, output formatting, and exit codes.
package cli

import (
	"context"
	"fmt"

	"github.com/flowboard/flowboard/internal/app"
	"github.com/flowboard/flowboard/internal/config"
	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App // Application container with services
	eventClient events.EventPublisher
	ctx         context.Context
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.InitDB(ctx, cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Try to connect to daemon (optional - silent fallback)
	var eventClient events.EventPublisher
	if socketPath, err := cfg.SocketPath(); err == nil {
		client, err := events.NewClient(socketPath)
		if err == nil {
			// If connect fails the daemon isn't running; degrade gracefully
			if err := client.Connect(ctx); err == nil {
				eventClient = client
			}
		}
	}

	repo := database.NewRepository(db)
	application := app.New(repo, eventClient, cfg)

	return &CLI{
		App:         application,
		eventClient: eventClient,
		ctx:         ctx,
	}, nil
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}
