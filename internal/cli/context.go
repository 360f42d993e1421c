package cli

import (
	"context"
)

// contextKey is a private type to avoid context key collisions
type contextKey string

const cliKey contextKey = "flowboardCLI"

// WithCLI returns a context carrying the given CLI instance.
// Tests use this to inject a CLI built over an in-memory database.
func WithCLI(ctx context.Context, c *CLI) context.Context {
	return context.WithValue(ctx, cliKey, c)
}

// GetCLIFromContext returns the CLI from the context if one was injected,
// otherwise it initializes a fresh one.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if c, ok := ctx.Value(cliKey).(*CLI); ok {
		return c, nil
	}
	return NewCLI(ctx)
}
