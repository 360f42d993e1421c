package cli

// Exit codes for CLI commands.
// These codes follow Unix conventions and provide consistent error reporting
// across all CLI commands.
const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess = 0

	// ExitError indicates a general error occurred.
	// Use for: Database errors, daemon errors, unexpected failures.
	ExitError = 1

	// ExitUsage indicates incorrect command usage.
	// Use for: Missing required flags or invalid flag combinations.
	ExitUsage = 2

	// ExitNotFound indicates a requested resource was not found.
	// Use for: Unknown project keys, issue IDs, scope IDs, sprint IDs.
	ExitNotFound = 3

	// ExitDataErr indicates invalid or malformed data.
	// Use for: Issues whose stored state is inconsistent, bad JSON input.
	ExitDataErr = 4

	// ExitValidation indicates a validation error.
	// Use for: Invalid statuses, WIP limit conflicts, double standup starts.
	ExitValidation = 5
)
