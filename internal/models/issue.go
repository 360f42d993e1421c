package models

import "time"

// Issue represents a single work item tracked on the kanban board
type Issue struct {
	ID          int
	Key         string // Human-readable key, e.g. "PROJ-012"
	ProjectKey  string
	Summary     string
	Description string
	Status      string // One of the Status* constants
	IssueType   string
	Reporter    string
	Assignee    string // Empty when unassigned
	CreatedAt   time.Time
	UpdatedAt   time.Time
	StartedAt   *time.Time // Set on first transition into in_progress
	ResolvedAt  *time.Time // Set on transition into resolved
}

// Resolved reports whether the issue has reached a terminal status.
// The legacy "closed" status is treated as resolved.
func (i *Issue) Resolved() bool {
	return i.Status == StatusResolved || i.Status == StatusClosed
}
