package models

import "time"

// Scope is a named rollup of projects for cross-project reporting.
// A scope owns no issues itself; its boards and metrics are computed by
// concatenating the member projects' issues in stored order.
type Scope struct {
	ID          int
	Name        string
	Description string
	ProjectKeys []string // Ordered, unique within the scope
	CreatedAt   time.Time
}
