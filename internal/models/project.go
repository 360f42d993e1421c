package models

import "time"

// Project represents a container for issues and the unit standups and
// WIP limits attach to
type Project struct {
	ID          int
	Key         string // Unique short key used in issue keys, e.g. "PROJ"
	Name        string
	Description string
	Lead        string
	WIPLimit    int // Max issues allowed in progress at once, always positive
	IssueCount  int // Derived count of issues created under this project
	CreatedAt   time.Time
}
