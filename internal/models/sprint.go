package models

import "time"

// Sprint is a time-boxed iteration scoped to a single project
type Sprint struct {
	ID          int
	Name        string
	Description string
	ProjectKey  string
	StartDate   time.Time
	EndDate     time.Time
}
