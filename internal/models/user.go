package models

import "time"

// User is a member who can report issues and be assigned to projects
type User struct {
	ID        int
	FirstName string
	LastName  string
	Email     string
	CreatedAt time.Time
}
