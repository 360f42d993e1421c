// Package board derives kanban board views from raw issue statuses.
package board

import (
	"sync/atomic"

	"github.com/flowboard/flowboard/internal/models"
)

// Service groups issues into the three canonical board columns
type Service interface {
	// ColumnFor maps a raw issue status to its board column. Unknown statuses
	// fall back to To Do rather than failing; every occurrence is counted so
	// operators can spot bad data without breaking board views.
	ColumnFor(status string) models.BoardColumn

	// Build groups issues into board columns, preserving input order within
	// each column. All three columns are always present, empty ones as empty
	// slices, so callers never need existence checks.
	Build(issues []*models.Issue) models.Board

	// UnknownStatusCount reports how many statuses fell through to the
	// To Do fallback since the service was created.
	UnknownStatusCount() int64
}

// service implements Service. Build and ColumnFor are pure apart from the
// diagnostic counter, which uses an atomic so concurrent board builds are safe.
type service struct {
	unknownStatuses atomic.Int64
}

// NewService creates a new board service
func NewService() Service {
	return &service{}
}

func (s *service) ColumnFor(status string) models.BoardColumn {
	switch status {
	case models.StatusOpen:
		return models.ColumnToDo
	case models.StatusInProgress:
		return models.ColumnInProgress
	case models.StatusResolved, models.StatusClosed:
		return models.ColumnDone
	default:
		s.unknownStatuses.Add(1)
		return models.ColumnToDo
	}
}

func (s *service) Build(issues []*models.Issue) models.Board {
	b := models.Board{
		models.ColumnToDo:       {},
		models.ColumnInProgress: {},
		models.ColumnDone:       {},
	}
	for _, issue := range issues {
		col := s.ColumnFor(issue.Status)
		b[col] = append(b[col], issue)
	}
	return b
}

func (s *service) UnknownStatusCount() int64 {
	return s.unknownStatuses.Load()
}
