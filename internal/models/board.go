package models

// BoardColumn is one of the three canonical kanban buckets. Columns are a
// derived view over issue statuses and are never persisted.
type BoardColumn string

const (
	ColumnToDo       BoardColumn = "To Do"
	ColumnInProgress BoardColumn = "In Progress"
	ColumnDone       BoardColumn = "Done"
)

// Board groups issues into the three canonical columns. Every column is
// always present, holding issues in the order they were supplied.
type Board map[BoardColumn][]*Issue

// ColumnOrder returns the canonical left-to-right column ordering for display
func ColumnOrder() []BoardColumn {
	return []BoardColumn{ColumnToDo, ColumnInProgress, ColumnDone}
}

// WeekCount is one bucket of weekly throughput: the number of issues
// resolved during a single ISO calendar week.
type WeekCount struct {
	Week  string // ISO year-week key, e.g. "2025-W07"
	Count int
}
