package models

import "time"

// StandupSession is a time-bounded per-project activation that freezes a
// board snapshot for synchronous review. At most one session per project
// is active at any time.
type StandupSession struct {
	ProjectKey string
	Active     bool
	StartedAt  time.Time
	EndedAt    *time.Time
	Snapshot   Board // Board captured when the session started; nil once ended
}
