// Package standup owns the start/end lifecycle of per-project standup
// sessions. Each session freezes a kanban snapshot of the project's issues
// at the moment it starts.
package standup

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/flowboard/flowboard/internal/database"
	"github.com/flowboard/flowboard/internal/events"
	"github.com/flowboard/flowboard/internal/models"
	boardservice "github.com/flowboard/flowboard/internal/services/board"
)

// Service manages standup sessions. At most one session per project key is
// active at a time; sessions for different projects are fully independent.
type Service interface {
	// Start begins a session for the project, snapshotting its board.
	// Fails with ErrStandupActive if a session is already running.
	Start(ctx context.Context, projectKey string) (*models.StandupSession, error)

	// End finishes the project's active session and clears its snapshot.
	// Fails with ErrNoActiveStandup when no session is running; callers may
	// retry End safely and must treat the error as a no-op, not a crash.
	End(ctx context.Context, projectKey string) (*models.StandupSession, error)

	// Current returns a copy of the project's session record, if one exists
	// in memory (active or recently ended).
	Current(projectKey string) (*models.StandupSession, bool)

	// ChangedSinceLastStandup lists the project's issues updated after the
	// last ended standup, or all issues when no standup has ever ended.
	ChangedSinceLastStandup(ctx context.Context, projectKey string) ([]*models.Issue, error)
}

// session pairs the in-memory record with its own lock so standups for
// different projects never contend with each other
type session struct {
	mu        sync.Mutex
	standupID int // Row ID of the persisted session, 0 when none
	rec       models.StandupSession
}

// service implements Service
type service struct {
	issues      database.IssueStore
	standups    database.StandupStore
	board       boardservice.Service
	eventClient events.EventPublisher

	mu       sync.Mutex
	sessions map[string]*session
}

// NewService creates a new standup service
func NewService(issues database.IssueStore, standups database.StandupStore, board boardservice.Service, eventClient events.EventPublisher) Service {
	return &service{
		issues:      issues,
		standups:    standups,
		board:       board,
		eventClient: eventClient,
		sessions:    make(map[string]*session),
	}
}

// Start begins a standup for the project. The store write and the in-memory
// transition happen under the project's session lock, so of two concurrent
// starts exactly one wins and the other observes ErrStandupActive. Any
// collaborator failure leaves the session state unchanged.
func (s *service) Start(ctx context.Context, projectKey string) (*models.StandupSession, error) {
	if projectKey == "" {
		return nil, ErrInvalidProjectKey
	}

	e := s.entry(projectKey)
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.rec.Active {
		return nil, fmt.Errorf("project %q: %w", projectKey, ErrStandupActive)
	}

	issues, err := s.issues.GetIssuesByProject(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issues for standup: %w", err)
	}

	startedAt := time.Now().UTC()
	standupID, err := s.standups.CreateStandup(ctx, projectKey, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to persist standup: %w", err)
	}

	e.standupID = standupID
	e.rec = models.StandupSession{
		ProjectKey: projectKey,
		Active:     true,
		StartedAt:  startedAt,
		Snapshot:   s.board.Build(issues),
	}

	s.publishStandupEvent(events.EventStandupStarted, projectKey)

	return copySession(&e.rec), nil
}

// End finishes the project's active standup
func (s *service) End(ctx context.Context, projectKey string) (*models.StandupSession, error) {
	if projectKey == "" {
		return nil, ErrInvalidProjectKey
	}

	e := s.entry(projectKey)
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.rec.Active {
		return nil, fmt.Errorf("project %q: %w", projectKey, ErrNoActiveStandup)
	}

	endedAt := time.Now().UTC()
	if err := s.standups.EndStandup(ctx, e.standupID, endedAt); err != nil {
		return nil, fmt.Errorf("failed to persist standup end: %w", err)
	}

	e.rec.Active = false
	e.rec.EndedAt = &endedAt
	e.rec.Snapshot = nil
	e.standupID = 0

	s.publishStandupEvent(events.EventStandupEnded, projectKey)

	return copySession(&e.rec), nil
}

func (s *service) Current(projectKey string) (*models.StandupSession, bool) {
	s.mu.Lock()
	e, ok := s.sessions[projectKey]
	s.mu.Unlock()
	if !ok {
		return nil, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.rec.ProjectKey == "" {
		return nil, false
	}
	return copySession(&e.rec), true
}

func (s *service) ChangedSinceLastStandup(ctx context.Context, projectKey string) ([]*models.Issue, error) {
	if projectKey == "" {
		return nil, ErrInvalidProjectKey
	}

	lastEnd, err := s.standups.GetLastStandupEnd(ctx, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get last standup end: %w", err)
	}
	if lastEnd == nil {
		return s.issues.GetIssuesByProject(ctx, projectKey)
	}
	return s.issues.GetIssuesUpdatedSince(ctx, projectKey, *lastEnd)
}

// entry returns the session record for a project key, creating it on first use
func (s *service) entry(projectKey string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.sessions[projectKey]
	if !ok {
		e = &session{}
		s.sessions[projectKey] = e
	}
	return e
}

// copySession returns a shallow copy so callers cannot mutate internal state
func copySession(rec *models.StandupSession) *models.StandupSession {
	cp := *rec
	return &cp
}

// publishStandupEvent publishes a session lifecycle event if a client exists
func (s *service) publishStandupEvent(eventType events.EventType, projectKey string) {
	if s.eventClient == nil {
		return
	}
	_ = events.PublishWithRetry(s.eventClient, events.Event{
		Type:       eventType,
		ProjectKey: projectKey,
		Timestamp:  time.Now(),
	}, 3)
}
