// Package metrics computes cycle time and throughput over issue sets.
//
// Cycle time is measured from issue creation to resolution, in whole days
// with fractional days truncated. A started-at stamp only exists for issues
// that passed through in_progress, so measuring from it would mix bases
// across issues and break comparability; creation is the one timestamp every
// issue has.
package metrics

import (
	"fmt"
	"sort"

	"github.com/flowboard/flowboard/internal/models"
)

// Service computes per-issue and aggregate flow metrics
type Service interface {
	// CycleTimeOf returns the issue's cycle time in whole days. A nil result
	// with nil error means "not applicable" (the issue is not resolved).
	CycleTimeOf(issue *models.Issue) (*int, error)

	// AverageCycleTime returns the mean cycle time in days over the resolved
	// issues in the set. A nil result with nil error means no resolved issues
	// exist; zero is a real average and is never used to signal absence.
	AverageCycleTime(issues []*models.Issue) (*float64, error)

	// Longest returns the resolved issue with the maximum cycle time,
	// ties broken by earliest creation. Nil result means no resolved issues.
	Longest(issues []*models.Issue) (*models.Issue, error)

	// Shortest is Longest's counterpart for the minimum cycle time
	Shortest(issues []*models.Issue) (*models.Issue, error)

	// WeeklyThroughput buckets resolved issues into ISO calendar weeks by
	// resolution time, in chronological order. Weeks with no completions are
	// not synthesized; zero-filling for charts is a presentation concern.
	WeeklyThroughput(issues []*models.Issue) ([]models.WeekCount, error)
}

// service implements Service. All methods are pure.
type service struct{}

// NewService creates a new metrics service
func NewService() Service {
	return &service{}
}

func (s *service) CycleTimeOf(issue *models.Issue) (*int, error) {
	if !issue.Resolved() {
		return nil, nil
	}
	if issue.ResolvedAt == nil {
		return nil, fmt.Errorf("issue %q: %w", issue.Key, ErrMissingResolution)
	}

	days := int(issue.ResolvedAt.Sub(issue.CreatedAt).Hours() / 24)
	return &days, nil
}

func (s *service) AverageCycleTime(issues []*models.Issue) (*float64, error) {
	var total, count int
	for _, issue := range issues {
		days, err := s.CycleTimeOf(issue)
		if err != nil {
			return nil, err
		}
		if days == nil {
			continue
		}
		total += *days
		count++
	}
	if count == 0 {
		return nil, nil
	}

	avg := float64(total) / float64(count)
	return &avg, nil
}

func (s *service) Longest(issues []*models.Issue) (*models.Issue, error) {
	return s.extreme(issues, func(candidate, best int) bool { return candidate > best })
}

func (s *service) Shortest(issues []*models.Issue) (*models.Issue, error) {
	return s.extreme(issues, func(candidate, best int) bool { return candidate < best })
}

// extreme scans for the resolved issue whose cycle time wins under beats,
// breaking ties by earliest creation time
func (s *service) extreme(issues []*models.Issue, beats func(candidate, best int) bool) (*models.Issue, error) {
	var winner *models.Issue
	var winnerDays int

	for _, issue := range issues {
		days, err := s.CycleTimeOf(issue)
		if err != nil {
			return nil, err
		}
		if days == nil {
			continue
		}
		switch {
		case winner == nil:
			winner, winnerDays = issue, *days
		case beats(*days, winnerDays):
			winner, winnerDays = issue, *days
		case *days == winnerDays && issue.CreatedAt.Before(winner.CreatedAt):
			winner = issue
		}
	}
	return winner, nil
}

func (s *service) WeeklyThroughput(issues []*models.Issue) ([]models.WeekCount, error) {
	type week struct {
		year int
		week int
	}
	counts := make(map[week]int)

	for _, issue := range issues {
		if !issue.Resolved() {
			continue
		}
		if issue.ResolvedAt == nil {
			return nil, fmt.Errorf("issue %q: %w", issue.Key, ErrMissingResolution)
		}
		y, w := issue.ResolvedAt.ISOWeek()
		counts[week{y, w}]++
	}

	weeks := make([]week, 0, len(counts))
	for wk := range counts {
		weeks = append(weeks, wk)
	}
	sort.Slice(weeks, func(i, j int) bool {
		if weeks[i].year != weeks[j].year {
			return weeks[i].year < weeks[j].year
		}
		return weeks[i].week < weeks[j].week
	})

	result := make([]models.WeekCount, 0, len(weeks))
	for _, wk := range weeks {
		result = append(result, models.WeekCount{
			Week:  fmt.Sprintf("%d-W%02d", wk.year, wk.week),
			Count: counts[wk],
		})
	}
	return result, nil
}
