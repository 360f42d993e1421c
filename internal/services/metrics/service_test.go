package metrics

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/flowboard/flowboard/internal/models"
)

// ============================================================================
// TEST HELPERS
// ============================================================================

var baseTime = time.Date(2025, 3, 3, 9, 0, 0, 0, time.UTC) // a Monday

func resolvedIssue(id int, created time.Time, resolved time.Time) *models.Issue {
	return &models.Issue{
		ID:         id,
		Key:        fmt.Sprintf("TST-%03d", id),
		ProjectKey: "TST",
		Status:     models.StatusResolved,
		CreatedAt:  created,
		ResolvedAt: &resolved,
	}
}

func openIssue(id int) *models.Issue {
	return &models.Issue{
		ID:         id,
		Key:        fmt.Sprintf("TST-%03d", id),
		ProjectKey: "TST",
		Status:     models.StatusOpen,
		CreatedAt:  baseTime,
	}
}

// ============================================================================
// CYCLE TIME
// ============================================================================

func TestCycleTimeOfResolvedIssue(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issue := resolvedIssue(1, baseTime, baseTime.Add(3*24*time.Hour))

	days, err := svc.CycleTimeOf(issue)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if days == nil {
		t.Fatal("Expected cycle time, got nil")
	}
	if *days != 3 {
		t.Errorf("CycleTimeOf = %d days, want 3", *days)
	}
}

func TestCycleTimeOfTruncatesFractionalDays(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issue := resolvedIssue(1, baseTime, baseTime.Add(2*24*time.Hour+23*time.Hour))

	days, err := svc.CycleTimeOf(issue)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *days != 2 {
		t.Errorf("CycleTimeOf = %d days, want 2 (truncated)", *days)
	}
}

func TestCycleTimeOfUnresolvedIssueIsNotApplicable(t *testing.T) {
	t.Parallel()

	svc := NewService()

	days, err := svc.CycleTimeOf(openIssue(1))
	if err != nil {
		t.Fatalf("Expected no error for unresolved issue, got %v", err)
	}
	if days != nil {
		t.Errorf("Expected nil (not applicable), got %d", *days)
	}
}

func TestCycleTimeOfResolvedWithoutTimestampFails(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issue := openIssue(1)
	issue.Status = models.StatusResolved

	_, err := svc.CycleTimeOf(issue)
	if !errors.Is(err, ErrMissingResolution) {
		t.Fatalf("Expected ErrMissingResolution, got %v", err)
	}
	if !errors.Is(err, models.ErrInvalidState) {
		t.Errorf("Expected error to match models.ErrInvalidState, got %v", err)
	}
}

// ============================================================================
// AVERAGE
// ============================================================================

func TestAverageCycleTimeEmptySetIsNoData(t *testing.T) {
	t.Parallel()

	svc := NewService()

	avg, err := svc.AverageCycleTime(nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if avg != nil {
		t.Errorf("Expected nil (no data), got %f", *avg)
	}

	// Unresolved-only sets are also "no data", not zero
	avg, err = svc.AverageCycleTime([]*models.Issue{openIssue(1), openIssue(2)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if avg != nil {
		t.Errorf("Expected nil for unresolved-only set, got %f", *avg)
	}
}

func TestAverageCycleTimeSingleIssueEqualsItsOwn(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issue := resolvedIssue(1, baseTime, baseTime.Add(3*24*time.Hour))

	avg, err := svc.AverageCycleTime([]*models.Issue{openIssue(2), issue})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if avg == nil {
		t.Fatal("Expected average, got nil")
	}
	if *avg != 3 {
		t.Errorf("AverageCycleTime = %f, want 3", *avg)
	}
}

func TestAverageCycleTimeMixedSet(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issues := []*models.Issue{
		resolvedIssue(1, baseTime, baseTime.Add(2*24*time.Hour)),
		resolvedIssue(2, baseTime, baseTime.Add(5*24*time.Hour)),
		openIssue(3),
	}

	avg, err := svc.AverageCycleTime(issues)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if *avg != 3.5 {
		t.Errorf("AverageCycleTime = %f, want 3.5", *avg)
	}
}

// ============================================================================
// LONGEST / SHORTEST
// ============================================================================

func TestLongestAndShortest(t *testing.T) {
	t.Parallel()

	svc := NewService()
	issues := []*models.Issue{
		resolvedIssue(1, baseTime, baseTime.Add(2*24*time.Hour)),
		resolvedIssue(2, baseTime, baseTime.Add(7*24*time.Hour)),
		resolvedIssue(3, baseTime, baseTime.Add(4*24*time.Hour)),
		openIssue(4),
	}

	longest, err := svc.Longest(issues)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if longest == nil || longest.ID != 2 {
		t.Errorf("Longest = %v, want issue 2", longest)
	}

	shortest, err := svc.Shortest(issues)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if shortest == nil || shortest.ID != 1 {
		t.Errorf("Shortest = %v, want issue 1", shortest)
	}
}

func TestLongestTieBrokenByEarliestCreation(t *testing.T) {
	t.Parallel()

	svc := NewService()
	earlier := baseTime.Add(-48 * time.Hour)
	issues := []*models.Issue{
		resolvedIssue(1, baseTime, baseTime.Add(3*24*time.Hour)),
		resolvedIssue(2, earlier, earlier.Add(3*24*time.Hour)),
	}

	longest, err := svc.Longest(issues)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if longest.ID != 2 {
		t.Errorf("Longest tie = issue %d, want issue 2 (earliest created)", longest.ID)
	}
}

func TestLongestNoResolvedIssuesIsNoData(t *testing.T) {
	t.Parallel()

	svc := NewService()

	longest, err := svc.Longest([]*models.Issue{openIssue(1)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if longest != nil {
		t.Errorf("Expected nil (no data), got issue %d", longest.ID)
	}
}

// ============================================================================
// THROUGHPUT
// ============================================================================

func TestWeeklyThroughputBucketsAndOrder(t *testing.T) {
	t.Parallel()

	svc := NewService()
	week1 := baseTime                        // 2025-03-03, ISO week 10
	week2 := baseTime.Add(7 * 24 * time.Hour) // ISO week 11

	// Out-of-order input: week2 issue first
	issues := []*models.Issue{
		resolvedIssue(3, baseTime, week2),
		resolvedIssue(1, baseTime, week1),
		resolvedIssue(2, baseTime, week1.Add(2*24*time.Hour)),
		openIssue(4),
	}

	got, err := svc.WeeklyThroughput(issues)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	want := []models.WeekCount{
		{Week: "2025-W10", Count: 2},
		{Week: "2025-W11", Count: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Expected %d weeks, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Week[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestWeeklyThroughputNoResolvedIssues(t *testing.T) {
	t.Parallel()

	svc := NewService()

	got, err := svc.WeeklyThroughput([]*models.Issue{openIssue(1)})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Expected no buckets, got %v", got)
	}
}

func TestWeeklyThroughputRejectsMissingResolution(t *testing.T) {
	t.Parallel()

	svc := NewService()
	bad := openIssue(1)
	bad.Status = models.StatusResolved

	_, err := svc.WeeklyThroughput([]*models.Issue{bad})
	if !errors.Is(err, ErrMissingResolution) {
		t.Fatalf("Expected ErrMissingResolution, got %v", err)
	}
}
