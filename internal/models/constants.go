package models

// ============================================================================
// STATUS CONSTANTS
// ============================================================================

// Raw issue statuses as stored on the issue record
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"

	// StatusClosed is a legacy synonym for resolved still present in older data
	StatusClosed = "closed"
)

// ============================================================================
// ISSUE TYPE CONSTANTS
// ============================================================================

// Issue types
const (
	IssueTypeTask  = "task"
	IssueTypeStory = "story"
	IssueTypeBug   = "bug"
)

// ============================================================================
// PROJECT ROLE CONSTANTS
// ============================================================================

// Roles a user can hold on a project
const (
	RoleLead     = "lead"
	RoleMember   = "member"
	RoleObserver = "observer"
)

// DefaultWIPLimit is the work-in-progress limit applied when a project
// does not configure its own
const DefaultWIPLimit = 5
