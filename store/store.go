package store

import (
	"context"
	"errors"
	"time"

	"civictriage-be/models"
)

// ErrNotFound is returned when an id does not resolve to a stored record.
var ErrNotFound = errors.New("record not found")

// ErrDuplicateFlag is returned when a user flags the same issue with the
// same color twice.
var ErrDuplicateFlag = errors.New("duplicate flag")

// IssueUpdate is the closed set of fields a caller may change on a stored
// issue. Anything else arriving in a request body is dropped before it
// reaches a store.
type IssueUpdate struct {
	Status     *models.IssueStatus
	Priority   *models.IssuePriority
	AssignedTo *string
	ResolvedAt *time.Time
}

// Empty reports whether the update would change nothing.
func (u IssueUpdate) Empty() bool {
	return u.Status == nil && u.Priority == nil && u.AssignedTo == nil && u.ResolvedAt == nil
}

// BatchUpdate pairs one issue id with its field update and, when the status
// changes, the full replacement history computed by the caller.
type BatchUpdate struct {
	ID      string
	Update  IssueUpdate
	History []models.StatusEntry
}

// IssueStore is the canonical issue collection. The history slice on write
// operations replaces the stored statusHistory in the same write as the
// field changes; nil leaves it untouched.
type IssueStore interface {
	FetchAll(ctx context.Context) ([]models.Issue, error)
	Get(ctx context.Context, id string) (*models.Issue, error)
	Insert(ctx context.Context, issue *models.Issue) error
	Update(ctx context.Context, id string, update IssueUpdate, history []models.StatusEntry) error
	UpdateMany(ctx context.Context, updates []BatchUpdate) error
}

// FlagCounts holds the per-issue partition of community flags.
type FlagCounts struct {
	Green int64 `json:"greenFlags"`
	Red   int64 `json:"redFlags"`
}

// FlagStore owns the flag collection. CountsFor is a pure read.
type FlagStore interface {
	CountsFor(ctx context.Context, issueID string) (FlagCounts, error)
	Insert(ctx context.Context, flag *models.Flag) error
}
