package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"civictriage-be/models"
	"civictriage-be/store"

	"github.com/stretchr/testify/require"
)

func newTestLifecycle(t *testing.T, policy TriagePolicy) (*Lifecycle, *store.MemoryIssueStore, *store.MemoryFlagStore) {
	t.Helper()
	issues := store.NewMemoryIssueStore()
	flags := store.NewMemoryFlagStore()
	return NewLifecycle(issues, flags, policy), issues, flags
}

func seedIssue(t *testing.T, issues *store.MemoryIssueStore, id string, status models.IssueStatus, reported time.Time) {
	t.Helper()
	issue := models.Issue{
		ID:          id,
		Category:    "Pothole",
		Description: "Road damage near the intersection.",
		Status:      status,
		Priority:    models.PriorityMedium,
		ReportedAt:  reported,
		Citizen:     models.Citizen{Name: "Test Citizen", Contact: "citizen@example.com"},
		StatusHistory: []models.StatusEntry{
			{Status: status, Date: reported},
		},
	}
	require.NoError(t, issues.Insert(context.Background(), &issue))
}

func castFlags(t *testing.T, flags *store.MemoryFlagStore, issueID string, flagType models.FlagType, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		flag := models.Flag{
			IssueID:   issueID,
			UserID:    fmt.Sprintf("user-%s-%d", flagType, i),
			Type:      flagType,
			Reason:    "looks wrong",
			CreatedAt: time.Now(),
		}
		require.NoError(t, flags.Insert(context.Background(), &flag))
	}
}

func findIssue(t *testing.T, issues []models.Issue, id string) models.Issue {
	t.Helper()
	for _, issue := range issues {
		if issue.ID == id {
			return issue
		}
	}
	t.Fatalf("issue %s not in list", id)
	return models.Issue{}
}

// failingIssueStore wraps a real store and fails selected operations, to
// exercise degraded paths.
type failingIssueStore struct {
	store.IssueStore
	failFetch    bool
	failUpdateID string
}

var errInjected = errors.New("injected store failure")

func (f *failingIssueStore) FetchAll(ctx context.Context) ([]models.Issue, error) {
	if f.failFetch {
		return nil, errInjected
	}
	return f.IssueStore.FetchAll(ctx)
}

func (f *failingIssueStore) Update(ctx context.Context, id string, update store.IssueUpdate, history []models.StatusEntry) error {
	if id == f.failUpdateID {
		return errInjected
	}
	return f.IssueStore.Update(ctx, id, update, history)
}
