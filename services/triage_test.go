package services

import (
	"context"
	"testing"
	"time"

	"civictriage-be/models"
	"civictriage-be/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPolicy = TriagePolicy{ApprovalThreshold: 25, RejectionThreshold: 25}

func TestAutoTriageApprovalBoundary(t *testing.T) {
	tests := []struct {
		name       string
		greenFlags int
		want       models.IssueStatus
	}{
		{"one below threshold stays pending", 24, models.Pending},
		{"at threshold approves", 25, models.Approved},
		{"above threshold approves", 30, models.Approved},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc, issues, flags := newTestLifecycle(t, testPolicy)
			seedIssue(t, issues, "issue-1", models.Pending, time.Now())
			castFlags(t, flags, "issue-1", models.FlagGreen, tt.greenFlags)

			got := findIssue(t, lc.FetchAll(context.Background()), "issue-1")
			assert.Equal(t, tt.want, got.Status)
		})
	}
}

func TestAutoTriageRejectionBoundary(t *testing.T) {
	lc, issues, flags := newTestLifecycle(t, testPolicy)
	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	seedIssue(t, issues, "issue-2", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagRed, 24)
	castFlags(t, flags, "issue-2", models.FlagRed, 25)

	list := lc.FetchAll(context.Background())
	assert.Equal(t, models.Pending, findIssue(t, list, "issue-1").Status)
	assert.Equal(t, models.Rejected, findIssue(t, list, "issue-2").Status)
}

func TestAutoTriageApprovalPrecedence(t *testing.T) {
	// both thresholds met at once: approval wins
	lc, issues, flags := newTestLifecycle(t, testPolicy)
	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagGreen, 25)
	castFlags(t, flags, "issue-1", models.FlagRed, 25)

	got := findIssue(t, lc.FetchAll(context.Background()), "issue-1")
	assert.Equal(t, models.Approved, got.Status)
}

func TestAutoTriageRecordsHistoryNote(t *testing.T) {
	lc, issues, flags := newTestLifecycle(t, testPolicy)
	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagGreen, 25)

	got := findIssue(t, lc.FetchAll(context.Background()), "issue-1")
	require.Len(t, got.StatusHistory, 2)
	assert.Equal(t, models.Approved, got.StatusHistory[1].Status)
	assert.Equal(t, AutoApproveNote, got.StatusHistory[1].Note)
}

func TestAutoTriageIdempotent(t *testing.T) {
	lc, issues, flags := newTestLifecycle(t, testPolicy)
	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagGreen, 25)

	first := findIssue(t, lc.FetchAll(context.Background()), "issue-1")
	second := findIssue(t, lc.FetchAll(context.Background()), "issue-1")

	assert.Equal(t, first.Status, second.Status)
	assert.Len(t, second.StatusHistory, len(first.StatusHistory), "re-run must not duplicate history entries")
}

func TestAutoTriageIgnoresNonPending(t *testing.T) {
	lc, issues, flags := newTestLifecycle(t, testPolicy)
	seedIssue(t, issues, "issue-1", models.Assigned, time.Now())
	castFlags(t, flags, "issue-1", models.FlagRed, 40)

	got := findIssue(t, lc.FetchAll(context.Background()), "issue-1")
	assert.Equal(t, models.Assigned, got.Status)
	assert.Len(t, got.StatusHistory, 1)
}

func TestAutoTriageIsolatesPerIssueFailures(t *testing.T) {
	issues := store.NewMemoryIssueStore()
	flags := store.NewMemoryFlagStore()
	failing := &failingIssueStore{IssueStore: issues, failUpdateID: "issue-1"}
	lc := NewLifecycle(failing, flags, testPolicy)

	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	seedIssue(t, issues, "issue-2", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagGreen, 25)
	castFlags(t, flags, "issue-2", models.FlagGreen, 25)

	list := lc.FetchAll(context.Background())
	assert.Equal(t, models.Pending, findIssue(t, list, "issue-1").Status)
	assert.Equal(t, models.Approved, findIssue(t, list, "issue-2").Status)
}

func TestConfigurableThresholds(t *testing.T) {
	policy := TriagePolicy{ApprovalThreshold: 3, RejectionThreshold: 5}
	lc, issues, flags := newTestLifecycle(t, policy)
	seedIssue(t, issues, "issue-1", models.Pending, time.Now())
	seedIssue(t, issues, "issue-2", models.Pending, time.Now())
	castFlags(t, flags, "issue-1", models.FlagGreen, 3)
	castFlags(t, flags, "issue-2", models.FlagRed, 4)

	list := lc.FetchAll(context.Background())
	assert.Equal(t, models.Approved, findIssue(t, list, "issue-1").Status)
	assert.Equal(t, models.Pending, findIssue(t, list, "issue-2").Status)
}
