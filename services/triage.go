package services

import (
	"context"
	"log"
	"time"

	"civictriage-be/models"
	"civictriage-be/store"
)

// History notes attached to automatic transitions so they can be told
// apart from manual ones.
const (
	AutoApproveNote = "auto-approved by crowd consensus"
	AutoRejectNote  = "auto-rejected by crowd consensus"
)

// TriagePolicy holds the crowd-moderation knobs.
type TriagePolicy struct {
	// ApprovalThreshold is the green-flag count at which a Pending issue
	// is approved automatically.
	ApprovalThreshold int64
	// RejectionThreshold is the red-flag count at which a Pending issue
	// is rejected automatically.
	RejectionThreshold int64
	// AllowReopen permits status updates on Resolved and Rejected issues.
	AllowReopen bool
}

// DefaultTriagePolicy matches the production configuration.
func DefaultTriagePolicy() TriagePolicy {
	return TriagePolicy{ApprovalThreshold: 25, RejectionThreshold: 25}
}

// evaluatePending applies the threshold rules to every Pending issue in
// the slice and persists the resulting transitions. Approval is checked
// before rejection, so an issue meeting both thresholds is approved.
// Failures are isolated per issue; the return value is the number of
// issues that transitioned. Re-running against the same flag counts is a
// no-op because transitioned issues are no longer Pending.
func (l *Lifecycle) evaluatePending(ctx context.Context, issues []models.Issue) int {
	changed := 0
	for i := range issues {
		issue := &issues[i]
		if issue.Status != models.Pending {
			continue
		}

		counts, err := l.flags.CountsFor(ctx, issue.ID)
		if err != nil {
			log.Printf("auto-triage: counting flags for issue %s: %v", issue.ID, err)
			continue
		}

		var target models.IssueStatus
		var note string
		switch {
		case counts.Green >= l.policy.ApprovalThreshold:
			target = models.Approved
			note = AutoApproveNote
		case counts.Red >= l.policy.RejectionThreshold:
			target = models.Rejected
			note = AutoRejectNote
		default:
			continue
		}

		history := appendStatus(issue, target, note, time.Now())
		update := store.IssueUpdate{Status: &target}
		if err := l.issues.Update(ctx, issue.ID, update, history); err != nil {
			log.Printf("auto-triage: transitioning issue %s to %s: %v", issue.ID, target, err)
			continue
		}
		changed++
	}
	return changed
}
