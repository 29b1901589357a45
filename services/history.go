package services

import (
	"time"

	"civictriage-be/models"
)

// appendStatus returns the issue's status history extended with newStatus.
// The existing entries are never reordered or dropped. An issue with no
// history (legacy data) is first seeded with a single entry reflecting its
// present status and report time. When newStatus equals the current status
// nothing is appended.
func appendStatus(issue *models.Issue, newStatus models.IssueStatus, note string, now time.Time) []models.StatusEntry {
	history := make([]models.StatusEntry, 0, len(issue.StatusHistory)+1)
	if len(issue.StatusHistory) == 0 {
		history = append(history, models.StatusEntry{Status: issue.Status, Date: issue.ReportedAt})
	} else {
		history = append(history, issue.StatusHistory...)
	}

	if newStatus == issue.Status {
		return history
	}
	return append(history, models.StatusEntry{Status: newStatus, Date: now, Note: note})
}
