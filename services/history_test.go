package services

import (
	"testing"
	"time"

	"civictriage-be/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendStatusSeedsEmptyHistory(t *testing.T) {
	reported := time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC)
	issue := models.Issue{
		Status:     models.Pending,
		ReportedAt: reported,
	}

	history := appendStatus(&issue, models.Approved, "", time.Now())

	require.Len(t, history, 2)
	assert.Equal(t, models.Pending, history[0].Status)
	assert.Equal(t, reported, history[0].Date)
	assert.Equal(t, models.Approved, history[1].Status)
}

func TestAppendStatusNoChangeNoAppend(t *testing.T) {
	issue := models.Issue{
		Status: models.Pending,
		StatusHistory: []models.StatusEntry{
			{Status: models.Pending, Date: time.Now()},
		},
	}

	history := appendStatus(&issue, models.Pending, "", time.Now())

	assert.Len(t, history, 1)
}

func TestAppendStatusKeepsOrderAndNote(t *testing.T) {
	issue := models.Issue{
		Status: models.Approved,
		StatusHistory: []models.StatusEntry{
			{Status: models.Pending, Date: time.Now().Add(-2 * time.Hour)},
			{Status: models.Approved, Date: time.Now().Add(-time.Hour)},
		},
	}

	history := appendStatus(&issue, models.Assigned, "forwarded to sanitation", time.Now())

	require.Len(t, history, 3)
	assert.Equal(t, models.Pending, history[0].Status)
	assert.Equal(t, models.Approved, history[1].Status)
	assert.Equal(t, models.Assigned, history[2].Status)
	assert.Equal(t, "forwarded to sanitation", history[2].Note)
}

func TestAppendStatusDoesNotMutateOriginal(t *testing.T) {
	issue := models.Issue{
		Status: models.Pending,
		StatusHistory: []models.StatusEntry{
			{Status: models.Pending, Date: time.Now()},
		},
	}

	_ = appendStatus(&issue, models.Approved, "", time.Now())

	assert.Len(t, issue.StatusHistory, 1)
}
