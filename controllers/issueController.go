package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"civictriage-be/ai"
	"civictriage-be/models"
	"civictriage-be/services"
	"civictriage-be/store"

	"github.com/gin-gonic/gin"
)

// IssueController exposes the issue lifecycle API.
type IssueController struct {
	svc *services.Lifecycle
	ai  ai.Client
}

func NewIssueController(svc *services.Lifecycle, aiClient ai.Client) *IssueController {
	return &IssueController{svc: svc, ai: aiClient}
}

// issueUpdateRequest is the closed set of fields a client may change.
// Anything else in the body is dropped.
type issueUpdateRequest struct {
	ID         string     `json:"id"`
	Status     *string    `json:"status,omitempty"`
	Priority   *string    `json:"priority,omitempty"`
	AssignedTo *string    `json:"assignedTo,omitempty"`
	ResolvedAt *time.Time `json:"resolvedAt,omitempty"`
}

// toUpdate validates and normalizes the request fields. Invalid status or
// priority values are a validation error, not a silent drop.
func (r issueUpdateRequest) toUpdate() (store.IssueUpdate, error) {
	var update store.IssueUpdate
	if r.Status != nil {
		status, ok := models.NormalizeStatus(*r.Status)
		if !ok {
			return update, errInvalidStatus
		}
		update.Status = &status
	}
	if r.Priority != nil {
		priority, ok := models.NormalizePriority(*r.Priority)
		if !ok {
			return update, errInvalidPriority
		}
		update.Priority = &priority
	}
	update.AssignedTo = r.AssignedTo
	update.ResolvedAt = r.ResolvedAt
	return update, nil
}

var (
	errInvalidStatus   = errors.New("Invalid status")
	errInvalidPriority = errors.New("Invalid priority")
)

// GetIssues returns the merged, de-duplicated, flag-annotated issue list.
// Auto-triage over Pending issues runs as part of this read.
func (ic *IssueController) GetIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	c.JSON(http.StatusOK, ic.svc.FetchAll(ctx))
}

// UpdateIssues accepts either one {id, ...fields} object or an array of
// them. The response is the full refreshed issue list so callers can
// reconcile their derived state without a second round trip.
func (ic *IssueController) UpdateIssues(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var batch []issueUpdateRequest
	// a literal "null" body also unmarshals into a slice; it is not a batch
	if err := json.Unmarshal(raw, &batch); err == nil && batch != nil {
		items := make([]services.BatchItem, 0, len(batch))
		for _, r := range batch {
			update, err := r.toUpdate()
			if err != nil {
				// batch favors availability: bad entries are skipped
				continue
			}
			items = append(items, services.BatchItem{ID: r.ID, Update: update})
		}
		if err := ic.svc.UpdateMany(ctx, items); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issues"})
			return
		}
		c.JSON(http.StatusOK, ic.svc.FetchAll(ctx))
		return
	}

	var single issueUpdateRequest
	if err := json.Unmarshal(raw, &single); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if single.ID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue ID is required"})
		return
	}

	update, err := single.toUpdate()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	switch err := ic.svc.UpdateOne(ctx, single.ID, update); err {
	case nil:
		c.JSON(http.StatusOK, ic.svc.FetchAll(ctx))
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
	case services.ErrTerminalStatus:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Issue is already closed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update issue"})
	}
}

// TriageIssue handles an incoming citizen submission: the external triage
// flow classifies it, then the issue is stored as Pending.
func (ic *IssueController) TriageIssue(c *gin.Context) {
	var input struct {
		Description  string `json:"description" binding:"required,max=2000"`
		PhotoDataURI string `json:"photoDataUri" binding:"required"`
		Location     struct {
			Address string  `json:"address" binding:"required,max=200"`
			Lat     float64 `json:"lat"`
			Lng     float64 `json:"lng"`
		} `json:"location" binding:"required"`
		Citizen struct {
			Name    string `json:"name" binding:"required,max=100"`
			Contact string `json:"contact" binding:"required,max=100"`
		} `json:"citizen" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 60*time.Second)
	defer cancel()

	result, err := ic.ai.Triage(ctx, ai.TriageInput{
		Description:  input.Description,
		PhotoDataURI: input.PhotoDataURI,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to triage issue"})
		return
	}

	priority, ok := models.NormalizePriority(result.Priority)
	if !ok {
		priority = models.PriorityMedium
	}

	issue := models.Issue{
		Category:        result.Category,
		Description:     result.Summary,
		LongDescription: input.Description,
		Priority:        priority,
		IsCritical:      result.IsCritical,
		Location: models.Location{
			Address: input.Location.Address,
			Lat:     input.Location.Lat,
			Lng:     input.Location.Lng,
		},
		Citizen: models.Citizen{
			Name:    input.Citizen.Name,
			Contact: input.Citizen.Contact,
		},
		ImageURL: input.PhotoDataURI,
	}

	if err := ic.svc.Create(ctx, &issue); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create issue"})
		return
	}

	c.JSON(http.StatusCreated, issue)
}

// GetIssue returns a single issue with its flag counts.
func (ic *IssueController) GetIssue(c *gin.Context) {
	id := c.Param("id")

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	issue, err := ic.svc.Get(ctx, id)
	if err == store.ErrNotFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve issue"})
		return
	}

	c.JSON(http.StatusOK, issue)
}

// FlagIssue records a citizen's green or red flag on an issue. Flags are
// immutable; a user can cast at most one flag of each color per issue.
func (ic *IssueController) FlagIssue(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Type   string `json:"type" binding:"required,oneof=green red"`
		Reason string `json:"reason" binding:"max=500"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Type == string(models.FlagRed) && input.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A reason is required for red flags"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	flag := models.Flag{
		IssueID:   c.Param("id"),
		UserID:    userID.(string),
		Type:      models.FlagType(input.Type),
		Reason:    input.Reason,
		CreatedAt: time.Now(),
	}

	counts, err := ic.svc.RecordFlag(ctx, &flag)
	switch err {
	case nil:
	case store.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "Issue not found"})
		return
	case store.ErrDuplicateFlag:
		c.JSON(http.StatusConflict, gin.H{"error": "You have already flagged this issue"})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record flag"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         flag.ID,
		"greenFlags": counts.Green,
		"redFlags":   counts.Red,
	})
}

// RecentIssues returns the newest geotagged issues for the map view.
func (ic *IssueController) RecentIssues(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()
	limit := 19

	type issueResponse struct {
		ID         string    `json:"id"`
		Category   string    `json:"category"`
		Latitude   float64   `json:"latitude"`
		Longitude  float64   `json:"longitude"`
		Address    string    `json:"address"`
		Status     string    `json:"status"`
		ReportedAt time.Time `json:"reportedAt"`
	}

	response := make([]issueResponse, 0, limit)
	for _, issue := range ic.svc.FetchAll(ctx) {
		if issue.Location.Lat == 0 && issue.Location.Lng == 0 {
			continue
		}
		response = append(response, issueResponse{
			ID:         issue.ID,
			Category:   issue.Category,
			Latitude:   issue.Location.Lat,
			Longitude:  issue.Location.Lng,
			Address:    issue.Location.Address,
			Status:     string(issue.Status),
			ReportedAt: issue.ReportedAt,
		})
		if len(response) == limit {
			break
		}
	}

	c.JSON(http.StatusOK, response)
}

// GetIssueAnalytics returns the aggregates behind the dashboard charts.
func (ic *IssueController) GetIssueAnalytics(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	issues := ic.svc.FetchAll(ctx)

	byStatus := map[models.IssueStatus]int{}
	byPriority := map[models.IssuePriority]int{}
	critical := 0
	open := 0
	for _, issue := range issues {
		byStatus[issue.Status]++
		byPriority[issue.Priority]++
		if issue.IsCritical {
			critical++
		}
		if !issue.Status.Terminal() {
			open++
		}
	}

	var last7Days []gin.H
	for i := 6; i >= 0; i-- {
		date := time.Now().AddDate(0, 0, -i)
		date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
		nextDate := date.AddDate(0, 0, 1)

		count := 0
		for _, issue := range issues {
			if !issue.ReportedAt.Before(date) && issue.ReportedAt.Before(nextDate) {
				count++
			}
		}
		last7Days = append(last7Days, gin.H{
			"date":  date.Format("2006-01-02"),
			"count": count,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"issuesByStatus":   byStatus,
		"issuesByPriority": byPriority,
		"last7Days":        last7Days,
		"totalIssues":      len(issues),
		"openIssues":       open,
		"criticalIssues":   critical,
	})
}
