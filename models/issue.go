package models

import (
	"strings"
	"time"
)

// IssueStatus enum
type IssueStatus string

const (
	Pending  IssueStatus = "Pending"
	Approved IssueStatus = "Approved"
	Assigned IssueStatus = "Assigned"
	Resolved IssueStatus = "Resolved"
	Rejected IssueStatus = "Rejected"
)

// Terminal reports whether no further lifecycle transitions apply.
func (s IssueStatus) Terminal() bool {
	return s == Resolved || s == Rejected
}

// IssuePriority enum
type IssuePriority string

const (
	PriorityHigh   IssuePriority = "High"
	PriorityMedium IssuePriority = "Medium"
	PriorityLow    IssuePriority = "Low"
)

// NormalizeStatus maps the spelling and casing variants found in stored
// documents onto the canonical enum. "inProgress" and "In Progress" are
// legacy names for Assigned.
func NormalizeStatus(raw string) (IssueStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "pending":
		return Pending, true
	case "approved":
		return Approved, true
	case "assigned", "inprogress", "in progress":
		return Assigned, true
	case "resolved":
		return Resolved, true
	case "rejected":
		return Rejected, true
	default:
		return "", false
	}
}

// NormalizePriority maps casing variants (the AI adapter reports lowercase)
// onto the canonical enum.
func NormalizePriority(raw string) (IssuePriority, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "high":
		return PriorityHigh, true
	case "medium":
		return PriorityMedium, true
	case "low":
		return PriorityLow, true
	default:
		return "", false
	}
}

// StatusEntry is one record in an issue's append-only status history.
type StatusEntry struct {
	Status IssueStatus `bson:"status" json:"status"`
	Date   time.Time   `bson:"date" json:"date"`
	Note   string      `bson:"note,omitempty" json:"note,omitempty"`
}

type Location struct {
	Address string  `bson:"address" json:"address"`
	Lat     float64 `bson:"lat" json:"lat"`
	Lng     float64 `bson:"lng" json:"lng"`
}

type Citizen struct {
	Name    string `bson:"name" json:"name"`
	Contact string `bson:"contact" json:"contact"`
}

// Issue represents a civic issue reported by a citizen
type Issue struct {
	ID              string        `bson:"_id" json:"id"`
	Category        string        `bson:"category" json:"category"`
	Description     string        `bson:"description" json:"description"`
	LongDescription string        `bson:"longDescription,omitempty" json:"longDescription,omitempty"`
	Location        Location      `bson:"location" json:"location"`
	Status          IssueStatus   `bson:"status" json:"status"`
	Priority        IssuePriority `bson:"priority" json:"priority"`
	IsCritical      bool          `bson:"isCritical" json:"isCritical"`
	AssignedTo      string        `bson:"assignedTo,omitempty" json:"assignedTo,omitempty"`
	Citizen         Citizen       `bson:"citizen" json:"citizen"`
	ImageURL        string        `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	ProofURL        string        `bson:"proofUrl,omitempty" json:"proofUrl,omitempty"`
	GreenFlags      int64         `bson:"-" json:"greenFlags"`
	RedFlags        int64         `bson:"-" json:"redFlags"`
	StatusHistory   []StatusEntry `bson:"statusHistory" json:"statusHistory"`
	ReportedAt      time.Time     `bson:"reportedAt" json:"reportedAt"`
	ResolvedAt      *time.Time    `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// Normalize canonicalizes status and priority spellings in place. Stores
// call it on every document read so internal logic never branches on
// casing. Unknown values are left untouched.
func (i *Issue) Normalize() {
	if s, ok := NormalizeStatus(string(i.Status)); ok {
		i.Status = s
	}
	if p, ok := NormalizePriority(string(i.Priority)); ok {
		i.Priority = p
	} else if i.Priority == "" {
		i.Priority = PriorityMedium
	}
	for idx := range i.StatusHistory {
		if s, ok := NormalizeStatus(string(i.StatusHistory[idx].Status)); ok {
			i.StatusHistory[idx].Status = s
		}
	}
}
