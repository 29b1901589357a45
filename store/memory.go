package store

import (
	"context"
	"sort"
	"sync"

	"civictriage-be/models"

	"github.com/google/uuid"
)

// MemoryIssueStore is an in-memory IssueStore used by tests and local
// development.
type MemoryIssueStore struct {
	mu     sync.RWMutex
	issues map[string]models.Issue
}

func NewMemoryIssueStore() *MemoryIssueStore {
	return &MemoryIssueStore{issues: make(map[string]models.Issue)}
}

func (s *MemoryIssueStore) FetchAll(ctx context.Context) ([]models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Issue, 0, len(s.issues))
	for _, issue := range s.issues {
		out = append(out, copyIssue(issue))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ReportedAt.After(out[j].ReportedAt)
	})
	return out, nil
}

func (s *MemoryIssueStore) Get(ctx context.Context, id string) (*models.Issue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	issue, ok := s.issues[id]
	if !ok {
		return nil, ErrNotFound
	}
	c := copyIssue(issue)
	return &c, nil
}

func (s *MemoryIssueStore) Insert(ctx context.Context, issue *models.Issue) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if issue.ID == "" {
		issue.ID = uuid.NewString()
	}
	s.issues[issue.ID] = copyIssue(*issue)
	return nil
}

func (s *MemoryIssueStore) Update(ctx context.Context, id string, update IssueUpdate, history []models.StatusEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(id, update, history)
}

func (s *MemoryIssueStore) UpdateMany(ctx context.Context, updates []BatchUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		// best-effort: unresolvable records do not stop the rest
		_ = s.applyLocked(u.ID, u.Update, u.History)
	}
	return nil
}

func (s *MemoryIssueStore) applyLocked(id string, update IssueUpdate, history []models.StatusEntry) error {
	issue, ok := s.issues[id]
	if !ok {
		return ErrNotFound
	}
	if update.Status != nil {
		issue.Status = *update.Status
	}
	if update.Priority != nil {
		issue.Priority = *update.Priority
	}
	if update.AssignedTo != nil {
		issue.AssignedTo = *update.AssignedTo
	}
	if update.ResolvedAt != nil {
		t := *update.ResolvedAt
		issue.ResolvedAt = &t
	}
	if history != nil {
		issue.StatusHistory = append([]models.StatusEntry(nil), history...)
	}
	s.issues[id] = issue
	return nil
}

func copyIssue(issue models.Issue) models.Issue {
	c := issue
	c.StatusHistory = append([]models.StatusEntry(nil), issue.StatusHistory...)
	if issue.ResolvedAt != nil {
		t := *issue.ResolvedAt
		c.ResolvedAt = &t
	}
	return c
}

// MemoryFlagStore is an in-memory FlagStore used by tests and local
// development.
type MemoryFlagStore struct {
	mu    sync.RWMutex
	flags []models.Flag
	seen  map[string]bool
}

func NewMemoryFlagStore() *MemoryFlagStore {
	return &MemoryFlagStore{seen: make(map[string]bool)}
}

func (s *MemoryFlagStore) CountsFor(ctx context.Context, issueID string) (FlagCounts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var counts FlagCounts
	for _, f := range s.flags {
		if f.IssueID != issueID {
			continue
		}
		switch f.Type {
		case models.FlagGreen:
			counts.Green++
		case models.FlagRed:
			counts.Red++
		}
	}
	return counts, nil
}

func (s *MemoryFlagStore) Insert(ctx context.Context, flag *models.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := flag.IssueID + "|" + flag.UserID + "|" + string(flag.Type)
	if s.seen[key] {
		return ErrDuplicateFlag
	}
	if flag.ID == "" {
		flag.ID = uuid.NewString()
	}
	s.seen[key] = true
	s.flags = append(s.flags, *flag)
	return nil
}
