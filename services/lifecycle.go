package services

import (
	"context"
	"errors"
	"log"
	"sort"
	"time"

	"civictriage-be/models"
	"civictriage-be/store"
)

// ErrTerminalStatus is returned when an update would move a Resolved or
// Rejected issue to another status while reopening is disabled.
var ErrTerminalStatus = errors.New("issue is in a terminal status")

// Lifecycle orchestrates the issue repository, the flag aggregator, the
// auto-triage rules and the status history on every read and write.
type Lifecycle struct {
	issues store.IssueStore
	flags  store.FlagStore
	policy TriagePolicy
}

func NewLifecycle(issues store.IssueStore, flags store.FlagStore, policy TriagePolicy) *Lifecycle {
	return &Lifecycle{issues: issues, flags: flags, policy: policy}
}

// BatchItem is one entry of a bulk update request.
type BatchItem struct {
	ID     string
	Update store.IssueUpdate
}

// FetchAll re-evaluates auto-triage over all Pending issues, then returns
// the merged, de-duplicated, flag-annotated issue list, newest first.
// When the live store is unreachable the seed data is served instead of
// failing the read.
func (l *Lifecycle) FetchAll(ctx context.Context) []models.Issue {
	live, err := l.issues.FetchAll(ctx)
	if err != nil {
		log.Printf("fetching issues from store, falling back to seed data: %v", err)
		return sortNewestFirst(store.SeedIssues())
	}

	if changed := l.evaluatePending(ctx, live); changed > 0 {
		if refreshed, err := l.issues.FetchAll(ctx); err == nil {
			live = refreshed
		} else {
			log.Printf("re-reading issues after auto-triage: %v", err)
		}
	}

	merged := sortNewestFirst(mergeWithSeed(live))
	for i := range merged {
		l.annotateFlags(ctx, &merged[i])
	}
	return merged
}

// Get returns one issue with its flag counts. Seed issues are visible
// here too, consistent with the merged list.
func (l *Lifecycle) Get(ctx context.Context, id string) (*models.Issue, error) {
	issue, err := l.issues.Get(ctx, id)
	if err == store.ErrNotFound {
		for _, seeded := range store.SeedIssues() {
			if seeded.ID == id {
				s := seeded
				issue, err = &s, nil
				break
			}
		}
	}
	if err != nil {
		return nil, err
	}
	l.annotateFlags(ctx, issue)
	return issue, nil
}

// RecordFlag stores a citizen's flag and returns the issue's refreshed
// counts. A seed-backed issue is promoted into the live store on its
// first flag, so auto-triage can act on it from then on.
func (l *Lifecycle) RecordFlag(ctx context.Context, flag *models.Flag) (store.FlagCounts, error) {
	_, err := l.issues.Get(ctx, flag.IssueID)
	if err == store.ErrNotFound {
		err = l.promoteSeed(ctx, flag.IssueID)
	}
	if err != nil {
		return store.FlagCounts{}, err
	}

	if err := l.flags.Insert(ctx, flag); err != nil {
		return store.FlagCounts{}, err
	}

	counts, err := l.flags.CountsFor(ctx, flag.IssueID)
	if err != nil {
		log.Printf("counting flags for issue %s: %v", flag.IssueID, err)
		return store.FlagCounts{}, nil
	}
	return counts, nil
}

// promoteSeed copies a seed issue into the live store, where it shadows
// the seed record on every subsequent merge.
func (l *Lifecycle) promoteSeed(ctx context.Context, id string) error {
	for _, seeded := range store.SeedIssues() {
		if seeded.ID == id {
			s := seeded
			return l.issues.Insert(ctx, &s)
		}
	}
	return store.ErrNotFound
}

// Create inserts a freshly triaged issue. Status is forced to Pending and
// the history is seeded with its first entry.
func (l *Lifecycle) Create(ctx context.Context, issue *models.Issue) error {
	now := time.Now()
	issue.Status = models.Pending
	issue.ReportedAt = now
	issue.StatusHistory = []models.StatusEntry{{Status: models.Pending, Date: now}}
	if issue.Priority == "" {
		issue.Priority = models.PriorityMedium
	}
	return l.issues.Insert(ctx, issue)
}

// UpdateOne applies a permitted-field update to a single issue. A status
// change appends to the history in the same write. An empty update is a
// no-op, not an error.
func (l *Lifecycle) UpdateOne(ctx context.Context, id string, update store.IssueUpdate) error {
	if update.Empty() {
		return nil
	}

	issue, err := l.issues.Get(ctx, id)
	if err != nil {
		return err
	}

	history, err := l.prepare(issue, &update)
	if err != nil {
		return err
	}
	return l.issues.Update(ctx, id, update, history)
}

// UpdateMany applies a batch of updates best-effort: entries that do not
// resolve or fail validation are skipped, the rest go to the store in one
// bulk write.
func (l *Lifecycle) UpdateMany(ctx context.Context, items []BatchItem) error {
	var batch []store.BatchUpdate
	for _, item := range items {
		if item.ID == "" || item.Update.Empty() {
			continue
		}
		issue, err := l.issues.Get(ctx, item.ID)
		if err != nil {
			log.Printf("bulk update: skipping issue %s: %v", item.ID, err)
			continue
		}
		update := item.Update
		history, err := l.prepare(issue, &update)
		if err != nil {
			log.Printf("bulk update: skipping issue %s: %v", item.ID, err)
			continue
		}
		batch = append(batch, store.BatchUpdate{ID: item.ID, Update: update, History: history})
	}
	if len(batch) == 0 {
		return nil
	}
	return l.issues.UpdateMany(ctx, batch)
}

// prepare validates a status change against the reopen policy and builds
// the replacement history when the status actually changes. A status equal
// to the current one is dropped from the update.
func (l *Lifecycle) prepare(issue *models.Issue, update *store.IssueUpdate) ([]models.StatusEntry, error) {
	if update.Status == nil {
		return nil, nil
	}
	if *update.Status == issue.Status {
		update.Status = nil
		return nil, nil
	}
	if issue.Status.Terminal() && !l.policy.AllowReopen {
		return nil, ErrTerminalStatus
	}
	return appendStatus(issue, *update.Status, "", time.Now()), nil
}

func (l *Lifecycle) annotateFlags(ctx context.Context, issue *models.Issue) {
	counts, err := l.flags.CountsFor(ctx, issue.ID)
	if err != nil {
		log.Printf("counting flags for issue %s: %v", issue.ID, err)
		return
	}
	issue.GreenFlags = counts.Green
	issue.RedFlags = counts.Red
}

// mergeWithSeed combines live issues with the seed set, suppressing seed
// records wherever a live issue shares the same id.
func mergeWithSeed(live []models.Issue) []models.Issue {
	seen := make(map[string]bool, len(live))
	for _, issue := range live {
		seen[issue.ID] = true
	}
	merged := live
	for _, seeded := range store.SeedIssues() {
		if !seen[seeded.ID] {
			merged = append(merged, seeded)
		}
	}
	return merged
}

func sortNewestFirst(issues []models.Issue) []models.Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].ReportedAt.After(issues[j].ReportedAt)
	})
	return issues
}
