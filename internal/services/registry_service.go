package services

import (
	"contestd/internal/models"
	"sort"
	"sync"
	"time"
)

type ContestRegistryInterface interface {
	Merge(platform models.Platform, contests []models.Contest, now time.Time) models.DiffResult
	Prune(now time.Time, grace time.Duration, missThreshold int) []models.RegistryEntry
	Get(key models.ContestKey) (models.RegistryEntry, bool)
	Snapshot() []models.RegistryEntry
	Upcoming(now time.Time, lead time.Duration) []models.RegistryEntry
	Count() int
	Export() map[string]*models.RegistryEntry
	Import(entries map[string]*models.RegistryEntry)
}

// ContestRegistry is the single owner of RegistryEntry records. All
// mutation happens on the scheduler's tick goroutine; the RWMutex only
// protects the HTTP read path against observing a half-merged state.
type ContestRegistry struct {
	mu      sync.RWMutex
	entries map[models.ContestKey]*models.RegistryEntry
}

func NewContestRegistry() ContestRegistryInterface {
	return &ContestRegistry{
		entries: make(map[models.ContestKey]*models.RegistryEntry),
	}
}

// Merge diffs one platform's fetch against the stored entries. Entries
// belonging to other platforms are never touched. A stored, not yet
// ended contest absent from the fetch is a cancellation candidate: its
// miss counter grows, removal is left to Prune so a single flaky fetch
// does not drop it.
func (r *ContestRegistry) Merge(platform models.Platform, contests []models.Contest, now time.Time) models.DiffResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	diff := models.DiffResult{Platform: platform}
	seen := make(map[models.ContestKey]struct{}, len(contests))

	for i := range contests {
		c := contests[i]
		if c.Platform != platform {
			continue
		}
		key := c.Key()
		seen[key] = struct{}{}

		entry, ok := r.entries[key]
		if !ok {
			r.entries[key] = &models.RegistryEntry{
				Contest:    c,
				LastSeenAt: now,
			}
			diff.Added = append(diff.Added, key)
			continue
		}

		entry.LastSeenAt = now
		entry.MissCount = 0
		if sameSchedule(&entry.Contest, &c) {
			entry.Contest.URL = c.URL
			diff.Unchanged = append(diff.Unchanged, key)
			continue
		}
		entry.Contest = c
		entry.Revision++
		diff.Rescheduled = append(diff.Rescheduled, key)
	}

	for key, entry := range r.entries {
		if key.Platform != platform {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		if !entry.Contest.EndTime.After(now) {
			// Already ended; its disappearance is expected.
			continue
		}
		entry.MissCount++
		diff.Cancelled = append(diff.Cancelled, key)
	}

	sortKeys(diff.Added)
	sortKeys(diff.Rescheduled)
	sortKeys(diff.Cancelled)
	sortKeys(diff.Unchanged)
	return diff
}

func sameSchedule(a, b *models.Contest) bool {
	return a.Title == b.Title &&
		a.StartTime.Equal(b.StartTime) &&
		a.EndTime.Equal(b.EndTime)
}

// Prune removes entries that ended longer than grace ago, and entries
// missing from at least missThreshold consecutive fetches. Removed
// entries are returned so notified sets can be forgotten in lockstep
// and ended contests archived.
func (r *ContestRegistry) Prune(now time.Time, grace time.Duration, missThreshold int) []models.RegistryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()

	var removed []models.RegistryEntry
	for key, entry := range r.entries {
		expired := now.Sub(entry.Contest.EndTime) > grace
		cancelled := missThreshold > 0 && entry.MissCount >= missThreshold
		if expired || cancelled {
			delete(r.entries, key)
			removed = append(removed, *entry)
		}
	}
	sortEntries(removed)
	return removed
}

func (r *ContestRegistry) Get(key models.ContestKey) (models.RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, ok := r.entries[key]
	if !ok {
		return models.RegistryEntry{}, false
	}
	return *entry, true
}

// Snapshot returns copies of all entries ordered by start time, ties
// broken by (platform, nativeId).
func (r *ContestRegistry) Snapshot() []models.RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.RegistryEntry, 0, len(r.entries))
	for _, entry := range r.entries {
		out = append(out, *entry)
	}
	sortEntries(out)
	return out
}

// Upcoming returns entries whose start time falls within [now, now+lead],
// in notification order.
func (r *ContestRegistry) Upcoming(now time.Time, lead time.Duration) []models.RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	horizon := now.Add(lead)
	var out []models.RegistryEntry
	for _, entry := range r.entries {
		start := entry.Contest.StartTime
		if start.Before(now) || start.After(horizon) {
			continue
		}
		out = append(out, *entry)
	}
	sortEntries(out)
	return out
}

func (r *ContestRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

func (r *ContestRegistry) Export() map[string]*models.RegistryEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make(map[string]*models.RegistryEntry, len(r.entries))
	for key, entry := range r.entries {
		copied := *entry
		out[key.String()] = &copied
	}
	return out
}

func (r *ContestRegistry) Import(entries map[string]*models.RegistryEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, entry := range entries {
		if entry == nil || !entry.Contest.Platform.Valid() {
			continue
		}
		copied := *entry
		r.entries[entry.Key()] = &copied
	}
}

func sortKeys(keys []models.ContestKey) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Platform != keys[j].Platform {
			return keys[i].Platform < keys[j].Platform
		}
		return keys[i].NativeID < keys[j].NativeID
	})
}

func sortEntries(entries []models.RegistryEntry) {
	sort.Slice(entries, func(i, j int) bool {
		a, b := &entries[i].Contest, &entries[j].Contest
		if !a.StartTime.Equal(b.StartTime) {
			return a.StartTime.Before(b.StartTime)
		}
		if a.Platform != b.Platform {
			return a.Platform < b.Platform
		}
		return a.NativeID < b.NativeID
	})
}
