package models

import "time"

// RegistryEntry wraps a Contest with the bookkeeping the diff algorithm
// needs. Revision increments whenever a re-fetch changed the stored
// title or schedule; MissCount counts consecutive fetches the contest
// was absent from while not yet ended.
type RegistryEntry struct {
	Contest    Contest   `json:"contest"`
	Revision   int       `json:"revision"`
	LastSeenAt time.Time `json:"last_seen_at"`
	MissCount  int       `json:"miss_count"`
}

func (e *RegistryEntry) Key() ContestKey {
	return e.Contest.Key()
}

// DiffResult classifies one platform's fetch against the registry.
type DiffResult struct {
	Platform    Platform
	Added       []ContestKey
	Rescheduled []ContestKey
	Cancelled   []ContestKey
	Unchanged   []ContestKey
}

func (d *DiffResult) Total() int {
	return len(d.Added) + len(d.Rescheduled) + len(d.Cancelled) + len(d.Unchanged)
}
