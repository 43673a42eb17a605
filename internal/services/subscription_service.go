package services

import (
	"contestd/internal/models"
	"sort"
	"sync"
)

type SubscriptionStoreInterface interface {
	EnqueueSetEnabled(groupID string, enabled bool)
	ApplyPending() int
	Wakeup() <-chan struct{}
	IsEnabled(groupID string) bool
	EnabledGroups() []string
	CountEnabled() int
	MarkNotified(groupID string, key models.ContestKey)
	HasBeenNotified(groupID string, key models.ContestKey) bool
	ForgetContest(key models.ContestKey)
	Export() map[string]*models.Subscription
	Import(subs map[string]*models.Subscription)
}

type pendingCommand struct {
	groupID string
	enabled bool
}

// SubscriptionStore owns per-group reminder state. Opt-in/opt-out
// requests from the HTTP layer are queued and applied only between
// ticks, so a group's enabled flag never changes while the scheduler
// is mid-evaluation.
type SubscriptionStore struct {
	mu      sync.RWMutex
	subs    map[string]*models.Subscription
	pending []pendingCommand
	wakeup  chan struct{}
}

func NewSubscriptionStore() SubscriptionStoreInterface {
	return &SubscriptionStore{
		subs:   make(map[string]*models.Subscription),
		wakeup: make(chan struct{}, 1),
	}
}

// EnqueueSetEnabled records an opt-in/opt-out request and nudges the
// scheduler. Idempotent: applying the same command twice is harmless.
func (s *SubscriptionStore) EnqueueSetEnabled(groupID string, enabled bool) {
	s.mu.Lock()
	s.pending = append(s.pending, pendingCommand{groupID: groupID, enabled: enabled})
	s.mu.Unlock()

	select {
	case s.wakeup <- struct{}{}:
	default:
	}
}

// ApplyPending applies queued commands in arrival order. Called by the
// scheduler only, and only while no tick is in flight.
func (s *SubscriptionStore) ApplyPending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	applied := len(s.pending)
	for _, cmd := range s.pending {
		sub, ok := s.subs[cmd.groupID]
		if !ok {
			sub = models.NewSubscription(cmd.groupID)
			s.subs[cmd.groupID] = sub
		}
		sub.Enabled = cmd.enabled
	}
	s.pending = s.pending[:0]
	return applied
}

// Wakeup signals that commands are waiting; the idle scheduler drains
// it to apply them without waiting for the next tick.
func (s *SubscriptionStore) Wakeup() <-chan struct{} {
	return s.wakeup
}

func (s *SubscriptionStore) IsEnabled(groupID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[groupID]
	return ok && sub.Enabled
}

func (s *SubscriptionStore) EnabledGroups() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var groups []string
	for id, sub := range s.subs {
		if sub.Enabled {
			groups = append(groups, id)
		}
	}
	sort.Strings(groups)
	return groups
}

func (s *SubscriptionStore) CountEnabled() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, sub := range s.subs {
		if sub.Enabled {
			count++
		}
	}
	return count
}

func (s *SubscriptionStore) MarkNotified(groupID string, key models.ContestKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sub, ok := s.subs[groupID]
	if !ok {
		return
	}
	sub.Notified[key.String()] = struct{}{}
}

func (s *SubscriptionStore) HasBeenNotified(groupID string, key models.ContestKey) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sub, ok := s.subs[groupID]
	if !ok {
		return false
	}
	_, notified := sub.Notified[key.String()]
	return notified
}

// ForgetContest drops the key from every group's notified set. Used
// both when a contest is pruned and when a reschedule re-arms it.
func (s *SubscriptionStore) ForgetContest(key models.ContestKey) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ks := key.String()
	for _, sub := range s.subs {
		delete(sub.Notified, ks)
	}
}

func (s *SubscriptionStore) Export() map[string]*models.Subscription {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]*models.Subscription, len(s.subs))
	for id, sub := range s.subs {
		copied := models.Subscription{
			GroupID:  sub.GroupID,
			Enabled:  sub.Enabled,
			Notified: make(map[string]struct{}, len(sub.Notified)),
		}
		for k := range sub.Notified {
			copied.Notified[k] = struct{}{}
		}
		out[id] = &copied
	}
	return out
}

func (s *SubscriptionStore) Import(subs map[string]*models.Subscription) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, sub := range subs {
		if sub == nil || id == "" {
			continue
		}
		copied := models.Subscription{
			GroupID: id,
			Enabled: sub.Enabled,
		}
		if sub.Notified != nil {
			copied.Notified = make(map[string]struct{}, len(sub.Notified))
			for k := range sub.Notified {
				copied.Notified[k] = struct{}{}
			}
		} else {
			copied.Notified = make(map[string]struct{})
		}
		s.subs[id] = &copied
	}
}
