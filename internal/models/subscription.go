package models

// Subscription is one group's opt-in state for contest reminders.
// Notified holds ContestKey strings already announced to this group;
// entries are forgotten in lockstep with registry pruning so the set
// does not grow unbounded.
type Subscription struct {
	GroupID  string              `json:"group_id"`
	Enabled  bool                `json:"enabled"`
	Notified map[string]struct{} `json:"notified"`
}

func NewSubscription(groupID string) *Subscription {
	return &Subscription{
		GroupID:  groupID,
		Notified: make(map[string]struct{}),
	}
}
