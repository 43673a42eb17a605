// Package notify adapts the scheduler's reminder payloads onto a chat
// transport. The scheduler treats delivery as fire-and-forget: a sink
// error is logged and never blocks or fails the tick.
package notify

import (
	"contestd/internal/models"
	"context"
	"time"
)

// Payload is the rendered reminder addressed to one group.
type Payload struct {
	Title     string          `json:"title"`
	Platform  models.Platform `json:"platform"`
	StartTime time.Time       `json:"start_time"`
	Countdown time.Duration   `json:"countdown"`
	URL       string          `json:"url"`
}

type Sink interface {
	Name() string
	Deliver(ctx context.Context, groupID string, payload Payload) error
}

// NewPayload builds the reminder for a contest as seen at `now`.
func NewPayload(c *models.Contest, now time.Time) Payload {
	return Payload{
		Title:     c.Title,
		Platform:  c.Platform,
		StartTime: c.StartTime,
		Countdown: c.StartTime.Sub(now),
		URL:       c.URL,
	}
}
