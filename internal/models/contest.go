package models

import (
	"fmt"
	"time"
)

type Platform string

const (
	PlatformCodeforces Platform = "codeforces"
	PlatformNowcoder   Platform = "nowcoder"
	PlatformLuogu      Platform = "luogu"
	PlatformScpc       Platform = "scpc"
)

func (p Platform) Valid() bool {
	switch p {
	case PlatformCodeforces, PlatformNowcoder, PlatformLuogu, PlatformScpc:
		return true
	}
	return false
}

type ContestStatus string

const (
	StatusUpcoming ContestStatus = "upcoming"
	StatusRunning  ContestStatus = "running"
	StatusEnded    ContestStatus = "ended"
)

// ContestKey identifies a contest across re-fetches. NativeID is the
// platform's own identifier and is only unique within one platform.
type ContestKey struct {
	Platform Platform `json:"platform"`
	NativeID string   `json:"native_id"`
}

func (k ContestKey) String() string {
	return string(k.Platform) + "/" + k.NativeID
}

type Contest struct {
	Platform  Platform  `json:"platform"`
	NativeID  string    `json:"native_id"`
	Title     string    `json:"title"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
	URL       string    `json:"url"`
}

func (c *Contest) Key() ContestKey {
	return ContestKey{Platform: c.Platform, NativeID: c.NativeID}
}

// Status is derived, never stored.
func (c *Contest) Status(now time.Time) ContestStatus {
	switch {
	case now.Before(c.StartTime):
		return StatusUpcoming
	case now.Before(c.EndTime):
		return StatusRunning
	default:
		return StatusEnded
	}
}

func (c *Contest) Duration() time.Duration {
	return c.EndTime.Sub(c.StartTime)
}

// RawContest is the loosely typed record a platform adapter hands to the
// normalizer. Start and End carry the platform's native representation
// (unix seconds, unix milliseconds or an ISO string); only the normalizer
// parses them.
type RawContest struct {
	NativeID    string
	Title       string
	URL         string
	Start       string
	End         string
	DurationSec int64
}

func (r RawContest) String() string {
	return fmt.Sprintf("raw{id=%s title=%q start=%q end=%q dur=%d}", r.NativeID, r.Title, r.Start, r.End, r.DurationSec)
}
