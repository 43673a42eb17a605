package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPlatformValid(t *testing.T) {
	for _, p := range []Platform{PlatformCodeforces, PlatformNowcoder, PlatformLuogu, PlatformScpc} {
		assert.True(t, p.Valid(), string(p))
	}
	assert.False(t, Platform("atcoder").Valid())
	assert.False(t, Platform("").Valid())
}

func TestContestKeyString(t *testing.T) {
	key := ContestKey{Platform: PlatformCodeforces, NativeID: "2042"}
	assert.Equal(t, "codeforces/2042", key.String())
}

func TestContestStatus(t *testing.T) {
	start := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	c := Contest{StartTime: start, EndTime: start.Add(2 * time.Hour)}

	assert.Equal(t, StatusUpcoming, c.Status(start.Add(-time.Minute)))
	assert.Equal(t, StatusRunning, c.Status(start))
	assert.Equal(t, StatusRunning, c.Status(start.Add(time.Hour)))
	assert.Equal(t, StatusEnded, c.Status(start.Add(2*time.Hour)))
}
