package normalize

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/models"
)

func unixStr(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}

func TestContest_SecondsTimestamps(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	c, err := Contest(models.PlatformLuogu, models.RawContest{
		NativeID: "101",
		Title:    "Div 3",
		Start:    unixStr(start),
		End:      unixStr(end),
	})
	require.NoError(t, err)
	assert.True(t, c.StartTime.Equal(start))
	assert.True(t, c.EndTime.Equal(end))
	assert.Equal(t, "Div 3", c.Title)
}

func TestContest_MillisTimestamps(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	c, err := Contest(models.PlatformNowcoder, models.RawContest{
		NativeID: "55",
		Title:    "Weekly",
		Start:    strconv.FormatInt(start.UnixMilli(), 10),
		End:      strconv.FormatInt(start.Add(90*time.Minute).UnixMilli(), 10),
	})
	require.NoError(t, err)
	assert.True(t, c.StartTime.Equal(start))
	assert.Equal(t, 90*time.Minute, c.Duration())
}

func TestContest_ISOTimestamps(t *testing.T) {
	c, err := Contest(models.PlatformScpc, models.RawContest{
		NativeID: "7",
		Title:    "Monthly",
		Start:    "2027-07-08T23:09:00.000+0000",
		End:      "2027-07-09T02:09:00.000+0000",
	})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, c.Duration())
	assert.Equal(t, time.UTC, c.StartTime.Location())
}

func TestContest_EndFromDuration(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	c, err := Contest(models.PlatformCodeforces, models.RawContest{
		NativeID:    "2042",
		Title:       "Round 999",
		Start:       unixStr(start),
		DurationSec: 7200,
	})
	require.NoError(t, err)
	assert.True(t, c.EndTime.Equal(start.Add(2*time.Hour)))
}

func TestContest_EndFromPlatformDefault(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	c, err := Contest(models.PlatformScpc, models.RawContest{
		NativeID: "8",
		Start:    unixStr(start),
	})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Hour, c.Duration())
}

func TestContest_TitleFallback(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	c, err := Contest(models.PlatformCodeforces, models.RawContest{
		NativeID: "2042",
		Start:    unixStr(start),
	})
	require.NoError(t, err)
	assert.Equal(t, "codeforces #2042", c.Title)
}

func TestContest_URLFallback(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	c, err := Contest(models.PlatformLuogu, models.RawContest{
		NativeID: "101",
		Title:    "x",
		Start:    unixStr(start),
	})
	require.NoError(t, err)
	assert.Equal(t, "https://www.luogu.com.cn/contest/101", c.URL)
}

func TestContest_MissingID(t *testing.T) {
	_, err := Contest(models.PlatformCodeforces, models.RawContest{
		Title: "nameless",
		Start: "1700000000",
	})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestContest_MissingStart(t *testing.T) {
	_, err := Contest(models.PlatformCodeforces, models.RawContest{
		NativeID: "1",
		Title:    "no schedule",
	})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestContest_GarbageStart(t *testing.T) {
	_, err := Contest(models.PlatformScpc, models.RawContest{
		NativeID: "1",
		Start:    "soon(tm)",
	})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestContest_EndBeforeStart(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	_, err := Contest(models.PlatformLuogu, models.RawContest{
		NativeID: "9",
		Start:    unixStr(start),
		End:      unixStr(start.Add(-time.Hour)),
	})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestContest_UnknownPlatform(t *testing.T) {
	_, err := Contest(models.Platform("topcoder"), models.RawContest{
		NativeID: "1",
		Start:    "1700000000",
	})
	assert.ErrorIs(t, err, models.ErrMalformedRecord)
}

func TestBatch_DropsMalformedIndividually(t *testing.T) {
	start := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

	contests, dropped := Batch(models.PlatformCodeforces, []models.RawContest{
		{NativeID: "1", Title: "good", Start: unixStr(start)},
		{NativeID: "2", Title: "bad", Start: "???"},
		{NativeID: "3", Title: "also good", Start: unixStr(start.Add(time.Hour))},
	})
	assert.Len(t, contests, 2)
	assert.Len(t, dropped, 1)
	assert.ErrorIs(t, dropped[0], models.ErrMalformedRecord)
}
