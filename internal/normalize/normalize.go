// Package normalize maps platform-specific raw contest records into the
// unified Contest model. It is deterministic and does no I/O; every
// fallback rule lives here, next to the platform it belongs to.
package normalize

import (
	"contestd/internal/models"
	"fmt"
	"strconv"
	"time"
)

// Per-platform default durations, applied only when a record carries
// neither an end time nor a duration.
var defaultDurations = map[models.Platform]time.Duration{
	models.PlatformCodeforces: 2 * time.Hour,
	models.PlatformNowcoder:   2 * time.Hour,
	models.PlatformLuogu:      1 * time.Hour,
	models.PlatformScpc:       3 * time.Hour,
}

var contestURLFormats = map[models.Platform]string{
	models.PlatformCodeforces: "https://codeforces.com/contest/%s",
	models.PlatformNowcoder:   "https://ac.nowcoder.com/acm/contest/%s",
	models.PlatformLuogu:      "https://www.luogu.com.cn/contest/%s",
	models.PlatformScpc:       "http://scpc.fun/contest/%s",
}

// Contest normalizes one raw record. Fallback rules:
//   - missing native id → ErrMalformedRecord
//   - unparseable or absent start time → ErrMalformedRecord, never "now"
//   - missing end time → start + duration, else start + platform default
//   - end before start → ErrMalformedRecord, not clamped
//   - empty title → "<platform> #<nativeId>"
//   - empty url → platform's canonical contest page
func Contest(platform models.Platform, raw models.RawContest) (models.Contest, error) {
	if !platform.Valid() {
		return models.Contest{}, fmt.Errorf("%w: unknown platform %q", models.ErrMalformedRecord, platform)
	}
	if raw.NativeID == "" {
		return models.Contest{}, fmt.Errorf("%w: %s record without native id", models.ErrMalformedRecord, platform)
	}

	start, err := parseTime(raw.Start)
	if err != nil {
		return models.Contest{}, fmt.Errorf("%w: %s/%s start time %q: %v", models.ErrMalformedRecord, platform, raw.NativeID, raw.Start, err)
	}

	var end time.Time
	switch {
	case raw.End != "":
		end, err = parseTime(raw.End)
		if err != nil {
			return models.Contest{}, fmt.Errorf("%w: %s/%s end time %q: %v", models.ErrMalformedRecord, platform, raw.NativeID, raw.End, err)
		}
	case raw.DurationSec > 0:
		end = start.Add(time.Duration(raw.DurationSec) * time.Second)
	default:
		end = start.Add(defaultDurations[platform])
	}

	if end.Before(start) {
		return models.Contest{}, fmt.Errorf("%w: %s/%s ends before it starts", models.ErrMalformedRecord, platform, raw.NativeID)
	}

	title := raw.Title
	if title == "" {
		title = fmt.Sprintf("%s #%s", platform, raw.NativeID)
	}

	url := raw.URL
	if url == "" {
		url = fmt.Sprintf(contestURLFormats[platform], raw.NativeID)
	}

	return models.Contest{
		Platform:  platform,
		NativeID:  raw.NativeID,
		Title:     title,
		StartTime: start,
		EndTime:   end,
		URL:       url,
	}, nil
}

// Batch normalizes a whole fetch, dropping malformed records
// individually. The returned errors correspond one-to-one to the
// dropped records so the caller can log them.
func Batch(platform models.Platform, raws []models.RawContest) ([]models.Contest, []error) {
	contests := make([]models.Contest, 0, len(raws))
	var dropped []error
	for _, raw := range raws {
		c, err := Contest(platform, raw)
		if err != nil {
			dropped = append(dropped, err)
			continue
		}
		contests = append(contests, c)
	}
	return contests, dropped
}

// Timestamps above this value are treated as unix milliseconds.
// The cutoff corresponds to 2001-09-09 in millis and 33658 AD in
// seconds, so no real contest schedule is ambiguous.
const millisCutoff = int64(1e12)

var isoLayouts = []string{
	"2006-01-02T15:04:05.000-0700",
	time.RFC3339,
	"2006-01-02T15:04:05-0700",
	"2006-01-02 15:04:05 -0700",
}

func parseTime(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		if n <= 0 {
			return time.Time{}, fmt.Errorf("non-positive timestamp %d", n)
		}
		if n >= millisCutoff {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}

	for _, layout := range isoLayouts {
		if ts, err := time.Parse(layout, value); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format")
}
