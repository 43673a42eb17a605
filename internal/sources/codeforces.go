package sources

import (
	"contestd/internal/models"
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// CodeforcesSource reads the official contest.list API. Timestamps are
// unix seconds; finished contests are not part of the batch.
type CodeforcesSource struct {
	baseURL string
	client  *http.Client
}

func NewCodeforcesSource(baseURL string, client *http.Client) *CodeforcesSource {
	if baseURL == "" {
		baseURL = "https://codeforces.com"
	}
	return &CodeforcesSource{baseURL: baseURL, client: client}
}

func (s *CodeforcesSource) Platform() models.Platform {
	return models.PlatformCodeforces
}

type cfContestRaw struct {
	ID               int64  `json:"id"`
	Name             string `json:"name"`
	Phase            string `json:"phase"`
	DurationSeconds  int64  `json:"durationSeconds"`
	StartTimeSeconds int64  `json:"startTimeSeconds"`
}

type cfEnvelope struct {
	Status  string         `json:"status"`
	Comment string         `json:"comment"`
	Result  []cfContestRaw `json:"result"`
}

func (s *CodeforcesSource) Fetch(ctx context.Context) ([]models.RawContest, error) {
	var envelope cfEnvelope
	url := s.baseURL + "/api/contest.list?gym=false"
	if err := getJSON(ctx, s.client, url, &envelope); err != nil {
		return nil, err
	}
	if envelope.Status != "OK" {
		return nil, fmt.Errorf("%w: codeforces status %q (%s)", models.ErrSourceUnavailable, envelope.Status, envelope.Comment)
	}

	raws := make([]models.RawContest, 0, len(envelope.Result))
	for _, c := range envelope.Result {
		if c.Phase == "FINISHED" {
			continue
		}
		// Gym-adjacent entries occasionally lack a schedule; those
		// cannot be reminded about and are not part of the batch.
		if c.StartTimeSeconds == 0 {
			continue
		}
		raws = append(raws, models.RawContest{
			NativeID:    strconv.FormatInt(c.ID, 10),
			Title:       c.Name,
			Start:       strconv.FormatInt(c.StartTimeSeconds, 10),
			DurationSec: c.DurationSeconds,
		})
	}
	return raws, nil
}
