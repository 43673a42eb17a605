package sources

import (
	"contestd/internal/models"
	"context"
	"net/http"
	"strconv"
)

// ScpcSource reads the SCPC contest list. The platform has changed its
// response shape before: records appear under data.records or at the
// top level, titles under title or contestName, and times as ISO
// strings or plain seconds. All variants are accepted.
type ScpcSource struct {
	baseURL string
	client  *http.Client
}

func NewScpcSource(baseURL string, client *http.Client) *ScpcSource {
	if baseURL == "" {
		baseURL = "http://scpc.fun"
	}
	return &ScpcSource{baseURL: baseURL, client: client}
}

func (s *ScpcSource) Platform() models.Platform {
	return models.PlatformScpc
}

type scpcContestRaw struct {
	ID          flexString `json:"id"`
	Title       string     `json:"title"`
	ContestName string     `json:"contestName"`
	StartTime   flexString `json:"startTime"`
	EndTime     flexString `json:"endTime"`
	Duration    int64      `json:"duration"`
}

type scpcEnvelope struct {
	Data struct {
		Records []scpcContestRaw `json:"records"`
	} `json:"data"`
	Records []scpcContestRaw `json:"records"`
}

func (s *ScpcSource) Fetch(ctx context.Context) ([]models.RawContest, error) {
	var envelope scpcEnvelope
	url := s.baseURL + "/api/get-contest-list?currentPage=0&limit=" + strconv.Itoa(scpcPageLimit)
	if err := getJSON(ctx, s.client, url, &envelope); err != nil {
		return nil, err
	}

	records := envelope.Data.Records
	if len(records) == 0 {
		records = envelope.Records
	}

	raws := make([]models.RawContest, 0, len(records))
	for _, c := range records {
		title := c.Title
		if title == "" {
			title = c.ContestName
		}
		raws = append(raws, models.RawContest{
			NativeID:    string(c.ID),
			Title:       title,
			Start:       string(c.StartTime),
			End:         string(c.EndTime),
			DurationSec: c.Duration,
		})
	}
	return raws, nil
}

const scpcPageLimit = 20
