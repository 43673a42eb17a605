package sources

import (
	"contestd/internal/models"
	"context"
	"fmt"
	"net/http"
	"strconv"
)

// NowcoderSource reads the gateway contest list. Timestamps are unix
// milliseconds, which the normalizer detects by magnitude.
type NowcoderSource struct {
	baseURL string
	client  *http.Client
}

func NewNowcoderSource(baseURL string, client *http.Client) *NowcoderSource {
	if baseURL == "" {
		baseURL = "https://ac.nowcoder.com"
	}
	return &NowcoderSource{baseURL: baseURL, client: client}
}

func (s *NowcoderSource) Platform() models.Platform {
	return models.PlatformNowcoder
}

type ncContestRaw struct {
	ContestID   int64  `json:"contestId"`
	ContestName string `json:"contestName"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	Link        string `json:"link"`
}

type ncEnvelope struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data struct {
		Contests []ncContestRaw `json:"contests"`
	} `json:"data"`
}

func (s *NowcoderSource) Fetch(ctx context.Context) ([]models.RawContest, error) {
	var envelope ncEnvelope
	url := s.baseURL + "/acm/contest/list-json"
	if err := getJSON(ctx, s.client, url, &envelope); err != nil {
		return nil, err
	}
	if envelope.Code != 0 {
		return nil, fmt.Errorf("%w: nowcoder code %d (%s)", models.ErrSourceUnavailable, envelope.Code, envelope.Msg)
	}

	raws := make([]models.RawContest, 0, len(envelope.Data.Contests))
	for _, c := range envelope.Data.Contests {
		raw := models.RawContest{
			NativeID: strconv.FormatInt(c.ContestID, 10),
			Title:    c.ContestName,
			URL:      c.Link,
		}
		if c.StartTime != 0 {
			raw.Start = strconv.FormatInt(c.StartTime, 10)
		}
		if c.EndTime != 0 {
			raw.End = strconv.FormatInt(c.EndTime, 10)
		}
		raws = append(raws, raw)
	}
	return raws, nil
}
