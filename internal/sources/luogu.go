package sources

import (
	"contestd/internal/models"
	"context"
	"net/http"
	"strconv"
)

// LuoguSource reads the contest list in its _contentOnly JSON form.
// Timestamps are unix seconds.
type LuoguSource struct {
	baseURL string
	client  *http.Client
}

func NewLuoguSource(baseURL string, client *http.Client) *LuoguSource {
	if baseURL == "" {
		baseURL = "https://www.luogu.com.cn"
	}
	return &LuoguSource{baseURL: baseURL, client: client}
}

func (s *LuoguSource) Platform() models.Platform {
	return models.PlatformLuogu
}

type luoguContestRaw struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartTime int64  `json:"startTime"`
	EndTime   int64  `json:"endTime"`
}

type luoguEnvelope struct {
	CurrentData struct {
		Contests struct {
			Result []luoguContestRaw `json:"result"`
		} `json:"contests"`
	} `json:"currentData"`
}

func (s *LuoguSource) Fetch(ctx context.Context) ([]models.RawContest, error) {
	var envelope luoguEnvelope
	url := s.baseURL + "/contest/list?_contentOnly=1"
	if err := getJSON(ctx, s.client, url, &envelope); err != nil {
		return nil, err
	}

	result := envelope.CurrentData.Contests.Result
	raws := make([]models.RawContest, 0, len(result))
	for _, c := range result {
		raw := models.RawContest{
			NativeID: strconv.FormatInt(c.ID, 10),
			Title:    c.Name,
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
