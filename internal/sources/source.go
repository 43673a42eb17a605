// Package sources holds the platform adapters. Each adapter owns its
// platform's transport quirks and wire shapes and presents one uniform
// contract to the scheduler: an atomic batch of raw contests, or
// ErrSourceUnavailable.
package sources

import (
	"contestd/internal/models"
	"contestd/internal/structures"
	"context"
	"fmt"
	"io"
	"net/http"

	json "github.com/goccy/go-json"
)

type Source interface {
	Platform() models.Platform
	Fetch(ctx context.Context) ([]models.RawContest, error)
}

// Some platforms reject requests without a browser user agent.
const browserUA = "Mozilla/5.0 (Windows NT 6.1; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/63.0.3239.132 Safari/537.36 QIHU 360SE"

// FromConfig builds the enabled platform adapters. The timeout per
// fetch is enforced by the scheduler through the context, not here.
func FromConfig(conf *structures.Config) []Source {
	client := &http.Client{}

	var list []Source
	if conf.Sources.Codeforces.Enabled {
		list = append(list, NewCodeforcesSource(conf.Sources.Codeforces.BaseURL, client))
	}
	if conf.Sources.Nowcoder.Enabled {
		list = append(list, NewNowcoderSource(conf.Sources.Nowcoder.BaseURL, client))
	}
	if conf.Sources.Luogu.Enabled {
		list = append(list, NewLuoguSource(conf.Sources.Luogu.BaseURL, client))
	}
	if conf.Sources.Scpc.Enabled {
		list = append(list, NewScpcSource(conf.Sources.Scpc.BaseURL, client))
	}
	return list
}

func getJSON(ctx context.Context, client *http.Client, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: build request: %v", models.ErrSourceUnavailable, err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrSourceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: unexpected status %d", models.ErrSourceUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read body: %v", models.ErrSourceUnavailable, err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode payload: %v", models.ErrSourceUnavailable, err)
	}
	return nil
}

// flexString accepts both JSON strings and bare numbers, keeping the
// original textual form. SCPC is known to switch between the two.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = flexString(data)
	return nil
}
