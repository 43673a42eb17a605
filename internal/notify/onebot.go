package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	json "github.com/goccy/go-json"
)

// OneBotSink posts reminders to a OneBot-compatible HTTP endpoint
// (the transport the upstream QQ bots speak). Group ids are the
// numeric QQ group numbers.
type OneBotSink struct {
	endpoint string
	token    string
	client   *http.Client
}

func NewOneBotSink(endpoint, token string) *OneBotSink {
	return &OneBotSink{
		endpoint: endpoint,
		token:    token,
		client:   &http.Client{},
	}
}

func (s *OneBotSink) Name() string { return "onebot" }

type oneBotSegment struct {
	Type string            `json:"type"`
	Data map[string]string `json:"data"`
}

type oneBotGroupMsg struct {
	GroupID int64           `json:"group_id"`
	Message []oneBotSegment `json:"message"`
}

func (s *OneBotSink) Deliver(ctx context.Context, groupID string, payload Payload) error {
	gid, err := strconv.ParseInt(groupID, 10, 64)
	if err != nil {
		return fmt.Errorf("onebot group id %q is not numeric: %w", groupID, err)
	}

	body, err := json.Marshal(oneBotGroupMsg{
		GroupID: gid,
		Message: []oneBotSegment{
			{Type: "text", Data: map[string]string{"text": RenderText(payload)}},
		},
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"/send_group_msg", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("onebot returned status %d", resp.StatusCode)
	}
	return nil
}
