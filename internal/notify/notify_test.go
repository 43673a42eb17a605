package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/models"
	"contestd/internal/providers"
	"contestd/internal/structures"
)

func samplePayload() Payload {
	return Payload{
		Title:     "Round 100",
		Platform:  models.PlatformCodeforces,
		StartTime: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Countdown: 45 * time.Minute,
		URL:       "https://codeforces.com/contest/100",
	}
}

func TestRenderText(t *testing.T) {
	text := RenderText(samplePayload())

	assert.Contains(t, text, "Round 100")
	assert.Contains(t, text, "Platform: codeforces")
	assert.Contains(t, text, "Starts: 2026-09-01 10:00 UTC")
	assert.Contains(t, text, "Starts in: 0.8 hours")
	assert.Contains(t, text, "https://codeforces.com/contest/100")
}

func TestRenderText_NoURL(t *testing.T) {
	p := samplePayload()
	p.URL = ""
	assert.NotContains(t, RenderText(p), "http")
}

func TestFormatCountdown(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Minute, "0.8 hours"},
		{90 * time.Minute, "1.5 hours"},
		{23 * time.Hour, "23.0 hours"},
		{25 * time.Hour, "2 days"},
		{6 * 24 * time.Hour, "6 days"},
		{8 * 24 * time.Hour, "2 weeks"},
		{21 * 24 * time.Hour, "3 weeks"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatCountdown(tc.d), "for %s", tc.d)
	}
}

func TestOneBotSink_Deliver(t *testing.T) {
	var got struct {
		GroupID int64 `json:"group_id"`
		Message []struct {
			Type string            `json:"type"`
			Data map[string]string `json:"data"`
		} `json:"message"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send_group_msg", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	sink := NewOneBotSink(srv.URL, "secret")
	require.NoError(t, sink.Deliver(context.Background(), "123456", samplePayload()))

	assert.Equal(t, int64(123456), got.GroupID)
	require.Len(t, got.Message, 1)
	assert.Equal(t, "text", got.Message[0].Type)
	assert.Contains(t, got.Message[0].Data["text"], "Round 100")
}

func TestOneBotSink_NonNumericGroup(t *testing.T) {
	sink := NewOneBotSink("http://localhost:1", "")
	err := sink.Deliver(context.Background(), "not-a-number", samplePayload())
	assert.ErrorContains(t, err, "not numeric")
}

func TestOneBotSink_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sink := NewOneBotSink(srv.URL, "")
	err := sink.Deliver(context.Background(), "123", samplePayload())
	assert.ErrorContains(t, err, "500")
}

type nullLogger struct {
	lines []string
}

func (l *nullLogger) Errorf(providers.TypeEnum, string, ...interface{}) {}
func (l *nullLogger) Warnf(providers.TypeEnum, string, ...interface{})  {}
func (l *nullLogger) Debugf(providers.TypeEnum, string, ...interface{}) {}
func (l *nullLogger) Infof(_ providers.TypeEnum, format string, args ...interface{}) {
	l.lines = append(l.lines, format)
}
func (l *nullLogger) Fatalf(providers.TypeEnum, string, ...interface{}) {}
func (l *nullLogger) Close()                                            {}

func TestLogSink_Deliver(t *testing.T) {
	logger := &nullLogger{}
	sink := NewLogSink(logger)

	require.NoError(t, sink.Deliver(context.Background(), "42", samplePayload()))
	assert.Len(t, logger.lines, 1)
}

func TestNewSink_SelectsByType(t *testing.T) {
	conf := &structures.Config{}
	conf.Notifier = structures.NotifierConfig{Type: "log"}

	sink, err := NewSink(conf, &nullLogger{})
	require.NoError(t, err)
	assert.Equal(t, "log", sink.Name())
}

func TestNewSink_OneBotRequiresEndpoint(t *testing.T) {
	conf := &structures.Config{Notifier: structures.NotifierConfig{Type: "onebot"}}
	_, err := NewSink(conf, &nullLogger{})
	assert.Error(t, err)
}

func TestNewSink_TelegramRequiresToken(t *testing.T) {
	conf := &structures.Config{Notifier: structures.NotifierConfig{Type: "telegram"}}
	_, err := NewSink(conf, &nullLogger{})
	assert.Error(t, err)
}

func TestNewSink_UnknownType(t *testing.T) {
	conf := &structures.Config{Notifier: structures.NotifierConfig{Type: "carrier-pigeon"}}
	_, err := NewSink(conf, &nullLogger{})
	assert.ErrorContains(t, err, "unknown notifier type")
}
