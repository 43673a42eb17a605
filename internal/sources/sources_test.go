package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/models"
	"contestd/internal/structures"
)

func jsonHandler(t *testing.T, wantPath string, body string) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, wantPath, r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestCodeforces_Fetch(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/contest.list", `{
		"status": "OK",
		"result": [
			{"id": 2042, "name": "Round 2042", "phase": "BEFORE", "durationSeconds": 7200, "startTimeSeconds": 1790000000},
			{"id": 2041, "name": "Round 2041", "phase": "FINISHED", "durationSeconds": 7200, "startTimeSeconds": 1780000000},
			{"id": 2040, "name": "No schedule yet", "phase": "BEFORE"}
		]
	}`))
	defer srv.Close()

	src := NewCodeforcesSource(srv.URL, srv.Client())
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 1, "finished and unscheduled entries are skipped")
	assert.Equal(t, "2042", raws[0].NativeID)
	assert.Equal(t, "Round 2042", raws[0].Title)
	assert.Equal(t, "1790000000", raws[0].Start)
	assert.Equal(t, int64(7200), raws[0].DurationSec)
}

func TestCodeforces_FailedStatus(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/contest.list",
		`{"status": "FAILED", "comment": "contest.list: rate limit"}`))
	defer srv.Close()

	src := NewCodeforcesSource(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
	assert.ErrorContains(t, err, "rate limit")
}

func TestNowcoder_Fetch(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/acm/contest/list-json", `{
		"code": 0,
		"data": {"contests": [
			{"contestId": 55, "contestName": "Weekly 55", "startTime": 1790000000000, "endTime": 1790007200000, "link": "/acm/contest/55"}
		]}
	}`))
	defer srv.Close()

	src := NewNowcoderSource(srv.URL, srv.Client())
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 1)
	assert.Equal(t, "55", raws[0].NativeID)
	assert.Equal(t, "1790000000000", raws[0].Start, "millis pass through untouched")
	assert.Equal(t, "1790007200000", raws[0].End)
}

func TestNowcoder_ErrorCode(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/acm/contest/list-json",
		`{"code": 1, "msg": "system busy"}`))
	defer srv.Close()

	src := NewNowcoderSource(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
}

func TestLuogu_Fetch(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/contest/list", `{
		"currentData": {"contests": {"result": [
			{"id": 101, "name": "Luogu Round", "startTime": 1790000000, "endTime": 1790003600}
		]}}
	}`))
	defer srv.Close()

	src := NewLuoguSource(srv.URL, srv.Client())
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 1)
	assert.Equal(t, "101", raws[0].NativeID)
	assert.Equal(t, "1790000000", raws[0].Start)
}

func TestScpc_FetchNestedRecords(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/get-contest-list", `{
		"data": {"records": [
			{"id": 7, "title": "Monthly 7", "startTime": "2027-07-08T23:09:00.000+0000", "endTime": "2027-07-09T02:09:00.000+0000"}
		]}
	}`))
	defer srv.Close()

	src := NewScpcSource(srv.URL, srv.Client())
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 1)
	assert.Equal(t, "7", raws[0].NativeID, "numeric id accepted")
	assert.Equal(t, "Monthly 7", raws[0].Title)
	assert.Equal(t, "2027-07-08T23:09:00.000+0000", raws[0].Start)
}

func TestScpc_FetchTopLevelRecordsAndContestName(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/get-contest-list", `{
		"records": [
			{"id": "8", "contestName": "Monthly 8", "startTime": 1790000000, "duration": 10800}
		]
	}`))
	defer srv.Close()

	src := NewScpcSource(srv.URL, srv.Client())
	raws, err := src.Fetch(context.Background())
	require.NoError(t, err)

	require.Len(t, raws, 1)
	assert.Equal(t, "8", raws[0].NativeID)
	assert.Equal(t, "Monthly 8", raws[0].Title, "contestName variant accepted")
	assert.Equal(t, "1790000000", raws[0].Start)
	assert.Equal(t, int64(10800), raws[0].DurationSec)
}

func TestFetch_HTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	src := NewCodeforcesSource(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
	assert.ErrorContains(t, err, "502")
}

func TestFetch_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(jsonHandler(t, "/api/contest.list", `<html>maintenance</html>`))
	defer srv.Close()

	src := NewCodeforcesSource(srv.URL, srv.Client())
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
}

func TestFetch_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	src := NewLuoguSource(srv.URL, &http.Client{})
	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, models.ErrSourceUnavailable)
}

func TestFromConfig_OnlyEnabledSources(t *testing.T) {
	conf := &structures.Config{
		Sources: structures.SourcesConfig{
			Codeforces: structures.SourceConfig{Enabled: true},
			Scpc:       structures.SourceConfig{Enabled: true, BaseURL: "http://example.test"},
		},
	}

	srcs := FromConfig(conf)

	require.Len(t, srcs, 2)
	assert.Equal(t, models.PlatformCodeforces, srcs[0].Platform())
	assert.Equal(t, models.PlatformScpc, srcs[1].Platform())
}
