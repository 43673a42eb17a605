package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/models"
	"contestd/internal/services"
)

func TestHealth(t *testing.T) {
	registry := services.NewContestRegistry()
	subs := services.NewSubscriptionStore()
	now := time.Now().UTC()
	registry.Merge(models.PlatformCodeforces, []models.Contest{
		{Platform: models.PlatformCodeforces, NativeID: "1", StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour)},
	}, now)
	subs.EnqueueSetEnabled("42", true)
	subs.ApplyPending()

	hc := NewHealthController(registry, subs)
	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, float64(1), resp["contests_tracked"])
	assert.Equal(t, float64(1), resp["groups_enabled"])
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(services.NewContestRegistry(), services.NewSubscriptionStore())
	rec := httptest.NewRecorder()
	hc.Health(rec, httptest.NewRequest(http.MethodPost, "/health", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1h2m3s", formatDuration(time.Hour+2*time.Minute+3*time.Second))
	assert.Equal(t, "0h0m0s", formatDuration(0))
	assert.Equal(t, "25h0m1s", formatDuration(25*time.Hour+time.Second))
}
