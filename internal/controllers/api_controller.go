package controllers

import (
	"net/http"
	"time"

	json "github.com/goccy/go-json"

	"contestd/internal/models"
	"contestd/internal/providers"
	"contestd/internal/reminder"
	"contestd/internal/services"
)

const maxRequestBodySize = 1 << 20 // 1 MB

type ApiController struct {
	logger   providers.Logger
	registry services.ContestRegistryInterface
	subs     services.SubscriptionStoreInterface
	archive  *reminder.Archive
	cache    providers.CacheProviderInterface
}

func NewApiController(logger providers.Logger, registry services.ContestRegistryInterface, subs services.SubscriptionStoreInterface, archive *reminder.Archive, cache providers.CacheProviderInterface) *ApiController {
	return &ApiController{
		logger:   logger,
		registry: registry,
		subs:     subs,
		archive:  archive,
		cache:    cache,
	}
}

type contestView struct {
	Platform  models.Platform      `json:"platform"`
	NativeID  string               `json:"native_id"`
	Title     string               `json:"title"`
	StartTime time.Time            `json:"start_time"`
	EndTime   time.Time            `json:"end_time"`
	URL       string               `json:"url"`
	Status    models.ContestStatus `json:"status"`
	Revision  int                  `json:"revision"`
}

func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, cacheKey string, compute func() (any, error)) {
	if data, ok := ac.cache.Get(cacheKey); ok {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}

	result, err := compute()
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

// GetContests lists upcoming and running contests, optionally filtered
// by platform. Ended contests are only visible through the archive.
func (ac *ApiController) GetContests(w http.ResponseWriter, r *http.Request) {
	platform := r.URL.Query().Get("platform")
	if platform != "" && !models.Platform(platform).Valid() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.serveFromCacheOrCompute(w, "contests:"+platform, func() (any, error) {
		now := time.Now().UTC()
		views := make([]contestView, 0)
		for _, entry := range ac.registry.Snapshot() {
			c := entry.Contest
			if platform != "" && string(c.Platform) != platform {
				continue
			}
			status := c.Status(now)
			if status == models.StatusEnded {
				continue
			}
			views = append(views, contestView{
				Platform:  c.Platform,
				NativeID:  c.NativeID,
				Title:     c.Title,
				StartTime: c.StartTime,
				EndTime:   c.EndTime,
				URL:       c.URL,
				Status:    status,
				Revision:  entry.Revision,
			})
		}
		return views, nil
	})
}

func (ac *ApiController) GetArchive(w http.ResponseWriter, r *http.Request) {
	platform := models.Platform(r.URL.Query().Get("platform"))
	if !platform.Valid() {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.serveFromCacheOrCompute(w, "archive:"+string(platform), func() (any, error) {
		if ac.archive == nil {
			return []models.Contest{}, nil
		}
		return ac.archive.List(platform)
	})
}

type subscriptionResponse struct {
	Group   string `json:"group"`
	Enabled bool   `json:"enabled"`
}

func (ac *ApiController) GetSubscription(w http.ResponseWriter, r *http.Request) {
	group := r.URL.Query().Get("group")
	if group == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	gson, err := json.Marshal(subscriptionResponse{
		Group:   group,
		Enabled: ac.subs.IsEnabled(group),
	})
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(gson)
}

type subscriptionCommand struct {
	Group string `json:"group"`
}

// EnableReminders and DisableReminders queue the change; it takes
// effect at the scheduler's next idle window, never mid-tick. Both
// are idempotent. Admin gating belongs to the fronting layer.
func (ac *ApiController) EnableReminders(w http.ResponseWriter, r *http.Request) {
	ac.setEnabled(w, r, true)
}

func (ac *ApiController) DisableReminders(w http.ResponseWriter, r *http.Request) {
	ac.setEnabled(w, r, false)
}

func (ac *ApiController) setEnabled(w http.ResponseWriter, r *http.Request, enabled bool) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	var cmd subscriptionCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil || cmd.Group == "" {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	ac.subs.EnqueueSetEnabled(cmd.Group, enabled)
	ac.logger.Infof(providers.TypePost, "Queued reminders=%t for group %s", enabled, cmd.Group)

	gson, _ := json.Marshal(subscriptionResponse{Group: cmd.Group, Enabled: enabled})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_, _ = w.Write(gson)
}
