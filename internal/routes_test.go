package internal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contestd/internal/controllers"
	"contestd/internal/services"
	"contestd/internal/structures"
	"contestd/internal/testutil"
)

func TestInitRoutes(t *testing.T) {
	controller := controllers.NewApiController(
		&testutil.MockLogger{},
		services.NewContestRegistry(),
		services.NewSubscriptionStore(),
		nil,
		noCache{},
	)

	routes := InitRoutes(controller, &structures.Config{}).GetRoutes()

	require.Len(t, routes, 5)
	paths := make([]string, 0, len(routes))
	for _, r := range routes {
		paths = append(paths, r.Url)
	}
	assert.Contains(t, paths, "/contests")
	assert.Contains(t, paths, "/archive")
	assert.Contains(t, paths, "/subscriptions")
	assert.Contains(t, paths, "/subscriptions/enable")
	assert.Contains(t, paths, "/subscriptions/disable")
}

type noCache struct{}

func (noCache) Get(string) ([]byte, bool) { return nil, false }
func (noCache) Set(string, []byte)        {}
