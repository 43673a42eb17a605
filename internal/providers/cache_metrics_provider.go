package providers

import "contestd/internal/structures"

// instrumentedCache counts hits and misses on the read path. Writes
// are passed through uncounted; the interesting signal is whether the
// query endpoints are actually served from cache between ticks.
type instrumentedCache struct {
	inner   CacheProviderInterface
	metrics MetricsProviderInterface
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	val, ok := c.inner.Get(key)
	if ok {
		c.metrics.IncCacheHits()
	} else {
		c.metrics.IncCacheMisses()
	}
	return val, ok
}

func (c *instrumentedCache) Set(key string, value []byte) {
	c.inner.Set(key, value)
}

// NewInstrumentedCacheProvider is the cache constructor the injector
// uses. A disabled cache stays a bare noop so the hit ratio is not
// polluted with phantom misses.
func NewInstrumentedCacheProvider(conf *structures.Config, logger Logger, metrics MetricsProviderInterface) CacheProviderInterface {
	inner := NewCacheProvider(conf, logger)
	if !conf.Cache.Enabled {
		return inner
	}
	return &instrumentedCache{inner: inner, metrics: metrics}
}
