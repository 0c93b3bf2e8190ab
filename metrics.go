package dxgi

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/gogpu/dxgi/internal/pipecache"
)

const metricsNamespace = "dxgi"

var (
	liveObjects = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "live_objects",
		Help:      "Interface objects currently alive, by kind.",
	}, []string{"kind"})

	outputDataUpdates = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "output_data_updates_total",
		Help:      "Writes to adapter output state caches.",
	})

	deviceCreateFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "device_create_failures_total",
		Help:      "CreateDevice calls that returned DXGI_ERROR_UNSUPPORTED.",
	})

	pipelineCaches = newCacheCollector()
)

// RegisterMetrics registers the package metrics with reg. Registering the
// same metrics twice is not an error.
func RegisterMetrics(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{liveObjects, outputDataUpdates, deviceCreateFailures, pipelineCaches} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}

// cacheCollector reports pipeline cache statistics summed over every live
// factory. Counts of destroyed factories are folded into retired so the
// counters never go backwards.
type cacheCollector struct {
	mu         sync.Mutex
	registries map[*pipecache.Registry]struct{}
	retired    struct{ hits, misses uint64 }

	hitsDesc   *prometheus.Desc
	missesDesc *prometheus.Desc
	sizeDesc   *prometheus.Desc
}

func newCacheCollector() *cacheCollector {
	return &cacheCollector{
		registries: make(map[*pipecache.Registry]struct{}),
		hitsDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "pipeline_cache", "hits_total"),
			"Pipeline cache acquisitions that reused an existing cache.", nil, nil),
		missesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "pipeline_cache", "misses_total"),
			"Pipeline cache acquisitions that created a backend cache.", nil, nil),
		sizeDesc: prometheus.NewDesc(
			prometheus.BuildFQName(metricsNamespace, "pipeline_cache", "entries"),
			"Pipeline caches currently held.", nil, nil),
	}
}

func (c *cacheCollector) track(r *pipecache.Registry) {
	c.mu.Lock()
	c.registries[r] = struct{}{}
	c.mu.Unlock()
}

// untrack must be called before DestroyAll, which resets the statistics.
func (c *cacheCollector) untrack(r *pipecache.Registry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.registries[r]; !ok {
		return
	}
	delete(c.registries, r)
	hits, misses := r.Stats()
	c.retired.hits += hits
	c.retired.misses += misses
}

func (c *cacheCollector) totals() (hits, misses uint64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	hits, misses = c.retired.hits, c.retired.misses
	for r := range c.registries {
		h, m := r.Stats()
		hits += h
		misses += m
		size += r.Size()
	}
	return hits, misses, size
}

// Describe implements prometheus.Collector.
func (c *cacheCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.hitsDesc
	ch <- c.missesDesc
	ch <- c.sizeDesc
}

// Collect implements prometheus.Collector.
func (c *cacheCollector) Collect(ch chan<- prometheus.Metric) {
	hits, misses, size := c.totals()
	ch <- prometheus.MustNewConstMetric(c.hitsDesc, prometheus.CounterValue, float64(hits))
	ch <- prometheus.MustNewConstMetric(c.missesDesc, prometheus.CounterValue, float64(misses))
	ch <- prometheus.MustNewConstMetric(c.sizeDesc, prometheus.GaugeValue, float64(size))
}
