// Package metrics exports forest, cache and basis-completion statistics as
// Prometheus metrics.
//
// A Collector holds the last observed snapshot. Computations stay
// single-threaded: the caller observes its Forest, Cache and Result at
// points of its choosing, and the scrape goroutine reads the snapshot.
//
//	m := metrics.NewCollector()
//	registry.MustRegister(m)
//	...
//	m.ObserveForest(f.Stats())
//	m.ObserveCache(c.Stats())
//	m.ObserveResult(res)
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	goanf "github.com/zzenonn/go-anf"
)

const (
	namespace = "goanf"
)

// Collector is a prometheus.Collector over goanf statistics.
type Collector struct {
	mu sync.Mutex

	forestNodes     prometheus.Gauge
	forestPages     prometheus.Gauge
	forestSlots     prometheus.Gauge
	forestGen       prometheus.Gauge
	uniqueLookups   *prometheus.GaugeVec
	cacheEntries    *prometheus.GaugeVec
	cacheLookups    *prometheus.GaugeVec
	basisSize       prometheus.Gauge
	basisIterations prometheus.Gauge
	basisComplete   prometheus.Gauge
	basisTruncated  prometheus.Gauge
	reductions      *prometheus.GaugeVec
}

// NewCollector creates a Collector with every metric at zero.
func NewCollector() *Collector {
	return &Collector{
		forestNodes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forest",
			Name:      "nodes",
			Help:      "Number of arena slots in the forest, including the constants",
		}),
		forestPages: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forest",
			Name:      "pages",
			Help:      "Number of per-variable node pages",
		}),
		forestSlots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forest",
			Name:      "page_slots",
			Help:      "Total slot count across all node pages",
		}),
		forestGen: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forest",
			Name:      "generation",
			Help:      "Number of compactions applied to the forest",
		}),
		uniqueLookups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "forest",
			Name:      "constructions",
			Help:      "Node constructions by outcome (hit, miss, inline)",
		}, []string{"outcome"}),
		cacheEntries: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "entries",
			Help:      "Memoized results per operation",
		}, []string{"operation"}),
		cacheLookups: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "lookups",
			Help:      "Memo lookups per operation and result (hit, miss)",
		}, []string{"operation", "result"}),
		basisSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grobner",
			Name:      "basis_size",
			Help:      "Number of polynomials in the last computed basis",
		}),
		basisIterations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grobner",
			Name:      "iterations",
			Help:      "Batches processed by the last basis completion",
		}),
		basisComplete: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grobner",
			Name:      "complete",
			Help:      "1 if the last basis completion emptied its pair queue, 0 otherwise",
		}),
		basisTruncated: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grobner",
			Name:      "truncated_pairs",
			Help:      "Critical pairs dropped by the sparsity bound in the last basis completion",
		}),
		reductions: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "grobner",
			Name:      "reductions",
			Help:      "Reduction steps of the last basis completion per strategy",
		}, []string{"strategy"}),
	}
}

func (m *Collector) collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.forestNodes,
		m.forestPages,
		m.forestSlots,
		m.forestGen,
		m.uniqueLookups,
		m.cacheEntries,
		m.cacheLookups,
		m.basisSize,
		m.basisIterations,
		m.basisComplete,
		m.basisTruncated,
		m.reductions,
	}
}

// Describe implements prometheus.Collector.
func (m *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, c := range m.collectors() {
		c.Describe(ch)
	}
}

// Collect implements prometheus.Collector.
func (m *Collector) Collect(ch chan<- prometheus.Metric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, c := range m.collectors() {
		c.Collect(ch)
	}
}

// ObserveForest records a forest snapshot.
func (m *Collector) ObserveForest(s goanf.ForestStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.forestNodes.Set(float64(s.Nodes))
	m.forestPages.Set(float64(s.Pages))
	m.forestSlots.Set(float64(s.PageSlots))
	m.forestGen.Set(float64(s.Generation))
	m.uniqueLookups.WithLabelValues("hit").Set(float64(s.UniqueHit))
	m.uniqueLookups.WithLabelValues("miss").Set(float64(s.UniqueAccess - s.UniqueHit))
	m.uniqueLookups.WithLabelValues("inline").Set(float64(s.InlineBuilt))
}

// ObserveCache records a cache snapshot.
func (m *Collector) ObserveCache(stats []goanf.OperationStats) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range stats {
		m.cacheEntries.WithLabelValues(s.Operation).Set(float64(s.Entries))
		m.cacheLookups.WithLabelValues(s.Operation, "hit").Set(float64(s.Hits))
		m.cacheLookups.WithLabelValues(s.Operation, "miss").Set(float64(s.Misses))
	}
}

// ObserveResult records the outcome of a basis completion.
func (m *Collector) ObserveResult(r goanf.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.basisSize.Set(float64(len(r.Basis)))
	m.basisIterations.Set(float64(r.Iterations))
	if r.Complete {
		m.basisComplete.Set(1)
	} else {
		m.basisComplete.Set(0)
	}

	m.basisTruncated.Set(float64(r.Truncated))

	m.reductions.Reset()
	for strategy, n := range r.Reductions {
		m.reductions.WithLabelValues(strategy).Set(float64(n))
	}
}

// Observe records forest, cache and result together.
func (m *Collector) Observe(f *goanf.Forest, c *goanf.Cache, r goanf.Result) {
	m.ObserveForest(f.Stats())
	m.ObserveCache(c.Stats())
	m.ObserveResult(r)
}
