// Package metrics records traversal statistics as Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeLabel = "outcome"
	setLabel     = "set"
	resultLabel  = "result"

	outcomeCompleted = "completed"
	outcomeSkipped   = "skipped"
	outcomeCanceled  = "canceled"

	resultOK    = "ok"
	resultError = "error"
)

// Prometheus implements ports.Metrics on its own registry.
type Prometheus struct {
	registry *prometheus.Registry

	traversals        *prometheus.CounterVec
	traversalDuration prometheus.Histogram
	resultTiles       *prometheus.GaugeVec
	headerFetchErrors prometheus.Counter
	contentLoads      *prometheus.CounterVec
	contentBytes      prometheus.Counter
	cacheEvictions    prometheus.Counter
}

// New creates the collectors and registers them on a fresh registry.
func New() *Prometheus {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Prometheus{
		registry: reg,
		traversals: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tilestream_traversals_total",
			Help: "The number of traversals by outcome.",
		}, []string{outcomeLabel}),
		traversalDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "tilestream_traversal_duration_seconds",
			Help:    "The time a completed traversal took.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		resultTiles: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "tilestream_result_tiles",
			Help: "The size of each set of the last completed traversal.",
		}, []string{setLabel}),
		headerFetchErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "tilestream_header_fetch_errors_total",
			Help: "The child headers that could not be fetched.",
		}),
		contentLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tilestream_content_loads_total",
			Help: "The content fetches by result.",
		}, []string{resultLabel}),
		contentBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "tilestream_content_bytes_total",
			Help: "The bytes of content loaded.",
		}),
		cacheEvictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "tilestream_cache_evictions_total",
			Help: "The tiles evicted from the recency cache.",
		}),
	}
}

// Registry returns the registry holding the collectors.
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile writes the current values in the text exposition format.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}

// TraversalCompleted records a finished traversal and the size of its result.
func (p *Prometheus) TraversalCompleted(duration time.Duration, selected, requested, empty int) {
	p.traversals.With(prometheus.Labels{outcomeLabel: outcomeCompleted}).Inc()
	p.traversalDuration.Observe(duration.Seconds())
	p.resultTiles.With(prometheus.Labels{setLabel: "selected"}).Set(float64(selected))
	p.resultTiles.With(prometheus.Labels{setLabel: "requested"}).Set(float64(requested))
	p.resultTiles.With(prometheus.Labels{setLabel: "empty"}).Set(float64(empty))
}

// TraversalSkipped records a traversal that reused the previous result.
func (p *Prometheus) TraversalSkipped() {
	p.traversals.With(prometheus.Labels{outcomeLabel: outcomeSkipped}).Inc()
}

// FrameCanceled records a traversal abandoned for a newer frame.
func (p *Prometheus) FrameCanceled() {
	p.traversals.With(prometheus.Labels{outcomeLabel: outcomeCanceled}).Inc()
}

// HeaderFetchFailed records a child header that could not be fetched.
func (p *Prometheus) HeaderFetchFailed() {
	p.headerFetchErrors.Inc()
}

// ContentLoaded records a finished content fetch.
func (p *Prometheus) ContentLoaded(bytes int, err error) {
	if err != nil {
		p.contentLoads.With(prometheus.Labels{resultLabel: resultError}).Inc()
		return
	}
	p.contentLoads.With(prometheus.Labels{resultLabel: resultOK}).Inc()
	p.contentBytes.Add(float64(bytes))
}

// CacheEvicted records tiles removed from the recency cache.
func (p *Prometheus) CacheEvicted(n int) {
	if n <= 0 {
		return
	}
	p.cacheEvictions.Add(float64(n))
}
