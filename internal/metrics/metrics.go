// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "mindjournal"

// Collector owns a private registry so tests can build as many as they like.
type Collector struct {
	registry *prometheus.Registry

	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
	JournalsCreated prometheus.Counter
	ProviderCalls   *prometheus.CounterVec
}

func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		JournalsCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "journals_created_total",
				Help:      "Total number of journal entries created",
			},
		),
		ProviderCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "provider_calls_total",
				Help:      "Calls to external providers by outcome",
			},
			[]string{"provider", "outcome"},
		),
	}

	c.registry.MustRegister(
		c.HTTPRequests,
		c.HTTPDuration,
		c.JournalsCreated,
		c.ProviderCalls,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ProviderCall records one call to provider by outcome, e.g. "success" or "rejected".
func (c *Collector) ProviderCall(provider, outcome string) {
	if c == nil {
		return
	}
	c.ProviderCalls.WithLabelValues(provider, outcome).Inc()
}

// JournalCreated counts a newly stored journal.
func (c *Collector) JournalCreated() {
	if c == nil {
		return
	}
	c.JournalsCreated.Inc()
}
