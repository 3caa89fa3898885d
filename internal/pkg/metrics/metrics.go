package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	CacheHits          prometheus.Counter
	CacheMisses        prometheus.Counter
	CacheInvalidations prometheus.Counter
	CacheEntries       prometheus.Gauge
	CacheStalePuts     prometheus.Counter

	AdmissionDecisions *prometheus.CounterVec
	BookingConflicts   *prometheus.CounterVec
	Subscribers        prometheus.Gauge
}

func New(serviceName string) *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "availability_cache",
			Name:      "hits_total",
			Help:      "Availability cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "availability_cache",
			Name:      "misses_total",
			Help:      "Availability cache misses, expired entries included.",
		}),
		CacheInvalidations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "availability_cache",
			Name:      "invalidated_entries_total",
			Help:      "Entries dropped because a booking mutation touched their range.",
		}),
		CacheEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "availability_cache",
			Name:      "entries",
			Help:      "Entries currently held.",
		}),
		CacheStalePuts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "availability_cache",
			Name:      "stale_puts_total",
			Help:      "Refills discarded because a mutation invalidated their range while they were computed.",
		}),
		AdmissionDecisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "admission",
			Name:      "decisions_total",
			Help:      "Admission gate outcomes by action and result.",
		}, []string{"action", "result"}),
		BookingConflicts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Subsystem: "booking",
			Name:      "conflicts_total",
			Help:      "Booking writes rejected for a conflict, by stage.",
		}, []string{"stage"}),
		Subscribers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: serviceName,
			Subsystem: "broadcast",
			Name:      "subscribers",
			Help:      "Live availability subscriptions.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequests,
		m.HTTPDuration,
		m.CacheHits,
		m.CacheMisses,
		m.CacheInvalidations,
		m.CacheEntries,
		m.CacheStalePuts,
		m.AdmissionDecisions,
		m.BookingConflicts,
		m.Subscribers,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
