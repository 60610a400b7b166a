// Package metrics defines the Prometheus collectors for the engine's
// query and mutation paths and exposes an HTTP handler for scraping.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	QueriesTotal   *prometheus.CounterVec
	QueryLatency   prometheus.Histogram
	MutationsTotal *prometheus.CounterVec
	LiveWords      prometheus.Gauge
	TrieNodes      prometheus.Gauge
}

// New creates and registers all collectors. Call it once per process.
func New() *Metrics {
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suggest_queries_total",
				Help: "Total prefix queries by result type (hit, empty).",
			},
			[]string{"result"},
		),
		QueryLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "suggest_query_latency_seconds",
				Help:    "Prefix query latency in seconds.",
				Buckets: []float64{0.000001, 0.000005, 0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005},
			},
		),
		MutationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "suggest_mutations_total",
				Help: "Total mutations by operation (insert, update, remove).",
			},
			[]string{"op"},
		),
		LiveWords: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "suggest_live_words",
				Help: "Number of live words in the dictionary.",
			},
		),
		TrieNodes: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "suggest_trie_nodes",
				Help: "Number of allocated trie nodes.",
			},
		),
	}

	prometheus.MustRegister(
		m.QueriesTotal,
		m.QueryLatency,
		m.MutationsTotal,
		m.LiveWords,
		m.TrieNodes,
	)

	return m
}

// ObserveQuery records one query with its latency and hit/empty result.
func (m *Metrics) ObserveQuery(results int, seconds float64) {
	if m == nil {
		return
	}
	result := "hit"
	if results == 0 {
		result = "empty"
	}
	m.QueriesTotal.WithLabelValues(result).Inc()
	m.QueryLatency.Observe(seconds)
}

// ObserveMutation records one mutation by operation name.
func (m *Metrics) ObserveMutation(op string) {
	if m == nil {
		return
	}
	m.MutationsTotal.WithLabelValues(op).Inc()
}

// SetEngineGauges updates the live word and trie node gauges from the
// engine's stats map.
func (m *Metrics) SetEngineGauges(stats map[string]int) {
	if m == nil {
		return
	}
	m.LiveWords.Set(float64(stats["liveWords"]))
	m.TrieNodes.Set(float64(stats["trieNodes"]))
}

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr. It blocks, so run it in a goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}
