package server

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "onchain_agent"

// Metrics owns its registry so several servers can coexist in one process.
type Metrics struct {
	registry  *prometheus.Registry
	requests  *prometheus.CounterVec
	duration  prometheus.Histogram
	snapshots *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "chat_requests_total",
			Help:      "Chat requests by HTTP status.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chat_duration_seconds",
			Help:      "Time spent answering a chat request.",
			Buckets:   []float64{0.5, 1, 2.5, 5, 10, 20, 40, 80},
		}),
		snapshots: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "wallet_snapshots_total",
			Help:      "Agent responses by whether a wallet snapshot was recovered.",
		}, []string{"found"}),
	}

	m.registry.MustRegister(
		m.requests,
		m.duration,
		m.snapshots,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) observeRequest(status int, seconds float64) {
	m.requests.WithLabelValues(strconv.Itoa(status)).Inc()
	m.duration.Observe(seconds)
}

func (m *Metrics) observeSnapshot(found bool) {
	m.snapshots.WithLabelValues(strconv.FormatBool(found)).Inc()
}
