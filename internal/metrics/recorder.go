package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder exposes the service's counters on a private registry so tests can
// build as many recorders as they need without collisions.
type Recorder struct {
	registry *prometheus.Registry

	leagueFetches   *prometheus.CounterVec
	leagueFetchTime *prometheus.HistogramVec
	refreshCycles   *prometheus.CounterVec
	refreshTime     prometheus.Histogram
	snapshotSize    prometheus.Gauge
	httpRequests    *prometheus.CounterVec
	httpLatency     *prometheus.HistogramVec
}

func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		leagueFetches: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scorestream_league_fetches_total",
			Help: "Scoreboard fetch attempts by league and outcome.",
		}, []string{"league", "outcome"}),
		leagueFetchTime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorestream_league_fetch_duration_seconds",
			Help:    "Latency of one league scoreboard fetch.",
			Buckets: prometheus.DefBuckets,
		}, []string{"league"}),
		refreshCycles: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scorestream_refresh_cycles_total",
			Help: "Completed refresh passes by outcome.",
		}, []string{"outcome"}),
		refreshTime: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "scorestream_refresh_cycle_duration_seconds",
			Help:    "Wall time of one merged refresh pass.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		snapshotSize: factory.NewGauge(prometheus.GaugeOpts{
			Name: "scorestream_snapshot_games",
			Help: "Games in the most recent merged snapshot.",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "scorestream_http_requests_total",
			Help: "Served HTTP requests by route and status class.",
		}, []string{"route", "status"}),
		httpLatency: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "scorestream_http_request_duration_seconds",
			Help:    "Latency of served HTTP requests.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

func (r *Recorder) ObserveLeagueFetch(league string, outcome string, elapsed time.Duration) {
	r.leagueFetches.WithLabelValues(league, outcome).Inc()
	r.leagueFetchTime.WithLabelValues(league).Observe(elapsed.Seconds())
}

func (r *Recorder) ObserveRefreshCycle(outcome string, elapsed time.Duration) {
	r.refreshCycles.WithLabelValues(outcome).Inc()
	r.refreshTime.Observe(elapsed.Seconds())
}

func (r *Recorder) SetSnapshotSize(games int) {
	r.snapshotSize.Set(float64(games))
}

func (r *Recorder) ObserveHTTPRequest(route string, status int, elapsed time.Duration) {
	r.httpRequests.WithLabelValues(route, statusClass(status)).Inc()
	r.httpLatency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
