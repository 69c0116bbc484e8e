package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors for feed ingestion and forecasting.
type Metrics struct {
	// Feed ingestion.
	FeedResults   *prometheus.CounterVec   // labels: feed, provenance={live,empty,fallback}
	FetchAttempts *prometheus.CounterVec   // labels: outcome={ok,retry,failed,circuit_open}
	FetchDuration *prometheus.HistogramVec // labels: outcome={ok,failed}

	// Forecast runs.
	ForecastRuns     *prometheus.CounterVec // labels: status={SUCCESS,ERROR}
	ForecastDuration prometheus.Histogram

	// Last published values.
	CurrentKp        prometheus.Gauge
	FlareProbability prometheus.Gauge
	CMEArrivalHours  prometheus.Gauge
	AuroraScore      prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FeedResults,
		m.FetchAttempts,
		m.FetchDuration,
		m.ForecastRuns,
		m.ForecastDuration,
		m.CurrentKp,
		m.FlareProbability,
		m.CMEArrivalHours,
		m.AuroraScore,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics so tests can build as
// many as they like without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedResults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "feed_results_total",
			Help:      "Normalized feed results by feed and provenance.",
		}, []string{"feed", "provenance"}),
		FetchAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "fetch_attempts_total",
			Help:      "Upstream HTTP attempts by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "spaceweather",
			Name:      "fetch_duration_seconds",
			Help:      "Wall time of a complete fetch including retries.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
		ForecastRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "spaceweather",
			Name:      "forecast_runs_total",
			Help:      "Forecast bundles produced by status.",
		}, []string{"status"}),
		ForecastDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "spaceweather",
			Name:      "forecast_duration_seconds",
			Help:      "Duration of a complete observe-derive-assemble cycle.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		CurrentKp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "current_kp",
			Help:      "Planetary Kp used in the last forecast.",
		}),
		FlareProbability: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "flare_probability_percent",
			Help:      "Last published solar-flare probability.",
		}),
		CMEArrivalHours: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "cme_arrival_hours",
			Help:      "Last published CME arrival estimate.",
		}),
		AuroraScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "spaceweather",
			Name:      "aurora_visibility_score",
			Help:      "Last published aurora visibility score.",
		}),
	}
}
