package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
)

type Metrics struct {
	registry *prometheus.Registry

	UpstreamRequests  *prometheus.CounterVec
	RefreshOutcomes   *prometheus.CounterVec
	SyncCycleDuration prometheus.Histogram
	MilestonesEmitted *prometheus.CounterVec
	EntityFailures    prometheus.Counter
	PlayersTracked    prometheus.Gauge
	MatchesStored     prometheus.Gauge
}

// New builds a Metrics with its own registry so parallel tests never
// trip the default registry's duplicate registration check.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		UpstreamRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaguetracker_upstream_requests_total",
			Help: "Riot API requests by endpoint and status.",
		}, []string{"endpoint", "status"}),
		RefreshOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaguetracker_refresh_requests_total",
			Help: "Refresh requests by outcome.",
		}, []string{"outcome"}),
		SyncCycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "leaguetracker_sync_cycle_duration_seconds",
			Help:    "Wall time of a full sync cycle.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
		MilestonesEmitted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "leaguetracker_milestones_emitted_total",
			Help: "Milestones recorded by kind.",
		}, []string{"kind"}),
		EntityFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "leaguetracker_entity_sync_failures_total",
			Help: "Roster entries that failed to sync.",
		}),
		PlayersTracked: factory.NewGauge(prometheus.GaugeOpts{
			Name: "leaguetracker_players_tracked",
			Help: "Players currently stored.",
		}),
		MatchesStored: factory.NewGauge(prometheus.GaugeOpts{
			Name: "leaguetracker_matches_stored",
			Help: "Matches currently stored.",
		}),
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

var Module = fx.Provide(New)
