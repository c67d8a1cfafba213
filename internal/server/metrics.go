package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics are the host's Prometheus collectors, registered on a private
// registry so multiple hosts can coexist in one process.
type Metrics struct {
	registry *prometheus.Registry

	HandsStarted        prometheus.Counter
	Actions             *prometheus.CounterVec
	Timeouts            prometheus.Counter
	ProtocolErrors      *prometheus.CounterVec
	ConnectedBots       prometheus.Gauge
	ConnectedSpectators prometheus.Gauge
}

// NewMetrics builds and registers the host's collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HandsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokerarena",
			Name:      "hands_started_total",
			Help:      "Hands dealt since startup.",
		}),
		Actions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokerarena",
			Name:      "actions_total",
			Help:      "Actions applied to the engine, by action type.",
		}, []string{"action"}),
		Timeouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pokerarena",
			Name:      "move_timeouts_total",
			Help:      "Turns resolved by the decision clock instead of the seat.",
		}),
		ProtocolErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pokerarena",
			Name:      "protocol_errors_total",
			Help:      "Error frames sent to clients, by error code.",
		}, []string{"code"}),
		ConnectedBots: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pokerarena",
			Name:      "connected_bots",
			Help:      "Bot connections currently bound to seats.",
		}),
		ConnectedSpectators: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "pokerarena",
			Name:      "connected_spectators",
			Help:      "Spectator and operator connections.",
		}),
	}

	m.registry.MustRegister(
		m.HandsStarted,
		m.Actions,
		m.Timeouts,
		m.ProtocolErrors,
		m.ConnectedBots,
		m.ConnectedSpectators,
	)
	return m
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
