// Package metrics exposes Prometheus collectors for the party game server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// ActiveRooms tracks the number of live rooms in the registry.
	ActiveRooms = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partygames_active_rooms",
		Help: "Number of rooms currently held in the registry",
	})

	// ConnectedClients tracks open websocket connections.
	ConnectedClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "partygames_connected_clients",
		Help: "Number of open websocket connections",
	})

	// IntentsProcessed counts handled client intents by name, including
	// ones that were silently dropped.
	IntentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partygames_intents_processed_total",
		Help: "Client intents processed, by intent name",
	}, []string{"intent"})

	// GamesFinished counts games that reached a winner, by variant.
	GamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "partygames_games_finished_total",
		Help: "Games that ended with a winner, by variant",
	}, []string{"variant"})
)

// Handler exposes Prometheus metrics at /metrics
func Handler() http.Handler {
	return promhttp.Handler()
}
