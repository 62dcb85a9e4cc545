// Package metrics exposes the Prometheus instruments of the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PredictionsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipleague_predictions_submitted_total",
		Help: "Number of match tips created or updated.",
	})

	RankingsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipleague_rankings_submitted_total",
		Help: "Number of team rankings submitted.",
	})

	MatchSettlements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipleague_match_settlements_total",
		Help: "Number of committed match settlements.",
	})

	RankingSettlements = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tipleague_ranking_settlements_total",
		Help: "Number of committed ranking settlements.",
	})
)
