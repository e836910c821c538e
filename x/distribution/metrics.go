package distribution

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	depositsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shine_distribution_deposits_total",
			Help: "Total number of transfers to the pot account by outcome",
		},
		[]string{"outcome"},
	)

	payoutsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shine_distribution_payouts_total",
			Help: "Total number of rewards paid out",
		},
	)
)
