package praise

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shine_praise_posts_total",
			Help: "Total number of recorded posts",
		},
	)

	votesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shine_praise_votes_total",
			Help: "Total number of recorded votes",
		},
	)

	votesDuplicateTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shine_praise_votes_duplicate_total",
			Help: "Total number of repeated votes rejected",
		},
	)

	clearsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shine_praise_clears_total",
			Help: "Total number of ledger resets and purges",
		},
		[]string{"kind"},
	)
)
