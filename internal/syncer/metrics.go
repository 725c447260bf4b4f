package syncer

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// totalCommentsStored tracks new comments appended to the table.
	totalCommentsStored = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_comments_stored_total",
		Help: "The total number of new comments fetched and stored.",
	})
	// totalCommentsSkipped tracks summaries skipped because the docid was
	// already in the table.
	totalCommentsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "docketsync_comments_skipped_total",
		Help: "The total number of listing entries skipped as already known.",
	})
)
