package bubble

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// submissionsTotal counts phrase submissions.
	// Labels: result (ok, empty, storage_error)
	submissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wordbubble",
		Name:      "submissions_total",
		Help:      "Total phrase submissions by result",
	}, []string{"result"})

	// wordsProcessed counts words upserted and read back.
	wordsProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "wordbubble",
		Name:      "words_processed_total",
		Help:      "Total words processed across all submissions",
	})

	// submissionDuration measures one non-empty submission end to end.
	submissionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "wordbubble",
		Name:      "submission_duration_seconds",
		Help:      "Time to process one phrase submission",
		Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	})
)

const (
	resultOK           = "ok"
	resultEmpty        = "empty"
	resultStorageError = "storage_error"
)
