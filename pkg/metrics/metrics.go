// Package metrics provides Prometheus metrics for the skin-tone analysis
// and recommendation core.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "aifashion"

	// lowConfidenceThreshold marks analyses worth watching; low confidence
	// is data, not an error, but its rate is an operational signal.
	lowConfidenceThreshold = 0.5
)

var (
	analysesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "total",
		Help:      "Total number of skin-tone analyses performed.",
	})

	analysesByTone = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "by_tone_total",
		Help:      "Skin-tone analyses partitioned by resulting tone id.",
	}, []string{"tone"})

	analysesByMethod = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "by_method_total",
		Help:      "Skin-tone analyses partitioned by classification method.",
	}, []string{"method"})

	lowConfidenceTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "low_confidence_total",
		Help:      "Analyses whose overall confidence fell below the watch threshold.",
	})

	analyzeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Wall time of the full analysis pipeline.",
		Buckets:   prometheus.DefBuckets,
	})

	rankDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "ranking",
		Name:      "duration_seconds",
		Help:      "Wall time of one ranking request.",
		Buckets:   prometheus.DefBuckets,
	})

	candidatesRanked = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "ranking",
		Name:      "candidates_total",
		Help:      "Total number of candidates scored.",
	})
)

// RecordAnalysis records one completed analysis.
func RecordAnalysis(toneID, method string, confidence float64, elapsed time.Duration) {
	analysesTotal.Inc()
	analysesByTone.WithLabelValues(toneID).Inc()
	analysesByMethod.WithLabelValues(method).Inc()
	if confidence < lowConfidenceThreshold {
		lowConfidenceTotal.Inc()
	}
	analyzeDuration.Observe(elapsed.Seconds())
}

// RecordRanking records one completed ranking request.
func RecordRanking(candidates int, elapsed time.Duration) {
	candidatesRanked.Add(float64(candidates))
	rankDuration.Observe(elapsed.Seconds())
}
