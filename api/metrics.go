package api

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	rater "github.com/ohdongsik/contents-rate"
	"github.com/ohdongsik/contents-rate/models"
)

var (
	evaluationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contents_rate_evaluations_total",
		Help: "Total number of evaluations by content type",
	}, []string{"content_type"})

	evaluationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "contents_rate_evaluation_duration_seconds",
		Help:    "Time spent producing one evaluation report, fetch included",
		Buckets: prometheus.DefBuckets,
	})

	fetchFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "contents_rate_fetch_failures_total",
		Help: "Total number of evaluations that ran in degraded mode after a fetch failure",
	})
)

// recordEvaluation updates the metrics for one finished report. A report
// only counts as degraded when the fetch gave up entirely; attempt notes
// from a retried-then-successful fetch do not.
func recordEvaluation(contentType string, report *models.EvaluationReport) {
	evaluationsTotal.WithLabelValues(contentType).Inc()
	evaluationDuration.Observe(report.ProcessingTime)
	if n := len(report.Notes); n > 0 && report.Notes[n-1] == rater.FetchFailedNote {
		fetchFailuresTotal.Inc()
	}
}
