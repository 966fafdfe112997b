// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubmissionsTotal counts stored proof submissions by status
	SubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proofstreak_submissions_total",
		Help: "Stored proof submissions by status",
	}, []string{"status"})

	// GateRejectionsTotal counts submissions refused before upload, by reason
	GateRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proofstreak_gate_rejections_total",
		Help: "Submissions refused by the submission gate, by reason",
	}, []string{"reason"})

	// VerificationsTotal counts verifier calls by model and outcome
	VerificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "proofstreak_verifications_total",
		Help: "Photo verification attempts by model and outcome",
	}, []string{"model", "outcome"})

	VerificationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proofstreak_verification_duration_seconds",
		Help:    "Photo verification latency in seconds",
		Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 250ms to ~32s
	}, []string{"model"})

	RemindersSentTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proofstreak_reminders_sent_total",
		Help: "Reminder emails sent",
	})

	BreaksExpiredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "proofstreak_breaks_expired_total",
		Help: "Breaks ended automatically after reaching the plan limit",
	})

	// HTTPRequestDuration observes API latency by method and status code
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "proofstreak_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func Handler() http.Handler {
	return promhttp.Handler()
}
