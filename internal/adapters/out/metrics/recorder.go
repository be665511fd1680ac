// Package metrics counts domain events with Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"reconcile/internal/core/domain/model/session"
)

// PrometheusRecorder implements ports.MetricsRecorder backed by Prometheus
// counters registered on the given registerer.
type PrometheusRecorder struct {
	candidatesClassified *prometheus.CounterVec
	sessionsFinalized    *prometheus.CounterVec
	packagesDispatched   *prometheus.CounterVec
}

// NewPrometheusRecorder creates and registers the reconciliation counters.
func NewPrometheusRecorder(registerer prometheus.Registerer) *PrometheusRecorder {
	recorder := &PrometheusRecorder{
		candidatesClassified: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reconcile_candidates_classified_total",
			Help: "Classification outcomes produced by batch validation, per workflow and validity.",
		}, []string{"workflow", "validity"}),
		sessionsFinalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reconcile_sessions_finalized_total",
			Help: "Sessions accepted by the dispatch authority, per workflow.",
		}, []string{"workflow"}),
		packagesDispatched: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "reconcile_packages_dispatched_total",
			Help: "Packages carried by accepted dispatch submissions, per workflow.",
		}, []string{"workflow"}),
	}

	registerer.MustRegister(
		recorder.candidatesClassified,
		recorder.sessionsFinalized,
		recorder.packagesDispatched,
	)
	return recorder
}

// CandidateClassified counts one classification outcome.
func (r *PrometheusRecorder) CandidateClassified(workflow session.Workflow, validity string) {
	r.candidatesClassified.WithLabelValues(workflow.String(), validity).Inc()
}

// SessionFinalized counts one accepted submission and its package volume.
func (r *PrometheusRecorder) SessionFinalized(workflow session.Workflow, packageCount int) {
	r.sessionsFinalized.WithLabelValues(workflow.String()).Inc()
	r.packagesDispatched.WithLabelValues(workflow.String()).Add(float64(packageCount))
}
