package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// ReportJobMetrics records metadata for scheduled report dispatches.
type ReportJobMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewReportJobMetrics registers the report job metrics on the provided registerer.
func NewReportJobMetrics(reg prometheus.Registerer) *ReportJobMetrics {
	if reg == nil {
		return &ReportJobMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "report_job_duration_seconds",
		Help:    "Duration of report dispatch jobs in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"job"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_job_success",
		Help: "Successful report dispatches.",
	}, []string{"job"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_job_failure",
		Help: "Failed report dispatches.",
	}, []string{"job"})
	reg.MustRegister(duration, success, failure)
	return &ReportJobMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// ObserveDuration records the duration for the named job.
func (r *ReportJobMetrics) ObserveDuration(job string, duration time.Duration) {
	if r == nil || r.duration == nil {
		return
	}
	r.duration.WithLabelValues(normalizeLabel(job)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named job.
func (r *ReportJobMetrics) IncSuccess(job string) {
	if r == nil || r.success == nil {
		return
	}
	r.success.WithLabelValues(normalizeLabel(job)).Inc()
}

// IncFailure increments the failure counter for the named job.
func (r *ReportJobMetrics) IncFailure(job string) {
	if r == nil || r.failure == nil {
		return
	}
	r.failure.WithLabelValues(normalizeLabel(job)).Inc()
}

func normalizeLabel(job string) string {
	if job == "" {
		return "unknown"
	}
	return job
}
