package metrics

import "github.com/prometheus/client_golang/prometheus"

// SalesMetrics counts recorded and rejected sale attempts.
type SalesMetrics struct {
	recorded prometheus.Counter
	rejected *prometheus.CounterVec
}

// NewSalesMetrics registers the sales counters on the provided registerer.
func NewSalesMetrics(reg prometheus.Registerer) *SalesMetrics {
	if reg == nil {
		return &SalesMetrics{}
	}
	recorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "sales_recorded_total",
		Help: "Sales recorded successfully.",
	})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_rejected_total",
		Help: "Sale attempts rejected, by reason.",
	}, []string{"reason"})
	reg.MustRegister(recorded, rejected)
	return &SalesMetrics{recorded: recorded, rejected: rejected}
}

// IncRecorded increments the recorded sales counter.
func (s *SalesMetrics) IncRecorded() {
	if s == nil || s.recorded == nil {
		return
	}
	s.recorded.Inc()
}

// IncRejected increments the rejected counter with the given reason.
func (s *SalesMetrics) IncRejected(reason string) {
	if s == nil || s.rejected == nil {
		return
	}
	if reason == "" {
		reason = "unknown"
	}
	s.rejected.WithLabelValues(reason).Inc()
}
