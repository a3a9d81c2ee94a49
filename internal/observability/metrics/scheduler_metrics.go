package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SchedulerMetrics tracks cadence-scheduler activity.
type SchedulerMetrics struct {
	runs      prometheus.Counter
	userRuns  *prometheus.CounterVec
	userSkips *prometheus.CounterVec
}

func NewSchedulerMetrics() *SchedulerMetrics {
	return &SchedulerMetrics{
		runs: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "topiq",
			Subsystem: "scheduler",
			Name:      "runs_total",
			Help:      "Completed scheduler passes.",
		}),
		userRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topiq",
			Subsystem: "scheduler",
			Name:      "user_runs_total",
			Help:      "Per-user monitoring outcomes.",
		}, []string{"outcome"}),
		userSkips: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "topiq",
			Subsystem: "scheduler",
			Name:      "user_skips_total",
			Help:      "Users skipped per pass by reason.",
		}, []string{"reason"}),
	}
}

func (m *SchedulerMetrics) IncRun() {
	if m == nil {
		return
	}
	m.runs.Inc()
}

func (m *SchedulerMetrics) IncUserRun(outcome string) {
	if m == nil {
		return
	}
	m.userRuns.WithLabelValues(outcome).Inc()
}

func (m *SchedulerMetrics) IncUserSkip(reason string) {
	if m == nil {
		return
	}
	m.userSkips.WithLabelValues(reason).Inc()
}
