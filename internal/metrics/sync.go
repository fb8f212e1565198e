package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// SyncStats instruments sync runs per resource kind.
type SyncStats struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	full     *prometheus.CounterVec
}

func NewSyncStats(reg prometheus.Registerer) *SyncStats {
	s := &SyncStats{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sync_runs_total",
			Help: "Total number of per-kind sync runs",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Duration of per-kind sync runs in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		full: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "full_syncs_total",
			Help: "Total number of full-server sync runs",
		}, []string{"outcome"}),
	}
	reg.MustRegister(s.runs, s.duration, s.full)
	return s
}

// ObserveSync records one per-kind sync run.
func (s *SyncStats) ObserveSync(kind string, d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	s.runs.WithLabelValues(kind, outcome).Inc()
	s.duration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveFullSync records one orchestrator run.
func (s *SyncStats) ObserveFullSync(ok bool) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	s.full.WithLabelValues(outcome).Inc()
}
