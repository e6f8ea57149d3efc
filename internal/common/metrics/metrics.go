// internal/common/metrics/metrics.go
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Export outcome labels.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusReused  = "reused"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	ProposalCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_calculations_total",
			Help: "Total number of proposal totals computed, by approach",
		},
		[]string{"approach"},
	)

	ProposalExports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_exports_total",
			Help: "Total number of proposal exports, by kind and outcome",
		},
		[]string{"kind", "status"},
	)

	ProposalGrandTotal = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "proposal_grand_total_euros",
			Help:    "Grand total of computed proposals",
			Buckets: []float64{1000, 2500, 5000, 10000, 20000, 40000},
		},
		[]string{"approach"},
	)
)

// JobTimer tracks one job from start to completion.
type JobTimer struct {
	taskType string
	start    time.Time
}

// StartJob marks a job active and starts its timer.
func StartJob(taskType string) *JobTimer {
	WorkerJobsActive.WithLabelValues(taskType).Inc()
	return &JobTimer{taskType: taskType, start: time.Now()}
}

// Done records the duration and outcome. An empty errorCode counts as completed.
func (t *JobTimer) Done(errorCode string) {
	WorkerJobsActive.WithLabelValues(t.taskType).Dec()
	WorkerJobDuration.WithLabelValues(t.taskType).Observe(time.Since(t.start).Seconds())
	if errorCode == "" {
		WorkerJobsCompleted.WithLabelValues(t.taskType).Inc()
		return
	}
	WorkerJobsFailed.WithLabelValues(t.taskType, errorCode).Inc()
}

// RecordExport counts one export attempt.
func RecordExport(kind, status string) {
	ProposalExports.WithLabelValues(kind, status).Inc()
}

// RecordCalculation counts one computed proposal.
func RecordCalculation(approach string, grandTotal int) {
	ProposalCalculations.WithLabelValues(approach).Inc()
	ProposalGrandTotal.WithLabelValues(approach).Observe(float64(grandTotal))
}
