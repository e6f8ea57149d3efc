package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestJobTimer(t *testing.T) {
	completed := testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("test-ok"))
	failed := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("test-fail", "INVALID_APPROACH"))

	StartJob("test-ok").Done("")
	timer := StartJob("test-fail")
	assert.Equal(t, float64(1), testutil.ToFloat64(WorkerJobsActive.WithLabelValues("test-fail")))
	timer.Done("INVALID_APPROACH")

	assert.Equal(t, completed+1, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("test-ok")))
	assert.Equal(t, failed+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("test-fail", "INVALID_APPROACH")))
	assert.Equal(t, float64(0), testutil.ToFloat64(WorkerJobsActive.WithLabelValues("test-fail")))
}

func TestRecordExport(t *testing.T) {
	before := testutil.ToFloat64(ProposalExports.WithLabelValues("document", StatusReused))
	RecordExport("document", StatusReused)
	assert.Equal(t, before+1, testutil.ToFloat64(ProposalExports.WithLabelValues("document", StatusReused)))
}

func TestRecordCalculation(t *testing.T) {
	before := testutil.ToFloat64(ProposalCalculations.WithLabelValues("cms"))
	RecordCalculation("cms", 8280)
	assert.Equal(t, before+1, testutil.ToFloat64(ProposalCalculations.WithLabelValues("cms")))
}
