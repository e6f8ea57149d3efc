package shared

import (
	"context"
	"time"

	"proposal-workers/internal/common/camunda"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/metrics"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// ExecuteFunc does a worker's job for one parsed request and returns the
// variables to complete the job with.
type ExecuteFunc func(ctx context.Context, job entities.Job, req *models.ProposalRequest) (interface{}, error)

// Runner drives one job through parse, execute and complete, recording
// metrics and a span along the way.
type Runner struct {
	taskType string
	timeout  time.Duration
	schema   *validation.Schema
	errors   *errors.ErrorHandler
	obs      *observability.Observability
	logger   logger.Logger
}

func NewRunner(taskType string, timeout time.Duration, schema *validation.Schema, obs *observability.Observability, log logger.Logger) *Runner {
	if schema == nil {
		schema = validation.MustCompile(RequestSchema())
	}
	return &Runner{
		taskType: taskType,
		timeout:  timeout,
		schema:   schema,
		errors:   errors.NewErrorHandler(log),
		obs:      obs,
		logger:   log,
	}
}

// Run handles a Zeebe job. Failures are reported to the broker as BPMN errors.
func (r *Runner) Run(client worker.JobClient, job entities.Job, exec ExecuteFunc) {
	timer := metrics.StartJob(r.taskType)

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	ctx, span := r.obs.StartSpan(ctx, r.taskType,
		attribute.Int64("jobKey", job.GetKey()),
		attribute.Int64("processInstanceKey", job.GetProcessInstanceKey()),
	)
	defer span.End()

	r.logger.Info("processing job", map[string]interface{}{
		"jobKey":             job.GetKey(),
		"processInstanceKey": job.GetProcessInstanceKey(),
	})

	start := time.Now()
	output, err := r.Process(ctx, job, exec)
	if err != nil {
		stdErr := r.errors.HandleJobError(ctx, client, job, err)
		span.RecordError(err)
		span.SetStatus(codes.Error, string(stdErr.Code))
		r.obs.RecordJobProcessed(ctx, r.taskType, "failed")
		r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "failed")
		timer.Done(string(stdErr.Code))
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		r.logger.Error("failed to complete job", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		span.RecordError(err)
		timer.Done("COMPLETE_FAILED")
		return
	}

	r.obs.RecordJobProcessed(ctx, r.taskType, "completed")
	r.obs.RecordJobDuration(ctx, r.taskType, time.Since(start), "completed")
	timer.Done("")
	r.logger.Info("job completed", map[string]interface{}{
		"jobKey":     job.GetKey(),
		"durationMs": time.Since(start).Milliseconds(),
	})
}

// Process parses the job variables and runs exec without talking to the broker.
func (r *Runner) Process(ctx context.Context, job entities.Job, exec ExecuteFunc) (interface{}, error) {
	req, err := ParseRequest(job.GetVariables(), r.schema)
	if err != nil {
		return nil, err
	}
	return exec(ctx, job, req)
}
