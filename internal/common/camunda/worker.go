// internal/common/camunda/worker.go
package camunda

import (
	"context"
	"fmt"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/logger"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
)

// JobHandler is implemented by every proposal worker.
type JobHandler interface {
	Handle(client worker.JobClient, job entities.Job)
	GetTaskType() string
}

type CamundaWorker struct {
	client   zbc.Client
	handler  JobHandler
	cfg      config.WorkerConfig
	worker   worker.JobWorker
	logger   logger.Logger
	taskType string
}

func NewWorker(client zbc.Client, handler JobHandler, cfg config.WorkerConfig, log logger.Logger) *CamundaWorker {
	return &CamundaWorker{
		client:   client,
		handler:  handler,
		cfg:      cfg,
		logger:   log.WithFields(map[string]interface{}{"taskType": handler.GetTaskType()}),
		taskType: handler.GetTaskType(),
	}
}

// Start opens the job worker. Calling it twice is a no-op.
func (w *CamundaWorker) Start() {
	if w.worker != nil {
		return
	}
	timeout := time.Duration(w.cfg.Timeout) * time.Millisecond

	w.worker = w.client.NewJobWorker().
		JobType(w.taskType).
		Handler(w.handler.Handle).
		MaxJobsActive(w.cfg.MaxJobsActive).
		Timeout(timeout).
		Name(fmt.Sprintf("%s-worker", w.taskType)).
		Open()

	w.logger.Info("worker started", map[string]interface{}{
		"maxJobsActive": w.cfg.MaxJobsActive,
		"timeout":       timeout.String(),
	})
}

func (w *CamundaWorker) Stop() {
	if w.worker == nil {
		return
	}
	w.logger.Info("stopping worker", nil)
	w.worker.Close()
	w.worker.AwaitClose()
	w.worker = nil
}

// CompleteJob completes the job with output as its variables.
func CompleteJob(ctx context.Context, client worker.JobClient, job entities.Job, output interface{}) error {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		return fmt.Errorf("build complete command: %w", err)
	}
	if _, err := cmd.Send(ctx); err != nil {
		return fmt.Errorf("send complete command: %w", err)
	}
	return nil
}
