package calculateproposal

import (
	"context"
	"fmt"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/metrics"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/aggregator"
	"proposal-workers/internal/proposal/snapshot"
	"proposal-workers/internal/workers/proposal/shared"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "calculate-proposal"

type Handler struct {
	config *Config
	deps   shared.Dependencies
	runner *shared.Runner
	logger logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Dependencies  shared.Dependencies
	InputSchema   *validation.Schema
	Observability *observability.Observability
	Logger        logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	workerConfig := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := workerConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Dependencies.Catalog == nil || opts.Dependencies.Formatter == nil {
		return nil, fmt.Errorf("%s: catalog and formatter are required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	schema := opts.InputSchema
	if schema == nil {
		schema = validation.MustCompile(GetInputSchema())
	}

	return &Handler{
		config: workerConfig,
		deps:   opts.Dependencies,
		runner: shared.NewRunner(TaskType, workerConfig.Timeout, schema, opts.Observability, log),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, _ entities.Job, input *models.ProposalRequest) (interface{}, error) {
	return h.Execute(ctx, input)
}

// Execute computes the proposal totals for one request.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	s, unknown, err := h.deps.Snapshot(input, h.logger)
	if err != nil {
		return nil, err
	}

	out := &Output{
		ProposalID:      s.ID,
		Approach:        string(s.Approach),
		ApproachLabel:   s.ApproachLabel,
		RushDelivery:    s.Rush,
		Totals:          s.Totals,
		Formatted:       s.Formatted,
		Lines:           lines(s),
		UnknownServices: unknown,
	}
	if h.config.CompareApproaches {
		out.Comparison = aggregator.CompareApproaches(h.deps.Catalog, s.Inputs())
	}

	metrics.RecordCalculation(out.Approach, out.Totals.GrandTotal)
	h.logger.Debug("proposal calculated", map[string]interface{}{
		"proposalId":     out.ProposalID,
		"approach":       out.Approach,
		"grandTotal":     out.Totals.GrandTotal,
		"estimatedWeeks": out.Totals.EstimatedWeeks,
	})
	return out, nil
}

func lines(s snapshot.Snapshot) []snapshot.Line {
	out := make([]snapshot.Line, 0, len(s.SelectedIDs))
	for _, g := range s.Groups {
		out = append(out, g.Lines...)
	}
	return out
}

func (h *Handler) GetTaskType() string {
	return TaskType
}

func (h *Handler) IsEnabled() bool {
	return h.config.Enabled
}

func (h *Handler) GetConfig() *Config {
	return h.config
}

func createConfigFromAppConfig(appConfig *config.Config, customConfig *Config) *Config {
	if customConfig != nil {
		return customConfig
	}

	cfg := DefaultConfig()
	if appConfig != nil {
		if workerCfg, exists := appConfig.Workers[TaskType]; exists {
			cfg.Enabled = workerCfg.Enabled
			if workerCfg.MaxJobsActive > 0 {
				cfg.MaxJobsActive = workerCfg.MaxJobsActive
			}
			if workerCfg.Timeout > 0 {
				cfg.Timeout = time.Duration(workerCfg.Timeout) * time.Millisecond
			}
		}
	}
	return cfg
}
