package renderproposaldocument

import (
	"context"
	"fmt"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/export"
	"proposal-workers/internal/export/document"
	"proposal-workers/internal/models"
	"proposal-workers/internal/workers/proposal/shared"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
)

const TaskType = "render-proposal-document"

type Handler struct {
	config    *Config
	deps      shared.Dependencies
	publisher *shared.Publisher
	runner    *shared.Runner
	obs       *observability.Observability
	logger    logger.Logger
}

type HandlerOptions struct {
	AppConfig     *config.Config
	CustomConfig  *Config
	Dependencies  shared.Dependencies
	Publisher     *shared.Publisher
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
	if opts.Publisher == nil {
		return nil, fmt.Errorf("%s: publisher is required", TaskType)
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:    workerConfig,
		deps:      opts.Dependencies,
		publisher: opts.Publisher,
		runner:    shared.NewRunner(TaskType, workerConfig.Timeout, opts.InputSchema, opts.Observability, log),
		obs:       opts.Observability,
		logger:    log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, job entities.Job, input *models.ProposalRequest) (interface{}, error) {
	return h.Execute(ctx, job.GetKey(), input)
}

// Execute renders the proposal PDF for the job identified by jobKey and
// stores it.
func (h *Handler) Execute(ctx context.Context, jobKey int64, input *Input) (*Output, error) {
	s, _, err := h.deps.Snapshot(input, h.logger)
	if err != nil {
		return nil, err
	}

	return h.publisher.Publish(ctx, shared.ArtifactSpec{
		TaskType:    TaskType,
		JobKey:      jobKey,
		Kind:        export.KindDocument,
		ProposalID:  s.ID,
		Filename:    document.Filename(s),
		ContentType: document.ContentType,
	}, func() ([]byte, int, error) {
		_, span := h.obs.StartSpan(ctx, "document.render", attribute.Int("selectedItems", len(s.SelectedIDs)))
		defer span.End()

		data, pages, err := document.Render(s)
		if err != nil {
			return nil, 0, err
		}
		span.SetAttributes(attribute.Int("pages", pages))
		if h.config.MaxPages > 0 && pages > h.config.MaxPages {
			return nil, 0, errors.NewExportRenderFailedError(string(export.KindDocument),
				fmt.Errorf("document has %d pages, limit is %d", pages, h.config.MaxPages))
		}
		return data, pages, nil
	})
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
