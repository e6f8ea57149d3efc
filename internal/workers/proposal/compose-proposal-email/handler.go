package composeproposalemail

import (
	"context"
	"fmt"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/metrics"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/export"
	"proposal-workers/internal/export/mailcompose"
	"proposal-workers/internal/models"
	"proposal-workers/internal/workers/proposal/shared"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "compose-proposal-email"

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

	return &Handler{
		config: workerConfig,
		deps:   opts.Dependencies,
		runner: shared.NewRunner(TaskType, workerConfig.Timeout, opts.InputSchema, opts.Observability, log),
		logger: log,
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.runner.Run(client, job, h.execute)
}

func (h *Handler) execute(ctx context.Context, _ entities.Job, input *models.ProposalRequest) (interface{}, error) {
	return h.Execute(ctx, input)
}

// Execute composes the proposal mail. Nothing is sent: the caller opens
// MailtoURL or pastes CopyText.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	s, _, err := h.deps.Snapshot(input, h.logger)
	if err != nil {
		return nil, err
	}

	msg, err := mailcompose.Compose(s, h.config.Sender)
	if err != nil {
		metrics.RecordExport(string(export.KindMail), metrics.StatusFailure)
		return nil, err
	}
	if !validation.ValidateEmail(msg.To) {
		h.logger.Warn("client email does not look like an address", map[string]interface{}{
			"proposalId": s.ID,
			"to":         msg.To,
		})
	}

	metrics.RecordExport(string(export.KindMail), metrics.StatusSuccess)
	h.logger.Info("proposal mail composed", map[string]interface{}{
		"proposalId": s.ID,
		"to":         msg.To,
		"bodyLength": len(msg.Body),
	})

	return &Output{
		ProposalID: s.ID,
		To:         msg.To,
		From:       msg.From,
		Subject:    msg.Subject,
		Body:       msg.Body,
		MailtoURL:  msg.MailtoURL(),
		CopyText:   msg.CopyText(),
	}, nil
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
		if appConfig.Mail.SenderAddress != "" {
			cfg.Sender.Address = appConfig.Mail.SenderAddress
		}
		if appConfig.Mail.SenderName != "" {
			cfg.Sender.Name = appConfig.Mail.SenderName
		}
	}
	return cfg
}
