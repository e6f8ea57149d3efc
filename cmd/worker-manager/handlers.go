package main

import (
	"fmt"

	"proposal-workers/internal/common/camunda"
	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/observability"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/workers/proposal/shared"
	"proposal-workers/pkg/registry"

	bps "proposal-workers/internal/workers/proposal/build-proposal-summary"
	cp "proposal-workers/internal/workers/proposal/calculate-proposal"
	cpe "proposal-workers/internal/workers/proposal/compose-proposal-email"
	epd "proposal-workers/internal/workers/proposal/export-proposal-data"
	rpd "proposal-workers/internal/workers/proposal/render-proposal-document"
)

type workerHandler interface {
	camunda.JobHandler
	IsEnabled() bool
}

type handlerEnv struct {
	cfg       *config.Config
	deps      shared.Dependencies
	registry  *registry.ActivityRegistry
	publisher *shared.Publisher
	obs       *observability.Observability
	logger    logger.Logger
}

// inputSchema returns the registry's schema for taskType, or nil to let the
// handler use its built-in one.
func (e handlerEnv) inputSchema(taskType string) (*validation.Schema, error) {
	return e.registry.InputSchema(taskType)
}

func buildHandlers(env handlerEnv) ([]workerHandler, error) {
	var handlers []workerHandler

	// Calculate Proposal
	schema, err := env.inputSchema(cp.TaskType)
	if err != nil {
		return nil, err
	}
	calc, err := cp.NewHandler(cp.HandlerOptions{
		AppConfig:     env.cfg,
		Dependencies:  env.deps,
		InputSchema:   schema,
		Observability: env.obs,
		Logger:        env.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", cp.TaskType, err)
	}
	handlers = append(handlers, calc)

	// Compose Proposal Email
	if schema, err = env.inputSchema(cpe.TaskType); err != nil {
		return nil, err
	}
	mail, err := cpe.NewHandler(cpe.HandlerOptions{
		AppConfig:     env.cfg,
		Dependencies:  env.deps,
		InputSchema:   schema,
		Observability: env.obs,
		Logger:        env.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", cpe.TaskType, err)
	}
	handlers = append(handlers, mail)

	// Export Proposal Data
	if schema, err = env.inputSchema(epd.TaskType); err != nil {
		return nil, err
	}
	data, err := epd.NewHandler(epd.HandlerOptions{
		AppConfig:     env.cfg,
		Dependencies:  env.deps,
		Publisher:     env.publisher,
		InputSchema:   schema,
		Observability: env.obs,
		Logger:        env.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", epd.TaskType, err)
	}
	handlers = append(handlers, data)

	// Render Proposal Document
	if schema, err = env.inputSchema(rpd.TaskType); err != nil {
		return nil, err
	}
	doc, err := rpd.NewHandler(rpd.HandlerOptions{
		AppConfig:     env.cfg,
		Dependencies:  env.deps,
		Publisher:     env.publisher,
		InputSchema:   schema,
		Observability: env.obs,
		Logger:        env.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", rpd.TaskType, err)
	}
	handlers = append(handlers, doc)

	// Build Proposal Summary
	if schema, err = env.inputSchema(bps.TaskType); err != nil {
		return nil, err
	}
	sum, err := bps.NewHandler(bps.HandlerOptions{
		AppConfig:     env.cfg,
		Dependencies:  env.deps,
		InputSchema:   schema,
		Observability: env.obs,
		Logger:        env.logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create %s handler: %w", bps.TaskType, err)
	}
	handlers = append(handlers, sum)

	return handlers, nil
}
