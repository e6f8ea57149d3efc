package shared

import (
	"context"

	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/metrics"
	"proposal-workers/internal/export"
	"proposal-workers/internal/export/storage"
	"proposal-workers/internal/models"
)

// RenderFunc produces an artifact's bytes and its page count, zero when
// pages do not apply.
type RenderFunc func() (data []byte, pages int, err error)

// Publisher stores rendered artifacts once per job.
type Publisher struct {
	sink   storage.Sink
	ledger storage.Ledger
	logger logger.Logger
}

func NewPublisher(sink storage.Sink, ledger storage.Ledger, log logger.Logger) *Publisher {
	if ledger == nil {
		ledger = storage.NopLedger{}
	}
	return &Publisher{sink: sink, ledger: ledger, logger: log}
}

// ArtifactSpec names what is being published.
type ArtifactSpec struct {
	TaskType    string
	JobKey      int64
	Kind        export.Kind
	ProposalID  string
	Filename    string
	ContentType string
}

// Publish returns the artifact already recorded for this job if there is one.
// Otherwise it renders, stores and records a new one. Ledger failures are
// logged and do not fail the export.
func (p *Publisher) Publish(ctx context.Context, spec ArtifactSpec, render RenderFunc) (*models.ExportArtifact, error) {
	fields := map[string]interface{}{
		"jobKey":     spec.JobKey,
		"kind":       string(spec.Kind),
		"proposalId": spec.ProposalID,
	}

	prior, err := p.ledger.Lookup(ctx, spec.TaskType, spec.JobKey)
	if err != nil {
		p.logger.Warn("export ledger unavailable, continuing without dedupe", withErr(fields, err))
	}
	if prior != nil {
		prior.Reused = true
		metrics.RecordExport(string(spec.Kind), metrics.StatusReused)
		p.logger.Info("returning previously exported artifact", withErr(fields, nil))
		return prior, nil
	}

	data, pages, err := render()
	if err != nil {
		metrics.RecordExport(string(spec.Kind), metrics.StatusFailure)
		if _, ok := errors.AsStandardError(err); ok {
			return nil, err
		}
		return nil, errors.NewExportRenderFailedError(string(spec.Kind), err)
	}

	location, err := p.sink.Put(ctx, spec.Filename, spec.ContentType, data)
	if err != nil {
		metrics.RecordExport(string(spec.Kind), metrics.StatusFailure)
		return nil, err
	}

	artifact := &models.ExportArtifact{
		ProposalID:  spec.ProposalID,
		Filename:    spec.Filename,
		ContentType: spec.ContentType,
		Location:    location,
		Bytes:       len(data),
		Pages:       pages,
	}
	if err := p.ledger.Record(ctx, spec.TaskType, spec.JobKey, *artifact); err != nil {
		p.logger.Warn("failed to record export in ledger", withErr(fields, err))
	}

	metrics.RecordExport(string(spec.Kind), metrics.StatusSuccess)
	p.logger.Info("export stored", map[string]interface{}{
		"jobKey":   spec.JobKey,
		"kind":     string(spec.Kind),
		"location": location,
		"bytes":    len(data),
	})
	return artifact, nil
}

func withErr(fields map[string]interface{}, err error) map[string]interface{} {
	out := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		out[k] = v
	}
	if err != nil {
		out["error"] = err.Error()
	}
	return out
}
