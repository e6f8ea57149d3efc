// Package shared holds the job plumbing every proposal worker uses: request
// parsing, snapshot construction, the job runner and export publishing.
package shared

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"proposal-workers/internal/common/config"
	"proposal-workers/internal/common/errors"
	"proposal-workers/internal/common/logger"
	"proposal-workers/internal/common/validation"
	"proposal-workers/internal/models"
	"proposal-workers/internal/proposal/catalog"
	"proposal-workers/internal/proposal/formatter"
	"proposal-workers/internal/proposal/snapshot"
)

// RequestSchema is the JSON Schema for ProposalRequest job variables. Extra
// process variables are allowed.
func RequestSchema() map[string]interface{} {
	str := func(max int) map[string]interface{} {
		return map[string]interface{}{"type": "string", "maxLength": max}
	}
	return map[string]interface{}{
		"$schema":  "http://json-schema.org/draft-07/schema#",
		"type":     "object",
		"required": []interface{}{"selectedServices"},
		"properties": map[string]interface{}{
			"proposalId":     str(64),
			"clientName":     str(200),
			"restaurantName": str(200),
			"clientEmail":    str(320),
			"approach":       str(32),
			"selectedServices": map[string]interface{}{
				"type":     "array",
				"maxItems": 200,
				"items":    map[string]interface{}{"type": "string", "minLength": 1},
			},
			"rushDelivery": map[string]interface{}{"type": "boolean"},
			"contingencyPercentage": map[string]interface{}{
				"type":    "integer",
				"minimum": 0,
			},
		},
	}
}

// ParseRequest decodes job variables into a ProposalRequest after checking
// them against schema.
func ParseRequest(variables string, schema *validation.Schema) (*models.ProposalRequest, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal([]byte(variables), &raw); err != nil {
		return nil, errors.NewParseError(err)
	}
	if raw == nil {
		raw = map[string]interface{}{}
	}

	if res := schema.Validate(raw); !res.Valid {
		return nil, errors.NewInvalidProposalInputError(res.GetErrorMessages()...)
	}

	var req models.ProposalRequest
	if err := json.Unmarshal([]byte(variables), &req); err != nil {
		return nil, errors.NewParseError(err)
	}
	return &req, nil
}

// Dependencies is what a worker needs to turn a request into a snapshot.
type Dependencies struct {
	Catalog         *catalog.Catalog
	Formatter       *formatter.Formatter
	Contingency     config.ContingencyConfig
	DefaultApproach catalog.Approach
	Now             func() time.Time
}

// NewDependencies builds the catalog and formatter from configuration.
func NewDependencies(cfg config.ProposalConfig) (Dependencies, error) {
	cat := catalog.Default()
	if cfg.CatalogPath != "" {
		data, err := os.ReadFile(cfg.CatalogPath)
		if err != nil {
			return Dependencies{}, fmt.Errorf("read catalog %s: %w", cfg.CatalogPath, err)
		}
		if cat, err = catalog.Load(data); err != nil {
			return Dependencies{}, err
		}
	}

	f, err := formatter.New(cfg.Locale, cfg.Currency)
	if err != nil {
		return Dependencies{}, err
	}

	approach, err := catalog.ParseApproach(cfg.DefaultApproach)
	if err != nil {
		return Dependencies{}, err
	}

	return Dependencies{
		Catalog:         cat,
		Formatter:       f.WithDateLayout(cfg.DateLayout),
		Contingency:     cfg.Contingency,
		DefaultApproach: approach,
		Now:             time.Now,
	}, nil
}

// DefaultDependencies uses the embedded catalog, nl-NL euros and the
// 0..30 contingency range.
func DefaultDependencies() Dependencies {
	return Dependencies{
		Catalog:         catalog.Default(),
		Formatter:       formatter.Default(),
		Contingency:     config.ContingencyConfig{Default: 15, Min: 0, Max: 30, Step: 5},
		DefaultApproach: catalog.NoCode,
		Now:             time.Now,
	}
}

// Snapshot validates the request against the configured contingency range
// and builds an immutable snapshot. Unknown service ids are logged and
// returned.
func (d Dependencies) Snapshot(req *models.ProposalRequest, log logger.Logger) (snapshot.Snapshot, []string, error) {
	r := *req
	if r.Approach == "" {
		r.Approach = string(d.DefaultApproach)
	}
	if r.ContingencyPercentage == nil {
		pct := d.Contingency.Default
		r.ContingencyPercentage = &pct
	}
	if p := *r.ContingencyPercentage; p < d.Contingency.Min || p > d.Contingency.Max {
		return snapshot.Snapshot{}, nil, errors.NewInvalidProposalInputError(fmt.Sprintf(
			"contingencyPercentage %d outside %d..%d", p, d.Contingency.Min, d.Contingency.Max))
	}

	now := time.Now
	if d.Now != nil {
		now = d.Now
	}

	s, unknown, err := snapshot.FromRequest(d.Catalog, r, d.Formatter, now())
	if err != nil {
		return snapshot.Snapshot{}, nil, err
	}
	if len(unknown) > 0 {
		log.Warn("ignoring unknown service ids", map[string]interface{}{
			"proposalId":      s.ID,
			"unknownServices": unknown,
		})
	}
	return s, unknown, nil
}
