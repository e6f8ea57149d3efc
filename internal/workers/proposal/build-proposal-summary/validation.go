package buildproposalsummary

import (
	"proposal-workers/internal/export/summary"
	"proposal-workers/internal/workers/proposal/shared"
)

func GetInputSchema() map[string]interface{} {
	return shared.RequestSchema()
}

func GetOutputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"proposalId", "summary"},
		"properties": map[string]interface{}{
			"proposalId": map[string]interface{}{"type": "string", "minLength": 1},
			"summary":    map[string]interface{}{"type": "string", "pattern": "^" + summary.Title},
		},
	}
}
