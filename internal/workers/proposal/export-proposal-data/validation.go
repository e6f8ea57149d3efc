package exportproposaldata

import "proposal-workers/internal/workers/proposal/shared"

func GetInputSchema() map[string]interface{} {
	return shared.RequestSchema()
}

func GetOutputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"filename", "contentType", "location", "bytes"},
		"properties": map[string]interface{}{
			"proposalId":  map[string]interface{}{"type": "string"},
			"filename":    map[string]interface{}{"type": "string", "pattern": `^restaurant-proposal-data-.+\.json$`},
			"contentType": map[string]interface{}{"type": "string", "const": "application/json"},
			"location":    map[string]interface{}{"type": "string", "minLength": 1},
			"bytes":       map[string]interface{}{"type": "integer", "minimum": 1},
			"reused":      map[string]interface{}{"type": "boolean"},
		},
	}
}
