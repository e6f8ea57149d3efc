package renderproposaldocument

import "proposal-workers/internal/workers/proposal/shared"

func GetInputSchema() map[string]interface{} {
	return shared.RequestSchema()
}

func GetOutputSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"filename", "contentType", "location", "bytes", "pages"},
		"properties": map[string]interface{}{
			"proposalId":  map[string]interface{}{"type": "string"},
			"filename":    map[string]interface{}{"type": "string", "pattern": `^restaurant-proposal-.+\.pdf$`},
			"contentType": map[string]interface{}{"type": "string", "const": "application/pdf"},
			"location":    map[string]interface{}{"type": "string", "minLength": 1},
			"bytes":       map[string]interface{}{"type": "integer", "minimum": 1},
			"pages":       map[string]interface{}{"type": "integer", "minimum": 1},
			"reused":      map[string]interface{}{"type": "boolean"},
		},
	}
}
