package calculateproposal

import "proposal-workers/internal/workers/proposal/shared"

func GetInputSchema() map[string]interface{} {
	return shared.RequestSchema()
}

func GetOutputSchema() map[string]interface{} {
	money := map[string]interface{}{"type": "integer"}
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"proposalId", "approach", "totals", "formatted", "lines"},
		"properties": map[string]interface{}{
			"proposalId":    map[string]interface{}{"type": "string", "minLength": 1},
			"approach":      map[string]interface{}{"type": "string", "enum": []interface{}{"nocode", "cms", "custom"}},
			"approachLabel": map[string]interface{}{"type": "string"},
			"rushDelivery":  map[string]interface{}{"type": "boolean"},
			"totals": map[string]interface{}{
				"type": "object",
				"required": []interface{}{
					"oneOffTotal", "recurringTotal", "effortDays",
					"estimatedWeeks", "contingencyAmount", "grandTotal",
				},
				"properties": map[string]interface{}{
					"oneOffTotal":       money,
					"recurringTotal":    money,
					"contingencyAmount": money,
					"grandTotal":        money,
					"effortDays":        map[string]interface{}{"type": "integer", "minimum": 0},
					"estimatedWeeks":    map[string]interface{}{"type": "integer", "minimum": 1},
				},
			},
			"formatted":  map[string]interface{}{"type": "object"},
			"lines":      map[string]interface{}{"type": "array"},
			"comparison": map[string]interface{}{"type": "array", "maxItems": 3},
			"unknownServices": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
		},
	}
}
