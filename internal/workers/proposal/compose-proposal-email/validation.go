package composeproposalemail

import "proposal-workers/internal/workers/proposal/shared"

// GetInputSchema is the shared request schema. clientEmail stays optional here
// so a blank address maps to CLIENT_EMAIL_REQUIRED instead of a schema error.
func GetInputSchema() map[string]interface{} {
	return shared.RequestSchema()
}

func GetOutputSchema() map[string]interface{} {
	str := map[string]interface{}{"type": "string", "minLength": 1}
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"to", "from", "subject", "body", "mailtoUrl", "copyText"},
		"properties": map[string]interface{}{
			"proposalId": map[string]interface{}{"type": "string"},
			"to":         str,
			"from":       str,
			"subject":    str,
			"body":       str,
			"mailtoUrl":  map[string]interface{}{"type": "string", "pattern": "^mailto:"},
			"copyText":   map[string]interface{}{"type": "string", "pattern": "^TO: "},
		},
	}
}
