package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() map[string]interface{} {
	return map[string]interface{}{
		"type":     "object",
		"required": []interface{}{"approach"},
		"properties": map[string]interface{}{
			"approach": map[string]interface{}{
				"type": "string",
				"enum": []interface{}{"nocode", "cms", "custom"},
			},
			"selectedServices": map[string]interface{}{
				"type":  "array",
				"items": map[string]interface{}{"type": "string"},
			},
			"contingencyPercentage": map[string]interface{}{
				"type":    "integer",
				"minimum": 0,
			},
		},
	}
}

func TestSchema_Validate(t *testing.T) {
	s, err := Compile(testSchema())
	require.NoError(t, err)

	tests := []struct {
		name       string
		input      map[string]interface{}
		wantValid  bool
		wantFields []string
	}{
		{
			name:      "valid",
			input:     map[string]interface{}{"approach": "cms", "selectedServices": []interface{}{"discovery"}},
			wantValid: true,
		},
		{
			name:       "missing approach",
			input:      map[string]interface{}{},
			wantFields: []string{"approach"},
		},
		{
			name:       "bad enum and negative contingency",
			input:      map[string]interface{}{"approach": "wordpress", "contingencyPercentage": -5},
			wantFields: []string{"approach", "contingencyPercentage"},
		},
		{
			name:       "non string service id",
			input:      map[string]interface{}{"approach": "nocode", "selectedServices": []interface{}{"a", 3}},
			wantFields: []string{"selectedServices.1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := s.Validate(tt.input)
			assert.Equal(t, tt.wantValid, res.Valid)
			for _, f := range tt.wantFields {
				assert.True(t, res.HasErrors(f), "expected error on %s, got %v", f, res.GetErrorMessages())
			}
		})
	}
}

func TestGetErrorsForField(t *testing.T) {
	res := ValidateInput(map[string]interface{}{"approach": "x", "selectedServices": []interface{}{1}}, testSchema())
	assert.False(t, res.Valid)
	assert.Len(t, res.GetErrorsForField("selectedServices"), 1)
	assert.Len(t, res.GetErrorMessages(), 2)
}

func TestValidateInput_BadSchema(t *testing.T) {
	res := ValidateInput(map[string]interface{}{}, map[string]interface{}{"type": 12})
	assert.False(t, res.Valid)
	assert.Equal(t, "INVALID_SCHEMA", res.Errors[0].Code)
}

func TestValidateEmail(t *testing.T) {
	assert.True(t, ValidateEmail("sanne@example.nl"))
	assert.False(t, ValidateEmail("sanne@"))
	assert.False(t, ValidateEmail(""))
}
