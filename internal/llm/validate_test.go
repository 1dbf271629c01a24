package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verdictSchema is a trimmed hiring verdict used across provider tests.
func verdictSchema() *Schema {
	return &Schema{
		Name:        "test-verdict",
		Description: "Hiring verdict",
		Definition: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"grade": map[string]any{
					"type": "string",
					"enum": []string{"Junior", "Middle", "Senior"},
				},
				"confidence_score": map[string]any{
					"type":    "integer",
					"minimum": 1,
					"maximum": 100,
				},
				"knowledge_gaps": map[string]any{
					"type":     "array",
					"items":    map[string]any{"type": "string"},
					"maxItems": 5,
				},
			},
			"required": []string{"grade", "confidence_score"},
		},
	}
}

func TestValidateJSON(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		valid bool
	}{
		{"complete", `{"grade":"Senior","confidence_score":88,"knowledge_gaps":["sharding"]}`, true},
		{"optional omitted", `{"grade":"Junior","confidence_score":40}`, true},
		{"missing required", `{"grade":"Junior"}`, false},
		{"wrong type", `{"grade":"Junior","confidence_score":"high"}`, false},
		{"unknown grade", `{"grade":"Lead","confidence_score":50}`, false},
		{"below minimum", `{"grade":"Middle","confidence_score":0}`, false},
		{"too many gaps", `{"grade":"Middle","confidence_score":50,"knowledge_gaps":["a","b","c","d","e","f"]}`, false},
		{"malformed", `{"grade":`, false},
		{"empty", ``, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJSON(verdictSchema(), json.RawMessage(tt.raw))
			if tt.valid {
				require.NoError(t, err)
				return
			}
			var invalid *ErrInvalidResponse
			require.ErrorAs(t, err, &invalid)
			assert.Equal(t, tt.raw, string(invalid.Content))
		})
	}
}

func TestValidateJSON_NilSchema(t *testing.T) {
	assert.NoError(t, ValidateJSON(nil, json.RawMessage(`not json at all`)))
}

func TestValidateJSON_BrokenSchema(t *testing.T) {
	schema := &Schema{
		Name:       "test-broken",
		Definition: map[string]any{"type": 42},
	}
	err := ValidateJSON(schema, json.RawMessage(`{}`))
	var invalid *ErrInvalidResponse
	require.ErrorAs(t, err, &invalid)
	assert.Contains(t, err.Error(), "compile schema")
}
