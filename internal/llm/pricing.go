package llm

import (
	"regexp"
	"strings"
)

// ModelCost holds USD pricing per million tokens.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
}

// Cost calculates the total USD cost for the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// dateSuffix matches snapshot suffixes such as "-20250929" or "-2024-08-06".
var dateSuffix = regexp.MustCompile(`-(\d{8}|\d{4}-\d{2}-\d{2})$`)

// LookupCost returns the pricing for a model ID, or nil if unknown.
// OpenRouter slugs ("anthropic/claude-haiku-4.5") and dated snapshots
// resolve to their base model.
func LookupCost(modelID string) *ModelCost {
	id := strings.ToLower(strings.TrimSpace(modelID))
	if i := strings.LastIndex(id, "/"); i >= 0 {
		id = id[i+1:]
	}
	candidates := []string{id, dateSuffix.ReplaceAllString(id, ""), strings.ReplaceAll(id, ".", "-")}
	for _, c := range candidates {
		if cost, ok := modelCosts[c]; ok {
			return &cost
		}
	}
	return nil
}

// modelCosts covers the models the interviewer is configured with by
// default and their close siblings. Prices from models.dev, 2026-02.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-haiku-4-5":  {1, 5},
	"claude-sonnet-4-5": {3, 15},
	"claude-sonnet-4-0": {3, 15},
	"claude-opus-4-5":   {5, 25},
	"claude-opus-4-1":   {15, 75},
	"claude-3-5-haiku":  {0.8, 4},

	// OpenAI
	"gpt-4.1":      {2, 8},
	"gpt-4.1-mini": {0.4, 1.6},
	"gpt-4.1-nano": {0.1, 0.4},
	"gpt-4o":       {2.5, 10},
	"gpt-4o-mini":  {0.15, 0.6},
	"gpt-5":        {1.25, 10},
	"gpt-5-mini":   {0.25, 2},
	"gpt-5-nano":   {0.05, 0.4},
	"o4-mini":      {1.1, 4.4},

	// Google
	"gemini-2.0-flash":      {0.1, 0.4},
	"gemini-2.5-flash":      {0.3, 2.5},
	"gemini-2.5-flash-lite": {0.1, 0.4},
	"gemini-2.5-pro":        {1.25, 10},
}
