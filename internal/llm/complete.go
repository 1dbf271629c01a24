package llm

import (
	"context"
	"errors"
)

// Prompt is a single-turn text completion.
type Prompt struct {
	System      string
	User        string
	Temperature float64
	MaxTokens   int
}

// Complete sends p as one user message and returns the trimmed reply.
// Every failure, including a nil provider and an empty reply, is returned
// as a *CapabilityError tagged with the purpose from ctx.
func Complete(ctx context.Context, provider Provider, p Prompt) (string, error) {
	purpose := PurposeFrom(ctx)
	if provider == nil {
		return "", &CapabilityError{Purpose: purpose, Err: errors.New("no provider configured")}
	}

	resp, err := provider.Generate(ctx, Request{
		System:      p.System,
		Messages:    []Message{{Role: RoleUser, Content: p.User}},
		MaxTokens:   p.MaxTokens,
		Temperature: p.Temperature,
	})
	if err != nil {
		return "", &CapabilityError{Purpose: purpose, Err: err}
	}

	text := resp.Text()
	if text == "" {
		return "", &CapabilityError{Purpose: purpose, Err: &ErrInvalidResponse{Err: errors.New("empty reply")}}
	}
	return text, nil
}
