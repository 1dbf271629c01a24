package llm

import (
	"context"
	"encoding/json"
	"strings"
)

// Provider is the core abstraction for LLM interaction. The interviewer
// uses it to judge answers, write the next question and summarize the
// interview.
type Provider interface {
	// Generate sends a prompt to the LLM. When req.Schema is set the
	// provider asks for structured output and Response.Content holds
	// JSON validated against it.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes what to send to the LLM.
type Request struct {
	System string

	// Messages is the conversation history. Interview prompts are single
	// turn, so this usually contains one user message.
	Messages []Message

	// Schema, when set, switches the provider to its native structured
	// output mode. Without it Content is the raw reply text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name is kebab-case, e.g. "interview-feedback". Anthropic and OpenAI
	// both see it; it also keys the compiled schema cache.
	Name        string
	Description string
	Definition  map[string]any
}

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response holds the LLM's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Text returns the content as a trimmed string. Without a Schema the
// content is the model's raw reply.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return strings.TrimSpace(string(r.Content))
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finishResponse applies the checks every backend shares. A truncated
// structured reply is an error since it cannot parse; truncated text is
// still usable and is returned as is.
func finishResponse(req Request, content json.RawMessage, usage Usage, model, stop string) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      usage,
		Model:      model,
		StopReason: stop,
	}, nil
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so direct model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
