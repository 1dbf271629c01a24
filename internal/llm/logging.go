package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an
// event and emits a structured log line for it.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
	logger    *zap.Logger
}

// WithLogging wraps a Provider with event logging. repo may be nil when
// requests should only be logged.
func WithLogging(p Provider, providerName string, repo store.EventRepo, logger *zap.Logger) Provider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo, logger: logger}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		SessionID:   SessionIDFrom(ctx),
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	fields := []zap.Field{
		zap.String("purpose", purpose),
		zap.String("model", data.Model),
		zap.Int64("latency_ms", latencyMs),
		zap.Int("input_tokens", data.InputTokens),
		zap.Int("output_tokens", data.OutputTokens),
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn("llm request failed", append(fields, zap.Error(err))...)
	} else {
		l.logger.Debug("llm request", fields...)
	}

	// Log the event but don't fail the request if logging fails.
	if l.eventRepo != nil {
		if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
			l.logger.Warn("failed to record llm request event", zap.Error(logErr))
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}
