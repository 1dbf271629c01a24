package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/interviewer/internal/store"
)

// NewProvider creates a Provider from configuration. Real providers are
// wrapped as timeout → retry → logging → base, so one deadline covers all
// attempts and every attempt is recorded.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *zap.Logger) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, eventRepo, logger)
	retried := WithRetry(logged, cfg.Retry)

	return WithTimeout(retried, cfg.Timeout), nil
}
