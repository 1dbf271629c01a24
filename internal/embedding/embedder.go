// Package embedding turns text into fixed-dimension vectors for the
// knowledge store.
package embedding

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// Embedder produces a vector for a piece of text. Implementations must
// return vectors of one fixed dimension per model.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	ModelID() string
}

// Config selects and tunes the embedding backend.
type Config struct {
	// Provider is one of "local", "openai" or "gemini".
	Provider string
	Model    string
	APIKey   string
	BaseURL  string

	// Dimensions is used by the local hashing embedder only.
	Dimensions int

	// Concurrency bounds parallel requests during catalogue loads.
	Concurrency int

	// RequestsPerSecond paces remote calls. Zero disables pacing.
	RequestsPerSecond float64

	// CacheTTL controls how long query vectors are reused.
	CacheTTL time.Duration
}

// DefaultConfig returns a config that works offline.
func DefaultConfig() Config {
	return Config{
		Provider:    "local",
		Dimensions:  256,
		Concurrency: 4,
		CacheTTL:    30 * time.Minute,
	}
}

// BatchOptions derives the batch settings for this config.
func (c Config) BatchOptions() BatchOptions {
	opts := BatchOptions{Concurrency: c.Concurrency}
	if c.RequestsPerSecond > 0 {
		opts.Limiter = rate.NewLimiter(rate.Limit(c.RequestsPerSecond), 1)
	}
	return opts
}

// New creates the configured embedder wrapped in a TTL cache.
func New(ctx context.Context, cfg Config) (Embedder, error) {
	var (
		base Embedder
		err  error
	)
	switch cfg.Provider {
	case "", "local":
		base = NewHashEmbedder(cfg.Dimensions)
	case "openai":
		base, err = NewOpenAIEmbedder(cfg.APIKey, cfg.Model, cfg.BaseURL)
	case "gemini":
		base, err = NewGeminiEmbedder(ctx, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown embedding provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewCached(base, cfg.CacheTTL), nil
}
