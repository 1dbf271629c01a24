package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIEmbedder uses the OpenAI embeddings endpoint.
type OpenAIEmbedder struct {
	client *openai.Client
	model  string
}

// NewOpenAIEmbedder creates an embedder for an OpenAI-compatible API.
func NewOpenAIEmbedder(apiKey, model, baseURL string) (*OpenAIEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("OpenAI API key is required for embeddings")
	}
	if model == "" {
		model = string(openai.SmallEmbedding3)
	}
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAIEmbedder{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Embed requests a single embedding.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("openai embeddings: %w", err)
	}
	if len(resp.Data) == 0 || len(resp.Data[0].Embedding) == 0 {
		return nil, errors.New("openai embeddings: empty response")
	}
	return resp.Data[0].Embedding, nil
}

// ModelID returns the embedding model name.
func (e *OpenAIEmbedder) ModelID() string { return e.model }
