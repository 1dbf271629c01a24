package embedding

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultGeminiEmbeddingModel = "text-embedding-004"

// GeminiEmbedder uses the Gemini embed content API.
type GeminiEmbedder struct {
	client *genai.Client
	model  string
}

// NewGeminiEmbedder creates an embedder backed by the Gemini API.
func NewGeminiEmbedder(ctx context.Context, apiKey, model string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required for embeddings")
	}
	if model == "" {
		model = defaultGeminiEmbeddingModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &GeminiEmbedder{client: client, model: model}, nil
}

// Embed requests a single embedding.
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	resp, err := e.client.Models.EmbedContent(ctx, e.model, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings: %w", err)
	}
	if resp == nil || len(resp.Embeddings) == 0 || len(resp.Embeddings[0].Values) == 0 {
		return nil, errors.New("gemini embeddings: empty response")
	}
	return resp.Embeddings[0].Values, nil
}

// ModelID returns the embedding model name.
func (e *GeminiEmbedder) ModelID() string { return e.model }
