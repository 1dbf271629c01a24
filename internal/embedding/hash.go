package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashEmbedder is a deterministic bag-of-words embedder based on feature
// hashing. It needs no network access, which makes it the offline default.
type HashEmbedder struct {
	dim int
}

// NewHashEmbedder returns a hashing embedder with dim buckets.
func NewHashEmbedder(dim int) *HashEmbedder {
	if dim <= 0 {
		dim = 256
	}
	return &HashEmbedder{dim: dim}
}

// Embed hashes each lowercased word and its character trigrams into the
// vector, then L2-normalizes it.
func (h *HashEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dim)
	for _, tok := range tokenize(text) {
		h.add(vec, tok, 1)
		r := []rune(tok)
		for i := 0; i+3 <= len(r); i++ {
			h.add(vec, "#"+string(r[i:i+3]), 0.5)
		}
	}

	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	if sum == 0 {
		return vec, nil
	}
	norm := float32(math.Sqrt(sum))
	for i := range vec {
		vec[i] /= norm
	}
	return vec, nil
}

// ModelID identifies the hashing scheme and its width.
func (h *HashEmbedder) ModelID() string { return "local-hash" }

func (h *HashEmbedder) add(vec []float32, feature string, weight float32) {
	f := fnv.New64a()
	f.Write([]byte(feature))
	sum := f.Sum64()
	idx := int(sum % uint64(h.dim))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[idx] += weight
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}
