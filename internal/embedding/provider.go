// internal/embedding/provider.go

// Package embedding abstracts the sentence-embedding capability consumed by
// the domain classifier and the field-similarity step. Any provider with
// deterministic encoding for a given text satisfies the contract; the engine
// depends only on cosine similarity over the returned vectors.
package embedding

import (
	"context"
	"math"
)

// Provider produces a sentence embedding for a short text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine returns the cosine similarity of two vectors in [-1,1].
// Mismatched lengths or zero-norm inputs yield 0.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
