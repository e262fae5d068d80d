package model

import (
	"math"
	"time"

	"github.com/almalink/almalink/pkg/domain/types"
)

// DefaultEmbeddingDimension is the vector dimension used when no explicit
// dimension is configured. All records in one store must share a dimension.
const DefaultEmbeddingDimension = 64

// EmbeddingRecord holds one embedding vector per user. The vector is
// L2-normalized at generation time unless its raw magnitude was zero, in
// which case the raw (all-zero) vector is kept as-is.
type EmbeddingRecord struct {
	UserID          types.UserID
	Vector          []float32
	FingerprintHash string
	UpdatedAt       time.Time
}

// NormalizeVector returns an L2-normalized copy of the vector. A vector with
// zero magnitude is returned unchanged (copied) rather than producing NaNs.
func NormalizeVector(v []float32) []float32 {
	out := make([]float32, len(v))
	copy(out, v)

	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return out
	}

	for i := range out {
		out[i] = float32(float64(out[i]) / norm)
	}
	return out
}

// CosineSimilarity computes the cosine similarity between two vectors using
// element-wise products up to the shorter of the two lengths. Lengths should
// always match per the store invariant; the min-length walk is defensive.
// If either magnitude is zero the similarity is defined as 0.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0
	}

	return dot / denom
}
