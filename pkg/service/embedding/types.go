package embedding

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
)

// Service defines the interface for embedding generation from profile text
type Service interface {
	// Generate produces an L2-normalized embedding vector for the given
	// profile summary text.
	Generate(ctx context.Context, profileText string) ([]float32, error)
}

// ErrGenerationFailed is returned when the upstream completion call does not
// return a usable structured vector. The caller must not substitute a
// default vector.
var ErrGenerationFailed = goerr.New("embedding generation failed")

// llmResponse is the structured output from the LLM
type llmResponse struct {
	Embedding []float64 `json:"embedding"`
}
