package usecase

import "errors"

// Sentinel errors for the use case layer
var (
	// Validation errors
	ErrInvalidRequest = errors.New("invalid request")

	// Not found errors
	ErrProfileNotFound = errors.New("profile not found")

	// ErrNoEmbedding is returned when match is requested before embed.
	// The message intentionally contains "No embedding" so callers on the
	// generic JSON error channel can detect it and trigger embed first.
	ErrNoEmbedding = errors.New("No embedding found for user, generate embedding first")

	// Upstream LLM errors
	ErrRateLimited    = errors.New("upstream model is rate limited")
	ErrQuotaExhausted = errors.New("upstream model quota exhausted")
)

// Context keys for error values
const (
	UserIDKey      = "user_id"
	WorkspaceIDKey = "workspace_id"
)
