package interfaces

import (
	"context"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
)

// EmbeddingRepository defines the interface for embedding persistence.
// The store enforces at most one record per user per workspace.
type EmbeddingRepository interface {
	// Get retrieves the embedding record for a user
	Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.EmbeddingRecord, error)

	// GetFingerprint retrieves only the stored fingerprint hash for a user
	GetFingerprint(ctx context.Context, workspaceID string, userID types.UserID) (string, error)

	// Upsert atomically creates or replaces the record for record.UserID.
	// A second upsert for the same user replaces vector, hash, and
	// timestamp rather than creating a duplicate row.
	Upsert(ctx context.Context, workspaceID string, record *model.EmbeddingRecord) error

	// ListAllExcept retrieves every embedding record in the workspace
	// except the given user's. Full scan, no pagination.
	ListAllExcept(ctx context.Context, workspaceID string, userID types.UserID) ([]*model.EmbeddingRecord, error)
}
