package interfaces

import (
	"context"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
)

// ProfileRepository defines the interface for Profile data persistence.
// All operations are scoped by workspace ID.
type ProfileRepository interface {
	// Put creates or replaces a profile
	Put(ctx context.Context, workspaceID string, profile *model.Profile) error

	// Get retrieves a profile by user ID
	Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.Profile, error)

	// GetMany retrieves profiles for the given user IDs. Missing users are
	// omitted from the result rather than reported as an error.
	GetMany(ctx context.Context, workspaceID string, userIDs []types.UserID) ([]*model.Profile, error)

	// List retrieves all profiles in the workspace
	List(ctx context.Context, workspaceID string) ([]*model.Profile, error)

	// ListMoreExperienced retrieves up to limit profiles whose experience
	// strictly exceeds moreThanYears, ordered ascending by experience
	// (closest-more-senior first).
	ListMoreExperienced(ctx context.Context, workspaceID string, moreThanYears int, limit int) ([]*model.Profile, error)
}
