package usecase

import (
	"context"
	"errors"
	"sort"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// MatchEntry is one ranked candidate joined with its profile metadata
type MatchEntry struct {
	UserID     types.UserID
	Similarity float64
	Profile    *model.Profile
}

// Match ranks every other stored embedding against the querying user's by
// cosine similarity and returns the top candidates joined with profile
// metadata.
//
// The role filter is applied after ranking and truncation, so a mentor
// query can return fewer than topK results, or none, even when mentors
// exist further down the ranked list. Filtering the pool before ranking
// would fix that, but would also change which matches existing clients see.
func (uc *MatchingUseCase) Match(ctx context.Context, workspaceID string, userID types.UserID, roleFilter types.RoleFilter) ([]*MatchEntry, error) {
	if err := uc.resolveWorkspace(workspaceID); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidRequest, "user_id is required")
	}
	if !roleFilter.IsValid() {
		return nil, goerr.Wrap(ErrInvalidRequest, "invalid target role",
			goerr.V("target_role", roleFilter))
	}

	self, err := uc.repo.Embedding().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrNoEmbedding, "no embedding for querying user",
				goerr.V(UserIDKey, userID),
				goerr.V(WorkspaceIDKey, workspaceID))
		}
		return nil, goerr.Wrap(err, "failed to load embedding", goerr.V(UserIDKey, userID))
	}

	candidates, err := uc.repo.Embedding().ListAllExcept(ctx, workspaceID, userID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list candidate embeddings")
	}

	ranked := make([]*MatchEntry, 0, len(candidates))
	for _, candidate := range candidates {
		if len(candidate.Vector) != len(self.Vector) {
			// Store invariant violation: all records must share one
			// dimension. Surface it loudly; similarity still computes
			// over the shorter prefix.
			logging.From(ctx).Warn("embedding dimension mismatch",
				"user_id", candidate.UserID,
				"self_dimensions", len(self.Vector),
				"candidate_dimensions", len(candidate.Vector),
			)
		}
		ranked = append(ranked, &MatchEntry{
			UserID:     candidate.UserID,
			Similarity: model.CosineSimilarity(self.Vector, candidate.Vector),
		})
	}

	// Stable: ties keep scan order
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Similarity > ranked[j].Similarity
	})

	if len(ranked) > uc.topK {
		ranked = ranked[:uc.topK]
	}

	// Join profile metadata in one batch read
	ids := make([]types.UserID, len(ranked))
	for i, entry := range ranked {
		ids[i] = entry.UserID
	}
	profiles, err := uc.repo.Profile().GetMany(ctx, workspaceID, ids)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to join candidate profiles")
	}
	byID := make(map[types.UserID]*model.Profile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}

	result := make([]*MatchEntry, 0, len(ranked))
	for _, entry := range ranked {
		profile, ok := byID[entry.UserID]
		if !ok {
			// Embedding without a profile: account deleted upstream
			logging.From(ctx).Debug("skipping candidate without profile", "user_id", entry.UserID)
			continue
		}
		if roleFilter == types.RoleFilterMentor && !profile.IsMentor {
			continue
		}
		entry.Profile = profile
		result = append(result, entry)
	}

	return result, nil
}
