package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/almalink/almalink/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// EmbedResult describes the outcome of an embed operation
type EmbedResult struct {
	Updated    bool
	Dimensions int
	Hash       string
}

// Embed generates and stores the embedding for a user's profile. When the
// profile's semantic fingerprint matches the stored one, the expensive
// generation call is skipped and the cached vector is kept.
func (uc *MatchingUseCase) Embed(ctx context.Context, workspaceID string, userID types.UserID) (*EmbedResult, error) {
	if err := uc.resolveWorkspace(workspaceID); err != nil {
		return nil, err
	}
	if err := userID.Validate(); err != nil {
		return nil, goerr.Wrap(ErrInvalidRequest, "user_id is required")
	}

	profile, err := uc.repo.Profile().Get(ctx, workspaceID, userID)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, goerr.Wrap(ErrProfileNotFound, "profile not found",
				goerr.V(UserIDKey, userID),
				goerr.V(WorkspaceIDKey, workspaceID))
		}
		return nil, goerr.Wrap(err, "failed to load profile", goerr.V(UserIDKey, userID))
	}

	hash := profile.Fingerprint()

	stored, err := uc.repo.Embedding().GetFingerprint(ctx, workspaceID, userID)
	if err != nil && !errors.Is(err, interfaces.ErrNotFound) {
		return nil, goerr.Wrap(err, "failed to load stored fingerprint", goerr.V(UserIDKey, userID))
	}

	if stored == hash {
		logging.From(ctx).Debug("embedding up to date",
			"user_id", userID, "hash", hash)
		return &EmbedResult{Updated: false, Hash: hash}, nil
	}

	vector, err := uc.embedder.Generate(ctx, profile.SummaryText())
	if err != nil {
		return nil, classifyLLMError(err)
	}

	record := &model.EmbeddingRecord{
		UserID:          userID,
		Vector:          vector,
		FingerprintHash: hash,
		UpdatedAt:       time.Now().UTC(),
	}

	if err := uc.repo.Embedding().Upsert(ctx, workspaceID, record); err != nil {
		return nil, goerr.Wrap(err, "failed to store embedding", goerr.V(UserIDKey, userID))
	}

	logging.From(ctx).Info("embedding regenerated",
		"user_id", userID,
		"dimensions", len(vector),
		"hash", hash,
	)

	return &EmbedResult{
		Updated:    true,
		Dimensions: len(vector),
		Hash:       hash,
	}, nil
}
