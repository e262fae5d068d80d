package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
)

type embeddingRepository struct {
	mu      sync.RWMutex
	records map[string]map[types.UserID]*model.EmbeddingRecord
}

func newEmbeddingRepository() *embeddingRepository {
	return &embeddingRepository{
		records: make(map[string]map[types.UserID]*model.EmbeddingRecord),
	}
}

func copyRecord(r *model.EmbeddingRecord) *model.EmbeddingRecord {
	copied := *r
	if r.Vector != nil {
		copied.Vector = make([]float32, len(r.Vector))
		copy(copied.Vector, r.Vector)
	}
	return &copied
}

func (r *embeddingRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.EmbeddingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.records[workspaceID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "embedding not found", goerr.V("user_id", userID))
	}

	record, exists := bucket[userID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "embedding not found", goerr.V("user_id", userID))
	}

	return copyRecord(record), nil
}

func (r *embeddingRepository) GetFingerprint(ctx context.Context, workspaceID string, userID types.UserID) (string, error) {
	record, err := r.Get(ctx, workspaceID, userID)
	if err != nil {
		return "", err
	}
	return record.FingerprintHash, nil
}

func (r *embeddingRepository) Upsert(ctx context.Context, workspaceID string, record *model.EmbeddingRecord) error {
	if err := record.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid embedding user ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[workspaceID]; !exists {
		r.records[workspaceID] = make(map[types.UserID]*model.EmbeddingRecord)
	}

	stored := copyRecord(record)
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}
	r.records[workspaceID][record.UserID] = stored
	return nil
}

func (r *embeddingRepository) ListAllExcept(ctx context.Context, workspaceID string, userID types.UserID) ([]*model.EmbeddingRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	bucket, exists := r.records[workspaceID]
	if !exists {
		return []*model.EmbeddingRecord{}, nil
	}

	result := make([]*model.EmbeddingRecord, 0, len(bucket))
	for id, record := range bucket {
		if id == userID {
			continue
		}
		result = append(result, copyRecord(record))
	}

	// Deterministic scan order so ranking ties behave the same across runs
	sort.Slice(result, func(i, j int) bool {
		return result[i].UserID < result[j].UserID
	})

	return result, nil
}
