package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
)

func runEmbeddingRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Upsert and Get round-trip", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		record := &model.EmbeddingRecord{
			UserID:          "alice",
			Vector:          []float32{0.6, 0.8, 0, 0},
			FingerprintHash: "abc123",
			UpdatedAt:       time.Now().UTC(),
		}
		gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, record)).Required()

		retrieved, err := repo.Embedding().Get(ctx, wsID, "alice")
		gt.NoError(t, err).Required()

		gt.Value(t, retrieved.UserID).Equal(types.UserID("alice"))
		gt.Array(t, retrieved.Vector).Length(4)
		gt.Value(t, retrieved.Vector[0]).Equal(float32(0.6))
		gt.Value(t, retrieved.FingerprintHash).Equal("abc123")
		gt.Bool(t, retrieved.UpdatedAt.IsZero()).False()
	})

	t.Run("Upsert replaces instead of duplicating", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, &model.EmbeddingRecord{
			UserID:          "alice",
			Vector:          []float32{1, 0},
			FingerprintHash: "old",
		})).Required()
		gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, &model.EmbeddingRecord{
			UserID:          "alice",
			Vector:          []float32{0, 1},
			FingerprintHash: "new",
		})).Required()

		retrieved, err := repo.Embedding().Get(ctx, wsID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, retrieved.FingerprintHash).Equal("new")
		gt.Value(t, retrieved.Vector[0]).Equal(float32(0))
		gt.Value(t, retrieved.Vector[1]).Equal(float32(1))

		// Still exactly one record for the user
		all, err := repo.Embedding().ListAllExcept(ctx, wsID, "nobody")
		gt.NoError(t, err).Required()
		gt.Array(t, all).Length(1)
	})

	t.Run("Get returns ErrNotFound for missing user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Embedding().Get(ctx, testWSID(), "nobody")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("GetFingerprint returns stored hash", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, &model.EmbeddingRecord{
			UserID:          "alice",
			Vector:          []float32{1},
			FingerprintHash: "hash42",
		})).Required()

		hash, err := repo.Embedding().GetFingerprint(ctx, wsID, "alice")
		gt.NoError(t, err).Required()
		gt.Value(t, hash).Equal("hash42")
	})

	t.Run("GetFingerprint returns ErrNotFound for missing user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Embedding().GetFingerprint(ctx, testWSID(), "nobody")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("ListAllExcept excludes the given user", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		for _, id := range []types.UserID{"alice", "bob", "carol"} {
			gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, &model.EmbeddingRecord{
				UserID: id,
				Vector: []float32{1, 0},
			})).Required()
		}

		records, err := repo.Embedding().ListAllExcept(ctx, wsID, "bob")
		gt.NoError(t, err).Required()
		gt.Array(t, records).Length(2)
		for _, record := range records {
			gt.Value(t, record.UserID).NotEqual(types.UserID("bob"))
		}
	})

	t.Run("workspaces are isolated", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()
		wsID := testWSID()

		gt.NoError(t, repo.Embedding().Upsert(ctx, wsID, &model.EmbeddingRecord{
			UserID: "alice",
			Vector: []float32{1},
		})).Required()

		_, err := repo.Embedding().Get(ctx, testWSID(), "alice")
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})
}

func TestEmbeddingRepository_Memory(t *testing.T) {
	runEmbeddingRepositoryTest(t, newMemoryRepo)
}

func TestEmbeddingRepository_Firestore(t *testing.T) {
	runEmbeddingRepositoryTest(t, newFirestoreRepo)
}

func TestEmbeddingRepository_Postgres(t *testing.T) {
	runEmbeddingRepositoryTest(t, newPostgresRepo)
}
