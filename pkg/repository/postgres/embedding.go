package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

type embeddingRepository struct {
	pool *pgxpool.Pool
}

func (r *embeddingRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.EmbeddingRecord, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT user_id, vector, fingerprint_hash, updated_at
		FROM embeddings
		WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, string(userID))

	record, err := scanEmbedding(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, goerr.Wrap(ErrNotFound, "embedding not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get embedding", goerr.V("user_id", userID))
	}

	return record, nil
}

func (r *embeddingRepository) GetFingerprint(ctx context.Context, workspaceID string, userID types.UserID) (string, error) {
	var hash string
	err := r.pool.QueryRow(ctx, `
		SELECT fingerprint_hash
		FROM embeddings
		WHERE workspace_id = $1 AND user_id = $2`,
		workspaceID, string(userID)).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", goerr.Wrap(ErrNotFound, "embedding not found", goerr.V("user_id", userID))
		}
		return "", goerr.Wrap(err, "failed to get fingerprint", goerr.V("user_id", userID))
	}

	return hash, nil
}

func (r *embeddingRepository) Upsert(ctx context.Context, workspaceID string, record *model.EmbeddingRecord) error {
	if err := record.UserID.Validate(); err != nil {
		return goerr.Wrap(err, "invalid embedding user ID")
	}

	updatedAt := record.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now().UTC()
	}

	_, err := r.pool.Exec(ctx, `
		INSERT INTO embeddings (workspace_id, user_id, vector, fingerprint_hash, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (workspace_id, user_id) DO UPDATE SET
			vector = EXCLUDED.vector,
			fingerprint_hash = EXCLUDED.fingerprint_hash,
			updated_at = EXCLUDED.updated_at`,
		workspaceID, string(record.UserID), record.Vector, record.FingerprintHash, updatedAt)
	if err != nil {
		return goerr.Wrap(err, "failed to upsert embedding", goerr.V("user_id", record.UserID))
	}

	return nil
}

func (r *embeddingRepository) ListAllExcept(ctx context.Context, workspaceID string, userID types.UserID) ([]*model.EmbeddingRecord, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT user_id, vector, fingerprint_hash, updated_at
		FROM embeddings
		WHERE workspace_id = $1 AND user_id <> $2
		ORDER BY user_id`,
		workspaceID, string(userID))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list embeddings")
	}
	defer rows.Close()

	records := make([]*model.EmbeddingRecord, 0)
	for rows.Next() {
		record, err := scanEmbedding(rows)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to scan embedding")
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to iterate embeddings")
	}

	return records, nil
}

func scanEmbedding(row pgx.Row) (*model.EmbeddingRecord, error) {
	var r model.EmbeddingRecord
	var userID string
	if err := row.Scan(&userID, &r.Vector, &r.FingerprintHash, &r.UpdatedAt); err != nil {
		return nil, err
	}
	r.UserID = types.UserID(userID)
	return &r, nil
}
