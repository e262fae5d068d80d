package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/almalink/almalink/pkg/domain/model"
	"github.com/almalink/almalink/pkg/domain/types"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// embeddingDoc is the Firestore document representation of
// model.EmbeddingRecord. The vector is stored as firestore.Vector32 so the
// vector index created by the migrate command applies to it.
type embeddingDoc struct {
	UserID          string             `firestore:"user_id"`
	Vector          firestore.Vector32 `firestore:"vector"`
	FingerprintHash string             `firestore:"fingerprint_hash"`
	UpdatedAt       time.Time          `firestore:"updated_at"`
}

func toEmbeddingDoc(r *model.EmbeddingRecord) *embeddingDoc {
	return &embeddingDoc{
		UserID:          string(r.UserID),
		Vector:          firestore.Vector32(r.Vector),
		FingerprintHash: r.FingerprintHash,
		UpdatedAt:       r.UpdatedAt,
	}
}

func fromEmbeddingDoc(d *embeddingDoc) *model.EmbeddingRecord {
	return &model.EmbeddingRecord{
		UserID:          types.UserID(d.UserID),
		Vector:          []float32(d.Vector),
		FingerprintHash: d.FingerprintHash,
		UpdatedAt:       d.UpdatedAt,
	}
}

type embeddingRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newEmbeddingRepository(client *firestore.Client) *embeddingRepository {
	return &embeddingRepository{client: client}
}

// embeddingsCollection returns the subcollection path:
// workspaces/{workspaceID}/embeddings
func (r *embeddingRepository) embeddingsCollection(workspaceID string) *firestore.CollectionRef {
	return r.client.Collection(r.collectionPrefix+"workspaces").Doc(workspaceID).
		Collection("embeddings")
}

func (r *embeddingRepository) Get(ctx context.Context, workspaceID string, userID types.UserID) (*model.EmbeddingRecord, error) {
	doc, err := r.embeddingsCollection(workspaceID).Doc(string(userID)).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "embedding not found", goerr.V("user_id", userID))
		}
		return nil, goerr.Wrap(err, "failed to get embedding", goerr.V("user_id", userID))
	}

	var d embeddingDoc
	if err := doc.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal embedding", goerr.V("user_id", userID))
	}

	return fromEmbeddingDoc(&d), nil
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

	stored := *record
	if stored.UpdatedAt.IsZero() {
		stored.UpdatedAt = time.Now().UTC()
	}

	// Set on a fixed document ID is an atomic replace: one record per user
	docRef := r.embeddingsCollection(workspaceID).Doc(string(record.UserID))
	if _, err := docRef.Set(ctx, toEmbeddingDoc(&stored)); err != nil {
		return goerr.Wrap(err, "failed to upsert embedding", goerr.V("user_id", record.UserID))
	}

	return nil
}

func (r *embeddingRepository) ListAllExcept(ctx context.Context, workspaceID string, userID types.UserID) ([]*model.EmbeddingRecord, error) {
	iter := r.embeddingsCollection(workspaceID).Documents(ctx)
	defer iter.Stop()

	records := make([]*model.EmbeddingRecord, 0)
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate embeddings")
		}

		var d embeddingDoc
		if err := doc.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal embedding")
		}

		if types.UserID(d.UserID) == userID {
			continue
		}

		records = append(records, fromEmbeddingDoc(&d))
	}

	return records, nil
}
