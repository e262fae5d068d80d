package repository_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/m-mizutani/gt"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/almalink/almalink/pkg/repository/firestore"
	"github.com/almalink/almalink/pkg/repository/memory"
	"github.com/almalink/almalink/pkg/repository/postgres"
)

// testWSID returns a fresh workspace ID so suite runs against persistent
// backends do not see each other's records.
func testWSID() string {
	return "test-ws-" + uuid.NewString()
}

func newMemoryRepo(t *testing.T) interfaces.Repository {
	return memory.New()
}

func newFirestoreRepo(t *testing.T) interfaces.Repository {
	projectID := os.Getenv("FIRESTORE_PROJECT_ID")
	if projectID == "" {
		t.Skip("FIRESTORE_PROJECT_ID not set")
	}

	repo, err := firestore.New(context.Background(), projectID, os.Getenv("FIRESTORE_DATABASE_ID"))
	gt.NoError(t, err).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close firestore repository: %v", err)
		}
	})
	return repo
}

func newPostgresRepo(t *testing.T) interfaces.Repository {
	dsn := os.Getenv("POSTGRES_DSN")
	if dsn == "" {
		t.Skip("POSTGRES_DSN not set")
	}

	repo, err := postgres.New(context.Background(), dsn)
	gt.NoError(t, err).Required()
	gt.NoError(t, repo.Migrate(context.Background())).Required()
	t.Cleanup(func() {
		if err := repo.Close(); err != nil {
			t.Logf("failed to close postgres repository: %v", err)
		}
	})
	return repo
}
