package postgres

import (
	"context"

	"github.com/almalink/almalink/pkg/domain/interfaces"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Postgres is a PostgreSQL-backed repository using a pgx connection pool
type Postgres struct {
	pool      *pgxpool.Pool
	profile   *profileRepository
	embedding *embeddingRepository
}

var _ interfaces.Repository = &Postgres{}

func New(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create postgres pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, goerr.Wrap(err, "failed to ping postgres")
	}

	return &Postgres{
		pool:      pool,
		profile:   &profileRepository{pool: pool},
		embedding: &embeddingRepository{pool: pool},
	}, nil
}

func (p *Postgres) Profile() interfaces.ProfileRepository {
	return p.profile
}

func (p *Postgres) Embedding() interfaces.EmbeddingRepository {
	return p.embedding
}

func (p *Postgres) Close() error {
	p.pool.Close()
	return nil
}

// Migrate applies the schema DDL. Statements are idempotent so re-running
// the migrate command is safe.
func (p *Postgres) Migrate(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := p.pool.Exec(ctx, stmt); err != nil {
			return goerr.Wrap(err, "failed to apply schema statement", goerr.V("statement", stmt))
		}
	}
	return nil
}
