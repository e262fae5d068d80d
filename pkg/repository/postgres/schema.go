package postgres

// schemaStatements is the full schema for the matching service. The unique
// key on (workspace_id, user_id) backs the atomic upsert semantics of the
// embedding store.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS profiles (
		workspace_id     TEXT NOT NULL,
		user_id          TEXT NOT NULL,
		name             TEXT NOT NULL DEFAULT '',
		skills           TEXT[] NOT NULL DEFAULT '{}',
		interests        TEXT[] NOT NULL DEFAULT '{}',
		industry         TEXT NOT NULL DEFAULT '',
		company          TEXT NOT NULL DEFAULT '',
		designation      TEXT NOT NULL DEFAULT '',
		experience_years INTEGER NOT NULL DEFAULT 0,
		department       TEXT NOT NULL DEFAULT '',
		is_mentor        BOOLEAN NOT NULL DEFAULT FALSE,
		is_hiring        BOOLEAN NOT NULL DEFAULT FALSE,
		location         TEXT NOT NULL DEFAULT '',
		avatar_url       TEXT NOT NULL DEFAULT '',
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (workspace_id, user_id)
	)`,
	`CREATE TABLE IF NOT EXISTS embeddings (
		workspace_id     TEXT NOT NULL,
		user_id          TEXT NOT NULL,
		vector           REAL[] NOT NULL,
		fingerprint_hash TEXT NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		PRIMARY KEY (workspace_id, user_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_profiles_experience
		ON profiles (workspace_id, experience_years)`,
}
