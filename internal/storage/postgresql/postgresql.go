package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"
)

type Storage struct {
	db *pgxpool.Pool
}

const schema = `
CREATE TABLE IF NOT EXISTS posts (
	id UUID PRIMARY KEY,
	slug VARCHAR(255) NOT NULL,
	title VARCHAR(255) NOT NULL,
	summary TEXT NOT NULL,
	content TEXT NOT NULL,
	hero_image TEXT,
	tags TEXT[] NOT NULL DEFAULT '{}',
	language VARCHAR(8) NOT NULL DEFAULT 'en',
	status VARCHAR(20) NOT NULL DEFAULT 'draft',
	seo JSONB,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	published_at TIMESTAMPTZ,
	scheduled_at TIMESTAMPTZ,
	ai_generated BOOLEAN NOT NULL DEFAULT false
);

CREATE UNIQUE INDEX IF NOT EXISTS posts_slug_key ON posts (slug);
CREATE INDEX IF NOT EXISTS posts_status_published_at_idx ON posts (status, published_at DESC);
CREATE INDEX IF NOT EXISTS posts_tags_idx ON posts USING GIN (tags);

CREATE TABLE IF NOT EXISTS contact_submissions (
	id UUID PRIMARY KEY,
	name TEXT NOT NULL,
	email TEXT NOT NULL,
	company TEXT,
	company_type TEXT NOT NULL,
	message TEXT NOT NULL,
	phone TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	status VARCHAR(20) NOT NULL DEFAULT 'new'
);

-- submissions are stored as received; length rules live in the request validator
ALTER TABLE contact_submissions
	ALTER COLUMN name TYPE TEXT,
	ALTER COLUMN email TYPE TEXT,
	ALTER COLUMN company TYPE TEXT,
	ALTER COLUMN company_type TYPE TEXT,
	ALTER COLUMN phone TYPE TEXT;

CREATE TABLE IF NOT EXISTS status_checks (
	id UUID PRIMARY KEY,
	client_name TEXT NOT NULL,
	timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS status_checks_timestamp_idx ON status_checks (timestamp DESC);
`

func New(ctx context.Context, dsn string) (*Storage, error) {
	const op = "storage.postgresql.New"

	db, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

// Migrate creates the tables and indexes if they are missing.
func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgresql.Migrate"

	if _, err := s.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Storage) DB() *pgxpool.Pool {
	return s.db
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func (s *Storage) Stop() {
	s.db.Close()
}
