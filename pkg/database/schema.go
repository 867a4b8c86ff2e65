package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
)

// UniqueViolation is the SQLSTATE of a unique constraint failure.
const UniqueViolation = "23505"

// ForeignKeyViolation is the SQLSTATE of a foreign key failure.
const ForeignKeyViolation = "23503"

// IsUniqueViolation reports whether err is a unique constraint failure and
// returns the violated constraint name.
func IsUniqueViolation(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == UniqueViolation {
		return pgErr.ConstraintName, true
	}
	return "", false
}

// IsForeignKeyViolation reports whether err is a foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == ForeignKeyViolation
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id           UUID PRIMARY KEY,
		username     VARCHAR(150) NOT NULL,
		email        VARCHAR(254) NOT NULL,
		first_name   VARCHAR(150) NOT NULL DEFAULT '',
		last_name    VARCHAR(150) NOT NULL DEFAULT '',
		bio          TEXT NOT NULL DEFAULT '',
		role         VARCHAR(16) NOT NULL DEFAULT 'user'
		             CHECK (role IN ('user', 'moderator', 'admin')),
		is_superuser BOOLEAN NOT NULL DEFAULT FALSE,
		is_active    BOOLEAN NOT NULL DEFAULT FALSE,
		last_login   TIMESTAMPTZ,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		deleted_at   TIMESTAMPTZ
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_username_key ON users (username) WHERE deleted_at IS NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email) WHERE deleted_at IS NULL`,

	`CREATE TABLE IF NOT EXISTS categories (
		id         UUID PRIMARY KEY,
		name       VARCHAR(256) NOT NULL,
		slug       VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT categories_slug_key UNIQUE (slug)
	)`,

	`CREATE TABLE IF NOT EXISTS genres (
		id         UUID PRIMARY KEY,
		name       VARCHAR(256) NOT NULL,
		slug       VARCHAR(50) NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT genres_slug_key UNIQUE (slug)
	)`,

	`CREATE TABLE IF NOT EXISTS titles (
		id          UUID PRIMARY KEY,
		name        VARCHAR(256) NOT NULL,
		year        INTEGER CHECK (year BETWEEN 1895 AND 2100),
		description TEXT NOT NULL DEFAULT '',
		category_id UUID REFERENCES categories (id) ON DELETE SET NULL,
		created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS titles_name_idx ON titles (name)`,

	`CREATE TABLE IF NOT EXISTS title_genres (
		title_id UUID NOT NULL REFERENCES titles (id) ON DELETE CASCADE,
		genre_id UUID NOT NULL REFERENCES genres (id) ON DELETE CASCADE,
		PRIMARY KEY (title_id, genre_id)
	)`,

	`CREATE TABLE IF NOT EXISTS reviews (
		id        UUID PRIMARY KEY,
		title_id  UUID NOT NULL REFERENCES titles (id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		text      TEXT NOT NULL,
		score     SMALLINT NOT NULL CHECK (score BETWEEN 1 AND 10),
		pub_date  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
		CONSTRAINT reviews_title_author_key UNIQUE (title_id, author_id)
	)`,
	`CREATE INDEX IF NOT EXISTS reviews_pub_date_idx ON reviews (title_id, pub_date DESC)`,

	`CREATE TABLE IF NOT EXISTS comments (
		id        UUID PRIMARY KEY,
		review_id UUID NOT NULL REFERENCES reviews (id) ON DELETE CASCADE,
		author_id UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		text      TEXT NOT NULL,
		pub_date  TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS comments_pub_date_idx ON comments (review_id, pub_date DESC)`,
}

// Migrate creates every table and index that does not exist yet.
func Migrate(ctx context.Context, db PgxIface) error {
	for i, stmt := range schema {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate statement %d: %w", i, err)
		}
	}
	return nil
}
