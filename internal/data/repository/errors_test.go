package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestDriverErrorMapping(t *testing.T) {
	fk := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23503", ConstraintName: "title_genres_genre_id_fkey"})
	unique := &pgconn.PgError{Code: "23505", ConstraintName: "genres_slug_key"}
	other := errors.New("connection reset")

	assert.ErrorIs(t, asReference(fk), ErrReferenceMissing)
	assert.NotErrorIs(t, asReference(unique), ErrReferenceMissing)
	assert.Equal(t, other, asReference(other))

	assert.ErrorIs(t, asUnique(unique), ErrUniqueViolation)
	constraint, ok := ConstraintOf(asUnique(unique))
	assert.True(t, ok)
	assert.Equal(t, "genres_slug_key", constraint)
	assert.Equal(t, fk, asUnique(fk))
}

func TestLikePatternEscapes(t *testing.T) {
	assert.Equal(t, `%100\%\_off%`, likePattern("100%_off"))
}
