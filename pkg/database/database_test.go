package database

import (
	"errors"
	"fmt"
	"testing"

	"review-service/pkg/utils"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "reviews_title_author_key"}

	name, ok := IsUniqueViolation(fmt.Errorf("insert review: %w", pgErr))
	assert.True(t, ok)
	assert.Equal(t, "reviews_title_author_key", name)

	_, ok = IsUniqueViolation(errors.New("boom"))
	assert.False(t, ok)

	_, ok = IsUniqueViolation(&pgconn.PgError{Code: ForeignKeyViolation})
	assert.False(t, ok)

	assert.True(t, IsForeignKeyViolation(&pgconn.PgError{Code: ForeignKeyViolation}))
}

func TestConnString(t *testing.T) {
	s := ConnString(utils.DatabaseConfig{
		Host:     "db",
		Port:     "5432",
		Name:     "reviews",
		User:     "app",
		Password: "",
		SSLMode:  "disable",
	})

	assert.Equal(t, "host='db' port='5432' dbname='reviews' user='app' password='' sslmode='disable'", s)

	quoted := ConnString(utils.DatabaseConfig{Host: "db", Password: `it's\secret`})
	assert.Equal(t, `host='db' password='it\'s\\secret'`, quoted)
}
