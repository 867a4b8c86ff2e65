package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by soft-deletable rows.
type Base struct {
	ID        uuid.UUID  `db:"id"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// Touch stamps UpdatedAt.
func (b *Base) Touch(now time.Time) {
	b.UpdatedAt = now
}

// BaseNoDelete is for editable rows that are removed with a hard delete.
type BaseNoDelete struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Touch stamps UpdatedAt.
func (b *BaseNoDelete) Touch(now time.Time) {
	b.UpdatedAt = now
}

// BaseSimple is for rows that are never edited in place.
type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}
