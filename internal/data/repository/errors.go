package repository

import (
	"errors"
	"fmt"
	"strings"

	"review-service/pkg/database"
)

// ErrUniqueViolation is returned when a write collides with a unique
// constraint. The wrapping error carries the constraint name.
var ErrUniqueViolation = errors.New("unique constraint violated")

// ErrNotFound is returned by writes that matched no row.
var ErrNotFound = errors.New("record not found")

// ErrReferenceMissing is returned when a write points at a row that was
// deleted concurrently.
var ErrReferenceMissing = errors.New("referenced record missing")

// UniqueError is a unique violation on Constraint.
type UniqueError struct {
	Constraint string
}

func (e *UniqueError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUniqueViolation, e.Constraint)
}

func (e *UniqueError) Unwrap() error {
	return ErrUniqueViolation
}

// ConstraintOf returns the violated constraint of err, if it is a unique
// violation.
func ConstraintOf(err error) (string, bool) {
	var uErr *UniqueError
	if errors.As(err, &uErr) {
		return uErr.Constraint, true
	}
	return "", false
}

// asUnique turns a driver unique violation into *UniqueError and leaves
// other errors untouched.
func asUnique(err error) error {
	if name, ok := database.IsUniqueViolation(err); ok {
		return &UniqueError{Constraint: name}
	}
	return err
}

// asReference turns a driver foreign key violation into ErrReferenceMissing
// and leaves other errors untouched.
func asReference(err error) error {
	if database.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: %v", ErrReferenceMissing, err)
	}
	return err
}

// likePattern builds an ILIKE substring pattern with wildcards escaped.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

type rowScanner interface {
	Scan(dest ...any) error
}
