// Package storage implements Postgres persistence for students,
// materials and variants on top of sqlx.
package storage

import (
	"errors"

	"github.com/lib/pq"
)

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrDuplicateTitle means a material with the same title already
	// exists for the course.
	ErrDuplicateTitle = errors.New("storage: duplicate title")
)

// uniqueViolation in Postgres error codes.
const pgUniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == pgUniqueViolation
	}
	return false
}
