// Package shared holds cross-cutting domain primitives.
package shared

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors for the domain layer. Handlers map these to HTTP
// problem responses; services wrap them with context via fmt.Errorf.
var (
	// ErrNotFound indicates an update/delete/get targeting a missing record.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a natural-key collision (code already taken).
	ErrDuplicate = errors.New("duplicate entry")
	// ErrValidation indicates malformed input such as a negative quantity.
	ErrValidation = errors.New("validation failed")
	// ErrOverAllocated indicates distributed quantity exceeding received
	// quantity when the caller opted into strict enforcement.
	ErrOverAllocated = errors.New("distribution exceeds received quantity")
)

const pgUniqueViolation = "23505"

// ClassifyPgError translates low-level pgx errors into domain sentinels.
// Unique violations become ErrDuplicate, missing rows ErrNotFound;
// anything else passes through as a storage failure.
func ClassifyPgError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return ErrDuplicate
	}
	return err
}
