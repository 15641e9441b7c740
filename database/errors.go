package database

import (
	"errors"
	"fmt"

	"github.com/jackc/pgconn"
	pkgerrors "github.com/pkg/errors"
	"github.com/upper/db/v4"
)

// Storage error codes. These are wire-stable: the error handler middleware
// maps them to the client-facing contract, so they must not change between
// releases.
const (
	CodeUniqueViolation = "P2002"
	CodeRecordNotFound  = "P2025"
	CodeUnexpected      = "UNKNOWN"
)

const pgUniqueViolation = "23505"

// Error is a storage layer failure carrying a normalized constraint code.
type Error struct {
	Code string
	Op   string

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Op, e.cause.Error())
	}
	return e.Op
}

func (e *Error) Unwrap() error {
	return e.cause
}

// translateError normalizes session and driver errors into *Error. Every
// code except the two recognized constraint violations collapses into
// CodeUnexpected so driver internals never reach the client.
func translateError(op string, err error) error {
	if err == nil {
		return nil
	}
	code := CodeUnexpected
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, db.ErrNoMoreRows):
		code = CodeRecordNotFound
	case errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation:
		code = CodeUniqueViolation
	}
	return pkgerrors.WithStack(&Error{Code: code, Op: op, cause: err})
}
