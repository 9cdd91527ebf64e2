package db

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	ErrorKindTimeout     = "timeout"
	ErrorKindUnavailable = "unavailable"
	ErrorKindSchema      = "schema"
	ErrorKindDuplicate   = "duplicate"
	ErrorKindUnknown     = "unknown"
)

func IsDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || hasPGCode(err, "23505") {
		return true
	}

	msg := err.Error()
	// MySQL 1062, SQLite 2067
	return strings.Contains(msg, "Error 1062") || strings.Contains(msg, "UNIQUE constraint failed")
}

// ClassifyError maps a store error to a low-cardinality kind for logs.
func ClassifyError(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled), hasPGCode(err, "57014"):
		return ErrorKindTimeout
	case IsDuplicateKeyErr(err):
		return ErrorKindDuplicate
	case hasPGClass(err, "08"), hasPGCode(err, "57P01"), hasPGCode(err, "53300"):
		return ErrorKindUnavailable
	case hasPGCode(err, "42P01"), hasPGCode(err, "42703"), strings.Contains(err.Error(), "no such table"):
		return ErrorKindSchema
	default:
		return ErrorKindUnknown
	}
}

func hasPGCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}

func hasPGClass(err error, class string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && strings.HasPrefix(pgErr.Code, class)
}
