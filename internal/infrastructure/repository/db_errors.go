package repository

import (
	"errors"
	"strings"

	"github.com/bsm/redislock"
	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes that mean "try again"
const (
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

// IsRetryable reports whether err is a transient serialization failure that a
// fresh attempt of the same transaction can succeed past.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgSerializationFailure, pgDeadlockDetected, pgLockNotAvailable:
			return true
		}
		return false
	}

	if errors.Is(err, redislock.ErrNotObtained) {
		return true
	}

	// mattn/go-sqlite3 surfaces SQLITE_BUSY and SQLITE_LOCKED as plain messages
	msg := err.Error()
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY")
}
