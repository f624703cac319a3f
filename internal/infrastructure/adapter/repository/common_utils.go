package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	errs "github.com/saukimart/sauki-backend/internal/domain/error"
	"gorm.io/gorm"
)

// ErrorType represents the type of database error that occurred
type ErrorType string

const (
	DuplicateKeyError ErrorType = "duplicate_key"
	TransientError    ErrorType = "transient"
	LockError         ErrorType = "lock"
	ConnectionError   ErrorType = "connection"
	ConstraintError   ErrorType = "constraint"
)

// postgres SQLSTATE codes
const (
	codeUniqueViolation      = "23505"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03"
	codeCannotConnectNow     = "57P03"
	codeAdminShutdown        = "57P01"
	classIntegrity           = "23"
	classConnection          = "08"
)

// ErrorClassifier sorts driver errors, preferring postgres SQLSTATE codes
// and falling back to the message text for errors without one
type ErrorClassifier struct{}

// NewErrorClassifier creates a new ErrorClassifier
func NewErrorClassifier() *ErrorClassifier {
	return &ErrorClassifier{}
}

// Classify returns the type of error
func (c *ErrorClassifier) Classify(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case c.IsDuplicateKeyError(err):
		return DuplicateKeyError
	case c.IsLockError(err):
		return LockError
	case c.IsConstraintError(err):
		return ConstraintError
	case c.IsConnectionError(err):
		return ConnectionError
	case c.IsTransientError(err):
		return TransientError
	}
	return ""
}

// IsDuplicateKeyError checks for a unique constraint violation
func (c *ErrorClassifier) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return code == codeUniqueViolation
	}
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key")
}

// IsLockError checks for deadlocks and serialization failures
func (c *ErrorClassifier) IsLockError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return code == codeSerializationFailure || code == codeDeadlockDetected || code == codeLockNotAvailable
	}
	msg := err.Error()
	return strings.Contains(msg, "deadlock") || strings.Contains(msg, "could not serialize access")
}

// IsConstraintError checks for integrity constraint violations other than duplicates
func (c *ErrorClassifier) IsConstraintError(err error) bool {
	code, ok := sqlState(err)
	return ok && strings.HasPrefix(code, classIntegrity) && code != codeUniqueViolation
}

// IsConnectionError checks whether the server could not be reached or dropped the connection
func (c *ErrorClassifier) IsConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if code, ok := sqlState(err); ok {
		return strings.HasPrefix(code, classConnection) || code == codeCannotConnectNow || code == codeAdminShutdown
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection refused") ||
		strings.Contains(msg, "connection reset") ||
		strings.Contains(msg, "failed to connect") ||
		strings.Contains(msg, "broken pipe") ||
		strings.Contains(msg, "no such host")
}

// IsTransientError checks if an operation failing with err is worth retrying
func (c *ErrorClassifier) IsTransientError(err error) bool {
	if err == nil {
		return false
	}
	if c.IsLockError(err) || c.IsConnectionError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "server closed") ||
		strings.HasSuffix(msg, "eof")
}

// MapError converts a driver error into a domain error. notFound is returned
// for gorm.ErrRecordNotFound and duplicate for unique violations.
func (c *ErrorClassifier) MapError(err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound) && notFound != nil:
		return notFound
	case duplicate != nil && c.IsDuplicateKeyError(err):
		return duplicate
	case c.IsConstraintError(err):
		return fmt.Errorf("%w: %s", errs.ErrConstraintViolation, err.Error())
	default:
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
}

func sqlState(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code, true
	}
	return "", false
}
