package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Repository callers branch on these with errors.Is or
// the helpers below; the raw driver error stays available via Unwrap.
var (
	// ErrNotFound is returned when a query matches no rows.
	ErrNotFound = errors.New("staffcore/db: record not found")

	// ErrDuplicateKey is returned on unique constraint violations.
	ErrDuplicateKey = errors.New("staffcore/db: duplicate key")

	// ErrForeignKeyViolation is returned when a referenced row is missing
	// or still referenced.
	ErrForeignKeyViolation = errors.New("staffcore/db: foreign key violation")

	// ErrConnectionFailed is returned when the driver cannot reach the
	// database server.
	ErrConnectionFailed = errors.New("staffcore/db: connection failed")

	// ErrTimeout is returned when a statement exceeds its deadline.
	ErrTimeout = errors.New("staffcore/db: query timeout")
)

func IsNotFound(err error) bool            { return errors.Is(err, ErrNotFound) }
func IsDuplicateKey(err error) bool        { return errors.Is(err, ErrDuplicateKey) }
func IsForeignKeyViolation(err error) bool { return errors.Is(err, ErrForeignKeyViolation) }
func IsConnectionFailed(err error) bool    { return errors.Is(err, ErrConnectionFailed) }
func IsTimeout(err error) bool             { return errors.Is(err, ErrTimeout) }

// DBError pairs a sentinel with the original driver error so callers can
// use errors.Is for the class and still inspect the raw cause.
type DBError struct {
	// Sentinel is one of the package-level Err* values.
	Sentinel error
	// Cause is the original driver error.
	Cause error
	// Message is an optional human-readable hint.
	Message string
}

func (e *DBError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Sentinel, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (cause: %v)", e.Sentinel, e.Cause)
}

func (e *DBError) Is(target error) bool { return errors.Is(e.Sentinel, target) }
func (e *DBError) Unwrap() error        { return e.Cause }

// ErrorMapper translates raw driver errors into sentinel errors.
type ErrorMapper interface {
	Map(err error) error
}

// ErrorMapperFunc adapts a function to ErrorMapper.
type ErrorMapperFunc func(error) error

func (f ErrorMapperFunc) Map(err error) error { return f(err) }

// DefaultErrorMapper handles MySQL, PostgreSQL (lib/pq), and SQLite.
func DefaultErrorMapper() ErrorMapper {
	return ErrorMapperFunc(defaultMap)
}

func defaultMap(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &DBError{Sentinel: ErrNotFound, Cause: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &DBError{Sentinel: ErrTimeout, Cause: err}
	}

	// Already mapped — do not double-wrap.
	var dbe *DBError
	if errors.As(err, &dbe) {
		return err
	}

	if mapped := mapMySQLError(err); mapped != nil {
		return mapped
	}
	if mapped := mapPostgresError(err); mapped != nil {
		return mapped
	}
	if mapped := mapSQLiteError(err); mapped != nil {
		return mapped
	}
	return err
}

// MySQL: go-sql-driver/mysql exposes *mysql.MySQLError with a Number
// field; match on the documented interface to avoid a hard import here.
func mapMySQLError(err error) error {
	type mysqlErr interface {
		error
		Number() uint16
	}
	var me mysqlErr
	if !errors.As(err, &me) {
		return mapMySQLByNumber(mysqlNumberFromString(err.Error()), err)
	}
	return mapMySQLByNumber(me.Number(), err)
}

// mysqlNumberFromString extracts the error number from the driver's
// "Error NNNN: message" format.
func mysqlNumberFromString(s string) uint16 {
	const marker = "Error "
	idx := strings.Index(s, marker)
	if idx < 0 {
		return 0
	}
	rest := s[idx+len(marker):]
	var n uint16
	for _, c := range rest {
		if c < '0' || c > '9' {
			break
		}
		n = n*10 + uint16(c-'0')
	}
	return n
}

func mapMySQLByNumber(code uint16, cause error) error {
	switch code {
	case 1062: // ER_DUP_ENTRY
		return &DBError{Sentinel: ErrDuplicateKey, Cause: cause}
	case 1216, 1217, 1451, 1452: // FK parent/child violations
		return &DBError{Sentinel: ErrForeignKeyViolation, Cause: cause}
	case 3024: // ER_QUERY_TIMEOUT
		return &DBError{Sentinel: ErrTimeout, Cause: cause}
	case 1045, 2002, 2003, 2006, 2013: // access denied / server gone
		return &DBError{Sentinel: ErrConnectionFailed, Cause: cause}
	}
	return nil
}

// PostgreSQL: both lib/pq and pgx surface a SQLSTATE; lib/pq also embeds
// it in the message as "(SQLSTATE XXXXX)".
func mapPostgresError(err error) error {
	type stater interface{ SQLState() string }
	var st stater
	if errors.As(err, &st) {
		return mapByPGCode(st.SQLState(), err)
	}
	return mapByPGCode(pgCodeFromString(err.Error()), err)
}

func pgCodeFromString(s string) string {
	const marker = "(SQLSTATE "
	idx := strings.LastIndex(s, marker)
	if idx < 0 {
		return ""
	}
	rest := s[idx+len(marker):]
	end := strings.Index(rest, ")")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

func mapByPGCode(code string, cause error) error {
	switch code {
	case "23505": // unique_violation
		return &DBError{Sentinel: ErrDuplicateKey, Cause: cause}
	case "23503": // foreign_key_violation
		return &DBError{Sentinel: ErrForeignKeyViolation, Cause: cause}
	case "57014": // query_canceled
		return &DBError{Sentinel: ErrTimeout, Cause: cause}
	case "08000", "08001", "08003", "08004", "08006", "08007", "08P01":
		return &DBError{Sentinel: ErrConnectionFailed, Cause: cause}
	}
	return nil
}

// SQLite: mattn/go-sqlite3 does not export stable typed errors, so the
// mapping is string-based.
func mapSQLiteError(err error) error {
	s := err.Error()
	switch {
	case strings.Contains(s, "UNIQUE constraint failed"):
		return &DBError{Sentinel: ErrDuplicateKey, Cause: err}
	case strings.Contains(s, "FOREIGN KEY constraint failed"):
		return &DBError{Sentinel: ErrForeignKeyViolation, Cause: err}
	case strings.Contains(s, "unable to open database"):
		return &DBError{Sentinel: ErrConnectionFailed, Cause: err}
	}
	return nil
}

// ChainMapper tries each mapper in order; the first one that changes the
// error wins. Falls through unchanged when none match.
func ChainMapper(mappers ...ErrorMapper) ErrorMapper {
	return ErrorMapperFunc(func(err error) error {
		if err == nil {
			return nil
		}
		for _, m := range mappers {
			if mapped := m.Map(err); mapped != err {
				return mapped
			}
		}
		return err
	})
}
