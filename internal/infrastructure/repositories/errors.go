package repositories

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
	domainerrors "skill-registry.backend/internal/domain/errors"
)

const pgUniqueViolation = "23505"

// classify maps driver and gorm errors onto domain sentinels, keeping the cause in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domainerrors.ErrNotFound),
		errors.Is(err, domainerrors.ErrAlreadyExists),
		errors.Is(err, domainerrors.ErrStoreUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case isUniqueViolation(err):
		return fmt.Errorf("%w: %v", domainerrors.ErrAlreadyExists, err)
	case isUnavailable(err):
		return fmt.Errorf("%w: %v", domainerrors.ErrStoreUnavailable, err)
	}
	return err
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isUnavailable(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return strings.Contains(err.Error(), "sql: database is closed")
}
