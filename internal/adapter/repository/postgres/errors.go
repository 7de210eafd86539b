package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/iho/walletd/internal/domain"
)

// PostgreSQL error codes handled by the repositories.
const (
	pgErrUniqueViolation      = "23505"
	pgErrSerializationFailure = "40001"
	pgErrDeadlock             = "40P01"
	pgErrLockNotAvailable     = "55P03"
	pgErrQueryCanceled        = "57014"
)

// classifyError maps driver errors onto domain errors. Unique violations on
// the txid index become ErrDuplicateTxID; lock and serialization failures
// become ErrStorageUnavailable so callers can treat them as transient. The
// original pg error stays in the chain so retry logic can read the SQLSTATE.
func classifyError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %s", domain.ErrStorageUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgErrUniqueViolation:
		if strings.Contains(pgErr.ConstraintName, "txid") {
			return domain.ErrDuplicateTxID
		}
		return err
	case pgErrSerializationFailure, pgErrDeadlock, pgErrLockNotAvailable, pgErrQueryCanceled:
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, pgErr)
	}

	return err
}
