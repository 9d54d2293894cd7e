package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/RamaSrikar2005/OnlineBankingSystem/internal/core/domain"
)

// classify maps a raw pgx error onto the domain taxonomy. Errors already
// carrying a domain sentinel pass through untouched. Serialization failures,
// deadlocks and lock timeouts become ErrRetryableConflict; everything else
// from the driver is ErrStoreUnavailable.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{
		domain.ErrAccountNotEligible,
		domain.ErrInsufficientFunds,
		domain.ErrNotFound,
		domain.ErrForbidden,
		domain.ErrInvalidArgument,
	} {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03": // serialization failure, deadlock, lock not available
			return fmt.Errorf("%w: %s", domain.ErrRetryableConflict, pgErr.Code)
		case "23503": // foreign key: a referenced row does not exist
			return fmt.Errorf("%w: referenced resource", domain.ErrNotFound)
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
}
