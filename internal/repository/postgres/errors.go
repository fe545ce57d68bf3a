package postgres

import (
	"context"
	"errors"
	"fmt"

	"wordtrainer/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// mapError converts driver errors to domain errors.
// Context errors pass through, unique violations become ErrAlreadyExists,
// anything else is marked as ErrStorage.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", op, err)
	}

	if isUniqueViolation(err) {
		return fmt.Errorf("%s: %w", op, domain.ErrAlreadyExists)
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == uniqueViolation
}
