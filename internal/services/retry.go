package services

import (
	"context"
	"errors"
	"time"
)

// withRetry runs fn up to attempts times, sleeping attempt*unit between
// tries so the delays grow strictly. Non-retryable errors (bad input,
// missing references) abort the loop immediately; retrying cannot fix
// them. The last error is returned once the budget is spent.
func withRetry(ctx context.Context, attempts int, unit time.Duration, sleep func(time.Duration), fn func() error) error {
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !retryable(err) {
			return err
		}
		if attempt < attempts {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			sleep(time.Duration(attempt) * unit)
		}
	}
	return err
}

func retryable(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrDesignerNotFound),
		errors.Is(err, ErrBrandNotFound),
		errors.Is(err, ErrProductNotFound):
		return false
	}
	return true
}
