package repository

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	"vlog/internal/model"
)

// queryTimeout bounds every store call so a wedged connection surfaces as a
// retryable unavailable error instead of hanging the request.
const queryTimeout = 5 * time.Second

func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// storeErr wraps a driver failure, translating timeouts and dead connections
// into model.ErrStoreUnavailable.
func storeErr(op string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, driver.ErrBadConn),
		errors.As(err, &netErr):
		return fmt.Errorf("%s: %w", op, model.ErrStoreUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}
