package generator

import (
	"context"
	"time"

	"github.com/arthur-debert/mcgen/pkg/errors"
)

type outcome[T any] struct {
	value T
	err   error
}

// WithTimeout runs fn and gives up once budget elapses or ctx ends. The
// renderers cannot be interrupted, so an abandoned fn finishes in the
// background and its result is dropped. A non-positive budget only honours
// ctx. A panic in fn is reported as an INTERNAL error.
func WithTimeout[T any](ctx context.Context, operation string, budget time.Duration, fn func() (T, error)) (T, error) {
	if budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, budget)
		defer cancel()
	}

	done := make(chan outcome[T], 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Str("operation", operation).Interface("panic", r).Msg("Render panicked")
				done <- outcome[T]{err: errors.Newf(errors.ErrInternal, "%s failed: %v", operation, r).
					WithDetail("operation", operation)}
			}
		}()
		v, err := fn()
		done <- outcome[T]{value: v, err: err}
	}()

	var zero T
	select {
	case o := <-done:
		return o.value, o.err
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return zero, errors.Timeout(operation, budget)
		}
		return zero, errors.Wrapf(ctx.Err(), errors.ErrInternal, "%s cancelled", operation)
	}
}
