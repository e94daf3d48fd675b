package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNetwork marks a remote backend (Redis, MongoDB) that could not be reached.
	ErrNetwork = errors.New("cache backend unreachable")

	// ErrUnknownBackend is returned by Open for an unrecognized backend name.
	ErrUnknownBackend = errors.New("unknown cache backend")
)

// RetryableError marks a transient backend failure.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err is wrapped with Retryable.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// unreachable wraps a backend failure as a retryable ErrNetwork. Context
// cancellation is returned as is.
func unreachable(backend string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return Retryable(fmt.Errorf("%w: %s: %v", ErrNetwork, backend, err))
}

var (
	retryAttempts = 3
	retryDelay    = 200 * time.Millisecond // doubles after every attempt
)

// RetryWithBackoff calls fn until it succeeds, returns a non-retryable
// error, ctx ends, or the attempts run out.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	delay := retryDelay
	var err error
	for i := range retryAttempts {
		if err = fn(); err == nil || !IsRetryable(err) {
			return err
		}
		if i == retryAttempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
	return err
}
