package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	// ErrUpstreamExhausted means every attempt across every key failed.
	ErrUpstreamExhausted = errors.New("upstream retries exhausted")
)
