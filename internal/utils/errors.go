package utils

import "errors"

// Domain error kinds. Repositories and services wrap these with %w so
// handlers can map them to HTTP codes with errors.Is.
var (
	ErrInvalidInput        = errors.New("invalid input")
	ErrNotFound            = errors.New("not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)
