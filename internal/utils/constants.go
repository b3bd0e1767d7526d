package utils

import "time"

// Application Constants
const (
	AppName    = "DeadYet"
	AppVersion = "1.0.0"

	// Default values
	DefaultTimeZone = "UTC"

	// Authentication
	JWTAccessTokenTTL = 24 * time.Hour

	// Sweep
	SweepLockTTL = 5 * time.Minute

	// Notification
	NotificationTimeout = 30 * time.Second

	// Status cache
	StatusCacheTTL = 30 * time.Second
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Error Messages
const (
	ErrInvalidToken     = "invalid token"
	ErrInternalServer   = "internal server error"
	ErrUnauthorized     = "unauthorized"
	ErrForbidden        = "forbidden"
	ErrValidationFailed = "validation failed"
)

// Error Codes
const (
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	CodeInternalError       = "INTERNAL_ERROR"
)

// Cache Keys
const (
	CacheStatusPrefix = "status:"
	CacheSweepLockKey = "sweep:lock"
)
