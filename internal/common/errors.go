// Package common defines shared constants and sentinel errors used across
// the layers of the kanban API. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal        = errors.New("internal error")
	ErrorUnauthenticated = errors.New("user not authenticated")
	ErrorForbidden       = errors.New("user not authorized")

	// Registration / login errors.
	ErrorAlreadyExists      = errors.New("user already exists")
	ErrorInvalidCredentials = errors.New("invalid password")

	// Todo-specific errors.
	ErrorInvalidStatus = errors.New("invalid status")
	ErrorInvalidOrder  = errors.New("invalid order")
	ErrorEmptyTitle    = errors.New("title is required")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken   = errors.New("invalid token")
	ErrMissingToken   = errors.New("missing token")
	ErrWrongTokenKind = errors.New("invalid token type")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
