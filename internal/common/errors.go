// Package common defines shared constants and sentinel errors used across
// the server layers of passvault. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEmail = errors.New("email already registered")

	// Validation errors (malformed or missing input, caller's fault).
	ErrValidation = errors.New("validation error")

	// Authentication / authorization errors.
	ErrInvalidCredential = errors.New("invalid credential")
	ErrForbidden         = errors.New("forbidden")

	// Token lifecycle errors.
	ErrTokenExpired  = errors.New("token expired")
	ErrTokenInvalid  = errors.New("invalid token")
	ErrTokenNotFound = errors.New("reset token not found")

	// Infrastructure errors.
	ErrCrypto   = errors.New("crypto error")
	ErrDelivery = errors.New("mail delivery error")
	ErrInternal = errors.New("internal error")
)
