// Package common defines shared constants and sentinel errors used across
// the ShareBites server layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound          = errors.New("not found")
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// Request-level errors.
	ErrInvalidRequest = errors.New("invalid request")
	ErrEmptyPatch     = errors.New("nothing to update")

	// Auth errors.
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
	ErrSecretNotSet = errors.New("signing secret is not set")

	// Ownership errors.
	ErrForbidden = errors.New("forbidden")
)
