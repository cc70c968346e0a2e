package oauth

import "errors"

var (
	ErrProviderNotConfigured = errors.New("google oauth is not configured")
	ErrInvalidRequest        = errors.New("invalid oauth request")
	ErrUnauthorized          = errors.New("oauth login rejected")

	// ErrProviderViolation means Google returned a profile missing
	// fields the portal depends on (id, name, photo).
	ErrProviderViolation = errors.New("google profile is incomplete")
)
