package domain

import "errors"

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSessionNotFound   = errors.New("session not found")
	ErrSessionExpired    = errors.New("session expired")
	ErrSessionRevoked    = errors.New("session revoked")
	ErrInvalidSession    = errors.New("invalid session")
	ErrIncompleteProfile = errors.New("google profile is missing required fields")
)
