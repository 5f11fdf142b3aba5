package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("username or email already taken")
	ErrSelfModification = errors.New("cannot modify own account")

	// Game errors
	ErrGameNotFound = errors.New("game not found")

	// Progress errors
	ErrProgressNotFound = errors.New("progress not found")

	// Auth errors
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)
