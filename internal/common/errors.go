// Package common defines shared sentinel errors used across the server
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registration errors. Message texts are part of the public API contract.
	ErrEmailTaken    = errors.New("User with this email already exists.")
	ErrUsernameTaken = errors.New("Username is already taken.")

	// Login failure. Absent user and wrong password both map here so the
	// response carries no enumeration signal.
	ErrInvalidCredentials = errors.New("Invalid email or password.")

	// Token lifecycle errors, distinguishable for logging only; the HTTP
	// boundary collapses all three into 401.
	ErrTokenExpired   = errors.New("token expired")
	ErrTokenMalformed = errors.New("token malformed")
	ErrTokenInvalid   = errors.New("invalid token")

	// Generic internal failure.
	ErrInternal = errors.New("internal error")
)
