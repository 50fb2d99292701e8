package errors

import (
	"errors"
)

// Sentinel errors for the identity flows. The messages are surfaced
// verbatim to API callers, hence the sentence casing and punctuation.
var (
	ErrFirstNameRequired  = errors.New("First name is required.")
	ErrLastNameRequired   = errors.New("Last name is required.")
	ErrEmailRequired      = errors.New("Email is required.")
	ErrPasswordRequired   = errors.New("Password is required.")
	ErrEmailAlreadyInUse  = errors.New("User with this email already exists.")
	ErrInvalidCredentials = errors.New("Invalid email or password.")

	ErrRefreshTokenNotFound = errors.New("refresh token not found")
	ErrRefreshTokenRevoked  = errors.New("refresh token revoked")
	ErrRefreshTokenExpired  = errors.New("refresh token expired")
)

// IsClientError reports whether err is a validation, conflict or
// authentication failure that maps to a 400 response. Anything else is
// treated as an internal failure and maps to a 500.
func IsClientError(err error) bool {
	for _, sentinel := range []error{
		ErrFirstNameRequired,
		ErrLastNameRequired,
		ErrEmailRequired,
		ErrPasswordRequired,
		ErrEmailAlreadyInUse,
		ErrInvalidCredentials,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}

	return false
}
