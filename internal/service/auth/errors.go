package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token format is invalid or the signature doesn't match
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token has expired
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrTokenNotYetValid indicates the token is not yet valid (nbf claim in the future)
	ErrTokenNotYetValid = errors.New("authentication token not yet valid")

	// ErrMissingToken indicates a token was expected but not provided
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrRevokedToken indicates the token was invalidated by a logout or refresh
	ErrRevokedToken = errors.New("authentication token has been revoked")

	// ErrRefreshExpired indicates the token is too old to be exchanged for a
	// fresh one (past the refresh grace window)
	ErrRefreshExpired = errors.New("authentication token is past the refresh window")
)
