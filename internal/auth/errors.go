package auth

import "errors"

var (
	// ErrMalformedCredential indicates a credential that is not a structurally valid token.
	ErrMalformedCredential = errors.New("auth: malformed credential")
	// ErrExpiredCredential indicates a credential whose expiry has passed.
	ErrExpiredCredential = errors.New("auth: expired credential")
	// ErrInvalidCredentials indicates the remote endpoint rejected the username/password pair.
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	// ErrAuthServiceUnavailable covers every other failure reaching the remote endpoint.
	ErrAuthServiceUnavailable = errors.New("auth: authentication service unavailable")
)
