package session

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAuthInFlight        = errors.New("another login or bootstrap is already in flight")
	ErrAlreadyBootstrapped = errors.New("bootstrap already performed")
)
