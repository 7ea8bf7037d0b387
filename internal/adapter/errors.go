package adapter

import "errors"

var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrInternalServerError = errors.New("internal server error")
	ErrBadGateway          = errors.New("bad gateway")
	ErrServiceUnavailable  = errors.New("service unavailable")

	// ErrNoCredentials is returned when neither a static token nor login
	// credentials are configured.
	ErrNoCredentials = errors.New("no credentials configured")
	// ErrEmptyToken is returned when the auth service answers without a token.
	ErrEmptyToken = errors.New("auth response carries no token")
)
