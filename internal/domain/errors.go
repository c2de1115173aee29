package domain

import "errors"

var (
	ErrPlaceNotFound       = errors.New("place not found")
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrProviderUnavailable = errors.New("upstream provider is not configured")
	ErrInvalidSession      = errors.New("invalid or expired session token")
	ErrInvalidInput        = errors.New("invalid input")
)
