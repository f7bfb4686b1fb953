package usecase

import "errors"

// Sentinel errors returned by the services. Handlers classify with
// errors.Is and never forward wrapped store error text to clients.
var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")

	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyExists      = errors.New("already exists")

	ErrLookupFailed   = errors.New("lookup failed")
	ErrCreationFailed = errors.New("creation failed")
	ErrDeletionFailed = errors.New("deletion failed")
)
