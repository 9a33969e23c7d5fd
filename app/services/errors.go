package services

import "errors"

// Sentinel errors the controllers translate into HTTP statuses. Anything
// else that escapes a service is an internal failure and maps to 500.
var (
	// ErrUserConflict: signup hit an existing username or email.
	ErrUserConflict = errors.New("username or email already exists")

	// ErrInvalidCredentials covers both an unknown username and a failed
	// hash comparison. The two cases are deliberately indistinguishable so
	// a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// ErrUserNotFound: the lookup found no matching user.
	ErrUserNotFound = errors.New("user not found")

	// ErrBadReference: a supplied cart or payment identifier is not a valid
	// store identifier.
	ErrBadReference = errors.New("invalid document reference")
)
