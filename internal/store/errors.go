package store

import "errors"

var (
	// ErrDuplicateUsername is returned when a registration collides with an
	// existing username, compared case-insensitively.
	ErrDuplicateUsername = errors.New("username already taken")

	// ErrInvalidCredential covers both unknown username and wrong password so
	// callers can't enumerate accounts.
	ErrInvalidCredential = errors.New("invalid username or password")

	ErrSelfFollow        = errors.New("cannot follow yourself")
	ErrInsufficientSpots = errors.New("not enough spots for a matchup")
	ErrNotFound          = errors.New("not found")
)
