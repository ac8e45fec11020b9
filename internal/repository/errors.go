package repository

import "errors"

var (
	// ErrDuplicateLogin signals a unique-constraint violation on users.login.
	// Surfaced distinctly so callers can map it to a client-facing conflict.
	ErrDuplicateLogin = errors.New("repository: login already exists")
	// ErrUnknownLogin signals that no user row matches the given login.
	ErrUnknownLogin = errors.New("repository: login not found")
)
