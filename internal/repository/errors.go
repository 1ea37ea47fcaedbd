package repository

import "errors"

// ErrNotFound is returned when a requested record does not exist in the store.
// It signals absence, not failure.
var ErrNotFound = errors.New("not found")

// ErrUsernameTaken is returned by CreateUser when the username already exists.
var ErrUsernameTaken = errors.New("username already taken")

// ErrMissingConnString is returned when the Postgres store is constructed
// without a connection string. It is a configuration error and fatal at startup.
var ErrMissingConnString = errors.New("DATABASE_URL environment variable is required")
