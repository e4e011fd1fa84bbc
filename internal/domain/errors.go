package domain

import "errors"

var (
	// ErrNotFound signals a missing record.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists signals a duplicate record.
	ErrAlreadyExists = errors.New("already exists")
	// ErrDuplicateEmail signals that an email address is already registered.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrValidation signals a document that does not match its collection schema.
	ErrValidation = errors.New("schema validation failed")
)
