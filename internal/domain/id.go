package domain

import "github.com/google/uuid"

// NewID generates a record identifier.
func NewID() string {
	return uuid.NewString()
}
