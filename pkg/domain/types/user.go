package types

import (
	"github.com/m-mizutani/goerr/v2"
)

// UserID represents a unique identifier for a user within a workspace.
// The surrounding platform owns user identity; this service treats the
// ID as an opaque string.
type UserID string

// Validate checks if the UserID is valid
func (u UserID) Validate() error {
	if u == "" {
		return goerr.New("user ID cannot be empty")
	}
	return nil
}

// String returns the string representation of UserID
func (u UserID) String() string {
	return string(u)
}
