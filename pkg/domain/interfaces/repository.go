package interfaces

import (
	"github.com/m-mizutani/goerr/v2"
)

// ErrNotFound is the shared sentinel for missing records. Each repository
// backend wraps it so callers can branch without importing a backend.
var ErrNotFound = goerr.New("record not found")

// Repository defines the interface for data persistence
type Repository interface {
	Profile() ProfileRepository
	Embedding() EmbeddingRepository
	Close() error
}
