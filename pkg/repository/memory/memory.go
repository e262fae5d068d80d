package memory

import (
	"github.com/almalink/almalink/pkg/domain/interfaces"
)

// ErrNotFound is returned when a requested record does not exist
var ErrNotFound = interfaces.ErrNotFound

// Memory is an in-memory repository for development and testing
type Memory struct {
	profile   *profileRepository
	embedding *embeddingRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		profile:   newProfileRepository(),
		embedding: newEmbeddingRepository(),
	}
}

func (m *Memory) Profile() interfaces.ProfileRepository {
	return m.profile
}

func (m *Memory) Embedding() interfaces.EmbeddingRepository {
	return m.embedding
}

func (m *Memory) Close() error {
	return nil
}
