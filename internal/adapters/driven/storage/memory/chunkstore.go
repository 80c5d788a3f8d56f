// Package memory provides in-memory storage adapters.
package memory

import (
	"fmt"
	"sort"

	"github.com/custodia-labs/recall-cli/internal/core/domain"
	"github.com/custodia-labs/recall-cli/internal/core/ports/driven"
)

// Ensure ChunkStore implements the interface.
var _ driven.ChunkStore = (*ChunkStore)(nil)

// ChunkStore is an immutable in-memory implementation of
// driven.ChunkStore. Built once per generation; no locking is needed
// because the map is never written after construction.
type ChunkStore struct {
	chunks map[string]domain.Chunk
	ids    []string
}

// NewChunkStore builds a store from the given chunks.
// Duplicate chunk IDs fail the build.
func NewChunkStore(chunks []domain.Chunk) (*ChunkStore, error) {
	s := &ChunkStore{
		chunks: make(map[string]domain.Chunk, len(chunks)),
		ids:    make([]string, 0, len(chunks)),
	}
	for i := range chunks {
		id := chunks[i].ID
		if id == "" {
			return nil, fmt.Errorf("chunk at position %d has empty ID", i)
		}
		if _, exists := s.chunks[id]; exists {
			return nil, fmt.Errorf("duplicate chunk ID %s", id)
		}
		s.chunks[id] = chunks[i]
		s.ids = append(s.ids, id)
	}
	sort.Strings(s.ids)
	return s, nil
}

// Get retrieves a chunk by ID.
func (s *ChunkStore) Get(id string) (*domain.Chunk, error) {
	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

// AllIDs returns every chunk ID, sorted.
func (s *ChunkStore) AllIDs() []string {
	ids := make([]string, len(s.ids))
	copy(ids, s.ids)
	return ids
}

// Len returns the number of chunks.
func (s *ChunkStore) Len() int {
	return len(s.chunks)
}
