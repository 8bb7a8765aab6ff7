package storage

import (
	"context"
	"maps"
	"sync"

	"firstaid/dataloader/appcontext"
	"firstaid/dataloader/model"
)

// MemoryStore keeps documents in process memory. It backs the "memory"
// backend (dry runs) and the tests.
type MemoryStore struct {
	mu          sync.Mutex
	collections map[string]map[string]map[string]any
	commits     int

	// Err, when set, is returned by every BatchUpsert without writing anything.
	Err error
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]map[string]any)}
}

// BatchUpsert stores copies of docs. The whole batch is applied or none of it.
func (s *MemoryStore) BatchUpsert(ctx context.Context, collection string, docs []model.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return s.Err
	}
	for _, doc := range docs {
		if doc.ID == "" {
			return ErrInvalidDocumentID
		}
	}

	col, ok := s.collections[collection]
	if !ok {
		col = make(map[string]map[string]any)
		s.collections[collection] = col
	}
	for _, doc := range docs {
		col[doc.ID] = maps.Clone(doc.Data)
	}
	s.commits++

	appcontext.LoggerFromContext(ctx).DebugContext(ctx, "Batch applied in memory",
		"collection", collection, "documents", len(docs))
	return nil
}

// Get returns a copy of one stored document.
func (s *MemoryStore) Get(collection, id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, false
	}
	return maps.Clone(doc), true
}

// Count returns the number of documents in a collection.
func (s *MemoryStore) Count(collection string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.collections[collection])
}

// Commits returns how many batches were applied.
func (s *MemoryStore) Commits() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commits
}

// Close is a no-op.
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
