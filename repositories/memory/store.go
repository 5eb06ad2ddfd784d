// Package memory provides the default in-process DocumentStore: an
// append-only list behind a read-write mutex.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/upb/retrieval-gateway/models"
)

// Store is an in-memory DocumentStore. Appends are atomic relative to
// concurrent reads; reads may run concurrently with each other. Documents
// are never mutated after Put.
type Store struct {
	mu   sync.RWMutex
	docs []models.Document
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// Put stores a new document and returns it with a generated doc_id.
func (s *Store) Put(ctx context.Context, tenantID string, classification models.Classification, title, body string) (models.Document, error) {
	doc := models.Document{
		DocID:          uuid.NewString(),
		TenantID:       tenantID,
		Classification: classification,
		Title:          title,
		Body:           body,
	}
	s.mu.Lock()
	s.docs = append(s.docs, doc)
	s.mu.Unlock()
	return doc, nil
}

// ListScoped returns documents matching the tenant and one of the allowed
// classifications. The filter is applied here, inside the store, so an
// upstream mistake can never widen the result set.
func (s *Store) ListScoped(ctx context.Context, tenantID string, allowed []models.Classification) ([]models.Document, error) {
	allowedSet := make(map[models.Classification]struct{}, len(allowed))
	for _, c := range allowed {
		allowedSet[c] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Document
	for _, d := range s.docs {
		if d.TenantID != tenantID {
			continue
		}
		if _, ok := allowedSet[d.Classification]; !ok {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

// Clear removes all documents.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.docs = nil
	s.mu.Unlock()
	return nil
}
