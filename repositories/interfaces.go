// Package repositories defines the data-access contracts for the gateway.
package repositories

import (
	"context"

	"github.com/upb/retrieval-gateway/models"
)

// DocumentStore is the single data-access choke point for documents. Every
// retrieval path must route through ListScoped; it enforces tenant and
// classification filtering independently of the policy layer (defense in
// depth).
type DocumentStore interface {
	// Put stores a new immutable document and returns it with its
	// generated doc_id.
	Put(ctx context.Context, tenantID string, classification models.Classification, title, body string) (models.Document, error)

	// ListScoped returns only documents that belong to tenantID AND whose
	// classification is in allowed, regardless of any upstream filtering
	// mistake.
	ListScoped(ctx context.Context, tenantID string, allowed []models.Classification) ([]models.Document, error)

	// Clear removes all documents. Used to reset state in tests.
	Clear(ctx context.Context) error
}
