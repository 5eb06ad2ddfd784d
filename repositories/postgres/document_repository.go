// Package postgres provides a PostgreSQL-backed DocumentStore for
// deployments that need documents to outlive the process.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/config"
	"github.com/upb/retrieval-gateway/models"
)

// DocumentRepository implements repositories.DocumentStore on PostgreSQL.
// It enforces the same tenant + classification filter as the in-memory
// store, inside the SQL itself.
type DocumentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewDocumentRepository wraps an existing database handle.
func NewDocumentRepository(db *sql.DB, logger *zap.Logger) *DocumentRepository {
	return &DocumentRepository{db: db, logger: logger}
}

// Open connects to PostgreSQL using the given configuration and verifies
// the connection.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *zap.Logger) (*DocumentRepository, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("database connection established",
		zap.String("connection", cfg.LogString()))
	return NewDocumentRepository(db, logger), nil
}

// Put inserts a new document row and returns the stored document.
func (r *DocumentRepository) Put(ctx context.Context, tenantID string, classification models.Classification, title, body string) (models.Document, error) {
	doc := models.Document{
		DocID:          uuid.NewString(),
		TenantID:       tenantID,
		Classification: classification,
		Title:          title,
		Body:           body,
	}

	const query = `
		INSERT INTO documents (doc_id, tenant_id, classification, title, body, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	if _, err := r.db.ExecContext(ctx, query,
		doc.DocID, doc.TenantID, string(doc.Classification), doc.Title, doc.Body); err != nil {
		return models.Document{}, fmt.Errorf("failed to insert document: %w", err)
	}
	return doc, nil
}

// ListScoped returns documents for the tenant whose classification is in
// allowed. Both predicates live in the WHERE clause so no wider row set
// ever leaves the database.
func (r *DocumentRepository) ListScoped(ctx context.Context, tenantID string, allowed []models.Classification) ([]models.Document, error) {
	if len(allowed) == 0 {
		return nil, nil
	}
	classifications := make([]string, len(allowed))
	for i, c := range allowed {
		classifications[i] = string(c)
	}

	const query = `
		SELECT doc_id, tenant_id, classification, title, body
		FROM documents
		WHERE tenant_id = $1 AND classification = ANY($2)
		ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query, tenantID, pq.Array(classifications))
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		var d models.Document
		var classification string
		if err := rows.Scan(&d.DocID, &d.TenantID, &classification, &d.Title, &d.Body); err != nil {
			return nil, fmt.Errorf("failed to scan document: %w", err)
		}
		d.Classification = models.Classification(classification)
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate documents: %w", err)
	}
	return out, nil
}

// Clear removes all documents.
func (r *DocumentRepository) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM documents`); err != nil {
		return fmt.Errorf("failed to clear documents: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (r *DocumentRepository) Close() error {
	return r.db.Close()
}
