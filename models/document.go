package models

// Classification is the sensitivity level attached to a document at ingest
// time. It is immutable for the lifetime of the document.
type Classification string

const (
	ClassificationPublic Classification = "public"
	ClassificationAdmin  Classification = "admin"
)

// Valid reports whether the classification is one of the known levels.
func (c Classification) Valid() bool {
	return c == ClassificationPublic || c == ClassificationAdmin
}

// Document represents an ingested text document. Documents are created once
// on successful ingest and never mutated; there is no update or delete path.
type Document struct {
	DocID          string         `json:"doc_id"`
	TenantID       string         `json:"tenant_id"`
	Classification Classification `json:"classification"`
	Title          string         `json:"title"`
	Body           string         `json:"body"`
}
