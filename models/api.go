package models

// IngestRequest is the payload for POST /ingest.
type IngestRequest struct {
	Title          string         `json:"title" validate:"required,min=1,max=200"`
	Body           string         `json:"body" validate:"required,min=1,max=10000"`
	Classification Classification `json:"classification" validate:"required,oneof=public admin"`
}

// IngestResponse is returned on successful ingest.
type IngestResponse struct {
	DocID     string `json:"doc_id"`
	RequestID string `json:"request_id"`
}

// QueryRequest is the payload for POST /query. Queries carry no
// classification parameter; retrieval scope is derived server-side from the
// authenticated role.
type QueryRequest struct {
	Query string `json:"query" validate:"required,min=1,max=1000"`
}

// QueryResult is a single ranked hit. Snippet is the redacted body
// truncated to the display width, never the raw body.
type QueryResult struct {
	DocID   string `json:"doc_id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// QueryResponse is returned for POST /query.
type QueryResponse struct {
	RequestID string        `json:"request_id"`
	Results   []QueryResult `json:"results"`
}

// WhoamiResponse echoes the resolved principal back to the caller.
type WhoamiResponse struct {
	UserID    string `json:"user_id"`
	TenantID  string `json:"tenant_id"`
	Role      Role   `json:"role"`
	RequestID string `json:"request_id"`
}
