package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/app"
	"github.com/upb/retrieval-gateway/internal/requestctx"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services/audit"
	"github.com/upb/retrieval-gateway/services/redact"
	"github.com/upb/retrieval-gateway/services/search"
	"github.com/upb/retrieval-gateway/utils"
)

// SnippetWidth is the fixed display width of result snippets.
const SnippetWidth = 160

// QueryHandler runs a scoped lexical query. The retrieval scope derives
// entirely from the authenticated role; the request carries no
// classification parameter. Result snippets are redacted before truncation.
func QueryHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestctx.RequestID(ctx)

		p, ok := requestctx.Principal(ctx)
		if !ok {
			_ = utils.WriteUnauthorized(w, requestID, "")
			return
		}

		var req models.QueryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, requestID, "invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(&req); err != nil {
			_ = utils.WriteBadRequest(w, requestID, err.Error())
			return
		}

		allowed := deps.Policy.QueryScope(p)
		docs, err := deps.Store.ListScoped(ctx, p.TenantID, allowed)
		if err != nil {
			deps.Logger.Error("scoped listing failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, requestID, "")
			return
		}

		ranked := search.Rank(docs, req.Query)
		results := make([]models.QueryResult, 0, len(ranked))
		for _, d := range ranked {
			results = append(results, models.QueryResult{
				DocID:   d.DocID,
				Title:   d.Title,
				Snippet: redact.Snippet(d.Body, SnippetWidth),
			})
		}

		deps.Audit.Emit(ctx, audit.EventQueryAllowed,
			audit.String("tenant_id", p.TenantID),
			audit.String("user_id", p.UserID),
			audit.String("role", string(p.Role)),
			audit.String("query_sha256", audit.SHA256Hex(req.Query)),
			audit.Int("query_len", len(req.Query)),
			audit.Int("results_count", len(results)),
		)

		_ = utils.WriteOK(w, models.QueryResponse{
			RequestID: requestID,
			Results:   results,
		})
	}
}
