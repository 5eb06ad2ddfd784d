package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/app"
	"github.com/upb/retrieval-gateway/internal/requestctx"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services"
	"github.com/upb/retrieval-gateway/services/audit"
	"github.com/upb/retrieval-gateway/utils"
)

// IngestHandler stores a classified document for the caller's tenant.
// Authorization happens before anything touches the store; a denial has
// already been receipted by the policy layer when it surfaces here.
func IngestHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestctx.RequestID(ctx)

		p, ok := requestctx.Principal(ctx)
		if !ok {
			_ = utils.WriteUnauthorized(w, requestID, "")
			return
		}

		var req models.IngestRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			_ = utils.WriteBadRequest(w, requestID, "invalid JSON body")
			return
		}
		if err := utils.ValidateStruct(&req); err != nil {
			_ = utils.WriteBadRequest(w, requestID, err.Error())
			return
		}

		if err := deps.Policy.AuthorizeIngest(ctx, p, req.Classification, r.URL.Path); err != nil {
			writeDomainError(w, requestID, err)
			return
		}

		doc, err := deps.Store.Put(ctx, p.TenantID, req.Classification, req.Title, req.Body)
		if err != nil {
			deps.Logger.Error("document store put failed",
				zap.String("request_id", requestID),
				zap.Error(err))
			_ = utils.WriteInternalServerError(w, requestID, "")
			return
		}

		deps.Audit.Emit(ctx, audit.EventDocIngested,
			audit.String("doc_id", doc.DocID),
			audit.String("classification", string(doc.Classification)),
			audit.String("tenant_id", p.TenantID),
			audit.String("user_id", p.UserID),
		)

		_ = utils.WriteCreated(w, models.IngestResponse{
			DocID:     doc.DocID,
			RequestID: requestID,
		})
	}
}

// writeDomainError maps a domain error to its HTTP shape.
func writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var de *services.DomainError
	if !errors.As(err, &de) {
		_ = utils.WriteInternalServerError(w, requestID, "")
		return
	}
	switch de.Type {
	case services.ErrorTypeAuthentication:
		_ = utils.WriteUnauthorized(w, requestID, de.Message)
	case services.ErrorTypeForbidden:
		_ = utils.WriteForbidden(w, requestID, de.ReasonCode)
	case services.ErrorTypeValidation:
		_ = utils.WriteBadRequest(w, requestID, de.Message)
	default:
		_ = utils.WriteInternalServerError(w, requestID, "")
	}
}
