package handlers

import (
	"net/http"

	"github.com/upb/retrieval-gateway/app"
	"github.com/upb/retrieval-gateway/internal/requestctx"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services/audit"
	"github.com/upb/retrieval-gateway/utils"
)

// WhoamiHandler echoes the resolved principal and receipts the resolution.
func WhoamiHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		requestID := requestctx.RequestID(ctx)

		p, ok := requestctx.Principal(ctx)
		if !ok {
			_ = utils.WriteUnauthorized(w, requestID, "")
			return
		}

		deps.Audit.Emit(ctx, audit.EventIdentityResolved,
			audit.String("user_id", p.UserID),
			audit.String("tenant_id", p.TenantID),
			audit.String("role", string(p.Role)),
		)

		_ = utils.WriteOK(w, models.WhoamiResponse{
			UserID:    p.UserID,
			TenantID:  p.TenantID,
			Role:      p.Role,
			RequestID: requestID,
		})
	}
}
