package handlers

import (
	"net/http"

	"github.com/upb/retrieval-gateway/app"
	"github.com/upb/retrieval-gateway/internal/requestctx"
	"github.com/upb/retrieval-gateway/utils"
)

// HealthResponse is the liveness probe body.
type HealthResponse struct {
	OK        bool   `json:"ok"`
	RequestID string `json:"request_id"`
}

// HealthCheck reports process liveness.
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = utils.WriteOK(w, HealthResponse{
			OK:        true,
			RequestID: requestctx.RequestID(r.Context()),
		})
	}
}
