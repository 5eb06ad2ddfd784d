package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/upb/retrieval-gateway/internal/requestctx"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services"
	"github.com/upb/retrieval-gateway/services/audit"
	"github.com/upb/retrieval-gateway/utils"
)

type stubResolver struct {
	principal models.Principal
	err       error
}

func (s stubResolver) Resolve(_ *http.Request) (models.Principal, error) {
	return s.principal, s.err
}

func newAuthMiddleware(resolver PrincipalResolver) (*AuthMiddleware, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := zap.New(core)
	return NewAuthMiddleware(resolver, audit.NewEmitter(logger), logger), logs
}

func TestResolvePrincipalSuccess(t *testing.T) {
	want := models.Principal{UserID: "alice", TenantID: "tenant-a", Role: models.RoleStaff}
	m, _ := newAuthMiddleware(stubResolver{principal: want})

	var got models.Principal
	var ok bool
	handler := m.ResolvePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, ok = requestctx.Principal(r.Context())
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.True(t, ok)
	assert.Equal(t, want, got)
}

func TestResolvePrincipalFailure(t *testing.T) {
	m, logs := newAuthMiddleware(stubResolver{
		err: services.NewAuthenticationError("invalid or expired token", "INVALID_TOKEN"),
	})

	called := false
	handler := m.ResolvePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/query", nil)
	handler.ServeHTTP(rec, req.WithContext(requestctx.WithRequestID(req.Context(), "req-9")))

	assert.False(t, called)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body utils.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unauthorized", body.Error)
	assert.Equal(t, "req-9", body.RequestID)

	// One auth_failed receipt with the reason code.
	var receipts []map[string]any
	for _, e := range logs.FilterMessage("audit").All() {
		fields := e.ContextMap()
		if fields["event"] == audit.EventAuthFailed {
			receipts = append(receipts, fields)
		}
	}
	require.Len(t, receipts, 1)
	assert.Equal(t, "INVALID_TOKEN", receipts[0]["reason_code"])
	assert.Equal(t, int64(http.StatusUnauthorized), receipts[0]["status"])
	assert.Equal(t, "/query", receipts[0]["path"])
	assert.Equal(t, "req-9", receipts[0]["request_id"])
}
