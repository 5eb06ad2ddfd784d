package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/upb/retrieval-gateway/internal/requestctx"
)

func TestRequestIDEchoedAndThreaded(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	var seen string
	handler := RequestID(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestctx.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	echoed := rec.Header().Get(RequestIDHeader)
	require.NotEmpty(t, echoed)
	assert.Equal(t, echoed, seen)
	_, err := uuid.Parse(echoed)
	assert.NoError(t, err)
}

func TestRequestIDAccessLogShape(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	handler := RequestID(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodPost, "/query?q=payroll+secret", nil)
	req.Header.Set("Authorization", "Bearer abc")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entries := logs.FilterMessage("http_request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POST", fields["method"])
	assert.Equal(t, "/query", fields["path"])
	assert.Equal(t, int64(http.StatusTeapot), fields["status"])
	assert.Contains(t, fields, "latency_ms")

	// Fixed shape only: no query string, no headers, no body.
	assert.NotContains(t, fields, "query")
	assert.NotContains(t, fields, "authorization")
	for _, v := range fields {
		if s, ok := v.(string); ok {
			assert.NotContains(t, s, "payroll")
			assert.NotContains(t, s, "Bearer")
		}
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	handler := RequestID(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	ids := map[string]bool{}
	for i := 0; i < 10; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		ids[rec.Header().Get(RequestIDHeader)] = true
	}
	assert.Len(t, ids, 10)
}
