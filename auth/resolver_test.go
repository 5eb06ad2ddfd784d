package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/upb/retrieval-gateway/config"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services"
)

const testSecret = "unit-test-secret"

func newClaimsResolver(t *testing.T) *Resolver {
	t.Helper()
	r, err := NewResolver(config.AuthConfig{Mode: config.AuthModeClaims, JWTSecret: testSecret})
	require.NoError(t, err)
	return r
}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestNewResolverConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.AuthConfig
	}{
		{"headers without opt-in", config.AuthConfig{Mode: config.AuthModeHeaders}},
		{"claims without secret", config.AuthConfig{Mode: config.AuthModeClaims}},
		{"unknown mode", config.AuthConfig{Mode: "oauth"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewResolver(tt.cfg)
			require.Error(t, err)
			var de *services.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, services.ErrorTypeConfiguration, de.Type)
		})
	}
}

func TestHeaderModeResolvesIdentity(t *testing.T) {
	r, err := NewResolver(config.AuthConfig{
		Mode:                 config.AuthModeHeaders,
		AllowInsecureHeaders: true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("X-User", "alice")
	req.Header.Set("X-Tenant", "tenant-a")
	req.Header.Set("X-Role", "staff")

	p, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: "alice", TenantID: "tenant-a", Role: models.RoleStaff}, p)
}

func TestHeaderModeDefaults(t *testing.T) {
	r, err := NewResolver(config.AuthConfig{
		Mode:                 config.AuthModeHeaders,
		AllowInsecureHeaders: true,
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)

	p, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, "anonymous", p.UserID)
	assert.Equal(t, "unknown", p.TenantID)
	assert.Equal(t, models.Role("unknown"), p.Role)
}

func TestClaimsModeValidToken(t *testing.T) {
	r := newClaimsResolver(t)
	token := signToken(t, testSecret, jwt.MapClaims{
		"sub":    "alice",
		"tenant": "tenant-a",
		"role":   "admin",
		"exp":    time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	p, err := r.Resolve(req)
	require.NoError(t, err)
	assert.Equal(t, models.Principal{UserID: "alice", TenantID: "tenant-a", Role: models.RoleAdmin}, p)
}

func TestClaimsModeFailClosed(t *testing.T) {
	r := newClaimsResolver(t)

	tests := []struct {
		name       string
		setup      func(req *http.Request)
		wantReason string
	}{
		{
			name:       "no authorization header",
			setup:      func(req *http.Request) {},
			wantReason: ReasonMissingToken,
		},
		{
			name: "malformed scheme",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
			},
			wantReason: ReasonMissingToken,
		},
		{
			name: "garbage token",
			setup: func(req *http.Request) {
				req.Header.Set("Authorization", "Bearer not.a.jwt")
			},
			wantReason: ReasonInvalidToken,
		},
		{
			name: "wrong signing secret",
			setup: func(req *http.Request) {
				token := signToken(t, "other-secret", jwt.MapClaims{
					"sub": "alice", "tenant": "tenant-a", "role": "admin",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantReason: ReasonInvalidToken,
		},
		{
			name: "expired token",
			setup: func(req *http.Request) {
				token := signToken(t, testSecret, jwt.MapClaims{
					"sub": "alice", "tenant": "tenant-a", "role": "admin",
					"exp": time.Now().Add(-time.Hour).Unix(),
				})
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantReason: ReasonInvalidToken,
		},
		{
			name: "missing tenant claim",
			setup: func(req *http.Request) {
				token := signToken(t, testSecret, jwt.MapClaims{
					"sub": "alice", "role": "admin",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantReason: ReasonIncompleteClaims,
		},
		{
			name: "whitespace subject",
			setup: func(req *http.Request) {
				token := signToken(t, testSecret, jwt.MapClaims{
					"sub": "   ", "tenant": "tenant-a", "role": "admin",
					"exp": time.Now().Add(time.Hour).Unix(),
				})
				req.Header.Set("Authorization", "Bearer "+token)
			},
			wantReason: ReasonIncompleteClaims,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			tt.setup(req)

			p, err := r.Resolve(req)
			require.Error(t, err)
			// No default identity leaks out of a failed resolution.
			assert.Equal(t, models.Principal{}, p)

			var de *services.DomainError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, services.ErrorTypeAuthentication, de.Type)
			assert.Equal(t, tt.wantReason, de.ReasonCode)
		})
	}
}
