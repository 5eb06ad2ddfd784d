// Package auth resolves the per-request principal: the {user, tenant, role}
// triple every downstream decision keys on.
//
// Two modes exist. Header mode trusts identity headers and is only valid
// behind an explicit insecure opt-in; claims mode verifies a bearer token
// and fails closed on anything missing. Neither mode ever invents a default
// identity for claims-shaped input.
package auth

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/upb/retrieval-gateway/config"
	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services"
)

// Authentication failure reason codes.
const (
	ReasonMissingToken     = "MISSING_TOKEN"
	ReasonInvalidToken     = "INVALID_TOKEN"
	ReasonIncompleteClaims = "INCOMPLETE_CLAIMS"
)

// Identity headers trusted in header mode, with their low-trust defaults.
const (
	headerUser   = "X-User"
	headerTenant = "X-Tenant"
	headerRole   = "X-Role"

	defaultUser   = "anonymous"
	defaultTenant = "unknown"
	defaultRole   = "unknown"
)

// tokenClaims is the claim set required from a verified bearer token.
type tokenClaims struct {
	Tenant string `json:"tenant"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Resolver derives a Principal from an incoming request.
type Resolver struct {
	mode      string
	jwtSecret []byte
}

// NewResolver builds a resolver for the configured auth mode. Contradictory
// settings (header mode without the insecure opt-in, claims mode without a
// verification secret) are configuration errors: the server must not serve
// authenticated routes at all rather than fall back per-request.
func NewResolver(cfg config.AuthConfig) (*Resolver, error) {
	switch cfg.Mode {
	case config.AuthModeHeaders:
		if !cfg.AllowInsecureHeaders {
			return nil, services.NewConfigurationError(
				"header auth requires the explicit insecure-header opt-in")
		}
	case config.AuthModeClaims:
		if cfg.JWTSecret == "" {
			return nil, services.NewConfigurationError(
				"claims auth requires a token verification secret")
		}
	default:
		return nil, services.NewConfigurationError("unknown auth mode " + cfg.Mode)
	}
	return &Resolver{mode: cfg.Mode, jwtSecret: []byte(cfg.JWTSecret)}, nil
}

// Resolve derives the principal for this request. On success all three
// fields of the returned Principal are non-empty.
func (r *Resolver) Resolve(req *http.Request) (models.Principal, error) {
	if r.mode == config.AuthModeHeaders {
		return r.resolveFromHeaders(req), nil
	}
	return r.resolveFromClaims(req)
}

// resolveFromHeaders trusts identity headers. Missing individual headers
// default to sentinel values; this path is inherently low-trust and gated
// at construction time.
func (r *Resolver) resolveFromHeaders(req *http.Request) models.Principal {
	return models.Principal{
		UserID:   headerOrDefault(req, headerUser, defaultUser),
		TenantID: headerOrDefault(req, headerTenant, defaultTenant),
		Role:     models.Role(headerOrDefault(req, headerRole, defaultRole)),
	}
}

// resolveFromClaims verifies the bearer token and requires subject, tenant
// and role to be non-empty after trimming. No default identity is ever
// returned on missing input.
func (r *Resolver) resolveFromClaims(req *http.Request) (models.Principal, error) {
	raw := extractBearerToken(req)
	if raw == "" {
		return models.Principal{}, services.NewAuthenticationError(
			"missing bearer token", ReasonMissingToken)
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		return r.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return models.Principal{}, services.NewAuthenticationError(
			"invalid or expired token", ReasonInvalidToken)
	}

	sub := strings.TrimSpace(claims.Subject)
	tenant := strings.TrimSpace(claims.Tenant)
	role := strings.TrimSpace(claims.Role)
	if sub == "" || tenant == "" || role == "" {
		return models.Principal{}, services.NewAuthenticationError(
			"token claims missing subject, tenant or role", ReasonIncompleteClaims)
	}

	return models.Principal{
		UserID:   sub,
		TenantID: tenant,
		Role:     models.Role(role),
	}, nil
}

func headerOrDefault(req *http.Request, name, def string) string {
	if v := strings.TrimSpace(req.Header.Get(name)); v != "" {
		return v
	}
	return def
}

// extractBearerToken extracts the Bearer token from the Authorization header
func extractBearerToken(req *http.Request) string {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
