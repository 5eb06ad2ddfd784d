// Package audit emits the append-only audit trail. Every event is a single
// self-contained structured record with a fixed key allowlist; values are
// sanitized before emission and the emitter itself never fails a request.
package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/internal/requestctx"
)

// SchemaVersion is stamped onto every emitted event.
const SchemaVersion = 1

// Well-known event names.
const (
	EventIdentityResolved   = "identity_resolved"
	EventAuthFailed         = "auth_failed"
	EventAccessDenied       = "access_denied"
	EventDocIngested        = "doc_ingested"
	EventQueryAllowed       = "query_allowed"
	EventAuditSystemFailure = "audit_system_failure"
)

// Placeholders used when a value fails sanitization.
const (
	invalidFormatPlaceholder = "invalid_format"
	truncationMarker         = "...[truncated]"
	maxStringLen             = 512
)

// safeIDPattern is the strict shape identifiers, roles and event names must
// match to be emitted verbatim.
var safeIDPattern = regexp.MustCompile(`^[A-Za-z0-9\-._:]{1,128}$`)

// allowedKeys is the audit schema. Keys outside it are silently dropped;
// the allowlist is the contract, not a validation gate.
var allowedKeys = map[string]struct{}{
	"event": {}, "schema_version": {}, "request_id": {}, "timestamp": {},
	"tenant_id": {}, "user_id": {}, "role": {}, "status": {},
	"reason_code": {}, "path": {}, "doc_id": {}, "classification": {},
	"results_count": {}, "query_sha256": {}, "query_len": {},
}

// idKeys are the allowlisted keys whose values must match safeIDPattern.
var idKeys = map[string]struct{}{
	"event": {}, "request_id": {}, "tenant_id": {}, "user_id": {},
	"role": {}, "reason_code": {}, "doc_id": {}, "classification": {},
	"query_sha256": {},
}

// Field is a single audit event attribute.
type Field struct {
	Key    string
	strVal string
	intVal int
	isInt  bool
}

// String returns a string-valued audit field.
func String(key, value string) Field {
	return Field{Key: key, strVal: value}
}

// Int returns an integer-valued audit field.
func Int(key string, value int) Field {
	return Field{Key: key, intVal: value, isInt: true}
}

// Emitter writes audit events to the injected structured sink. The sink is
// expected to already sit behind the safe-log scrubbing filter.
type Emitter struct {
	logger *zap.Logger
}

// NewEmitter creates an Emitter over the given sink.
func NewEmitter(logger *zap.Logger) *Emitter {
	return &Emitter{logger: logger}
}

// Emit writes one audit event. Non-allowlisted fields are dropped,
// identifier values outside the safe-ID shape become "invalid_format", and
// long strings are truncated. Emit never panics outward: any internal
// failure degrades to a minimal audit_system_failure event so the request
// is unaffected.
func (e *Emitter) Emit(ctx context.Context, event string, fields ...Field) {
	requestID := requestctx.RequestID(ctx)
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("audit",
				zap.String("event", EventAuditSystemFailure),
				zap.Int("schema_version", SchemaVersion),
				zap.String("request_id", sanitizeID(requestID)))
		}
	}()

	zapFields := make([]zap.Field, 0, len(fields)+3)
	zapFields = append(zapFields,
		zap.String("event", sanitizeID(event)),
		zap.Int("schema_version", SchemaVersion),
		zap.String("request_id", sanitizeID(requestID)),
	)

	for _, f := range fields {
		if _, ok := allowedKeys[f.Key]; !ok {
			continue
		}
		if f.isInt {
			zapFields = append(zapFields, zap.Int(f.Key, f.intVal))
			continue
		}
		if _, isID := idKeys[f.Key]; isID {
			zapFields = append(zapFields, zap.String(f.Key, sanitizeID(f.strVal)))
			continue
		}
		zapFields = append(zapFields, zap.String(f.Key, capString(f.strVal)))
	}

	e.logger.Info("audit", zapFields...)
}

// SHA256Hex returns the hex-encoded SHA-256 digest of text. Queries are
// audited as digests, never verbatim.
func SHA256Hex(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

func sanitizeID(v string) string {
	if safeIDPattern.MatchString(v) {
		return v
	}
	return invalidFormatPlaceholder
}

func capString(v string) string {
	if len(v) <= maxStringLen {
		return v
	}
	return v[:maxStringLen] + truncationMarker
}
