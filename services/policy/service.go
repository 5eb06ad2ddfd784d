// Package policy decides which classifications a role may ingest and read.
// The mapping is a data-driven table: new roles and classifications compose
// without code changes, and an unknown role maps to the empty set.
package policy

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/upb/retrieval-gateway/models"
	"github.com/upb/retrieval-gateway/services"
	"github.com/upb/retrieval-gateway/services/audit"
)

// ReasonClassificationForbidden is the fixed denial reason code for a
// role/classification mismatch.
const ReasonClassificationForbidden = "CLASSIFICATION_FORBIDDEN"

// Table maps a role to its allowed classification set.
type Table map[models.Role][]models.Classification

// DefaultTable returns the shipped role table. Admins see everything;
// everyone else sees only public documents.
func DefaultTable() Table {
	return Table{
		models.RoleAdmin:  {models.ClassificationPublic, models.ClassificationAdmin},
		models.RoleStaff:  {models.ClassificationPublic},
		models.RoleIntern: {models.ClassificationPublic},
	}
}

// Service enforces the classification policy and receipts every denial.
type Service struct {
	table   Table
	auditor *audit.Emitter
	logger  *zap.Logger
}

// NewService creates a policy service over the given table.
func NewService(table Table, auditor *audit.Emitter, logger *zap.Logger) *Service {
	return &Service{table: table, auditor: auditor, logger: logger}
}

// Allowed returns the classification set for a role. Unknown roles get nil:
// fail-closed, never inherited or defaulted.
func (s *Service) Allowed(role models.Role) []models.Classification {
	return s.table[role]
}

// QueryScope computes the sole scoping input for retrieval. The caller
// never supplies a classification filter; scope derives entirely from the
// authenticated role.
func (s *Service) QueryScope(p models.Principal) []models.Classification {
	return s.Allowed(p.Role)
}

// AuthorizeIngest allows the ingest iff the classification is in the
// principal's allowed set. On denial it emits exactly one access_denied
// audit event synchronously, then returns the forbidden error — there is
// no deny without a receipt.
func (s *Service) AuthorizeIngest(ctx context.Context, p models.Principal, classification models.Classification, path string) error {
	for _, c := range s.Allowed(p.Role) {
		if c == classification {
			return nil
		}
	}
	return s.deny(ctx, p, path, ReasonClassificationForbidden)
}

// deny is the centralized deny handler: audit receipt first, then error.
func (s *Service) deny(ctx context.Context, p models.Principal, path, reasonCode string) error {
	s.auditor.Emit(ctx, audit.EventAccessDenied,
		audit.String("reason_code", reasonCode),
		audit.String("tenant_id", p.TenantID),
		audit.String("user_id", p.UserID),
		audit.String("role", string(p.Role)),
		audit.Int("status", 403),
		audit.String("path", path),
	)
	s.logger.Warn("ingest denied",
		zap.String("reason_code", reasonCode),
		zap.String("role", string(p.Role)))
	return services.NewForbiddenError(
		fmt.Sprintf("role %q may not perform this operation", p.Role),
		reasonCode)
}
