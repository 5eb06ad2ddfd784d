package models

// Role is the authenticated role of a principal. The classification policy
// table is keyed by role; roles unknown to the table get an empty allowed
// set (fail-closed).
type Role string

const (
	RoleIntern Role = "intern"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

// Principal is the identity triple derived from the incoming request. It is
// reconstructed on every request and never persisted.
//
// When resolution succeeds all three fields are non-empty.
type Principal struct {
	UserID   string `json:"user_id"`
	TenantID string `json:"tenant_id"`
	Role     Role   `json:"role"`
}
