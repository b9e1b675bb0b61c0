package approval

import (
	"go-workforce/internal/domain"

	"github.com/google/uuid"
)

// Reviewer identifies who is attempting a decision. The caller supplies it from
// the already-authenticated session; this package never reads ambient state.
type Reviewer struct {
	ID   uuid.UUID
	Role string
}

// CanDecide reports whether the reviewer may decide an item whose owner reports
// to ownerManagerID. Admins may decide anything; otherwise the reviewer must be
// the owner's direct manager. A missing manager means nobody below admin can
// decide for that owner.
func CanDecide(reviewer Reviewer, ownerManagerID *uuid.UUID) bool {
	if reviewer.Role == domain.RoleAdmin {
		return true
	}
	return ownerManagerID != nil && *ownerManagerID == reviewer.ID
}

// CanBulkDecide reports whether the role may run batch decisions. Bulk
// operations bypass the direct-manager rule entirely, so they stay admin-only.
func CanBulkDecide(role string) bool {
	return role == domain.RoleAdmin
}
