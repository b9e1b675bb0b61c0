package domain

// Employee roles. MANAGER and ADMIN inherit everything EMPLOYEE may do;
// the grouping lives in the rbac policy.
const (
	RoleEmployee = "EMPLOYEE"
	RoleManager  = "MANAGER"
	RoleAdmin    = "ADMIN"
)

func IsValidRole(role string) bool {
	switch role {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
