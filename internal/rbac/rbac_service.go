package rbac

import (
	"go-workforce/internal/domain"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"go.uber.org/zap"
)

// The policy is static configuration, not tenant data, so it ships in code
// and the enforcer is built once at startup.
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

type Service interface {
	Enforce(role, resource, action string) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	// Role hierarchy: admins inherit everything managers can do, managers
	// inherit everything employees can do.
	groupings := [][]string{
		{domain.RoleManager, domain.RoleEmployee},
		{domain.RoleAdmin, domain.RoleManager},
	}
	for _, g := range groupings {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	policies := [][]string{
		{domain.RoleEmployee, "time_entry", "create"},
		{domain.RoleEmployee, "time_entry", "read"},
		{domain.RoleEmployee, "time_entry", "update"},
		{domain.RoleEmployee, "time_entry", "submit"},
		{domain.RoleEmployee, "time_entry", "delete"},
		{domain.RoleEmployee, "leave_request", "create"},
		{domain.RoleEmployee, "leave_request", "read"},
		{domain.RoleEmployee, "leave_request", "cancel"},
		{domain.RoleEmployee, "balance", "read"},
		{domain.RoleEmployee, "notification", "read"},
		{domain.RoleEmployee, "employee", "read_options"},

		{domain.RoleManager, "time_entry", "decide"},
		{domain.RoleManager, "leave_request", "decide"},
		{domain.RoleManager, "balance", "read_all"},
		{domain.RoleManager, "employee", "read"},

		{domain.RoleAdmin, "time_entry", "bulk_decide"},
		{domain.RoleAdmin, "user", "create"},
		{domain.RoleAdmin, "employee", "create"},
		{domain.RoleAdmin, "employee", "update"},
		{domain.RoleAdmin, "leave_category", "create"},
		{domain.RoleAdmin, "leave_category", "update"},
		{domain.RoleAdmin, "project", "create"},
		{domain.RoleAdmin, "project", "update"},
	}
	for _, p := range policies {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	// Reference data reads are open to every authenticated role.
	openReads := [][]string{
		{domain.RoleEmployee, "leave_category", "read"},
		{domain.RoleEmployee, "project", "read"},
	}
	for _, p := range openReads {
		if _, err := e.AddPolicy(p[0], p[1], p[2]); err != nil {
			return nil, err
		}
	}

	l.Info("rbac enforcer ready",
		zap.Int("policies", len(policies)+len(openReads)),
	)

	return &service{enforcer: e, logger: l}, nil
}

func (s *service) Enforce(role, resource, action string) (bool, error) {
	if !domain.IsValidRole(role) {
		s.logger.Warn("enforce called with unknown role", zap.String("role", role))
		return false, nil
	}
	return s.enforcer.Enforce(role, resource, action)
}
