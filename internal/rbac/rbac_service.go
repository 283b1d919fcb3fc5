package rbac

import (
	"sync"

	"github.com/logfretaulnay/hr-zen/internal/domain"
	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

// Static policy table. The EMPLOYEE grants are the baseline; MANAGER and
// ADMIN inherit everything below them through the grouping policies.
var policies = [][]string{
	{string(role.RoleEmployee), "leave", "create"},
	{string(role.RoleEmployee), "leave", "read"},
	{string(role.RoleEmployee), "leave", "cancel"},
	{string(role.RoleEmployee), "balance", "read"},
	{string(role.RoleEmployee), "leave_type", "read"},
	{string(role.RoleEmployee), "holiday", "read"},
	{string(role.RoleEmployee), "notification", "read"},
	{string(role.RoleEmployee), "notification", "update"},
	{string(role.RoleEmployee), "profile", "read"},
	{string(role.RoleEmployee), "profile", "update"},
	{string(role.RoleEmployee), "settings", "read"},

	{string(role.RoleManager), "leave", "decide"},
	{string(role.RoleManager), "leave", "read_all"},
	{string(role.RoleManager), "balance", "read_all"},

	{string(role.RoleAdmin), "balance", "manage"},
	{string(role.RoleAdmin), "leave_type", "manage"},
	{string(role.RoleAdmin), "holiday", "manage"},
	{string(role.RoleAdmin), "profile", "manage"},
	{string(role.RoleAdmin), "settings", "manage"},
}

var groupings = [][]string{
	{string(role.RoleManager), string(role.RoleEmployee)},
	{string(role.RoleAdmin), string(role.RoleManager)},
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) (Service, error) {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}

	s := &service{enforcer: enforcer, logger: l}
	if err := s.loadPolicies(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *service) loadPolicies() error {
	s.enforcer.ClearPolicy()

	for _, g := range groupings {
		if _, err := s.enforcer.AddGroupingPolicy(g[0], g[1]); err != nil {
			return err
		}
	}
	for _, p := range policies {
		if _, err := s.enforcer.AddPolicy(p[0], p[1], p[2]); err != nil {
			return err
		}
	}

	s.logger.Info("rbac policies loaded",
		zap.Int("policies", len(policies)),
		zap.Int("groupings", len(groupings)),
	)
	return nil
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("rbac enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}
