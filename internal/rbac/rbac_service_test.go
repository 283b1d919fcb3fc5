package rbac_test

import (
	"testing"

	"github.com/logfretaulnay/hr-zen/internal/domain"
	"github.com/logfretaulnay/hr-zen/internal/rbac"
	"github.com/logfretaulnay/hr-zen/internal/rbac/infra"

	"github.com/stretchr/testify/assert"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()

	enforcer, err := infra.NewEnforcer()
	assert.NoError(t, err)

	svc, err := rbac.NewService(enforcer)
	assert.NoError(t, err)
	return svc
}

func TestEnforce_Hierarchy(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		name     string
		role     string
		resource string
		action   string
		allowed  bool
	}{
		{"employee can create leave", "EMPLOYEE", "leave", "create", true},
		{"employee can cancel leave", "EMPLOYEE", "leave", "cancel", true},
		{"employee cannot decide leave", "EMPLOYEE", "leave", "decide", false},
		{"employee cannot manage leave types", "EMPLOYEE", "leave_type", "manage", false},
		{"manager can decide leave", "MANAGER", "leave", "decide", true},
		{"manager inherits employee create", "MANAGER", "leave", "create", true},
		{"manager cannot manage holidays", "MANAGER", "holiday", "manage", false},
		{"admin inherits manager decide", "ADMIN", "leave", "decide", true},
		{"admin can manage leave types", "ADMIN", "leave_type", "manage", true},
		{"admin can manage profiles", "ADMIN", "profile", "manage", true},
		{"unknown role gets nothing", "SUPERUSER", "leave", "read", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Role:     tc.role,
				Resource: tc.resource,
				Action:   tc.action,
			})
			assert.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}
