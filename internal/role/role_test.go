package role_test

import (
	"testing"

	"github.com/logfretaulnay/hr-zen/internal/role"

	"github.com/stretchr/testify/assert"
)

func TestResolve_Precedence(t *testing.T) {
	t.Run("metadata role wins over profile role", func(t *testing.T) {
		res := role.Resolve("ADMIN", "EMPLOYEE")
		assert.Equal(t, role.RoleAdmin, res.Role)
		assert.Equal(t, role.SourceMetadata, res.Source)
	})

	t.Run("falls back to profile role when metadata is empty", func(t *testing.T) {
		res := role.Resolve("", "MANAGER")
		assert.Equal(t, role.RoleManager, res.Role)
		assert.Equal(t, role.SourceProfile, res.Source)
	})

	t.Run("invalid metadata role falls through to profile", func(t *testing.T) {
		res := role.Resolve("SUPERUSER", "MANAGER")
		assert.Equal(t, role.RoleManager, res.Role)
		assert.Equal(t, role.SourceProfile, res.Source)
	})

	t.Run("defaults to EMPLOYEE when both sources are empty", func(t *testing.T) {
		res := role.Resolve("", "")
		assert.Equal(t, role.RoleEmployee, res.Role)
		assert.Equal(t, role.SourceDefault, res.Source)
	})
}

func TestCapabilities(t *testing.T) {
	t.Run("admin implies manager", func(t *testing.T) {
		caps := role.Resolve("ADMIN", "").Capabilities()
		assert.True(t, caps.IsAdmin)
		assert.True(t, caps.IsManager)
		assert.True(t, caps.IsEmployee)
	})

	t.Run("manager is not admin", func(t *testing.T) {
		caps := role.Resolve("", "MANAGER").Capabilities()
		assert.False(t, caps.IsAdmin)
		assert.True(t, caps.IsManager)
	})

	t.Run("employee has no decision capability", func(t *testing.T) {
		caps := role.Resolve("EMPLOYEE", "").Capabilities()
		assert.False(t, caps.IsAdmin)
		assert.False(t, caps.IsManager)
		assert.True(t, caps.IsEmployee)
	})

	t.Run("defaulted resolution is not a loaded employee", func(t *testing.T) {
		caps := role.Resolve("", "").Capabilities()
		assert.False(t, caps.IsEmployee)
		assert.False(t, caps.IsManager)
	})

	t.Run("isAdmin always implies isManager", func(t *testing.T) {
		for _, meta := range []string{"EMPLOYEE", "MANAGER", "ADMIN", "", "garbage"} {
			for _, prof := range []string{"EMPLOYEE", "MANAGER", "ADMIN", ""} {
				caps := role.Resolve(meta, prof).Capabilities()
				if caps.IsAdmin {
					assert.True(t, caps.IsManager, "meta=%q prof=%q", meta, prof)
				}
			}
		}
	})
}

func TestHasManagerCapability(t *testing.T) {
	assert.True(t, role.HasManagerCapability("MANAGER"))
	assert.True(t, role.HasManagerCapability("ADMIN"))
	assert.False(t, role.HasManagerCapability("EMPLOYEE"))
	assert.False(t, role.HasManagerCapability(""))
}
