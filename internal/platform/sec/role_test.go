// Copyright (c) 2026 MODON Evolutio. All rights reserved.

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/modonevolutio/modon/internal/platform/sec"
)

/*
TestPermissionsForRole verifies the static role→capability table, including
the fail-closed empty set for unknown roles.
*/
func TestPermissionsForRole(t *testing.T) {
	t.Run("buyer", func(t *testing.T) {
		perms := sec.PermissionsForRole(sec.RoleBuyer)
		assert.Contains(t, perms, sec.PermPropertiesRead)
		assert.Contains(t, perms, sec.PermFavoritesManage)
		assert.NotContains(t, perms, sec.PermPropertiesWrite)
	})

	t.Run("agent_extends_buyer", func(t *testing.T) {
		perms := sec.PermissionsForRole(sec.RoleAgent)
		assert.Contains(t, perms, sec.PermLeadsRead)
		assert.NotContains(t, perms, sec.PermLeadsManage)
	})

	t.Run("super_admin_is_wildcard", func(t *testing.T) {
		assert.Equal(t, []string{sec.PermissionAll}, sec.PermissionsForRole(sec.RoleSuperAdmin))
	})

	t.Run("unknown_role_fails_closed", func(t *testing.T) {
		assert.Empty(t, sec.PermissionsForRole(sec.Role("intruder")))
	})

	t.Run("returned_slice_is_a_copy", func(t *testing.T) {
		perms := sec.PermissionsForRole(sec.RoleBuyer)
		perms[0] = "mutated"
		assert.NotContains(t, sec.PermissionsForRole(sec.RoleBuyer), "mutated")
	})
}

/*
TestHasPermission covers exact matches and the wildcard marker, which must
satisfy arbitrary permission strings including ones in no role's table.
*/
func TestHasPermission(t *testing.T) {
	t.Run("exact_match", func(t *testing.T) {
		granted := sec.PermissionsForRole(sec.RoleAdmin)
		assert.True(t, sec.HasPermission(granted, sec.PermPropertiesWrite))
		assert.False(t, sec.HasPermission(granted, sec.PermUsersManage))
	})

	t.Run("wildcard_matches_anything", func(t *testing.T) {
		granted := []string{sec.PermissionAll}
		assert.True(t, sec.HasPermission(granted, sec.PermUsersManage))
		assert.True(t, sec.HasPermission(granted, "made:up:permission"))
	})

	t.Run("empty_grant_matches_nothing", func(t *testing.T) {
		assert.False(t, sec.HasPermission(nil, sec.PermPropertiesRead))
	})
}

/*
TestRole_IsBackOffice verifies the admin-gate role predicate.
*/
func TestRole_IsBackOffice(t *testing.T) {
	assert.True(t, sec.RoleAdmin.IsBackOffice())
	assert.True(t, sec.RoleSuperAdmin.IsBackOffice())
	assert.False(t, sec.RoleBuyer.IsBackOffice())
	assert.False(t, sec.RoleAgent.IsBackOffice())
	assert.False(t, sec.Role("intruder").IsBackOffice())
}
