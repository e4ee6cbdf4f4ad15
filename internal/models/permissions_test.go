package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAdminHoldsEveryPermission(t *testing.T) {
	all := []Permission{
		PermEmployeesManage, PermProjectsRead, PermProjectsManage,
		PermRoomsManage, PermResourcesManage,
		PermReservationsCreate, PermReservationsManage,
		PermIncidentsReport, PermIncidentsResolve,
		PermResetsManage, PermLogsRead, PermEventsSubscribe,
	}

	for _, perm := range all {
		assert.True(t, HasPermission(RoleAdmin, perm), "ADMIN should hold %s", perm)
	}
}

func TestRoleCapabilities(t *testing.T) {
	tests := []struct {
		role    string
		perm    Permission
		granted bool
	}{
		{RoleRH, PermEmployeesManage, true},
		{RoleRH, PermProjectsManage, false},
		{RoleRH, PermResetsManage, false},
		{RoleChefDeProjet, PermProjectsManage, true},
		{RoleChefDeProjet, PermReservationsManage, true},
		{RoleChefDeProjet, PermEmployeesManage, false},
		{RoleDeveloppeur, PermReservationsCreate, true},
		{RoleDeveloppeur, PermIncidentsReport, true},
		{RoleDeveloppeur, PermProjectsRead, true},
		{RoleDeveloppeur, PermIncidentsResolve, false},
		{RoleDeveloppeur, PermLogsRead, false},
		{RoleStagiaire, PermReservationsCreate, true},
		{RoleStagiaire, PermRoomsManage, false},
		{RoleEmploye, PermIncidentsReport, true},
		{RoleEmploye, PermResourcesManage, false},
	}

	for _, tt := range tests {
		got := HasPermission(tt.role, tt.perm)
		assert.Equal(t, tt.granted, got, "%s / %s", tt.role, tt.perm)
	}
}

func TestUnknownRoleGrantsNothing(t *testing.T) {
	assert.False(t, HasPermission("SUPER_ADMIN", PermEmployeesManage))
	assert.False(t, HasPermission("", PermProjectsRead))
}
