package models

// Permission names consulted at the API boundary. Authorization is a single
// table lookup, never a per-handler role comparison.
type Permission string

const (
	PermEmployeesManage    Permission = "employees:manage"
	PermProjectsRead       Permission = "projects:read"
	PermProjectsManage     Permission = "projects:manage"
	PermRoomsManage        Permission = "rooms:manage"
	PermResourcesManage    Permission = "resources:manage"
	PermReservationsCreate Permission = "reservations:create"
	PermReservationsManage Permission = "reservations:manage"
	PermIncidentsReport    Permission = "incidents:report"
	PermIncidentsResolve   Permission = "incidents:resolve"
	PermResetsManage       Permission = "resets:manage"
	PermLogsRead           Permission = "logs:read"
	PermEventsSubscribe    Permission = "events:subscribe"
)

var basePermissions = []Permission{
	PermProjectsRead,
	PermReservationsCreate,
	PermIncidentsReport,
}

// rolePermissions is the capability table: role -> set of permitted actions.
var rolePermissions = map[string]map[Permission]bool{
	RoleAdmin: permSet(
		PermEmployeesManage, PermProjectsRead, PermProjectsManage,
		PermRoomsManage, PermResourcesManage,
		PermReservationsCreate, PermReservationsManage,
		PermIncidentsReport, PermIncidentsResolve,
		PermResetsManage, PermLogsRead, PermEventsSubscribe,
	),
	RoleChefDeProjet: permSet(append(basePermissions,
		PermProjectsManage, PermReservationsManage, PermEventsSubscribe)...),
	RoleRH: permSet(append(basePermissions,
		PermEmployeesManage, PermEventsSubscribe)...),
	RoleDeveloppeur: permSet(basePermissions...),
	RoleStagiaire:   permSet(basePermissions...),
	RoleEmploye:     permSet(basePermissions...),
}

func permSet(perms ...Permission) map[Permission]bool {
	set := make(map[Permission]bool, len(perms))
	for _, p := range perms {
		set[p] = true
	}
	return set
}

// HasPermission reports whether the role grants the permission. Unknown
// roles grant nothing.
func HasPermission(role string, perm Permission) bool {
	return rolePermissions[role][perm]
}
