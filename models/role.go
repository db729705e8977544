package models

// WorkspaceRole is the ordered role of a member within a workspace.
//
// The ordering is fixed: member < manager < admin. "At least manager"
// checks compare positions in this ordering, so adding a role means
// inserting it at the right rank below.
type WorkspaceRole string

const (
	RoleMember  WorkspaceRole = "member"
	RoleManager WorkspaceRole = "manager"
	RoleAdmin   WorkspaceRole = "admin"
)

// roleRank maps each role to its position in the ordering.
// Unknown roles get rank 0 — below every valid role, so they fail
// every minimum-role check.
var roleRank = map[WorkspaceRole]int{
	RoleMember:  1,
	RoleManager: 2,
	RoleAdmin:   3,
}

// RoleAtLeast reports whether actual ranks at or above minimum.
func RoleAtLeast(actual, minimum WorkspaceRole) bool {
	return roleRank[actual] >= roleRank[minimum] && roleRank[actual] > 0
}

// Permission keys. Handlers and the UI gate on these names, never on raw
// role comparisons, so the matrix below is the single policy source.
const (
	PermManageTeams   = "manage_teams"
	PermManageCycles  = "manage_cycles"
	PermManageIssues  = "manage_issues"
	PermManageFAQs    = "manage_faqs"
	PermInviteMembers = "invite_members"
	PermViewAnalytics = "view_analytics"
)

// rolePermissions is the static role -> permission set matrix.
// Derived sets: every role inherits nothing implicitly — each row is
// written out in full so the policy reads at a glance.
var rolePermissions = map[WorkspaceRole]map[string]bool{
	RoleMember: {},
	RoleManager: {
		PermManageTeams:   true,
		PermManageCycles:  true,
		PermManageIssues:  true,
		PermInviteMembers: true,
		PermViewAnalytics: true,
	},
	RoleAdmin: {
		PermManageTeams:   true,
		PermManageCycles:  true,
		PermManageIssues:  true,
		PermManageFAQs:    true,
		PermInviteMembers: true,
		PermViewAnalytics: true,
	},
}

// RoleHasPermission reports whether role carries the named permission.
// Total over all inputs: unknown roles and unknown keys are simply false.
func RoleHasPermission(role WorkspaceRole, permission string) bool {
	return rolePermissions[role][permission]
}

// Permissions returns the full permission set for a role, for the UI to
// drive conditional rendering with a single lookup.
func Permissions(role WorkspaceRole) map[string]bool {
	perms := make(map[string]bool, len(rolePermissions[role]))
	for k, v := range rolePermissions[role] {
		perms[k] = v
	}
	return perms
}
