// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec

// # Principal Roles

// Role represents the authorization level of a principal making a request.
type Role string

const (
	// Unrestricted system access
	RoleAdmin Role = "admin"

	// Can edit and remove any review or comment
	RoleModerator Role = "moderator"

	// Default role for registered accounts
	RoleUser Role = "user"

	// A request without a valid bearer token
	RoleAnonymous Role = "anonymous"
)

// AssignableRoles lists the roles an account record may carry. Anonymous is a
// principal class only and never stored.
var AssignableRoles = []string{string(RoleUser), string(RoleModerator), string(RoleAdmin)}

// EffectiveRole normalizes an account's stored role and superuser flag into a
// single principal role.
//
// The superuser flag is a separate escalation path (set directly in the
// database, never via the API); it is folded into admin here so that every
// downstream permission decision deals with exactly one dimension.
func EffectiveRole(stored Role, isSuperuser bool) Role {
	if isSuperuser {
		return RoleAdmin
	}
	switch stored {
	case RoleAdmin, RoleModerator, RoleUser:
		return stored
	}
	return RoleAnonymous
}

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r Role) AtLeast(target Role) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r Role) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}
