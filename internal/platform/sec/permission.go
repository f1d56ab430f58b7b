// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec

// # Action Categories
//
// Every API operation falls into one of these categories. The permission
// decision is a pure table lookup keyed by (role, action); ownership of a
// review or comment is the single extra input, handled by
// [CanEditContribution].

// Action identifies a category of API operation for permission decisions.
type Action string

const (
	// Reading catalog metadata: categories, genres, titles.
	ActionCatalogRead Action = "catalog.read"

	// Creating, updating, or deleting catalog metadata.
	ActionCatalogWrite Action = "catalog.write"

	// Reading reviews and comments.
	ActionContributionRead Action = "contribution.read"

	// Posting a new review or comment.
	ActionContributionCreate Action = "contribution.create"

	// Editing or deleting someone else's review or comment.
	ActionContributionModerate Action = "contribution.moderate"

	// Managing arbitrary account records.
	ActionAccountAdmin Action = "account.admin"

	// Reading or updating the caller's own account record.
	ActionAccountSelf Action = "account.self"
)

// minimumRole is the permission matrix: the least privileged role allowed to
// perform each action category. Roles are totally ordered, so a single
// threshold per action expresses the full matrix.
var minimumRole = map[Action]Role{
	ActionCatalogRead:          RoleAnonymous,
	ActionCatalogWrite:         RoleAdmin,
	ActionContributionRead:     RoleAnonymous,
	ActionContributionCreate:   RoleUser,
	ActionContributionModerate: RoleModerator,
	ActionAccountAdmin:         RoleAdmin,
	ActionAccountSelf:          RoleUser,
}

// Allows reports whether a principal with role r may perform the action.
// Unknown actions are always denied.
func (r Role) Allows(action Action) bool {
	required, known := minimumRole[action]
	if !known {
		return false
	}
	return r.AtLeast(required)
}

// CanEditContribution decides update/delete access to a review or comment.
//
// The author may always edit their own contribution; everyone else needs
// moderation privileges.
func CanEditContribution(role Role, principalID, authorID int64) bool {
	if principalID != 0 && principalID == authorID {
		return true
	}
	return role.Allows(ActionContributionModerate)
}
