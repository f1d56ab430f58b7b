// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

/*
Package account provides administrative management of user accounts and
the self-service profile endpoint.

It operates on the same account records as the auth package but through a
different lens: auth owns the passwordless signup lifecycle, while account
covers everything an operator does with existing records (listing, manual
provisioning, role changes, removal) plus the authenticated user's own
profile.

# Access Control

  - Admin: Full CRUD over every account, including role assignment.
  - Authenticated: Read and update of the caller's own profile. Role changes
    through the profile endpoint are silently ignored.
*/
package account

// # Query Types

// Filter narrows an administrative account listing.
type Filter struct {
	// Case-insensitive substring match on username. Empty matches all.
	Search string
}

// # Input Types

// CreateInput carries the fields an administrator supplies when
// provisioning an account manually.
type CreateInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Bio       string `json:"bio"`
	Role      string `json:"role"`
}

// UpdateInput carries a partial account update. Nil fields are left
// untouched.
type UpdateInput struct {
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	Role      *string `json:"role"`
}

// normalize applies the role assignment policy to a self-service update.
func (input *UpdateInput) normalize(allowRoleChange bool) {
	if !allowRoleChange {
		input.Role = nil
	}
}
