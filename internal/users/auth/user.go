// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

/*
Package auth implements passwordless identity for Kritika.

There are no passwords anywhere in the system. An account proves control of
its email address by receiving a short-lived numeric confirmation code and
exchanging it exactly once for a signed bearer token.

Architecture:

  - Service: Orchestrates the signup and token-exchange flows.
  - Directory: Abstracted persistence contract for account records (Postgres).
  - Notifier: Delivery contract for confirmation codes (email transport is an
    external collaborator; only its contract lives here).

State machine per account: pending (outstanding code, not yet activated) and
active (no outstanding code). Every re-signup with the identical identity
replaces the code; a successful exchange clears it atomically.
*/
package auth

import (
	"time"

	"github.com/ndelaeva/kritika/internal/platform/sec"
)

// # Domain Entities

// User represents a registered account of the Kritika platform.
type User struct {
	ID        int64    `json:"id"`
	Username  string   `json:"username"`
	Email     string   `json:"email"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Bio       string   `json:"bio,omitempty"`
	Role      sec.Role `json:"role"`

	// IsSuperuser is a privilege escalation independent of Role, set only by
	// operators directly in the database. Folded into admin by EffectiveRole.
	IsSuperuser bool `json:"-"`

	// IsActive flips to true on the first successful code exchange.
	IsActive bool `json:"-"`

	// ConfirmationCode is the pending single-use code, nil once consumed.
	// Explicitly omitted from JSON for security.
	ConfirmationCode *string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveRole returns the principal role used for every permission
// decision, with the superuser flag normalized into admin.
func (u *User) EffectiveRole() sec.Role {
	return sec.EffectiveRole(u.Role, u.IsSuperuser)
}

// IsPending reports whether the account still has an outstanding
// confirmation code.
func (u *User) IsPending() bool {
	return u.ConfirmationCode != nil
}

// # Field Identifiers

// Global field names for validation and identity mapping in the auth domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldFirstName        = "first_name"
	FieldLastName         = "last_name"
	FieldBio              = "bio"
	FieldRole             = "role"
	FieldConfirmationCode = "confirmation_code"
	FieldAccessToken      = "access_token"
)
