// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ndelaeva/kritika/internal/platform/sec"
)

/*
TestRole_Allows walks the permission matrix from both sides of each
threshold.
*/
func TestRole_Allows(t *testing.T) {
	tests := []struct {
		name    string
		role    sec.Role
		action  sec.Action
		allowed bool
	}{
		{"anonymous_reads_catalog", sec.RoleAnonymous, sec.ActionCatalogRead, true},
		{"anonymous_reads_contributions", sec.RoleAnonymous, sec.ActionContributionRead, true},
		{"anonymous_cannot_post", sec.RoleAnonymous, sec.ActionContributionCreate, false},
		{"user_posts_contributions", sec.RoleUser, sec.ActionContributionCreate, true},
		{"user_cannot_moderate", sec.RoleUser, sec.ActionContributionModerate, false},
		{"user_cannot_write_catalog", sec.RoleUser, sec.ActionCatalogWrite, false},
		{"moderator_moderates", sec.RoleModerator, sec.ActionContributionModerate, true},
		{"moderator_cannot_write_catalog", sec.RoleModerator, sec.ActionCatalogWrite, false},
		{"moderator_cannot_admin_accounts", sec.RoleModerator, sec.ActionAccountAdmin, false},
		{"admin_writes_catalog", sec.RoleAdmin, sec.ActionCatalogWrite, true},
		{"admin_manages_accounts", sec.RoleAdmin, sec.ActionAccountAdmin, true},
		{"unknown_action_denied", sec.RoleAdmin, sec.Action("catalog.purge"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.Allows(tt.action))
		})
	}
}

/*
TestCanEditContribution covers the owner-or-moderator decision.
*/
func TestCanEditContribution(t *testing.T) {
	const author, stranger = int64(7), int64(8)

	tests := []struct {
		name      string
		role      sec.Role
		principal int64
		allowed   bool
	}{
		{"author_edits_own", sec.RoleUser, author, true},
		{"stranger_denied", sec.RoleUser, stranger, false},
		{"moderator_edits_any", sec.RoleModerator, stranger, true},
		{"admin_edits_any", sec.RoleAdmin, stranger, true},
		{"zero_principal_never_author", sec.RoleUser, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, sec.CanEditContribution(tt.role, tt.principal, author))
		})
	}
}
