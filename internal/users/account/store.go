// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package account

import (
	"context"

	"github.com/ndelaeva/kritika/internal/users/auth"
)

// # Storage Contract

// Repository abstracts persistence of account records for administrative
// and self-service operations.
type Repository interface {

	// List returns a filtered, paginated slice of accounts ordered by
	// username, along with the total match count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error)

	// Create inserts a fully specified account record. Returns
	// apperr.Conflict when the username or email is already taken.
	Create(ctx context.Context, input CreateInput) (*auth.User, error)

	// GetByUsername resolves an account by its exact username.
	// Returns apperr.NotFound when no such account exists.
	GetByUsername(ctx context.Context, username string) (*auth.User, error)

	// Update applies the non-nil fields of input to the named account and
	// returns the updated record. Returns apperr.NotFound when the account
	// does not exist and apperr.Conflict on an email collision.
	Update(ctx context.Context, username string, input UpdateInput) (*auth.User, error)

	// Delete removes the named account. Returns apperr.NotFound when no
	// row was deleted.
	Delete(ctx context.Context, username string) error
}
