// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package title

import "context"

// # Storage Contract

// Repository abstracts persistence of titles, their taxonomy links and the
// derived rating.
type Repository interface {

	// List returns a filtered, paginated slice of titles with hydrated
	// category, genres and rating, plus the total match count.
	List(ctx context.Context, filter Filter, limit, offset int) ([]*Title, int, error)

	// GetByID resolves one fully hydrated title.
	// Returns apperr.NotFound when no such title exists.
	GetByID(ctx context.Context, id int64) (*Title, error)

	// Exists reports whether a title row is present without hydrating it.
	Exists(ctx context.Context, id int64) (bool, error)

	// Create inserts a title and its genre links in one transaction,
	// resolving taxonomy slugs. Unknown slugs yield a validation error.
	Create(ctx context.Context, input CreateInput) (*Title, error)

	// Update applies the non-nil fields of input, replacing the genre set
	// when one is supplied. Returns apperr.NotFound for unknown titles.
	Update(ctx context.Context, id int64, input UpdateInput) (*Title, error)

	// Delete removes a title along with its reviews and comments.
	Delete(ctx context.Context, id int64) error
}
