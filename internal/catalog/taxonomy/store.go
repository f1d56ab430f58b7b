// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package taxonomy

import "context"

// # Storage Contract

// Repository abstracts persistence for both taxonomy tables. The category
// and genre methods are deliberately symmetric; they differ only in the
// backing table.
type Repository interface {
	ListCategories(ctx context.Context, filter Filter, limit, offset int) ([]*Category, int, error)
	CreateCategory(ctx context.Context, category *Category) error
	DeleteCategoryBySlug(ctx context.Context, slug string) error

	ListGenres(ctx context.Context, filter Filter, limit, offset int) ([]*Genre, int, error)
	CreateGenre(ctx context.Context, genre *Genre) error
	DeleteGenreBySlug(ctx context.Context, slug string) error
}
