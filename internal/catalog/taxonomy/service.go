// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package taxonomy

import (
	"context"

	"github.com/ndelaeva/kritika/internal/platform/constants"
	"github.com/ndelaeva/kritika/internal/platform/validate"
	"github.com/ndelaeva/kritika/pkg/slug"
)

// # Service Layer

// Service orchestrates business rules for the taxonomy entities.
type Service struct {
	repo Repository
}

// NewService constructs a new taxonomy [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validateEntry enforces the shared taxonomy constraints, generating the
// slug from the name when the caller omitted one.
func validateEntry(entry *NameSlug) error {
	if entry.Slug == "" {
		entry.Slug = slug.From(entry.Name)
	}

	validator := &validate.Validator{}
	validator.Required(FieldName, entry.Name).
		MaxLen(FieldName, entry.Name, constants.MaxTitleNameLength).
		Required(FieldSlug, entry.Slug).
		MaxLen(FieldSlug, entry.Slug, constants.MaxSlugLength).
		Slug(FieldSlug, entry.Slug)

	return validator.Err()
}

// # Category Methods

/*
ListCategories provides a paginated, searchable category listing.

Parameters:
  - context: context.Context
  - filter: Filter (Name search)
  - limit: int
  - offset: int

Returns:
  - []*Category: Page of categories ordered by name
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	return service.repo.ListCategories(context, filter, limit, offset)
}

/*
CreateCategory validates and persists a new category.

Description: When the slug is omitted it is derived from the name. Slugs are
unique per taxonomy table.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: Validation failures or a slug collision
*/
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if err := validateEntry(&category.NameSlug); err != nil {
		return err
	}
	return service.repo.CreateCategory(context, category)
}

/*
DeleteCategory removes a category by slug. Titles that referenced it are
left uncategorized rather than removed.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) DeleteCategory(context context.Context, slug string) error {
	return service.repo.DeleteCategoryBySlug(context, slug)
}

// # Genre Methods

/*
ListGenres provides a paginated, searchable genre listing.

Parameters:
  - context: context.Context
  - filter: Filter (Name search)
  - limit: int
  - offset: int

Returns:
  - []*Genre: Page of genres ordered by name
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) ListGenres(context context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	return service.repo.ListGenres(context, filter, limit, offset)
}

/*
CreateGenre validates and persists a new genre.

Parameters:
  - context: context.Context
  - genre: *Genre

Returns:
  - error: Validation failures or a slug collision
*/
func (service *Service) CreateGenre(context context.Context, genre *Genre) error {
	if err := validateEntry(&genre.NameSlug); err != nil {
		return err
	}
	return service.repo.CreateGenre(context, genre)
}

/*
DeleteGenre removes a genre by slug along with its title associations.

Parameters:
  - context: context.Context
  - slug: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) DeleteGenre(context context.Context, slug string) error {
	return service.repo.DeleteGenreBySlug(context, slug)
}
