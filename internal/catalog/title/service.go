// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package title

import (
	"context"

	"github.com/ndelaeva/kritika/internal/platform/constants"
	"github.com/ndelaeva/kritika/internal/platform/validate"
)

// # Service Layer

// Service orchestrates business rules for the title catalog.
type Service struct {
	repo Repository
}

// NewService constructs a new title [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

/*
List provides the public, filterable title listing.

Parameters:
  - context: context.Context
  - filter: Filter (Category, genre, name and year conditions)
  - limit, offset: int

Returns:
  - []*Title: Page of hydrated titles
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
Get retrieves a single title with its rating.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Title: Hydrated title
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, id int64) (*Title, error) {
	return service.repo.GetByID(context, id)
}

/*
Exists reports whether a title is present. Used by the review domain for
existence checks on nested routes.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - bool: Row presence
  - error: Execution failures
*/
func (service *Service) Exists(context context.Context, id int64) (bool, error) {
	return service.repo.Exists(context, id)
}

/*
Create validates and persists a new title.

Description: The release year may not lie in the future. A category and at
least one genre are mandatory; both are referenced by slug and resolved
during the insert.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Title: The created, fully hydrated title
  - error: Validation failures or unknown taxonomy slugs
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Title, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, constants.MaxTitleNameLength).
		Year(FieldYear, input.Year).
		Required(FieldCategory, input.Category).
		Custom(FieldGenre, len(input.Genres) == 0, "At least one genre is required")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.Create(context, input)
}

/*
Update applies a partial patch to a title.

Parameters:
  - context: context.Context
  - id: int64
  - input: UpdateInput

Returns:
  - *Title: The updated title
  - error: Validation, not found or execution failures
*/
func (service *Service) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, *input.Name).
			MaxLen(FieldName, *input.Name, constants.MaxTitleNameLength)
	}
	if input.Year != nil {
		validator.Year(FieldYear, *input.Year)
	}
	if input.Genres != nil {
		validator.Custom(FieldGenre, len(*input.Genres) == 0, "At least one genre is required")
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.Update(context, id, input)
}

/*
Delete removes a title and everything cascading from it.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) Delete(context context.Context, id int64) error {
	return service.repo.Delete(context, id)
}
