// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package account

import (
	"context"

	"github.com/ndelaeva/kritika/internal/platform/constants"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/internal/platform/validate"
	"github.com/ndelaeva/kritika/internal/users/auth"
)

// # Service Layer

// Service orchestrates business rules for account administration and
// self-service profile management.
type Service struct {
	repo Repository
}

// NewService constructs a new account [Service].
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// validateProfileFields applies the shared field constraints for both
// administrative and self-service updates.
func validateProfileFields(validator *validate.Validator, input UpdateInput) {
	if input.Email != nil {
		validator.Required(auth.FieldEmail, *input.Email).
			MaxLen(auth.FieldEmail, *input.Email, constants.MaxEmailLength).
			Email(auth.FieldEmail, *input.Email)
	}
	if input.FirstName != nil {
		validator.MaxLen(auth.FieldFirstName, *input.FirstName, constants.MaxNameLength)
	}
	if input.LastName != nil {
		validator.MaxLen(auth.FieldLastName, *input.LastName, constants.MaxNameLength)
	}
	if input.Bio != nil {
		validator.MaxLen(auth.FieldBio, *input.Bio, constants.MaxBioLength)
	}
	if input.Role != nil {
		validator.OneOf(auth.FieldRole, *input.Role, sec.AssignableRoles...)
	}
}

/*
List provides a paginated administrative listing of accounts.

Parameters:
  - context: context.Context
  - filter: Filter (Username search)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total match count
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {
	return service.repo.List(context, filter, limit, offset)
}

/*
Create provisions an account on behalf of an administrator.

Description: Unlike signup, the administrator supplies every profile field
including the role; the account is active immediately and carries no
confirmation code. An empty role defaults to the regular user role.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *auth.User: The created account
  - error: Validation failures or identity collisions
*/
func (service *Service) Create(context context.Context, input CreateInput) (*auth.User, error) {
	if input.Role == "" {
		input.Role = string(sec.RoleUser)
	}

	validator := &validate.Validator{}
	validator.Required(auth.FieldUsername, input.Username).
		MaxLen(auth.FieldUsername, input.Username, constants.MaxUsernameLength).
		Username(auth.FieldUsername, input.Username).
		Required(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldEmail, input.Email, constants.MaxEmailLength).
		Email(auth.FieldEmail, input.Email).
		MaxLen(auth.FieldFirstName, input.FirstName, constants.MaxNameLength).
		MaxLen(auth.FieldLastName, input.LastName, constants.MaxNameLength).
		MaxLen(auth.FieldBio, input.Bio, constants.MaxBioLength).
		OneOf(auth.FieldRole, input.Role, sec.AssignableRoles...)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.Create(context, input)
}

/*
Get retrieves a single account by username for administrators.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Target account
  - error: apperr.NotFound or retrieval failures
*/
func (service *Service) Get(context context.Context, username string) (*auth.User, error) {
	return service.repo.GetByUsername(context, username)
}

/*
Update applies an administrative partial update, including role changes.

Parameters:
  - context: context.Context
  - username: string (Target account)
  - input: UpdateInput

Returns:
  - *auth.User: Updated account
  - error: Validation, not found or collision failures
*/
func (service *Service) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	validator := &validate.Validator{}
	validateProfileFields(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.Update(context, username, input)
}

/*
Delete removes an account and, via cascade, its reviews and comments.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (service *Service) Delete(context context.Context, username string) error {
	return service.repo.Delete(context, username)
}

// # Self-Service Methods

/*
GetSelf retrieves the calling user's own profile.

Parameters:
  - context: context.Context
  - username: string (Taken from the verified token, never from input)

Returns:
  - *auth.User: The caller's account
  - error: Retrieval failures
*/
func (service *Service) GetSelf(context context.Context, username string) (*auth.User, error) {
	return service.repo.GetByUsername(context, username)
}

/*
UpdateSelf applies a profile update on behalf of the account owner.

Description: A role field in the payload is discarded rather than rejected,
so a user cannot escalate their own privileges but an otherwise valid
request still succeeds.

Parameters:
  - context: context.Context
  - username: string (Taken from the verified token)
  - input: UpdateInput

Returns:
  - *auth.User: Updated profile
  - error: Validation or execution failures
*/
func (service *Service) UpdateSelf(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	input.normalize(false)

	validator := &validate.Validator{}
	validateProfileFields(validator, input)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.repo.Update(context, username, input)
}
