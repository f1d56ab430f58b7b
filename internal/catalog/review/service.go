// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package review

import (
	"context"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/constants"
	"github.com/ndelaeva/kritika/internal/platform/sec"
	"github.com/ndelaeva/kritika/internal/platform/validate"
)

// # Service Layer

// TitleDirectory is the slice of the title domain the review service needs
// for existence checks on nested routes.
type TitleDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service orchestrates business rules for reviews and comments.
type Service struct {
	repo   Repository
	titles TitleDirectory
}

// NewService constructs a new review [Service].
func NewService(repo Repository, titles TitleDirectory) *Service {
	return &Service{repo: repo, titles: titles}
}

// ensureTitle turns a missing parent title into a not found error before
// any nested operation runs.
func (service *Service) ensureTitle(context context.Context, titleID int64) error {
	exists, err := service.titles.Exists(context, titleID)
	if err != nil {
		return err
	}
	if !exists {
		return apperr.NotFound("Title")
	}
	return nil
}

// ensureOwnership rejects edits by principals who neither authored the
// contribution nor hold moderation rights.
func ensureOwnership(principal *sec.AuthClaims, authorID int64) error {
	if !sec.CanEditContribution(principal.Role, principal.UserID, authorID) {
		return apperr.Forbidden("You can only modify your own content")
	}
	return nil
}

func validateReviewFields(text string, score int) error {
	validator := &validate.Validator{}
	validator.Required(FieldText, text).
		Range(FieldScore, score, constants.MinReviewScore, constants.MaxReviewScore)
	return validator.Err()
}

// # Review Methods

/*
ListReviews provides a paginated listing of a title's reviews.

Parameters:
  - context: context.Context
  - titleID: int64
  - limit, offset: int

Returns:
  - []*Review: Page of reviews, newest first
  - int: Total review count
  - error: apperr.NotFound for unknown titles
*/
func (service *Service) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListReviews(context, titleID, limit, offset)
}

/*
GetReview retrieves a single review under a title.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64

Returns:
  - *Review: Hydrated review
  - error: apperr.NotFound for unknown title or review
*/
func (service *Service) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}
	return service.repo.GetReview(context, titleID, reviewID)
}

/*
CreateReview submits the caller's review of a title.

Description: The score must fall within the accepted range. Each user may
review a title once; repeated submissions conflict.

Parameters:
  - context: context.Context
  - titleID: int64
  - principal: *sec.AuthClaims (Verified caller)
  - input: ReviewInput

Returns:
  - *Review: The created review
  - error: Validation, not found or duplicate review failures
*/
func (service *Service) CreateReview(context context.Context, titleID int64, principal *sec.AuthClaims, input ReviewInput) (*Review, error) {
	if err := validateReviewFields(input.Text, input.Score); err != nil {
		return nil, err
	}
	if err := service.ensureTitle(context, titleID); err != nil {
		return nil, err
	}

	created := &Review{
		Contribution: Contribution{Text: input.Text, AuthorID: principal.UserID},
		TitleID:      titleID,
		Score:        input.Score,
	}
	if err := service.repo.CreateReview(context, created); err != nil {
		return nil, err
	}

	return created, nil
}

/*
UpdateReview applies a partial update to a review on behalf of its author
or a moderator.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64
  - principal: *sec.AuthClaims
  - patch: ReviewPatch (Nil fields untouched)

Returns:
  - *Review: The updated review
  - error: Validation, permission or not found failures
*/
func (service *Service) UpdateReview(context context.Context, titleID, reviewID int64, principal *sec.AuthClaims, patch ReviewPatch) (*Review, error) {
	current, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwnership(principal, current.AuthorID); err != nil {
		return nil, err
	}

	if patch.Text != nil {
		current.Text = *patch.Text
	}
	if patch.Score != nil {
		current.Score = *patch.Score
	}
	if err := validateReviewFields(current.Text, current.Score); err != nil {
		return nil, err
	}

	if err := service.repo.UpdateReview(context, current); err != nil {
		return nil, err
	}

	return current, nil
}

/*
DeleteReview removes a review on behalf of its author or a moderator.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64
  - principal: *sec.AuthClaims

Returns:
  - error: Permission or not found failures
*/
func (service *Service) DeleteReview(context context.Context, titleID, reviewID int64, principal *sec.AuthClaims) error {
	current, err := service.GetReview(context, titleID, reviewID)
	if err != nil {
		return err
	}
	if err := ensureOwnership(principal, current.AuthorID); err != nil {
		return err
	}

	return service.repo.DeleteReview(context, titleID, reviewID)
}

// # Comment Methods

/*
ListComments provides a paginated listing of a review's comments.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64
  - limit, offset: int

Returns:
  - []*Comment: Page of comments, oldest first
  - int: Total comment count
  - error: apperr.NotFound for unknown title or review
*/
func (service *Service) ListComments(context context.Context, titleID, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, 0, err
	}
	return service.repo.ListComments(context, reviewID, limit, offset)
}

/*
GetComment retrieves a single comment under a review.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: int64

Returns:
  - *Comment: Hydrated comment
  - error: apperr.NotFound anywhere along the resource chain
*/
func (service *Service) GetComment(context context.Context, titleID, reviewID, commentID int64) (*Comment, error) {
	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}
	return service.repo.GetComment(context, reviewID, commentID)
}

/*
CreateComment attaches the caller's comment to a review.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64
  - principal: *sec.AuthClaims
  - input: CommentInput

Returns:
  - *Comment: The created comment
  - error: Validation or not found failures
*/
func (service *Service) CreateComment(context context.Context, titleID, reviewID int64, principal *sec.AuthClaims, input CommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.GetReview(context, titleID, reviewID); err != nil {
		return nil, err
	}

	created := &Comment{
		Contribution: Contribution{Text: input.Text, AuthorID: principal.UserID},
		ReviewID:     reviewID,
	}
	if err := service.repo.CreateComment(context, created); err != nil {
		return nil, err
	}

	return created, nil
}

/*
UpdateComment rewrites a comment on behalf of its author or a moderator.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: int64
  - principal: *sec.AuthClaims
  - input: CommentInput

Returns:
  - *Comment: The updated comment
  - error: Validation, permission or not found failures
*/
func (service *Service) UpdateComment(context context.Context, titleID, reviewID, commentID int64, principal *sec.AuthClaims, input CommentInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldText, input.Text)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	current, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return nil, err
	}
	if err := ensureOwnership(principal, current.AuthorID); err != nil {
		return nil, err
	}

	current.Text = input.Text
	if err := service.repo.UpdateComment(context, current); err != nil {
		return nil, err
	}

	return current, nil
}

/*
DeleteComment removes a comment on behalf of its author or a moderator.

Parameters:
  - context: context.Context
  - titleID, reviewID, commentID: int64
  - principal: *sec.AuthClaims

Returns:
  - error: Permission or not found failures
*/
func (service *Service) DeleteComment(context context.Context, titleID, reviewID, commentID int64, principal *sec.AuthClaims) error {
	current, err := service.GetComment(context, titleID, reviewID, commentID)
	if err != nil {
		return err
	}
	if err := ensureOwnership(principal, current.AuthorID); err != nil {
		return err
	}

	return service.repo.DeleteComment(context, reviewID, commentID)
}
