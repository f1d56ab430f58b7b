// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package review

import "context"

// # Storage Contract

// Repository abstracts persistence of reviews and their comments. Every
// lookup is scoped to the parent resource, so a review reached through the
// wrong title resolves to not found rather than leaking across titles.
type Repository interface {

	// ListReviews returns a page of a title's reviews, newest first,
	// with hydrated author usernames, plus the total count.
	ListReviews(ctx context.Context, titleID int64, limit, offset int) ([]*Review, int, error)

	// GetReview resolves one review scoped by its title.
	// Returns apperr.NotFound when absent or attached to another title.
	GetReview(ctx context.Context, titleID, reviewID int64) (*Review, error)

	// CreateReview inserts a review and hydrates the passed entity.
	// Returns apperr.Conflict when the author already reviewed the title.
	CreateReview(ctx context.Context, review *Review) error

	// UpdateReview rewrites a review's text and score.
	UpdateReview(ctx context.Context, review *Review) error

	// DeleteReview removes a review and its comments.
	DeleteReview(ctx context.Context, titleID, reviewID int64) error

	// ListComments returns a page of a review's comments, oldest first,
	// plus the total count.
	ListComments(ctx context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error)

	// GetComment resolves one comment scoped by its review.
	GetComment(ctx context.Context, reviewID, commentID int64) (*Comment, error)

	// CreateComment inserts a comment and hydrates the passed entity.
	CreateComment(ctx context.Context, comment *Comment) error

	// UpdateComment rewrites a comment's text.
	UpdateComment(ctx context.Context, comment *Comment) error

	// DeleteComment removes a comment.
	DeleteComment(ctx context.Context, reviewID, commentID int64) error
}
