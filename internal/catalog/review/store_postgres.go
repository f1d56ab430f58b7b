// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package review

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// # Review Methods

/*
ListReviews retrieves a page of a title's reviews, newest first.

Parameters:
  - context: context.Context
  - titleID: int64
  - limit, offset: int

Returns:
  - []*Review: Page with hydrated author usernames
  - int: Total review count for the title
  - error: Execution or scanning errors
*/
func (repository *PostgresRepository) ListReviews(context context.Context, titleID int64, limit, offset int) ([]*Review, int, error) {
	const countQuery = `SELECT COUNT(*) FROM catalog.review WHERE title_id = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, titleID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "review_count_failed")
	}

	const pageQuery = `
		SELECT r.id, r.text, r.score, r.author_id, a.username, r.pub_date, r.title_id
		FROM catalog.review r
		JOIN users.account a ON a.id = r.author_id
		WHERE r.title_id = $1
		ORDER BY r.pub_date DESC, r.id DESC
		LIMIT $2 OFFSET $3;
	`

	rows, err := repository.db.Query(context, pageQuery, titleID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "review_list_failed")
	}
	defer rows.Close()

	reviews := make([]*Review, 0)
	for rows.Next() {
		r := &Review{}
		if err := rows.Scan(&r.ID, &r.Text, &r.Score, &r.AuthorID, &r.Author, &r.PubDate, &r.TitleID); err != nil {
			return nil, 0, dberr.Wrap(err, "review_scan_failed")
		}
		reviews = append(reviews, r)
	}

	return reviews, total, rows.Err()
}

/*
GetReview resolves a single review scoped by its title.

Parameters:
  - context: context.Context
  - titleID: int64 (Parent scope)
  - reviewID: int64

Returns:
  - *Review: Hydrated review
  - error: apperr.NotFound when absent or attached to another title
*/
func (repository *PostgresRepository) GetReview(context context.Context, titleID, reviewID int64) (*Review, error) {
	const query = `
		SELECT r.id, r.text, r.score, r.author_id, a.username, r.pub_date, r.title_id
		FROM catalog.review r
		JOIN users.account a ON a.id = r.author_id
		WHERE r.title_id = $1 AND r.id = $2;
	`

	r := &Review{}
	err := repository.db.QueryRow(context, query, titleID, reviewID).
		Scan(&r.ID, &r.Text, &r.Score, &r.AuthorID, &r.Author, &r.PubDate, &r.TitleID)
	if err != nil {
		return nil, dberr.Wrap(err, "review_get_failed")
	}

	return r, nil
}

/*
CreateReview inserts a review, relying on the unique (title, author) pair
constraint to reject duplicates atomically under concurrent submissions.

Parameters:
  - context: context.Context
  - review: *Review (TitleID, AuthorID, Text and Score populated)

Returns:
  - error: apperr.Conflict on a duplicate review
*/
func (repository *PostgresRepository) CreateReview(context context.Context, review *Review) error {
	const query = `
		INSERT INTO catalog.review (title_id, author_id, text, score)
		VALUES ($1, $2, $3, $4)
		RETURNING id, pub_date, (SELECT username FROM users.account WHERE id = $2);
	`

	err := repository.db.QueryRow(context, query, review.TitleID, review.AuthorID, review.Text, review.Score).
		Scan(&review.ID, &review.PubDate, &review.Author)

	return dberr.Wrap(err, "You have already reviewed this title")
}

/*
UpdateReview rewrites the text and score of an existing review.

Parameters:
  - context: context.Context
  - review: *Review (ID, Text and Score populated)

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) UpdateReview(context context.Context, review *Review) error {
	const query = `UPDATE catalog.review SET text = $2, score = $3 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, review.ID, review.Text, review.Score)
	if err != nil {
		return dberr.Wrap(err, "review_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

/*
DeleteReview removes a review scoped by its title, cascading to comments.

Parameters:
  - context: context.Context
  - titleID, reviewID: int64

Returns:
  - error: apperr.NotFound when no row was deleted
*/
func (repository *PostgresRepository) DeleteReview(context context.Context, titleID, reviewID int64) error {
	const query = `DELETE FROM catalog.review WHERE title_id = $1 AND id = $2`

	tag, err := repository.db.Exec(context, query, titleID, reviewID)
	if err != nil {
		return dberr.Wrap(err, "review_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Review")
	}

	return nil
}

// # Comment Methods

/*
ListComments retrieves a page of a review's comments, oldest first.

Parameters:
  - context: context.Context
  - reviewID: int64
  - limit, offset: int

Returns:
  - []*Comment: Page with hydrated author usernames
  - int: Total comment count for the review
  - error: Execution or scanning errors
*/
func (repository *PostgresRepository) ListComments(context context.Context, reviewID int64, limit, offset int) ([]*Comment, int, error) {
	const countQuery = `SELECT COUNT(*) FROM catalog.comment WHERE review_id = $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, reviewID).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "comment_count_failed")
	}

	const pageQuery = `
		SELECT c.id, c.text, c.author_id, a.username, c.pub_date, c.review_id
		FROM catalog.comment c
		JOIN users.account a ON a.id = c.author_id
		WHERE c.review_id = $1
		ORDER BY c.pub_date ASC, c.id ASC
		LIMIT $2 OFFSET $3;
	`

	rows, err := repository.db.Query(context, pageQuery, reviewID, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "comment_list_failed")
	}
	defer rows.Close()

	comments := make([]*Comment, 0)
	for rows.Next() {
		c := &Comment{}
		if err := rows.Scan(&c.ID, &c.Text, &c.AuthorID, &c.Author, &c.PubDate, &c.ReviewID); err != nil {
			return nil, 0, dberr.Wrap(err, "comment_scan_failed")
		}
		comments = append(comments, c)
	}

	return comments, total, rows.Err()
}

/*
GetComment resolves a single comment scoped by its review.

Parameters:
  - context: context.Context
  - reviewID: int64 (Parent scope)
  - commentID: int64

Returns:
  - *Comment: Hydrated comment
  - error: apperr.NotFound when absent or attached to another review
*/
func (repository *PostgresRepository) GetComment(context context.Context, reviewID, commentID int64) (*Comment, error) {
	const query = `
		SELECT c.id, c.text, c.author_id, a.username, c.pub_date, c.review_id
		FROM catalog.comment c
		JOIN users.account a ON a.id = c.author_id
		WHERE c.review_id = $1 AND c.id = $2;
	`

	c := &Comment{}
	err := repository.db.QueryRow(context, query, reviewID, commentID).
		Scan(&c.ID, &c.Text, &c.AuthorID, &c.Author, &c.PubDate, &c.ReviewID)
	if err != nil {
		return nil, dberr.Wrap(err, "comment_get_failed")
	}

	return c, nil
}

/*
CreateComment inserts a comment under a review.

Parameters:
  - context: context.Context
  - comment: *Comment (ReviewID, AuthorID and Text populated)

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) CreateComment(context context.Context, comment *Comment) error {
	const query = `
		INSERT INTO catalog.comment (review_id, author_id, text)
		VALUES ($1, $2, $3)
		RETURNING id, pub_date, (SELECT username FROM users.account WHERE id = $2);
	`

	err := repository.db.QueryRow(context, query, comment.ReviewID, comment.AuthorID, comment.Text).
		Scan(&comment.ID, &comment.PubDate, &comment.Author)

	return dberr.Wrap(err, "comment_insert_failed")
}

/*
UpdateComment rewrites the text of an existing comment.

Parameters:
  - context: context.Context
  - comment: *Comment (ID and Text populated)

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) UpdateComment(context context.Context, comment *Comment) error {
	const query = `UPDATE catalog.comment SET text = $2 WHERE id = $1`

	tag, err := repository.db.Exec(context, query, comment.ID, comment.Text)
	if err != nil {
		return dberr.Wrap(err, "comment_update_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}

/*
DeleteComment removes a comment scoped by its review.

Parameters:
  - context: context.Context
  - reviewID, commentID: int64

Returns:
  - error: apperr.NotFound when no row was deleted
*/
func (repository *PostgresRepository) DeleteComment(context context.Context, reviewID, commentID int64) error {
	const query = `DELETE FROM catalog.comment WHERE review_id = $1 AND id = $2`

	tag, err := repository.db.Exec(context, query, reviewID, commentID)
	if err != nil {
		return dberr.Wrap(err, "comment_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment")
	}

	return nil
}
