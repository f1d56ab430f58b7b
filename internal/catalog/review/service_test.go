// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelaeva/kritika/internal/catalog/review"
	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/sec"
)

// # Fakes

// fakeTitles answers existence checks from a fixed set of known title IDs.
type fakeTitles struct {
	known map[int64]bool
}

func (f *fakeTitles) Exists(_ context.Context, id int64) (bool, error) {
	return f.known[id], nil
}

// fakeRepo is an in-memory Repository good enough for the service rules.
type fakeRepo struct {
	reviews  map[int64]*review.Review
	comments map[int64]*review.Comment
	nextID   int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		reviews:  map[int64]*review.Review{},
		comments: map[int64]*review.Comment{},
		nextID:   1,
	}
}

func (f *fakeRepo) ListReviews(_ context.Context, titleID int64, _, _ int) ([]*review.Review, int, error) {
	var page []*review.Review
	for _, r := range f.reviews {
		if r.TitleID == titleID {
			page = append(page, r)
		}
	}
	return page, len(page), nil
}

func (f *fakeRepo) GetReview(_ context.Context, titleID, reviewID int64) (*review.Review, error) {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return nil, apperr.NotFound("Review")
	}
	clone := *r
	return &clone, nil
}

func (f *fakeRepo) CreateReview(_ context.Context, r *review.Review) error {
	for _, existing := range f.reviews {
		if existing.TitleID == r.TitleID && existing.AuthorID == r.AuthorID {
			return apperr.Conflict("You have already reviewed this title")
		}
	}
	r.ID = f.nextID
	r.PubDate = time.Now()
	f.nextID++
	clone := *r
	f.reviews[r.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateReview(_ context.Context, r *review.Review) error {
	stored, ok := f.reviews[r.ID]
	if !ok {
		return apperr.NotFound("Review")
	}
	stored.Text = r.Text
	stored.Score = r.Score
	return nil
}

func (f *fakeRepo) DeleteReview(_ context.Context, titleID, reviewID int64) error {
	r, ok := f.reviews[reviewID]
	if !ok || r.TitleID != titleID {
		return apperr.NotFound("Review")
	}
	delete(f.reviews, reviewID)
	return nil
}

func (f *fakeRepo) ListComments(_ context.Context, reviewID int64, _, _ int) ([]*review.Comment, int, error) {
	var page []*review.Comment
	for _, c := range f.comments {
		if c.ReviewID == reviewID {
			page = append(page, c)
		}
	}
	return page, len(page), nil
}

func (f *fakeRepo) GetComment(_ context.Context, reviewID, commentID int64) (*review.Comment, error) {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return nil, apperr.NotFound("Comment")
	}
	clone := *c
	return &clone, nil
}

func (f *fakeRepo) CreateComment(_ context.Context, c *review.Comment) error {
	c.ID = f.nextID
	c.PubDate = time.Now()
	f.nextID++
	clone := *c
	f.comments[c.ID] = &clone
	return nil
}

func (f *fakeRepo) UpdateComment(_ context.Context, c *review.Comment) error {
	stored, ok := f.comments[c.ID]
	if !ok {
		return apperr.NotFound("Comment")
	}
	stored.Text = c.Text
	return nil
}

func (f *fakeRepo) DeleteComment(_ context.Context, reviewID, commentID int64) error {
	c, ok := f.comments[commentID]
	if !ok || c.ReviewID != reviewID {
		return apperr.NotFound("Comment")
	}
	delete(f.comments, commentID)
	return nil
}

// # Fixture

const knownTitleID = int64(10)

func principal(userID int64, role sec.Role) *sec.AuthClaims {
	return &sec.AuthClaims{UserID: userID, Username: "someone", Role: role}
}

func serviceFixture() (*review.Service, *fakeRepo) {
	repo := newFakeRepo()
	titles := &fakeTitles{known: map[int64]bool{knownTitleID: true}}
	return review.NewService(repo, titles), repo
}

// # Tests

/*
TestCreateReview_Validation rejects missing text and out-of-range scores
before touching storage.
*/
func TestCreateReview_Validation(t *testing.T) {
	service, repo := serviceFixture()
	ctx := context.Background()
	author := principal(1, sec.RoleUser)

	cases := []struct {
		name  string
		input review.ReviewInput
	}{
		{"empty text", review.ReviewInput{Text: "", Score: 5}},
		{"score too low", review.ReviewInput{Text: "fine", Score: 0}},
		{"score too high", review.ReviewInput{Text: "fine", Score: 11}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.CreateReview(ctx, knownTitleID, author, tc.input)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}

	assert.Empty(t, repo.reviews)
}

/*
TestCreateReview_UnknownTitle propagates the parent 404 for nested writes.
*/
func TestCreateReview_UnknownTitle(t *testing.T) {
	service, _ := serviceFixture()

	_, err := service.CreateReview(context.Background(), 999, principal(1, sec.RoleUser),
		review.ReviewInput{Text: "fine", Score: 5})

	assert.True(t, apperr.IsNotFound(err))
}

/*
TestCreateReview_SecondSubmissionConflicts enforces one review per author
per title.
*/
func TestCreateReview_SecondSubmissionConflicts(t *testing.T) {
	service, _ := serviceFixture()
	ctx := context.Background()
	author := principal(1, sec.RoleUser)

	first, err := service.CreateReview(ctx, knownTitleID, author, review.ReviewInput{Text: "great", Score: 9})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	_, err = service.CreateReview(ctx, knownTitleID, author, review.ReviewInput{Text: "changed my mind", Score: 2})
	assert.True(t, apperr.IsConflict(err))
}

/*
TestUpdateReview_Ownership walks the moderation matrix: the author and both
elevated roles may edit, a stranger may not.
*/
func TestUpdateReview_Ownership(t *testing.T) {
	cases := []struct {
		name      string
		caller    *sec.AuthClaims
		forbidden bool
	}{
		{"author edits own", principal(1, sec.RoleUser), false},
		{"stranger denied", principal(2, sec.RoleUser), true},
		{"moderator edits any", principal(3, sec.RoleModerator), false},
		{"admin edits any", principal(4, sec.RoleAdmin), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, _ := serviceFixture()
			ctx := context.Background()

			seeded, err := service.CreateReview(ctx, knownTitleID, principal(1, sec.RoleUser),
				review.ReviewInput{Text: "original", Score: 5})
			require.NoError(t, err)

			text := "edited"
			updated, err := service.UpdateReview(ctx, knownTitleID, seeded.ID, tc.caller, review.ReviewPatch{Text: &text})

			if tc.forbidden {
				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, "FORBIDDEN", ae.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "edited", updated.Text)
			assert.Equal(t, 5, updated.Score)
		})
	}
}

/*
TestUpdateReview_PatchValidation validates the merged state, so a patch
cannot smuggle an invalid score past creation-time checks.
*/
func TestUpdateReview_PatchValidation(t *testing.T) {
	service, _ := serviceFixture()
	ctx := context.Background()
	author := principal(1, sec.RoleUser)

	seeded, err := service.CreateReview(ctx, knownTitleID, author, review.ReviewInput{Text: "fine", Score: 5})
	require.NoError(t, err)

	bad := 42
	_, err = service.UpdateReview(ctx, knownTitleID, seeded.ID, author, review.ReviewPatch{Score: &bad})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)

	// The stored review is untouched.
	current, err := service.GetReview(ctx, knownTitleID, seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, current.Score)
}

/*
TestDeleteReview_Ownership lets moderators remove foreign content and
blocks ordinary users from doing so.
*/
func TestDeleteReview_Ownership(t *testing.T) {
	service, repo := serviceFixture()
	ctx := context.Background()

	seeded, err := service.CreateReview(ctx, knownTitleID, principal(1, sec.RoleUser),
		review.ReviewInput{Text: "target", Score: 3})
	require.NoError(t, err)

	err = service.DeleteReview(ctx, knownTitleID, seeded.ID, principal(2, sec.RoleUser))
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	require.NoError(t, service.DeleteReview(ctx, knownTitleID, seeded.ID, principal(3, sec.RoleModerator)))
	assert.Empty(t, repo.reviews)
}

/*
TestComments_ChainScoping requires every comment operation to resolve the
full title/review chain first.
*/
func TestComments_ChainScoping(t *testing.T) {
	service, _ := serviceFixture()
	ctx := context.Background()
	author := principal(1, sec.RoleUser)

	seeded, err := service.CreateReview(ctx, knownTitleID, author, review.ReviewInput{Text: "parent", Score: 8})
	require.NoError(t, err)

	created, err := service.CreateComment(ctx, knownTitleID, seeded.ID, author, review.CommentInput{Text: "reply"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, created.ReviewID)

	// Unknown title breaks the chain even when the review ID is real.
	_, err = service.CreateComment(ctx, 999, seeded.ID, author, review.CommentInput{Text: "reply"})
	assert.True(t, apperr.IsNotFound(err))

	// Unknown review under a real title does too.
	_, _, err = service.ListComments(ctx, knownTitleID, seeded.ID+100, 10, 0)
	assert.True(t, apperr.IsNotFound(err))

	// Empty text is rejected before any lookup.
	_, err = service.UpdateComment(ctx, knownTitleID, seeded.ID, created.ID, author, review.CommentInput{Text: ""})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
}

/*
TestComment_Ownership applies the same moderation matrix to comments.
*/
func TestComment_Ownership(t *testing.T) {
	service, _ := serviceFixture()
	ctx := context.Background()
	author := principal(1, sec.RoleUser)

	seeded, err := service.CreateReview(ctx, knownTitleID, author, review.ReviewInput{Text: "parent", Score: 8})
	require.NoError(t, err)
	created, err := service.CreateComment(ctx, knownTitleID, seeded.ID, author, review.CommentInput{Text: "mine"})
	require.NoError(t, err)

	_, err = service.UpdateComment(ctx, knownTitleID, seeded.ID, created.ID, principal(2, sec.RoleUser),
		review.CommentInput{Text: "hijacked"})
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "FORBIDDEN", ae.Code)

	updated, err := service.UpdateComment(ctx, knownTitleID, seeded.ID, created.ID, principal(9, sec.RoleAdmin),
		review.CommentInput{Text: "moderated"})
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Text)

	require.NoError(t, service.DeleteComment(ctx, knownTitleID, seeded.ID, created.ID, author))
}
