// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package taxonomy_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ndelaeva/kritika/internal/catalog/taxonomy"
	"github.com/ndelaeva/kritika/internal/platform/apperr"
)

// fakeRepo stores entries per kind keyed by slug.
type fakeRepo struct {
	categories map[string]*taxonomy.Category
	genres     map[string]*taxonomy.Genre
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		categories: map[string]*taxonomy.Category{},
		genres:     map[string]*taxonomy.Genre{},
	}
}

func (f *fakeRepo) ListCategories(_ context.Context, _ taxonomy.Filter, _, _ int) ([]*taxonomy.Category, int, error) {
	return nil, len(f.categories), nil
}

func (f *fakeRepo) CreateCategory(_ context.Context, c *taxonomy.Category) error {
	if _, taken := f.categories[c.Slug]; taken {
		return apperr.Conflict("Slug is already in use")
	}
	f.categories[c.Slug] = c
	return nil
}

func (f *fakeRepo) DeleteCategoryBySlug(_ context.Context, slug string) error {
	if _, ok := f.categories[slug]; !ok {
		return apperr.NotFound("Category")
	}
	delete(f.categories, slug)
	return nil
}

func (f *fakeRepo) ListGenres(_ context.Context, _ taxonomy.Filter, _, _ int) ([]*taxonomy.Genre, int, error) {
	return nil, len(f.genres), nil
}

func (f *fakeRepo) CreateGenre(_ context.Context, g *taxonomy.Genre) error {
	if _, taken := f.genres[g.Slug]; taken {
		return apperr.Conflict("Slug is already in use")
	}
	f.genres[g.Slug] = g
	return nil
}

func (f *fakeRepo) DeleteGenreBySlug(_ context.Context, slug string) error {
	if _, ok := f.genres[slug]; !ok {
		return apperr.NotFound("Genre")
	}
	delete(f.genres, slug)
	return nil
}

/*
TestCreateCategory_SlugGeneration derives the slug from the name when the
admin omits it, including unicode folding.
*/
func TestCreateCategory_SlugGeneration(t *testing.T) {
	cases := []struct {
		name     string
		entry    taxonomy.NameSlug
		wantSlug string
	}{
		{"explicit slug kept", taxonomy.NameSlug{Name: "Films", Slug: "movies"}, "movies"},
		{"generated from name", taxonomy.NameSlug{Name: "Science Fiction"}, "science-fiction"},
		{"accents folded", taxonomy.NameSlug{Name: "Café Culture"}, "cafe-culture"},
		{"punctuation collapsed", taxonomy.NameSlug{Name: "Rock & Roll!"}, "rock-roll"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service := taxonomy.NewService(newFakeRepo())

			category := &taxonomy.Category{NameSlug: tc.entry}
			require.NoError(t, service.CreateCategory(context.Background(), category))
			assert.Equal(t, tc.wantSlug, category.Slug)
		})
	}
}

/*
TestCreateEntry_Validation rejects missing names, oversized fields and
malformed explicit slugs for both taxonomy kinds.
*/
func TestCreateEntry_Validation(t *testing.T) {
	service := taxonomy.NewService(newFakeRepo())
	ctx := context.Background()

	cases := []struct {
		name  string
		entry taxonomy.NameSlug
	}{
		{"empty name", taxonomy.NameSlug{Name: ""}},
		{"slug too long", taxonomy.NameSlug{Name: "Drama", Slug: strings.Repeat("a", 51)}},
		{"uppercase slug", taxonomy.NameSlug{Name: "Drama", Slug: "Drama"}},
		{"spaced slug", taxonomy.NameSlug{Name: "Drama", Slug: "dra ma"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := service.CreateCategory(ctx, &taxonomy.Category{NameSlug: tc.entry})
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)

			err = service.CreateGenre(ctx, &taxonomy.Genre{NameSlug: tc.entry})
			ae = apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestDeleteEntry_NotFound surfaces unknown slugs as 404 for both kinds.
*/
func TestDeleteEntry_NotFound(t *testing.T) {
	service := taxonomy.NewService(newFakeRepo())
	ctx := context.Background()

	require.NoError(t, service.CreateGenre(ctx, &taxonomy.Genre{NameSlug: taxonomy.NameSlug{Name: "Drama"}}))
	require.NoError(t, service.DeleteGenre(ctx, "drama"))

	assert.True(t, apperr.IsNotFound(service.DeleteGenre(ctx, "drama")))
	assert.True(t, apperr.IsNotFound(service.DeleteCategory(ctx, "missing")))
}
