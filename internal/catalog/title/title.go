// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package title

import "github.com/ndelaeva/kritika/internal/catalog/taxonomy"

// # Entities

// Title is a single catalogued work. Works are never consumed through the
// platform itself; the catalog exists so users can review them.
type Title struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Year        int     `json:"year"`
	Description *string `json:"description"`

	// Category is nil for uncategorized titles, which occur when their
	// category was removed from the taxonomy.
	Category *taxonomy.Category `json:"category"`
	Genres   []taxonomy.Genre   `json:"genre"`

	// Rating is the rounded mean of all review scores, nil until the
	// first review lands. Computed, never stored.
	Rating *int `json:"rating"`
}

// # Query Types

// Filter narrows a title listing. All fields combine with AND.
type Filter struct {
	// Exact category slug
	CategorySlug string

	// Exact genre slug; matches titles carrying that genre
	GenreSlug string

	// Case-insensitive substring match on the name
	Name string

	// Exact release year. Nil disables the filter.
	Year *int
}

// # Input Types

// CreateInput carries the writable fields of a new title. Taxonomy entries
// are referenced by slug.
type CreateInput struct {
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Description *string  `json:"description"`
	Category    string   `json:"category"`
	Genres      []string `json:"genre"`
}

// UpdateInput carries a partial title update. Nil fields are untouched; a
// non-nil genre slice replaces the whole genre set.
type UpdateInput struct {
	Name        *string   `json:"name"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genres      *[]string `json:"genre"`
}

// # Field Identifiers

const (
	FieldName     = "name"
	FieldYear     = "year"
	FieldCategory = "category"
	FieldGenre    = "genre"
)
