// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package taxonomy

// # Entities

// NameSlug is the shared shape of both taxonomy entities. A taxonomy entry
// is nothing more than a display name addressed by a URL-safe slug.
type NameSlug struct {
	ID   int64  `json:"-"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Category is the single classification a title belongs to, such as a film,
// a book or an album.
type Category struct {
	NameSlug
}

// Genre is a thematic label. A title carries any number of genres.
type Genre struct {
	NameSlug
}

// # Query Types

// Filter narrows a taxonomy listing.
type Filter struct {
	// Case-insensitive substring match on the display name.
	Search string
}

// # Field Identifiers

const (
	FieldName = "name"
	FieldSlug = "slug"
)
