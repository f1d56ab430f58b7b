// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package review

import "time"

// # Entities

// Contribution is the shared shape of user-generated content. Both reviews
// and comments are a block of text attributed to an author at a point in
// time; everything else is specific to the concrete kind.
type Contribution struct {
	ID   int64  `json:"id"`
	Text string `json:"text"`

	// AuthorID is the internal owner key used for permission checks.
	AuthorID int64 `json:"-"`

	// Author is the owner's username, hydrated on read.
	Author string `json:"author"`

	PubDate time.Time `json:"pub_date"`
}

// Review is a scored opinion on a title. Each user may hold at most one
// review per title; the database constraint is the authoritative guard.
type Review struct {
	Contribution

	TitleID int64 `json:"-"`
	Score   int   `json:"score"`
}

// Comment is a reply attached to a review.
type Comment struct {
	Contribution

	ReviewID int64 `json:"-"`
}

// # Input Types

// ReviewInput carries the writable review fields.
type ReviewInput struct {
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// ReviewPatch carries a partial review update. Nil fields are untouched.
type ReviewPatch struct {
	Text  *string `json:"text"`
	Score *int    `json:"score"`
}

// CommentInput carries the writable comment fields.
type CommentInput struct {
	Text string `json:"text"`
}

// # Field Identifiers

const (
	FieldText  = "text"
	FieldScore = "score"
)
