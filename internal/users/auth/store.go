// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"context"
	"time"
)

// # Account Directory

// Directory defines the persistence contract for the signup and
// token-exchange flows.
//
// # Atomicity
//
// Every method maps to a single SQL statement. The uniqueness constraints on
// username and email, plus conditional updates, are the only concurrency
// control — no application-level locking exists.
type Directory interface {

	/*
		UpsertBySignup creates the account, or replaces the pending code when
		the identical (username, email) pair already exists.

		Parameters:
		  - context: context.Context
		  - username: string (already validated)
		  - email: string (already validated)
		  - code: string (freshly generated confirmation code)

		Returns:
		  - *User: Created or refreshed account, role defaults to user
		  - error: apperr.Conflict when the username or email is taken by a
		    different identity; storage failures
	*/
	UpsertBySignup(context context.Context, username, email, code string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		ConsumeCode activates the account and clears the stored code in one
		atomic compare-and-clear; a code can never validate twice.

		Returns:
		  - *User: Activated account
		  - error: apperr.NotFound for an unknown username,
		    apperr.InvalidCode when no code is pending or it does not match
	*/
	ConsumeCode(context context.Context, username, suppliedCode string) (*User, error)
}

// # Dispatch Throttling

// CooldownRepository tracks the per-email signup cooldown in volatile storage.
type CooldownRepository interface {

	/*
		Acquire atomically claims the cooldown slot for an email address.

		Returns:
		  - bool: false when a previous signup is still inside the window
		  - error: storage failures
	*/
	Acquire(context context.Context, email string, ttl time.Duration) (bool, error)
}
