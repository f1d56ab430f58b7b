// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/dberr"
)

// userColumns is the canonical select list for hydrating a [User].
const userColumns = `id, username, email, first_name, last_name, bio, role,
	is_superuser, is_active, confirmation_code, created_at, updated_at`

// PostgresDirectory implements [Directory] using a pgxpool.
type PostgresDirectory struct {
	pool *pgxpool.Pool
}

// NewPostgresDirectory creates the PostgreSQL implementation of the account directory.
func NewPostgresDirectory(pool *pgxpool.Pool) *PostgresDirectory {
	return &PostgresDirectory{pool: pool}
}

/*
UpsertBySignup creates or refreshes an account in a single statement.

Description: The INSERT targets the unique username index; the identical
identity re-signs up via DO UPDATE, which only fires when the stored email
matches. A username held by a different email produces zero rows; an email
held by a different username trips the unique email index. Both outcomes
surface as apperr.Conflict with no state change.

Parameters:
  - context: context.Context
  - username, email, code: string

Returns:
  - *User: Hydrated pending account
  - error: apperr.Conflict or storage failures
*/
func (directory *PostgresDirectory) UpsertBySignup(context context.Context, username, email, code string) (*User, error) {
	const query = `
		INSERT INTO users.account (username, email, role, confirmation_code, is_active)
		VALUES ($1, $2, 'user', $3, FALSE)
		ON CONFLICT (username) DO UPDATE
			SET confirmation_code = EXCLUDED.confirmation_code,
			    updated_at        = NOW()
			WHERE account.email = EXCLUDED.email
		RETURNING ` + userColumns

	user := &User{}
	err := directory.pool.QueryRow(context, query, username, email, code).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.IsActive,
		&user.ConfirmationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		// Zero rows: the username exists under a different email.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.Conflict("Username is already registered with a different email")
		}
		// Unique email index: the email exists under a different username.
		if dberr.IsUniqueViolation(err, "account_email_key") {
			return nil, apperr.Conflict("Email is already registered with a different username")
		}
		return nil, fmt.Errorf("postgres_directory_upsert_failed: %w", err)
	}

	return user, nil
}

/*
FindByUsername retrieves an account by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or storage failures
*/
func (directory *PostgresDirectory) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users.account WHERE username = $1`

	user := &User{}
	err := directory.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.IsActive,
		&user.ConfirmationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_directory_find_by_username_failed: %w", err)
	}

	return user, nil
}

/*
ConsumeCode performs the atomic compare-and-clear of a pending code.

Description: One conditional UPDATE both verifies the supplied code and wipes
it while activating the account. Under concurrent exchange attempts with the
same code exactly one UPDATE matches; every other attempt observes zero rows.
A follow-up existence probe distinguishes the 404 case from a wrong code.

Parameters:
  - context: context.Context
  - username, suppliedCode: string

Returns:
  - *User: Activated account with the code cleared
  - error: apperr.NotFound, apperr.InvalidCode, or storage failures
*/
func (directory *PostgresDirectory) ConsumeCode(context context.Context, username, suppliedCode string) (*User, error) {
	const query = `
		UPDATE users.account
		SET confirmation_code = NULL,
		    is_active         = TRUE,
		    updated_at        = NOW()
		WHERE username = $1
		  AND confirmation_code = $2
		RETURNING ` + userColumns

	user := &User{}
	err := directory.pool.QueryRow(context, query, username, suppliedCode).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Bio,
		&user.Role,
		&user.IsSuperuser,
		&user.IsActive,
		&user.ConfirmationCode,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == nil {
		return user, nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("postgres_directory_consume_code_failed: %w", err)
	}

	// No row matched: an unknown username stays a 404, anything else is a
	// generic invalid-code failure.
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM users.account WHERE username = $1)`

	var exists bool
	if probeErr := directory.pool.QueryRow(context, existsQuery, username).Scan(&exists); probeErr != nil {
		return nil, fmt.Errorf("postgres_directory_consume_code_probe_failed: %w", probeErr)
	}

	if !exists {
		return nil, apperr.NotFound("User")
	}

	return nil, apperr.InvalidCode()
}
