// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package account

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndelaeva/kritika/internal/platform/apperr"
	"github.com/ndelaeva/kritika/internal/platform/dberr"
	"github.com/ndelaeva/kritika/internal/users/auth"
)

// accountColumns is the canonical select list for hydrating an account row.
const accountColumns = `id, username, email, first_name, last_name, bio, role,
	is_superuser, is_active, confirmation_code, created_at, updated_at`

// PostgresRepository implements [Repository] using a pgxpool.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository returns a fully wired postgres implementation.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// scanAccount hydrates a single account row from any pgx row source.
func scanAccount(row pgx.Row) (*auth.User, error) {
	user := &auth.User{}
	err := row.Scan(
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
	return user, err
}

/*
List retrieves a filtered page of account records.

Description: Runs a count query and a page query against users.account.
The search filter is a case-insensitive substring match on the username.

Parameters:
  - context: context.Context
  - filter: Filter (Username search)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of hydrated accounts, ordered by username
  - int: Total match count for pagination
  - error: Database execution or scanning errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*auth.User, int, error) {

	// ILIKE with a wildcard pattern; an empty search matches everything.
	pattern := "%" + filter.Search + "%"

	const countQuery = `
		SELECT COUNT(*)
		FROM users.account
		WHERE username ILIKE $1;
	`

	var total int
	if err := repository.db.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "account_count_failed")
	}

	const pageQuery = `
		SELECT ` + accountColumns + `
		FROM users.account
		WHERE username ILIKE $1
		ORDER BY username ASC
		LIMIT $2 OFFSET $3;
	`

	rows, err := repository.db.Query(context, pageQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "account_list_failed")
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user, err := scanAccount(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "account_scan_failed")
		}
		users = append(users, user)
	}

	return users, total, rows.Err()
}

/*
Create inserts a manually provisioned account record.

Description: Administrator-created accounts are active immediately; they have
no confirmation code until the owner requests one through signup.

Parameters:
  - context: context.Context
  - input: CreateInput (Validated account fields)

Returns:
  - *auth.User: The inserted record
  - error: apperr.Conflict on a username or email collision
*/
func (repository *PostgresRepository) Create(context context.Context, input CreateInput) (*auth.User, error) {
	const query = `
		INSERT INTO users.account (username, email, first_name, last_name, bio, role, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING ` + accountColumns

	row := repository.db.QueryRow(context, query,
		input.Username,
		input.Email,
		input.FirstName,
		input.LastName,
		input.Bio,
		input.Role,
	)

	user, err := scanAccount(row)
	if err != nil {
		if dberr.IsUniqueViolation(err, "account_email_key") {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, dberr.Wrap(err, "Username is already registered")
	}

	return user, nil
}

/*
GetByUsername resolves a single account by its exact username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated account
  - error: apperr.NotFound when the account does not exist
*/
func (repository *PostgresRepository) GetByUsername(context context.Context, username string) (*auth.User, error) {
	const query = `SELECT ` + accountColumns + ` FROM users.account WHERE username = $1`

	user, err := scanAccount(repository.db.QueryRow(context, query, username))
	if err != nil {
		return nil, dberr.Wrap(err, "account_get_failed")
	}

	return user, nil
}

/*
Update applies a partial patch to the named account.

Description: COALESCE keeps columns whose input pointer is nil. The role
column is only reachable for administrative updates; self-service callers
have the pointer stripped before this method runs.

Parameters:
  - context: context.Context
  - username: string (Target account)
  - input: UpdateInput (Nil fields untouched)

Returns:
  - *auth.User: The updated record
  - error: apperr.NotFound or apperr.Conflict on an email collision
*/
func (repository *PostgresRepository) Update(context context.Context, username string, input UpdateInput) (*auth.User, error) {
	const query = `
		UPDATE users.account
		SET email      = COALESCE($2, email),
		    first_name = COALESCE($3, first_name),
		    last_name  = COALESCE($4, last_name),
		    bio        = COALESCE($5, bio),
		    role       = COALESCE($6, role),
		    updated_at = NOW()
		WHERE username = $1
		RETURNING ` + accountColumns

	row := repository.db.QueryRow(context, query,
		username,
		input.Email,
		input.FirstName,
		input.LastName,
		input.Bio,
		input.Role,
	)

	user, err := scanAccount(row)
	if err != nil {
		if dberr.IsUniqueViolation(err, "account_email_key") {
			return nil, apperr.Conflict("Email is already registered")
		}
		return nil, dberr.Wrap(err, "account_update_failed")
	}

	return user, nil
}

/*
Delete removes the named account and everything cascading from it.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound when no row was deleted
*/
func (repository *PostgresRepository) Delete(context context.Context, username string) error {
	const query = `DELETE FROM users.account WHERE username = $1`

	tag, err := repository.db.Exec(context, query, username)
	if err != nil {
		return dberr.Wrap(err, "account_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
