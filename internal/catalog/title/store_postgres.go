// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package title

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ndelaeva/kritika/internal/catalog/taxonomy"
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

// titleSelect joins each title with its optional category and its derived
// rating. The rating is the rounded mean review score, computed in SQL so
// that listing stays a single round trip regardless of review volume.
const titleSelect = `
	SELECT t.id, t.name, t.year, t.description,
	       c.id, c.name, c.slug,
	       r.rating
	FROM catalog.title t
	LEFT JOIN catalog.category c ON c.id = t.category_id
	LEFT JOIN (
		SELECT title_id, ROUND(AVG(score))::INT AS rating
		FROM catalog.review
		GROUP BY title_id
	) r ON r.title_id = t.id
`

// scanTitle hydrates a title row produced by titleSelect. Category columns
// come back NULL for uncategorized titles.
func scanTitle(row pgx.Row) (*Title, error) {
	t := &Title{}
	var categoryID *int64
	var categoryName, categorySlug *string

	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Year,
		&t.Description,
		&categoryID,
		&categoryName,
		&categorySlug,
		&t.Rating,
	)
	if err != nil {
		return nil, err
	}

	if categoryID != nil {
		t.Category = &taxonomy.Category{NameSlug: taxonomy.NameSlug{
			ID:   *categoryID,
			Name: *categoryName,
			Slug: *categorySlug,
		}}
	}

	return t, nil
}

/*
List retrieves a filtered and paginated slice of titles.

Description: Applies the category, genre, name and year filters, then
hydrates the genre sets for the whole page in one follow-up query.

Parameters:
  - context: context.Context
  - filter: Filter (All conditions combine with AND)
  - limit, offset: int (Pagination bounds)

Returns:
  - []*Title: Paginated results with category, genres and rating
  - int: Total matching count
  - error: Database execution errors
*/
func (repository *PostgresRepository) List(context context.Context, filter Filter, limit, offset int) ([]*Title, int, error) {

	// Filters share one clause set between the page and count queries.
	where := ``
	args := []any{}

	appendClause := func(clause string, value any) {
		args = append(args, value)
		position := `$` + itos(len(args))
		if where == `` {
			where = ` WHERE `
		} else {
			where += ` AND `
		}
		where += clause + position
	}

	if filter.CategorySlug != "" {
		appendClause(`c.slug = `, filter.CategorySlug)
	}
	if filter.GenreSlug != "" {
		appendClause(`EXISTS (
			SELECT 1 FROM catalog.title_genre tg
			JOIN catalog.genre g ON g.id = tg.genre_id
			WHERE tg.title_id = t.id AND g.slug = `, filter.GenreSlug)
		where += `)`
	}
	if filter.Name != "" {
		appendClause(`t.name ILIKE `, "%"+filter.Name+"%")
	}
	if filter.Year != nil {
		appendClause(`t.year = `, *filter.Year)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM catalog.title t
		LEFT JOIN catalog.category c ON c.id = t.category_id
	` + where

	var total int
	if err := repository.db.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "title_count_failed")
	}

	pageQuery := titleSelect + where +
		` ORDER BY t.name ASC, t.id ASC LIMIT $` + itos(len(args)+1) + ` OFFSET $` + itos(len(args)+2)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, pageQuery, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "title_list_failed")
	}
	defer rows.Close()

	titles := make([]*Title, 0)
	for rows.Next() {
		t, err := scanTitle(rows)
		if err != nil {
			return nil, 0, dberr.Wrap(err, "title_scan_failed")
		}
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, "title_list_failed")
	}

	if err := repository.attachGenres(context, titles); err != nil {
		return nil, 0, err
	}

	return titles, total, nil
}

/*
GetByID resolves one fully hydrated title.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Title: Title with category, genres and rating
  - error: apperr.NotFound or execution errors
*/
func (repository *PostgresRepository) GetByID(context context.Context, id int64) (*Title, error) {
	query := titleSelect + ` WHERE t.id = $1`

	t, err := scanTitle(repository.db.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "title_get_failed")
	}

	if err := repository.attachGenres(context, []*Title{t}); err != nil {
		return nil, err
	}

	return t, nil
}

/*
Exists reports whether a title row is present.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - bool: Row presence
  - error: Execution errors
*/
func (repository *PostgresRepository) Exists(context context.Context, id int64) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM catalog.title WHERE id = $1)`

	var exists bool
	if err := repository.db.QueryRow(context, query, id).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "title_exists_failed")
	}

	return exists, nil
}

/*
Create inserts a title and its genre links atomically.

Description: Resolves the category and genre slugs inside the same
transaction as the insert, so a concurrent taxonomy deletion cannot leave a
dangling link. Unknown slugs surface as field-level validation errors.

Parameters:
  - context: context.Context
  - input: CreateInput (Validated fields, slugs unresolved)

Returns:
  - *Title: The fully hydrated record
  - error: Validation or execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, input CreateInput) (*Title, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "title_tx_failed")
	}
	defer tx.Rollback(context)

	categoryID, err := resolveCategory(context, tx, input.Category)
	if err != nil {
		return nil, err
	}

	genreIDs, err := resolveGenres(context, tx, input.Genres)
	if err != nil {
		return nil, err
	}

	const insertQuery = `
		INSERT INTO catalog.title (name, year, description, category_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id;
	`

	var titleID int64
	if err := tx.QueryRow(context, insertQuery, input.Name, input.Year, input.Description, categoryID).Scan(&titleID); err != nil {
		return nil, dberr.Wrap(err, "title_insert_failed")
	}

	if err := insertGenreLinks(context, tx, titleID, genreIDs); err != nil {
		return nil, err
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "title_tx_failed")
	}

	return repository.GetByID(context, titleID)
}

/*
Update applies a partial patch to a title.

Description: Nil fields keep their stored value. A non-nil genre slice
replaces the entire link set, mirroring how the create operation wrote it.

Parameters:
  - context: context.Context
  - id: int64 (Target title)
  - input: UpdateInput

Returns:
  - *Title: The updated, fully hydrated record
  - error: apperr.NotFound, validation or execution failures
*/
func (repository *PostgresRepository) Update(context context.Context, id int64, input UpdateInput) (*Title, error) {
	tx, err := repository.db.Begin(context)
	if err != nil {
		return nil, dberr.Wrap(err, "title_tx_failed")
	}
	defer tx.Rollback(context)

	// Resolve the new category first so the UPDATE stays static.
	setCategory := false
	var categoryID *int64
	if input.Category != nil {
		setCategory = true
		categoryID, err = resolveCategory(context, tx, *input.Category)
		if err != nil {
			return nil, err
		}
	}

	const updateQuery = `
		UPDATE catalog.title
		SET name        = COALESCE($2, name),
		    year        = COALESCE($3, year),
		    description = COALESCE($4, description),
		    category_id = CASE WHEN $5 THEN $6::BIGINT ELSE category_id END,
		    updated_at  = NOW()
		WHERE id = $1
		RETURNING id;
	`

	var updatedID int64
	err = tx.QueryRow(context, updateQuery, id, input.Name, input.Year, input.Description, setCategory, categoryID).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Title")
		}
		return nil, dberr.Wrap(err, "title_update_failed")
	}

	if input.Genres != nil {
		genreIDs, err := resolveGenres(context, tx, *input.Genres)
		if err != nil {
			return nil, err
		}

		if _, err := tx.Exec(context, `DELETE FROM catalog.title_genre WHERE title_id = $1`, id); err != nil {
			return nil, dberr.Wrap(err, "title_genres_failed")
		}
		if err := insertGenreLinks(context, tx, id, genreIDs); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(context); err != nil {
		return nil, dberr.Wrap(err, "title_tx_failed")
	}

	return repository.GetByID(context, id)
}

/*
Delete removes a title together with its reviews and comments.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound when no row was deleted
*/
func (repository *PostgresRepository) Delete(context context.Context, id int64) error {
	const query = `DELETE FROM catalog.title WHERE id = $1`

	tag, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "title_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Title")
	}

	return nil
}

// # Hydration Helpers

// attachGenres fills the genre sets for a page of titles in one query.
func (repository *PostgresRepository) attachGenres(context context.Context, titles []*Title) error {
	if len(titles) == 0 {
		return nil
	}

	byID := make(map[int64]*Title, len(titles))
	ids := make([]int64, 0, len(titles))
	for _, t := range titles {
		t.Genres = make([]taxonomy.Genre, 0)
		byID[t.ID] = t
		ids = append(ids, t.ID)
	}

	const query = `
		SELECT tg.title_id, g.id, g.name, g.slug
		FROM catalog.title_genre tg
		JOIN catalog.genre g ON g.id = tg.genre_id
		WHERE tg.title_id = ANY($1)
		ORDER BY g.name ASC;
	`

	rows, err := repository.db.Query(context, query, ids)
	if err != nil {
		return dberr.Wrap(err, "title_genres_failed")
	}
	defer rows.Close()

	for rows.Next() {
		var titleID int64
		var genre taxonomy.Genre
		if err := rows.Scan(&titleID, &genre.ID, &genre.Name, &genre.Slug); err != nil {
			return dberr.Wrap(err, "genre_scan_failed")
		}
		if t, ok := byID[titleID]; ok {
			t.Genres = append(t.Genres, genre)
		}
	}

	return rows.Err()
}

// resolveCategory maps a category slug to its ID inside the transaction.
// An empty slug resolves to no category.
func resolveCategory(context context.Context, tx pgx.Tx, slug string) (*int64, error) {
	if slug == "" {
		return nil, nil
	}

	var id int64
	err := tx.QueryRow(context, `SELECT id FROM catalog.category WHERE slug = $1`, slug).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldCategory,
				Message: "Unknown category slug: " + slug,
			})
		}
		return nil, dberr.Wrap(err, "category_resolve_failed")
	}

	return &id, nil
}

// resolveGenres maps genre slugs to IDs, failing on the first unknown slug.
func resolveGenres(context context.Context, tx pgx.Tx, slugs []string) ([]int64, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	const query = `SELECT id, slug FROM catalog.genre WHERE slug = ANY($1)`

	rows, err := tx.Query(context, query, slugs)
	if err != nil {
		return nil, dberr.Wrap(err, "genre_resolve_failed")
	}
	defer rows.Close()

	found := make(map[string]int64, len(slugs))
	for rows.Next() {
		var id int64
		var slug string
		if err := rows.Scan(&id, &slug); err != nil {
			return nil, dberr.Wrap(err, "genre_scan_failed")
		}
		found[slug] = id
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "genre_resolve_failed")
	}

	// Preserve request order and deduplicate repeated slugs.
	ids := make([]int64, 0, len(slugs))
	seen := make(map[string]bool, len(slugs))
	for _, slug := range slugs {
		if seen[slug] {
			continue
		}
		seen[slug] = true

		id, ok := found[slug]
		if !ok {
			return nil, apperr.ValidationError("Validation failed", apperr.FieldError{
				Field:   FieldGenre,
				Message: "Unknown genre slug: " + slug,
			})
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// insertGenreLinks writes the title_genre rows for a resolved genre set.
func insertGenreLinks(context context.Context, tx pgx.Tx, titleID int64, genreIDs []int64) error {
	if len(genreIDs) == 0 {
		return nil
	}

	const query = `
		INSERT INTO catalog.title_genre (title_id, genre_id)
		SELECT $1, unnest($2::BIGINT[]);
	`

	if _, err := tx.Exec(context, query, titleID, genreIDs); err != nil {
		return dberr.Wrap(err, "title_genres_failed")
	}

	return nil
}

// itos shortens positional argument construction.
func itos(i int) string {
	return strconv.Itoa(i)
}
