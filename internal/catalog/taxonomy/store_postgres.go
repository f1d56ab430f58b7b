// Copyright (c) 2026 Kritika. All rights reserved.
// Author: n.delaeva.dev@gmail.com

package taxonomy

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

// Backing tables. Identifiers only; never derived from input.
const (
	tableCategory = "catalog.category"
	tableGenre    = "catalog.genre"
)

// # Shared Helpers

// listEntries runs the symmetric list query against the given table.
func (repository *PostgresRepository) listEntries(context context.Context, table string, filter Filter, limit, offset int) ([]NameSlug, int, error) {
	pattern := "%" + filter.Search + "%"

	countQuery := `SELECT COUNT(*) FROM ` + table + ` WHERE name ILIKE $1`

	var total int
	if err := repository.db.QueryRow(context, countQuery, pattern).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "taxonomy_count_failed")
	}

	pageQuery := `
		SELECT id, name, slug
		FROM ` + table + `
		WHERE name ILIKE $1
		ORDER BY name ASC
		LIMIT $2 OFFSET $3;
	`

	rows, err := repository.db.Query(context, pageQuery, pattern, limit, offset)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "taxonomy_list_failed")
	}
	defer rows.Close()

	entries := make([]NameSlug, 0)
	for rows.Next() {
		var entry NameSlug
		if err := rows.Scan(&entry.ID, &entry.Name, &entry.Slug); err != nil {
			return nil, 0, dberr.Wrap(err, "taxonomy_scan_failed")
		}
		entries = append(entries, entry)
	}

	return entries, total, rows.Err()
}

// createEntry inserts a taxonomy entry and hydrates its generated ID.
func (repository *PostgresRepository) createEntry(context context.Context, table string, entry *NameSlug) error {
	query := `
		INSERT INTO ` + table + ` (name, slug)
		VALUES ($1, $2)
		RETURNING id;
	`

	err := repository.db.QueryRow(context, query, entry.Name, entry.Slug).Scan(&entry.ID)
	return dberr.Wrap(err, "Slug is already in use")
}

// deleteEntry removes a taxonomy entry by slug.
func (repository *PostgresRepository) deleteEntry(context context.Context, table, slug, resource string) error {
	query := `DELETE FROM ` + table + ` WHERE slug = $1`

	tag, err := repository.db.Exec(context, query, slug)
	if err != nil {
		return dberr.Wrap(err, "taxonomy_delete_failed")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resource)
	}

	return nil
}

// # Category Methods

func (repository *PostgresRepository) ListCategories(context context.Context, filter Filter, limit, offset int) ([]*Category, int, error) {
	entries, total, err := repository.listEntries(context, tableCategory, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	categories := make([]*Category, 0, len(entries))
	for _, entry := range entries {
		categories = append(categories, &Category{NameSlug: entry})
	}

	return categories, total, nil
}

func (repository *PostgresRepository) CreateCategory(context context.Context, category *Category) error {
	return repository.createEntry(context, tableCategory, &category.NameSlug)
}

func (repository *PostgresRepository) DeleteCategoryBySlug(context context.Context, slug string) error {
	return repository.deleteEntry(context, tableCategory, slug, "Category")
}

// # Genre Methods

func (repository *PostgresRepository) ListGenres(context context.Context, filter Filter, limit, offset int) ([]*Genre, int, error) {
	entries, total, err := repository.listEntries(context, tableGenre, filter, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	genres := make([]*Genre, 0, len(entries))
	for _, entry := range entries {
		genres = append(genres, &Genre{NameSlug: entry})
	}

	return genres, total, nil
}

func (repository *PostgresRepository) CreateGenre(context context.Context, genre *Genre) error {
	return repository.createEntry(context, tableGenre, &genre.NameSlug)
}

func (repository *PostgresRepository) DeleteGenreBySlug(context context.Context, slug string) error {
	return repository.deleteEntry(context, tableGenre, slug, "Genre")
}
