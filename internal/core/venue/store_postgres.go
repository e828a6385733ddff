// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package venue

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/database/schema"
	"github.com/ammateam/callboard/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for venue storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
List retrieves all venues ordered alphabetically by title.

Parameters:
  - context: context.Context

Returns:
  - []Venue: All registered venues
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context) ([]Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		ORDER BY %s ASC`,
		schema.CoreVenue.ID, schema.CoreVenue.Title, schema.CoreVenue.Address,
		schema.CoreVenue.Notes, schema.CoreVenue.CreatedAt, schema.CoreVenue.UpdatedAt,
		schema.CoreVenue.Table,
		schema.CoreVenue.Title,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_venue_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var venues []Venue
	for rows.Next() {
		var venue Venue
		if err := rows.Scan(&venue.ID, &venue.Title, &venue.Address, &venue.Notes,
			&venue.CreatedAt, &venue.UpdatedAt); err != nil {
			return nil, err
		}
		venues = append(venues, venue)
	}

	return venues, rows.Err()
}

/*
FindByID retrieves a venue record from the core.venue table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Venue: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Venue, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CoreVenue.ID, schema.CoreVenue.Title, schema.CoreVenue.Address,
		schema.CoreVenue.Notes, schema.CoreVenue.CreatedAt, schema.CoreVenue.UpdatedAt,
		schema.CoreVenue.Table,
		schema.CoreVenue.ID,
	)

	venue := &Venue{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&venue.ID,
		&venue.Title,
		&venue.Address,
		&venue.Notes,
		&venue.CreatedAt,
		&venue.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Venue")
		}
		return nil, fmt.Errorf("postgres_venue_repo_find_by_id_failed: %w", err)
	}

	return venue, nil
}

/*
Create inserts a new venue row.

Parameters:
  - context: context.Context
  - venue: *Venue

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, venue *Venue) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), NULLIF($4, ''), $5, $6)`,
		schema.CoreVenue.Table,
		schema.CoreVenue.ID, schema.CoreVenue.Title, schema.CoreVenue.Address,
		schema.CoreVenue.Notes, schema.CoreVenue.CreatedAt, schema.CoreVenue.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		venue.ID, venue.Title, venue.Address, venue.Notes, venue.CreatedAt, venue.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_venue_repo_create")
	}

	return nil
}

/*
Update modifies the mutable fields of an existing venue.

Parameters:
  - context: context.Context
  - venue: *Venue

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, venue *Venue) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NULLIF($3, ''), %s = NULLIF($4, ''), %s = $5
		WHERE %s = $1`,
		schema.CoreVenue.Table,
		schema.CoreVenue.Title, schema.CoreVenue.Address, schema.CoreVenue.Notes,
		schema.CoreVenue.UpdatedAt,
		schema.CoreVenue.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		venue.ID, venue.Title, venue.Address, venue.Notes, venue.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_venue_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Venue")
	}

	return nil
}

/*
Delete removes a venue row. Events referencing the venue fall back to
NULL through the ON DELETE SET NULL constraint.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreVenue.Table, schema.CoreVenue.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_venue_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Venue")
	}

	return nil
}
