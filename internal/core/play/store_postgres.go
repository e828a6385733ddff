// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package play (Postgres) implements the storage layer for the repertoire.

# Schema Table Mapping
  - core.play: Productions.
  - core.playrole: Named parts within a play.
  - core.playrolecast: Base-cast bindings (one person per role).
*/
package play

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/database/schema"
	"github.com/ammateam/callboard/internal/platform/dberr"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for play storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// PostgresRoleRepository implements [RoleRepository] using pgx.
type PostgresRoleRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRoleRepository creates a new Postgres implementation for role
// and base-cast storage.
func NewPostgresRoleRepository(pool *pgxpool.Pool) *PostgresRoleRepository {
	return &PostgresRoleRepository{pool: pool}
}

// # Repository Methods

/*
List retrieves every play ordered alphabetically by title.

Parameters:
  - context: context.Context

Returns:
  - []Play: The repertoire
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context) ([]Play, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		ORDER BY %s ASC`,
		schema.CorePlay.ID, schema.CorePlay.Title, schema.CorePlay.Description,
		schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
		schema.CorePlay.Table,
		schema.CorePlay.Title,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres_play_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var plays []Play
	for rows.Next() {
		var play Play
		if err := rows.Scan(&play.ID, &play.Title, &play.Description,
			&play.CreatedAt, &play.UpdatedAt); err != nil {
			return nil, err
		}
		plays = append(plays, play)
	}

	return plays, rows.Err()
}

/*
FindByID retrieves a play record from the core.play table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Play: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Play, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CorePlay.ID, schema.CorePlay.Title, schema.CorePlay.Description,
		schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
		schema.CorePlay.Table,
		schema.CorePlay.ID,
	)

	play := &Play{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&play.ID, &play.Title, &play.Description, &play.CreatedAt, &play.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Play")
		}
		return nil, fmt.Errorf("postgres_play_repo_find_by_id_failed: %w", err)
	}

	return play, nil
}

/*
FindOrCreateByTitle resolves a play by its exact title, inserting it when
absent.

Description: The insert goes through ON CONFLICT DO NOTHING on the unique
lower(title) index; when another writer wins the race the follow-up lookup
returns their row, so the call never fails on concurrent imports.

Parameters:
  - context: context.Context
  - title: string (Exact, already trimmed)

Returns:
  - *Play: The existing or newly created play
  - bool: True when this call inserted the row
  - error: Storage failures
*/
func (repository *PostgresRepository) FindOrCreateByTitle(context context.Context, title string) (*Play, bool, error) {
	findQuery := fmt.Sprintf(`
		SELECT %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CorePlay.ID, schema.CorePlay.Title, schema.CorePlay.Description,
		schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
		schema.CorePlay.Table,
		schema.CorePlay.Title,
	)

	find := func() (*Play, error) {
		play := &Play{}
		err := repository.pool.QueryRow(context, findQuery, title).Scan(
			&play.ID, &play.Title, &play.Description, &play.CreatedAt, &play.UpdatedAt)
		if err != nil {
			return nil, err
		}
		return play, nil
	}

	if play, err := find(); err == nil {
		return play, false, nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("postgres_play_repo_find_by_title_failed: %w", err)
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT DO NOTHING`,
		schema.CorePlay.Table,
		schema.CorePlay.ID, schema.CorePlay.Title,
		schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
	)

	tag, err := repository.pool.Exec(context, insertQuery, uuidv7.New(), title)
	if err != nil {
		return nil, false, fmt.Errorf("postgres_play_repo_autocreate_failed: %w", err)
	}

	play, err := find()
	if err != nil {
		return nil, false, fmt.Errorf("postgres_play_repo_autocreate_lookup_failed: %w", err)
	}

	return play, tag.RowsAffected() > 0, nil
}

/*
Create inserts a new play row.

Parameters:
  - context: context.Context
  - play: *Play

Returns:
  - error: apperr.Conflict on a duplicate title, execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, play *Play) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5)`,
		schema.CorePlay.Table,
		schema.CorePlay.ID, schema.CorePlay.Title, schema.CorePlay.Description,
		schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		play.ID, play.Title, play.Description, play.CreatedAt, play.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_play_repo_create")
	}

	return nil
}

/*
Update modifies the mutable fields of an existing play.

Parameters:
  - context: context.Context
  - play: *Play

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, play *Play) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NULLIF($3, ''), %s = $4
		WHERE %s = $1`,
		schema.CorePlay.Table,
		schema.CorePlay.Title, schema.CorePlay.Description, schema.CorePlay.UpdatedAt,
		schema.CorePlay.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		play.ID, play.Title, play.Description, play.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_play_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Play")
	}

	return nil
}

/*
Delete removes a play row. The restrictive foreign key from core.event
surfaces as apperr.Unprocessable through dberr.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound, apperr.Unprocessable or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CorePlay.Table, schema.CorePlay.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_play_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Play")
	}

	return nil
}

// # RoleRepository Methods

/*
ListByPlay retrieves all roles of a play with their base-cast bindings.

Description: LEFT JOINs the cast table and the roster so roles without a
default performer hydrate with empty cast fields.

Parameters:
  - context: context.Context
  - playID: string

Returns:
  - []Role: Hydrated roles ordered by sort order
  - error: Database retrieval failures
*/
func (repository *PostgresRoleRepository) ListByPlay(context context.Context, playID string) ([]Role, error) {
	query := fmt.Sprintf(`
		SELECT r.%s, r.%s, r.%s, r.%s, COALESCE(r.%s, ''), r.%s, r.%s,
		       COALESCE(c.%s, ''), COALESCE(p.%s, '')
		FROM %s r
		LEFT JOIN %s c ON c.%s = r.%s
		LEFT JOIN %s p ON p.%s = c.%s
		WHERE r.%s = $1
		ORDER BY r.%s ASC`,
		schema.CorePlayRole.ID, schema.CorePlayRole.PlayID, schema.CorePlayRole.Title,
		schema.CorePlayRole.SortOrder, schema.CorePlayRole.Notes,
		schema.CorePlayRole.CreatedAt, schema.CorePlayRole.UpdatedAt,
		schema.CorePlayRoleCast.PersonID, schema.CorePerson.FullName,
		schema.CorePlayRole.Table,
		schema.CorePlayRoleCast.Table, schema.CorePlayRoleCast.RoleID, schema.CorePlayRole.ID,
		schema.CorePerson.Table, schema.CorePerson.ID, schema.CorePlayRoleCast.PersonID,
		schema.CorePlayRole.PlayID,
		schema.CorePlayRole.SortOrder,
	)

	rows, err := repository.pool.Query(context, query, playID)
	if err != nil {
		return nil, fmt.Errorf("postgres_role_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var roles []Role
	for rows.Next() {
		var role Role
		if err := rows.Scan(&role.ID, &role.PlayID, &role.Title, &role.SortOrder,
			&role.Notes, &role.CreatedAt, &role.UpdatedAt,
			&role.CastPersonID, &role.CastPersonName); err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}

	return roles, rows.Err()
}

/*
FindByID retrieves a single role without cast enrichment.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Role: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRoleRepository) FindByID(context context.Context, id string) (*Role, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CorePlayRole.ID, schema.CorePlayRole.PlayID, schema.CorePlayRole.Title,
		schema.CorePlayRole.SortOrder, schema.CorePlayRole.Notes,
		schema.CorePlayRole.CreatedAt, schema.CorePlayRole.UpdatedAt,
		schema.CorePlayRole.Table,
		schema.CorePlayRole.ID,
	)

	role := &Role{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&role.ID, &role.PlayID, &role.Title, &role.SortOrder,
		&role.Notes, &role.CreatedAt, &role.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Role")
		}
		return nil, fmt.Errorf("postgres_role_repo_find_by_id_failed: %w", err)
	}

	return role, nil
}

/*
NextSortOrder returns max(sortorder)+1 within a play, starting at 1.

Parameters:
  - context: context.Context
  - playID: string

Returns:
  - int: The next free sort position
  - error: Retrieval failures
*/
func (repository *PostgresRoleRepository) NextSortOrder(context context.Context, playID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) + 1 FROM %s WHERE %s = $1`,
		schema.CorePlayRole.SortOrder, schema.CorePlayRole.Table, schema.CorePlayRole.PlayID)

	var next int
	if err := repository.pool.QueryRow(context, query, playID).Scan(&next); err != nil {
		return 0, fmt.Errorf("postgres_role_repo_next_order_failed: %w", err)
	}

	return next, nil
}

/*
Create inserts a new role row.

Parameters:
  - context: context.Context
  - role: *Role

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresRoleRepository) Create(context context.Context, role *Role) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), $6, $7)`,
		schema.CorePlayRole.Table,
		schema.CorePlayRole.ID, schema.CorePlayRole.PlayID, schema.CorePlayRole.Title,
		schema.CorePlayRole.SortOrder, schema.CorePlayRole.Notes,
		schema.CorePlayRole.CreatedAt, schema.CorePlayRole.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		role.ID, role.PlayID, role.Title, role.SortOrder, role.Notes,
		role.CreatedAt, role.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_role_repo_create")
	}

	return nil
}

/*
Update modifies a role's title and notes.

Parameters:
  - context: context.Context
  - role: *Role

Returns:
  - error: Update failures
*/
func (repository *PostgresRoleRepository) Update(context context.Context, role *Role) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NULLIF($3, ''), %s = $4
		WHERE %s = $1`,
		schema.CorePlayRole.Table,
		schema.CorePlayRole.Title, schema.CorePlayRole.Notes, schema.CorePlayRole.UpdatedAt,
		schema.CorePlayRole.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		role.ID, role.Title, role.Notes, role.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "postgres_role_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Role")
	}

	return nil
}

/*
Delete removes a role row. Base-cast bindings and role-based event
assignments go with it through ON DELETE CASCADE.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRoleRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CorePlayRole.Table, schema.CorePlayRole.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_role_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Role")
	}

	return nil
}

/*
SetBaseCast binds a person to a role or clears the binding.

Description: An empty personID deletes the binding; otherwise an upsert on
the unique roleid column replaces any previous performer.

Parameters:
  - context: context.Context
  - roleID: string
  - personID: string

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresRoleRepository) SetBaseCast(context context.Context, roleID, personID string) error {
	if personID == "" {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
			schema.CorePlayRoleCast.Table, schema.CorePlayRoleCast.RoleID)
		if _, err := repository.pool.Exec(context, query, roleID); err != nil {
			return dberr.Wrap(err, "postgres_role_repo_clear_cast")
		}
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (%s) DO UPDATE SET %s = EXCLUDED.%s`,
		schema.CorePlayRoleCast.Table,
		schema.CorePlayRoleCast.ID, schema.CorePlayRoleCast.RoleID,
		schema.CorePlayRoleCast.PersonID, schema.CorePlayRoleCast.CreatedAt,
		schema.CorePlayRoleCast.RoleID,
		schema.CorePlayRoleCast.PersonID, schema.CorePlayRoleCast.PersonID,
	)

	if _, err := repository.pool.Exec(context, query, uuidv7.New(), roleID, personID); err != nil {
		return dberr.Wrap(err, "postgres_role_repo_set_cast")
	}

	return nil
}
