// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package event (Postgres) implements the storage layer for the calendar.

# Schema Table Mapping
  - core.event: Calendar entries.
  - core.assignment: Cast and staff bindings per event.
  - core.playrole, core.playrolecast: Read for base-cast copying.
*/
package event

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

// NewPostgresRepository creates a new Postgres implementation for calendar
// storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// eventColumns is the shared SELECT list for hydrating an Event, with play
// and venue titles joined in.
func eventColumns() string {
	return fmt.Sprintf(`e.%s, e.%s, p.%s, COALESCE(e.%s::text, ''), COALESCE(v.%s, ''),
		e.%s, e.%s, e.%s, e.%s, e.%s, COALESCE(e.%s, ''), e.%s, e.%s`,
		schema.CoreEvent.ID, schema.CoreEvent.PlayID, schema.CorePlay.Title,
		schema.CoreEvent.VenueID, schema.CoreVenue.Title,
		schema.CoreEvent.Title, schema.CoreEvent.Type, schema.CoreEvent.Status,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt, schema.CoreEvent.Notes,
		schema.CoreEvent.CreatedAt, schema.CoreEvent.UpdatedAt,
	)
}

// eventJoins is the FROM clause shared by the event read queries.
func eventJoins() string {
	return fmt.Sprintf(`%s e
		JOIN %s p ON p.%s = e.%s
		LEFT JOIN %s v ON v.%s = e.%s`,
		schema.CoreEvent.Table,
		schema.CorePlay.Table, schema.CorePlay.ID, schema.CoreEvent.PlayID,
		schema.CoreVenue.Table, schema.CoreVenue.ID, schema.CoreEvent.VenueID,
	)
}

func scanEvent(row pgx.Row) (*Event, error) {
	event := &Event{}
	err := row.Scan(
		&event.ID,
		&event.PlayID,
		&event.PlayTitle,
		&event.VenueID,
		&event.VenueTitle,
		&event.Title,
		&event.Type,
		&event.Status,
		&event.StartAt,
		&event.EndAt,
		&event.Notes,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return event, nil
}

// # Event Methods

/*
List retrieves a filtered, paginated slice of the calendar plus its total
count, ordered by start time ascending.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []Event: Matching page
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]Event, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if filter.From != nil {
		args = append(args, *filter.From)
		where += fmt.Sprintf(" AND e.%s >= $%d", schema.CoreEvent.StartAt, len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		where += fmt.Sprintf(" AND e.%s < $%d", schema.CoreEvent.StartAt, len(args))
	}
	if filter.PlayID != "" {
		args = append(args, filter.PlayID)
		where += fmt.Sprintf(" AND e.%s = $%d", schema.CoreEvent.PlayID, len(args))
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, status := range filter.Statuses {
			statuses = append(statuses, string(status))
		}
		args = append(args, statuses)
		where += fmt.Sprintf(" AND e.%s = ANY($%d)", schema.CoreEvent.Status, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, eventJoins(), where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY e.%s ASC
		LIMIT $%d OFFSET $%d`,
		eventColumns(), eventJoins(), where,
		schema.CoreEvent.StartAt,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_event_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, 0, err
		}
		events = append(events, *event)
	}

	return events, total, rows.Err()
}

/*
FindByID retrieves an event with play and venue titles hydrated.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Event: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Event, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE e.%s = $1`,
		eventColumns(), eventJoins(), schema.CoreEvent.ID)

	event, err := scanEvent(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Event")
		}
		return nil, fmt.Errorf("postgres_event_repo_find_by_id_failed: %w", err)
	}

	return event, nil
}

// insertBaseCastSQL inserts role assignments from the play's base cast for
// roles of the given play that have no assignment on the event yet.
func insertBaseCastSQL() string {
	return fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		SELECT gen_random_uuid(), $1, r.%s, c.%s, NOW(), NOW()
		FROM %s r
		JOIN %s c ON c.%s = r.%s
		WHERE r.%s = $2
		  AND NOT EXISTS (
			SELECT 1 FROM %s a
			WHERE a.%s = $1 AND a.%s = r.%s
		  )`,
		schema.CoreAssignment.Table,
		schema.CoreAssignment.ID, schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID,
		schema.CoreAssignment.PersonID, schema.CoreAssignment.CreatedAt, schema.CoreAssignment.UpdatedAt,
		schema.CorePlayRole.ID, schema.CorePlayRoleCast.PersonID,
		schema.CorePlayRole.Table,
		schema.CorePlayRoleCast.Table, schema.CorePlayRoleCast.RoleID, schema.CorePlayRole.ID,
		schema.CorePlayRole.PlayID,
		schema.CoreAssignment.Table,
		schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID, schema.CorePlayRole.ID,
	)
}

/*
CreateWithBaseCast inserts the event row and copies the play's base cast
into role-based assignments in one transaction.

Parameters:
  - context: context.Context
  - event: *Event

Returns:
  - error: Constraint or transaction failures
*/
func (repository *PostgresRepository) CreateWithBaseCast(context context.Context, event *Event) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_event_repo_create_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	insertEvent := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, NULLIF($9, ''), $10, $11)`,
		schema.CoreEvent.Table,
		schema.CoreEvent.ID, schema.CoreEvent.PlayID, schema.CoreEvent.VenueID,
		schema.CoreEvent.Title, schema.CoreEvent.Type, schema.CoreEvent.Status,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt, schema.CoreEvent.Notes,
		schema.CoreEvent.CreatedAt, schema.CoreEvent.UpdatedAt,
	)

	if _, err := tx.Exec(context, insertEvent,
		event.ID, event.PlayID, event.VenueID,
		event.Title, string(event.Type), string(event.Status),
		event.StartAt, event.EndAt, event.Notes,
		event.CreatedAt, event.UpdatedAt,
	); err != nil {
		return dberr.Wrap(err, "postgres_event_repo_create")
	}

	if _, err := tx.Exec(context, insertBaseCastSQL(), event.ID, event.PlayID); err != nil {
		return fmt.Errorf("postgres_event_repo_copy_cast_failed: %w", err)
	}

	return tx.Commit(context)
}

/*
Update persists event changes; when the play changed, role-based assignments
are dropped and rebuilt from the new play's base cast inside the same
transaction.

Parameters:
  - context: context.Context
  - event: *Event
  - playChanged: bool

Returns:
  - error: Constraint or transaction failures
*/
func (repository *PostgresRepository) Update(context context.Context, event *Event, playChanged bool) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_event_repo_update_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	updateEvent := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = NULLIF($3, '')::uuid, %s = $4, %s = $5, %s = $6,
		    %s = $7, %s = $8, %s = NULLIF($9, ''), %s = $10
		WHERE %s = $1`,
		schema.CoreEvent.Table,
		schema.CoreEvent.PlayID, schema.CoreEvent.VenueID, schema.CoreEvent.Title,
		schema.CoreEvent.Type, schema.CoreEvent.Status,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt, schema.CoreEvent.Notes,
		schema.CoreEvent.UpdatedAt,
		schema.CoreEvent.ID,
	)

	tag, err := tx.Exec(context, updateEvent,
		event.ID, event.PlayID, event.VenueID, event.Title,
		string(event.Type), string(event.Status),
		event.StartAt, event.EndAt, event.Notes, event.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_event_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Event")
	}

	if playChanged {
		// Drop role-based assignments; generic staff rows survive the swap
		dropRoles := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s IS NOT NULL`,
			schema.CoreAssignment.Table, schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID)
		if _, err := tx.Exec(context, dropRoles, event.ID); err != nil {
			return fmt.Errorf("postgres_event_repo_drop_cast_failed: %w", err)
		}

		if _, err := tx.Exec(context, insertBaseCastSQL(), event.ID, event.PlayID); err != nil {
			return fmt.Errorf("postgres_event_repo_rebuild_cast_failed: %w", err)
		}
	}

	return tx.Commit(context)
}

/*
Delete removes an event; its assignments and expenses follow through
ON DELETE CASCADE, finance report lines lose the reference.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreEvent.Table, schema.CoreEvent.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_event_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Event")
	}

	return nil
}

// # Assignment Methods

/*
ListAssignments retrieves all assignments of an event with role and person
data hydrated.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - []Assignment: The cast and staff list, unordered
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListAssignments(context context.Context, eventID string) ([]Assignment, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, a.%s, COALESCE(a.%s::text, ''), COALESCE(r.%s, ''), COALESCE(r.%s, 0),
		       a.%s, COALESCE(p.%s, ''), COALESCE(a.%s, ''), a.%s, COALESCE(a.%s, ''),
		       a.%s, a.%s
		FROM %s a
		LEFT JOIN %s r ON r.%s = a.%s
		LEFT JOIN %s p ON p.%s = a.%s
		WHERE a.%s = $1`,
		schema.CoreAssignment.ID, schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID,
		schema.CorePlayRole.Title, schema.CorePlayRole.SortOrder,
		schema.CoreAssignment.PersonID, schema.CorePerson.FullName, schema.CoreAssignment.JobTitle,
		schema.CoreAssignment.CallTime, schema.CoreAssignment.Notes,
		schema.CoreAssignment.CreatedAt, schema.CoreAssignment.UpdatedAt,
		schema.CoreAssignment.Table,
		schema.CorePlayRole.Table, schema.CorePlayRole.ID, schema.CoreAssignment.RoleID,
		schema.CorePerson.Table, schema.CorePerson.ID, schema.CoreAssignment.PersonID,
		schema.CoreAssignment.EventID,
	)

	rows, err := repository.pool.Query(context, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("postgres_event_repo_list_assignments_failed: %w", err)
	}
	defer rows.Close()

	var assignments []Assignment
	for rows.Next() {
		var assignment Assignment
		if err := rows.Scan(&assignment.ID, &assignment.EventID, &assignment.RoleID,
			&assignment.RoleTitle, &assignment.RoleSortOrder,
			&assignment.PersonID, &assignment.PersonName, &assignment.JobTitle,
			&assignment.CallTime, &assignment.Notes,
			&assignment.CreatedAt, &assignment.UpdatedAt); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	return assignments, rows.Err()
}

/*
CreateAssignment inserts a generic staff assignment after verifying the
person is not already assigned to the event.

Parameters:
  - context: context.Context
  - assignment: *Assignment

Returns:
  - error: apperr.Conflict on a duplicate person, storage failures
*/
func (repository *PostgresRepository) CreateAssignment(context context.Context, assignment *Assignment) error {
	existsQuery := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.CoreAssignment.Table, schema.CoreAssignment.EventID, schema.CoreAssignment.PersonID)

	var exists bool
	if err := repository.pool.QueryRow(context, existsQuery,
		assignment.EventID, assignment.PersonID).Scan(&exists); err != nil {
		return fmt.Errorf("postgres_event_repo_assignment_check_failed: %w", err)
	}
	if exists {
		return apperr.Conflict("Person is already assigned to this event")
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), $5, NULLIF($6, ''), $7, $8)`,
		schema.CoreAssignment.Table,
		schema.CoreAssignment.ID, schema.CoreAssignment.EventID, schema.CoreAssignment.PersonID,
		schema.CoreAssignment.JobTitle, schema.CoreAssignment.CallTime, schema.CoreAssignment.Notes,
		schema.CoreAssignment.CreatedAt, schema.CoreAssignment.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		assignment.ID, assignment.EventID, assignment.PersonID,
		assignment.JobTitle, assignment.CallTime, assignment.Notes,
		assignment.CreatedAt, assignment.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_event_repo_create_assignment")
	}

	return nil
}

/*
SetRoleAssignment upserts the person bound to a role on an event through the
unique event+role pair, or deletes the binding when personID is empty.

Parameters:
  - context: context.Context
  - eventID: string
  - roleID: string
  - personID: string

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresRepository) SetRoleAssignment(context context.Context, eventID, roleID, personID string) error {
	if personID == "" {
		query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
			schema.CoreAssignment.Table, schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID)
		if _, err := repository.pool.Exec(context, query, eventID, roleID); err != nil {
			return dberr.Wrap(err, "postgres_event_repo_clear_role_assignment")
		}
		return nil
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (%s, %s) WHERE %s IS NOT NULL
		DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.CoreAssignment.Table,
		schema.CoreAssignment.ID, schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID,
		schema.CoreAssignment.PersonID, schema.CoreAssignment.CreatedAt, schema.CoreAssignment.UpdatedAt,
		schema.CoreAssignment.EventID, schema.CoreAssignment.RoleID, schema.CoreAssignment.RoleID,
		schema.CoreAssignment.PersonID, schema.CoreAssignment.PersonID,
		schema.CoreAssignment.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, uuidv7.New(), eventID, roleID, personID); err != nil {
		return dberr.Wrap(err, "postgres_event_repo_set_role_assignment")
	}

	return nil
}

/*
FillFromBaseCast inserts base-cast persons for every unassigned role of the
event's play.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - int: Number of assignments created
  - error: Execution failures
*/
func (repository *PostgresRepository) FillFromBaseCast(context context.Context, eventID string) (int, error) {
	playQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreEvent.PlayID, schema.CoreEvent.Table, schema.CoreEvent.ID)

	var playID string
	if err := repository.pool.QueryRow(context, playQuery, eventID).Scan(&playID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperr.NotFound("Event")
		}
		return 0, fmt.Errorf("postgres_event_repo_fill_cast_lookup_failed: %w", err)
	}

	tag, err := repository.pool.Exec(context, insertBaseCastSQL(), eventID, playID)
	if err != nil {
		return 0, fmt.Errorf("postgres_event_repo_fill_cast_failed: %w", err)
	}

	return int(tag.RowsAffected()), nil
}

/*
DeleteAssignment removes a single assignment row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresRepository) DeleteAssignment(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreAssignment.Table, schema.CoreAssignment.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_event_repo_delete_assignment")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Assignment")
	}

	return nil
}

/*
RolePlayID resolves which play a role belongs to.

Parameters:
  - context: context.Context
  - roleID: string

Returns:
  - string: The owning play's ID
  - error: apperr.NotFound or retrieval failures
*/
func (repository *PostgresRepository) RolePlayID(context context.Context, roleID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CorePlayRole.PlayID, schema.CorePlayRole.Table, schema.CorePlayRole.ID)

	var playID string
	if err := repository.pool.QueryRow(context, query, roleID).Scan(&playID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", apperr.NotFound("Role")
		}
		return "", fmt.Errorf("postgres_event_repo_role_play_lookup_failed: %w", err)
	}

	return playID, nil
}
