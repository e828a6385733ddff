// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package schedule (Postgres) implements the read side of the availability
engine.

All queries here are coarse prefilters over indexed columns; the exact
interval predicate runs in the service.
*/
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ammateam/callboard/internal/platform/database/schema"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for the
// availability reads.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
AssignmentsOverlapping retrieves internal engagements of the given persons
whose event coarsely overlaps a window, excluding the reference event.

Description: The coarse filter is start < windowEnd AND (end > windowStart
OR end IS NULL). Open-ended events are admitted on purpose and re-checked
against the fallback duration in the service.

Parameters:
  - context: context.Context
  - personIDs: []string
  - excludeEventID: string
  - windowStart, windowEnd: time.Time

Returns:
  - []AssignmentWindow: Coarse candidates
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) AssignmentsOverlapping(context context.Context, personIDs []string, excludeEventID string, windowStart, windowEnd time.Time) ([]AssignmentWindow, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, e.%s, e.%s, e.%s, e.%s
		FROM %s a
		JOIN %s e ON e.%s = a.%s
		WHERE a.%s = ANY($1)
		  AND e.%s != $2
		  AND e.%s < $4
		  AND (e.%s > $3 OR e.%s IS NULL)`,
		schema.CoreAssignment.PersonID, schema.CoreEvent.ID, schema.CoreEvent.Title,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt,
		schema.CoreAssignment.Table,
		schema.CoreEvent.Table, schema.CoreEvent.ID, schema.CoreAssignment.EventID,
		schema.CoreAssignment.PersonID,
		schema.CoreEvent.ID,
		schema.CoreEvent.StartAt,
		schema.CoreEvent.EndAt, schema.CoreEvent.EndAt,
	)

	rows, err := repository.pool.Query(context, query, personIDs, excludeEventID, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_assignments_overlapping_failed: %w", err)
	}
	defer rows.Close()

	var windows []AssignmentWindow
	for rows.Next() {
		var w AssignmentWindow
		if err := rows.Scan(&w.PersonID, &w.EventID, &w.EventTitle, &w.StartAt, &w.EndAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}

/*
BookingsOverlapping retrieves external engagements of the given persons that
coarsely overlap a window.

Parameters:
  - context: context.Context
  - personIDs: []string
  - windowStart, windowEnd: time.Time

Returns:
  - []BookingWindow: Coarse candidates
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) BookingsOverlapping(context context.Context, personIDs []string, windowStart, windowEnd time.Time) ([]BookingWindow, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = ANY($1)
		  AND %s < $3
		  AND (%s > $2 OR %s IS NULL)`,
		schema.CoreExternalBooking.PersonID, schema.CoreExternalBooking.ID,
		schema.CoreExternalBooking.Title, schema.CoreExternalBooking.StartAt,
		schema.CoreExternalBooking.EndAt,
		schema.CoreExternalBooking.Table,
		schema.CoreExternalBooking.PersonID,
		schema.CoreExternalBooking.StartAt,
		schema.CoreExternalBooking.EndAt, schema.CoreExternalBooking.EndAt,
	)

	rows, err := repository.pool.Query(context, query, personIDs, windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_bookings_overlapping_failed: %w", err)
	}
	defer rows.Close()

	var windows []BookingWindow
	for rows.Next() {
		var w BookingWindow
		if err := rows.Scan(&w.PersonID, &w.BookingID, &w.Title, &w.StartAt, &w.EndAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}

/*
ListPeople retrieves the roster slice for the matrix ordered by full name.

Parameters:
  - context: context.Context
  - role: string (Empty means all)
  - search: string (Empty means all)

Returns:
  - []PersonRow: Matching people
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) ListPeople(context context.Context, role, search string) ([]PersonRow, error) {
	where := "TRUE"
	args := []interface{}{}

	if role != "" {
		args = append(args, role)
		where += fmt.Sprintf(" AND %s = $%d", schema.CorePerson.Role, len(args))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", schema.CorePerson.FullName, len(args))
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC`,
		schema.CorePerson.ID, schema.CorePerson.FullName, schema.CorePerson.Role,
		schema.CorePerson.Table,
		where,
		schema.CorePerson.FullName,
	)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_list_people_failed: %w", err)
	}
	defer rows.Close()

	var people []PersonRow
	for rows.Next() {
		var p PersonRow
		if err := rows.Scan(&p.ID, &p.FullName, &p.Role); err != nil {
			return nil, err
		}
		people = append(people, p)
	}

	return people, rows.Err()
}

/*
AssignmentsStartingIn retrieves internal engagements whose event starts in
[from, to).

Parameters:
  - context: context.Context
  - personIDs: []string
  - from, to: time.Time

Returns:
  - []AssignmentWindow: Events starting in the range
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) AssignmentsStartingIn(context context.Context, personIDs []string, from, to time.Time) ([]AssignmentWindow, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, e.%s, e.%s, e.%s, e.%s
		FROM %s a
		JOIN %s e ON e.%s = a.%s
		WHERE a.%s = ANY($1)
		  AND e.%s >= $2
		  AND e.%s < $3`,
		schema.CoreAssignment.PersonID, schema.CoreEvent.ID, schema.CoreEvent.Title,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt,
		schema.CoreAssignment.Table,
		schema.CoreEvent.Table, schema.CoreEvent.ID, schema.CoreAssignment.EventID,
		schema.CoreAssignment.PersonID,
		schema.CoreEvent.StartAt,
		schema.CoreEvent.StartAt,
	)

	rows, err := repository.pool.Query(context, query, personIDs, from, to)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_assignments_in_range_failed: %w", err)
	}
	defer rows.Close()

	var windows []AssignmentWindow
	for rows.Next() {
		var w AssignmentWindow
		if err := rows.Scan(&w.PersonID, &w.EventID, &w.EventTitle, &w.StartAt, &w.EndAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}

/*
PersonAssignments retrieves one person's full internal timeline.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - []AssignmentWindow: Every event the person is assigned to
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) PersonAssignments(context context.Context, personID string) ([]AssignmentWindow, error) {
	query := fmt.Sprintf(`
		SELECT a.%s, e.%s, e.%s, e.%s, e.%s
		FROM %s a
		JOIN %s e ON e.%s = a.%s
		WHERE a.%s = $1`,
		schema.CoreAssignment.PersonID, schema.CoreEvent.ID, schema.CoreEvent.Title,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt,
		schema.CoreAssignment.Table,
		schema.CoreEvent.Table, schema.CoreEvent.ID, schema.CoreAssignment.EventID,
		schema.CoreAssignment.PersonID,
	)

	rows, err := repository.pool.Query(context, query, personID)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_person_assignments_failed: %w", err)
	}
	defer rows.Close()

	var windows []AssignmentWindow
	for rows.Next() {
		var w AssignmentWindow
		if err := rows.Scan(&w.PersonID, &w.EventID, &w.EventTitle, &w.StartAt, &w.EndAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}

/*
PersonBookings retrieves one person's full external timeline.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - []BookingWindow: Every external booking of the person
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) PersonBookings(context context.Context, personID string) ([]BookingWindow, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.CoreExternalBooking.PersonID, schema.CoreExternalBooking.ID,
		schema.CoreExternalBooking.Title, schema.CoreExternalBooking.StartAt,
		schema.CoreExternalBooking.EndAt,
		schema.CoreExternalBooking.Table,
		schema.CoreExternalBooking.PersonID,
	)

	rows, err := repository.pool.Query(context, query, personID)
	if err != nil {
		return nil, fmt.Errorf("postgres_schedule_repo_person_bookings_failed: %w", err)
	}
	defer rows.Close()

	var windows []BookingWindow
	for rows.Next() {
		var w BookingWindow
		if err := rows.Scan(&w.PersonID, &w.BookingID, &w.Title, &w.StartAt, &w.EndAt); err != nil {
			return nil, err
		}
		windows = append(windows, w)
	}

	return windows, rows.Err()
}
