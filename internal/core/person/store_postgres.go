// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package person (Postgres) implements the storage layer for the roster.

# Schema Table Mapping
  - core.person: Master roster data.
  - core.externalbooking: Engagements outside the company.
  - core.assignment, core.appuser: Touched only by the deletion cascade.
*/
package person

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

// NewPostgresRepository creates a new Postgres implementation for roster storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// PostgresBookingRepository implements [BookingRepository] using pgx.
type PostgresBookingRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresBookingRepository creates a new Postgres implementation for
// external-booking storage.
func NewPostgresBookingRepository(pool *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{pool: pool}
}

// personColumns is the shared SELECT list for hydrating a Person.
func personColumns() string {
	return fmt.Sprintf("%s, %s, %s, COALESCE(%s, ''), COALESCE(%s, ''), COALESCE(%s, ''), %s, %s",
		schema.CorePerson.ID, schema.CorePerson.FullName, schema.CorePerson.Role,
		schema.CorePerson.Phone, schema.CorePerson.Email, schema.CorePerson.Notes,
		schema.CorePerson.CreatedAt, schema.CorePerson.UpdatedAt,
	)
}

func scanPerson(row pgx.Row) (*Person, error) {
	person := &Person{}
	err := row.Scan(
		&person.ID,
		&person.FullName,
		&person.Role,
		&person.Phone,
		&person.Email,
		&person.Notes,
		&person.CreatedAt,
		&person.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	person.RoleLabel = person.Role.Label()
	return person, nil
}

// # Repository Methods

/*
List retrieves a filtered, paginated page of the roster plus its total count.

Description: The role filter is an exact enum match; the search filter is a
case-insensitive substring match on the full name. Results are ordered by
full name ascending.

Parameters:
  - context: context.Context
  - filter: ListFilter

Returns:
  - []Person: Matching page
  - int: Total matching count
  - error: Database retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, filter ListFilter) ([]Person, int, error) {
	where := "TRUE"
	args := []interface{}{}

	if filter.Role != "" {
		args = append(args, string(filter.Role))
		where += fmt.Sprintf(" AND %s = $%d", schema.CorePerson.Role, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(" AND %s ILIKE $%d", schema.CorePerson.FullName, len(args))
	}

	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, schema.CorePerson.Table, where)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_person_repo_count_failed: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE %s
		ORDER BY %s ASC
		LIMIT $%d OFFSET $%d`,
		personColumns(),
		schema.CorePerson.Table,
		where,
		schema.CorePerson.FullName,
		len(args)+1, len(args)+2,
	)
	args = append(args, filter.Page.Limit, filter.Page.Offset())

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_person_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var people []Person
	for rows.Next() {
		person, err := scanPerson(rows)
		if err != nil {
			return nil, 0, err
		}
		people = append(people, *person)
	}

	return people, total, rows.Err()
}

/*
FindByID retrieves a person record from the core.person table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Person: Hydrated entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Person, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		personColumns(), schema.CorePerson.Table, schema.CorePerson.ID)

	person, err := scanPerson(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Person")
		}
		return nil, fmt.Errorf("postgres_person_repo_find_by_id_failed: %w", err)
	}

	return person, nil
}

/*
Create inserts a new person row.

Parameters:
  - context: context.Context
  - person: *Person

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresRepository) Create(context context.Context, person *Person) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8)`,
		schema.CorePerson.Table,
		schema.CorePerson.ID, schema.CorePerson.FullName, schema.CorePerson.Role,
		schema.CorePerson.Phone, schema.CorePerson.Email, schema.CorePerson.Notes,
		schema.CorePerson.CreatedAt, schema.CorePerson.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		person.ID, person.FullName, string(person.Role),
		person.Phone, person.Email, person.Notes,
		person.CreatedAt, person.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_person_repo_create")
	}

	return nil
}

/*
Update modifies the mutable fields of an existing person.

Parameters:
  - context: context.Context
  - person: *Person

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, person *Person) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NULLIF($4, ''), %s = NULLIF($5, ''), %s = NULLIF($6, ''), %s = $7
		WHERE %s = $1`,
		schema.CorePerson.Table,
		schema.CorePerson.FullName, schema.CorePerson.Role, schema.CorePerson.Phone,
		schema.CorePerson.Email, schema.CorePerson.Notes, schema.CorePerson.UpdatedAt,
		schema.CorePerson.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		person.ID, person.FullName, string(person.Role),
		person.Phone, person.Email, person.Notes, person.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_person_repo_update")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Person")
	}

	return nil
}

/*
DeleteCascade removes a person and everything referencing them in a single
transaction.

Description: Order matters. The appuser link is detached first so the account
survives the roster removal, then assignments and external bookings are
deleted, and only then the person row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or transaction failures
*/
func (repository *PostgresRepository) DeleteCascade(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_person_repo_delete_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	detachAccount := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.CoreAppUser.Table, schema.CoreAppUser.PersonID, schema.CoreAppUser.PersonID)
	if _, err := tx.Exec(context, detachAccount, id); err != nil {
		return fmt.Errorf("postgres_person_repo_detach_account_failed: %w", err)
	}

	deleteAssignments := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreAssignment.Table, schema.CoreAssignment.PersonID)
	if _, err := tx.Exec(context, deleteAssignments, id); err != nil {
		return fmt.Errorf("postgres_person_repo_delete_assignments_failed: %w", err)
	}

	deleteBookings := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreExternalBooking.Table, schema.CoreExternalBooking.PersonID)
	if _, err := tx.Exec(context, deleteBookings, id); err != nil {
		return fmt.Errorf("postgres_person_repo_delete_bookings_failed: %w", err)
	}

	deletePerson := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CorePerson.Table, schema.CorePerson.ID)
	tag, err := tx.Exec(context, deletePerson, id)
	if err != nil {
		return fmt.Errorf("postgres_person_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Person")
	}

	return tx.Commit(context)
}

// # BookingRepository Methods

/*
ListByPerson retrieves all external bookings for one person ordered by start
time descending.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - []ExternalBooking: Engagements outside the company
  - error: Database retrieval failures
*/
func (repository *PostgresBookingRepository) ListByPerson(context context.Context, personID string) ([]ExternalBooking, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, COALESCE(%s, ''), %s, %s
		FROM %s
		WHERE %s = $1
		ORDER BY %s DESC`,
		schema.CoreExternalBooking.ID, schema.CoreExternalBooking.PersonID,
		schema.CoreExternalBooking.Title, schema.CoreExternalBooking.StartAt,
		schema.CoreExternalBooking.EndAt, schema.CoreExternalBooking.Notes,
		schema.CoreExternalBooking.CreatedAt, schema.CoreExternalBooking.UpdatedAt,
		schema.CoreExternalBooking.Table,
		schema.CoreExternalBooking.PersonID,
		schema.CoreExternalBooking.StartAt,
	)

	rows, err := repository.pool.Query(context, query, personID)
	if err != nil {
		return nil, fmt.Errorf("postgres_booking_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var bookings []ExternalBooking
	for rows.Next() {
		var booking ExternalBooking
		if err := rows.Scan(&booking.ID, &booking.PersonID, &booking.Title,
			&booking.StartAt, &booking.EndAt, &booking.Notes,
			&booking.CreatedAt, &booking.UpdatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, rows.Err()
}

/*
Create inserts a new external-booking row.

Parameters:
  - context: context.Context
  - booking: *ExternalBooking

Returns:
  - error: Constraint or execution failures
*/
func (repository *PostgresBookingRepository) Create(context context.Context, booking *ExternalBooking) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		schema.CoreExternalBooking.Table,
		schema.CoreExternalBooking.ID, schema.CoreExternalBooking.PersonID,
		schema.CoreExternalBooking.Title, schema.CoreExternalBooking.StartAt,
		schema.CoreExternalBooking.EndAt, schema.CoreExternalBooking.Notes,
		schema.CoreExternalBooking.CreatedAt, schema.CoreExternalBooking.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		booking.ID, booking.PersonID, booking.Title, booking.StartAt, booking.EndAt,
		booking.Notes, booking.CreatedAt, booking.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "postgres_booking_repo_create")
	}

	return nil
}

/*
Delete removes a single external-booking row.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: apperr.NotFound or execution failures
*/
func (repository *PostgresBookingRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.CoreExternalBooking.Table, schema.CoreExternalBooking.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "postgres_booking_repo_delete")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Booking")
	}

	return nil
}
