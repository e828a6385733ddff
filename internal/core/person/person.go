// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package person manages the company roster: actors, crew, and administrative
staff, together with their engagements outside the company.

# Architecture

  - Entities: Person, ExternalBooking.
  - The person aggregate owns external bookings: they are created, listed,
    and deleted through this package, and removed together with the person.
  - Deleting a person is a cascade in a single transaction: the linked
    application account is detached, assignments and external bookings are
    removed, then the person row itself.
*/
package person

import (
	"context"
	"time"

	"github.com/ammateam/callboard/pkg/pagination"
)

// # Job Roles

// JobRole classifies a person's primary function in the company.
type JobRole string

const (
	// JobRoleActor performs on stage.
	JobRoleActor JobRole = "ACTOR"
	// JobRoleDirector leads the staging of a production.
	JobRoleDirector JobRole = "DIRECTOR"
	// JobRoleSound operates sound equipment.
	JobRoleSound JobRole = "SOUND"
	// JobRoleLight operates lighting equipment.
	JobRoleLight JobRole = "LIGHT"
	// JobRoleStageman handles scenery and stage machinery.
	JobRoleStageman JobRole = "STAGEMAN"
	// JobRoleProps manages stage properties.
	JobRoleProps JobRole = "PROPS"
	// JobRoleCostume manages wardrobe.
	JobRoleCostume JobRole = "COSTUME"
	// JobRoleASM is an assistant stage manager.
	JobRoleASM JobRole = "ASM"
	// JobRoleAdmin handles front-of-house and administration.
	JobRoleAdmin JobRole = "ADMIN"
	// JobRoleTech is general technical staff.
	JobRoleTech JobRole = "TECH"
	// JobRoleOther is the fallback for unclassified functions.
	JobRoleOther JobRole = "OTHER"
)

// JobRoles lists every recognised [JobRole] in display order.
var JobRoles = []JobRole{
	JobRoleActor, JobRoleDirector, JobRoleSound, JobRoleLight, JobRoleStageman,
	JobRoleProps, JobRoleCostume, JobRoleASM, JobRoleAdmin, JobRoleTech, JobRoleOther,
}

// jobRoleLabels maps each role to its human-readable Russian label.
var jobRoleLabels = map[JobRole]string{
	JobRoleActor:    "Актер",
	JobRoleDirector: "Режиссер",
	JobRoleSound:    "Звукорежиссер",
	JobRoleLight:    "Художник по свету",
	JobRoleStageman: "Монтировщик",
	JobRoleProps:    "Реквизитор",
	JobRoleCostume:  "Костюмер",
	JobRoleASM:      "Помощник режиссера",
	JobRoleAdmin:    "Администратор",
	JobRoleTech:     "Техперсонал",
	JobRoleOther:    "Другое",
}

// IsValid reports whether r is a recognised [JobRole] value.
func (r JobRole) IsValid() bool {
	_, ok := jobRoleLabels[r]
	return ok
}

// Label returns the display label for the role, falling back to the raw value.
func (r JobRole) Label() string {
	if label, ok := jobRoleLabels[r]; ok {
		return label
	}
	return string(r)
}

// JobRoleValues returns the recognised role codes as plain strings, for
// validation at the HTTP boundary.
func JobRoleValues() []string {
	values := make([]string, 0, len(JobRoles))
	for _, role := range JobRoles {
		values = append(values, string(role))
	}
	return values
}

// # Domain Entities

// Person represents a member of the company roster.
type Person struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Role      JobRole   `json:"role"`
	RoleLabel string    `json:"role_label"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExternalBooking represents an engagement outside the company that makes
// the person unavailable for internal scheduling.
//
// EndAt may be nil: open-ended bookings occupy a default window starting at
// StartAt when availability is resolved.
type ExternalBooking struct {
	ID        string     `json:"id"`
	PersonID  string     `json:"person_id"`
	Title     string     `json:"title"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// ListFilter constrains roster listings.
type ListFilter struct {
	Role   JobRole // Empty means all roles
	Search string  // Case-insensitive substring match on full name
	Page   pagination.Params
}

// # Repository Contracts

// Repository defines the persistence contract for the roster.
type Repository interface {
	/*
		List retrieves roster entries matching the filter, ordered by full name.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []Person: Matching page of people
		  - int: Total matching count (for pagination metadata)
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]Person, int, error)

	/*
		FindByID retrieves a single person by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Person: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Person, error)

	/*
		Create persists a new person record.

		Parameters:
		  - context: context.Context
		  - person: *Person

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, person *Person) error

	/*
		Update modifies the mutable fields of an existing person.

		Parameters:
		  - context: context.Context
		  - person: *Person

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, person *Person) error

	/*
		DeleteCascade removes a person and everything that references them in
		one transaction: the application-account link is detached, event
		assignments and external bookings are deleted, then the person row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or transaction failures
	*/
	DeleteCascade(context context.Context, id string) error
}

// BookingRepository defines the persistence contract for external bookings.
type BookingRepository interface {
	/*
		ListByPerson retrieves all external bookings for one person, newest first.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - []ExternalBooking: Engagements outside the company
		  - error: Retrieval failures
	*/
	ListByPerson(context context.Context, personID string) ([]ExternalBooking, error)

	/*
		Create persists a new external booking.

		Parameters:
		  - context: context.Context
		  - booking: *ExternalBooking

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, booking *ExternalBooking) error

	/*
		Delete removes a single external booking.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	Delete(context context.Context, id string) error
}
