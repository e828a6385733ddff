// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package event manages the production calendar: shows and rehearsals, their
venues, and the people assigned to each of them.

# Architecture

  - Entities: Event, Assignment.
  - An event always belongs to a play and mirrors its title. Changing the
    play re-syncs the title and rebuilds role-based assignments from the new
    play's base cast in a single transaction.
  - Assignments come in two shapes: role-based (bound to a play role, at most
    one per role per event) and generic staff (a free-form job title).
  - Double-casting the same person on one event is rejected as a conflict, it
    is never silently merged.
*/
package event

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ammateam/callboard/pkg/pagination"
)

// # Enumerations

// Type classifies what happens on stage.
type Type string

const (
	// TypeShow is a public performance.
	TypeShow Type = "SHOW"
	// TypeRehearsal is an internal working session.
	TypeRehearsal Type = "REHEARSAL"
)

// IsValid reports whether t is a recognised [Type] value.
func (t Type) IsValid() bool {
	return t == TypeShow || t == TypeRehearsal
}

// TypeValues returns the recognised type codes as plain strings.
func TypeValues() []string {
	return []string{string(TypeShow), string(TypeRehearsal)}
}

// Status tracks the lifecycle of an event. Transitions are free-form: any
// status may move to any other.
type Status string

const (
	// StatusDraft is a tentative calendar entry.
	StatusDraft Status = "DRAFT"
	// StatusConfirmed is a settled calendar entry.
	StatusConfirmed Status = "CONFIRMED"
	// StatusCanceled is a withdrawn entry kept for history.
	StatusCanceled Status = "CANCELED"
)

// IsValid reports whether s is a recognised [Status] value.
func (s Status) IsValid() bool {
	return s == StatusDraft || s == StatusConfirmed || s == StatusCanceled
}

// StatusValues returns the recognised status codes as plain strings.
func StatusValues() []string {
	return []string{string(StatusDraft), string(StatusConfirmed), string(StatusCanceled)}
}

// # Domain Entities

// Event represents one calendar entry: a show or a rehearsal.
//
// EndAt may be nil; availability checks then assume a default duration from
// the start. Title always mirrors the play title.
type Event struct {
	ID         string     `json:"id"`
	PlayID     string     `json:"play_id"`
	PlayTitle  string     `json:"play_title,omitempty"`
	VenueID    string     `json:"venue_id,omitempty"`
	VenueTitle string     `json:"venue_title,omitempty"`
	Title      string     `json:"title"`
	Type       Type       `json:"type"`
	Status     Status     `json:"status"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Assignment binds a person to an event, either through a play role or as
// generic staff with a free-form job title.
type Assignment struct {
	ID            string     `json:"id"`
	EventID       string     `json:"event_id"`
	RoleID        string     `json:"role_id,omitempty"`
	RoleTitle     string     `json:"role_title,omitempty"`
	RoleSortOrder int        `json:"role_sort_order,omitempty"`
	PersonID      string     `json:"person_id"`
	PersonName    string     `json:"person_name,omitempty"`
	JobTitle      string     `json:"job_title,omitempty"`
	CallTime      *time.Time `json:"call_time,omitempty"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// SortAssignments orders a cast list for display: role-based assignments
// first by role sort order with Russian-collated role titles as tie-break,
// generic staff after them ordered by person name.
func SortAssignments(assignments []Assignment) {
	collator := collate.New(language.Russian)
	sort.SliceStable(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		switch {
		case a.RoleID != "" && b.RoleID == "":
			return true
		case a.RoleID == "" && b.RoleID != "":
			return false
		case a.RoleID != "" && b.RoleID != "":
			if a.RoleSortOrder != b.RoleSortOrder {
				return a.RoleSortOrder < b.RoleSortOrder
			}
			return collator.CompareString(a.RoleTitle, b.RoleTitle) < 0
		default:
			return collator.CompareString(a.PersonName, b.PersonName) < 0
		}
	})
}

// ListFilter constrains calendar listings.
type ListFilter struct {
	From     *time.Time
	To       *time.Time
	PlayID   string
	Statuses []Status // Empty means all statuses
	Page     pagination.Params
}

// # Repository Contracts

// Repository defines the persistence contract for events and assignments.
type Repository interface {
	/*
		List retrieves calendar entries matching the filter ordered by start
		time ascending.

		Parameters:
		  - context: context.Context
		  - filter: ListFilter

		Returns:
		  - []Event: Matching page with play and venue titles hydrated
		  - int: Total matching count
		  - error: Retrieval failures
	*/
	List(context context.Context, filter ListFilter) ([]Event, int, error)

	/*
		FindByID retrieves a single event with play and venue titles hydrated.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Event: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Event, error)

	/*
		CreateWithBaseCast inserts the event and copies the play's base cast
		into role-based assignments in one transaction.

		Parameters:
		  - context: context.Context
		  - event: *Event

		Returns:
		  - error: Constraint or transaction failures
	*/
	CreateWithBaseCast(context context.Context, event *Event) error

	/*
		Update persists event changes. When playChanged is set, role-based
		assignments are dropped and rebuilt from the new play's base cast in
		the same transaction; generic staff assignments survive.

		Parameters:
		  - context: context.Context
		  - event: *Event
		  - playChanged: bool

		Returns:
		  - error: Constraint or transaction failures
	*/
	Update(context context.Context, event *Event, playChanged bool) error

	/*
		Delete removes an event together with its assignments.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	Delete(context context.Context, id string) error

	/*
		ListAssignments retrieves every assignment of an event with role and
		person data hydrated, unordered (callers sort for display).

		Parameters:
		  - context: context.Context
		  - eventID: string

		Returns:
		  - []Assignment: The cast and staff list
		  - error: Retrieval failures
	*/
	ListAssignments(context context.Context, eventID string) ([]Assignment, error)

	/*
		CreateAssignment inserts a generic staff assignment. A second
		assignment of the same person to the same event is rejected.

		Parameters:
		  - context: context.Context
		  - assignment: *Assignment

		Returns:
		  - error: apperr.Conflict on a duplicate person, storage failures
	*/
	CreateAssignment(context context.Context, assignment *Assignment) error

	/*
		SetRoleAssignment binds a person to a play role on one event (upsert
		on the unique event+role pair), or deletes the binding when personID
		is empty.

		Parameters:
		  - context: context.Context
		  - eventID: string
		  - roleID: string
		  - personID: string (Empty clears the binding)

		Returns:
		  - error: Constraint or storage failures
	*/
	SetRoleAssignment(context context.Context, eventID, roleID, personID string) error

	/*
		FillFromBaseCast inserts base-cast persons for every role of the
		event's play that has no assignment yet. Existing assignments are
		left untouched.

		Parameters:
		  - context: context.Context
		  - eventID: string

		Returns:
		  - int: Number of assignments created
		  - error: Execution failures
	*/
	FillFromBaseCast(context context.Context, eventID string) (int, error)

	/*
		DeleteAssignment removes a single assignment.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	DeleteAssignment(context context.Context, id string) error

	/*
		RolePlayID resolves which play a role belongs to, for the role-scope
		invariant check.

		Parameters:
		  - context: context.Context
		  - roleID: string

		Returns:
		  - string: The owning play's ID
		  - error: apperr.NotFound or retrieval failures
	*/
	RolePlayID(context context.Context, roleID string) (string, error)
}
