// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package play manages the repertoire: productions, their named roles, and the
default ("base") cast applied when new events are scheduled.

# Architecture

  - Entities: Play, Role.
  - Roles keep a stable sort order: a new role gets max+1 within its play and
    existing orders are never renumbered, so listings stay predictable.
  - The base cast binds at most one person to each role. Event creation copies
    it; changing it later never touches events that already exist.
*/
package play

import (
	"context"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// # Domain Entities

// Play represents a production in the repertoire.
type Play struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Role represents a named part within a play.
//
// CastPersonID and CastPersonName carry the base-cast binding when the role
// is hydrated for display; they are empty when no default performer is set.
type Role struct {
	ID             string    `json:"id"`
	PlayID         string    `json:"play_id"`
	Title          string    `json:"title"`
	SortOrder      int       `json:"sort_order"`
	Notes          string    `json:"notes,omitempty"`
	CastPersonID   string    `json:"cast_person_id,omitempty"`
	CastPersonName string    `json:"cast_person_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SortRoles orders roles by sort order ascending, breaking ties on the role
// title with Russian collation so Cyrillic titles sort the way people expect.
func SortRoles(roles []Role) {
	collator := collate.New(language.Russian)
	sort.SliceStable(roles, func(i, j int) bool {
		if roles[i].SortOrder != roles[j].SortOrder {
			return roles[i].SortOrder < roles[j].SortOrder
		}
		return collator.CompareString(roles[i].Title, roles[j].Title) < 0
	})
}

// # Repository Contracts

// Repository defines the persistence contract for plays.
type Repository interface {
	/*
		List retrieves every play ordered by title.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Play: The repertoire
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]Play, error)

	/*
		FindByID retrieves a single play by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Play: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Play, error)

	/*
		FindOrCreateByTitle resolves a play by its exact title, creating it when
		absent. Concurrent creation of the same title is resolved through the
		unique title index with a retry lookup.

		Parameters:
		  - context: context.Context
		  - title: string (Exact, already trimmed)

		Returns:
		  - *Play: The existing or newly created play
		  - bool: True when the play was created by this call
		  - error: Storage failures
	*/
	FindOrCreateByTitle(context context.Context, title string) (*Play, bool, error)

	/*
		Create persists a new play record.

		Parameters:
		  - context: context.Context
		  - play: *Play

		Returns:
		  - error: apperr.Conflict on a duplicate title, storage failures
	*/
	Create(context context.Context, play *Play) error

	/*
		Update modifies the mutable fields of an existing play.

		Parameters:
		  - context: context.Context
		  - play: *Play

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, play *Play) error

	/*
		Delete removes a play. Plays referenced by events are protected by the
		schema and surface as apperr.Unprocessable.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound, apperr.Unprocessable or execution failures
	*/
	Delete(context context.Context, id string) error
}

// RoleRepository defines the persistence contract for play roles and the
// base cast.
type RoleRepository interface {
	/*
		ListByPlay retrieves all roles of a play with their base-cast bindings,
		ordered by sort order.

		Parameters:
		  - context: context.Context
		  - playID: string

		Returns:
		  - []Role: Hydrated roles
		  - error: Retrieval failures
	*/
	ListByPlay(context context.Context, playID string) ([]Role, error)

	/*
		FindByID retrieves a single role.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Role: Hydrated entity (without cast enrichment)
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Role, error)

	/*
		NextSortOrder returns max(sortorder)+1 within the play, starting at 1
		for the first role.

		Parameters:
		  - context: context.Context
		  - playID: string

		Returns:
		  - int: The next free sort position
		  - error: Retrieval failures
	*/
	NextSortOrder(context context.Context, playID string) (int, error)

	/*
		Create persists a new role record.

		Parameters:
		  - context: context.Context
		  - role: *Role

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, role *Role) error

	/*
		Update modifies a role's title and notes. Sort order is immutable.

		Parameters:
		  - context: context.Context
		  - role: *Role

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, role *Role) error

	/*
		Delete removes a role together with its base-cast binding; event
		assignments referencing the role are removed by the schema cascade.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or execution failures
	*/
	Delete(context context.Context, id string) error

	/*
		SetBaseCast binds a person to a role as its default performer, or clears
		the binding when personID is empty. The binding is unique per role.

		Parameters:
		  - context: context.Context
		  - roleID: string
		  - personID: string (Empty clears the binding)

		Returns:
		  - error: Constraint or storage failures
	*/
	SetBaseCast(context context.Context, roleID, personID string) error
}
