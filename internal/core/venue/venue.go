// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package venue manages the performance locations of the company.

A venue is a physical stage or hall that events are scheduled into. The
entity is intentionally small: scheduling logic never inspects venues
beyond their identity and title.
*/
package venue

import (
	"context"
	"time"
)

// # Domain Entities

// Venue represents a performance location.
type Venue struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Address   string    `json:"address,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// # Repository Contracts

// Repository defines the persistence contract for venues.
type Repository interface {
	/*
		List retrieves all venues ordered by title.

		Parameters:
		  - context: context.Context

		Returns:
		  - []Venue: All registered venues
		  - error: Retrieval failures
	*/
	List(context context.Context) ([]Venue, error)

	/*
		FindByID retrieves a single venue by its unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Venue: Hydrated venue entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Venue, error)

	/*
		Create persists a new venue record.

		Parameters:
		  - context: context.Context
		  - venue: *Venue (Fully populated entity)

		Returns:
		  - error: Constraint or storage failures
	*/
	Create(context context.Context, venue *Venue) error

	/*
		Update modifies the mutable fields of an existing venue.

		Parameters:
		  - context: context.Context
		  - venue: *Venue

		Returns:
		  - error: Storage failures
	*/
	Update(context context.Context, venue *Venue) error

	/*
		Delete removes a venue permanently.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	Delete(context context.Context, id string) error
}
