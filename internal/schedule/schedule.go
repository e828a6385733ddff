// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package schedule implements the availability engine: who is busy when, and
which events are in trouble because of it.

# Architecture

  - Resolver: maps people to human-readable busy reasons against a reference
    time window, using a coarse SQL prefilter plus the exact interval
    predicate from pkg/interval.
  - Aggregator: wraps resolver output into presentation-ready event rows.
  - Matrix: a day-granular busy grid over a date range. Internal assignments
    mark only the event's start date; external bookings mark every day of
    their span. This is deliberately coarser than the exact check.
  - Person schedule: one person's merged timeline with genuine pairwise
    overlap detection.

Everything here is a pure read. Nothing is cached; every request recomputes
from the store.
*/
package schedule

import (
	"context"
	"time"
)

// AssignmentWindow is one internal engagement of a person: the event they
// are assigned to, reduced to its time window.
type AssignmentWindow struct {
	PersonID   string     `json:"person_id"`
	EventID    string     `json:"event_id"`
	EventTitle string     `json:"event_title"`
	StartAt    time.Time  `json:"start_at"`
	EndAt      *time.Time `json:"end_at,omitempty"`
}

// BookingWindow is one external engagement of a person reduced to its time
// window.
type BookingWindow struct {
	PersonID  string     `json:"person_id"`
	BookingID string     `json:"booking_id"`
	Title     string     `json:"title"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at,omitempty"`
}

// PersonRow is the roster slice the matrix needs.
type PersonRow struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Repository defines the read contract of the availability engine.
//
// The window queries apply only the coarse index-friendly filter
// (start < windowEnd AND (end > windowStart OR end IS NULL)); the service
// applies the exact overlap predicate on top.
type Repository interface {
	/*
		AssignmentsOverlapping retrieves internal engagements of the given
		persons whose event coarsely overlaps the window, excluding one event.

		Parameters:
		  - context: context.Context
		  - personIDs: []string
		  - excludeEventID: string (The reference event, never its own conflict)
		  - windowStart, windowEnd: time.Time

		Returns:
		  - []AssignmentWindow: Coarse candidates
		  - error: Retrieval failures
	*/
	AssignmentsOverlapping(context context.Context, personIDs []string, excludeEventID string, windowStart, windowEnd time.Time) ([]AssignmentWindow, error)

	/*
		BookingsOverlapping retrieves external engagements of the given persons
		that coarsely overlap the window.

		Parameters:
		  - context: context.Context
		  - personIDs: []string
		  - windowStart, windowEnd: time.Time

		Returns:
		  - []BookingWindow: Coarse candidates
		  - error: Retrieval failures
	*/
	BookingsOverlapping(context context.Context, personIDs []string, windowStart, windowEnd time.Time) ([]BookingWindow, error)

	/*
		ListPeople retrieves the roster slice for the matrix, optionally
		filtered by job role and a case-insensitive name substring.

		Parameters:
		  - context: context.Context
		  - role: string (Empty means all)
		  - search: string (Empty means all)

		Returns:
		  - []PersonRow: Matching people ordered by name
		  - error: Retrieval failures
	*/
	ListPeople(context context.Context, role, search string) ([]PersonRow, error)

	/*
		AssignmentsStartingIn retrieves internal engagements of the given
		persons whose event starts inside [from, to).

		Parameters:
		  - context: context.Context
		  - personIDs: []string
		  - from, to: time.Time

		Returns:
		  - []AssignmentWindow: Events starting in the range
		  - error: Retrieval failures
	*/
	AssignmentsStartingIn(context context.Context, personIDs []string, from, to time.Time) ([]AssignmentWindow, error)

	/*
		PersonAssignments retrieves every internal engagement of one person.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - []AssignmentWindow: The person's full internal timeline
		  - error: Retrieval failures
	*/
	PersonAssignments(context context.Context, personID string) ([]AssignmentWindow, error)

	/*
		PersonBookings retrieves every external engagement of one person.

		Parameters:
		  - context: context.Context
		  - personID: string

		Returns:
		  - []BookingWindow: The person's full external timeline
		  - error: Retrieval failures
	*/
	PersonBookings(context context.Context, personID string) ([]BookingWindow, error)
}
