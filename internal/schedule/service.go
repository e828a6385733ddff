// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/ammateam/callboard/internal/core/event"
	"github.com/ammateam/callboard/internal/platform/constants"
	"github.com/ammateam/callboard/pkg/interval"
)

// EventDirectory is the slice of the event domain the aggregator needs.
type EventDirectory interface {
	FindByID(context context.Context, id string) (*event.Event, error)
	ListAssignments(context context.Context, eventID string) ([]event.Assignment, error)
}

// reasonTimeLayout is how colliding engagement times are rendered inside
// reason strings.
const reasonTimeLayout = "02.01.2006 15:04"

// dayKeyLayout is the matrix day-bucket key format.
const dayKeyLayout = "2006-01-02"

// # Service Layer

// Service implements the availability resolver, the conflict aggregator,
// the busy matrix, and the per-person timeline.
type Service struct {
	repository Repository
	events     EventDirectory
	logger     *slog.Logger
}

// NewService constructs a new schedule [Service].
func NewService(repository Repository, events EventDirectory, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		events:     events,
		logger:     logger,
	}
}

// Window is the reference time slot availability is resolved against.
type Window struct {
	EventID string
	StartAt time.Time
	EndAt   *time.Time
}

// # Availability Resolver

/*
BusyReasons resolves which of the given persons are busy during the
reference window and why.

Description: Internal assignments and external bookings are fetched through
a coarse index-friendly prefilter, then the exact interval predicate throws
out the near-misses the prefilter admitted. One human-readable reason string
per surviving overlap; event collisions come before booking collisions. A
person absent from the returned map has zero conflicts in the window.

Parameters:
  - context: context.Context
  - ref: Window (The reference event's slot)
  - personIDs: []string

Returns:
  - map[string][]string: Person ID to ordered busy reasons
  - error: Retrieval failures
*/
func (service *Service) BusyReasons(context context.Context, ref Window, personIDs []string) (map[string][]string, error) {
	reasons := make(map[string][]string)
	if len(personIDs) == 0 {
		return reasons, nil
	}

	refInterval := interval.Interval{Start: ref.StartAt, End: ref.EndAt}
	windowEnd := refInterval.EffectiveEnd()

	assignments, err := service.repository.AssignmentsOverlapping(context, personIDs, ref.EventID, ref.StartAt, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_busy_assignments_failed: %w", err)
	}

	for _, a := range assignments {
		if !interval.Overlaps(refInterval, interval.Interval{Start: a.StartAt, End: a.EndAt}) {
			continue
		}
		reasons[a.PersonID] = append(reasons[a.PersonID],
			fmt.Sprintf("Событие: %s (%s)", a.EventTitle, a.StartAt.Format(reasonTimeLayout)))
	}

	bookings, err := service.repository.BookingsOverlapping(context, personIDs, ref.StartAt, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_busy_bookings_failed: %w", err)
	}

	for _, b := range bookings {
		if !interval.Overlaps(refInterval, interval.Interval{Start: b.StartAt, End: b.EndAt}) {
			continue
		}
		reasons[b.PersonID] = append(reasons[b.PersonID],
			fmt.Sprintf("Внешний проект: %s (%s)", b.Title, b.StartAt.Format(reasonTimeLayout)))
	}

	return reasons, nil
}

// # Conflict Aggregator

// ConflictRow is one assignment of the inspected event annotated with the
// assignee's busy reasons elsewhere.
type ConflictRow struct {
	event.Assignment
	BusyReasons []string `json:"busy_reasons,omitempty"`
}

// EventConflictReport is the aggregator's presentation-ready answer.
type EventConflictReport struct {
	Event        event.Event   `json:"event"`
	HasConflicts bool          `json:"has_conflicts"`
	Rows         []ConflictRow `json:"rows"`
}

/*
EventConflicts annotates every assignment of an event with the assignee's
collisions elsewhere.

Description: Rows keep the cast display order (role sort order ascending,
locale-aware title tie-break, generic staff last). HasConflicts is the OR
across all assigned persons.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - *EventConflictReport: The annotated cast list
  - error: Not found or retrieval failures
*/
func (service *Service) EventConflicts(context context.Context, eventID string) (*EventConflictReport, error) {
	inspected, err := service.events.FindByID(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_conflicts_lookup_failed: %w", err)
	}

	assignments, err := service.events.ListAssignments(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_conflicts_assignments_failed: %w", err)
	}
	event.SortAssignments(assignments)

	personIDs := make([]string, 0, len(assignments))
	for _, a := range assignments {
		personIDs = append(personIDs, a.PersonID)
	}

	busy, err := service.BusyReasons(context, Window{
		EventID: inspected.ID,
		StartAt: inspected.StartAt,
		EndAt:   inspected.EndAt,
	}, personIDs)
	if err != nil {
		return nil, err
	}

	report := &EventConflictReport{Event: *inspected, Rows: make([]ConflictRow, 0, len(assignments))}
	for _, a := range assignments {
		row := ConflictRow{Assignment: a, BusyReasons: busy[a.PersonID]}
		if len(row.BusyReasons) > 0 {
			report.HasConflicts = true
		}
		report.Rows = append(report.Rows, row)
	}

	return report, nil
}

// # Busy Matrix

// MatrixRow is one person's day-bucketed busy titles.
type MatrixRow struct {
	PersonID string              `json:"person_id"`
	FullName string              `json:"full_name"`
	Role     string              `json:"role"`
	Days     map[string][]string `json:"days"`
}

// MatrixResult is the rendered busy grid.
type MatrixResult struct {
	From time.Time   `json:"from"`
	Days []string    `json:"days"`
	Rows []MatrixRow `json:"rows"`
}

/*
Matrix renders the day-granular busy grid for a date range.

Description: The range length is clamped to [7, 31] days. Internal
assignments mark only the day the event starts; external bookings mark every
day from their start to their effective end inclusive, clipped to the range.
The coarseness is intentional: the grid answers "busy that day, regardless
of hour".

Parameters:
  - context: context.Context
  - from: time.Time (Range start, truncated to its day)
  - days: int (Requested length, clamped)
  - role: string (Optional job-role filter)
  - search: string (Optional name substring filter)

Returns:
  - *MatrixResult: The rendered grid
  - error: Retrieval failures
*/
func (service *Service) Matrix(context context.Context, from time.Time, days int, role, search string) (*MatrixResult, error) {
	if days == 0 {
		days = constants.MatrixDefaultDays
	}
	if days < constants.MatrixMinDays {
		days = constants.MatrixMinDays
	}
	if days > constants.MatrixMaxDays {
		days = constants.MatrixMaxDays
	}

	rangeStart := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	rangeEnd := rangeStart.AddDate(0, 0, days)

	people, err := service.repository.ListPeople(context, role, search)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_matrix_people_failed: %w", err)
	}

	result := &MatrixResult{From: rangeStart, Days: make([]string, 0, days)}
	for day := 0; day < days; day++ {
		result.Days = append(result.Days, rangeStart.AddDate(0, 0, day).Format(dayKeyLayout))
	}

	if len(people) == 0 {
		result.Rows = []MatrixRow{}
		return result, nil
	}

	personIDs := make([]string, 0, len(people))
	rowIndex := make(map[string]int, len(people))
	for i, p := range people {
		personIDs = append(personIDs, p.ID)
		rowIndex[p.ID] = i
		result.Rows = append(result.Rows, MatrixRow{
			PersonID: p.ID,
			FullName: p.FullName,
			Role:     p.Role,
			Days:     make(map[string][]string),
		})
	}

	assignments, err := service.repository.AssignmentsStartingIn(context, personIDs, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_matrix_assignments_failed: %w", err)
	}

	// Internal engagements mark the start day only
	for _, a := range assignments {
		i, ok := rowIndex[a.PersonID]
		if !ok {
			continue
		}
		key := a.StartAt.In(rangeStart.Location()).Format(dayKeyLayout)
		result.Rows[i].Days[key] = append(result.Rows[i].Days[key], a.EventTitle)
	}

	bookings, err := service.repository.BookingsOverlapping(context, personIDs, rangeStart, rangeEnd)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_matrix_bookings_failed: %w", err)
	}

	// External engagements mark each day of their span, clipped to the range
	for _, b := range bookings {
		i, ok := rowIndex[b.PersonID]
		if !ok {
			continue
		}
		spanEnd := interval.EffectiveEnd(b.StartAt, b.EndAt)

		day := time.Date(b.StartAt.Year(), b.StartAt.Month(), b.StartAt.Day(), 0, 0, 0, 0, rangeStart.Location())
		if day.Before(rangeStart) {
			day = rangeStart
		}
		for !day.After(spanEnd) && day.Before(rangeEnd) {
			key := day.Format(dayKeyLayout)
			result.Rows[i].Days[key] = append(result.Rows[i].Days[key], b.Title)
			day = day.AddDate(0, 0, 1)
		}
	}

	return result, nil
}

// # Person Schedule

// EntryKind distinguishes internal assignments from external bookings in
// the merged timeline.
type EntryKind string

const (
	// EntryInternal is an assignment to a company event.
	EntryInternal EntryKind = "INTERNAL"
	// EntryExternal is an engagement outside the company.
	EntryExternal EntryKind = "EXTERNAL"
)

// TimelineEntry is one engagement in a person's merged schedule.
type TimelineEntry struct {
	Kind      EntryKind  `json:"kind"`
	RefID     string     `json:"ref_id"`
	Title     string     `json:"title"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at,omitempty"`
	Conflicts []string   `json:"conflicts,omitempty"`
}

// PersonScheduleResult is the split timeline of one person.
type PersonScheduleResult struct {
	Upcoming []TimelineEntry `json:"upcoming"`
	Past     []TimelineEntry `json:"past"`
}

/*
PersonSchedule merges all engagements of one person into a timeline with
pairwise conflict detection.

Description: Internal assignments and external bookings merge into one list
sorted by start time. Every pair is tested with the exact overlap predicate
before the list is split into upcoming (start >= now, ascending) and past
(start < now, descending), so an upcoming entry still flags its overlap with
a still-running engagement that started in the past.

Parameters:
  - context: context.Context
  - personID: string
  - now: time.Time

Returns:
  - *PersonScheduleResult: Upcoming and past engagements with conflicts
  - error: Retrieval failures
*/
func (service *Service) PersonSchedule(context context.Context, personID string, now time.Time) (*PersonScheduleResult, error) {
	assignments, err := service.repository.PersonAssignments(context, personID)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_timeline_assignments_failed: %w", err)
	}

	bookings, err := service.repository.PersonBookings(context, personID)
	if err != nil {
		return nil, fmt.Errorf("schedule_service_timeline_bookings_failed: %w", err)
	}

	entries := make([]TimelineEntry, 0, len(assignments)+len(bookings))
	for _, a := range assignments {
		entries = append(entries, TimelineEntry{
			Kind:    EntryInternal,
			RefID:   a.EventID,
			Title:   a.EventTitle,
			StartAt: a.StartAt,
			EndAt:   a.EndAt,
		})
	}
	for _, b := range bookings {
		entries = append(entries, TimelineEntry{
			Kind:    EntryExternal,
			RefID:   b.BookingID,
			Title:   b.Title,
			StartAt: b.StartAt,
			EndAt:   b.EndAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].StartAt.Before(entries[j].StartAt)
	})

	// Pairwise exact overlap across the whole merged list, before any split
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			a := interval.Interval{Start: entries[i].StartAt, End: entries[i].EndAt}
			b := interval.Interval{Start: entries[j].StartAt, End: entries[j].EndAt}
			if !interval.Overlaps(a, b) {
				continue
			}
			entries[i].Conflicts = append(entries[i].Conflicts,
				fmt.Sprintf("%s (%s)", entries[j].Title, entries[j].StartAt.Format(reasonTimeLayout)))
			entries[j].Conflicts = append(entries[j].Conflicts,
				fmt.Sprintf("%s (%s)", entries[i].Title, entries[i].StartAt.Format(reasonTimeLayout)))
		}
	}

	result := &PersonScheduleResult{Upcoming: []TimelineEntry{}, Past: []TimelineEntry{}}
	for _, entry := range entries {
		if entry.StartAt.Before(now) {
			result.Past = append(result.Past, entry)
		} else {
			result.Upcoming = append(result.Upcoming, entry)
		}
	}

	// Past bucket renders newest first
	sort.SliceStable(result.Past, func(i, j int) bool {
		return result.Past[i].StartAt.After(result.Past[j].StartAt)
	})

	return result, nil
}
