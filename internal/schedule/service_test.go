// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package schedule_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/core/event"
	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/schedule"
	"github.com/ammateam/callboard/pkg/interval"
)

// fakeRepository replays fixed windows and applies the same coarse filter
// the Postgres implementation would.
type fakeRepository struct {
	assignments []schedule.AssignmentWindow
	bookings    []schedule.BookingWindow
	people      []schedule.PersonRow
}

func contains(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func (f *fakeRepository) AssignmentsOverlapping(_ context.Context, personIDs []string, excludeEventID string, windowStart, windowEnd time.Time) ([]schedule.AssignmentWindow, error) {
	var out []schedule.AssignmentWindow
	for _, a := range f.assignments {
		if !contains(personIDs, a.PersonID) || a.EventID == excludeEventID {
			continue
		}
		if a.StartAt.Before(windowEnd) && (a.EndAt == nil || a.EndAt.After(windowStart)) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) BookingsOverlapping(_ context.Context, personIDs []string, windowStart, windowEnd time.Time) ([]schedule.BookingWindow, error) {
	var out []schedule.BookingWindow
	for _, b := range f.bookings {
		if !contains(personIDs, b.PersonID) {
			continue
		}
		if b.StartAt.Before(windowEnd) && (b.EndAt == nil || b.EndAt.After(windowStart)) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepository) ListPeople(_ context.Context, role, search string) ([]schedule.PersonRow, error) {
	var out []schedule.PersonRow
	for _, p := range f.people {
		if role != "" && p.Role != role {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeRepository) AssignmentsStartingIn(_ context.Context, personIDs []string, from, to time.Time) ([]schedule.AssignmentWindow, error) {
	var out []schedule.AssignmentWindow
	for _, a := range f.assignments {
		if !contains(personIDs, a.PersonID) {
			continue
		}
		if !a.StartAt.Before(from) && a.StartAt.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) PersonAssignments(_ context.Context, personID string) ([]schedule.AssignmentWindow, error) {
	var out []schedule.AssignmentWindow
	for _, a := range f.assignments {
		if a.PersonID == personID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) PersonBookings(_ context.Context, personID string) ([]schedule.BookingWindow, error) {
	var out []schedule.BookingWindow
	for _, b := range f.bookings {
		if b.PersonID == personID {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeEventDirectory serves one event and its assignment list.
type fakeEventDirectory struct {
	event       *event.Event
	assignments []event.Assignment
}

func (f *fakeEventDirectory) FindByID(_ context.Context, id string) (*event.Event, error) {
	if f.event == nil || f.event.ID != id {
		return nil, apperr.NotFound("Event")
	}
	return f.event, nil
}

func (f *fakeEventDirectory) ListAssignments(_ context.Context, _ string) ([]event.Assignment, error) {
	return f.assignments, nil
}

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 15, hour, minute, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

/*
TestBusyReasons_ExactPredicateAfterCoarseFilter verifies the resolver keeps
real overlaps, drops touching windows, and leaves free people out of the map.
*/
func TestBusyReasons_ExactPredicateAfterCoarseFilter(t *testing.T) {
	repo := &fakeRepository{
		assignments: []schedule.AssignmentWindow{
			// Overlaps the 14:00-16:00 reference
			{PersonID: "busy", EventID: "other", EventTitle: "Гроза", StartAt: at(15, 0), EndAt: ptr(at(17, 0))},
			// Touches the reference end exactly: not a conflict
			{PersonID: "touching", EventID: "later", EventTitle: "Чайка", StartAt: at(16, 0), EndAt: ptr(at(18, 0))},
		},
		bookings: []schedule.BookingWindow{
			{PersonID: "busy", BookingID: "b1", Title: "Съемки", StartAt: at(15, 30), EndAt: ptr(at(19, 0))},
		},
	}
	service := schedule.NewService(repo, &fakeEventDirectory{}, slog.Default())

	busy, err := service.BusyReasons(context.Background(), schedule.Window{
		EventID: "ref",
		StartAt: at(14, 0),
		EndAt:   ptr(at(16, 0)),
	}, []string{"busy", "touching", "free"})
	require.NoError(t, err)

	require.Len(t, busy["busy"], 2)
	assert.Equal(t, "Событие: Гроза (15.09.2026 15:00)", busy["busy"][0])
	assert.Equal(t, "Внешний проект: Съемки (15.09.2026 15:30)", busy["busy"][1])

	_, touchingListed := busy["touching"]
	assert.False(t, touchingListed)
	_, freeListed := busy["free"]
	assert.False(t, freeListed)
}

/*
TestBusyReasons_FallbackWindowForOpenEnd verifies an open-ended engagement
occupies the default duration from its start.
*/
func TestBusyReasons_FallbackWindowForOpenEnd(t *testing.T) {
	repo := &fakeRepository{
		assignments: []schedule.AssignmentWindow{
			// Open end: effective window is 13:00 + 180 minutes = 16:00
			{PersonID: "p", EventID: "open", EventTitle: "Репетиция", StartAt: at(13, 0)},
		},
	}
	service := schedule.NewService(repo, &fakeEventDirectory{}, slog.Default())

	// 15:30 start overlaps the fallback window
	busy, err := service.BusyReasons(context.Background(), schedule.Window{
		EventID: "ref", StartAt: at(15, 30), EndAt: ptr(at(17, 0)),
	}, []string{"p"})
	require.NoError(t, err)
	assert.Len(t, busy["p"], 1)

	// 16:00 start only touches it
	busy, err = service.BusyReasons(context.Background(), schedule.Window{
		EventID: "ref", StartAt: at(16, 0), EndAt: ptr(at(17, 0)),
	}, []string{"p"})
	require.NoError(t, err)
	assert.Empty(t, busy["p"])
}

/*
TestEventConflicts_FlagsAndOrder verifies the aggregator's OR-flag and that
rows keep the cast display order.
*/
func TestEventConflicts_FlagsAndOrder(t *testing.T) {
	ref := &event.Event{
		ID:      "ref",
		Title:   "Гамлет",
		StartAt: at(19, 0),
		EndAt:   ptr(at(21, 0)),
	}
	directory := &fakeEventDirectory{
		event: ref,
		assignments: []event.Assignment{
			{ID: "a2", EventID: "ref", RoleID: "r2", RoleTitle: "Офелия", RoleSortOrder: 2, PersonID: "free"},
			{ID: "a1", EventID: "ref", RoleID: "r1", RoleTitle: "Гамлет", RoleSortOrder: 1, PersonID: "busy"},
		},
	}
	repo := &fakeRepository{
		assignments: []schedule.AssignmentWindow{
			{PersonID: "busy", EventID: "other", EventTitle: "Чайка", StartAt: at(20, 0), EndAt: ptr(at(22, 0))},
		},
	}
	service := schedule.NewService(repo, directory, slog.Default())

	report, err := service.EventConflicts(context.Background(), "ref")
	require.NoError(t, err)

	assert.True(t, report.HasConflicts)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, "a1", report.Rows[0].ID)
	assert.NotEmpty(t, report.Rows[0].BusyReasons)
	assert.Empty(t, report.Rows[1].BusyReasons)
}

/*
TestMatrix_DayMarkingAndClamping verifies the day-granular semantics:
internal assignments mark only the start day, external bookings every day of
their span clipped to the range, and the range length clamps to its bounds.
*/
func TestMatrix_DayMarkingAndClamping(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
	}

	repo := &fakeRepository{
		people: []schedule.PersonRow{{ID: "p", FullName: "Анна", Role: "ACTOR"}},
		assignments: []schedule.AssignmentWindow{
			// Multi-day event: still marks only September 10
			{PersonID: "p", EventID: "e", EventTitle: "Гастроли", StartAt: day(10).Add(20 * time.Hour), EndAt: ptr(day(12))},
		},
		bookings: []schedule.BookingWindow{
			// Booking spans September 8..11, range starts on the 10th
			{PersonID: "p", BookingID: "b", Title: "Съемки", StartAt: day(8), EndAt: ptr(day(11).Add(12 * time.Hour))},
		},
	}
	service := schedule.NewService(repo, &fakeEventDirectory{}, slog.Default())

	result, err := service.Matrix(context.Background(), day(10), 3, "", "")
	require.NoError(t, err)

	// 3 requested days clamp up to the 7-day minimum
	assert.Len(t, result.Days, 7)

	require.Len(t, result.Rows, 1)
	row := result.Rows[0]

	assert.ElementsMatch(t, []string{"Гастроли", "Съемки"}, row.Days["2026-09-10"])
	assert.Equal(t, []string{"Съемки"}, row.Days["2026-09-11"])
	assert.Empty(t, row.Days["2026-09-12"])

	// Oversized ranges clamp down
	result, err = service.Matrix(context.Background(), day(10), 90, "", "")
	require.NoError(t, err)
	assert.Len(t, result.Days, 31)
}

/*
TestPersonSchedule_PairwiseConflictsAndSplit verifies the canonical example:
14:00-16:00 and 15:00-17:00 conflict with each other, 17:00-18:00 is clean,
and the list splits into ascending upcoming and descending past buckets.
*/
func TestPersonSchedule_PairwiseConflictsAndSplit(t *testing.T) {
	repo := &fakeRepository{
		assignments: []schedule.AssignmentWindow{
			{PersonID: "p", EventID: "e1", EventTitle: "Репетиция", StartAt: at(14, 0), EndAt: ptr(at(16, 0))},
			{PersonID: "p", EventID: "e2", EventTitle: "Прогон", StartAt: at(17, 0), EndAt: ptr(at(18, 0))},
		},
		bookings: []schedule.BookingWindow{
			{PersonID: "p", BookingID: "b1", Title: "Съемки", StartAt: at(15, 0), EndAt: ptr(at(17, 0))},
		},
	}
	service := schedule.NewService(repo, &fakeEventDirectory{}, slog.Default())

	// Now is 14:30: the first entry is already past but still overlapping
	result, err := service.PersonSchedule(context.Background(), "p", at(14, 30))
	require.NoError(t, err)

	require.Len(t, result.Past, 1)
	require.Len(t, result.Upcoming, 2)

	past := result.Past[0]
	assert.Equal(t, "Репетиция", past.Title)
	assert.NotEmpty(t, past.Conflicts)

	// Upcoming stays ascending; the booking still flags its overlap with the
	// past-started rehearsal
	assert.Equal(t, "Съемки", result.Upcoming[0].Title)
	assert.Equal(t, "Прогон", result.Upcoming[1].Title)
	assert.NotEmpty(t, result.Upcoming[0].Conflicts)
	assert.Empty(t, result.Upcoming[1].Conflicts)
}

/*
TestPersonSchedule_TouchingWindowsDoNotConflict re-checks the half-open
boundary through the timeline path.
*/
func TestPersonSchedule_TouchingWindowsDoNotConflict(t *testing.T) {
	repo := &fakeRepository{
		assignments: []schedule.AssignmentWindow{
			{PersonID: "p", EventID: "e1", EventTitle: "Утренник", StartAt: at(10, 0), EndAt: ptr(at(12, 0))},
			{PersonID: "p", EventID: "e2", EventTitle: "Дневной", StartAt: at(12, 0), EndAt: ptr(at(14, 0))},
		},
	}
	service := schedule.NewService(repo, &fakeEventDirectory{}, slog.Default())

	result, err := service.PersonSchedule(context.Background(), "p", at(9, 0))
	require.NoError(t, err)

	require.Len(t, result.Upcoming, 2)
	for _, entry := range result.Upcoming {
		assert.Empty(t, entry.Conflicts)
	}

	// Sanity: the predicate itself agrees
	assert.False(t, interval.Overlaps(
		interval.Interval{Start: at(10, 0), End: ptr(at(12, 0))},
		interval.Interval{Start: at(12, 0), End: ptr(at(14, 0))},
	))
}
