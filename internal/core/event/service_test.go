// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package event_test

import (
	"context"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/core/event"
	"github.com/ammateam/callboard/internal/core/play"
	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/pkg/pointer"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// fakeRepository is an in-memory [event.Repository]. Base-cast copying and
// play rebuilds mimic the transactional Postgres behavior.
type fakeRepository struct {
	events      map[string]event.Event
	assignments map[string]event.Assignment
	rolePlays   map[string]string // roleID -> playID
	baseCast    map[string]string // roleID -> personID
	playRoles   map[string][]string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events:      map[string]event.Event{},
		assignments: map[string]event.Assignment{},
		rolePlays:   map[string]string{},
		baseCast:    map[string]string{},
		playRoles:   map[string][]string{},
	}
}

func (f *fakeRepository) addRole(playID, roleID, castPersonID string) {
	f.rolePlays[roleID] = playID
	f.playRoles[playID] = append(f.playRoles[playID], roleID)
	if castPersonID != "" {
		f.baseCast[roleID] = castPersonID
	}
}

func (f *fakeRepository) copyBaseCast(eventID, playID string) int {
	created := 0
	for _, roleID := range f.playRoles[playID] {
		personID, ok := f.baseCast[roleID]
		if !ok {
			continue
		}
		taken := false
		for _, a := range f.assignments {
			if a.EventID == eventID && a.RoleID == roleID {
				taken = true
				break
			}
		}
		if taken {
			continue
		}
		id := uuidv7.New()
		f.assignments[id] = event.Assignment{ID: id, EventID: eventID, RoleID: roleID, PersonID: personID}
		created++
	}
	return created
}

func (f *fakeRepository) List(_ context.Context, filter event.ListFilter) ([]event.Event, int, error) {
	var out []event.Event
	for _, e := range f.events {
		if len(filter.Statuses) > 0 && !slices.Contains(filter.Statuses, e.Status) {
			continue
		}
		out = append(out, e)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*event.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, apperr.NotFound("Event")
	}
	return &e, nil
}

func (f *fakeRepository) CreateWithBaseCast(_ context.Context, e *event.Event) error {
	f.events[e.ID] = *e
	f.copyBaseCast(e.ID, e.PlayID)
	return nil
}

func (f *fakeRepository) Update(_ context.Context, e *event.Event, playChanged bool) error {
	if _, ok := f.events[e.ID]; !ok {
		return apperr.NotFound("Event")
	}
	f.events[e.ID] = *e
	if playChanged {
		for id, a := range f.assignments {
			if a.EventID == e.ID && a.RoleID != "" {
				delete(f.assignments, id)
			}
		}
		f.copyBaseCast(e.ID, e.PlayID)
	}
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return apperr.NotFound("Event")
	}
	delete(f.events, id)
	return nil
}

func (f *fakeRepository) ListAssignments(_ context.Context, eventID string) ([]event.Assignment, error) {
	var out []event.Assignment
	for _, a := range f.assignments {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeRepository) CreateAssignment(_ context.Context, a *event.Assignment) error {
	for _, existing := range f.assignments {
		if existing.EventID == a.EventID && existing.PersonID == a.PersonID {
			return apperr.Conflict("Person is already assigned to this event")
		}
	}
	f.assignments[a.ID] = *a
	return nil
}

func (f *fakeRepository) SetRoleAssignment(_ context.Context, eventID, roleID, personID string) error {
	for id, a := range f.assignments {
		if a.EventID == eventID && a.RoleID == roleID {
			if personID == "" {
				delete(f.assignments, id)
				return nil
			}
			a.PersonID = personID
			f.assignments[id] = a
			return nil
		}
	}
	if personID == "" {
		return nil
	}
	id := uuidv7.New()
	f.assignments[id] = event.Assignment{ID: id, EventID: eventID, RoleID: roleID, PersonID: personID}
	return nil
}

func (f *fakeRepository) FillFromBaseCast(_ context.Context, eventID string) (int, error) {
	e, ok := f.events[eventID]
	if !ok {
		return 0, apperr.NotFound("Event")
	}
	return f.copyBaseCast(eventID, e.PlayID), nil
}

func (f *fakeRepository) DeleteAssignment(_ context.Context, id string) error {
	if _, ok := f.assignments[id]; !ok {
		return apperr.NotFound("Assignment")
	}
	delete(f.assignments, id)
	return nil
}

func (f *fakeRepository) RolePlayID(_ context.Context, roleID string) (string, error) {
	playID, ok := f.rolePlays[roleID]
	if !ok {
		return "", apperr.NotFound("Role")
	}
	return playID, nil
}

// fakePlayDirectory resolves plays from a fixed map.
type fakePlayDirectory struct {
	plays map[string]play.Play
}

func (f *fakePlayDirectory) FindByID(_ context.Context, id string) (*play.Play, error) {
	p, ok := f.plays[id]
	if !ok {
		return nil, apperr.NotFound("Play")
	}
	return &p, nil
}

func newTestService(repo *fakeRepository, plays map[string]play.Play) *event.Service {
	return event.NewService(repo, &fakePlayDirectory{plays: plays}, slog.Default())
}

/*
TestService_CreateCopiesBaseCast verifies that scheduling an event mirrors
the play title and copies the base cast into role assignments.
*/
func TestService_CreateCopiesBaseCast(t *testing.T) {
	repo := newFakeRepository()
	playID := uuidv7.New()
	repo.addRole(playID, "role-1", "person-1")
	repo.addRole(playID, "role-2", "")

	service := newTestService(repo, map[string]play.Play{
		playID: {ID: playID, Title: "Гроза"},
	})

	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  playID,
		Type:    event.TypeShow,
		Status:  event.StatusConfirmed,
		StartAt: time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, "Гроза", created.Title)

	assignments, err := repo.ListAssignments(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "person-1", assignments[0].PersonID)
	assert.Equal(t, "role-1", assignments[0].RoleID)
}

/*
TestService_UpdatePlayRebuildsCast verifies that switching the play re-syncs
the title and swaps role assignments to the new play's base cast while
generic staff assignments survive.
*/
func TestService_UpdatePlayRebuildsCast(t *testing.T) {
	repo := newFakeRepository()
	oldPlay, newPlay := uuidv7.New(), uuidv7.New()
	repo.addRole(oldPlay, "old-role", "actor-old")
	repo.addRole(newPlay, "new-role", "actor-new")

	service := newTestService(repo, map[string]play.Play{
		oldPlay: {ID: oldPlay, Title: "Чайка"},
		newPlay: {ID: newPlay, Title: "Ревизор"},
	})

	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  oldPlay,
		Type:    event.TypeShow,
		Status:  event.StatusDraft,
		StartAt: time.Date(2026, 10, 2, 19, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Generic staff should survive the play swap
	_, err = service.Assign(context.Background(), created.ID, event.AssignInput{
		PersonID: "sound-guy",
		JobTitle: "Звук",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, event.UpdateInput{
		PlayID: pointer.To(newPlay),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ревизор", updated.Title)

	assignments, err := repo.ListAssignments(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)

	persons := map[string]bool{}
	for _, a := range assignments {
		persons[a.PersonID] = true
	}
	assert.True(t, persons["actor-new"])
	assert.True(t, persons["sound-guy"])
	assert.False(t, persons["actor-old"])
}

/*
TestService_AssignDuplicatePersonConflicts verifies double-casting is
surfaced as a conflict instead of silently merged.
*/
func TestService_AssignDuplicatePersonConflicts(t *testing.T) {
	repo := newFakeRepository()
	playID := uuidv7.New()
	service := newTestService(repo, map[string]play.Play{playID: {ID: playID, Title: "Гамлет"}})

	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  playID,
		Type:    event.TypeRehearsal,
		Status:  event.StatusDraft,
		StartAt: time.Date(2026, 10, 3, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	_, err = service.Assign(context.Background(), created.ID, event.AssignInput{PersonID: "p-1"})
	require.NoError(t, err)

	_, err = service.Assign(context.Background(), created.ID, event.AssignInput{PersonID: "p-1"})
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

/*
TestService_SetRoleAssignment_RejectsForeignRole verifies the role-scope
invariant: a role from another play cannot be bound to the event.
*/
func TestService_SetRoleAssignment_RejectsForeignRole(t *testing.T) {
	repo := newFakeRepository()
	playA, playB := uuidv7.New(), uuidv7.New()
	repo.addRole(playA, "role-a", "")
	repo.addRole(playB, "role-b", "")

	service := newTestService(repo, map[string]play.Play{
		playA: {ID: playA, Title: "Маскарад"},
		playB: {ID: playB, Title: "Женитьба"},
	})

	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  playA,
		Type:    event.TypeShow,
		Status:  event.StatusDraft,
		StartAt: time.Date(2026, 10, 4, 19, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	err = service.SetRoleAssignment(context.Background(), created.ID, "role-b", "someone")
	require.Error(t, err)
	assert.Equal(t, "UNPROCESSABLE", apperr.As(err).Code)

	// Same-play role binds fine and upserts
	require.NoError(t, service.SetRoleAssignment(context.Background(), created.ID, "role-a", "first"))
	require.NoError(t, service.SetRoleAssignment(context.Background(), created.ID, "role-a", "second"))

	assignments, err := repo.ListAssignments(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "second", assignments[0].PersonID)
}

/*
TestService_FillFromBaseCast_SkipsAssignedRoles verifies the fill only
touches roles without a performer.
*/
func TestService_FillFromBaseCast_SkipsAssignedRoles(t *testing.T) {
	repo := newFakeRepository()
	playID := uuidv7.New()
	repo.addRole(playID, "role-1", "default-1")
	repo.addRole(playID, "role-2", "default-2")

	service := newTestService(repo, map[string]play.Play{playID: {ID: playID, Title: "Бесприданница"}})

	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  playID,
		Type:    event.TypeShow,
		Status:  event.StatusDraft,
		StartAt: time.Date(2026, 10, 5, 19, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	// Replace one role, clear the other, then fill
	require.NoError(t, service.SetRoleAssignment(context.Background(), created.ID, "role-1", "substitute"))
	require.NoError(t, service.SetRoleAssignment(context.Background(), created.ID, "role-2", ""))

	filled, err := service.FillFromBaseCast(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, filled)

	assignments, err := repo.ListAssignments(context.Background(), created.ID)
	require.NoError(t, err)

	byRole := map[string]string{}
	for _, a := range assignments {
		byRole[a.RoleID] = a.PersonID
	}
	assert.Equal(t, "substitute", byRole["role-1"])
	assert.Equal(t, "default-2", byRole["role-2"])
}

/*
TestSortAssignments orders role rows by sort order and puts generic staff
last.
*/
func TestSortAssignments(t *testing.T) {
	assignments := []event.Assignment{
		{ID: "staff", PersonName: "Бригадир"},
		{ID: "r2", RoleID: "b", RoleTitle: "Офелия", RoleSortOrder: 2},
		{ID: "r1", RoleID: "a", RoleTitle: "Гамлет", RoleSortOrder: 1},
	}

	event.SortAssignments(assignments)

	assert.Equal(t, "r1", assignments[0].ID)
	assert.Equal(t, "r2", assignments[1].ID)
	assert.Equal(t, "staff", assignments[2].ID)
}

/*
TestService_UpdateRejectsInvertedInterval verifies end-before-start updates
are rejected.
*/
func TestService_UpdateRejectsInvertedInterval(t *testing.T) {
	repo := newFakeRepository()
	playID := uuidv7.New()
	service := newTestService(repo, map[string]play.Play{playID: {ID: playID, Title: "Вишневый сад"}})

	start := time.Date(2026, 10, 6, 19, 0, 0, 0, time.UTC)
	created, err := service.Create(context.Background(), event.CreateInput{
		PlayID:  playID,
		Type:    event.TypeShow,
		Status:  event.StatusDraft,
		StartAt: start,
	})
	require.NoError(t, err)

	badEnd := start.Add(-time.Hour)
	_, err = service.Update(context.Background(), created.ID, event.UpdateInput{
		EndAt:  &badEnd,
		EndSet: true,
	})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
