// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package person_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/core/person"
	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/pointer"
)

// fakeRepository is an in-memory [person.Repository] used to exercise the
// service without a database. DeleteCascade records the side effects the
// Postgres implementation performs in one transaction.
type fakeRepository struct {
	people           map[string]person.Person
	detachedAccounts []string
	assignmentsGone  []string
	bookingsGone     []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{people: map[string]person.Person{}}
}

func (f *fakeRepository) List(_ context.Context, filter person.ListFilter) ([]person.Person, int, error) {
	var out []person.Person
	for _, p := range f.people {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		out = append(out, p)
	}
	return out, len(out), nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*person.Person, error) {
	p, ok := f.people[id]
	if !ok {
		return nil, apperr.NotFound("Person")
	}
	return &p, nil
}

func (f *fakeRepository) Create(_ context.Context, p *person.Person) error {
	f.people[p.ID] = *p
	return nil
}

func (f *fakeRepository) Update(_ context.Context, p *person.Person) error {
	if _, ok := f.people[p.ID]; !ok {
		return apperr.NotFound("Person")
	}
	f.people[p.ID] = *p
	return nil
}

func (f *fakeRepository) DeleteCascade(_ context.Context, id string) error {
	if _, ok := f.people[id]; !ok {
		return apperr.NotFound("Person")
	}
	f.detachedAccounts = append(f.detachedAccounts, id)
	f.assignmentsGone = append(f.assignmentsGone, id)
	f.bookingsGone = append(f.bookingsGone, id)
	delete(f.people, id)
	return nil
}

// fakeBookingRepository is an in-memory [person.BookingRepository].
type fakeBookingRepository struct {
	bookings map[string]person.ExternalBooking
}

func newFakeBookingRepository() *fakeBookingRepository {
	return &fakeBookingRepository{bookings: map[string]person.ExternalBooking{}}
}

func (f *fakeBookingRepository) ListByPerson(_ context.Context, personID string) ([]person.ExternalBooking, error) {
	var out []person.ExternalBooking
	for _, b := range f.bookings {
		if b.PersonID == personID {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepository) Create(_ context.Context, b *person.ExternalBooking) error {
	f.bookings[b.ID] = *b
	return nil
}

func (f *fakeBookingRepository) Delete(_ context.Context, id string) error {
	if _, ok := f.bookings[id]; !ok {
		return apperr.NotFound("Booking")
	}
	delete(f.bookings, id)
	return nil
}

func newTestService(repo *fakeRepository, bookings *fakeBookingRepository) *person.Service {
	return person.NewService(repo, bookings, slog.Default())
}

/*
TestService_CreateAndGet verifies the create path populates identity fields
and the role label.
*/
func TestService_CreateAndGet(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeBookingRepository())

	created, err := service.Create(context.Background(), person.CreateInput{
		FullName: "Анна Каренина",
		Role:     person.JobRoleActor,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Актер", created.RoleLabel)

	got, err := service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.FullName, got.FullName)
}

/*
TestService_Update applies a partial change and leaves untouched fields alone.
*/
func TestService_Update(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeBookingRepository())

	created, err := service.Create(context.Background(), person.CreateInput{
		FullName: "Иван Петров",
		Role:     person.JobRoleSound,
		Phone:    "+7 900 000-00-00",
	})
	require.NoError(t, err)

	updated, err := service.Update(context.Background(), created.ID, person.UpdateInput{
		Role: pointer.To(person.JobRoleLight),
	})
	require.NoError(t, err)
	assert.Equal(t, person.JobRoleLight, updated.Role)
	assert.Equal(t, "Художник по свету", updated.RoleLabel)
	assert.Equal(t, "+7 900 000-00-00", updated.Phone)
}

/*
TestService_DeleteCascade verifies that deleting a person removes dependent
records and detaches the account link, and that a second delete is a 404.
*/
func TestService_DeleteCascade(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeBookingRepository())

	created, err := service.Create(context.Background(), person.CreateInput{
		FullName: "Мария Иванова",
		Role:     person.JobRoleASM,
	})
	require.NoError(t, err)

	require.NoError(t, service.Delete(context.Background(), created.ID))

	assert.Contains(t, repo.detachedAccounts, created.ID)
	assert.Contains(t, repo.assignmentsGone, created.ID)
	assert.Contains(t, repo.bookingsGone, created.ID)
	assert.Empty(t, repo.people)

	err = service.Delete(context.Background(), created.ID)
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_CreateBooking rejects bookings for unknown people and records
valid ones with their open end.
*/
func TestService_CreateBooking(t *testing.T) {
	repo := newFakeRepository()
	bookings := newFakeBookingRepository()
	service := newTestService(repo, bookings)

	start := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)

	_, err := service.CreateBooking(context.Background(), "missing", person.BookingInput{
		Title:   "Съемки",
		StartAt: start,
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	created, err := service.Create(context.Background(), person.CreateInput{
		FullName: "Олег Смирнов",
		Role:     person.JobRoleActor,
	})
	require.NoError(t, err)

	booking, err := service.CreateBooking(context.Background(), created.ID, person.BookingInput{
		Title:   "Съемки",
		StartAt: start,
	})
	require.NoError(t, err)
	assert.Nil(t, booking.EndAt)

	listed, err := service.ListBookings(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "Съемки", listed[0].Title)
}

/*
TestJobRole_ClosedSet sanity-checks the enum helpers.
*/
func TestJobRole_ClosedSet(t *testing.T) {
	assert.True(t, person.JobRoleActor.IsValid())
	assert.False(t, person.JobRole("DANCER").IsValid())
	assert.Len(t, person.JobRoleValues(), len(person.JobRoles))
	assert.Equal(t, "Другое", person.JobRoleOther.Label())
}

/*
TestService_ListFiltersByRole verifies the role filter narrows the roster.
*/
func TestService_ListFiltersByRole(t *testing.T) {
	repo := newFakeRepository()
	service := newTestService(repo, newFakeBookingRepository())

	for _, in := range []person.CreateInput{
		{FullName: "А", Role: person.JobRoleActor},
		{FullName: "Б", Role: person.JobRoleActor},
		{FullName: "В", Role: person.JobRoleAdmin},
	} {
		_, err := service.Create(context.Background(), in)
		require.NoError(t, err)
	}

	people, meta, err := service.List(context.Background(), person.ListFilter{
		Role: person.JobRoleActor,
		Page: pagination.Params{Page: 1, Limit: 20},
	})
	require.NoError(t, err)
	assert.Len(t, people, 2)
	assert.Equal(t, 2, meta.Total)
}
