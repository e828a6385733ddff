// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package person

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the company roster and the
// external engagements of its members.
type Service struct {
	repository        Repository
	bookingRepository BookingRepository
	logger            *slog.Logger
}

// NewService constructs a new person [Service] with its repository dependencies.
func NewService(repository Repository, bookingRepository BookingRepository, logger *slog.Logger) *Service {
	return &Service{
		repository:        repository,
		bookingRepository: bookingRepository,
		logger:            logger,
	}
}

// # Roster Management

/*
List returns a page of roster entries matching the filter.

Parameters:
  - context: context.Context
  - filter: ListFilter (role, name search, pagination)

Returns:
  - []Person: Matching page
  - pagination.Meta: Page metadata for the envelope
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter ListFilter) ([]Person, pagination.Meta, error) {
	people, total, err := service.repository.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("person_service_list_failed: %w", err)
	}

	meta := pagination.NewMeta(filter.Page.Page, filter.Page.Limit, total)
	return people, meta, nil
}

/*
Get retrieves a single person by their ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Person: Hydrated entity
  - error: Not found or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Person, error) {
	person, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("person_service_get_failed: %w", err)
	}
	return person, nil
}

// CreateInput defines the fields accepted when adding a person to the roster.
type CreateInput struct {
	FullName string
	Role     JobRole
	Phone    string
	Email    string
	Notes    string
}

/*
Create adds a new person to the roster.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Person: The persisted entity
  - error: Constraint or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Person, error) {
	now := time.Now()
	person := &Person{
		ID:        uuidv7.New(),
		FullName:  input.FullName,
		Role:      input.Role,
		RoleLabel: input.Role.Label(),
		Phone:     input.Phone,
		Email:     input.Email,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(context, person); err != nil {
		return nil, fmt.Errorf("person_service_create_failed: %w", err)
	}

	service.logger.Info("person_created",
		slog.String("person_id", person.ID),
		slog.String("role", string(person.Role)),
	)

	return person, nil
}

// UpdateInput defines the mutable subset of person fields.
type UpdateInput struct {
	FullName *string
	Role     *JobRole
	Phone    *string
	Email    *string
	Notes    *string
}

/*
Update applies a partial set of changes to a roster entry.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Person: The updated entity
  - error: Not found, constraint or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Person, error) {
	person, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("person_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.FullName != nil {
		person.FullName = *input.FullName
	}
	if input.Role != nil {
		person.Role = *input.Role
		person.RoleLabel = input.Role.Label()
	}
	if input.Phone != nil {
		person.Phone = *input.Phone
	}
	if input.Email != nil {
		person.Email = *input.Email
	}
	if input.Notes != nil {
		person.Notes = *input.Notes
	}

	person.UpdatedAt = time.Now()
	if err := service.repository.Update(context, person); err != nil {
		return nil, fmt.Errorf("person_service_update_failed: %w", err)
	}

	service.logger.Info("person_updated", slog.String("person_id", person.ID))

	return person, nil
}

/*
Delete removes a person and all their references in one transaction.

Description: The linked application account (if any) is detached rather than
deleted, event assignments and external bookings are removed, then the person
row itself. Events the person was cast in keep their other assignments.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Not found or transaction failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.DeleteCascade(context, id); err != nil {
		return fmt.Errorf("person_service_delete_failed: %w", err)
	}

	service.logger.Warn("person_deleted", slog.String("person_id", id))

	return nil
}

// # External Bookings

/*
ListBookings returns every external booking of one person, newest first.

Parameters:
  - context: context.Context
  - personID: string

Returns:
  - []ExternalBooking: Engagements outside the company
  - error: Not found or retrieval failures
*/
func (service *Service) ListBookings(context context.Context, personID string) ([]ExternalBooking, error) {
	// Surface a proper 404 for unknown people instead of an empty list
	if _, err := service.repository.FindByID(context, personID); err != nil {
		return nil, fmt.Errorf("person_service_list_bookings_lookup_failed: %w", err)
	}

	bookings, err := service.bookingRepository.ListByPerson(context, personID)
	if err != nil {
		return nil, fmt.Errorf("person_service_list_bookings_failed: %w", err)
	}
	return bookings, nil
}

// BookingInput defines the fields accepted when recording an external booking.
type BookingInput struct {
	Title   string
	StartAt time.Time
	EndAt   *time.Time
	Notes   string
}

/*
CreateBooking records a new external engagement for a person.

Parameters:
  - context: context.Context
  - personID: string
  - input: BookingInput

Returns:
  - *ExternalBooking: The persisted entity
  - error: Not found, constraint or storage failures
*/
func (service *Service) CreateBooking(context context.Context, personID string, input BookingInput) (*ExternalBooking, error) {
	if _, err := service.repository.FindByID(context, personID); err != nil {
		return nil, fmt.Errorf("person_service_create_booking_lookup_failed: %w", err)
	}

	now := time.Now()
	booking := &ExternalBooking{
		ID:        uuidv7.New(),
		PersonID:  personID,
		Title:     input.Title,
		StartAt:   input.StartAt,
		EndAt:     input.EndAt,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.bookingRepository.Create(context, booking); err != nil {
		return nil, fmt.Errorf("person_service_create_booking_failed: %w", err)
	}

	service.logger.Info("external_booking_created",
		slog.String("booking_id", booking.ID),
		slog.String("person_id", personID),
	)

	return booking, nil
}

/*
DeleteBooking removes a single external booking.

Parameters:
  - context: context.Context
  - bookingID: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteBooking(context context.Context, bookingID string) error {
	if err := service.bookingRepository.Delete(context, bookingID); err != nil {
		return fmt.Errorf("person_service_delete_booking_failed: %w", err)
	}

	service.logger.Info("external_booking_deleted", slog.String("booking_id", bookingID))

	return nil
}
