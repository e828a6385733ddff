// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package venue

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammateam/callboard/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for venue management.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new venue [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

/*
List returns every registered venue.

Parameters:
  - context: context.Context

Returns:
  - []Venue: Venues ordered by title
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context) ([]Venue, error) {
	venues, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("venue_service_list_failed: %w", err)
	}
	return venues, nil
}

/*
Get retrieves a single venue by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Venue: Hydrated entity
  - error: Not found or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Venue, error) {
	venue, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("venue_service_get_failed: %w", err)
	}
	return venue, nil
}

// CreateInput defines the fields accepted when registering a venue.
type CreateInput struct {
	Title   string
	Address string
	Notes   string
}

/*
Create registers a new performance venue.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Venue: The persisted entity
  - error: Constraint or storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Venue, error) {
	now := time.Now()
	venue := &Venue{
		ID:        uuidv7.New(),
		Title:     input.Title,
		Address:   input.Address,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.Create(context, venue); err != nil {
		return nil, fmt.Errorf("venue_service_create_failed: %w", err)
	}

	service.logger.Info("venue_created", slog.String("venue_id", venue.ID))

	return venue, nil
}

// UpdateInput defines the mutable subset of venue fields.
type UpdateInput struct {
	Title   *string
	Address *string
	Notes   *string
}

/*
Update applies a partial set of changes to an existing venue.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Venue: The updated entity
  - error: Not found, constraint or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Venue, error) {
	venue, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("venue_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Title != nil {
		venue.Title = *input.Title
	}
	if input.Address != nil {
		venue.Address = *input.Address
	}
	if input.Notes != nil {
		venue.Notes = *input.Notes
	}

	venue.UpdatedAt = time.Now()
	if err := service.repository.Update(context, venue); err != nil {
		return nil, fmt.Errorf("venue_service_update_failed: %w", err)
	}

	service.logger.Info("venue_updated", slog.String("venue_id", venue.ID))

	return venue, nil
}

/*
Delete removes a venue permanently. Events pointing at the venue keep their
row but lose the reference (the schema nulls the foreign key).

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Execution failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("venue_service_delete_failed: %w", err)
	}

	service.logger.Warn("venue_deleted", slog.String("venue_id", id))

	return nil
}
