// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package event

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammateam/callboard/internal/core/play"
	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// PlayDirectory is the slice of the play domain the calendar needs: resolving
// a play to mirror its title onto events.
type PlayDirectory interface {
	FindByID(context context.Context, id string) (*play.Play, error)
}

// # Service Layer

// Service orchestrates business logic for the production calendar.
type Service struct {
	repository Repository
	plays      PlayDirectory
	logger     *slog.Logger
}

// NewService constructs a new event [Service] with its dependencies.
func NewService(repository Repository, plays PlayDirectory, logger *slog.Logger) *Service {
	return &Service{
		repository: repository,
		plays:      plays,
		logger:     logger,
	}
}

// Detail is an event hydrated with its full cast and staff list, ordered
// for display.
type Detail struct {
	Event
	Assignments []Assignment `json:"assignments"`
}

// # Calendar Management

/*
List returns a page of calendar entries matching the filter.

Parameters:
  - context: context.Context
  - filter: ListFilter (date range, play, status, pagination)

Returns:
  - []Event: Matching page ordered by start time
  - pagination.Meta: Page metadata
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context, filter ListFilter) ([]Event, pagination.Meta, error) {
	events, total, err := service.repository.List(context, filter)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("event_service_list_failed: %w", err)
	}

	meta := pagination.NewMeta(filter.Page.Page, filter.Page.Limit, total)
	return events, meta, nil
}

/*
Get retrieves an event with its assignments sorted for display: role-based
rows by role order first, generic staff after.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Detail: Event plus ordered assignments
  - error: Not found or retrieval failures
*/
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	event, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("event_service_get_failed: %w", err)
	}

	assignments, err := service.repository.ListAssignments(context, id)
	if err != nil {
		return nil, fmt.Errorf("event_service_get_assignments_failed: %w", err)
	}

	SortAssignments(assignments)
	if assignments == nil {
		assignments = []Assignment{}
	}

	return &Detail{Event: *event, Assignments: assignments}, nil
}

// CreateInput defines the fields accepted when scheduling an event.
type CreateInput struct {
	PlayID  string
	VenueID string
	Type    Type
	Status  Status
	StartAt time.Time
	EndAt   *time.Time
	Notes   string
}

/*
Create schedules a new event.

Description: The title is forced to the play's title, never taken from the
caller. The play's base cast is copied into role-based assignments in the
same transaction, so a fresh show starts fully cast.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Event: The persisted entity
  - error: Not found (play), constraint or transaction failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Event, error) {
	production, err := service.plays.FindByID(context, input.PlayID)
	if err != nil {
		return nil, fmt.Errorf("event_service_create_play_lookup_failed: %w", err)
	}

	now := time.Now()
	event := &Event{
		ID:        uuidv7.New(),
		PlayID:    production.ID,
		PlayTitle: production.Title,
		VenueID:   input.VenueID,
		Title:     production.Title,
		Type:      input.Type,
		Status:    input.Status,
		StartAt:   input.StartAt,
		EndAt:     input.EndAt,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.CreateWithBaseCast(context, event); err != nil {
		return nil, fmt.Errorf("event_service_create_failed: %w", err)
	}

	service.logger.Info("event_created",
		slog.String("event_id", event.ID),
		slog.String("play_id", event.PlayID),
		slog.Time("start_at", event.StartAt),
	)

	return event, nil
}

// UpdateInput defines the mutable subset of event fields.
type UpdateInput struct {
	PlayID  *string
	VenueID *string
	Type    *Type
	Status  *Status
	StartAt *time.Time
	EndAt   *time.Time
	EndSet  bool // Distinguishes "clear the end" from "leave it alone"
	Notes   *string
}

/*
Update applies a partial set of changes to an event.

Description: The title is re-synced to the (possibly new) play. When the play
changes, role-based assignments are rebuilt from the new play's base cast in
one transaction; generic staff assignments survive the swap.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Event: The updated entity
  - error: Not found, constraint or transaction failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Event, error) {
	event, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("event_service_update_lookup_failed: %w", err)
	}

	playChanged := false
	if input.PlayID != nil && *input.PlayID != event.PlayID {
		production, err := service.plays.FindByID(context, *input.PlayID)
		if err != nil {
			return nil, fmt.Errorf("event_service_update_play_lookup_failed: %w", err)
		}
		event.PlayID = production.ID
		event.PlayTitle = production.Title
		event.Title = production.Title
		playChanged = true
	}

	// Apply delta updates
	if input.VenueID != nil {
		event.VenueID = *input.VenueID
	}
	if input.Type != nil {
		event.Type = *input.Type
	}
	if input.Status != nil {
		event.Status = *input.Status
	}
	if input.StartAt != nil {
		event.StartAt = *input.StartAt
	}
	if input.EndSet {
		event.EndAt = input.EndAt
	}
	if input.Notes != nil {
		event.Notes = *input.Notes
	}

	if event.EndAt != nil && !event.EndAt.After(event.StartAt) {
		return nil, apperr.ValidationError("end_at must be after start_at")
	}

	event.UpdatedAt = time.Now()
	if err := service.repository.Update(context, event, playChanged); err != nil {
		return nil, fmt.Errorf("event_service_update_failed: %w", err)
	}

	service.logger.Info("event_updated",
		slog.String("event_id", event.ID),
		slog.Bool("play_changed", playChanged),
	)

	return event, nil
}

/*
Delete removes an event and its assignments.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("event_service_delete_failed: %w", err)
	}

	service.logger.Warn("event_deleted", slog.String("event_id", id))

	return nil
}

// # Assignment Management

// AssignInput defines the fields accepted when adding generic staff to an
// event.
type AssignInput struct {
	PersonID string
	JobTitle string
	CallTime *time.Time
	Notes    string
}

/*
Assign adds a generic staff assignment to an event.

Description: Assigning a person who already has any assignment on the event
is a conflict the caller must resolve, never a silent merge.

Parameters:
  - context: context.Context
  - eventID: string
  - input: AssignInput

Returns:
  - *Assignment: The persisted entity
  - error: Not found, apperr.Conflict or storage failures
*/
func (service *Service) Assign(context context.Context, eventID string, input AssignInput) (*Assignment, error) {
	if _, err := service.repository.FindByID(context, eventID); err != nil {
		return nil, fmt.Errorf("event_service_assign_lookup_failed: %w", err)
	}

	now := time.Now()
	assignment := &Assignment{
		ID:        uuidv7.New(),
		EventID:   eventID,
		PersonID:  input.PersonID,
		JobTitle:  input.JobTitle,
		CallTime:  input.CallTime,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.repository.CreateAssignment(context, assignment); err != nil {
		return nil, fmt.Errorf("event_service_assign_failed: %w", err)
	}

	service.logger.Info("event_assignment_created",
		slog.String("event_id", eventID),
		slog.String("person_id", input.PersonID),
	)

	return assignment, nil
}

/*
SetRoleAssignment binds a person to a play role on an event, replacing any
previous performer of that role, or clears the binding when personID is
empty.

Description: The role must belong to the event's play; binding a role from a
different play is rejected as unprocessable.

Parameters:
  - context: context.Context
  - eventID: string
  - roleID: string
  - personID: string (Empty clears the binding)

Returns:
  - error: Not found, apperr.Unprocessable or storage failures
*/
func (service *Service) SetRoleAssignment(context context.Context, eventID, roleID, personID string) error {
	event, err := service.repository.FindByID(context, eventID)
	if err != nil {
		return fmt.Errorf("event_service_set_role_lookup_failed: %w", err)
	}

	rolePlayID, err := service.repository.RolePlayID(context, roleID)
	if err != nil {
		return fmt.Errorf("event_service_set_role_role_lookup_failed: %w", err)
	}

	// Role-scope invariant: the role must belong to the event's play
	if rolePlayID != event.PlayID {
		return apperr.Unprocessable("Role does not belong to the event's play")
	}

	if err := service.repository.SetRoleAssignment(context, eventID, roleID, personID); err != nil {
		return fmt.Errorf("event_service_set_role_failed: %w", err)
	}

	service.logger.Info("event_role_assignment_updated",
		slog.String("event_id", eventID),
		slog.String("role_id", roleID),
		slog.String("person_id", personID),
	)

	return nil
}

/*
FillFromBaseCast completes an event's cast from the play's base cast.

Description: Only roles without an assignment receive their default
performer; existing assignments stay exactly as they are.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - int: Number of assignments created
  - error: Not found or execution failures
*/
func (service *Service) FillFromBaseCast(context context.Context, eventID string) (int, error) {
	if _, err := service.repository.FindByID(context, eventID); err != nil {
		return 0, fmt.Errorf("event_service_fill_cast_lookup_failed: %w", err)
	}

	created, err := service.repository.FillFromBaseCast(context, eventID)
	if err != nil {
		return 0, fmt.Errorf("event_service_fill_cast_failed: %w", err)
	}

	service.logger.Info("event_cast_filled",
		slog.String("event_id", eventID),
		slog.Int("created", created),
	)

	return created, nil
}

/*
DeleteAssignment removes a single assignment from an event.

Parameters:
  - context: context.Context
  - assignmentID: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteAssignment(context context.Context, assignmentID string) error {
	if err := service.repository.DeleteAssignment(context, assignmentID); err != nil {
		return fmt.Errorf("event_service_delete_assignment_failed: %w", err)
	}

	service.logger.Info("event_assignment_deleted", slog.String("assignment_id", assignmentID))

	return nil
}
