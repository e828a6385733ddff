// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package play

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammateam/callboard/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates business logic for the repertoire, its roles, and
// the base cast.
type Service struct {
	repository     Repository
	roleRepository RoleRepository
	logger         *slog.Logger
}

// NewService constructs a new play [Service] with its repository dependencies.
func NewService(repository Repository, roleRepository RoleRepository, logger *slog.Logger) *Service {
	return &Service{
		repository:     repository,
		roleRepository: roleRepository,
		logger:         logger,
	}
}

// # Play Management

/*
List returns the whole repertoire ordered by title.

Parameters:
  - context: context.Context

Returns:
  - []Play: All plays
  - error: Retrieval failures
*/
func (service *Service) List(context context.Context) ([]Play, error) {
	plays, err := service.repository.List(context)
	if err != nil {
		return nil, fmt.Errorf("play_service_list_failed: %w", err)
	}
	return plays, nil
}

/*
Get retrieves a single play by its ID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Play: Hydrated entity
  - error: Not found or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Play, error) {
	play, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("play_service_get_failed: %w", err)
	}
	return play, nil
}

// CreateInput defines the fields accepted when adding a play.
type CreateInput struct {
	Title       string
	Description string
}

/*
Create adds a new production to the repertoire.

Parameters:
  - context: context.Context
  - input: CreateInput

Returns:
  - *Play: The persisted entity
  - error: apperr.Conflict on a duplicate title, storage failures
*/
func (service *Service) Create(context context.Context, input CreateInput) (*Play, error) {
	now := time.Now()
	play := &Play{
		ID:          uuidv7.New(),
		Title:       input.Title,
		Description: input.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := service.repository.Create(context, play); err != nil {
		return nil, fmt.Errorf("play_service_create_failed: %w", err)
	}

	service.logger.Info("play_created", slog.String("play_id", play.ID))

	return play, nil
}

/*
FindOrCreateByTitle resolves a play by exact title, creating it when absent.
Used by the finance import to attach report lines to the repertoire.

Parameters:
  - context: context.Context
  - title: string

Returns:
  - *Play: The existing or newly created play
  - bool: True when the play was created
  - error: Storage failures
*/
func (service *Service) FindOrCreateByTitle(context context.Context, title string) (*Play, bool, error) {
	play, created, err := service.repository.FindOrCreateByTitle(context, title)
	if err != nil {
		return nil, false, fmt.Errorf("play_service_find_or_create_failed: %w", err)
	}

	if created {
		service.logger.Info("play_autocreated",
			slog.String("play_id", play.ID),
			slog.String("title", play.Title),
		)
	}

	return play, created, nil
}

// UpdateInput defines the mutable subset of play fields.
type UpdateInput struct {
	Title       *string
	Description *string
}

/*
Update applies a partial set of changes to a play.

Parameters:
  - context: context.Context
  - id: string
  - input: UpdateInput

Returns:
  - *Play: The updated entity
  - error: Not found, conflict or storage failures
*/
func (service *Service) Update(context context.Context, id string, input UpdateInput) (*Play, error) {
	play, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("play_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Title != nil {
		play.Title = *input.Title
	}
	if input.Description != nil {
		play.Description = *input.Description
	}

	play.UpdatedAt = time.Now()
	if err := service.repository.Update(context, play); err != nil {
		return nil, fmt.Errorf("play_service_update_failed: %w", err)
	}

	service.logger.Info("play_updated", slog.String("play_id", play.ID))

	return play, nil
}

/*
Delete removes a play from the repertoire. Plays that already have scheduled
events are protected by the schema and surface as apperr.Unprocessable.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Not found, unprocessable or execution failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("play_service_delete_failed: %w", err)
	}

	service.logger.Warn("play_deleted", slog.String("play_id", id))

	return nil
}

// # Role Management

/*
ListRoles returns all roles of a play ordered by sort order with Russian
collation as the title tie-break, including base-cast bindings.

Parameters:
  - context: context.Context
  - playID: string

Returns:
  - []Role: Ordered roles
  - error: Not found or retrieval failures
*/
func (service *Service) ListRoles(context context.Context, playID string) ([]Role, error) {
	if _, err := service.repository.FindByID(context, playID); err != nil {
		return nil, fmt.Errorf("play_service_list_roles_lookup_failed: %w", err)
	}

	roles, err := service.roleRepository.ListByPlay(context, playID)
	if err != nil {
		return nil, fmt.Errorf("play_service_list_roles_failed: %w", err)
	}

	SortRoles(roles)
	return roles, nil
}

// RoleInput defines the fields accepted when adding or renaming a role.
type RoleInput struct {
	Title string
	Notes string
}

/*
CreateRole adds a new role to a play at the end of the ordering.

Description: The new role receives max(sortorder)+1 within its play. Existing
orders are never renumbered, even after deletions, so gaps are expected.

Parameters:
  - context: context.Context
  - playID: string
  - input: RoleInput

Returns:
  - *Role: The persisted entity
  - error: Not found, constraint or storage failures
*/
func (service *Service) CreateRole(context context.Context, playID string, input RoleInput) (*Role, error) {
	if _, err := service.repository.FindByID(context, playID); err != nil {
		return nil, fmt.Errorf("play_service_create_role_lookup_failed: %w", err)
	}

	sortOrder, err := service.roleRepository.NextSortOrder(context, playID)
	if err != nil {
		return nil, fmt.Errorf("play_service_create_role_order_failed: %w", err)
	}

	now := time.Now()
	role := &Role{
		ID:        uuidv7.New(),
		PlayID:    playID,
		Title:     input.Title,
		SortOrder: sortOrder,
		Notes:     input.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := service.roleRepository.Create(context, role); err != nil {
		return nil, fmt.Errorf("play_service_create_role_failed: %w", err)
	}

	service.logger.Info("play_role_created",
		slog.String("role_id", role.ID),
		slog.String("play_id", playID),
	)

	return role, nil
}

/*
UpdateRole renames a role or changes its notes. The sort order never moves.

Parameters:
  - context: context.Context
  - roleID: string
  - input: RoleInput

Returns:
  - *Role: The updated entity
  - error: Not found or storage failures
*/
func (service *Service) UpdateRole(context context.Context, roleID string, input RoleInput) (*Role, error) {
	role, err := service.roleRepository.FindByID(context, roleID)
	if err != nil {
		return nil, fmt.Errorf("play_service_update_role_lookup_failed: %w", err)
	}

	role.Title = input.Title
	role.Notes = input.Notes
	role.UpdatedAt = time.Now()

	if err := service.roleRepository.Update(context, role); err != nil {
		return nil, fmt.Errorf("play_service_update_role_failed: %w", err)
	}

	service.logger.Info("play_role_updated", slog.String("role_id", role.ID))

	return role, nil
}

/*
DeleteRole removes a role, its base-cast binding, and any event assignments
made through it.

Parameters:
  - context: context.Context
  - roleID: string

Returns:
  - error: Not found or execution failures
*/
func (service *Service) DeleteRole(context context.Context, roleID string) error {
	if err := service.roleRepository.Delete(context, roleID); err != nil {
		return fmt.Errorf("play_service_delete_role_failed: %w", err)
	}

	service.logger.Info("play_role_deleted", slog.String("role_id", roleID))

	return nil
}

/*
SetBaseCast binds a person to a role as its default performer, or clears
the binding when personID is empty. At most one person per role.

Parameters:
  - context: context.Context
  - roleID: string
  - personID: string (Empty clears the binding)

Returns:
  - error: Not found, constraint or storage failures
*/
func (service *Service) SetBaseCast(context context.Context, roleID, personID string) error {
	if _, err := service.roleRepository.FindByID(context, roleID); err != nil {
		return fmt.Errorf("play_service_set_base_cast_lookup_failed: %w", err)
	}

	if err := service.roleRepository.SetBaseCast(context, roleID, personID); err != nil {
		return fmt.Errorf("play_service_set_base_cast_failed: %w", err)
	}

	service.logger.Info("play_base_cast_updated",
		slog.String("role_id", roleID),
		slog.String("person_id", personID),
	)

	return nil
}
