// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package play

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/internal/platform/validate"
)

// Handler implements the HTTP layer for repertoire management.
type Handler struct {
	playService *Service
}

// NewHandler constructs a new play [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{playService: service}
}

// Routes returns a [chi.Router] configured with the play domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Repertoire
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	// Roles and base cast
	router.Get("/{id}/roles", handler.listRoles)
	router.Post("/{id}/roles", handler.createRole)
	router.Patch("/roles/{roleID}", handler.updateRole)
	router.Delete("/roles/{roleID}", handler.deleteRole)
	router.Put("/roles/{roleID}/cast", handler.setBaseCast)

	return router
}

// # Repertoire Endpoints

/*
GET /api/v1/plays.

Response:
  - 200: []Play: The repertoire ordered by title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	plays, err := handler.playService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, plays)
}

/*
GET /api/v1/plays/{id}.

Response:
  - 200: Play: Hydrated entity
  - 404: ErrNotFound: Unknown play ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	play, err := handler.playService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, play)
}

// createPlayRequest defines the expected JSON payload for play creation.
type createPlayRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

/*
POST /api/v1/plays.

Request:
  - body: createPlayRequest

Response:
  - 201: Play: The persisted entity
  - 400: Validation: Missing title
  - 409: ErrConflict: A play with the same title already exists
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createPlayRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 300)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	play, err := handler.playService.Create(request.Context(), CreateInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, play)
}

// updatePlayRequest defines the expected JSON payload for partial updates.
type updatePlayRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

/*
PATCH /api/v1/plays/{id}.

Request:
  - body: updatePlayRequest (Partial JSON)

Response:
  - 200: Play: The updated entity
  - 400: Validation: Empty title
  - 404: ErrNotFound: Unknown play ID
  - 409: ErrConflict: Title collides with another play
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updatePlayRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 300)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	play, err := handler.playService.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:       input.Title,
		Description: input.Description,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, play)
}

/*
DELETE /api/v1/plays/{id}.

Response:
  - 204: No Content: Play removed
  - 404: ErrNotFound: Unknown play ID
  - 422: ErrUnprocessable: The play still has scheduled events
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.playService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Role Endpoints

/*
GET /api/v1/plays/{id}/roles.

Response:
  - 200: []Role: Roles with base-cast bindings, ordered for display
  - 404: ErrNotFound: Unknown play ID
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	roles, err := handler.playService.ListRoles(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, roles)
}

// roleRequest defines the expected JSON payload for creating or renaming a role.
type roleRequest struct {
	Title string `json:"title"`
	Notes string `json:"notes"`
}

/*
POST /api/v1/plays/{id}/roles.

Request:
  - body: roleRequest

Response:
  - 201: Role: The persisted role (appended at the end of the ordering)
  - 400: Validation: Missing title
  - 404: ErrNotFound: Unknown play ID
*/
func (handler *Handler) createRole(writer http.ResponseWriter, request *http.Request) {
	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.playService.CreateRole(request.Context(), requestutil.ID(request, "id"), RoleInput{
		Title: input.Title,
		Notes: input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, role)
}

/*
PATCH /api/v1/plays/roles/{roleID}.

Request:
  - body: roleRequest

Response:
  - 200: Role: The updated role
  - 400: Validation: Missing title
  - 404: ErrNotFound: Unknown role ID
*/
func (handler *Handler) updateRole(writer http.ResponseWriter, request *http.Request) {
	var input roleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	role, err := handler.playService.UpdateRole(request.Context(), requestutil.ID(request, "roleID"), RoleInput{
		Title: input.Title,
		Notes: input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, role)
}

/*
DELETE /api/v1/plays/roles/{roleID}.

Response:
  - 204: No Content: Role removed
  - 404: ErrNotFound: Unknown role ID
*/
func (handler *Handler) deleteRole(writer http.ResponseWriter, request *http.Request) {
	if err := handler.playService.DeleteRole(request.Context(), requestutil.ID(request, "roleID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// setBaseCastRequest defines the expected JSON payload for a cast binding.
type setBaseCastRequest struct {
	PersonID string `json:"person_id"`
}

/*
PUT /api/v1/plays/roles/{roleID}/cast.

Description: Binds a default performer to the role, or clears the binding
when person_id is empty.

Request:
  - body: setBaseCastRequest

Response:
  - 204: No Content: Binding updated
  - 404: ErrNotFound: Unknown role ID
  - 422: ErrUnprocessable: Unknown person ID
*/
func (handler *Handler) setBaseCast(writer http.ResponseWriter, request *http.Request) {
	var input setBaseCastRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.playService.SetBaseCast(request.Context(), requestutil.ID(request, "roleID"), input.PersonID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
