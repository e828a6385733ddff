// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package event

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/internal/platform/validate"
	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/query"
)

// Handler implements the HTTP layer for calendar management.
type Handler struct {
	eventService *Service
}

// NewHandler constructs a new event [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{eventService: service}
}

// Routes returns a [chi.Router] configured with the event domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Calendar
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	// Assignments
	router.Post("/{id}/assignments", handler.assign)
	router.Put("/{id}/roles/{roleID}/assignment", handler.setRoleAssignment)
	router.Post("/{id}/assignments/fill", handler.fillFromBaseCast)
	router.Delete("/assignments/{assignmentID}", handler.deleteAssignment)

	return router
}

// # Calendar Endpoints

/*
GET /api/v1/events.

Description: Lists the calendar with optional date range, play, and status
filters.

Request:
  - from, to: string (Query, ISO dates)
  - play_id: string (Query)
  - status: string (Query, comma-separated status codes)
  - page, limit: int (Query, pagination)

Response:
  - 200: []Event + pagination metadata
  - 400: Validation: Unknown status code
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	statusCodes := query.StringSlice(requestutil.Param(request, "status"))

	v := &validate.Validator{}
	statuses := make([]Status, 0, len(statusCodes))
	for _, code := range statusCodes {
		v.OneOf("status", code, StatusValues()...)
		statuses = append(statuses, Status(code))
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	events, meta, err := handler.eventService.List(request.Context(), ListFilter{
		From:     requestutil.DateParam(request, "from"),
		To:       requestutil.DateParam(request, "to"),
		PlayID:   requestutil.Param(request, "play_id"),
		Statuses: statuses,
		Page:     pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, events, meta)
}

/*
GET /api/v1/events/{id}.

Response:
  - 200: Detail: Event with assignments ordered for display
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.eventService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

// createEventRequest defines the expected JSON payload for scheduling.
type createEventRequest struct {
	PlayID  string     `json:"play_id"`
	VenueID string     `json:"venue_id"`
	Type    string     `json:"type"`
	Status  string     `json:"status"`
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Notes   string     `json:"notes"`
}

/*
POST /api/v1/events.

Description: Schedules a new event. The title mirrors the play title and the
play's base cast is copied into the event.

Request:
  - body: createEventRequest (type defaults to SHOW, status to DRAFT)

Response:
  - 201: Event: The persisted entity
  - 400: Validation: Missing play/start, bad enum, end not after start
  - 404: ErrNotFound: Unknown play ID
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createEventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if input.Type == "" {
		input.Type = string(TypeShow)
	}
	if input.Status == "" {
		input.Status = string(StatusDraft)
	}

	v := &validate.Validator{}
	v.Required("play_id", input.PlayID).
		UUID("play_id", input.PlayID).
		RequiredTime("start_at", input.StartAt).
		EndAfterStart("end_at", input.StartAt, input.EndAt).
		OneOf("type", input.Type, TypeValues()...).
		OneOf("status", input.Status, StatusValues()...)
	if input.VenueID != "" {
		v.UUID("venue_id", input.VenueID)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.eventService.Create(request.Context(), CreateInput{
		PlayID:  input.PlayID,
		VenueID: input.VenueID,
		Type:    Type(input.Type),
		Status:  Status(input.Status),
		StartAt: input.StartAt,
		EndAt:   input.EndAt,
		Notes:   input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, event)
}

// updateEventRequest defines the expected JSON payload for partial updates.
// EndAt uses raw JSON so an explicit null clears the end time while an
// absent key leaves it untouched.
type updateEventRequest struct {
	PlayID  *string         `json:"play_id"`
	VenueID *string         `json:"venue_id"`
	Type    *string         `json:"type"`
	Status  *string         `json:"status"`
	StartAt *time.Time      `json:"start_at"`
	EndAt   json.RawMessage `json:"end_at"`
	Notes   *string         `json:"notes"`
}

/*
PATCH /api/v1/events/{id}.

Description: Applies partial changes. Changing the play re-syncs the title
and rebuilds role assignments from the new play's base cast.

Request:
  - body: updateEventRequest (Partial JSON; "end_at": null clears the end)

Response:
  - 200: Event: The updated entity
  - 400: Validation: Bad enum, end not after start
  - 404: ErrNotFound: Unknown event or play ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateEventRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.PlayID != nil {
		v.UUID("play_id", *input.PlayID)
	}
	if input.Type != nil {
		v.OneOf("type", *input.Type, TypeValues()...)
	}
	if input.Status != nil {
		v.OneOf("status", *input.Status, StatusValues()...)
	}

	updateInput := UpdateInput{
		PlayID:  input.PlayID,
		VenueID: input.VenueID,
		StartAt: input.StartAt,
		Notes:   input.Notes,
	}
	if input.Type != nil {
		eventType := Type(*input.Type)
		updateInput.Type = &eventType
	}
	if input.Status != nil {
		status := Status(*input.Status)
		updateInput.Status = &status
	}
	if len(input.EndAt) > 0 {
		updateInput.EndSet = true
		if string(input.EndAt) != "null" {
			var endAt time.Time
			if err := json.Unmarshal(input.EndAt, &endAt); err != nil {
				v.Custom("end_at", true, "must be a valid RFC3339 timestamp or null")
			} else {
				updateInput.EndAt = &endAt
			}
		}
	}

	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	event, err := handler.eventService.Update(request.Context(), requestutil.ID(request, "id"), updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, event)
}

/*
DELETE /api/v1/events/{id}.

Response:
  - 204: No Content: Event removed with its assignments
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.eventService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Assignment Endpoints

// assignRequest defines the expected JSON payload for generic staff
// assignments.
type assignRequest struct {
	PersonID string     `json:"person_id"`
	JobTitle string     `json:"job_title"`
	CallTime *time.Time `json:"call_time"`
	Notes    string     `json:"notes"`
}

/*
POST /api/v1/events/{id}/assignments.

Response:
  - 201: Assignment: The persisted entity
  - 400: Validation: Missing person
  - 404: ErrNotFound: Unknown event ID
  - 409: ErrConflict: Person already assigned to this event
*/
func (handler *Handler) assign(writer http.ResponseWriter, request *http.Request) {
	var input assignRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("person_id", input.PersonID).
		UUID("person_id", input.PersonID).
		MaxLen("job_title", input.JobTitle, 200)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	assignment, err := handler.eventService.Assign(request.Context(), requestutil.ID(request, "id"), AssignInput{
		PersonID: input.PersonID,
		JobTitle: input.JobTitle,
		CallTime: input.CallTime,
		Notes:    input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, assignment)
}

// setRoleAssignmentRequest defines the expected JSON payload for a role
// binding.
type setRoleAssignmentRequest struct {
	PersonID string `json:"person_id"`
}

/*
PUT /api/v1/events/{id}/roles/{roleID}/assignment.

Description: Replaces the performer of a role on this event, or clears the
binding when person_id is empty.

Response:
  - 204: No Content: Binding updated
  - 404: ErrNotFound: Unknown event or role ID
  - 422: ErrUnprocessable: Role belongs to a different play
*/
func (handler *Handler) setRoleAssignment(writer http.ResponseWriter, request *http.Request) {
	var input setRoleAssignmentRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	err := handler.eventService.SetRoleAssignment(request.Context(),
		requestutil.ID(request, "id"), requestutil.ID(request, "roleID"), input.PersonID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// fillResult reports how many assignments the fill operation created.
type fillResult struct {
	Created int `json:"created"`
}

/*
POST /api/v1/events/{id}/assignments/fill.

Description: Completes the cast from the play's base cast, skipping roles
that already have a performer.

Response:
  - 200: fillResult: Number of assignments created
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) fillFromBaseCast(writer http.ResponseWriter, request *http.Request) {
	created, err := handler.eventService.FillFromBaseCast(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, fillResult{Created: created})
}

/*
DELETE /api/v1/events/assignments/{assignmentID}.

Response:
  - 204: No Content: Assignment removed
  - 404: ErrNotFound: Unknown assignment ID
*/
func (handler *Handler) deleteAssignment(writer http.ResponseWriter, request *http.Request) {
	if err := handler.eventService.DeleteAssignment(request.Context(), requestutil.ID(request, "assignmentID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
