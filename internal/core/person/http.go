// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package person

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/internal/platform/validate"
	"github.com/ammateam/callboard/pkg/pagination"
)

// Handler implements the HTTP layer for roster management.
type Handler struct {
	personService *Service
}

// NewHandler constructs a new person [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{personService: service}
}

// Routes returns a [chi.Router] configured with the person domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// Roster
	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/roles", handler.listRoles)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	// External bookings
	router.Get("/{id}/bookings", handler.listBookings)
	router.Post("/{id}/bookings", handler.createBooking)
	router.Delete("/bookings/{bookingID}", handler.deleteBooking)

	return router
}

// # Roster Endpoints

/*
GET /api/v1/people.

Description: Lists the roster with optional role and name filters.

Request:
  - role: string (Query, optional job-role code)
  - q: string (Query, optional case-insensitive name substring)
  - page, limit: int (Query, pagination)

Response:
  - 200: []Person + pagination metadata
  - 400: Validation: Unknown role code
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	role := requestutil.Param(request, "role")

	v := &validate.Validator{}
	if role != "" {
		v.OneOf("role", role, JobRoleValues()...)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	people, meta, err := handler.personService.List(request.Context(), ListFilter{
		Role:   JobRole(role),
		Search: requestutil.Param(request, "q"),
		Page:   pagination.FromRequest(request),
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, people, meta)
}

// roleOption pairs a job-role code with its display label.
type roleOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

/*
GET /api/v1/people/roles.

Response:
  - 200: []roleOption: The closed set of job roles with labels
*/
func (handler *Handler) listRoles(writer http.ResponseWriter, request *http.Request) {
	options := make([]roleOption, 0, len(JobRoles))
	for _, role := range JobRoles {
		options = append(options, roleOption{Value: string(role), Label: role.Label()})
	}
	respond.OK(writer, options)
}

/*
GET /api/v1/people/{id}.

Response:
  - 200: Person: Hydrated entity
  - 404: ErrNotFound: Unknown person ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	person, err := handler.personService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, person)
}

// createPersonRequest defines the expected JSON payload for roster creation.
type createPersonRequest struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

/*
POST /api/v1/people.

Request:
  - body: createPersonRequest

Response:
  - 201: Person: The persisted entity
  - 400: Validation: Missing name or unknown role code
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createPersonRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("full_name", input.FullName).
		MaxLen("full_name", input.FullName, 200).
		Required("role", input.Role).
		OneOf("role", input.Role, JobRoleValues()...)
	if input.Email != "" {
		v.Email("email", input.Email)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	person, err := handler.personService.Create(request.Context(), CreateInput{
		FullName: input.FullName,
		Role:     JobRole(input.Role),
		Phone:    input.Phone,
		Email:    input.Email,
		Notes:    input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, person)
}

// updatePersonRequest defines the expected JSON payload for partial updates.
type updatePersonRequest struct {
	FullName *string `json:"full_name"`
	Role     *string `json:"role"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email"`
	Notes    *string `json:"notes"`
}

/*
PATCH /api/v1/people/{id}.

Request:
  - body: updatePersonRequest (Partial JSON)

Response:
  - 200: Person: The updated entity
  - 400: Validation: Empty name or unknown role code
  - 404: ErrNotFound: Unknown person ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updatePersonRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.FullName != nil {
		v.Required("full_name", *input.FullName).MaxLen("full_name", *input.FullName, 200)
	}
	if input.Role != nil {
		v.OneOf("role", *input.Role, JobRoleValues()...)
	}
	if input.Email != nil && *input.Email != "" {
		v.Email("email", *input.Email)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	updateInput := UpdateInput{
		FullName: input.FullName,
		Phone:    input.Phone,
		Email:    input.Email,
		Notes:    input.Notes,
	}
	if input.Role != nil {
		role := JobRole(*input.Role)
		updateInput.Role = &role
	}

	person, err := handler.personService.Update(request.Context(), requestutil.ID(request, "id"), updateInput)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, person)
}

/*
DELETE /api/v1/people/{id}.

Description: Removes the person together with their assignments and external
bookings; a linked application account is detached, not deleted.

Response:
  - 204: No Content: Person removed
  - 404: ErrNotFound: Unknown person ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.personService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # External Booking Endpoints

/*
GET /api/v1/people/{id}/bookings.

Response:
  - 200: []ExternalBooking: Engagements outside the company, newest first
  - 404: ErrNotFound: Unknown person ID
*/
func (handler *Handler) listBookings(writer http.ResponseWriter, request *http.Request) {
	bookings, err := handler.personService.ListBookings(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookings)
}

// createBookingRequest defines the expected JSON payload for a new booking.
type createBookingRequest struct {
	Title   string     `json:"title"`
	StartAt time.Time  `json:"start_at"`
	EndAt   *time.Time `json:"end_at"`
	Notes   string     `json:"notes"`
}

/*
POST /api/v1/people/{id}/bookings.

Request:
  - body: createBookingRequest

Response:
  - 201: ExternalBooking: The persisted entity
  - 400: Validation: Missing title/start, or end not after start
  - 404: ErrNotFound: Unknown person ID
*/
func (handler *Handler) createBooking(writer http.ResponseWriter, request *http.Request) {
	var input createBookingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		RequiredTime("start_at", input.StartAt).
		EndAfterStart("end_at", input.StartAt, input.EndAt)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	booking, err := handler.personService.CreateBooking(request.Context(), requestutil.ID(request, "id"), BookingInput{
		Title:   input.Title,
		StartAt: input.StartAt,
		EndAt:   input.EndAt,
		Notes:   input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, booking)
}

/*
DELETE /api/v1/people/bookings/{bookingID}.

Response:
  - 204: No Content: Booking removed
  - 404: ErrNotFound: Unknown booking ID
*/
func (handler *Handler) deleteBooking(writer http.ResponseWriter, request *http.Request) {
	if err := handler.personService.DeleteBooking(request.Context(), requestutil.ID(request, "bookingID")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
