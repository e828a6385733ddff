// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package venue

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/internal/platform/validate"
)

// Handler implements the HTTP layer for venue management.
type Handler struct {
	venueService *Service
}

// NewHandler constructs a new venue [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{venueService: service}
}

// Routes returns a [chi.Router] configured with the venue domain's endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/", handler.create)
	router.Get("/{id}", handler.get)
	router.Patch("/{id}", handler.update)
	router.Delete("/{id}", handler.delete)

	return router
}

/*
GET /api/v1/venues.

Response:
  - 200: []Venue: All venues ordered by title
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	venues, err := handler.venueService.List(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, venues)
}

/*
GET /api/v1/venues/{id}.

Response:
  - 200: Venue: Hydrated entity
  - 404: ErrNotFound: Unknown venue ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	venue, err := handler.venueService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, venue)
}

// createVenueRequest defines the expected JSON payload for venue creation.
type createVenueRequest struct {
	Title   string `json:"title"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

/*
POST /api/v1/venues.

Request:
  - body: createVenueRequest

Response:
  - 201: Venue: The persisted entity
  - 400: Validation: Missing title
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	var input createVenueRequest
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

	venue, err := handler.venueService.Create(request.Context(), CreateInput{
		Title:   input.Title,
		Address: input.Address,
		Notes:   input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, venue)
}

// updateVenueRequest defines the expected JSON payload for partial updates.
type updateVenueRequest struct {
	Title   *string `json:"title"`
	Address *string `json:"address"`
	Notes   *string `json:"notes"`
}

/*
PATCH /api/v1/venues/{id}.

Request:
  - body: updateVenueRequest (Partial JSON)

Response:
  - 200: Venue: The updated entity
  - 400: Validation: Empty title
  - 404: ErrNotFound: Unknown venue ID
*/
func (handler *Handler) update(writer http.ResponseWriter, request *http.Request) {
	var input updateVenueRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	if input.Title != nil {
		v.Required("title", *input.Title).MaxLen("title", *input.Title, 200)
	}
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	venue, err := handler.venueService.Update(request.Context(), requestutil.ID(request, "id"), UpdateInput{
		Title:   input.Title,
		Address: input.Address,
		Notes:   input.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, venue)
}

/*
DELETE /api/v1/venues/{id}.

Response:
  - 204: No Content: Venue removed
  - 404: ErrNotFound: Unknown venue ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.venueService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
