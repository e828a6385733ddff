// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package schedule

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/internal/platform/validate"
	"github.com/ammateam/callboard/pkg/convert"
)

// Handler implements the HTTP layer for the availability engine.
type Handler struct {
	scheduleService *Service
}

// NewHandler constructs a new schedule [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{scheduleService: service}
}

// Routes returns a [chi.Router] configured with the schedule endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/events/{id}/conflicts", handler.eventConflicts)
	router.Post("/availability", handler.availability)
	router.Get("/matrix", handler.matrix)
	router.Get("/people/{id}", handler.personSchedule)

	return router
}

/*
GET /api/v1/schedule/events/{id}/conflicts.

Description: The assignment rows of an event annotated with each assignee's
collisions elsewhere, in cast display order.

Response:
  - 200: EventConflictReport
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) eventConflicts(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.scheduleService.EventConflicts(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, report)
}

// availabilityRequest defines the expected JSON payload for an ad-hoc
// availability probe against a time window.
type availabilityRequest struct {
	EventID   string     `json:"event_id"`
	StartAt   time.Time  `json:"start_at"`
	EndAt     *time.Time `json:"end_at"`
	PersonIDs []string   `json:"person_ids"`
}

/*
POST /api/v1/schedule/availability.

Description: Resolves busy reasons for a set of people against an arbitrary
window, typically while picking a cast. A person missing from the response
map is free.

Request:
  - body: availabilityRequest

Response:
  - 200: map[personID][]reason
  - 400: Validation: Missing start or inverted window
*/
func (handler *Handler) availability(writer http.ResponseWriter, request *http.Request) {
	var input availabilityRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.RequiredTime("start_at", input.StartAt).
		EndAfterStart("end_at", input.StartAt, input.EndAt)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	busy, err := handler.scheduleService.BusyReasons(request.Context(), Window{
		EventID: input.EventID,
		StartAt: input.StartAt,
		EndAt:   input.EndAt,
	}, input.PersonIDs)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, busy)
}

/*
GET /api/v1/schedule/matrix.

Description: The day-granular busy grid. Range length clamps to 7..31 days
and defaults to 14.

Request:
  - from: string (Query, ISO date; defaults to today)
  - days: int (Query)
  - role: string (Query, optional job-role filter)
  - q: string (Query, optional name substring)

Response:
  - 200: MatrixResult
*/
func (handler *Handler) matrix(writer http.ResponseWriter, request *http.Request) {
	from := time.Now()
	if parsed := requestutil.DateParam(request, "from"); parsed != nil {
		from = *parsed
	}

	days := convert.ToIntD(requestutil.Param(request, "days"), 0)

	result, err := handler.scheduleService.Matrix(request.Context(), from, days,
		requestutil.Param(request, "role"), requestutil.Param(request, "q"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/schedule/people/{id}.

Description: One person's merged internal and external timeline, split into
upcoming and past with pairwise conflicts annotated.

Response:
  - 200: PersonScheduleResult
*/
func (handler *Handler) personSchedule(writer http.ResponseWriter, request *http.Request) {
	result, err := handler.scheduleService.PersonSchedule(request.Context(),
		requestutil.ID(request, "id"), time.Now())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
