// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/constants"
	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
	"github.com/ammateam/callboard/pkg/pagination"
)

// Handler implements the HTTP layer for report ingestion.
type Handler struct {
	reportService *Service
}

// NewHandler constructs a new report [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{reportService: service}
}

// Routes returns a [chi.Router] configured with the report endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.list)
	router.Post("/import", handler.importFile)
	router.Get("/{id}", handler.get)
	router.Delete("/{id}", handler.delete)

	return router
}

/*
POST /api/v1/finance/reports/import.

Multipart form with a single "file" part holding the xlsx.

Response:
  - 201: ImportResult: Identity and auto-creation counts
  - 409: Duplicate: The report was imported before (existing_id set)
  - 422: ParseError: The file is not a recognizable report
*/
func (handler *Handler) importFile(writer http.ResponseWriter, request *http.Request) {
	request.Body = http.MaxBytesReader(writer, request.Body, constants.MaxUploadBytes)

	if err := request.ParseMultipartForm(constants.MaxUploadBytes); err != nil {
		respond.Error(writer, request, apperr.ValidationError("Expected a multipart upload with a \"file\" part"))
		return
	}

	file, header, err := request.FormFile("file")
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Missing \"file\" part"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Could not read the uploaded file"))
		return
	}

	result, err := handler.reportService.Import(request.Context(), header.Filename, data)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, result)
}

/*
GET /api/v1/finance/reports.

Response:
  - 200: []Report: One page of reports, newest first
*/
func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	page := pagination.FromRequest(request)

	reports, meta, err := handler.reportService.List(request.Context(), page)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, meta)
}

/*
GET /api/v1/finance/reports/{id}.

Response:
  - 200: Detail: Report with all session lines
  - 404: ErrNotFound: Unknown report ID
*/
func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	detail, err := handler.reportService.Get(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, detail)
}

/*
DELETE /api/v1/finance/reports/{id}.

Response:
  - 204: The report and its lines were removed
  - 404: ErrNotFound: Unknown report ID
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	if err := handler.reportService.Delete(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
