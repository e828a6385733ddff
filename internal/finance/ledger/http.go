// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package ledger

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/internal/platform/apperr"
	requestutil "github.com/ammateam/callboard/internal/platform/request"
	"github.com/ammateam/callboard/internal/platform/respond"
)

// Handler implements the HTTP layer for event economics.
type Handler struct {
	ledgerService *Service
}

// NewHandler constructs a new ledger [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{ledgerService: service}
}

// Routes returns a [chi.Router] configured with the ledger endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Get("/cashflow", handler.cashFlow)
	router.Get("/expenses/categories", handler.categories)
	router.Delete("/expenses/{id}", handler.deleteExpense)
	router.Get("/events/{id}/summary", handler.eventSummary)
	router.Get("/events/{id}/expenses", handler.listExpenses)
	router.Post("/events/{id}/expenses", handler.createExpense)

	return router
}

type categoryOption struct {
	Value ExpenseCategory `json:"value"`
	Label string          `json:"label"`
}

/*
GET /api/v1/finance/expenses/categories.

Response:
  - 200: []categoryOption: The closed category set in display order
*/
func (handler *Handler) categories(writer http.ResponseWriter, request *http.Request) {
	options := make([]categoryOption, 0, len(CategoryValues()))
	for _, category := range CategoryValues() {
		options = append(options, categoryOption{Value: category, Label: category.Label()})
	}

	respond.OK(writer, options)
}

type createExpenseRequest struct {
	Category string `json:"category"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Notes    string `json:"notes"`
}

/*
POST /api/v1/finance/events/{id}/expenses.

The amount arrives as a string to keep kopecks exact in transit.

Response:
  - 201: Expense: The recorded expense
  - 400: ValidationError: Bad category, title or amount
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) createExpense(writer http.ResponseWriter, request *http.Request) {
	var payload createExpenseRequest
	if err := requestutil.DecodeJSON(request, &payload); err != nil {
		respond.Error(writer, request, err)
		return
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		respond.Error(writer, request, apperr.ValidationError("Invalid request",
			apperr.FieldError{Field: "amount", Message: "must be a decimal number"}))
		return
	}

	expense, err := handler.ledgerService.CreateExpense(request.Context(), requestutil.ID(request, "id"), ExpenseInput{
		Category: ExpenseCategory(payload.Category),
		Title:    payload.Title,
		Amount:   amount,
		Notes:    payload.Notes,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, expense)
}

/*
GET /api/v1/finance/events/{id}/expenses.

Response:
  - 200: []Expense: The event's expenses, newest first
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) listExpenses(writer http.ResponseWriter, request *http.Request) {
	expenses, err := handler.ledgerService.ListExpenses(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, expenses)
}

/*
DELETE /api/v1/finance/expenses/{id}.

Response:
  - 204: The expense was removed
  - 404: ErrNotFound: Unknown expense ID
*/
func (handler *Handler) deleteExpense(writer http.ResponseWriter, request *http.Request) {
	if err := handler.ledgerService.DeleteExpense(request.Context(), requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
GET /api/v1/finance/events/{id}/summary.

Response:
  - 200: EventSummary: Tickets, gross, commission, net, expenses, profit
  - 404: ErrNotFound: Unknown event ID
*/
func (handler *Handler) eventSummary(writer http.ResponseWriter, request *http.Request) {
	summary, err := handler.ledgerService.EventSummary(request.Context(), requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}

/*
GET /api/v1/finance/cashflow?from=&to=&play_id=.

Response:
  - 200: CashFlowResult: Per-event economics plus grand totals
*/
func (handler *Handler) cashFlow(writer http.ResponseWriter, request *http.Request) {
	from := requestutil.DateParam(request, "from")
	to := requestutil.DateParam(request, "to")
	playID := requestutil.Param(request, "play_id")

	result, err := handler.ledgerService.CashFlow(request.Context(), from, to, playID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}
