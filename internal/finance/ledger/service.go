// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/internal/platform/validate"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates expense management and revenue aggregation.
type Service struct {
	repository Repository
	logger     *slog.Logger
}

// NewService constructs a new ledger [Service].
func NewService(repository Repository, logger *slog.Logger) *Service {
	return &Service{repository: repository, logger: logger}
}

// ExpenseInput defines the fields accepted when recording an expense.
type ExpenseInput struct {
	Category ExpenseCategory
	Title    string
	Amount   decimal.Decimal
	Notes    string
}

/*
CreateExpense records a manual expense on an event.

The amount must be strictly positive and is stored with two decimal places.

Parameters:
  - context: context.Context
  - eventID: string
  - input: ExpenseInput

Returns:
  - *Expense: The persisted entity with its category label
  - error: Validation, unknown event or storage failures
*/
func (service *Service) CreateExpense(context context.Context, eventID string, input ExpenseInput) (*Expense, error) {
	validator := (&validate.Validator{}).
		Required("title", input.Title).
		MaxLen("title", input.Title, 200).
		Custom("category", !input.Category.IsValid(), "unknown expense category").
		PositiveAmount("amount", input.Amount)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if _, err := service.repository.FindEvent(context, eventID); err != nil {
		return nil, fmt.Errorf("ledger_service_event_lookup_failed: %w", err)
	}

	now := time.Now()
	expense := &Expense{
		ID:            uuidv7.New(),
		EventID:       eventID,
		Category:      input.Category,
		CategoryLabel: input.Category.Label(),
		Title:         input.Title,
		Amount:        input.Amount.Round(2),
		Notes:         input.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := service.repository.CreateExpense(context, expense); err != nil {
		return nil, fmt.Errorf("ledger_service_create_expense_failed: %w", err)
	}

	service.logger.Info("expense_created",
		slog.String("expense_id", expense.ID),
		slog.String("event_id", eventID),
		slog.String("category", string(expense.Category)),
	)

	return expense, nil
}

/*
ListExpenses returns an event's expenses, newest first.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - []Expense: Recorded expenses
  - error: Unknown event or storage failures
*/
func (service *Service) ListExpenses(context context.Context, eventID string) ([]Expense, error) {
	if _, err := service.repository.FindEvent(context, eventID); err != nil {
		return nil, fmt.Errorf("ledger_service_event_lookup_failed: %w", err)
	}

	expenses, err := service.repository.ListExpenses(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("ledger_service_list_expenses_failed: %w", err)
	}
	return expenses, nil
}

/*
DeleteExpense removes a recorded expense.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) DeleteExpense(context context.Context, id string) error {
	if err := service.repository.DeleteExpense(context, id); err != nil {
		return fmt.Errorf("ledger_service_delete_expense_failed: %w", err)
	}

	service.logger.Info("expense_deleted", slog.String("expense_id", id))

	return nil
}

/*
EventSummary computes the full economic picture of one event: ticket and
gross totals over every imported report line, the commission they cost, and
the manual expenses against them.

Parameters:
  - context: context.Context
  - eventID: string

Returns:
  - *EventSummary: Aggregated figures
  - error: Unknown event or storage failures
*/
func (service *Service) EventSummary(context context.Context, eventID string) (*EventSummary, error) {
	ref, err := service.repository.FindEvent(context, eventID)
	if err != nil {
		return nil, fmt.Errorf("ledger_service_event_lookup_failed: %w", err)
	}

	sales, err := service.repository.SalesByEvent(context, []string{eventID})
	if err != nil {
		return nil, fmt.Errorf("ledger_service_sales_failed: %w", err)
	}
	expenses, err := service.repository.ExpensesByEvent(context, []string{eventID})
	if err != nil {
		return nil, fmt.Errorf("ledger_service_expenses_failed: %w", err)
	}

	summary := summarize(*ref, sales[eventID], expenses[eventID])
	return &summary, nil
}

/*
CashFlow aggregates per-event economics over a date range, optionally
restricted to one play, with grand totals across the selection.

Parameters:
  - context: context.Context
  - from: *time.Time (nil means open start)
  - to: *time.Time (nil means open end)
  - playID: string (empty means all plays)

Returns:
  - *CashFlowResult: Per-event rows ordered by start time plus totals
  - error: Storage failures
*/
func (service *Service) CashFlow(context context.Context, from, to *time.Time, playID string) (*CashFlowResult, error) {
	events, err := service.repository.EventsInRange(context, from, to, playID)
	if err != nil {
		return nil, fmt.Errorf("ledger_service_events_failed: %w", err)
	}

	eventIDs := make([]string, 0, len(events))
	for _, ref := range events {
		eventIDs = append(eventIDs, ref.ID)
	}

	result := &CashFlowResult{
		From: from,
		To:   to,
		Rows: make([]EventSummary, 0, len(events)),
		Totals: CashFlowTotals{
			GrossAmount:   decimal.Zero,
			Commission:    decimal.Zero,
			NetAmount:     decimal.Zero,
			ExpensesTotal: decimal.Zero,
			Profit:        decimal.Zero,
		},
	}
	if len(events) == 0 {
		return result, nil
	}

	sales, err := service.repository.SalesByEvent(context, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger_service_sales_failed: %w", err)
	}
	expenses, err := service.repository.ExpensesByEvent(context, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("ledger_service_expenses_failed: %w", err)
	}

	for _, ref := range events {
		summary := summarize(ref, sales[ref.ID], expenses[ref.ID])
		result.Rows = append(result.Rows, summary)

		result.Totals.TicketsCount += summary.TicketsCount
		result.Totals.GrossAmount = result.Totals.GrossAmount.Add(summary.GrossAmount)
		result.Totals.Commission = result.Totals.Commission.Add(summary.Commission)
		result.Totals.NetAmount = result.Totals.NetAmount.Add(summary.NetAmount)
		result.Totals.ExpensesTotal = result.Totals.ExpensesTotal.Add(summary.ExpensesTotal)
		result.Totals.Profit = result.Totals.Profit.Add(summary.Profit)
	}

	return result, nil
}
