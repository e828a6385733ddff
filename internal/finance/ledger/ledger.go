// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package ledger implements event economics: manual expenses and the revenue
aggregation built on top of imported report lines.

All money math uses decimals end to end. Per report line the commission is
gross × service% / 100; the event's net is gross minus commission, and its
profit is net minus manual expenses. Events without a single sold ticket
still carry their expenses, so profit can be negative.
*/
package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// # Expense Categories

// ExpenseCategory classifies a manual event expense.
type ExpenseCategory string

const (
	CategoryHonorarium ExpenseCategory = "HONORARIUM"
	CategoryDelivery   ExpenseCategory = "DELIVERY"
	CategoryBuffet     ExpenseCategory = "BUFFET"
	CategoryProps      ExpenseCategory = "PROPS"
	CategoryCostume    ExpenseCategory = "COSTUME"
	CategoryPromo      ExpenseCategory = "PROMO"
	CategoryRent       ExpenseCategory = "RENT"
	CategoryOther      ExpenseCategory = "OTHER"
)

// categoryLabels maps categories to their Russian display names.
var categoryLabels = map[ExpenseCategory]string{
	CategoryHonorarium: "Гонорары",
	CategoryDelivery:   "Доставка",
	CategoryBuffet:     "Буфет",
	CategoryProps:      "Реквизит",
	CategoryCostume:    "Костюмы",
	CategoryPromo:      "Реклама",
	CategoryRent:       "Аренда",
	CategoryOther:      "Прочее",
}

// IsValid reports whether the category belongs to the closed set.
func (category ExpenseCategory) IsValid() bool {
	_, ok := categoryLabels[category]
	return ok
}

// Label returns the category's Russian display name.
func (category ExpenseCategory) Label() string {
	return categoryLabels[category]
}

// CategoryValues returns all categories in display order.
func CategoryValues() []ExpenseCategory {
	return []ExpenseCategory{
		CategoryHonorarium, CategoryDelivery, CategoryBuffet, CategoryProps,
		CategoryCostume, CategoryPromo, CategoryRent, CategoryOther,
	}
}

// # Entities

// Expense represents one manual expense attached to an event.
type Expense struct {
	// ID is the expense's unique identifier (UUIDv7).
	ID string `json:"id"`
	// EventID is the event the expense belongs to.
	EventID string `json:"event_id"`
	// Category classifies the expense.
	Category ExpenseCategory `json:"category"`
	// CategoryLabel is the Russian display name of the category.
	CategoryLabel string `json:"category_label"`
	// Title describes what the money was spent on.
	Title string `json:"title"`
	// Amount is the spent sum, always positive, two decimal places.
	Amount decimal.Decimal `json:"amount"`
	// Notes holds free-form remarks.
	Notes string `json:"notes"`
	// CreatedAt is when the expense was recorded.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is when the expense last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// SalesLine is the revenue-bearing slice of an imported report line.
type SalesLine struct {
	// TicketsCount is the number of sold tickets.
	TicketsCount int
	// GrossAmount is the session's gross revenue.
	GrossAmount decimal.Decimal
	// ServicePercent is the provider commission, nil when the report did
	// not state one. Absent means zero commission.
	ServicePercent *decimal.Decimal
}

// EventRef is the calendar slice the ledger needs to label its figures.
type EventRef struct {
	// ID is the event's identifier.
	ID string `json:"id"`
	// PlayID is the staged play's identifier.
	PlayID string `json:"play_id"`
	// PlayTitle is the staged play's title.
	PlayTitle string `json:"play_title"`
	// Title is the event's display title.
	Title string `json:"title"`
	// StartAt is when the event starts.
	StartAt time.Time `json:"start_at"`
}

// # Aggregates

// EventSummary is the full economic picture of one event.
type EventSummary struct {
	// EventID is the summarized event.
	EventID string `json:"event_id"`
	// Title is the event's display title.
	Title string `json:"title"`
	// PlayTitle is the staged play's title.
	PlayTitle string `json:"play_title"`
	// StartAt is when the event starts.
	StartAt time.Time `json:"start_at"`
	// TicketsCount is the total of sold tickets across all reports.
	TicketsCount int `json:"tickets_count"`
	// GrossAmount is the summed gross revenue.
	GrossAmount decimal.Decimal `json:"gross_amount"`
	// Commission is the summed provider commission.
	Commission decimal.Decimal `json:"commission"`
	// NetAmount is gross minus commission.
	NetAmount decimal.Decimal `json:"net_amount"`
	// ExpensesTotal is the sum of manual expenses.
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	// Profit is net minus expenses. Negative when the event lost money.
	Profit decimal.Decimal `json:"profit"`
}

// CashFlowTotals carries the grand totals over a cash-flow selection.
type CashFlowTotals struct {
	TicketsCount  int             `json:"tickets_count"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	Commission    decimal.Decimal `json:"commission"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	ExpensesTotal decimal.Decimal `json:"expenses_total"`
	Profit        decimal.Decimal `json:"profit"`
}

// CashFlowResult is the per-event economics over a date range.
type CashFlowResult struct {
	// From and To echo the requested range, nil for an open side.
	From *time.Time `json:"from"`
	To   *time.Time `json:"to"`
	// Rows holds one summary per event, ordered by start time.
	Rows []EventSummary `json:"rows"`
	// Totals sums all rows.
	Totals CashFlowTotals `json:"totals"`
}

// # Storage Contract

// Repository defines the persistence contract for the ledger.
type Repository interface {
	/*
		FindEvent resolves the calendar slice of one event.

		Parameters:
		  - context: context.Context
		  - eventID: string

		Returns:
		  - *EventRef: Identity and labels
		  - error: apperr.NotFound or storage failures
	*/
	FindEvent(context context.Context, eventID string) (*EventRef, error)

	/*
		EventsInRange lists events for the cash-flow selection, ordered by
		start time. Nil range sides are open; empty playID means all plays.

		Parameters:
		  - context: context.Context
		  - from: *time.Time
		  - to: *time.Time
		  - playID: string

		Returns:
		  - []EventRef: Matching events
		  - error: Storage failures
	*/
	EventsInRange(context context.Context, from, to *time.Time, playID string) ([]EventRef, error)

	/*
		SalesByEvent fetches all report lines of the given events, keyed by
		event ID. Events without sales are absent from the map.

		Parameters:
		  - context: context.Context
		  - eventIDs: []string

		Returns:
		  - map[string][]SalesLine: Lines per event
		  - error: Storage failures
	*/
	SalesByEvent(context context.Context, eventIDs []string) (map[string][]SalesLine, error)

	/*
		ExpensesByEvent fetches all manual expenses of the given events,
		keyed by event ID.

		Parameters:
		  - context: context.Context
		  - eventIDs: []string

		Returns:
		  - map[string][]Expense: Expenses per event
		  - error: Storage failures
	*/
	ExpensesByEvent(context context.Context, eventIDs []string) (map[string][]Expense, error)

	/*
		ListExpenses returns an event's expenses, newest first.

		Parameters:
		  - context: context.Context
		  - eventID: string

		Returns:
		  - []Expense: Recorded expenses
		  - error: Storage failures
	*/
	ListExpenses(context context.Context, eventID string) ([]Expense, error)

	/*
		CreateExpense persists a new expense.

		Parameters:
		  - context: context.Context
		  - expense: the entity to insert

		Returns:
		  - error: Constraint or storage failures
	*/
	CreateExpense(context context.Context, expense *Expense) error

	/*
		DeleteExpense removes an expense.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	DeleteExpense(context context.Context, id string) error
}

// # Line Economics

// lineCommission is the provider's cut of one report line. A line without a
// stated percentage costs nothing.
func lineCommission(line SalesLine) decimal.Decimal {
	if line.ServicePercent == nil {
		return decimal.Zero
	}
	return line.GrossAmount.Mul(*line.ServicePercent).Div(decimal.NewFromInt(100))
}

// summarize folds report lines and expenses into one event's figures.
func summarize(ref EventRef, lines []SalesLine, expenses []Expense) EventSummary {
	summary := EventSummary{
		EventID:       ref.ID,
		Title:         ref.Title,
		PlayTitle:     ref.PlayTitle,
		StartAt:       ref.StartAt,
		GrossAmount:   decimal.Zero,
		Commission:    decimal.Zero,
		NetAmount:     decimal.Zero,
		ExpensesTotal: decimal.Zero,
		Profit:        decimal.Zero,
	}

	for _, line := range lines {
		summary.TicketsCount += line.TicketsCount
		summary.GrossAmount = summary.GrossAmount.Add(line.GrossAmount)
		summary.Commission = summary.Commission.Add(lineCommission(line))
	}
	summary.NetAmount = summary.GrossAmount.Sub(summary.Commission)

	for _, expense := range expenses {
		summary.ExpensesTotal = summary.ExpensesTotal.Add(expense.Amount)
	}
	summary.Profit = summary.NetAmount.Sub(summary.ExpensesTotal)

	return summary
}
