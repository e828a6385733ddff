// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package ledger_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/finance/ledger"
	"github.com/ammateam/callboard/internal/platform/apperr"
)

// fakeRepository keeps events, sales lines and expenses in memory.
type fakeRepository struct {
	events   map[string]ledger.EventRef
	sales    map[string][]ledger.SalesLine
	expenses map[string][]ledger.Expense
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		events:   make(map[string]ledger.EventRef),
		sales:    make(map[string][]ledger.SalesLine),
		expenses: make(map[string][]ledger.Expense),
	}
}

func (fake *fakeRepository) FindEvent(_ context.Context, eventID string) (*ledger.EventRef, error) {
	if ref, ok := fake.events[eventID]; ok {
		return &ref, nil
	}
	return nil, apperr.NotFound("Event")
}

func (fake *fakeRepository) EventsInRange(_ context.Context, from, to *time.Time, playID string) ([]ledger.EventRef, error) {
	matched := make([]ledger.EventRef, 0)
	for _, ref := range fake.events {
		if from != nil && ref.StartAt.Before(*from) {
			continue
		}
		if to != nil && ref.StartAt.After(*to) {
			continue
		}
		if playID != "" && ref.PlayID != playID {
			continue
		}
		matched = append(matched, ref)
	}
	return matched, nil
}

func (fake *fakeRepository) SalesByEvent(_ context.Context, eventIDs []string) (map[string][]ledger.SalesLine, error) {
	result := make(map[string][]ledger.SalesLine)
	for _, id := range eventIDs {
		if lines, ok := fake.sales[id]; ok {
			result[id] = lines
		}
	}
	return result, nil
}

func (fake *fakeRepository) ExpensesByEvent(_ context.Context, eventIDs []string) (map[string][]ledger.Expense, error) {
	result := make(map[string][]ledger.Expense)
	for _, id := range eventIDs {
		if expenses, ok := fake.expenses[id]; ok {
			result[id] = expenses
		}
	}
	return result, nil
}

func (fake *fakeRepository) ListExpenses(_ context.Context, eventID string) ([]ledger.Expense, error) {
	return fake.expenses[eventID], nil
}

func (fake *fakeRepository) CreateExpense(_ context.Context, expense *ledger.Expense) error {
	fake.expenses[expense.EventID] = append(fake.expenses[expense.EventID], *expense)
	return nil
}

func (fake *fakeRepository) DeleteExpense(_ context.Context, id string) error {
	for eventID, expenses := range fake.expenses {
		for index, expense := range expenses {
			if expense.ID == id {
				fake.expenses[eventID] = append(expenses[:index], expenses[index+1:]...)
				return nil
			}
		}
	}
	return apperr.NotFound("Expense")
}

func percent(value int64) *decimal.Decimal {
	parsed := decimal.NewFromInt(value)
	return &parsed
}

func newLedgerService() (*ledger.Service, *fakeRepository) {
	repository := newFakeRepository()
	return ledger.NewService(repository, slog.Default()), repository
}

/*
TestEventSummary_AggregatesLinesAndExpenses: two sessions worth 1000 at 10%
and 500 at 5% cost 125 in commission, net 1375; 375 of expenses leave a
profit of exactly 1000.
*/
func TestEventSummary_AggregatesLinesAndExpenses(t *testing.T) {
	service, repository := newLedgerService()

	repository.events["ev"] = ledger.EventRef{
		ID: "ev", PlayID: "pl", PlayTitle: "Гроза", Title: "Гроза",
		StartAt: time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC),
	}
	repository.sales["ev"] = []ledger.SalesLine{
		{TicketsCount: 100, GrossAmount: decimal.NewFromInt(1000), ServicePercent: percent(10)},
		{TicketsCount: 50, GrossAmount: decimal.NewFromInt(500), ServicePercent: percent(5)},
	}
	repository.expenses["ev"] = []ledger.Expense{
		{ID: "ex1", EventID: "ev", Amount: decimal.NewFromInt(300)},
		{ID: "ex2", EventID: "ev", Amount: decimal.NewFromInt(75)},
	}

	summary, err := service.EventSummary(context.Background(), "ev")
	require.NoError(t, err)

	assert.Equal(t, 150, summary.TicketsCount)
	assert.True(t, decimal.NewFromInt(1500).Equal(summary.GrossAmount), summary.GrossAmount.String())
	assert.True(t, decimal.NewFromInt(125).Equal(summary.Commission), summary.Commission.String())
	assert.True(t, decimal.NewFromInt(1375).Equal(summary.NetAmount), summary.NetAmount.String())
	assert.True(t, decimal.NewFromInt(375).Equal(summary.ExpensesTotal), summary.ExpensesTotal.String())
	assert.True(t, decimal.NewFromInt(1000).Equal(summary.Profit), summary.Profit.String())
}

/*
TestEventSummary_NoSalesKeepsExpenses: an event without a single imported
line still charges its expenses, so the profit goes negative.
*/
func TestEventSummary_NoSalesKeepsExpenses(t *testing.T) {
	service, repository := newLedgerService()

	repository.events["ev"] = ledger.EventRef{ID: "ev", Title: "Прогон"}
	repository.expenses["ev"] = []ledger.Expense{
		{ID: "ex", EventID: "ev", Amount: decimal.NewFromInt(200)},
	}

	summary, err := service.EventSummary(context.Background(), "ev")
	require.NoError(t, err)

	assert.True(t, summary.GrossAmount.IsZero())
	assert.True(t, decimal.NewFromInt(-200).Equal(summary.Profit), summary.Profit.String())
}

/*
TestEventSummary_AbsentPercentMeansNoCommission: a line whose report had no
commission column is all net.
*/
func TestEventSummary_AbsentPercentMeansNoCommission(t *testing.T) {
	service, repository := newLedgerService()

	repository.events["ev"] = ledger.EventRef{ID: "ev"}
	repository.sales["ev"] = []ledger.SalesLine{
		{TicketsCount: 10, GrossAmount: decimal.NewFromInt(700)},
	}

	summary, err := service.EventSummary(context.Background(), "ev")
	require.NoError(t, err)

	assert.True(t, summary.Commission.IsZero())
	assert.True(t, decimal.NewFromInt(700).Equal(summary.NetAmount))
}

/*
TestCreateExpense_Validation: the category set is closed, the title is
required and the amount must be strictly positive.
*/
func TestCreateExpense_Validation(t *testing.T) {
	service, repository := newLedgerService()
	repository.events["ev"] = ledger.EventRef{ID: "ev"}

	tests := []struct {
		name  string
		input ledger.ExpenseInput
	}{
		{
			name:  "unknown category",
			input: ledger.ExpenseInput{Category: "FOOD", Title: "Буфет", Amount: decimal.NewFromInt(100)},
		},
		{
			name:  "empty title",
			input: ledger.ExpenseInput{Category: ledger.CategoryBuffet, Amount: decimal.NewFromInt(100)},
		},
		{
			name:  "zero amount",
			input: ledger.ExpenseInput{Category: ledger.CategoryBuffet, Title: "Буфет", Amount: decimal.Zero},
		},
		{
			name:  "negative amount",
			input: ledger.ExpenseInput{Category: ledger.CategoryBuffet, Title: "Буфет", Amount: decimal.NewFromInt(-5)},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := service.CreateExpense(context.Background(), "ev", test.input)
			require.Error(t, err)
			require.NotNil(t, apperr.As(err))
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestCreateExpense_RoundsAndLabels stores kopecks at two decimal places and
hydrates the Russian category label.
*/
func TestCreateExpense_RoundsAndLabels(t *testing.T) {
	service, repository := newLedgerService()
	repository.events["ev"] = ledger.EventRef{ID: "ev"}

	expense, err := service.CreateExpense(context.Background(), "ev", ledger.ExpenseInput{
		Category: ledger.CategoryHonorarium,
		Title:    "Гонорар режиссера",
		Amount:   decimal.RequireFromString("1000.005"),
	})
	require.NoError(t, err)

	assert.Equal(t, "1000.01", expense.Amount.StringFixed(2))
	assert.Equal(t, "Гонорары", expense.CategoryLabel)

	_, err = service.CreateExpense(context.Background(), "missing", ledger.ExpenseInput{
		Category: ledger.CategoryOther,
		Title:    "Такси",
		Amount:   decimal.NewFromInt(10),
	})
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestCashFlow_RowsAndTotals filters by range and play, orders rows by start
time in the store, and sums the grand totals.
*/
func TestCashFlow_RowsAndTotals(t *testing.T) {
	service, repository := newLedgerService()

	start := time.Date(2026, 9, 10, 19, 0, 0, 0, time.UTC)
	repository.events["ev1"] = ledger.EventRef{ID: "ev1", PlayID: "pl1", Title: "Гроза", StartAt: start}
	repository.events["ev2"] = ledger.EventRef{ID: "ev2", PlayID: "pl2", Title: "Чайка", StartAt: start.AddDate(0, 0, 1)}
	repository.events["ev3"] = ledger.EventRef{ID: "ev3", PlayID: "pl1", Title: "Гроза", StartAt: start.AddDate(0, 2, 0)}

	repository.sales["ev1"] = []ledger.SalesLine{
		{TicketsCount: 100, GrossAmount: decimal.NewFromInt(1000), ServicePercent: percent(10)},
	}
	repository.sales["ev2"] = []ledger.SalesLine{
		{TicketsCount: 50, GrossAmount: decimal.NewFromInt(500), ServicePercent: percent(10)},
	}
	repository.expenses["ev2"] = []ledger.Expense{
		{ID: "ex", EventID: "ev2", Amount: decimal.NewFromInt(100)},
	}

	from := start.AddDate(0, 0, -1)
	to := start.AddDate(0, 1, 0)
	result, err := service.CashFlow(context.Background(), &from, &to, "")
	require.NoError(t, err)

	require.Len(t, result.Rows, 2)
	assert.Equal(t, 150, result.Totals.TicketsCount)
	assert.True(t, decimal.NewFromInt(1500).Equal(result.Totals.GrossAmount))
	assert.True(t, decimal.NewFromInt(150).Equal(result.Totals.Commission))
	assert.True(t, decimal.NewFromInt(1350).Equal(result.Totals.NetAmount))
	assert.True(t, decimal.NewFromInt(100).Equal(result.Totals.ExpensesTotal))
	assert.True(t, decimal.NewFromInt(1250).Equal(result.Totals.Profit))

	filtered, err := service.CashFlow(context.Background(), &from, &to, "pl1")
	require.NoError(t, err)
	require.Len(t, filtered.Rows, 1)
	assert.Equal(t, "ev1", filtered.Rows[0].EventID)
}
