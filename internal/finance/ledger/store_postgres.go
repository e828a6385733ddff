// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package ledger (Postgres) implements the storage layer for event economics.

# Schema Table Mapping
  - finance.eventexpense: Manual expenses.
  - finance.financereportline: Read for revenue aggregation.
  - core.event, core.play: Read for event identity and labels.
*/
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/database/schema"
	"github.com/ammateam/callboard/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for ledger
// storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func eventRefColumns() string {
	return fmt.Sprintf(`e.%s, e.%s, p.%s, e.%s, e.%s`,
		schema.CoreEvent.ID, schema.CoreEvent.PlayID, schema.CorePlay.Title,
		schema.CoreEvent.Title, schema.CoreEvent.StartAt)
}

func eventRefJoins() string {
	return fmt.Sprintf(`%s e JOIN %s p ON p.%s = e.%s`,
		schema.CoreEvent.Table, schema.CorePlay.Table,
		schema.CorePlay.ID, schema.CoreEvent.PlayID)
}

// FindEvent resolves one event's identity and labels.
func (repository *PostgresRepository) FindEvent(context context.Context, eventID string) (*EventRef, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE e.%s = $1`,
		eventRefColumns(), eventRefJoins(), schema.CoreEvent.ID)

	ref := &EventRef{}
	err := repository.pool.QueryRow(context, query, eventID).Scan(
		&ref.ID, &ref.PlayID, &ref.PlayTitle, &ref.Title, &ref.StartAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Event")
		}
		return nil, fmt.Errorf("postgres_ledger_repo_find_event_failed: %w", err)
	}
	return ref, nil
}

// EventsInRange lists events for the cash-flow selection ordered by start.
func (repository *PostgresRepository) EventsInRange(context context.Context, from, to *time.Time, playID string) ([]EventRef, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE 1=1`, eventRefColumns(), eventRefJoins())
	args := make([]interface{}, 0, 3)

	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(` AND e.%s >= $%d`, schema.CoreEvent.StartAt, len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(` AND e.%s <= $%d`, schema.CoreEvent.StartAt, len(args))
	}
	if playID != "" {
		args = append(args, playID)
		query += fmt.Sprintf(` AND e.%s = $%d`, schema.CoreEvent.PlayID, len(args))
	}
	query += fmt.Sprintf(` ORDER BY e.%s`, schema.CoreEvent.StartAt)

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres_ledger_repo_events_failed: %w", dberr.Wrap(err, "events_in_range"))
	}
	defer rows.Close()

	events := make([]EventRef, 0)
	for rows.Next() {
		var ref EventRef
		if err := rows.Scan(&ref.ID, &ref.PlayID, &ref.PlayTitle, &ref.Title, &ref.StartAt); err != nil {
			return nil, fmt.Errorf("postgres_ledger_repo_event_scan_failed: %w", err)
		}
		events = append(events, ref)
	}
	return events, rows.Err()
}

// SalesByEvent fetches the revenue-bearing line slices of the given events.
func (repository *PostgresRepository) SalesByEvent(context context.Context, eventIDs []string) (map[string][]SalesLine, error) {
	query := fmt.Sprintf(`SELECT %s::text, %s, %s, %s FROM %s WHERE %s = ANY($1)`,
		schema.FinanceReportLine.EventID, schema.FinanceReportLine.TicketsCount,
		schema.FinanceReportLine.GrossAmount, schema.FinanceReportLine.ServicePercent,
		schema.FinanceReportLine.Table, schema.FinanceReportLine.EventID)

	rows, err := repository.pool.Query(context, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres_ledger_repo_sales_failed: %w", dberr.Wrap(err, "sales_by_event"))
	}
	defer rows.Close()

	sales := make(map[string][]SalesLine)
	for rows.Next() {
		var eventID string
		var line SalesLine
		var servicePercent decimal.NullDecimal
		if err := rows.Scan(&eventID, &line.TicketsCount, &line.GrossAmount, &servicePercent); err != nil {
			return nil, fmt.Errorf("postgres_ledger_repo_sales_scan_failed: %w", err)
		}
		if servicePercent.Valid {
			percent := servicePercent.Decimal
			line.ServicePercent = &percent
		}
		sales[eventID] = append(sales[eventID], line)
	}
	return sales, rows.Err()
}

func expenseColumns() string {
	return fmt.Sprintf(`%s, %s::text, %s, %s, %s, COALESCE(%s, ''), %s, %s`,
		schema.FinanceEventExpense.ID, schema.FinanceEventExpense.EventID,
		schema.FinanceEventExpense.Category, schema.FinanceEventExpense.Title,
		schema.FinanceEventExpense.Amount, schema.FinanceEventExpense.Notes,
		schema.FinanceEventExpense.CreatedAt, schema.FinanceEventExpense.UpdatedAt)
}

func scanExpense(rows pgx.Rows) (Expense, error) {
	var expense Expense
	err := rows.Scan(
		&expense.ID,
		&expense.EventID,
		&expense.Category,
		&expense.Title,
		&expense.Amount,
		&expense.Notes,
		&expense.CreatedAt,
		&expense.UpdatedAt,
	)
	expense.CategoryLabel = expense.Category.Label()
	return expense, err
}

// ExpensesByEvent fetches the manual expenses of the given events.
func (repository *PostgresRepository) ExpensesByEvent(context context.Context, eventIDs []string) (map[string][]Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s DESC`,
		expenseColumns(), schema.FinanceEventExpense.Table,
		schema.FinanceEventExpense.EventID, schema.FinanceEventExpense.CreatedAt)

	rows, err := repository.pool.Query(context, query, eventIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres_ledger_repo_expenses_failed: %w", dberr.Wrap(err, "expenses_by_event"))
	}
	defer rows.Close()

	expenses := make(map[string][]Expense)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_ledger_repo_expense_scan_failed: %w", err)
		}
		expenses[expense.EventID] = append(expenses[expense.EventID], expense)
	}
	return expenses, rows.Err()
}

// ListExpenses returns one event's expenses, newest first.
func (repository *PostgresRepository) ListExpenses(context context.Context, eventID string) ([]Expense, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		expenseColumns(), schema.FinanceEventExpense.Table,
		schema.FinanceEventExpense.EventID, schema.FinanceEventExpense.CreatedAt)

	rows, err := repository.pool.Query(context, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("postgres_ledger_repo_list_expenses_failed: %w", dberr.Wrap(err, "list_expenses"))
	}
	defer rows.Close()

	expenses := make([]Expense, 0)
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres_ledger_repo_expense_scan_failed: %w", err)
		}
		expenses = append(expenses, expense)
	}
	return expenses, rows.Err()
}

// CreateExpense persists a new expense row.
func (repository *PostgresRepository) CreateExpense(context context.Context, expense *Expense) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8)`,
		schema.FinanceEventExpense.Table,
		schema.FinanceEventExpense.ID, schema.FinanceEventExpense.EventID,
		schema.FinanceEventExpense.Category, schema.FinanceEventExpense.Title,
		schema.FinanceEventExpense.Amount, schema.FinanceEventExpense.Notes,
		schema.FinanceEventExpense.CreatedAt, schema.FinanceEventExpense.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query,
		expense.ID, expense.EventID, expense.Category, expense.Title,
		expense.Amount, expense.Notes, expense.CreatedAt, expense.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_ledger_repo_create_expense_failed: %w", dberr.Wrap(err, "create_expense"))
	}
	return nil
}

// DeleteExpense removes one expense row.
func (repository *PostgresRepository) DeleteExpense(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.FinanceEventExpense.Table, schema.FinanceEventExpense.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_ledger_repo_delete_expense_failed: %w", dberr.Wrap(err, "delete_expense"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Expense")
	}
	return nil
}
