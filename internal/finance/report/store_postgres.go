// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package report (Postgres) implements the storage layer for finance reports.

# Schema Table Mapping
  - finance.financereport: One row per imported file.
  - finance.financereportline: Session lines, linked to core.event.
  - core.play, core.event: Written to when the import auto-creates them.
*/
package report

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/constants"
	"github.com/ammateam/callboard/internal/platform/database/schema"
	"github.com/ammateam/callboard/internal/platform/dberr"
	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// fingerprintConstraint is the unique constraint that guards against
// importing the same file twice.
const fingerprintConstraint = "financereport_fingerprint_key"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for report
// storage.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// # Scan Helpers

func decimalPtr(value decimal.NullDecimal) *decimal.Decimal {
	if !value.Valid {
		return nil
	}
	return &value.Decimal
}

func nullDecimal(value *decimal.Decimal) decimal.NullDecimal {
	if value == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *value, Valid: true}
}

// reportColumns is the shared SELECT list for hydrating a Report, with the
// line count subquery included.
func reportColumns() string {
	return fmt.Sprintf(`r.%s, r.%s, r.%s, r.%s, r.%s,
		r.%s, r.%s, r.%s, r.%s,
		COALESCE(r.%s, ''), COALESCE(r.%s, ''), r.%s, r.%s, r.%s, r.%s,
		(SELECT COUNT(*) FROM %s l WHERE l.%s = r.%s)`,
		schema.FinanceReport.ID, schema.FinanceReport.Source, schema.FinanceReport.Fingerprint,
		schema.FinanceReport.OriginalFilename, schema.FinanceReport.StoragePath,
		schema.FinanceReport.GrossSales, schema.FinanceReport.ServiceFee,
		schema.FinanceReport.NetToOrganizer, schema.FinanceReport.RefundsAmount,
		schema.FinanceReport.ReportNo, schema.FinanceReport.ContractNo,
		schema.FinanceReport.ReportDate, schema.FinanceReport.PeriodStart,
		schema.FinanceReport.PeriodEnd, schema.FinanceReport.ImportedAt,
		schema.FinanceReportLine.Table, schema.FinanceReportLine.ReportID, schema.FinanceReport.ID,
	)
}

func scanReport(row pgx.Row) (*Report, error) {
	report := &Report{}
	var grossSales, serviceFee, netToOrganizer, refundsAmount decimal.NullDecimal

	err := row.Scan(
		&report.ID,
		&report.Source,
		&report.Fingerprint,
		&report.OriginalFilename,
		&report.StoragePath,
		&grossSales,
		&serviceFee,
		&netToOrganizer,
		&refundsAmount,
		&report.ReportNo,
		&report.ContractNo,
		&report.ReportDate,
		&report.PeriodStart,
		&report.PeriodEnd,
		&report.ImportedAt,
		&report.LinesCount,
	)
	if err != nil {
		return nil, err
	}

	report.GrossSales = decimalPtr(grossSales)
	report.ServiceFee = decimalPtr(serviceFee)
	report.NetToOrganizer = decimalPtr(netToOrganizer)
	report.RefundsAmount = decimalPtr(refundsAmount)
	return report, nil
}

// # Repository Implementation

// List returns one page of reports, newest import first.
func (repository *PostgresRepository) List(context context.Context, page pagination.Params) ([]Report, int, error) {
	countSQL := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, schema.FinanceReport.Table)

	var total int
	if err := repository.pool.QueryRow(context, countSQL).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_report_repo_count_failed: %w", dberr.Wrap(err, "count"))
	}

	listSQL := fmt.Sprintf(`SELECT %s FROM %s r ORDER BY r.%s DESC LIMIT $1 OFFSET $2`,
		reportColumns(), schema.FinanceReport.Table, schema.FinanceReport.ImportedAt)

	rows, err := repository.pool.Query(context, listSQL, page.Limit, page.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_report_repo_list_failed: %w", dberr.Wrap(err, "list"))
	}
	defer rows.Close()

	reports := make([]Report, 0)
	for rows.Next() {
		report, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_report_repo_scan_failed: %w", err)
		}
		reports = append(reports, *report)
	}
	return reports, total, rows.Err()
}

// FindByID retrieves one report by its primary key.
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`,
		reportColumns(), schema.FinanceReport.Table, schema.FinanceReport.ID)

	report, err := scanReport(repository.pool.QueryRow(context, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Report")
		}
		return nil, fmt.Errorf("postgres_report_repo_find_by_id_failed: %w", err)
	}
	return report, nil
}

// FindByFingerprint retrieves one report by its content hash.
func (repository *PostgresRepository) FindByFingerprint(context context.Context, fingerprint string) (*Report, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s r WHERE r.%s = $1`,
		reportColumns(), schema.FinanceReport.Table, schema.FinanceReport.Fingerprint)

	report, err := scanReport(repository.pool.QueryRow(context, query, fingerprint))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Report")
		}
		return nil, fmt.Errorf("postgres_report_repo_find_by_fingerprint_failed: %w", err)
	}
	return report, nil
}

// ListLines returns every session line of a report ordered by session time.
func (repository *PostgresRepository) ListLines(context context.Context, reportID string) ([]Line, error) {
	query := fmt.Sprintf(`SELECT %s, %s, COALESCE(%s::text, ''), %s, %s, COALESCE(%s, ''),
			%s, %s, %s, %s, %s
		FROM %s WHERE %s = $1 ORDER BY %s, %s`,
		schema.FinanceReportLine.ID, schema.FinanceReportLine.ReportID,
		schema.FinanceReportLine.EventID, schema.FinanceReportLine.PlayTitle,
		schema.FinanceReportLine.SessionAt, schema.FinanceReportLine.CanceledInfo,
		schema.FinanceReportLine.TicketsCount, schema.FinanceReportLine.GrossAmount,
		schema.FinanceReportLine.ServicePercent, schema.FinanceReportLine.PartnerPercent,
		schema.FinanceReportLine.CreatedAt,
		schema.FinanceReportLine.Table, schema.FinanceReportLine.ReportID,
		schema.FinanceReportLine.SessionAt, schema.FinanceReportLine.PlayTitle,
	)

	rows, err := repository.pool.Query(context, query, reportID)
	if err != nil {
		return nil, fmt.Errorf("postgres_report_repo_lines_failed: %w", dberr.Wrap(err, "lines"))
	}
	defer rows.Close()

	lines := make([]Line, 0)
	for rows.Next() {
		var line Line
		var servicePercent, partnerPercent decimal.NullDecimal
		err := rows.Scan(
			&line.ID,
			&line.ReportID,
			&line.EventID,
			&line.PlayTitle,
			&line.SessionAt,
			&line.CanceledInfo,
			&line.TicketsCount,
			&line.GrossAmount,
			&servicePercent,
			&partnerPercent,
			&line.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_report_repo_line_scan_failed: %w", err)
		}
		line.ServicePercent = decimalPtr(servicePercent)
		line.PartnerPercent = decimalPtr(partnerPercent)
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// ImportTx persists a report with all of its lines in one transaction,
// auto-creating plays and events the calendar does not know yet.
func (repository *PostgresRepository) ImportTx(context context.Context, report *Report, lines []ParsedLine) (*ImportStats, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres_report_repo_tx_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	insertReportSQL := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NULLIF($10, ''), NULLIF($11, ''), $12, $13, $14, $15)`,
		schema.FinanceReport.Table,
		schema.FinanceReport.ID, schema.FinanceReport.Source, schema.FinanceReport.Fingerprint,
		schema.FinanceReport.OriginalFilename, schema.FinanceReport.StoragePath,
		schema.FinanceReport.GrossSales, schema.FinanceReport.ServiceFee,
		schema.FinanceReport.NetToOrganizer, schema.FinanceReport.RefundsAmount,
		schema.FinanceReport.ReportNo, schema.FinanceReport.ContractNo,
		schema.FinanceReport.ReportDate, schema.FinanceReport.PeriodStart,
		schema.FinanceReport.PeriodEnd, schema.FinanceReport.ImportedAt,
	)

	_, err = tx.Exec(context, insertReportSQL,
		report.ID, report.Source, report.Fingerprint,
		report.OriginalFilename, report.StoragePath,
		nullDecimal(report.GrossSales), nullDecimal(report.ServiceFee),
		nullDecimal(report.NetToOrganizer), nullDecimal(report.RefundsAmount),
		report.ReportNo, report.ContractNo,
		report.ReportDate, report.PeriodStart, report.PeriodEnd, report.ImportedAt,
	)
	if err != nil {
		if dberr.IsUniqueViolation(err, fingerprintConstraint) {
			return nil, repository.duplicateOf(context, report.Fingerprint)
		}
		return nil, fmt.Errorf("postgres_report_repo_insert_failed: %w", dberr.Wrap(err, "insert_report"))
	}

	findPlaySQL := fmt.Sprintf(`SELECT %s FROM %s WHERE lower(%s) = lower($1) LIMIT 1`,
		schema.CorePlay.ID, schema.CorePlay.Table, schema.CorePlay.Title)
	insertPlaySQL := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s) VALUES ($1, $2, '', $3, $3)
		ON CONFLICT (lower(%s)) DO NOTHING`,
		schema.CorePlay.Table, schema.CorePlay.ID, schema.CorePlay.Title,
		schema.CorePlay.Description, schema.CorePlay.CreatedAt, schema.CorePlay.UpdatedAt,
		schema.CorePlay.Title)
	findEventSQL := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s >= $2 AND %s <= $3 ORDER BY %s LIMIT 1`,
		schema.CoreEvent.ID, schema.CoreEvent.Table, schema.CoreEvent.PlayID,
		schema.CoreEvent.StartAt, schema.CoreEvent.StartAt, schema.CoreEvent.StartAt)
	insertEventSQL := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, NULL, $3, 'SHOW', 'CONFIRMED', $4, NULL, '', $5, $5)`,
		schema.CoreEvent.Table,
		schema.CoreEvent.ID, schema.CoreEvent.PlayID, schema.CoreEvent.VenueID,
		schema.CoreEvent.Title, schema.CoreEvent.Type, schema.CoreEvent.Status,
		schema.CoreEvent.StartAt, schema.CoreEvent.EndAt, schema.CoreEvent.Notes,
		schema.CoreEvent.CreatedAt, schema.CoreEvent.UpdatedAt,
	)
	insertLineSQL := fmt.Sprintf(`INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		schema.FinanceReportLine.Table,
		schema.FinanceReportLine.ID, schema.FinanceReportLine.ReportID,
		schema.FinanceReportLine.EventID, schema.FinanceReportLine.PlayTitle,
		schema.FinanceReportLine.SessionAt, schema.FinanceReportLine.CanceledInfo,
		schema.FinanceReportLine.TicketsCount, schema.FinanceReportLine.GrossAmount,
		schema.FinanceReportLine.ServicePercent, schema.FinanceReportLine.PartnerPercent,
		schema.FinanceReportLine.CreatedAt,
	)

	stats := &ImportStats{}
	now := time.Now()

	for _, line := range lines {
		var playID string
		err := tx.QueryRow(context, findPlaySQL, line.PlayTitle).Scan(&playID)
		if errors.Is(err, pgx.ErrNoRows) {
			playID = uuidv7.New()
			tag, err := tx.Exec(context, insertPlaySQL, playID, line.PlayTitle, now)
			if err != nil {
				return nil, fmt.Errorf("postgres_report_repo_create_play_failed: %w", dberr.Wrap(err, "create_play"))
			}
			if tag.RowsAffected() == 0 {
				// Lost the insert race; the play exists now.
				if err := tx.QueryRow(context, findPlaySQL, line.PlayTitle).Scan(&playID); err != nil {
					return nil, fmt.Errorf("postgres_report_repo_find_play_failed: %w", err)
				}
			} else {
				stats.CreatedPlays++
			}
		} else if err != nil {
			return nil, fmt.Errorf("postgres_report_repo_find_play_failed: %w", err)
		}

		windowStart := line.SessionAt.Add(-constants.EventMatchTolerance)
		windowEnd := line.SessionAt.Add(constants.EventMatchTolerance)

		var eventID string
		err = tx.QueryRow(context, findEventSQL, playID, windowStart, windowEnd).Scan(&eventID)
		if errors.Is(err, pgx.ErrNoRows) {
			eventID = uuidv7.New()
			if _, err := tx.Exec(context, insertEventSQL, eventID, playID, line.PlayTitle, line.SessionAt, now); err != nil {
				return nil, fmt.Errorf("postgres_report_repo_create_event_failed: %w", dberr.Wrap(err, "create_event"))
			}
			stats.CreatedEvents++
		} else if err != nil {
			return nil, fmt.Errorf("postgres_report_repo_find_event_failed: %w", err)
		}

		_, err = tx.Exec(context, insertLineSQL,
			uuidv7.New(), report.ID, eventID,
			line.PlayTitle, line.SessionAt, line.CanceledInfo,
			line.TicketsCount, line.GrossAmount,
			nullDecimal(line.ServicePercent), nullDecimal(line.PartnerPercent),
			now,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_report_repo_insert_line_failed: %w", dberr.Wrap(err, "insert_line"))
		}
		stats.Lines++
	}

	if err := tx.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres_report_repo_tx_commit_failed: %w", err)
	}
	return stats, nil
}

// duplicateOf builds the structured duplicate error for a fingerprint that
// lost the insert race. The lookup runs on the pool because the transaction
// is already aborted.
func (repository *PostgresRepository) duplicateOf(context context.Context, fingerprint string) error {
	existing, err := repository.FindByFingerprint(context, fingerprint)
	if err != nil {
		return apperr.Duplicate("This report has already been imported", "")
	}
	return apperr.Duplicate("This report has already been imported", existing.ID)
}

// Delete removes a report and its lines in one transaction.
func (repository *PostgresRepository) Delete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_report_repo_tx_begin_failed: %w", err)
	}
	defer tx.Rollback(context)

	deleteLinesSQL := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.FinanceReportLine.Table, schema.FinanceReportLine.ReportID)
	if _, err := tx.Exec(context, deleteLinesSQL, id); err != nil {
		return fmt.Errorf("postgres_report_repo_delete_lines_failed: %w", dberr.Wrap(err, "delete_lines"))
	}

	deleteReportSQL := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.FinanceReport.Table, schema.FinanceReport.ID)
	tag, err := tx.Exec(context, deleteReportSQL, id)
	if err != nil {
		return fmt.Errorf("postgres_report_repo_delete_failed: %w", dberr.Wrap(err, "delete_report"))
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Report")
	}

	return tx.Commit(context)
}
