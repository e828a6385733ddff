// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

/*
Package report implements ticketing-report ingestion for the finance module.

A report arrives as an xlsx file exported by the Intickets provider. The
package parses it into session lines, derives a content fingerprint for
deduplication, archives the original file, and links every line to a calendar
event, auto-creating plays and events that the calendar does not know yet.

Core model:

  - Report: One imported file with its provider summary figures.
  - Line: One session row of a report, linked to a core.event.
  - Parsed: The provider-agnostic result of decoding a spreadsheet.
*/
package report

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/pkg/pagination"
)

// # Entities

// Report represents one imported ticketing report.
type Report struct {
	// ID is the report's unique identifier (UUIDv7).
	ID string `json:"id"`
	// Source identifies the ticketing provider the file came from.
	Source string `json:"source"`
	// Fingerprint is the SHA-256 content hash used for deduplication.
	Fingerprint string `json:"fingerprint"`
	// OriginalFilename is the name the file was uploaded under.
	OriginalFilename string `json:"original_filename"`
	// StoragePath is where the archived copy of the file lives.
	StoragePath string `json:"storage_path"`
	// GrossSales is the provider's own total of sold tickets, when stated.
	GrossSales *decimal.Decimal `json:"gross_sales"`
	// ServiceFee is the provider's own commission total, when stated.
	ServiceFee *decimal.Decimal `json:"service_fee"`
	// NetToOrganizer is the amount the provider transfers, when stated.
	NetToOrganizer *decimal.Decimal `json:"net_to_organizer"`
	// RefundsAmount is the refunded total, when stated.
	RefundsAmount *decimal.Decimal `json:"refunds_amount"`
	// ReportNo is the provider's document number, when stated.
	ReportNo string `json:"report_no"`
	// ContractNo is the contract the report settles, when stated.
	ContractNo string `json:"contract_no"`
	// ReportDate is the document date, when stated.
	ReportDate *time.Time `json:"report_date"`
	// PeriodStart is the start of the reporting period, when stated.
	PeriodStart *time.Time `json:"period_start"`
	// PeriodEnd is the end of the reporting period, when stated.
	PeriodEnd *time.Time `json:"period_end"`
	// ImportedAt is when the file was ingested.
	ImportedAt time.Time `json:"imported_at"`
	// LinesCount is the number of session lines stored for the report.
	LinesCount int `json:"lines_count"`
}

// Line represents one session row of an imported report.
type Line struct {
	// ID is the line's unique identifier (UUIDv7).
	ID string `json:"id"`
	// ReportID is the owning report's ID.
	ReportID string `json:"report_id"`
	// EventID is the calendar event the session was linked to. Empty when
	// the event was deleted after import.
	EventID string `json:"event_id"`
	// PlayTitle is the play title exactly as printed in the report.
	PlayTitle string `json:"play_title"`
	// SessionAt is the session date and time.
	SessionAt time.Time `json:"session_at"`
	// CanceledInfo carries the provider's cancellation/replacement note.
	CanceledInfo string `json:"canceled_info"`
	// TicketsCount is the number of sold tickets.
	TicketsCount int `json:"tickets_count"`
	// GrossAmount is the gross revenue of the session.
	GrossAmount decimal.Decimal `json:"gross_amount"`
	// ServicePercent is the provider's service commission, nil when the
	// report does not carry the column.
	ServicePercent *decimal.Decimal `json:"service_percent"`
	// PartnerPercent is the partner commission, nil when absent.
	PartnerPercent *decimal.Decimal `json:"partner_percent"`
	// CreatedAt is when the line was stored.
	CreatedAt time.Time `json:"created_at"`
}

// # Parsed Spreadsheet

// ParsedMeta holds the summary figures a report states about itself.
// The intickets layout only ever fills the three money totals; the document
// fields are kept for providers that state them.
type ParsedMeta struct {
	GrossSales     *decimal.Decimal
	ServiceFee     *decimal.Decimal
	NetToOrganizer *decimal.Decimal
	ReportNo       string
	ContractNo     string
	ReportDate     *time.Time
	PeriodStart    *time.Time
	PeriodEnd      *time.Time
}

// ParsedLine is one decoded session row.
type ParsedLine struct {
	PlayTitle      string
	SessionAt      time.Time
	CanceledInfo   string
	TicketsCount   int
	GrossAmount    decimal.Decimal
	ServicePercent *decimal.Decimal
	PartnerPercent *decimal.Decimal
}

// Parsed is the result of decoding a report spreadsheet.
type Parsed struct {
	Meta  ParsedMeta
	Lines []ParsedLine
}

// # Storage Contracts

// ImportStats summarizes what one import transaction created.
type ImportStats struct {
	// Lines is the number of session lines stored.
	Lines int
	// CreatedPlays is how many plays were auto-created from line titles.
	CreatedPlays int
	// CreatedEvents is how many calendar events were auto-created.
	CreatedEvents int
}

// Repository defines the persistence contract for finance reports.
type Repository interface {
	/*
		List returns imported reports, newest first.

		Parameters:
		  - context: context.Context
		  - page: pagination parameters

		Returns:
		  - []Report: One page of reports with line counts
		  - int: Total number of reports
		  - error: Storage failures
	*/
	List(context context.Context, page pagination.Params) ([]Report, int, error)

	/*
		FindByID retrieves a single report.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *Report: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*Report, error)

	/*
		FindByFingerprint retrieves a report by its content hash.

		Parameters:
		  - context: context.Context
		  - fingerprint: string

		Returns:
		  - *Report: Hydrated entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByFingerprint(context context.Context, fingerprint string) (*Report, error)

	/*
		ListLines returns all session lines of a report ordered by session time.

		Parameters:
		  - context: context.Context
		  - reportID: string

		Returns:
		  - []Line: Session lines
		  - error: Storage failures
	*/
	ListLines(context context.Context, reportID string) ([]Line, error)

	/*
		ImportTx persists a report and its lines in a single transaction.

		Per line it finds the play by exact title or creates it, finds an event
		of that play starting within the match tolerance or creates a confirmed
		show, and inserts the line linked to that event. A fingerprint collision
		aborts the transaction and surfaces as a structured duplicate carrying
		the existing report's identity.

		Parameters:
		  - context: context.Context
		  - report: the report row to insert
		  - lines: parsed session lines

		Returns:
		  - *ImportStats: Line and auto-creation counts
		  - error: apperr.Duplicate, constraint or storage failures
	*/
	ImportTx(context context.Context, report *Report, lines []ParsedLine) (*ImportStats, error)

	/*
		Delete removes a report and its lines in one transaction.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: apperr.NotFound or storage failures
	*/
	Delete(context context.Context, id string) error
}

// FileStore archives uploaded report files. The import pipeline only sees
// the returned storage path; the mechanism behind it is interchangeable.
type FileStore interface {
	/*
		Save persists an uploaded file under a collision-free name.

		Parameters:
		  - context: context.Context
		  - originalName: the client-supplied file name
		  - data: file contents

		Returns:
		  - string: Storage path of the archived copy
		  - error: I/O failures
	*/
	Save(context context.Context, originalName string, data []byte) (string, error)
}
