// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/constants"
	"github.com/ammateam/callboard/pkg/pagination"
	"github.com/ammateam/callboard/pkg/uuidv7"
)

// # Service Layer

// Service orchestrates report ingestion and retrieval.
type Service struct {
	repository Repository
	files      FileStore
	logger     *slog.Logger
}

// NewService constructs a new report [Service].
func NewService(repository Repository, files FileStore, logger *slog.Logger) *Service {
	return &Service{repository: repository, files: files, logger: logger}
}

// ImportResult summarizes a successful import.
type ImportResult struct {
	// ReportID is the persisted report's identifier.
	ReportID string `json:"report_id"`
	// Fingerprint is the content hash the report was registered under.
	Fingerprint string `json:"fingerprint"`
	// Lines is the number of session lines stored.
	Lines int `json:"lines"`
	// CreatedPlays is how many plays were auto-created.
	CreatedPlays int `json:"created_plays"`
	// CreatedEvents is how many calendar events were auto-created.
	CreatedEvents int `json:"created_events"`
}

/*
Import ingests an uploaded xlsx report end to end.

Pipeline: parse, fingerprint, duplicate pre-check, archive the file, then a
single storage transaction that inserts the report, auto-creates missing
plays and events, and stores every line. A concurrent import of the same
file loses the fingerprint race inside the transaction and surfaces as the
same structured duplicate the pre-check produces.

Parameters:
  - context: context.Context
  - originalName: the client-supplied file name
  - data: raw xlsx contents

Returns:
  - *ImportResult: Identity and creation counts
  - error: apperr.ParseError, apperr.Duplicate or storage failures
*/
func (service *Service) Import(context context.Context, originalName string, data []byte) (*ImportResult, error) {
	parsed, err := Parse(data)
	if err != nil {
		return nil, apperr.ParseError("Could not read the spreadsheet")
	}
	if len(parsed.Lines) == 0 {
		return nil, apperr.ParseError("No session rows were recognized in the report")
	}

	fingerprint := Fingerprint(parsed)

	existing, err := service.repository.FindByFingerprint(context, fingerprint)
	if err == nil {
		return nil, apperr.Duplicate("This report has already been imported", existing.ID)
	}
	if ae := apperr.As(err); ae == nil || ae.Code != "NOT_FOUND" {
		return nil, fmt.Errorf("report_service_fingerprint_check_failed: %w", err)
	}

	storagePath, err := service.files.Save(context, originalName, data)
	if err != nil {
		return nil, fmt.Errorf("report_service_archive_failed: %w", err)
	}

	entity := &Report{
		ID:               uuidv7.New(),
		Source:           constants.ReportSource,
		Fingerprint:      fingerprint,
		OriginalFilename: originalName,
		StoragePath:      storagePath,
		GrossSales:       parsed.Meta.GrossSales,
		ServiceFee:       parsed.Meta.ServiceFee,
		NetToOrganizer:   parsed.Meta.NetToOrganizer,
		ReportNo:         parsed.Meta.ReportNo,
		ContractNo:       parsed.Meta.ContractNo,
		ReportDate:       parsed.Meta.ReportDate,
		PeriodStart:      parsed.Meta.PeriodStart,
		PeriodEnd:        parsed.Meta.PeriodEnd,
		ImportedAt:       time.Now(),
	}

	stats, err := service.repository.ImportTx(context, entity, parsed.Lines)
	if err != nil {
		if apperr.IsDuplicate(err) {
			return nil, err
		}
		return nil, fmt.Errorf("report_service_import_failed: %w", err)
	}

	service.logger.Info("report_imported",
		slog.String("report_id", entity.ID),
		slog.String("fingerprint", fingerprint),
		slog.Int("lines", stats.Lines),
		slog.Int("created_plays", stats.CreatedPlays),
		slog.Int("created_events", stats.CreatedEvents),
	)

	return &ImportResult{
		ReportID:      entity.ID,
		Fingerprint:   fingerprint,
		Lines:         stats.Lines,
		CreatedPlays:  stats.CreatedPlays,
		CreatedEvents: stats.CreatedEvents,
	}, nil
}

/*
List returns imported reports, newest first.

Parameters:
  - context: context.Context
  - page: pagination parameters

Returns:
  - []Report: One page of reports
  - pagination.Meta: Page metadata
  - error: Storage failures
*/
func (service *Service) List(context context.Context, page pagination.Params) ([]Report, pagination.Meta, error) {
	reports, total, err := service.repository.List(context, page)
	if err != nil {
		return nil, pagination.Meta{}, fmt.Errorf("report_service_list_failed: %w", err)
	}
	return reports, pagination.NewMeta(page.Page, page.Limit, total), nil
}

// Detail is a report together with all of its session lines.
type Detail struct {
	Report
	Lines []Line `json:"lines"`
}

/*
Get retrieves a report with its session lines.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Detail: Report and lines ordered by session time
  - error: Not found or storage failures
*/
func (service *Service) Get(context context.Context, id string) (*Detail, error) {
	entity, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("report_service_get_failed: %w", err)
	}

	lines, err := service.repository.ListLines(context, id)
	if err != nil {
		return nil, fmt.Errorf("report_service_lines_failed: %w", err)
	}

	return &Detail{Report: *entity, Lines: lines}, nil
}

/*
Delete removes a report and all of its lines. The archived file is kept;
only the database rows go away.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Not found or storage failures
*/
func (service *Service) Delete(context context.Context, id string) error {
	if err := service.repository.Delete(context, id); err != nil {
		return fmt.Errorf("report_service_delete_failed: %w", err)
	}

	service.logger.Info("report_deleted", slog.String("report_id", id))

	return nil
}
