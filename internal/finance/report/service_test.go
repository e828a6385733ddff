// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report_test

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammateam/callboard/internal/finance/report"
	"github.com/ammateam/callboard/internal/platform/apperr"
	"github.com/ammateam/callboard/internal/platform/constants"
	"github.com/ammateam/callboard/pkg/pagination"
)

// fakeRepository keeps reports in memory and mirrors the storage contract:
// fingerprint uniqueness, play find-or-create by exact title, and event
// matching within the session tolerance across imports.
type fakeRepository struct {
	reports       map[string]*report.Report
	plays         map[string]bool
	eventStarts   map[string][]time.Time
	linesByReport map[string][]report.Line
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		reports:       make(map[string]*report.Report),
		plays:         make(map[string]bool),
		eventStarts:   make(map[string][]time.Time),
		linesByReport: make(map[string][]report.Line),
	}
}

func (fake *fakeRepository) List(_ context.Context, _ pagination.Params) ([]report.Report, int, error) {
	reports := make([]report.Report, 0, len(fake.reports))
	for _, entity := range fake.reports {
		reports = append(reports, *entity)
	}
	return reports, len(reports), nil
}

func (fake *fakeRepository) FindByID(_ context.Context, id string) (*report.Report, error) {
	for _, entity := range fake.reports {
		if entity.ID == id {
			return entity, nil
		}
	}
	return nil, apperr.NotFound("Report")
}

func (fake *fakeRepository) FindByFingerprint(_ context.Context, fingerprint string) (*report.Report, error) {
	if entity, ok := fake.reports[fingerprint]; ok {
		return entity, nil
	}
	return nil, apperr.NotFound("Report")
}

func (fake *fakeRepository) ListLines(_ context.Context, reportID string) ([]report.Line, error) {
	return fake.linesByReport[reportID], nil
}

func (fake *fakeRepository) ImportTx(_ context.Context, entity *report.Report, lines []report.ParsedLine) (*report.ImportStats, error) {
	if existing, ok := fake.reports[entity.Fingerprint]; ok {
		return nil, apperr.Duplicate("This report has already been imported", existing.ID)
	}

	stats := &report.ImportStats{}
	for _, line := range lines {
		if !fake.plays[line.PlayTitle] {
			fake.plays[line.PlayTitle] = true
			stats.CreatedPlays++
		}

		matched := false
		for _, startAt := range fake.eventStarts[line.PlayTitle] {
			delta := line.SessionAt.Sub(startAt)
			if delta < 0 {
				delta = -delta
			}
			if delta <= constants.EventMatchTolerance {
				matched = true
				break
			}
		}
		if !matched {
			fake.eventStarts[line.PlayTitle] = append(fake.eventStarts[line.PlayTitle], line.SessionAt)
			stats.CreatedEvents++
		}

		fake.linesByReport[entity.ID] = append(fake.linesByReport[entity.ID], report.Line{
			ReportID:  entity.ID,
			PlayTitle: line.PlayTitle,
			SessionAt: line.SessionAt,
		})
		stats.Lines++
	}

	fake.reports[entity.Fingerprint] = entity
	return stats, nil
}

func (fake *fakeRepository) Delete(_ context.Context, id string) error {
	for fingerprint, entity := range fake.reports {
		if entity.ID == id {
			delete(fake.reports, fingerprint)
			delete(fake.linesByReport, id)
			return nil
		}
	}
	return apperr.NotFound("Report")
}

// fakeFileStore records saved names without touching the disk.
type fakeFileStore struct {
	saved []string
}

func (fake *fakeFileStore) Save(_ context.Context, originalName string, _ []byte) (string, error) {
	fake.saved = append(fake.saved, originalName)
	return fmt.Sprintf("/uploads/%d_%s", len(fake.saved), originalName), nil
}

func newReportService() (*report.Service, *fakeRepository, *fakeFileStore) {
	repository := newFakeRepository()
	files := &fakeFileStore{}
	service := report.NewService(repository, files, slog.Default())
	return service, repository, files
}

/*
TestImport_EndToEndCounts runs a full import of a two-session file and
checks the created plays, events, lines and the archived copy.
*/
func TestImport_EndToEndCounts(t *testing.T) {
	service, _, files := newReportService()

	data := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:00", nil, 100, 1000, 10, nil},
		{2, "Гроза", "16.09.2026 19:00", nil, 50, 500, 10, nil},
	})

	result, err := service.Import(context.Background(), "report.xlsx", data)
	require.NoError(t, err)

	assert.NotEmpty(t, result.ReportID)
	assert.NotEmpty(t, result.Fingerprint)
	assert.Equal(t, 2, result.Lines)
	assert.Equal(t, 1, result.CreatedPlays)
	assert.Equal(t, 2, result.CreatedEvents)
	assert.Equal(t, []string{"report.xlsx"}, files.saved)

	detail, err := service.Get(context.Background(), result.ReportID)
	require.NoError(t, err)
	assert.Len(t, detail.Lines, 2)
	assert.Equal(t, constants.ReportSource, detail.Source)
}

/*
TestImport_DuplicateIsStructured: the second upload of the same file is
refused with the first report's identity, and nothing is archived twice.
*/
func TestImport_DuplicateIsStructured(t *testing.T) {
	service, _, files := newReportService()

	data := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:00", nil, 100, 1000, 10, nil},
	})

	first, err := service.Import(context.Background(), "report.xlsx", data)
	require.NoError(t, err)

	_, err = service.Import(context.Background(), "report-copy.xlsx", data)
	require.Error(t, err)
	require.True(t, apperr.IsDuplicate(err))
	assert.Equal(t, first.ReportID, apperr.As(err).ExistingID)
	assert.Len(t, files.saved, 1)
}

/*
TestImport_MatchesEventsWithinTolerance: a follow-up report whose session
time differs by a minute reuses the event created by the first import.
*/
func TestImport_MatchesEventsWithinTolerance(t *testing.T) {
	service, _, _ := newReportService()

	first := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:00", nil, 100, 1000, 10, nil},
	})
	_, err := service.Import(context.Background(), "first.xlsx", first)
	require.NoError(t, err)

	nearby := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:01", nil, 100, 2000, 10, nil},
	})
	result, err := service.Import(context.Background(), "second.xlsx", nearby)
	require.NoError(t, err)
	assert.Equal(t, 0, result.CreatedPlays)
	assert.Equal(t, 0, result.CreatedEvents)

	farAway := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:05", nil, 100, 3000, 10, nil},
	})
	result, err = service.Import(context.Background(), "third.xlsx", farAway)
	require.NoError(t, err)
	assert.Equal(t, 1, result.CreatedEvents)
}

/*
TestImport_UnrecognizableFileIsParseError: a workbook without the session
table is rejected before anything is archived.
*/
func TestImport_UnrecognizableFileIsParseError(t *testing.T) {
	service, _, files := newReportService()

	data := buildReportFile(t, nil)

	_, err := service.Import(context.Background(), "empty.xlsx", data)
	require.Error(t, err)
	require.NotNil(t, apperr.As(err))
	assert.Equal(t, "PARSE_ERROR", apperr.As(err).Code)
	assert.Empty(t, files.saved)
}
