// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report

import (
	"bytes"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// # Spreadsheet Decoding
//
// The intickets xlsx has no fixed layout version, so the decoder locates
// everything by content: the worksheet by its normalized name, the header row
// by its column captions, and the summary totals by their numbered labels.
// Cells are read raw, which means date cells arrive as Excel serial numbers.

var whitespaceSequence = regexp.MustCompile(`\s+`)

// summaryLabelColumn and summaryValueColumn are the fixed positions of the
// numbered totals block below the session table (columns B and G).
const (
	summaryLabelColumn = 1
	summaryValueColumn = 6
)

// normalizeCell collapses whitespace, trims, casefolds and unifies ё→е so
// header captions match regardless of formatting quirks.
func normalizeCell(value string) string {
	normalized := whitespaceSequence.ReplaceAllString(value, " ")
	normalized = strings.TrimSpace(normalized)
	normalized = strings.ToLower(normalized)
	return strings.ReplaceAll(normalized, "ё", "е")
}

// headerColumns holds the column index of each recognized caption, -1 when
// the report does not carry the column.
type headerColumns struct {
	rowNumber      int
	playTitle      int
	sessionAt      int
	canceledInfo   int
	ticketsCount   int
	grossAmount    int
	servicePercent int
	partnerPercent int
}

func columnIndex(cells []string, match func(string) bool) int {
	for index, cell := range cells {
		if match(cell) {
			return index
		}
	}
	return -1
}

// findHeaderColumns scans every row for the session-table header. A row
// qualifies when it names the play, session time, ticket count and gross
// amount columns; everything else is optional.
func findHeaderColumns(rows [][]string) (int, *headerColumns) {
	for rowIndex, row := range rows {
		normalized := make([]string, len(row))
		for cellIndex, cell := range row {
			normalized[cellIndex] = normalizeCell(cell)
		}

		columns := &headerColumns{
			rowNumber: columnIndex(normalized, func(cell string) bool {
				return cell == "№ п/п" || cell == "n п/п" || cell == "nп/п"
			}),
			playTitle: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "мероприят")
			}),
			sessionAt: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "сеанс")
			}),
			canceledInfo: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "отмена") ||
					strings.Contains(cell, "перенос") ||
					strings.Contains(cell, "замена")
			}),
			ticketsCount: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "кол-во билетов") ||
					strings.Contains(cell, "количество билетов")
			}),
			grossAmount: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "сумма реализованных билетов")
			}),
			servicePercent: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "вознаграждение за услуги") && strings.Contains(cell, "%")
			}),
			partnerPercent: columnIndex(normalized, func(cell string) bool {
				return strings.Contains(cell, "вознаграждение за поручение") && strings.Contains(cell, "%")
			}),
		}

		if columns.playTitle >= 0 && columns.sessionAt >= 0 &&
			columns.ticketsCount >= 0 && columns.grossAmount >= 0 {
			return rowIndex, columns
		}
	}
	return -1, nil
}

// cellAt returns the raw cell at index, tolerating ragged rows.
func cellAt(row []string, index int) string {
	if index < 0 || index >= len(row) {
		return ""
	}
	return row[index]
}

// toFloat parses a numeric cell. It tolerates embedded spaces and a comma
// decimal separator. The second result is false for empty or non-numeric
// cells.
func toFloat(value string) (float64, bool) {
	cleaned := whitespaceSequence.ReplaceAllString(value, "")
	if cleaned == "" {
		return 0, false
	}
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	parsed, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsInf(parsed, 0) || math.IsNaN(parsed) {
		return 0, false
	}
	return parsed, true
}

// toDecimal parses a money cell with the same tolerance as [toFloat] but
// without a float round-trip.
func toDecimal(value string) (decimal.Decimal, bool) {
	cleaned := whitespaceSequence.ReplaceAllString(value, "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	parsed, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return parsed, true
}

// excelSerialEpoch is day zero of the 1900 date system.
var excelSerialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// parseSessionTime decodes a session cell. Accepted forms, in order:
// "DD.MM.YYYY HH:MM[:SS]", "DD.MM.YYYY", or an Excel serial number. Returns
// nil for anything else.
func parseSessionTime(value string) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}

	for _, layout := range []string{"02.01.2006 15:04:05", "02.01.2006 15:04", "02.01.2006"} {
		if parsed, err := time.ParseInLocation(layout, trimmed, time.Local); err == nil {
			return &parsed
		}
	}

	serial, err := strconv.ParseFloat(trimmed, 64)
	if err != nil || math.IsInf(serial, 0) || math.IsNaN(serial) {
		return nil
	}
	days := math.Floor(serial)
	seconds := math.Round((serial - days) * 24 * 60 * 60)
	parsed := excelSerialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(seconds) * time.Second)
	return &parsed
}

/*
Parse decodes an intickets xlsx report.

The worksheet whose normalized name is "отчет" is preferred, falling back to
the first sheet. A missing header row yields zero lines rather than an error;
the caller decides whether that is fatal.

Parameters:
  - data: the raw xlsx file

Returns:
  - *Parsed: Summary figures and session lines
  - error: Workbook decoding failures
*/
func Parse(data []byte) (*Parsed, error) {
	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("report_workbook_open_failed: %w", err)
	}
	defer workbook.Close()

	sheets := workbook.GetSheetList()
	if len(sheets) == 0 {
		return &Parsed{}, nil
	}
	sheet := sheets[0]
	for _, name := range sheets {
		if normalizeCell(name) == "отчет" {
			sheet = name
			break
		}
	}

	// Raw values keep date cells as serial numbers instead of whatever
	// display format the provider happened to apply.
	rows, err := workbook.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("report_sheet_read_failed: %w", err)
	}

	parsed := &Parsed{}

	headerIndex, columns := findHeaderColumns(rows)
	if columns == nil {
		return parsed, nil
	}

	for rowIndex := headerIndex + 1; rowIndex < len(rows); rowIndex++ {
		row := rows[rowIndex]

		// The row-number column doubles as the end-of-table sentinel. When
		// the report has no such column every row is considered.
		if columns.rowNumber >= 0 {
			if _, ok := toFloat(cellAt(row, columns.rowNumber)); !ok {
				break
			}
		}

		playTitle := strings.TrimSpace(cellAt(row, columns.playTitle))
		sessionAt := parseSessionTime(cellAt(row, columns.sessionAt))
		if playTitle == "" || sessionAt == nil {
			continue
		}

		line := ParsedLine{
			PlayTitle:    playTitle,
			SessionAt:    *sessionAt,
			CanceledInfo: strings.TrimSpace(cellAt(row, columns.canceledInfo)),
		}
		if tickets, ok := toFloat(cellAt(row, columns.ticketsCount)); ok {
			line.TicketsCount = int(math.Round(tickets))
		}
		if gross, ok := toDecimal(cellAt(row, columns.grossAmount)); ok {
			line.GrossAmount = gross
		}
		if columns.servicePercent >= 0 {
			if percent, ok := toDecimal(cellAt(row, columns.servicePercent)); ok {
				line.ServicePercent = &percent
			}
		}
		if columns.partnerPercent >= 0 {
			if percent, ok := toDecimal(cellAt(row, columns.partnerPercent)); ok {
				line.PartnerPercent = &percent
			}
		}

		parsed.Lines = append(parsed.Lines, line)
	}

	// The totals block sits below the table as numbered sentences; the
	// numbering is stable across layout revisions, the wording drifts.
	for _, row := range rows {
		label := normalizeCell(cellAt(row, summaryLabelColumn))
		switch {
		case strings.HasPrefix(label, "2.") && strings.Contains(label, "сумма реализованных билетов"):
			if value, ok := toDecimal(cellAt(row, summaryValueColumn)); ok {
				parsed.Meta.GrossSales = &value
			}
		case strings.HasPrefix(label, "3.") && strings.Contains(label, "вознаграждение составляет"):
			if value, ok := toDecimal(cellAt(row, summaryValueColumn)); ok {
				parsed.Meta.ServiceFee = &value
			}
		case strings.HasPrefix(label, "4.") && strings.Contains(label, "подлежащая перечислению"):
			if value, ok := toDecimal(cellAt(row, summaryValueColumn)); ok {
				parsed.Meta.NetToOrganizer = &value
			}
		}
	}

	return parsed, nil
}
