// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ammateam/callboard/internal/finance/report"
)

// buildReportFile renders a typical provider report: preamble, the session
// table with the given data rows, an "Итого" terminator, and the numbered
// totals block. The worksheet is deliberately not the first one.
func buildReportFile(t *testing.T, dataRows [][]interface{}) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	_, err := file.NewSheet("Отчёт")
	require.NoError(t, err)

	// Decoy content on the first sheet; the parser must skip past it.
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]interface{}{"черновик"}))

	require.NoError(t, file.SetSheetRow("Отчёт", "A1",
		&[]interface{}{"Отчет о реализации билетов"}))
	require.NoError(t, file.SetSheetRow("Отчёт", "A4", &[]interface{}{
		"№ п/п",
		"Наименование мероприятия",
		"Дата и время сеанса",
		"Отмена/перенос/замена",
		"Кол-во билетов, шт.",
		"Сумма реализованных билетов, руб.",
		"Вознаграждение за услуги по продаже билетов, 10%, руб.",
		"Вознаграждение за поручение, %, руб.",
	}))

	rowIndex := 5
	for _, row := range dataRows {
		cell, err := excelize.CoordinatesToCellName(1, rowIndex)
		require.NoError(t, err)
		rowCopy := row
		require.NoError(t, file.SetSheetRow("Отчёт", cell, &rowCopy))
		rowIndex++
	}

	terminator := []interface{}{"Итого"}
	cell, err := excelize.CoordinatesToCellName(1, rowIndex)
	require.NoError(t, err)
	require.NoError(t, file.SetSheetRow("Отчёт", cell, &terminator))

	summaryStart := rowIndex + 2
	summaries := [][]interface{}{
		{nil, "2. Сумма реализованных билетов составила:", nil, nil, nil, nil, 150000.50},
		{nil, "3. Вознаграждение составляет 10%:", nil, nil, nil, nil, 15000.05},
		{nil, "4. Сумма, подлежащая перечислению Организатору:", nil, nil, nil, nil, 135000.45},
	}
	for offset, summary := range summaries {
		cell, err := excelize.CoordinatesToCellName(1, summaryStart+offset)
		require.NoError(t, err)
		summaryCopy := summary
		require.NoError(t, file.SetSheetRow("Отчёт", cell, &summaryCopy))
	}

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)
	return buffer.Bytes()
}

/*
TestParse_SessionTableAndSummary decodes a representative report: a text
date with formatted numbers, and an Excel serial date with a cancellation
note. The totals block below the table must land in the meta.
*/
func TestParse_SessionTableAndSummary(t *testing.T) {
	data := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:00", nil, 120, "150 000,50", 10, 0},
		{2, "Чайка", 2.75, "Отмена", 0, 0, nil, nil},
	})

	parsed, err := report.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Lines, 2)

	first := parsed.Lines[0]
	assert.Equal(t, "Гроза", first.PlayTitle)
	assert.Equal(t, time.Date(2026, 9, 15, 19, 0, 0, 0, time.Local), first.SessionAt)
	assert.Equal(t, 120, first.TicketsCount)
	assert.True(t, decimal.NewFromFloat(150000.50).Equal(first.GrossAmount))
	require.NotNil(t, first.ServicePercent)
	assert.True(t, decimal.NewFromInt(10).Equal(*first.ServicePercent))
	require.NotNil(t, first.PartnerPercent)
	assert.True(t, decimal.Zero.Equal(*first.PartnerPercent))
	assert.Empty(t, first.CanceledInfo)

	// Serial 2.75 is two days past 1899-12-30 plus eighteen hours.
	second := parsed.Lines[1]
	assert.Equal(t, "Чайка", second.PlayTitle)
	assert.Equal(t, time.Date(1900, 1, 1, 18, 0, 0, 0, time.UTC), second.SessionAt)
	assert.Equal(t, "Отмена", second.CanceledInfo)
	assert.Nil(t, second.ServicePercent)

	require.NotNil(t, parsed.Meta.GrossSales)
	assert.True(t, decimal.NewFromFloat(150000.50).Equal(*parsed.Meta.GrossSales))
	require.NotNil(t, parsed.Meta.ServiceFee)
	assert.True(t, decimal.NewFromFloat(15000.05).Equal(*parsed.Meta.ServiceFee))
	require.NotNil(t, parsed.Meta.NetToOrganizer)
	assert.True(t, decimal.NewFromFloat(135000.45).Equal(*parsed.Meta.NetToOrganizer))
}

/*
TestParse_SkipsBlankAndStopsAtTerminator ignores rows without a title or a
parseable session time and stops reading at the first non-numeric row
number, so totals never leak into the lines.
*/
func TestParse_SkipsBlankAndStopsAtTerminator(t *testing.T) {
	data := buildReportFile(t, [][]interface{}{
		{1, "Гроза", "15.09.2026 19:00", nil, 10, 1000, nil, nil},
		{2, "", "16.09.2026 19:00", nil, 10, 1000, nil, nil},
		{3, "Чайка", "не дата", nil, 10, 1000, nil, nil},
		{4, "Гроза", "16.09.2026", nil, 20, 2000, nil, nil},
	})

	parsed, err := report.Parse(data)
	require.NoError(t, err)
	require.Len(t, parsed.Lines, 2)

	assert.Equal(t, time.Date(2026, 9, 15, 19, 0, 0, 0, time.Local), parsed.Lines[0].SessionAt)
	// A date-only cell is midnight local time.
	assert.Equal(t, time.Date(2026, 9, 16, 0, 0, 0, 0, time.Local), parsed.Lines[1].SessionAt)
	assert.Equal(t, 20, parsed.Lines[1].TicketsCount)
}

/*
TestParse_NoHeaderYieldsZeroLines treats a spreadsheet without the session
table header as empty rather than failing.
*/
func TestParse_NoHeaderYieldsZeroLines(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]interface{}{"просто", "таблица", 42}))

	buffer, err := file.WriteToBuffer()
	require.NoError(t, err)

	parsed, err := report.Parse(buffer.Bytes())
	require.NoError(t, err)
	assert.Empty(t, parsed.Lines)
	assert.Nil(t, parsed.Meta.GrossSales)
}

/*
TestParse_GarbageIsAnError rejects bytes that are not a workbook at all.
*/
func TestParse_GarbageIsAnError(t *testing.T) {
	_, err := report.Parse([]byte("definitely not a zip archive"))
	assert.Error(t, err)
}
