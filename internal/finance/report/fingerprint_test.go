// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/ammateam/callboard/internal/finance/report"
)

func money(value string) *decimal.Decimal {
	parsed := decimal.RequireFromString(value)
	return &parsed
}

func sampleParsed() *report.Parsed {
	sessionOne := time.Date(2026, 9, 15, 19, 0, 0, 0, time.UTC)
	sessionTwo := time.Date(2026, 9, 16, 19, 0, 0, 0, time.UTC)

	return &report.Parsed{
		Meta: report.ParsedMeta{
			GrossSales:     money("1500.00"),
			ServiceFee:     money("150.00"),
			NetToOrganizer: money("1350.00"),
		},
		Lines: []report.ParsedLine{
			{PlayTitle: "Гроза", SessionAt: sessionOne, TicketsCount: 100, GrossAmount: decimal.RequireFromString("1000.00"), ServicePercent: money("10")},
			{PlayTitle: "Чайка", SessionAt: sessionTwo, TicketsCount: 50, GrossAmount: decimal.RequireFromString("500.00"), ServicePercent: money("5")},
		},
	}
}

/*
TestFingerprint_StableAcrossCosmetics: line order, surrounding whitespace,
letter case and trailing zeros must not change the hash.
*/
func TestFingerprint_StableAcrossCosmetics(t *testing.T) {
	base := report.Fingerprint(sampleParsed())

	reordered := sampleParsed()
	reordered.Lines[0], reordered.Lines[1] = reordered.Lines[1], reordered.Lines[0]
	assert.Equal(t, base, report.Fingerprint(reordered))

	cosmetic := sampleParsed()
	cosmetic.Lines[0].PlayTitle = "  гроза "
	cosmetic.Lines[0].GrossAmount = decimal.RequireFromString("1000")
	cosmetic.Meta.GrossSales = money("1500")
	assert.Equal(t, base, report.Fingerprint(cosmetic))
}

/*
TestFingerprint_PennySensitivity: a single kopeck anywhere produces a
different hash.
*/
func TestFingerprint_PennySensitivity(t *testing.T) {
	base := report.Fingerprint(sampleParsed())

	changed := sampleParsed()
	changed.Lines[0].GrossAmount = decimal.RequireFromString("1000.01")
	assert.NotEqual(t, base, report.Fingerprint(changed))

	meta := sampleParsed()
	meta.Meta.ServiceFee = money("150.01")
	assert.NotEqual(t, base, report.Fingerprint(meta))
}

/*
TestFingerprint_DistinguishesAbsentFromZero: a missing commission column and
an explicit zero are different reports.
*/
func TestFingerprint_DistinguishesAbsentFromZero(t *testing.T) {
	withZero := sampleParsed()
	withZero.Lines[0].ServicePercent = money("0")

	withAbsent := sampleParsed()
	withAbsent.Lines[0].ServicePercent = nil

	assert.NotEqual(t, report.Fingerprint(withZero), report.Fingerprint(withAbsent))
}
