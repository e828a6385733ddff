// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package report

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ammateam/callboard/internal/platform/constants"
)

// # Content Fingerprint
//
// Two uploads of the same provider report must collide regardless of file
// name, upload order or cosmetic cell formatting. The fingerprint is the
// SHA-256 of a canonical JSON document: strings trimmed and casefolded,
// money fixed to two decimals, times in RFC 3339 UTC, lines sorted by
// play title and session time. Changing a single kopeck changes the hash.

type canonicalMeta struct {
	ReportNo       string `json:"reportNo"`
	ContractNo     string `json:"contractNo"`
	ReportDate     string `json:"reportDate"`
	PeriodStart    string `json:"periodStart"`
	PeriodEnd      string `json:"periodEnd"`
	GrossSales     string `json:"grossSales"`
	ServiceFee     string `json:"serviceFee"`
	NetToOrganizer string `json:"netToOrganizer"`
}

type canonicalLine struct {
	PlayTitle      string `json:"playTitle"`
	SessionAt      string `json:"sessionAt"`
	CanceledInfo   string `json:"canceledInfo"`
	TicketsCount   int    `json:"ticketsCount"`
	GrossAmount    string `json:"grossAmount"`
	ServicePercent string `json:"servicePercent"`
	PartnerPercent string `json:"partnerPercent"`
}

type canonicalReport struct {
	Source string          `json:"source"`
	Meta   canonicalMeta   `json:"meta"`
	Lines  []canonicalLine `json:"lines"`
}

func canonicalString(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func canonicalMoney(value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return value.StringFixed(2)
}

func canonicalTime(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(time.RFC3339)
}

/*
Fingerprint derives the deduplication hash of a parsed report.

Parameters:
  - parsed: the decoded spreadsheet

Returns:
  - string: Lowercase hex SHA-256 of the canonical form
*/
func Fingerprint(parsed *Parsed) string {
	canonical := canonicalReport{
		Source: constants.ReportSource,
		Meta: canonicalMeta{
			ReportNo:       canonicalString(parsed.Meta.ReportNo),
			ContractNo:     canonicalString(parsed.Meta.ContractNo),
			ReportDate:     canonicalTime(parsed.Meta.ReportDate),
			PeriodStart:    canonicalTime(parsed.Meta.PeriodStart),
			PeriodEnd:      canonicalTime(parsed.Meta.PeriodEnd),
			GrossSales:     canonicalMoney(parsed.Meta.GrossSales),
			ServiceFee:     canonicalMoney(parsed.Meta.ServiceFee),
			NetToOrganizer: canonicalMoney(parsed.Meta.NetToOrganizer),
		},
		Lines: make([]canonicalLine, 0, len(parsed.Lines)),
	}

	for _, line := range parsed.Lines {
		sessionAt := line.SessionAt
		canonical.Lines = append(canonical.Lines, canonicalLine{
			PlayTitle:      canonicalString(line.PlayTitle),
			SessionAt:      canonicalTime(&sessionAt),
			CanceledInfo:   canonicalString(line.CanceledInfo),
			TicketsCount:   line.TicketsCount,
			GrossAmount:    canonicalMoney(&line.GrossAmount),
			ServicePercent: canonicalMoney(line.ServicePercent),
			PartnerPercent: canonicalMoney(line.PartnerPercent),
		})
	}

	sort.Slice(canonical.Lines, func(i, j int) bool {
		left := canonical.Lines[i].PlayTitle + "_" + canonical.Lines[i].SessionAt
		right := canonical.Lines[j].PlayTitle + "_" + canonical.Lines[j].SessionAt
		return left < right
	})

	// Struct field order fixes the key order, so the encoding is canonical.
	encoded, _ := json.Marshal(canonical)
	digest := sha256.Sum256(encoded)
	return hex.EncodeToString(digest[:])
}
