package schema

// FinanceReportLineTable represents the 'finance.financereportline' table.
type FinanceReportLineTable struct {
	Table          string
	ID             string
	ReportID       string
	EventID        string
	PlayTitle      string
	SessionAt      string
	CanceledInfo   string
	TicketsCount   string
	GrossAmount    string
	ServicePercent string
	PartnerPercent string
	CreatedAt      string
}

// FinanceReportLine is the schema definition for finance.financereportline
var FinanceReportLine = FinanceReportLineTable{
	Table:          "finance.financereportline",
	ID:             "id",
	ReportID:       "reportid",
	EventID:        "eventid",
	PlayTitle:      "playtitle",
	SessionAt:      "sessionat",
	CanceledInfo:   "canceledinfo",
	TicketsCount:   "ticketscount",
	GrossAmount:    "grossamount",
	ServicePercent: "servicepercent",
	PartnerPercent: "partnerpercent",
	CreatedAt:      "createdat",
}

// Columns returns the list of insertable columns for finance.financereportline
func (t FinanceReportLineTable) Columns() []string {
	return []string{
		t.ID, t.ReportID, t.EventID, t.PlayTitle, t.SessionAt, t.CanceledInfo,
		t.TicketsCount, t.GrossAmount, t.ServicePercent, t.PartnerPercent, t.CreatedAt,
	}
}
