package schema

// FinanceReportTable represents the 'finance.financereport' table.
type FinanceReportTable struct {
	Table            string
	ID               string
	Source           string
	Fingerprint      string
	OriginalFilename string
	StoragePath      string
	GrossSales       string
	ServiceFee       string
	NetToOrganizer   string
	RefundsAmount    string
	ReportNo         string
	ContractNo       string
	ReportDate       string
	PeriodStart      string
	PeriodEnd        string
	ImportedAt       string
}

// FinanceReport is the schema definition for finance.financereport
var FinanceReport = FinanceReportTable{
	Table:            "finance.financereport",
	ID:               "id",
	Source:           "source",
	Fingerprint:      "fingerprint",
	OriginalFilename: "originalfilename",
	StoragePath:      "storagepath",
	GrossSales:       "grosssales",
	ServiceFee:       "servicefee",
	NetToOrganizer:   "nettoorganizer",
	RefundsAmount:    "refundsamount",
	ReportNo:         "reportno",
	ContractNo:       "contractno",
	ReportDate:       "reportdate",
	PeriodStart:      "periodstart",
	PeriodEnd:        "periodend",
	ImportedAt:       "importedat",
}

// Columns returns the list of insertable columns for finance.financereport
func (t FinanceReportTable) Columns() []string {
	return []string{
		t.ID, t.Source, t.Fingerprint, t.OriginalFilename, t.StoragePath,
		t.GrossSales, t.ServiceFee, t.NetToOrganizer, t.RefundsAmount,
		t.ReportNo, t.ContractNo, t.ReportDate, t.PeriodStart, t.PeriodEnd, t.ImportedAt,
	}
}
