package schema

// CoreExternalBookingTable represents the 'core.externalbooking' table.
type CoreExternalBookingTable struct {
	Table     string
	ID        string
	PersonID  string
	Title     string
	StartAt   string
	EndAt     string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CoreExternalBooking is the schema definition for core.externalbooking
var CoreExternalBooking = CoreExternalBookingTable{
	Table:     "core.externalbooking",
	ID:        "id",
	PersonID:  "personid",
	Title:     "title",
	StartAt:   "startat",
	EndAt:     "endat",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
