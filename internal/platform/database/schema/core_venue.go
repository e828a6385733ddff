package schema

// CoreVenueTable represents the 'core.venue' table
type CoreVenueTable struct {
	Table     string
	ID        string
	Title     string
	Address   string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CoreVenue is the schema definition for core.venue
var CoreVenue = CoreVenueTable{
	Table:     "core.venue",
	ID:        "id",
	Title:     "title",
	Address:   "address",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
