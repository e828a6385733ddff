package schema

// CoreEventTable represents the 'core.event' table.
type CoreEventTable struct {
	Table     string
	ID        string
	PlayID    string
	VenueID   string
	Title     string
	Type      string
	Status    string
	StartAt   string
	EndAt     string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CoreEvent is the schema definition for core.event
var CoreEvent = CoreEventTable{
	Table:     "core.event",
	ID:        "id",
	PlayID:    "playid",
	VenueID:   "venueid",
	Title:     "title",
	Type:      "type",
	Status:    "status",
	StartAt:   "startat",
	EndAt:     "endat",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the list of insertable columns for core.event
func (t CoreEventTable) Columns() []string {
	return []string{t.ID, t.PlayID, t.VenueID, t.Title, t.Type, t.Status, t.StartAt, t.EndAt, t.Notes, t.CreatedAt, t.UpdatedAt}
}
