package schema

// CorePlayRoleTable represents the 'core.playrole' table
type CorePlayRoleTable struct {
	Table     string
	ID        string
	PlayID    string
	Title     string
	SortOrder string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CorePlayRole is the schema definition for core.playrole
var CorePlayRole = CorePlayRoleTable{
	Table:     "core.playrole",
	ID:        "id",
	PlayID:    "playid",
	Title:     "title",
	SortOrder: "sortorder",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
