package schema

// CoreAssignmentTable represents the 'core.assignment' table.
// RoleID is nullable: staff assignments (sound, light, admin) carry a free-form
// job title instead of a play role.
type CoreAssignmentTable struct {
	Table     string
	ID        string
	EventID   string
	RoleID    string
	PersonID  string
	JobTitle  string
	CallTime  string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CoreAssignment is the schema definition for core.assignment
var CoreAssignment = CoreAssignmentTable{
	Table:     "core.assignment",
	ID:        "id",
	EventID:   "eventid",
	RoleID:    "roleid",
	PersonID:  "personid",
	JobTitle:  "jobtitle",
	CallTime:  "calltime",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

// Columns returns the list of insertable columns for core.assignment
func (t CoreAssignmentTable) Columns() []string {
	return []string{t.ID, t.EventID, t.RoleID, t.PersonID, t.JobTitle, t.CallTime, t.Notes, t.CreatedAt, t.UpdatedAt}
}
