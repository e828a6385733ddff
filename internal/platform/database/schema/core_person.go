package schema

// CorePersonTable represents the 'core.person' table
type CorePersonTable struct {
	Table     string
	ID        string
	FullName  string
	Role      string
	Phone     string
	Email     string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// CorePerson is the schema definition for core.person
var CorePerson = CorePersonTable{
	Table:     "core.person",
	ID:        "id",
	FullName:  "fullname",
	Role:      "role",
	Phone:     "phone",
	Email:     "email",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t CorePersonTable) Columns() []string {
	return []string{t.ID, t.FullName, t.Role, t.Phone, t.Email, t.Notes, t.CreatedAt, t.UpdatedAt}
}
