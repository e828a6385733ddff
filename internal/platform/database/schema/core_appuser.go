package schema

// CoreAppUserTable represents the 'core.appuser' table.
// A login account optionally linked to a person record; the link is detached
// before the person row is removed.
type CoreAppUserTable struct {
	Table     string
	ID        string
	PersonID  string
	Email     string
	CreatedAt string
	UpdatedAt string
}

// CoreAppUser is the schema definition for core.appuser
var CoreAppUser = CoreAppUserTable{
	Table:     "core.appuser",
	ID:        "id",
	PersonID:  "personid",
	Email:     "email",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
