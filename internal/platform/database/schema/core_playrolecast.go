package schema

// CorePlayRoleCastTable represents the 'core.playrolecast' table.
// One default person per role per play — the "base cast" template applied
// when new events are created for the play.
type CorePlayRoleCastTable struct {
	Table     string
	ID        string
	RoleID    string
	PersonID  string
	CreatedAt string
}

// CorePlayRoleCast is the schema definition for core.playrolecast
var CorePlayRoleCast = CorePlayRoleCastTable{
	Table:     "core.playrolecast",
	ID:        "id",
	RoleID:    "roleid",
	PersonID:  "personid",
	CreatedAt: "createdat",
}
