package schema

// CorePlayTable represents the 'core.play' table
type CorePlayTable struct {
	Table       string
	ID          string
	Title       string
	Description string
	CreatedAt   string
	UpdatedAt   string
}

// CorePlay is the schema definition for core.play
var CorePlay = CorePlayTable{
	Table:       "core.play",
	ID:          "id",
	Title:       "title",
	Description: "description",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}
