package schema

// FinanceEventExpenseTable represents the 'finance.eventexpense' table.
type FinanceEventExpenseTable struct {
	Table     string
	ID        string
	EventID   string
	Category  string
	Title     string
	Amount    string
	Notes     string
	CreatedAt string
	UpdatedAt string
}

// FinanceEventExpense is the schema definition for finance.eventexpense
var FinanceEventExpense = FinanceEventExpenseTable{
	Table:     "finance.eventexpense",
	ID:        "id",
	EventID:   "eventid",
	Category:  "category",
	Title:     "title",
	Amount:    "amount",
	Notes:     "notes",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}
