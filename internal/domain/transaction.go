package domain

import (
	"fmt"
	"time"
)

// Transaction represents one row of the consolidated financial dataset.
// Rows are loaded once at startup and treated as read-only afterwards;
// nothing in the query path is allowed to rewrite them.
type Transaction struct {
	Date        time.Time // parsed from "Date" (YYYY-MM-DD)
	Department  string    // one of the Department* constants
	Category    string    // free-form label, e.g. "Digital Advertising"
	Amount      float64   // always non-negative; Type carries the sign semantics
	Type        string    // TypeRevenue or TypeExpense
	Description string    // free text
}

// Departments present in the consolidated dataset.
const (
	DepartmentSales      = "Sales"
	DepartmentMarketing  = "Marketing"
	DepartmentOperations = "Operations"
	DepartmentFinance    = "Finance"
)

// Transaction types.
const (
	TypeRevenue = "Revenue"
	TypeExpense = "Expense"
)

// Validate checks the invariants a loaded row must satisfy.
func (t Transaction) Validate() error {
	if t.Date.IsZero() {
		return fmt.Errorf("transaction: date is required")
	}
	if t.Department == "" {
		return fmt.Errorf("transaction: department is required")
	}
	if t.Amount < 0 {
		return fmt.Errorf("transaction: amount %f is negative", t.Amount)
	}
	if t.Type != TypeRevenue && t.Type != TypeExpense {
		return fmt.Errorf("transaction: type %q must be %q or %q", t.Type, TypeRevenue, TypeExpense)
	}
	return nil
}
