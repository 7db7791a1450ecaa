// Package dataset loads the consolidated financial dataset into memory
// and derives the summaries, filters and aggregates the dashboard and
// the query engine consume.
package dataset

import (
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
)

// Dataset is the in-memory collection of transaction rows. It is built
// once by Load and treated as read-only for the process lifetime; code
// that needs a mutable view must go through CopyRows.
type Dataset struct {
	rows []domain.Transaction
}

// New wraps rows in a Dataset. The slice is owned by the Dataset from
// this point on.
func New(rows []domain.Transaction) *Dataset {
	return &Dataset{rows: rows}
}

// Rows returns the underlying rows for read-only iteration.
func (d *Dataset) Rows() []domain.Transaction {
	return d.rows
}

// Len returns the number of transaction rows.
func (d *Dataset) Len() int {
	return len(d.rows)
}

// CopyRows returns a defensive copy of the rows. The sandboxed executor
// hands this copy to generated code so the canonical dataset cannot be
// mutated through it.
func (d *Dataset) CopyRows() []domain.Transaction {
	out := make([]domain.Transaction, len(d.rows))
	copy(out, d.rows)
	return out
}
