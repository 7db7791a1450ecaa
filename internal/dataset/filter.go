package dataset

import (
	"time"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
)

// Filter narrows a dataset the way the dashboard sidebar does. Zero
// values mean "no restriction" for that dimension.
type Filter struct {
	Department string
	Category   string
	Type       string
	From       time.Time // inclusive
	To         time.Time // inclusive
}

// Filter returns a new Dataset containing only the rows matching f.
// The original dataset is left untouched.
func (d *Dataset) Filter(f Filter) *Dataset {
	var rows []domain.Transaction
	for _, tx := range d.rows {
		if f.Department != "" && tx.Department != f.Department {
			continue
		}
		if f.Category != "" && tx.Category != f.Category {
			continue
		}
		if f.Type != "" && tx.Type != f.Type {
			continue
		}
		if !f.From.IsZero() && tx.Date.Before(f.From) {
			continue
		}
		if !f.To.IsZero() && tx.Date.After(f.To) {
			continue
		}
		rows = append(rows, tx)
	}
	return New(rows)
}
