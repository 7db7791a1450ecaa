package dataset

import (
	"fmt"
	"strings"
	"time"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
	"github.com/josephfalocco/finance-consolidation-dashboard/internal/money"
)

// Summary holds the aggregate figures derived from a dataset. It owns
// no state of its own and is recomputed per request.
type Summary struct {
	TotalRevenue  float64
	TotalExpenses float64
	NetIncome     float64
	Count         int
	StartDate     time.Time
	EndDate       time.Time
	Departments   []string // distinct, in first-appearance order
}

// Summarize computes the aggregate view of the dataset. An empty
// dataset yields all-zero totals and an empty department list.
func Summarize(d *Dataset) Summary {
	s := Summary{Count: d.Len()}

	seen := make(map[string]bool)
	for _, tx := range d.Rows() {
		switch tx.Type {
		case domain.TypeRevenue:
			s.TotalRevenue += tx.Amount
		case domain.TypeExpense:
			s.TotalExpenses += tx.Amount
		}
		if s.StartDate.IsZero() || tx.Date.Before(s.StartDate) {
			s.StartDate = tx.Date
		}
		if tx.Date.After(s.EndDate) {
			s.EndDate = tx.Date
		}
		if !seen[tx.Department] {
			seen[tx.Department] = true
			s.Departments = append(s.Departments, tx.Department)
		}
	}
	s.NetIncome = s.TotalRevenue - s.TotalExpenses
	return s
}

// String renders the summary as the data snapshot block embedded in
// each query prompt.
func (s Summary) String() string {
	dateRange := "n/a"
	if !s.StartDate.IsZero() {
		dateRange = fmt.Sprintf("%s to %s",
			s.StartDate.Format("2006-01-02"), s.EndDate.Format("2006-01-02"))
	}

	var b strings.Builder
	b.WriteString("CURRENT DATA SNAPSHOT:\n")
	b.WriteString("- Total Revenue: " + money.Format(s.TotalRevenue) + "\n")
	b.WriteString("- Total Expenses: " + money.Format(s.TotalExpenses) + "\n")
	b.WriteString("- Net Income: " + money.Format(s.NetIncome) + "\n")
	b.WriteString(fmt.Sprintf("- Transaction Count: %d\n", s.Count))
	b.WriteString("- Date Range: " + dateRange + "\n")
	b.WriteString("- Departments: " + strings.Join(s.Departments, ", ") + "\n")
	return b.String()
}
