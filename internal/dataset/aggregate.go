package dataset

import (
	"sort"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
)

// LabelTotal is one bar/slice of an aggregate breakdown.
type LabelTotal struct {
	Label string
	Total float64
}

// MonthTotals is one point of the monthly revenue-vs-expenses trend.
type MonthTotals struct {
	Month    string // "2006-01"
	Revenue  float64
	Expenses float64
}

// TotalsByDepartment sums amounts of the given transaction type per
// department, sorted by total descending.
func TotalsByDepartment(d *Dataset, txType string) []LabelTotal {
	return totalsBy(d, txType, func(tx domain.Transaction) string { return tx.Department }, 0)
}

// TotalsByCategory sums amounts of the given transaction type per
// category, sorted descending. If topN > 0, categories beyond the
// first topN are rolled up into a trailing "Other" entry.
func TotalsByCategory(d *Dataset, txType string, topN int) []LabelTotal {
	return totalsBy(d, txType, func(tx domain.Transaction) string { return tx.Category }, topN)
}

func totalsBy(d *Dataset, txType string, key func(domain.Transaction) string, topN int) []LabelTotal {
	totals := make(map[string]float64)
	for _, tx := range d.Rows() {
		if tx.Type != txType {
			continue
		}
		totals[key(tx)] += tx.Amount
	}

	out := make([]LabelTotal, 0, len(totals))
	for label, total := range totals {
		out = append(out, LabelTotal{Label: label, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].Label < out[j].Label
	})

	if topN > 0 && len(out) > topN {
		other := 0.0
		for _, lt := range out[topN:] {
			other += lt.Total
		}
		out = append(out[:topN], LabelTotal{Label: "Other", Total: other})
	}
	return out
}

// MonthlyTrend buckets revenue and expenses by calendar month, sorted
// chronologically. Months with activity on only one side still appear
// with a zero on the other.
func MonthlyTrend(d *Dataset) []MonthTotals {
	byMonth := make(map[string]*MonthTotals)
	for _, tx := range d.Rows() {
		month := tx.Date.Format("2006-01")
		mt, ok := byMonth[month]
		if !ok {
			mt = &MonthTotals{Month: month}
			byMonth[month] = mt
		}
		switch tx.Type {
		case domain.TypeRevenue:
			mt.Revenue += tx.Amount
		case domain.TypeExpense:
			mt.Expenses += tx.Amount
		}
	}

	out := make([]MonthTotals, 0, len(byMonth))
	for _, mt := range byMonth {
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// ProfitMargin returns net income as a fraction of revenue, and false
// when there is no revenue to divide by.
func ProfitMargin(s Summary) (float64, bool) {
	if s.TotalRevenue == 0 {
		return 0, false
	}
	return s.NetIncome / s.TotalRevenue, true
}
