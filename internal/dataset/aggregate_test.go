package dataset

import (
	"testing"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
)

func trendDataset() *Dataset {
	return New([]domain.Transaction{
		{Date: date("2025-01-10"), Department: "Sales", Category: "Product Revenue", Amount: 500, Type: domain.TypeRevenue},
		{Date: date("2025-01-20"), Department: "Marketing", Category: "Digital Advertising", Amount: 200, Type: domain.TypeExpense},
		{Date: date("2025-02-05"), Department: "Sales", Category: "Services Revenue", Amount: 300, Type: domain.TypeRevenue},
		{Date: date("2025-02-18"), Department: "Operations", Category: "Cloud Hosting", Amount: 150, Type: domain.TypeExpense},
		{Date: date("2025-02-25"), Department: "Marketing", Category: "Events", Amount: 100, Type: domain.TypeExpense},
		{Date: date("2025-03-01"), Department: "Finance", Category: "Audit Fees", Amount: 50, Type: domain.TypeExpense},
	})
}

func TestFilter(t *testing.T) {
	ds := trendDataset()

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{name: "no restriction", filter: Filter{}, want: 6},
		{name: "by department", filter: Filter{Department: "Marketing"}, want: 2},
		{name: "by type", filter: Filter{Type: domain.TypeRevenue}, want: 2},
		{name: "by category", filter: Filter{Category: "Events"}, want: 1},
		{name: "by date range", filter: Filter{From: date("2025-02-01"), To: date("2025-02-28")}, want: 3},
		{name: "combined", filter: Filter{Department: "Marketing", From: date("2025-02-01")}, want: 1},
		{name: "no match", filter: Filter{Department: "Engineering"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ds.Filter(tt.filter).Len(); got != tt.want {
				t.Errorf("Filter(%+v) kept %d rows, want %d", tt.filter, got, tt.want)
			}
		})
	}

	// Filtering must not disturb the source dataset.
	if ds.Len() != 6 {
		t.Errorf("source dataset mutated, now %d rows", ds.Len())
	}
}

func TestTotalsByDepartment(t *testing.T) {
	got := TotalsByDepartment(trendDataset(), domain.TypeExpense)

	want := []LabelTotal{
		{Label: "Marketing", Total: 300},
		{Label: "Operations", Total: 150},
		{Label: "Finance", Total: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTotalsByCategory_TopNWithOther(t *testing.T) {
	got := TotalsByCategory(trendDataset(), domain.TypeExpense, 2)

	if len(got) != 3 {
		t.Fatalf("expected top 2 + Other, got %v", got)
	}
	if got[0].Label != "Digital Advertising" || got[0].Total != 200 {
		t.Errorf("top entry = %+v", got[0])
	}
	if got[2].Label != "Other" || got[2].Total != 50 {
		t.Errorf("rollup entry = %+v, want Other/50", got[2])
	}
}

func TestMonthlyTrend(t *testing.T) {
	got := MonthlyTrend(trendDataset())

	want := []MonthTotals{
		{Month: "2025-01", Revenue: 500, Expenses: 200},
		{Month: "2025-02", Revenue: 300, Expenses: 250},
		{Month: "2025-03", Revenue: 0, Expenses: 50},
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("month %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestProfitMargin(t *testing.T) {
	margin, ok := ProfitMargin(Summarize(trendDataset()))
	if !ok {
		t.Fatal("expected a margin")
	}
	// (800 - 500) / 800
	if margin != 0.375 {
		t.Errorf("margin = %v, want 0.375", margin)
	}

	if _, ok := ProfitMargin(Summarize(New(nil))); ok {
		t.Error("expected no margin for empty dataset")
	}
}
