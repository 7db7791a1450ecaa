package money

import "testing"

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{name: "zero", value: 0, want: "$0.00"},
		{name: "cents rounding", value: 1234.5, want: "$1,234.50"},
		{name: "exact", value: 100, want: "$100.00"},
		{name: "millions", value: 2500000, want: "$2,500,000.00"},
		{name: "negative", value: -1234.5, want: "$-1,234.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(tt.value); got != tt.want {
				t.Errorf("Format(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}
