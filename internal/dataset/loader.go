package dataset

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/josephfalocco/finance-consolidation-dashboard/internal/domain"
)

// Columns the source file must carry, in any order.
var requiredColumns = []string{"Date", "Department", "Category", "Amount", "Type", "Description"}

// LoadError reports a missing or malformed dataset source. It is the
// one fatal error class in the system: it surfaces at startup and is
// not recoverable per-question.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load dataset %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Load reads the dataset from a local path or a "gs://bucket/object"
// URI. Failures are wrapped in *LoadError.
func Load(ctx context.Context, source string) (*Dataset, error) {
	var (
		data []byte
		err  error
	)
	if strings.HasPrefix(source, "gs://") {
		data, err = fetchFromGCS(ctx, source)
	} else {
		data, err = os.ReadFile(source)
	}
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}

	ds, err := LoadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return ds, nil
}

// LoadCSV parses a header-rowed CSV stream into a Dataset. The header
// must contain every required column; each row's Date must be
// YYYY-MM-DD and Amount a non-negative decimal.
func LoadCSV(r io.Reader) (*Dataset, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty file (no header row)")
	}

	colIndex := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		colIndex[strings.TrimSpace(h)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	rows := make([]domain.Transaction, 0, len(records)-1)
	for i, record := range records[1:] {
		tx, err := parseRow(record, colIndex)
		if err != nil {
			// i+2: 1-based, counting the header row.
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		rows = append(rows, tx)
	}

	return New(rows), nil
}

func parseRow(record []string, colIndex map[string]int) (domain.Transaction, error) {
	field := func(col string) string {
		idx := colIndex[col]
		if idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	date, err := time.Parse("2006-01-02", field("Date"))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date %q: %w", field("Date"), err)
	}

	amount, err := strconv.ParseFloat(field("Amount"), 64)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount %q: %w", field("Amount"), err)
	}

	tx := domain.Transaction{
		Date:        date,
		Department:  field("Department"),
		Category:    field("Category"),
		Amount:      amount,
		Type:        field("Type"),
		Description: field("Description"),
	}
	if err := tx.Validate(); err != nil {
		return domain.Transaction{}, err
	}
	return tx, nil
}
