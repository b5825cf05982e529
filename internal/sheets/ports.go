package sheets

import (
	"context"

	"kharcha/internal/core"
)

// Mirror receives the whole expense collection and replaces whatever copy it
// held before. Implementations write a header, one row per expense and a
// trailing total row.
type Mirror interface {
	ReplaceAll(ctx context.Context, expenses []core.Expense) error
}

// Header is the first row of every mirrored sheet.
var Header = []string{"Username", "Amount", "Category", "Date"}

// TotalLabel marks the trailing total row.
const TotalLabel = "Total"

// Rows lays out expenses the way a mirror stores them. Amounts stay numeric so
// spreadsheet formulas keep working; dates use the form value (YYYY-MM-DD).
func Rows(expenses []core.Expense) [][]any {
	rows := make([][]any, 0, len(expenses)+2)
	header := make([]any, len(Header))
	for i, h := range Header {
		header[i] = h
	}
	rows = append(rows, header)
	for _, e := range expenses {
		rows = append(rows, []any{e.Username, float64(e.Amount), e.Category, e.Date.FormValue()})
	}
	rows = append(rows, []any{TotalLabel, float64(core.Total(expenses)), "", ""})
	return rows
}
