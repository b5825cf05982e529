// Package view turns a client.State into everything a frontend draws: table
// rows, the total, pie segments, and the form. Build is pure and is called on
// every render.
package view

import (
	"kharcha/internal/client"
	"kharcha/internal/core"
)

const (
	Title      = "💰 Expense Tracker"
	ChartTitle = "📊 Category-wise Expense"
	EmptyText  = "No expenses found. Add one above 👆"
	PrintLabel = "🖨️ Print"

	AddLabel    = "Add Expense"
	UpdateLabel = "Update Expense"

	// DateLayout is how table dates are shown.
	DateLayout = "2 Jan 2006"
)

// Row is one table line.
type Row struct {
	ID       string
	Username string
	Amount   string
	Category string
	Date     string
}

// Option is an entry of a select input.
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Page is the rendered form of a State.
type Page struct {
	Rows        []Row
	Empty       bool
	Total       core.Amount
	TotalText   string
	Segments    []Segment
	Form        client.Form
	EditingID   string
	SubmitLabel string
	Filter      string

	// CategoryOptions feeds the form select, FilterOptions the filter select.
	CategoryOptions []Option
	FilterOptions   []Option

	Mode string
}

// Build derives the page from s. The filter applies to rows, total and chart alike.
func Build(s client.State) Page {
	filtered := core.Filter(s.Expenses, s.Filter)
	total := core.Total(filtered)

	rows := make([]Row, len(filtered))
	for i, e := range filtered {
		rows[i] = NewRow(e)
	}

	label := AddLabel
	if s.Editing() {
		label = UpdateLabel
	}

	return Page{
		Rows:            rows,
		Empty:           len(rows) == 0,
		Total:           total,
		TotalText:       total.Display(),
		Segments:        Segments(core.CategoryTotals(filtered)),
		Form:            s.Form,
		EditingID:       s.EditingID,
		SubmitLabel:     label,
		Filter:          s.Filter,
		CategoryOptions: categoryOptions(s.Form.Category),
		FilterOptions:   filterOptions(s.Filter),
		Mode:            s.Mode.String(),
	}
}

// NewRow formats one expense for display.
func NewRow(e core.Expense) Row {
	date := ""
	if !e.Date.IsZero() {
		date = e.Date.UTC().Format(DateLayout)
	}
	return Row{
		ID:       e.ID,
		Username: e.Username,
		Amount:   e.Amount.Display(),
		Category: e.Category,
		Date:     date,
	}
}

func categoryOptions(selected string) []Option {
	opts := make([]Option, 0, len(core.Categories)+1)
	opts = append(opts, Option{Value: "", Label: "-- Select Category --", Selected: selected == ""})
	for _, name := range core.CategoryNames() {
		opts = append(opts, Option{Value: name, Label: name, Selected: name == selected})
	}
	return opts
}

func filterOptions(selected string) []Option {
	if selected == "" {
		selected = core.AllCategories
	}
	opts := make([]Option, 0, len(core.Categories)+1)
	opts = append(opts, Option{Value: core.AllCategories, Label: core.AllCategories, Selected: selected == core.AllCategories})
	for _, name := range core.CategoryNames() {
		opts = append(opts, Option{Value: name, Label: name, Selected: name == selected})
	}
	return opts
}
