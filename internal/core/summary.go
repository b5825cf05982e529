package core

import "github.com/shopspring/decimal"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Category
	Amount Amount
}

// Filter restricts expenses to one category by exact match. AllCategories
// (or an empty filter) keeps everything. The input slice is never modified.
func Filter(expenses []Expense, category string) []Expense {
	if category == "" || category == AllCategories {
		out := make([]Expense, len(expenses))
		copy(out, expenses)
		return out
	}
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if e.Category == category {
			out = append(out, e)
		}
	}
	return out
}

// Total sums the amounts of expenses.
func Total(expenses []Expense) Amount {
	sum := decimal.Zero
	for _, e := range expenses {
		sum = sum.Add(e.Amount.Decimal())
	}
	f, _ := sum.Float64()
	return Amount(f)
}

// CategoryTotals returns one entry per fixed category, in fixed order.
// Expenses whose category is outside the fixed set contribute to no entry.
func CategoryTotals(expenses []Expense) []CategoryAmount {
	sums := make(map[string]decimal.Decimal, len(Categories))
	for _, e := range expenses {
		sums[e.Category] = sums[e.Category].Add(e.Amount.Decimal())
	}
	out := make([]CategoryAmount, len(Categories))
	for i, c := range Categories {
		f, _ := sums[c.Name].Float64()
		out[i] = CategoryAmount{Category: c, Amount: Amount(f)}
	}
	return out
}
