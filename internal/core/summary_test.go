package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() []Expense {
	return []Expense{
		{ID: "1", Username: "A", Amount: 100, Category: "Petrol", Date: NewDate(2024, 1, 1)},
		{ID: "2", Username: "B", Amount: 50, Category: "Khana", Date: NewDate(2024, 1, 2)},
		{ID: "3", Username: "A", Amount: 25, Category: "Petrol", Date: NewDate(2024, 1, 3)},
	}
}

func totalsByName(t *testing.T, in []CategoryAmount) map[string]Amount {
	t.Helper()
	require.Len(t, in, len(Categories))
	out := make(map[string]Amount, len(in))
	for i, ca := range in {
		assert.Equal(t, Categories[i].Name, ca.Name, "segment order")
		out[ca.Name] = ca.Amount
	}
	return out
}

func TestTotalAll(t *testing.T) {
	all := Filter(sample(), AllCategories)
	assert.Len(t, all, 3)
	assert.Equal(t, Amount(175), Total(all))
}

func TestFilterPetrol(t *testing.T) {
	petrol := Filter(sample(), "Petrol")
	require.Len(t, petrol, 2)
	assert.Equal(t, Amount(125), Total(petrol))

	totals := totalsByName(t, CategoryTotals(petrol))
	assert.Equal(t, Amount(125), totals["Petrol"])
	for name, v := range totals {
		if name != "Petrol" {
			assert.Zero(t, v, "segment %s", name)
		}
	}
}

func TestFilterIsExactMatch(t *testing.T) {
	in := []Expense{{Category: "petrol", Amount: 1}, {Category: "Petrol ", Amount: 2}, {Category: "Petrol", Amount: 3}}
	out := Filter(in, "Petrol")
	require.Len(t, out, 1)
	assert.Equal(t, Amount(3), out[0].Amount)
}

func TestUnknownCategoryExcludedFromSegments(t *testing.T) {
	in := append(sample(), Expense{ID: "4", Amount: 999, Category: "Fuel", Date: NewDate(2024, 1, 4)})

	table := Filter(in, AllCategories)
	assert.Len(t, table, 4, "unknown category stays in the table")
	assert.Equal(t, Amount(1174), Total(table))

	var segmentSum Amount
	for _, ca := range CategoryTotals(table) {
		segmentSum += ca.Amount
	}
	assert.Equal(t, Amount(175), segmentSum)
	assert.False(t, IsKnownCategory("Fuel"))
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	in := []Expense{{Amount: 0.1}, {Amount: 0.2}}
	assert.Equal(t, Amount(0.3), Total(in))
}

func TestFilterDoesNotAlias(t *testing.T) {
	in := sample()
	out := Filter(in, AllCategories)
	out[0].Username = "changed"
	assert.Equal(t, "A", in[0].Username)
}

func TestEmptyAggregates(t *testing.T) {
	assert.Empty(t, Filter(nil, "Khana"))
	assert.Equal(t, Amount(0), Total(nil))
	for _, ca := range CategoryTotals(nil) {
		assert.Zero(t, ca.Amount)
	}
}
