package core

// AllCategories is the filter value that keeps every record.
const AllCategories = "All"

// Category is one of the fixed, ordered expense categories with its chart colour.
type Category struct {
	Name  string
	Color string
}

// Categories is the single shared list consumed by the form, the filter and
// the chart. Order matters: chart segments follow it.
var Categories = []Category{
	{Name: "Petrol", Color: "#3B82F6"},
	{Name: "Dawa", Color: "#10B981"},
	{Name: "Khana", Color: "#F59E0B"},
	{Name: "Shopping", Color: "#EF4444"},
	{Name: "Travel", Color: "#8B5CF6"},
	{Name: "Entertainment", Color: "#F43F5E"},
	{Name: "Other", Color: "#F97316"},
}

// CategoryNames returns the fixed category names in order.
func CategoryNames() []string {
	names := make([]string, len(Categories))
	for i, c := range Categories {
		names[i] = c.Name
	}
	return names
}

// IsKnownCategory reports whether name is one of the fixed categories.
// The server never calls this; unknown categories are stored as-is.
func IsKnownCategory(name string) bool {
	for _, c := range Categories {
		if c.Name == name {
			return true
		}
	}
	return false
}
