package finance

import "strings"

// Category is an entry of the reference category table.
type Category struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Categories returns the reference table used by the breakdown.
func Categories() []Category {
	return []Category{
		{Name: "Food", Color: "#FF9500"},
		{Name: "Transport", Color: "#5856D6"},
		{Name: "Entertainment", Color: "#FF2D55"},
		{Name: "Housing", Color: "#5AC8FA"},
		{Name: "Shopping", Color: "#4CD964"},
		{Name: "Salary", Color: "#007AFF"},
		{Name: "Freelance", Color: "#34C759"},
	}
}

// LookupCategory finds name in table, ignoring case.
func LookupCategory(table []Category, name string) (Category, bool) {
	for _, c := range table {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Category{}, false
}
