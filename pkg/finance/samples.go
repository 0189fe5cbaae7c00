package finance

import (
	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/calendar"
)

// Samples returns the demo transactions used to seed an empty store.
func Samples() []Transaction {
	tx := func(id, title string, amount int64, date, category string, kind Kind) Transaction {
		return Transaction{
			ID:       id,
			Title:    title,
			Amount:   decimal.NewFromInt(amount),
			Date:     calendar.MustParse(date),
			Category: category,
			Kind:     kind,
		}
	}
	return []Transaction{
		tx("1", "Salary", 3500, "2023-12-01", "Salary", Income),
		tx("2", "Freelance Project", 800, "2023-12-05", "Freelance", Income),
		tx("3", "Rent", 1200, "2023-12-02", "Housing", Expense),
		tx("4", "Groceries", 150, "2023-12-07", "Food", Expense),
		tx("5", "Restaurant", 85, "2023-12-10", "Food", Expense),
		tx("6", "Uber", 25, "2023-12-08", "Transport", Expense),
		tx("7", "Movie Tickets", 30, "2023-12-09", "Entertainment", Expense),
	}
}
