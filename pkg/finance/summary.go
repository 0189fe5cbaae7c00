package finance

import (
	"strings"

	"github.com/shopspring/decimal"

	"tableflip.dev/daybook/pkg/calendar"
	"tableflip.dev/daybook/pkg/view"
)

// AllKinds disables the kind filter.
const AllKinds = "all"

// FilterKind returns the transactions of kind, or all of them for "all" and
// the empty string.
func FilterKind(txs []Transaction, kind string) []Transaction {
	k := Kind(strings.ToLower(strings.TrimSpace(kind)))
	return view.Filter(txs, view.When(k != "" && k != AllKinds, func(t Transaction) bool {
		return t.Kind == k
	}))
}

func amount(t Transaction) decimal.Decimal {
	return t.Amount
}

func ofKind(k Kind) func(Transaction) bool {
	return func(t Transaction) bool { return t.Kind == k }
}

// Totals holds full precision sums. Round only when displaying.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

// Total sums income and expense amounts; balance is income minus expense.
func Total(txs []Transaction) Totals {
	income := view.Sum(view.Filter(txs, view.When(true, ofKind(Income))), amount)
	expense := view.Sum(view.Filter(txs, view.When(true, ofKind(Expense))), amount)
	return Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// Slice is one category of the expense breakdown.
type Slice struct {
	Category string          `json:"name"`
	Color    string          `json:"color"`
	Amount   decimal.Decimal `json:"amount"`
}

// Breakdown sums expenses per reference category, matching names
// case-insensitively. Categories with nothing spent are left out; the order
// follows table.
func Breakdown(txs []Transaction, table []Category) []Slice {
	out := make([]Slice, 0, len(table))
	for _, c := range table {
		spent := view.Sum(view.Filter(txs,
			view.When(true, ofKind(Expense)),
			view.When(true, func(t Transaction) bool {
				return strings.EqualFold(strings.TrimSpace(t.Category), c.Name)
			}),
		), amount)
		if spent.IsZero() {
			continue
		}
		out = append(out, Slice{Category: c.Name, Color: c.Color, Amount: spent})
	}
	return out
}

// Month is one point of the monthly income/expense series.
type Month struct {
	Label   string          `json:"label"`
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
}

// Monthly returns income and expense totals for the n months ending with the
// month of until, oldest first.
func Monthly(txs []Transaction, until calendar.Date, n int) []Month {
	if n <= 0 {
		return []Month{}
	}
	out := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		month := until.AddMonths(-i)
		in := view.Filter(txs, view.When(true, func(t Transaction) bool {
			return t.Date.SameMonth(month)
		}))
		t := Total(in)
		out = append(out, Month{
			Label:   month.Time().Format("Jan"),
			Income:  t.Income,
			Expense: t.Expense,
		})
	}
	return out
}

// Latest returns the most recent transaction date, or the zero Date.
func Latest(txs []Transaction) calendar.Date {
	var latest calendar.Date
	for _, t := range txs {
		if latest.IsZero() || latest.Before(t.Date) {
			latest = t.Date
		}
	}
	return latest
}
