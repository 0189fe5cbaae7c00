package finance

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Format renders amount in currency with the currency's fraction digits,
// for example "$4,300.00". Unknown currencies fall back to two digits.
func Format(amount decimal.Decimal, currency string) string {
	cur := money.GetCurrency(currency)
	if cur == nil {
		return amount.StringFixed(2)
	}
	factor := decimal.New(1, int32(cur.Fraction))
	minor := amount.Mul(factor).Round(0).IntPart()
	return money.New(minor, cur.Code).Display()
}
