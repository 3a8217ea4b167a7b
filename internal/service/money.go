package service

import "github.com/shopspring/decimal"

// maxAmount: колонки денег numeric(12,2), всё >= 10^10 база не примет.
var maxAmount = decimal.New(1, 10)

// checkAmount проверяет точность и верхнюю границу суммы; знак проверяет вызывающий.
func checkAmount(field string, d decimal.Decimal) error {
	switch {
	case !d.Equal(d.Round(2)):
		return invalid(field, field+" must have at most 2 decimal places")
	case d.GreaterThanOrEqual(maxAmount):
		return invalid(field, field+" must be less than 10000000000")
	}
	return nil
}
