package utils

import (
	"github.com/shopspring/decimal"
)

// AmountPrecision is the number of decimals amounts are displayed with.
const AmountPrecision = 2

// FormatAmount formats an amount with the display precision, e.g. 1500 -> "1500.00".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(AmountPrecision)
}

// FormatOptionalAmount formats a nullable amount; a nil amount yields "".
func FormatOptionalAmount(amount *decimal.Decimal) string {
	if amount == nil {
		return ""
	}
	return FormatAmount(*amount)
}
