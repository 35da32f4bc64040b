package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

const groupSize = 3

// FormatMoney renders a decimal amount with two fixed decimals, a thousands
// separator and a decimal separator, e.g. 1234.5 -> "1.234,50".
func FormatMoney(value decimal.Decimal, thousand, dec string) string {
	fixed := value.StringFixed(2)

	negative := strings.HasPrefix(fixed, "-")
	if negative {
		fixed = fixed[1:]
	}

	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var groups []string
	for len(intPart) > groupSize {
		groups = append([]string{intPart[len(intPart)-groupSize:]}, groups...)
		intPart = intPart[:len(intPart)-groupSize]
	}
	groups = append([]string{intPart}, groups...)

	result := strings.Join(groups, thousand) + dec + fracPart
	if negative {
		return "-" + result
	}
	return result
}
