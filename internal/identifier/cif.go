package identifier

import "strings"

const (
	cifMaxLength = 10
	cifWeights   = "753217532"

	// TaxPrefix marks a Romanian VAT registration
	TaxPrefix = "RO"
)

// IsValidCompanyCode reports whether code is a CUI/CIF with a correct
// check digit. A leading RO prefix is accepted in any case.
func IsValidCompanyCode(code string) bool {
	digits := stripTaxPrefix(code)
	if !isDigits(digits) || len(digits) > cifMaxLength {
		return false
	}

	body := digits[:len(digits)-1]
	body = strings.Repeat("0", len(cifWeights)-len(body)) + body

	sum := 0
	for i := 0; i < len(cifWeights); i++ {
		sum += digit(body[i]) * digit(cifWeights[i])
	}
	check := sum * 10 % 11
	if check == 10 {
		check = 0
	}
	return digit(digits[len(digits)-1]) == check
}

func stripTaxPrefix(code string) string {
	if len(code) >= len(TaxPrefix) && strings.EqualFold(code[:len(TaxPrefix)], TaxPrefix) {
		return code[len(TaxPrefix):]
	}
	return code
}
