// Package identifier validates and normalizes Romanian tax identifiers:
// the personal numeric code (CNP) and the company tax code (CUI/CIF).
package identifier

const (
	cnpLength = 13
	cnpKey    = "279146358279"

	// cnpNone is the code the tax authority uses for "no personal code"
	cnpNone = "0000000000000"
)

// IsValidPersonalCode reports whether code is a well-formed CNP
func IsValidPersonalCode(code string) bool {
	if len(code) != cnpLength || !isDigits(code) {
		return false
	}
	if code == cnpNone {
		return true
	}
	if code[0] == '0' {
		return false
	}

	sum := 0
	for i := 0; i < len(cnpKey); i++ {
		sum += digit(code[i]) * digit(cnpKey[i])
	}
	check := sum % 11
	if check == 10 {
		check = 1
	}
	return digit(code[cnpLength-1]) == check
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func digit(b byte) int {
	return int(b - '0')
}
