package identifier

import (
	"strings"

	"github.com/rezonia/efactura/internal/address"
	"github.com/rezonia/efactura/internal/refdata"
)

// ResolveCountryFromIdentifier reads the first two characters of id as an
// ISO alpha-2 code and returns the country name
func ResolveCountryFromIdentifier(id string) (string, bool) {
	code, ok := prefixCode(id)
	if !ok {
		return "", false
	}
	c, _ := refdata.CountryByAlpha2(code)
	return c.Name, true
}

// ResolveCountryCode returns a known alpha-2 code as-is, otherwise matches
// input against the country names
func ResolveCountryCode(input string) (string, bool) {
	return address.ResolveCountryName(input)
}

// PartyCountryCode picks the country of a party. The address country wins
// over the identifier prefix; Romania is assumed when neither resolves.
func PartyCountryCode(companyID, countryName string) string {
	if code, ok := ResolveCountryCode(countryName); ok {
		return code
	}
	if code, ok := prefixCode(companyID); ok {
		return code
	}
	return refdata.DefaultCountryCode
}

func prefixCode(id string) (string, bool) {
	id = strings.TrimSpace(id)
	if len(id) < 2 {
		return "", false
	}
	code := strings.ToUpper(id[:2])
	if !refdata.IsAlpha2(code) {
		return "", false
	}
	return code, true
}
