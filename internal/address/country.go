package address

import (
	"strings"

	"github.com/rezonia/efactura/internal/refdata"
)

var countriesByName = func() map[string]string {
	list := refdata.Countries()
	m := make(map[string]string, len(list))
	for _, c := range list {
		key := Normalize(c.Name)
		if _, ok := m[key]; !ok {
			m[key] = c.Alpha2
		}
	}
	return m
}()

var domesticCountry = Normalize(refdata.DefaultCountryName)

// ResolveCountryName maps a country name or alpha-2 code to ISO 3166-1 alpha-2
func ResolveCountryName(text string) (string, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(text))
	if len(trimmed) == 2 && refdata.IsAlpha2(trimmed) {
		return trimmed, true
	}

	key := Normalize(text)
	if key == "" {
		return "", false
	}
	code, ok := countriesByName[key]
	return code, ok
}

// IsDomesticInvoice reports whether countryName names the default country
func IsDomesticInvoice(countryName string) bool {
	return Normalize(countryName) == domesticCountry
}

// IsDomesticCountryCode reports whether an alpha-2 code is the default
// country
func IsDomesticCountryCode(code string) bool {
	c, ok := refdata.CountryByAlpha2(code)
	return ok && IsDomesticInvoice(c.Name)
}
