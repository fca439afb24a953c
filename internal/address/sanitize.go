package address

import (
	"strings"

	"github.com/rezonia/efactura/internal/model"
)

// Sanitized is the postal address as written into the document
type Sanitized struct {
	Street      string
	City        string
	PostalCode  string
	Subdivision string // ISO 3166-2 code when resolved, original county text otherwise
	CountryCode string

	// SubdivisionResolved is false when a Romanian county could not be matched
	SubdivisionResolved bool
}

// Sanitize resolves the city and subdivision of addr for the given country.
// Only Romanian addresses are rewritten; foreign ones pass through. A nil
// address yields one carrying only the country code.
func Sanitize(addr *model.Address, countryCode string) Sanitized {
	out := Sanitized{CountryCode: countryCode}
	if addr == nil {
		return out
	}

	out.Street = strings.TrimSpace(addr.Street)
	out.City = strings.TrimSpace(addr.City)
	out.PostalCode = strings.TrimSpace(addr.PostalCode)
	out.Subdivision = strings.TrimSpace(addr.County)

	if !IsDomesticCountryCode(countryCode) {
		return out
	}

	code, ok := ResolveCounty(addr.County)
	if !ok && out.Subdivision == "" {
		code, ok = ResolveCounty(addr.City)
	}
	if !ok {
		return out
	}

	out.Subdivision = code
	out.SubdivisionResolved = true

	if IsBucharestSubdivision(code) {
		if sector, found := ResolveBucharestSector(addr.City); found {
			out.City = sector
		} else if sector, found := ResolveBucharestSector(addr.County); found {
			out.City = sector
		}
	}

	return out
}
