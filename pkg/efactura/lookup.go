package efactura

import (
	"github.com/rezonia/efactura/internal/address"
	"github.com/rezonia/efactura/internal/identifier"
)

// IsValidCNP reports whether code is a valid personal numeric code
func IsValidCNP(code string) bool {
	return identifier.IsValidPersonalCode(code)
}

// IsValidCUI reports whether code is a valid company tax code, with or
// without the RO prefix
func IsValidCUI(code string) bool {
	return identifier.IsValidCompanyCode(code)
}

// NormalizeTaxIdentifier returns a CNP unchanged, a CUI with the RO prefix
// and anything else as given. Blank input fails.
func NormalizeTaxIdentifier(value string) (string, error) {
	return identifier.NormalizeTaxIdentifier(value)
}

// ResolveCounty maps a Romanian county name to its ISO 3166-2 code
func ResolveCounty(name string) (string, bool) {
	return address.ResolveCounty(name)
}

// ResolveBucharestSector extracts SECTOR1..SECTOR6 from free text
func ResolveBucharestSector(text string) (string, bool) {
	return address.ResolveBucharestSector(text)
}

// ResolveCountryCode maps a country name or code to ISO 3166-1 alpha-2
func ResolveCountryCode(name string) (string, bool) {
	return identifier.ResolveCountryCode(name)
}
