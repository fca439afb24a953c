package ubl

import (
	"errors"
	"strings"

	"github.com/beevik/etree"

	"github.com/rezonia/efactura/internal/address"
	"github.com/rezonia/efactura/internal/identifier"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/refdata"
)

// party is a supplier or customer with every lookup already resolved
type party struct {
	name     string
	taxID    string
	legalID  string
	vatPayer bool
	postal   address.Sanitized
}

func (a *Assembler) resolveParty(role string, p *model.Party, w *warnings) (*party, error) {
	out := &party{
		name:     strings.TrimSpace(p.RegistrationName),
		vatPayer: p.IsVATPayer,
	}

	taxID, err := a.normalizeID(p.CompanyID)
	switch {
	case errors.Is(err, identifier.ErrEmptyIdentifier):
		w.add("%s company ID is missing", role)
	case errors.Is(err, identifier.ErrUnrecognizedIdentifier):
		return nil, model.NewValidationError(role+".companyId", titleRole(role)+" company ID is not a valid CUI/CNP")
	case err != nil:
		return nil, err
	default:
		out.taxID = taxID
		if identifier.Classify(taxID) == identifier.KindUnknown {
			w.add("%s company ID %q is not a valid CUI/CNP, written as given", role, taxID)
		}
	}

	out.legalID = strings.TrimSpace(p.RegistrationNumber)
	if out.legalID == "" {
		out.legalID = out.taxID
	}

	var countryName string
	if p.Address != nil {
		countryName = strings.TrimSpace(p.Address.Country)
	}
	countryCode := identifier.PartyCountryCode(p.CompanyID, countryName)
	if countryName != "" {
		if _, ok := identifier.ResolveCountryCode(countryName); !ok {
			w.add("%s country %q not recognized, using %s", role, countryName, countryCode)
		}
	}

	out.postal = address.Sanitize(p.Address, countryCode)
	if countryCode == refdata.DefaultCountryCode && out.postal.Subdivision != "" && !out.postal.SubdivisionResolved {
		w.add("%s county %q not recognized, written as given", role, out.postal.Subdivision)
	}

	return out, nil
}

func (a *Assembler) normalizeID(id string) (string, error) {
	if a.strictIDs {
		return identifier.NormalizeTaxIdentifierStrict(id)
	}
	return identifier.NormalizeTaxIdentifier(id)
}

func titleRole(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func (p *party) write(parent *etree.Element) {
	el := parent.CreateElement("cac:Party")

	pa := el.CreateElement("cac:PostalAddress")
	addOptional(pa, "cbc:StreetName", p.postal.Street)
	addOptional(pa, "cbc:CityName", p.postal.City)
	addOptional(pa, "cbc:PostalZone", p.postal.PostalCode)
	addOptional(pa, "cbc:CountrySubentity", p.postal.Subdivision)
	addText(pa.CreateElement("cac:Country"), "cbc:IdentificationCode", p.postal.CountryCode)

	if p.vatPayer {
		pts := el.CreateElement("cac:PartyTaxScheme")
		addOptional(pts, "cbc:CompanyID", p.taxID)
		addTaxScheme(pts)
	}

	le := el.CreateElement("cac:PartyLegalEntity")
	addText(le, "cbc:RegistrationName", p.name)
	addOptional(le, "cbc:CompanyID", p.legalID)
}
