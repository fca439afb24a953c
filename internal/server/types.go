package server

import (
	"github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/processor"
)

// GenerateResponse is the JSON form of the generate endpoint
type GenerateResponse struct {
	XML      string       `json:"xml"`
	Totals   TotalsOutput `json:"totals"`
	Warnings []string     `json:"warnings,omitempty"`
}

// TotalsOutput holds document totals formatted with 2 decimals
type TotalsOutput struct {
	TaxableAmount      string `json:"taxable_amount"`
	TaxAmount          string `json:"tax_amount"`
	TaxInclusiveAmount string `json:"tax_inclusive_amount"`
	PayableAmount      string `json:"payable_amount"`
}

func newTotalsOutput(r *processor.Result) TotalsOutput {
	if r.Totals == nil {
		return TotalsOutput{}
	}
	return TotalsOutput{
		TaxableAmount:      decimal.FormatAmount(r.Totals.TaxableAmount),
		TaxAmount:          decimal.FormatAmount(r.Totals.TaxAmount),
		TaxInclusiveAmount: decimal.FormatAmount(r.Totals.TaxInclusiveAmount),
		PayableAmount:      decimal.FormatAmount(r.Totals.PayableAmount),
	}
}

// ValidationResponse is the response for validate endpoint
type ValidationResponse struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

// FieldError locates a validation failure
type FieldError struct {
	Field   string `json:"field"`
	Line    int    `json:"line,omitempty"`
	Message string `json:"message"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Field   string `json:"field,omitempty"`
	Line    int    `json:"line,omitempty"`
	Details string `json:"details,omitempty"`
}

// IdentifierRequest is the body of the identifier endpoint
type IdentifierRequest struct {
	Value string `json:"value"`
}

// IdentifierResponse describes a normalized tax identifier
type IdentifierResponse struct {
	Input      string `json:"input"`
	Normalized string `json:"normalized"`
	Kind       string `json:"kind"`
	Valid      bool   `json:"valid"`
	Country    string `json:"country,omitempty"`
}

// AddressRequest is the body of the address endpoint. CompanyID is only
// used to guess the country when the address has none.
type AddressRequest struct {
	model.Address
	CompanyID string `json:"companyId,omitempty"`
}

// AddressResponse is a sanitized address
type AddressResponse struct {
	Street              string `json:"street,omitempty"`
	City                string `json:"city,omitempty"`
	PostalCode          string `json:"postal_code,omitempty"`
	Subdivision         string `json:"subdivision,omitempty"`
	SubdivisionResolved bool   `json:"subdivision_resolved"`
	Sector              string `json:"sector,omitempty"`
	CountryCode         string `json:"country_code"`
	Domestic            bool   `json:"domestic"`
}
