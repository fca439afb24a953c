// Package efactura provides a public API for generating Romanian CIUS-RO
// e-invoices.
//
// Example usage:
//
//	gen := efactura.NewDefaultGenerator()
//	doc, err := gen.Generate(ctx, &efactura.Invoice{...})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(doc.XML)
package efactura

import (
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/refdata"
	"github.com/rezonia/efactura/internal/ubl"
)

// Re-export core types for public API
type (
	Invoice = model.InvoiceInput
	Party   = model.Party
	Address = model.Address
	Line    = model.InvoiceLine
	Number  = model.Number
	Date    = model.Date
	Summary = ubl.Summary
)

// Re-export error types
type (
	ParseError      = model.ParseError
	ValidationError = model.ValidationError
)

// Re-export invoice type codes
const (
	TypeCommercialInvoice = refdata.TypeCodeCommercialInvoice
	TypeCreditNote        = refdata.TypeCodeCreditNote
)

// Re-export document defaults
const (
	DefaultCurrency   = refdata.DefaultCurrency
	DefaultUnitCode   = refdata.DefaultUnitCode
	DefaultTaxPercent = refdata.DefaultTaxPercent
	CustomizationID   = refdata.CustomizationID
)

// NumberOf wraps a numeric literal for Line fields
func NumberOf(s string) Number {
	return model.NumberOf(s)
}

// DateOf wraps a date string, epoch milliseconds or time.Time
func DateOf(v any) Date {
	return model.DateOf(v)
}
