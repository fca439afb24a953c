// Package validation checks the structural completeness of an invoice
// before any document is assembled. Checks run in a fixed order and stop at
// the first defect; callers match on the message text.
package validation

import (
	"strings"

	"github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/model"
)

var (
	minPercent = decimal.Zero
	maxPercent = decimal.FromInt(100)
)

// Validate returns nil or the first *model.ValidationError found in input
func Validate(input *model.InvoiceInput) error {
	if input == nil || blank(input.Number) {
		return model.NewValidationError("number", "Invoice number is required")
	}
	if input.IssueDate.IsZero() {
		return model.NewValidationError("issueDate", "Issue date is required")
	}

	if err := validateSupplier(input.Supplier); err != nil {
		return err
	}

	if input.Customer == nil {
		return model.NewValidationError("customer", "Customer is required")
	}
	if blank(input.Customer.RegistrationName) {
		return model.NewValidationError("customer.registrationName", "Customer registration name is required")
	}

	// An empty slice is a valid invoice with zero totals
	if input.Lines == nil {
		return model.NewValidationError("lines", "Invoice lines are required")
	}
	for i := range input.Lines {
		if err := validateLine(i+1, &input.Lines[i]); err != nil {
			return err
		}
	}

	return nil
}

func validateSupplier(p *model.Party) error {
	if p == nil {
		return model.NewValidationError("supplier", "Supplier is required")
	}
	if blank(p.RegistrationName) {
		return model.NewValidationError("supplier.registrationName", "Supplier registration name is required")
	}
	if blank(p.CompanyID) {
		return model.NewValidationError("supplier.companyId", "Supplier company ID is required")
	}

	addr := p.Address
	if addr == nil {
		return model.NewValidationError("supplier.address", "Supplier address is required")
	}
	if blank(addr.Street) {
		return model.NewValidationError("supplier.address.street", "Supplier street is required")
	}
	if blank(addr.City) {
		return model.NewValidationError("supplier.address.city", "Supplier city is required")
	}
	if blank(addr.PostalCode) {
		return model.NewValidationError("supplier.address.postalCode", "Supplier postal code is required")
	}
	return nil
}

func validateLine(n int, line *model.InvoiceLine) error {
	if blank(line.Name) {
		return model.NewLineValidationError(n, "name", "name is required")
	}
	if _, ok := line.Quantity.Decimal(); !ok {
		return model.NewLineValidationError(n, "quantity", "quantity must be a number")
	}
	if price, ok := line.UnitPrice.Decimal(); !ok || !decimal.IsNonNegative(price) {
		return model.NewLineValidationError(n, "unitPrice", "unit price must be a non-negative number")
	}
	if line.HasTaxPercent() {
		pct, ok := line.TaxPercent.Decimal()
		if !ok || !decimal.InRange(pct, minPercent, maxPercent) {
			return model.NewLineValidationError(n, "taxPercent", "tax percent must be between 0 and 100")
		}
	}
	return nil
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
