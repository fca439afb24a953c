package validation_test

import (
	"errors"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/validation"
)

func validInvoice() *model.InvoiceInput {
	return &model.InvoiceInput{
		Number:    "FCT-0001",
		IssueDate: model.DateOf("2024-03-15"),
		Supplier: lo.ToPtr(model.Party{
			RegistrationName: "Alfa Soft SRL",
			CompanyID:        "RO18547290",
			IsVATPayer:       true,
			Address: lo.ToPtr(model.Address{
				Street:     "Str. Lunga 1",
				City:       "Sector 3",
				County:     "Bucuresti",
				PostalCode: "030001",
				Country:    "Romania",
			}),
		}),
		Customer: lo.ToPtr(model.Party{
			RegistrationName: "Beta SA",
			CompanyID:        "14399840",
		}),
		Lines: []model.InvoiceLine{
			{Name: "Consultanta", Quantity: model.NumberOf("2"), UnitPrice: model.NumberOf("10.345"), TaxPercent: model.NumberOf("19")},
			{Name: "Licenta", Quantity: model.NumberOf("1"), UnitPrice: model.NumberOf("50")},
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	require.NoError(t, validation.Validate(validInvoice()))
}

func TestValidate_EmptyLinesAllowed(t *testing.T) {
	inv := validInvoice()
	inv.Lines = []model.InvoiceLine{}
	assert.NoError(t, validation.Validate(inv))
}

func TestValidate_SingleDefect(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*model.InvoiceInput)
		field   string
		line    int
		message string
	}{
		{"number", func(i *model.InvoiceInput) { i.Number = "  " }, "number", 0, "Invoice number is required"},
		{"issue date", func(i *model.InvoiceInput) { i.IssueDate = model.Date{} }, "issueDate", 0, "Issue date is required"},
		{"issue date zero epoch", func(i *model.InvoiceInput) { i.IssueDate = model.DateOf(int64(0)) }, "issueDate", 0, "Issue date is required"},
		{"supplier", func(i *model.InvoiceInput) { i.Supplier = nil }, "supplier", 0, "Supplier is required"},
		{"supplier name", func(i *model.InvoiceInput) { i.Supplier.RegistrationName = "" }, "supplier.registrationName", 0, "Supplier registration name is required"},
		{"supplier company id", func(i *model.InvoiceInput) { i.Supplier.CompanyID = "" }, "supplier.companyId", 0, "Supplier company ID is required"},
		{"supplier address", func(i *model.InvoiceInput) { i.Supplier.Address = nil }, "supplier.address", 0, "Supplier address is required"},
		{"supplier street", func(i *model.InvoiceInput) { i.Supplier.Address.Street = "" }, "supplier.address.street", 0, "Supplier street is required"},
		{"supplier city", func(i *model.InvoiceInput) { i.Supplier.Address.City = "" }, "supplier.address.city", 0, "Supplier city is required"},
		{"supplier postal code", func(i *model.InvoiceInput) { i.Supplier.Address.PostalCode = "" }, "supplier.address.postalCode", 0, "Supplier postal code is required"},
		{"customer", func(i *model.InvoiceInput) { i.Customer = nil }, "customer", 0, "Customer is required"},
		{"customer name", func(i *model.InvoiceInput) { i.Customer.RegistrationName = "\t" }, "customer.registrationName", 0, "Customer registration name is required"},
		{"lines", func(i *model.InvoiceInput) { i.Lines = nil }, "lines", 0, "Invoice lines are required"},
		{"line name", func(i *model.InvoiceInput) { i.Lines[1].Name = "" }, "lines[1].name", 2, "Line 2: name is required"},
		{"line quantity missing", func(i *model.InvoiceInput) { i.Lines[0].Quantity = model.Number{} }, "lines[0].quantity", 1, "Line 1: quantity must be a number"},
		{"line quantity text", func(i *model.InvoiceInput) { i.Lines[0].Quantity = model.NumberOf("abc") }, "lines[0].quantity", 1, "Line 1: quantity must be a number"},
		{"line unit price negative", func(i *model.InvoiceInput) { i.Lines[1].UnitPrice = model.NumberOf("-0.01") }, "lines[1].unitPrice", 2, "Line 2: unit price must be a non-negative number"},
		{"line unit price missing", func(i *model.InvoiceInput) { i.Lines[1].UnitPrice = model.Number{} }, "lines[1].unitPrice", 2, "Line 2: unit price must be a non-negative number"},
		{"line tax percent above range", func(i *model.InvoiceInput) { i.Lines[0].TaxPercent = model.NumberOf("100.5") }, "lines[0].taxPercent", 1, "Line 1: tax percent must be between 0 and 100"},
		{"line tax percent negative", func(i *model.InvoiceInput) { i.Lines[0].TaxPercent = model.NumberOf("-1") }, "lines[0].taxPercent", 1, "Line 1: tax percent must be between 0 and 100"},
		{"line tax percent text", func(i *model.InvoiceInput) { i.Lines[0].TaxPercent = model.NumberOf("high") }, "lines[0].taxPercent", 1, "Line 1: tax percent must be between 0 and 100"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := validInvoice()
			tt.mutate(inv)

			err := validation.Validate(inv)
			require.Error(t, err)

			var verr *model.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.message, verr.Error())
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.line, verr.Line)
		})
	}
}

func TestValidate_Order(t *testing.T) {
	inv := validInvoice()
	inv.Supplier.Address.City = ""
	inv.Customer = nil
	inv.Lines[0].Name = ""

	err := validation.Validate(inv)
	require.Error(t, err)
	assert.Equal(t, "Supplier city is required", err.Error())
}

func TestValidate_LinesInOrder(t *testing.T) {
	inv := validInvoice()
	inv.Lines[0].UnitPrice = model.NumberOf("-5")
	inv.Lines[1].Name = ""

	err := validation.Validate(inv)
	require.Error(t, err)
	assert.Equal(t, "Line 1: unit price must be a non-negative number", err.Error())
}

func TestValidate_TaxPercentBounds(t *testing.T) {
	for _, pct := range []string{"0", "100", "9", "5.5"} {
		inv := validInvoice()
		inv.Lines[0].TaxPercent = model.NumberOf(pct)
		assert.NoError(t, validation.Validate(inv), pct)
	}
}

func TestValidate_NilInput(t *testing.T) {
	err := validation.Validate(nil)
	require.Error(t, err)
	assert.Equal(t, "Invoice number is required", err.Error())
}

func TestValidate_OptionalCustomerFields(t *testing.T) {
	inv := validInvoice()
	inv.Customer.CompanyID = ""
	inv.Customer.Address = nil
	inv.Supplier.Address.County = ""
	inv.Supplier.Address.Country = ""
	assert.NoError(t, validation.Validate(inv))
}
