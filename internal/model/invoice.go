package model

// InvoiceInput is the loosely-validated description of an invoice as received
// from callers (JSON bodies, CLI files, Go code).
type InvoiceInput struct {
	Number      string        `json:"number"`
	IssueDate   Date          `json:"issueDate"`
	DueDate     Date          `json:"dueDate,omitempty"`
	TypeCode    string        `json:"typeCode,omitempty"` // UNCL1001, defaults to 380
	Currency    string        `json:"currency,omitempty"`
	Note        string        `json:"note,omitempty"`
	Supplier    *Party        `json:"supplier"`
	Customer    *Party        `json:"customer"`
	Lines       []InvoiceLine `json:"lines"`
	PaymentIBAN string        `json:"paymentIban,omitempty"`
}

// Party is a supplier or customer
type Party struct {
	RegistrationName   string   `json:"registrationName"`
	CompanyID          string   `json:"companyId"` // CUI/CIF or CNP, optionally RO-prefixed
	IsVATPayer         bool     `json:"isVatPayer"`
	Address            *Address `json:"address"`
	RegistrationNumber string   `json:"registrationNumber,omitempty"` // trade register number, e.g. J40/123/2020
}

// Address is a free-text postal address
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	County     string `json:"county,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// InvoiceLine is a single invoiced item
type InvoiceLine struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Quantity    Number `json:"quantity"`
	UnitCode    string `json:"unitCode,omitempty"`
	UnitPrice   Number `json:"unitPrice"`
	TaxPercent  Number `json:"taxPercent,omitempty"`
}

// HasTaxPercent reports whether the line carries a tax percent. An empty
// string counts as absent.
func (l *InvoiceLine) HasTaxPercent() bool {
	return l.TaxPercent.IsSet() && l.TaxPercent.Raw() != ""
}
