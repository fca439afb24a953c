package ubl

import (
	"errors"
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// ErrNotInvoice is returned when the document root is not a UBL Invoice
var ErrNotInvoice = errors.New("document is not a UBL invoice")

// Summary is the header, parties and totals of a UBL invoice
type Summary struct {
	CustomizationID string         `json:"customizationId"`
	ID              string         `json:"id"`
	IssueDate       string         `json:"issueDate"`
	DueDate         string         `json:"dueDate,omitempty"`
	TypeCode        string         `json:"typeCode"`
	Currency        string         `json:"currency"`
	Supplier        PartySummary   `json:"supplier"`
	Customer        PartySummary   `json:"customer"`
	Subtotals       []TaxSubtotal  `json:"subtotals"`
	LineCount       int            `json:"lineCount"`
	Totals          MonetaryTotals `json:"totals"`
}

// PartySummary identifies a party of the invoice
type PartySummary struct {
	Name        string `json:"name"`
	CompanyID   string `json:"companyId,omitempty"`
	TaxID       string `json:"taxId,omitempty"`
	City        string `json:"city,omitempty"`
	Subdivision string `json:"subdivision,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
}

// TaxSubtotal is one cac:TaxSubtotal as written
type TaxSubtotal struct {
	Category        string `json:"category"`
	Percent         string `json:"percent,omitempty"`
	ExemptionReason string `json:"exemptionReason,omitempty"`
	TaxableAmount   string `json:"taxableAmount"`
	TaxAmount       string `json:"taxAmount"`
}

// MonetaryTotals are the document totals as written
type MonetaryTotals struct {
	LineExtensionAmount string `json:"lineExtensionAmount"`
	TaxExclusiveAmount  string `json:"taxExclusiveAmount"`
	TaxAmount           string `json:"taxAmount"`
	TaxInclusiveAmount  string `json:"taxInclusiveAmount"`
	PayableAmount       string `json:"payableAmount"`
}

// ParseSummary reads a UBL invoice
func ParseSummary(r io.Reader) (*Summary, error) {
	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return summarize(doc)
}

// ParseSummaryBytes reads a UBL invoice from memory
func ParseSummaryBytes(data []byte) (*Summary, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return summarize(doc)
}

// Summary reads back the assembled document
func (d *Document) Summary() (*Summary, error) {
	return summarize(d.doc)
}

func summarize(doc *etree.Document) (*Summary, error) {
	root := doc.Root()
	if root == nil || root.Tag != rootInvoice {
		return nil, ErrNotInvoice
	}

	s := &Summary{
		CustomizationID: childText(root, "cbc:CustomizationID"),
		ID:              childText(root, "cbc:ID"),
		IssueDate:       childText(root, "cbc:IssueDate"),
		DueDate:         childText(root, "cbc:DueDate"),
		TypeCode:        childText(root, "cbc:InvoiceTypeCode"),
		Currency:        childText(root, "cbc:DocumentCurrencyCode"),
		Supplier:        readParty(root.FindElement("cac:AccountingSupplierParty/cac:Party")),
		Customer:        readParty(root.FindElement("cac:AccountingCustomerParty/cac:Party")),
		LineCount:       len(root.SelectElements("cac:InvoiceLine")),
	}

	if tt := root.FindElement("cac:TaxTotal"); tt != nil {
		s.Totals.TaxAmount = childText(tt, "cbc:TaxAmount")
		for _, sub := range tt.FindElements("cac:TaxSubtotal") {
			s.Subtotals = append(s.Subtotals, TaxSubtotal{
				Category:        childText(sub, "cac:TaxCategory/cbc:ID"),
				Percent:         childText(sub, "cac:TaxCategory/cbc:Percent"),
				ExemptionReason: childText(sub, "cac:TaxCategory/cbc:TaxExemptionReasonCode"),
				TaxableAmount:   childText(sub, "cbc:TaxableAmount"),
				TaxAmount:       childText(sub, "cbc:TaxAmount"),
			})
		}
	}

	if lmt := root.FindElement("cac:LegalMonetaryTotal"); lmt != nil {
		s.Totals.LineExtensionAmount = childText(lmt, "cbc:LineExtensionAmount")
		s.Totals.TaxExclusiveAmount = childText(lmt, "cbc:TaxExclusiveAmount")
		s.Totals.TaxInclusiveAmount = childText(lmt, "cbc:TaxInclusiveAmount")
		s.Totals.PayableAmount = childText(lmt, "cbc:PayableAmount")
	}

	return s, nil
}

func readParty(el *etree.Element) PartySummary {
	if el == nil {
		return PartySummary{}
	}
	return PartySummary{
		Name:        childText(el, "cac:PartyLegalEntity/cbc:RegistrationName"),
		CompanyID:   childText(el, "cac:PartyLegalEntity/cbc:CompanyID"),
		TaxID:       childText(el, "cac:PartyTaxScheme/cbc:CompanyID"),
		City:        childText(el, "cac:PostalAddress/cbc:CityName"),
		Subdivision: childText(el, "cac:PostalAddress/cbc:CountrySubentity"),
		CountryCode: childText(el, "cac:PostalAddress/cac:Country/cbc:IdentificationCode"),
	}
}

func childText(el *etree.Element, path string) string {
	if c := el.FindElement(path); c != nil {
		return c.Text()
	}
	return ""
}
