package ubl

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/samber/lo"

	"github.com/rezonia/efactura/internal/dateutil"
	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/refdata"
	"github.com/rezonia/efactura/internal/tax"
	"github.com/rezonia/efactura/internal/validation"
)

const (
	rootInvoice = "Invoice"
	taxSchemeID = refdata.TaxSchemeVAT
)

// Assembler turns validated invoice input into a UBL document
type Assembler struct {
	currency   string
	aggregator *tax.Aggregator
	strictIDs  bool
}

// Option configures an Assembler
type Option func(*Assembler)

// WithCurrency sets the currency used when the input has none
func WithCurrency(code string) Option {
	return func(a *Assembler) {
		if code != "" {
			a.currency = strings.ToUpper(code)
		}
	}
}

// WithAggregator replaces the tax aggregator
func WithAggregator(agg *tax.Aggregator) Option {
	return func(a *Assembler) {
		if agg != nil {
			a.aggregator = agg
		}
	}
}

// WithStrictIdentifiers rejects party identifiers that are neither a valid
// CNP nor a valid CUI/CIF instead of passing them through
func WithStrictIdentifiers(strict bool) Option {
	return func(a *Assembler) {
		a.strictIDs = strict
	}
}

// NewAssembler creates an assembler
func NewAssembler(opts ...Option) *Assembler {
	a := &Assembler{
		currency:   refdata.DefaultCurrency,
		aggregator: tax.DefaultAggregator(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble validates input and builds the document. Structural defects are
// returned as *model.ValidationError, unreadable dates and numbers as
// *model.ParseError; nothing is built in either case.
func (a *Assembler) Assemble(input *model.InvoiceInput) (*Document, error) {
	if err := validation.Validate(input); err != nil {
		return nil, err
	}
	typeCode, err := invoiceTypeCode(input.TypeCode)
	if err != nil {
		return nil, err
	}

	issueDate, err := dateutil.Format(input.IssueDate.Value())
	if err != nil {
		return nil, model.NewParseError("issueDate", "invalid date", err)
	}
	dueDate := issueDate
	if !input.DueDate.IsZero() {
		if dueDate, err = dateutil.Format(input.DueDate.Value()); err != nil {
			return nil, model.NewParseError("dueDate", "invalid date", err)
		}
	}

	summary, err := a.aggregator.Aggregate(input.Supplier.IsVATPayer, input.Lines)
	if err != nil {
		return nil, err
	}

	w := &warnings{}
	supplier, err := a.resolveParty("supplier", input.Supplier, w)
	if err != nil {
		return nil, err
	}
	customer, err := a.resolveParty("customer", input.Customer, w)
	if err != nil {
		return nil, err
	}

	currency := strings.ToUpper(lo.CoalesceOrEmpty(strings.TrimSpace(input.Currency), a.currency))

	doc, root := newTree(rootInvoice)
	root.CreateAttr("xmlns", refdata.NamespaceInvoice)
	root.CreateAttr("xmlns:cac", refdata.NamespaceCAC)
	root.CreateAttr("xmlns:cbc", refdata.NamespaceCBC)

	addText(root, "cbc:CustomizationID", refdata.CustomizationID)
	addText(root, "cbc:ID", strings.TrimSpace(input.Number))
	addText(root, "cbc:IssueDate", issueDate)
	addText(root, "cbc:DueDate", dueDate)
	addText(root, "cbc:InvoiceTypeCode", typeCode)
	addOptional(root, "cbc:Note", strings.TrimSpace(input.Note))
	addText(root, "cbc:DocumentCurrencyCode", currency)

	supplier.write(root.CreateElement("cac:AccountingSupplierParty"))
	customer.write(root.CreateElement("cac:AccountingCustomerParty"))

	writePaymentMeans(root, input.PaymentIBAN)
	writeTaxTotal(root, summary, currency)
	writeMonetaryTotal(root, summary.Totals, currency)

	for i := range summary.Lines {
		writeLine(root, &input.Lines[i], summary.Lines[i], currency)
	}

	doc.Indent(indent)

	return &Document{
		doc:      doc,
		Tax:      summary,
		Warnings: w.list,
	}, nil
}

// invoiceTypeCode accepts the commercial invoice and credit note codes; blank
// means a commercial invoice.
func invoiceTypeCode(code string) (string, error) {
	switch code = strings.TrimSpace(code); code {
	case "":
		return refdata.TypeCodeCommercialInvoice, nil
	case refdata.TypeCodeCommercialInvoice, refdata.TypeCodeCreditNote:
		return code, nil
	default:
		return "", model.NewValidationError("typeCode", "Invoice type code must be 380 or 381")
	}
}

func writePaymentMeans(root *etree.Element, iban string) {
	pm := root.CreateElement("cac:PaymentMeans")
	addText(pm, "cbc:PaymentMeansCode", refdata.PaymentMeansCreditTransfer)

	iban = strings.ToUpper(strings.Join(strings.Fields(iban), ""))
	if iban != "" {
		addText(pm.CreateElement("cac:PayeeFinancialAccount"), "cbc:ID", iban)
	}
}

func writeTaxTotal(root *etree.Element, s *tax.Summary, currency string) {
	tt := root.CreateElement("cac:TaxTotal")
	addAmount(tt, "cbc:TaxAmount", s.Totals.TaxAmount, currency)

	for _, g := range s.Groups {
		sub := tt.CreateElement("cac:TaxSubtotal")
		addAmount(sub, "cbc:TaxableAmount", g.TaxableAmount, currency)
		addAmount(sub, "cbc:TaxAmount", g.TaxAmount, currency)

		cat := sub.CreateElement("cac:TaxCategory")
		writeCategory(cat, g.Category)
		if g.Category.ExemptionReasonCode != "" {
			addText(cat, "cbc:TaxExemptionReasonCode", g.Category.ExemptionReasonCode)
		}
		addTaxScheme(cat)
	}
}

func writeCategory(el *etree.Element, c tax.Category) {
	addText(el, "cbc:ID", string(c.Code))
	if c.HasPercent() {
		addText(el, "cbc:Percent", c.Percent.StringFixed(2))
	}
}

func writeMonetaryTotal(root *etree.Element, t tax.Totals, currency string) {
	lmt := root.CreateElement("cac:LegalMonetaryTotal")
	addAmount(lmt, "cbc:LineExtensionAmount", t.LineExtensionAmount, currency)
	addAmount(lmt, "cbc:TaxExclusiveAmount", t.TaxableAmount, currency)
	addAmount(lmt, "cbc:TaxInclusiveAmount", t.TaxInclusiveAmount, currency)
	addAmount(lmt, "cbc:PayableAmount", t.PayableAmount, currency)
}

func writeLine(root *etree.Element, line *model.InvoiceLine, res tax.LineResult, currency string) {
	el := root.CreateElement("cac:InvoiceLine")
	addText(el, "cbc:ID", lo.CoalesceOrEmpty(strings.TrimSpace(line.ID), fmt.Sprint(res.Index+1)))

	qty := addText(el, "cbc:InvoicedQuantity", res.Quantity.String())
	qty.CreateAttr("unitCode", lo.CoalesceOrEmpty(strings.TrimSpace(line.UnitCode), refdata.DefaultUnitCode))

	addAmount(el, "cbc:LineExtensionAmount", res.Amount, currency)

	item := el.CreateElement("cac:Item")
	name := strings.TrimSpace(line.Name)
	if desc := strings.TrimSpace(line.Description); desc != "" && desc != name {
		addText(item, "cbc:Description", desc)
	}
	addText(item, "cbc:Name", name)

	cat := item.CreateElement("cac:ClassifiedTaxCategory")
	writeCategory(cat, res.Category)
	addTaxScheme(cat)

	price := el.CreateElement("cac:Price")
	pa := addText(price, "cbc:PriceAmount", priceString(res))
	pa.CreateAttr("currencyID", currency)
}

// priceString keeps the unit price precision but never fewer than 2 places
func priceString(res tax.LineResult) string {
	if money.Round2(res.Price).Equal(res.Price) {
		return money.FormatAmount(res.Price)
	}
	return res.Price.String()
}

type warnings struct {
	list []string
}

func (w *warnings) add(format string, args ...any) {
	w.list = append(w.list, fmt.Sprintf(format, args...))
}
