package tax

import (
	"fmt"

	"github.com/shopspring/decimal"

	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/refdata"
)

// LineResult is the computed amount and category of one input line
type LineResult struct {
	Index    int // 0-based position in the input
	Quantity decimal.Decimal
	Price    decimal.Decimal
	Amount   decimal.Decimal
	Category Category
}

// Group is a subtotal of all lines sharing a category and percent
type Group struct {
	Category      Category
	TaxableAmount decimal.Decimal
	TaxAmount     decimal.Decimal
	Lines         []int
}

// Totals are the document-level monetary totals
type Totals struct {
	LineExtensionAmount decimal.Decimal
	TaxableAmount       decimal.Decimal
	TaxAmount           decimal.Decimal
	TaxInclusiveAmount  decimal.Decimal
	PayableAmount       decimal.Decimal
}

// Summary is the result of aggregating an invoice
type Summary struct {
	Lines  []LineResult
	Groups []Group // in order of first appearance
	Totals Totals
}

// Aggregator groups invoice lines by tax category
type Aggregator struct {
	// DefaultPercent applies to VAT-payer lines without a tax percent
	DefaultPercent decimal.Decimal
}

// NewAggregator creates an aggregator with the given default percent
func NewAggregator(defaultPercent decimal.Decimal) *Aggregator {
	return &Aggregator{DefaultPercent: defaultPercent}
}

// DefaultAggregator uses the standard Romanian VAT rate
func DefaultAggregator() *Aggregator {
	return NewAggregator(money.FromInt(refdata.DefaultTaxPercent))
}

// Aggregate computes line amounts, subtotals and totals. Each line amount
// is rounded before it joins its group, and each group's tax is rounded
// once from the group's taxable amount.
func (a *Aggregator) Aggregate(vatPayer bool, lines []model.InvoiceLine) (*Summary, error) {
	s := &Summary{Lines: make([]LineResult, 0, len(lines))}
	index := make(map[string]int)

	for i := range lines {
		line := &lines[i]

		qty, ok := line.Quantity.Decimal()
		if !ok {
			return nil, model.NewParseError(lineField(i, "quantity"), "not a number", nil)
		}
		price, ok := line.UnitPrice.Decimal()
		if !ok {
			return nil, model.NewParseError(lineField(i, "unitPrice"), "not a number", nil)
		}
		pct := a.DefaultPercent
		if line.HasTaxPercent() {
			if pct, ok = line.TaxPercent.Decimal(); !ok {
				return nil, model.NewParseError(lineField(i, "taxPercent"), "not a number", nil)
			}
		}

		res := LineResult{
			Index:    i,
			Quantity: qty,
			Price:    price,
			Amount:   LineAmount(qty, price),
			Category: Classify(vatPayer, pct),
		}
		s.Lines = append(s.Lines, res)

		k := res.Category.key()
		g, found := index[k]
		if !found {
			g = len(s.Groups)
			index[k] = g
			s.Groups = append(s.Groups, Group{
				Category:      res.Category,
				TaxableAmount: money.Zero,
			})
		}
		s.Groups[g].TaxableAmount = s.Groups[g].TaxableAmount.Add(res.Amount)
		s.Groups[g].Lines = append(s.Groups[g].Lines, i)
	}

	taxable := make([]decimal.Decimal, 0, len(s.Groups))
	taxes := make([]decimal.Decimal, 0, len(s.Groups))
	for i := range s.Groups {
		g := &s.Groups[i]
		if g.Category.Code == CategoryStandard {
			g.TaxAmount = money.CalculateVAT(g.TaxableAmount, g.Category.Percent)
		} else {
			g.TaxAmount = money.Zero
		}
		taxable = append(taxable, g.TaxableAmount)
		taxes = append(taxes, g.TaxAmount)
	}

	s.Totals.TaxableAmount = money.Sum(taxable)
	s.Totals.LineExtensionAmount = s.Totals.TaxableAmount
	s.Totals.TaxAmount = money.Sum(taxes)
	s.Totals.TaxInclusiveAmount = s.Totals.TaxableAmount.Add(s.Totals.TaxAmount)
	s.Totals.PayableAmount = s.Totals.TaxInclusiveAmount

	return s, nil
}

func lineField(i int, name string) string {
	return fmt.Sprintf("lines[%d].%s", i, name)
}
