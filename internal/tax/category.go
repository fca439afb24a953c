// Package tax computes line amounts, assigns VAT categories and aggregates
// an invoice into per-rate subtotals and document totals.
package tax

import (
	"github.com/shopspring/decimal"

	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/refdata"
)

// CategoryCode is a UNCL5305 duty or tax category
type CategoryCode string

const (
	CategoryStandard     CategoryCode = "S"
	CategoryZeroRated    CategoryCode = "Z"
	CategoryOutsideScope CategoryCode = "O"
)

// Category is the VAT treatment of a line or subtotal
type Category struct {
	Code                CategoryCode
	Percent             decimal.Decimal
	ExemptionReasonCode string
}

// HasPercent reports whether the category is written with a percent.
// Outside-scope categories never carry one.
func (c Category) HasPercent() bool {
	return c.Code != CategoryOutsideScope
}

// key identifies the subtotal group of a category
func (c Category) key() string {
	return string(c.Code) + "/" + c.Percent.String()
}

// Classify assigns the category of a line. Suppliers that are not VAT
// payers invoice outside the scope of VAT whatever the line says.
func Classify(vatPayer bool, percent decimal.Decimal) Category {
	switch {
	case !vatPayer:
		return Category{
			Code:                CategoryOutsideScope,
			Percent:             money.Zero,
			ExemptionReasonCode: refdata.ExemptionReasonOutsideScope,
		}
	case percent.IsZero():
		return Category{Code: CategoryZeroRated, Percent: money.Zero}
	default:
		return Category{Code: CategoryStandard, Percent: percent}
	}
}

// LineAmount is quantity x unit price rounded to 2 places
func LineAmount(quantity, unitPrice decimal.Decimal) decimal.Decimal {
	return money.Mul(quantity, unitPrice)
}
