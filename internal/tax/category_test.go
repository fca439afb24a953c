package tax_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/tax"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		vatPayer  bool
		percent   string
		code      tax.CategoryCode
		wantPct   string
		exemption string
	}{
		{"standard", true, "19", tax.CategoryStandard, "19", ""},
		{"reduced", true, "9", tax.CategoryStandard, "9", ""},
		{"zero rated", true, "0", tax.CategoryZeroRated, "0", ""},
		{"zero with decimals", true, "0.00", tax.CategoryZeroRated, "0", ""},
		{"non-payer ignores percent", false, "19", tax.CategoryOutsideScope, "0", "VATEX-EU-O"},
		{"non-payer zero", false, "0", tax.CategoryOutsideScope, "0", "VATEX-EU-O"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tax.Classify(tt.vatPayer, money.MustFromString(tt.percent))
			assert.Equal(t, tt.code, c.Code)
			assert.True(t, money.MustFromString(tt.wantPct).Equal(c.Percent))
			assert.Equal(t, tt.exemption, c.ExemptionReasonCode)
		})
	}
}

func TestCategory_HasPercent(t *testing.T) {
	assert.True(t, tax.Classify(true, money.FromInt(19)).HasPercent())
	assert.True(t, tax.Classify(true, money.Zero).HasPercent())
	assert.False(t, tax.Classify(false, money.FromInt(19)).HasPercent())
}

func TestLineAmount(t *testing.T) {
	tests := []struct {
		qty, price, want string
	}{
		{"2", "10.345", "20.69"},
		{"1", "50", "50.00"},
		{"3", "0", "0.00"},
		{"1", "0.005", "0.01"},
		{"-1", "0.005", "-0.01"},
		{"0.333", "3", "1.00"},
		{"1.5", "2.335", "3.50"},
	}

	for _, tt := range tests {
		t.Run(tt.qty+"x"+tt.price, func(t *testing.T) {
			got := tax.LineAmount(money.MustFromString(tt.qty), money.MustFromString(tt.price))
			assert.Equal(t, tt.want, money.FormatAmount(got))
		})
	}
}
