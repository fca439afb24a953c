package efactura

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	money "github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/processor"
)

// Options configures a Generator. The zero value uses the standard
// Romanian defaults.
type Options struct {
	Currency          string           // used when an invoice has none; blank means RON
	DefaultTaxPercent *decimal.Decimal // for VAT-payer lines without a percent; nil means 19
	StrictIdentifiers bool             // reject identifiers that are not a valid CNP or CUI
	Logger            *zerolog.Logger  // nil disables logging
}

// DefaultOptions returns the standard Romanian defaults
func DefaultOptions() Options {
	return Options{
		Currency:          DefaultCurrency,
		DefaultTaxPercent: lo.ToPtr(decimal.NewFromInt(DefaultTaxPercent)),
	}
}

// Totals are the document totals with 2 decimals
type Totals struct {
	TaxableAmount      string `json:"taxableAmount"`
	TaxAmount          string `json:"taxAmount"`
	TaxInclusiveAmount string `json:"taxInclusiveAmount"`
	PayableAmount      string `json:"payableAmount"`
}

// Document is a generated CIUS-RO document
type Document struct {
	XML      string   `json:"xml"`
	Totals   Totals   `json:"totals"`
	Warnings []string `json:"warnings,omitempty"`
}

// Generator generates CIUS-RO documents
type Generator struct {
	pipeline *processor.Pipeline
	options  Options
}

// NewGenerator creates a generator with the given options
func NewGenerator(opts Options) *Generator {
	pipelineOpts := []processor.Option{
		processor.WithStrictIdentifiers(opts.StrictIdentifiers),
	}
	if opts.Currency != "" {
		pipelineOpts = append(pipelineOpts, processor.WithCurrency(opts.Currency))
	}
	if opts.DefaultTaxPercent != nil {
		pipelineOpts = append(pipelineOpts, processor.WithDefaultTaxPercent(*opts.DefaultTaxPercent))
	}
	if opts.Logger != nil {
		pipelineOpts = append(pipelineOpts, processor.WithLogger(*opts.Logger))
	}

	return &Generator{
		pipeline: processor.NewPipeline(pipelineOpts...),
		options:  opts,
	}
}

// NewDefaultGenerator creates a generator with default options
func NewDefaultGenerator() *Generator {
	return NewGenerator(DefaultOptions())
}

// Generate validates inv and returns its document. Structural defects are
// returned as *ValidationError.
func (g *Generator) Generate(ctx context.Context, inv *Invoice) (*Document, error) {
	return toDocument(g.pipeline.Generate(ctx, inv))
}

// GenerateJSON decodes a JSON invoice from r and generates its document
func (g *Generator) GenerateJSON(ctx context.Context, r io.Reader) (*Document, error) {
	return toDocument(g.pipeline.GenerateJSON(ctx, r))
}

// Validate runs the structural checks only
func (g *Generator) Validate(inv *Invoice) error {
	return g.pipeline.Validate(inv)
}

// Inspect summarizes a generated document or a JSON invoice
func (g *Generator) Inspect(ctx context.Context, r io.Reader) (*Summary, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, model.NewParseError("input", "failed to read input", err)
	}
	return g.pipeline.Inspect(ctx, data)
}

// DecodeInvoice reads a JSON invoice
func DecodeInvoice(r io.Reader) (*Invoice, error) {
	return processor.DecodeInput(r)
}

func toDocument(result *processor.Result) (*Document, error) {
	if result.Error != nil {
		return nil, result.Error
	}

	return &Document{
		XML: result.XML,
		Totals: Totals{
			TaxableAmount:      money.FormatAmount(result.Totals.TaxableAmount),
			TaxAmount:          money.FormatAmount(result.Totals.TaxAmount),
			TaxInclusiveAmount: money.FormatAmount(result.Totals.TaxInclusiveAmount),
			PayableAmount:      money.FormatAmount(result.Totals.PayableAmount),
		},
		Warnings: result.Warnings,
	}, nil
}
