// Package processor runs invoice input through validation, tax aggregation
// and document assembly.
package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/rezonia/efactura/internal/logger"
	"github.com/rezonia/efactura/internal/metrics"
	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/refdata"
	"github.com/rezonia/efactura/internal/tax"
	"github.com/rezonia/efactura/internal/ubl"
	"github.com/rezonia/efactura/internal/validation"
)

// Format represents the detected input format
type Format int

const (
	FormatUnknown Format = iota
	FormatJSON
	FormatXML
)

func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatXML:
		return "xml"
	default:
		return "unknown"
	}
}

// Result contains the outcome of one generation
type Result struct {
	XML      string
	Document *ubl.Document
	Totals   *tax.Totals
	Warnings []string
	Error    error
}

// Pipeline generates CIUS-RO documents
type Pipeline struct {
	logger         zerolog.Logger
	metrics        *metrics.Metrics
	currency       string
	defaultPercent decimal.Decimal
	strictIDs      bool
	assembler      *ubl.Assembler
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithLogger sets the logger
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// WithMetrics records outcomes on m
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithCurrency sets the currency used when the input has none
func WithCurrency(code string) Option {
	return func(p *Pipeline) {
		p.currency = code
	}
}

// WithDefaultTaxPercent sets the percent applied to VAT-payer lines that
// carry none
func WithDefaultTaxPercent(pct decimal.Decimal) Option {
	return func(p *Pipeline) {
		p.defaultPercent = pct
	}
}

// WithStrictIdentifiers rejects party identifiers that are neither a
// valid CNP nor a valid CUI/CIF
func WithStrictIdentifiers(strict bool) Option {
	return func(p *Pipeline) {
		p.strictIDs = strict
	}
}

// NewPipeline creates a new processing pipeline
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger:         zerolog.Nop(),
		currency:       refdata.DefaultCurrency,
		defaultPercent: decimal.NewFromInt(refdata.DefaultTaxPercent),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.assembler = ubl.NewAssembler(
		ubl.WithCurrency(p.currency),
		ubl.WithAggregator(tax.NewAggregator(p.defaultPercent)),
		ubl.WithStrictIdentifiers(p.strictIDs),
	)
	return p
}

// Validate runs the structural checks only
func (p *Pipeline) Validate(input *model.InvoiceInput) error {
	return validation.Validate(input)
}

// Generate validates input and assembles its document
func (p *Pipeline) Generate(ctx context.Context, input *model.InvoiceInput) *Result {
	result := &Result{}
	if err := ctx.Err(); err != nil {
		result.Error = err
		return result
	}

	log := logger.WithRequestID(ctx, p.logger)
	start := time.Now()
	doc, err := p.assembler.Assemble(input)
	if err != nil {
		p.recordFailure(log, input, err)
		result.Error = err
		return result
	}

	data, err := doc.Bytes()
	if err != nil {
		err = fmt.Errorf("failed to serialize document: %w", err)
		p.recordFailure(log, input, err)
		result.Error = err
		return result
	}

	result.Document = doc
	result.XML = string(data)
	result.Totals = &doc.Tax.Totals
	result.Warnings = doc.Warnings

	elapsed := time.Since(start)
	p.metrics.IncrementDocument(metrics.OutcomeGenerated)
	p.metrics.AddWarnings(len(doc.Warnings))
	p.metrics.ObserveGenerateLatency(elapsed)

	for _, w := range doc.Warnings {
		log.Warn().Str("invoice", input.Number).Msg(w)
	}
	log.Debug().
		Str("invoice", input.Number).
		Int("lines", len(input.Lines)).
		Str("payable", doc.Tax.Totals.PayableAmount.StringFixed(2)).
		Dur("elapsed", elapsed).
		Msg("document generated")

	return result
}

// GenerateJSON decodes a JSON invoice from r and generates its document
func (p *Pipeline) GenerateJSON(ctx context.Context, r io.Reader) *Result {
	input, err := DecodeInput(r)
	if err != nil {
		p.metrics.IncrementDocument(metrics.OutcomeFailed)
		return &Result{Error: err}
	}
	return p.Generate(ctx, input)
}

// GenerateBytes is GenerateJSON over a byte slice
func (p *Pipeline) GenerateBytes(ctx context.Context, data []byte) *Result {
	return p.GenerateJSON(ctx, bytes.NewReader(data))
}

// Inspect summarizes a generated document, or the document a JSON invoice
// would generate
func (p *Pipeline) Inspect(ctx context.Context, data []byte) (*ubl.Summary, error) {
	switch DetectFormat(data) {
	case FormatXML:
		return ubl.ParseSummaryBytes(data)
	case FormatJSON:
		result := p.GenerateBytes(ctx, data)
		if result.Error != nil {
			return nil, result.Error
		}
		return result.Document.Summary()
	default:
		return nil, fmt.Errorf("unsupported input format")
	}
}

func (p *Pipeline) recordFailure(log zerolog.Logger, input *model.InvoiceInput, err error) {
	number := ""
	if input != nil {
		number = input.Number
	}

	var verr *model.ValidationError
	if errors.As(err, &verr) {
		p.metrics.IncrementDocument(metrics.OutcomeInvalid)
		p.metrics.IncrementValidationFailure(verr.Field)
		log.Info().Str("invoice", number).Str("field", verr.Field).Msg(verr.Message)
		return
	}

	p.metrics.IncrementDocument(metrics.OutcomeFailed)
	log.Error().Err(err).Str("invoice", number).Msg("document generation failed")
}

// DecodeInput reads a JSON invoice. Malformed JSON is a *model.ParseError.
func DecodeInput(r io.Reader) (*model.InvoiceInput, error) {
	var input model.InvoiceInput
	dec := json.NewDecoder(r)
	if err := dec.Decode(&input); err != nil {
		return nil, model.NewParseError("body", "invalid invoice JSON", err)
	}
	return &input, nil
}

// DetectFormat detects the input format from content
func DetectFormat(data []byte) Format {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	data = bytes.TrimLeft(data, " \t\r\n")
	if len(data) == 0 {
		return FormatUnknown
	}

	switch data[0] {
	case '{':
		return FormatJSON
	case '<':
		return FormatXML
	default:
		return FormatUnknown
	}
}
