package cmd

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/config"
	"github.com/rezonia/efactura/internal/logger"
	"github.com/rezonia/efactura/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	verbose           bool
	outputFormat      string
	currency          string
	defaultTaxPercent string
	strictIdentifiers bool

	cfg *config.Config
	log zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "efactura",
	Short: "Generate Romanian CIUS-RO e-invoices (UBL 2.1)",
	Long: `efactura turns JSON invoice descriptions into CIUS-RO UBL documents
for the national RO e-Factura system.

It validates the invoice structure, normalizes CNP/CUI identifiers, county
and Bucharest sector names, groups lines by VAT category and writes the XML.

Examples:
  # Generate a document
  efactura generate invoice.json -o invoice.xml

  # Check an invoice without generating
  efactura validate invoice.json

  # Show the totals of a generated document
  efactura inspect invoice.xml

  # Look up a county code
  efactura lookup county "Judetul Cluj"`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: initConfig,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")
	rootCmd.PersistentFlags().StringVar(&currency, "currency", "", "Default document currency (env: EFACTURA_CURRENCY)")
	rootCmd.PersistentFlags().StringVar(&defaultTaxPercent, "default-tax-percent", "", "VAT percent for lines without one (env: EFACTURA_DEFAULT_TAX_PERCENT)")
	rootCmd.PersistentFlags().BoolVar(&strictIdentifiers, "strict-ids", false, "Reject identifiers that are not a valid CNP or CUI (env: EFACTURA_STRICT_IDENTIFIERS)")
}

// initConfig loads the environment configuration; flags set on the command
// line take precedence
func initConfig(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Load()
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("currency") {
		cfg.Currency = currency
	}
	if flags.Changed("default-tax-percent") {
		if cfg.DefaultTaxPercent, err = decimal.NewFromString(defaultTaxPercent); err != nil {
			return err
		}
	}
	if flags.Changed("strict-ids") {
		cfg.StrictIdentifiers = strictIdentifiers
	}

	logCfg := cfg.GetLoggerConfig()
	if verbose {
		logCfg.Level = "debug"
	}
	if err := logger.Setup(logCfg); err != nil {
		return err
	}
	log = logger.WithComponent("cli")

	return nil
}

func newPipeline() *processor.Pipeline {
	return processor.NewPipeline(
		processor.WithLogger(logger.WithComponent("pipeline")),
		processor.WithCurrency(cfg.Currency),
		processor.WithDefaultTaxPercent(cfg.DefaultTaxPercent),
		processor.WithStrictIdentifiers(cfg.StrictIdentifiers),
	)
}
