package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/processor"
	"github.com/rezonia/efactura/internal/ubl"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [files...]",
	Short: "Show the header and totals of invoices",
	Long: `Display the parties, VAT subtotals and totals of CIUS-RO documents.

A JSON invoice is shown as the document it would generate.

Examples:
  efactura inspect invoice.xml
  efactura inspect invoice.json -f json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found")
	}

	pipeline := newPipeline()
	summaries := make(map[string]*ubl.Summary, len(files))
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file, err)
		}

		s, err := pipeline.Inspect(cmd.Context(), data)
		if err != nil {
			return fmt.Errorf("%s (%s): %w", file, processor.DetectFormat(data), err)
		}
		summaries[file] = s
	}

	if outputFormat == "json" {
		return printJSON(summaries)
	}

	for _, file := range files {
		printSummary(file, summaries[file])
		fmt.Println()
	}
	return nil
}

func printSummary(file string, s *ubl.Summary) {
	fmt.Printf("File: %s\n", file)
	fmt.Printf("  Invoice:  %s (type %s, %s)\n", s.ID, s.TypeCode, s.Currency)
	fmt.Printf("  Issued:   %s, due %s\n", s.IssueDate, s.DueDate)
	fmt.Printf("  Supplier: %s %s [%s %s %s]\n", s.Supplier.Name, s.Supplier.CompanyID, s.Supplier.City, s.Supplier.Subdivision, s.Supplier.CountryCode)
	fmt.Printf("  Customer: %s %s [%s %s %s]\n", s.Customer.Name, s.Customer.CompanyID, s.Customer.City, s.Customer.Subdivision, s.Customer.CountryCode)
	fmt.Printf("  Lines:    %d\n", s.LineCount)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  CATEGORY\tPERCENT\tTAXABLE\tTAX")
	for _, sub := range s.Subtotals {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\n", sub.Category, sub.Percent, sub.TaxableAmount, sub.TaxAmount)
	}
	w.Flush()

	fmt.Printf("  Taxable:  %s\n", s.Totals.TaxExclusiveAmount)
	fmt.Printf("  VAT:      %s\n", s.Totals.TaxAmount)
	fmt.Printf("  Payable:  %s\n", s.Totals.PayableAmount)
}
