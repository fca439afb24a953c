package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/decimal"
	"github.com/rezonia/efactura/internal/processor"
)

var (
	outputFile string
	outputDir  string
	timeout    time.Duration
)

var generateCmd = &cobra.Command{
	Use:   "generate [files...]",
	Short: "Generate CIUS-RO XML from JSON invoices",
	Long: `Generate a CIUS-RO UBL document for each JSON invoice.

With a single input and no --output the document is written to stdout.
With several inputs each document is written next to its input (or into
--out-dir) with the .xml extension.

Examples:
  efactura generate invoice.json
  efactura generate invoice.json -o invoice.xml
  efactura generate invoices/ --out-dir out/`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file for a single input (default: stdout)")
	generateCmd.Flags().StringVar(&outputDir, "out-dir", "", "Directory for generated documents")
	generateCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Processing timeout per file")
}

// GenerateResult is the outcome of one input file
type GenerateResult struct {
	File     string   `json:"file"`
	Output   string   `json:"output,omitempty"`
	Payable  string   `json:"payable,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func runGenerate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	files = filterExt(files, ".json")
	if len(files) == 0 {
		return fmt.Errorf("no JSON invoices found")
	}
	if outputFile != "" && len(files) > 1 {
		return fmt.Errorf("--output accepts a single input, got %d; use --out-dir", len(files))
	}

	pipeline := newPipeline()
	toStdout := len(files) == 1 && outputFile == "" && outputDir == ""

	results := make([]*GenerateResult, 0, len(files))
	failed := 0
	for _, file := range files {
		log.Debug().Str("file", file).Msg("generating")

		result, xml := generateFile(cmd.Context(), pipeline, file)
		if result.Error == "" {
			if toStdout {
				fmt.Print(xml)
			} else {
				result.Output = outputPath(file)
				if err := os.WriteFile(result.Output, []byte(xml), 0o644); err != nil {
					result.Error = fmt.Sprintf("failed to write output: %v", err)
				}
			}
		}
		if result.Error != "" {
			failed++
		}
		results = append(results, result)
	}

	if !toStdout || failed > 0 {
		if err := report(results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d invoices failed", failed, len(files))
	}
	return nil
}

func generateFile(parent context.Context, pipeline *processor.Pipeline, file string) (*GenerateResult, string) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	result := &GenerateResult{File: file}

	data, err := os.ReadFile(file)
	if err != nil {
		result.Error = fmt.Sprintf("failed to read file: %v", err)
		return result, ""
	}

	out := pipeline.GenerateBytes(ctx, data)
	result.Warnings = out.Warnings
	if out.Error != nil {
		result.Error = out.Error.Error()
		return result, ""
	}

	result.Payable = decimal.FormatAmount(out.Totals.PayableAmount)
	return result, out.XML
}

func outputPath(input string) string {
	if outputFile != "" {
		return outputFile
	}
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input)) + ".xml"
	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

func report(results []*GenerateResult) error {
	if outputFormat == "json" {
		return printJSON(results)
	}

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(os.Stderr, "✗ %s: %s\n", r.File, r.Error)
		} else {
			fmt.Fprintf(os.Stderr, "✓ %s -> %s (payable %s)\n", r.File, r.Output, r.Payable)
		}
		for _, w := range r.Warnings {
			fmt.Fprintf(os.Stderr, "  ⚠ %s\n", w)
		}
	}
	return nil
}

func filterExt(files []string, ext string) []string {
	out := files[:0]
	for _, f := range files {
		if strings.EqualFold(filepath.Ext(f), ext) {
			out = append(out, f)
		}
	}
	return out
}
