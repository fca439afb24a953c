package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/model"
	"github.com/rezonia/efactura/internal/processor"
)

var validateCmd = &cobra.Command{
	Use:   "validate [files...]",
	Short: "Validate JSON invoices",
	Long: `Validate one or more JSON invoices without generating documents.

Checks run in a fixed order and stop at the first defect:
  - invoice number, issue date
  - supplier name, company ID and address (street, city, postal code)
  - customer name
  - lines: name, numeric quantity, non-negative unit price, tax percent 0-100

With --strict-ids, supplier and customer identifiers must also be a valid
CNP or CUI/CIF.

Examples:
  efactura validate invoice.json
  efactura validate invoices/ --strict-ids`,
	Args: cobra.MinimumNArgs(1),
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

// ValidationResult holds the result of validating a single file
type ValidationResult struct {
	File     string   `json:"file"`
	Valid    bool     `json:"valid"`
	Field    string   `json:"field,omitempty"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

func runValidate(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	files = filterExt(files, ".json")
	if len(files) == 0 {
		return fmt.Errorf("no files found to validate")
	}

	pipeline := newPipeline()
	results := make([]*ValidationResult, 0, len(files))
	allValid := true

	for _, file := range files {
		result := validateFile(cmd.Context(), pipeline, file)
		results = append(results, result)

		if !result.Valid {
			allValid = false
		}
	}

	if outputFormat == "json" {
		if err := printJSON(results); err != nil {
			return err
		}
	} else {
		for _, r := range results {
			if r.Valid {
				fmt.Printf("✓ %s: VALID\n", r.File)
			} else {
				fmt.Printf("✗ %s: INVALID\n", r.File)
				for _, e := range r.Errors {
					fmt.Printf("  - %s\n", e)
				}
			}
			for _, w := range r.Warnings {
				fmt.Printf("  ⚠ %s\n", w)
			}
		}
	}

	if !allValid {
		return fmt.Errorf("validation failed for some files")
	}

	return nil
}

// validateFile runs the full generation so identifier and address warnings
// are reported too; the document itself is discarded
func validateFile(ctx context.Context, pipeline *processor.Pipeline, filePath string) *ValidationResult {
	result := &ValidationResult{File: filePath, Valid: true}

	data, err := os.ReadFile(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, fmt.Sprintf("failed to read file: %v", err))
		return result
	}

	out := pipeline.GenerateBytes(ctx, data)
	result.Warnings = out.Warnings
	if out.Error == nil {
		return result
	}

	result.Valid = false
	var verr *model.ValidationError
	if errors.As(out.Error, &verr) {
		result.Field = verr.Field
	}
	result.Errors = append(result.Errors, out.Error.Error())
	return result
}
