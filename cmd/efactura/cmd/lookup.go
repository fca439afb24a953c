package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/efactura/internal/address"
	"github.com/rezonia/efactura/internal/identifier"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Check identifiers and resolve address codes",
	Long: `Run the identifier and address normalizers on a single value.

Examples:
  efactura lookup cnp 1800101221144
  efactura lookup cif RO18547290
  efactura lookup taxid 18547290
  efactura lookup county "Jud. Cluj"
  efactura lookup sector "Bucuresti, sect. 3"
  efactura lookup country "Republica Moldova"`,
}

// LookupResult is the outcome of a lookup
type LookupResult struct {
	Kind   string `json:"kind"`
	Input  string `json:"input"`
	Result string `json:"result,omitempty"`
	Found  bool   `json:"found"`
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.AddCommand(
		lookupCommand("cnp", "Check a personal numeric code (CNP)", func(v string) (string, bool) {
			return v, identifier.IsValidPersonalCode(v)
		}),
		lookupCommand("cif", "Check a company tax code (CUI/CIF)", func(v string) (string, bool) {
			return v, identifier.IsValidCompanyCode(v)
		}),
		lookupCommand("taxid", "Normalize a tax identifier", func(v string) (string, bool) {
			normalized, err := identifier.NormalizeTaxIdentifier(v)
			if err != nil {
				return "", false
			}
			return normalized, identifier.Classify(normalized) != identifier.KindUnknown
		}),
		lookupCommand("county", "Resolve a county to its ISO 3166-2 code", address.ResolveCounty),
		lookupCommand("sector", "Extract a Bucharest sector", address.ResolveBucharestSector),
		lookupCommand("country", "Resolve a country name to its alpha-2 code", identifier.ResolveCountryCode),
	)
}

func lookupCommand(kind, short string, fn func(string) (string, bool)) *cobra.Command {
	return &cobra.Command{
		Use:   kind + " <value>",
		Short: short,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			result, found := fn(input)
			res := LookupResult{Kind: kind, Input: input, Result: result, Found: found}

			if outputFormat == "json" {
				if err := printJSON(res); err != nil {
					return err
				}
			} else if found {
				fmt.Printf("✓ %s\n", result)
			} else {
				fmt.Printf("✗ %s: no match\n", input)
			}

			if !found {
				return fmt.Errorf("%s %q not recognized", kind, input)
			}
			return nil
		},
	}
}
