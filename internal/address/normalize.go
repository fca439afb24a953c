// Package address turns free-text Romanian addresses into the codes CIUS-RO
// expects: ISO 3166-2 county codes, Bucharest sector codes and ISO 3166-1
// country codes. Every lookup is best-effort and reports a miss instead of
// failing.
package address

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Comma-below and cedilla forms are both in circulation for ș and ț
var romanianFolder = strings.NewReplacer(
	"ș", "s", "ş", "s", "Ș", "s", "Ş", "s",
	"ț", "t", "ţ", "t", "Ț", "t", "Ţ", "t",
)

var abbreviations = map[string]string{
	"mun":   "municipiul",
	"jud":   "judetul",
	"judet": "judetul",
	"sect":  "sectorul",
	"s":     "sectorul",
}

// s3, sect3, sector3, sectorul3
var gluedSector = regexp.MustCompile(`^(s|sect|sector|sectorul)(\d+)$`)

// Normalize lower-cases text, strips diacritics, collapses punctuation and
// separators to single spaces and expands common administrative
// abbreviations.
func Normalize(text string) string {
	s := romanianFolder.Replace(strings.ToLower(text))

	// transformers carry state, build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if folded, _, err := transform.String(t, s); err == nil {
		s = folded
	}

	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if m := gluedSector.FindStringSubmatch(tok); m != nil {
			out = append(out, "sectorul", m[2])
			continue
		}
		if full, ok := abbreviations[tok]; ok {
			tok = full
		}
		out = append(out, tok)
	}

	return strings.Join(out, " ")
}
