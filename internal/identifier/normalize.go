package identifier

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyIdentifier is returned for blank input
	ErrEmptyIdentifier = errors.New("tax identifier is empty")

	// ErrUnrecognizedIdentifier is returned in strict mode for values that
	// are neither a valid CNP nor a valid CUI/CIF
	ErrUnrecognizedIdentifier = errors.New("tax identifier is not a valid CNP or CUI/CIF")
)

// Kind tells which identifier scheme a value belongs to
type Kind int

const (
	KindUnknown Kind = iota
	KindPersonal
	KindCompany
)

func (k Kind) String() string {
	switch k {
	case KindPersonal:
		return "CNP"
	case KindCompany:
		return "CUI"
	default:
		return "unknown"
	}
}

// Classify reports the scheme of value. A 13-digit value is checked as a
// CNP before it is checked as a company code.
func Classify(value string) Kind {
	v := strings.TrimSpace(value)
	switch {
	case IsValidPersonalCode(v):
		return KindPersonal
	case IsValidCompanyCode(v):
		return KindCompany
	default:
		return KindUnknown
	}
}

// NormalizeTaxIdentifier returns a CNP unchanged and a company code as
// RO followed by its digits. Anything else is returned as given.
func NormalizeTaxIdentifier(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", ErrEmptyIdentifier
	}

	switch Classify(v) {
	case KindPersonal:
		return v, nil
	case KindCompany:
		return TaxPrefix + stripTaxPrefix(v), nil
	default:
		return value, nil
	}
}

// NormalizeTaxIdentifierStrict is NormalizeTaxIdentifier without the
// passthrough: unrecognized values fail with ErrUnrecognizedIdentifier.
func NormalizeTaxIdentifierStrict(value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", ErrEmptyIdentifier
	}
	if Classify(v) == KindUnknown {
		return "", fmt.Errorf("%w: %q", ErrUnrecognizedIdentifier, v)
	}
	return NormalizeTaxIdentifier(v)
}
