// Package dateutil formats loosely-typed dates as the YYYY-MM-DD values UBL
// expects.
package dateutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ISODate is the layout of every date written into a document
const ISODate = "2006-01-02"

// ErrUnparseableDate is returned when a value cannot be read as a date
var ErrUnparseableDate = errors.New("unparseable date")

var layouts = []string{
	ISODate,
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"02.01.2006",
	"02/01/2006",
}

// Format converts a string, epoch milliseconds or time.Time into YYYY-MM-DD.
// Epoch values are interpreted in UTC.
func Format(value any) (string, error) {
	t, err := Parse(value)
	if err != nil {
		return "", err
	}
	return t.Format(ISODate), nil
}

// Parse converts a supported value into a time.Time
func Parse(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("%w: zero time", ErrUnparseableDate)
		}
		return v, nil
	case *time.Time:
		if v == nil {
			return time.Time{}, fmt.Errorf("%w: nil time", ErrUnparseableDate)
		}
		return Parse(*v)
	case string:
		return parseString(v)
	case json.Number:
		return parseString(v.String())
	case int:
		return fromEpochMillis(int64(v)), nil
	case int64:
		return fromEpochMillis(v), nil
	case float64:
		return fromEpochMillis(int64(v)), nil
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrUnparseableDate, value)
	}
}

func parseString(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrUnparseableDate)
	}

	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromEpochMillis(ms), nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
}

func fromEpochMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
