package model

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Number is a loosely-typed numeric value. It decodes from a JSON number or
// a JSON string and keeps the literal, so a non-numeric value survives
// decoding and is reported by validation instead of by the decoder.
type Number struct {
	raw string
	set bool
}

// NumberOf wraps a literal
func NumberOf(s string) Number {
	return Number{raw: strings.TrimSpace(s), set: true}
}

// NumberFromDecimal wraps a decimal
func NumberFromDecimal(d decimal.Decimal) Number {
	return Number{raw: d.String(), set: true}
}

// NumberFromInt wraps an integer
func NumberFromInt(v int64) Number {
	return NumberFromDecimal(decimal.NewFromInt(v))
}

// IsSet reports whether a value was supplied
func (n Number) IsSet() bool {
	return n.set
}

// Raw returns the literal as supplied
func (n Number) Raw() string {
	return n.raw
}

// Decimal parses the literal. ok is false when unset or not numeric.
func (n Number) Decimal() (decimal.Decimal, bool) {
	if !n.set || n.raw == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(n.raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// UnmarshalJSON accepts numbers, numeric strings and null
func (n *Number) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = Number{}
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = NumberOf(s)
		return nil
	}
	// Anything else (numbers, booleans, objects) is kept verbatim
	*n = NumberOf(string(data))
	return nil
}

// MarshalJSON writes numeric literals as numbers and everything else as strings
func (n Number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	if _, ok := n.Decimal(); ok {
		return []byte(n.raw), nil
	}
	return json.Marshal(n.raw)
}

// Date is a loosely-typed date: a string, epoch milliseconds or time.Time
type Date struct {
	value any
}

// DateOf wraps a date value
func DateOf(v any) Date {
	return Date{value: v}
}

// Value returns the wrapped value
func (d Date) Value() any {
	return d.value
}

// IsZero reports whether no usable value was supplied. A zero epoch counts
// as absent.
func (d Date) IsZero() bool {
	switch v := d.value.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case int:
		return v == 0
	case int64:
		return v == 0
	case float64:
		return v == 0
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case time.Time:
		return v.IsZero()
	case *time.Time:
		return v == nil || v.IsZero()
	default:
		return false
	}
}

// UnmarshalJSON accepts strings, epoch numbers and null
func (d *Date) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}
	if num, ok := v.(json.Number); ok {
		if ms, err := num.Int64(); err == nil {
			v = ms
		}
	}
	d.value = v
	return nil
}

// MarshalJSON writes the wrapped value
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.value)
}
