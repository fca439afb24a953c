package dateutil_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efactura/internal/dateutil"
)

func TestFormat(t *testing.T) {
	bucharest := time.FixedZone("EET", 2*3600)

	tests := []struct {
		name     string
		value    any
		expected string
	}{
		{"iso date", "2024-03-15", "2024-03-15"},
		{"iso date with spaces", "  2024-03-15 ", "2024-03-15"},
		{"rfc3339", "2024-03-15T10:30:00Z", "2024-03-15"},
		{"local datetime", "2024-03-15T23:59:59", "2024-03-15"},
		{"romanian dotted", "15.03.2024", "2024-03-15"},
		{"slashed", "15/03/2024", "2024-03-15"},
		{"epoch millis int64", int64(1710460800000), "2024-03-15"},
		{"epoch millis int", 1710460800000, "2024-03-15"},
		{"epoch millis float", float64(1710460800000), "2024-03-15"},
		{"epoch millis string", "1710460800000", "2024-03-15"},
		{"json number", json.Number("1710460800000"), "2024-03-15"},
		{"time value", time.Date(2024, 3, 15, 1, 0, 0, 0, bucharest), "2024-03-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dateutil.Format(tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestFormat_TimePointer(t *testing.T) {
	d := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	got, err := dateutil.Format(&d)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-02", got)
}

func TestFormat_Unparseable(t *testing.T) {
	var nilTime *time.Time

	for _, v := range []any{"", "not a date", "2024-13-45", time.Time{}, nilTime, nil, true} {
		_, err := dateutil.Format(v)
		require.Error(t, err, "value %#v", v)
		assert.ErrorIs(t, err, dateutil.ErrUnparseableDate)
	}
}
