package address_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/efactura/internal/address"
)

func TestResolveCounty(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"Cluj", "RO-CJ"},
		{"CLUJ", "RO-CJ"},
		{"cluj", "RO-CJ"},
		{"Judetul Cluj", "RO-CJ"},
		{"Jud. Cluj", "RO-CJ"},
		{"Județul Cluj", "RO-CJ"},
		{"Iași", "RO-IS"},
		{"Iasi", "RO-IS"},
		{"Argeş", "RO-AG"},
		{"Bistrita Nasaud", "RO-BN"},
		{"Bistrița-Năsăud", "RO-BN"},
		{"Caras-Severin", "RO-CS"},
		{"Satu-Mare", "RO-SM"},
		{"Satumare", "RO-SM"},
		{"Dimbovita", "RO-DB"},
		{"Valcea", "RO-VL"},
		{"Vîlcea", "RO-VL"},
		{"Ilfov", "RO-IF"},
		{"Bucuresti", "RO-B"},
		{"București", "RO-B"},
		{"Bucharest", "RO-B"},
		{"Municipiul Bucuresti", "RO-B"},
		{"Mun. București", "RO-B"},
		{"Bucuresti, Sector 3", "RO-B"},
		{"Bucuresti S2", "RO-B"},
		{"Orasul Ilfov", "RO-IF"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			code, ok := address.ResolveCounty(tt.in)
			require.True(t, ok)
			assert.Equal(t, tt.expected, code)
		})
	}
}

func TestResolveCounty_SameCodeForVariants(t *testing.T) {
	a, okA := address.ResolveCounty("Judetul Cluj")
	b, okB := address.ResolveCounty("CLUJ")
	c, okC := address.ResolveCounty("cluj")

	require.True(t, okA && okB && okC)
	assert.Equal(t, a, b)
	assert.Equal(t, b, c)
}

func TestResolveCounty_Miss(t *testing.T) {
	for _, in := range []string{"", "   ", "Bavaria", "Judetul", "Sector 3", "Cluj-Napoca"} {
		_, ok := address.ResolveCounty(in)
		assert.False(t, ok, "input %q", in)
	}
}

func TestIsBucharestSubdivision(t *testing.T) {
	assert.True(t, address.IsBucharestSubdivision("RO-B"))
	assert.True(t, address.IsBucharestSubdivision("ro-b"))
	assert.True(t, address.IsBucharestSubdivision(" RO-B "))
	assert.False(t, address.IsBucharestSubdivision("RO-BV"))
	assert.False(t, address.IsBucharestSubdivision(""))
}
