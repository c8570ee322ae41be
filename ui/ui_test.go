package ui

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "two words", in: "Alice Miller", want: "AM"},
		{name: "three words", in: "Mary Jane Watson", want: "MJ"},
		{name: "single word", in: "plato", want: "P"},
		{name: "extra spaces", in: "  emma   smith ", want: "ES"},
		{name: "empty", in: "", want: ""},
		{name: "non-ascii", in: "élodie ørsted", want: "ÉØ"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Initials(tt.in))
		})
	}
}

func TestStatusBadge(t *testing.T) {
	assert.Equal(t, "online", StatusBadge("Active").Dot)
	assert.Equal(t, "away", StatusBadge("On Leave").Dot)
	assert.Equal(t, "offline", StatusBadge("Inactive").Dot)
	assert.Equal(t, "offline", StatusBadge("").Dot)
	assert.Equal(t, "Inactive", StatusBadge("Inactive").Label)
}

func TestProgressBand(t *testing.T) {
	tests := []struct {
		pct  float64
		want string
	}{
		{0, BandLow},
		{74.9, BandLow},
		{75, BandMedium},
		{84.9, BandMedium},
		{85, BandHigh},
		{100, BandHigh},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ProgressBand(tt.pct), "pct %v", tt.pct)
	}
}

func TestNewID(t *testing.T) {
	a := NewID("sch_")
	b := NewID("sch_")

	assert.True(t, strings.HasPrefix(a, "sch_"))
	assert.Len(t, a, len("sch_")+12)
	assert.NotEqual(t, a, b)
}

func TestAvatarColor(t *testing.T) {
	assert.Equal(t, AvatarColor("Sarah Jenkins"), AvatarColor("Sarah Jenkins"))
	assert.Len(t, AvatarColor("David Kim"), 6)
}
