package style

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseBackground(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Background
	}{
		{
			name:  "full form",
			input: "custom-bg:#450a0a,#14532d,❄,30,1.5,0,fall",
			want: Background{
				ColorFrom: "#450a0a",
				ColorTo:   "#14532d",
				Pattern:   "❄",
				Quantity:  30,
				Size:      1.5,
				Rotation:  0,
				Animation: "fall",
			},
		},
		{
			name:  "gradient only uses decoration defaults",
			input: "custom-bg:#0f172a,#1e293b",
			want: Background{
				ColorFrom: "#0f172a",
				ColorTo:   "#1e293b",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
		{
			name:  "single color fills both gradient stops",
			input: "custom-bg:#FDF6E3",
			want: Background{
				ColorFrom: "#FDF6E3",
				ColorTo:   "#FDF6E3",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
		{
			name:  "pattern without trailing numbers",
			input: "custom-bg:#450a0a,#14532d,🎁",
			want: Background{
				ColorFrom: "#450a0a",
				ColorTo:   "#14532d",
				Pattern:   "🎁",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
		{
			name:  "garbage numbers keep defaults",
			input: "custom-bg:#450a0a,#14532d,❄,many,big,tilted,float",
			want: Background{
				ColorFrom: "#450a0a",
				ColorTo:   "#14532d",
				Pattern:   "❄",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: "float",
			},
		},
		{
			name:  "legacy winter preset",
			input: "winter",
			want: Background{
				ColorFrom: "#0f172a",
				ColorTo:   "#1e293b",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
		{
			name:  "unknown value falls back to classic",
			input: "neon-vaporwave",
			want: Background{
				ColorFrom: "#450a0a",
				ColorTo:   "#14532d",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
		{
			name:  "empty string falls back to classic",
			input: "",
			want: Background{
				ColorFrom: "#450a0a",
				ColorTo:   "#14532d",
				Quantity:  DefaultQuantity,
				Size:      DefaultSize,
				Rotation:  DefaultRotation,
				Animation: DefaultAnimation,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseBackground(tt.input))
		})
	}
}

func TestBackgroundEncode_RoundTrip(t *testing.T) {
	in := Background{
		ColorFrom: "#450a0a",
		ColorTo:   "#14532d",
		Pattern:   "❄",
		Quantity:  24,
		Size:      1.2,
		Rotation:  45,
		Animation: "float",
	}

	encoded := in.Encode()
	assert.Equal(t, "custom-bg:#450a0a,#14532d,❄,24,1.2,45,float", encoded)
	assert.Equal(t, in, ParseBackground(encoded))
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Card
	}{
		{"encoded form", "custom-card:#1e293b", Card{Color: "#1e293b"}},
		{"legacy value falls back", "classic", Card{Color: "#7f1d1d"}},
		{"empty falls back", "", Card{Color: "#7f1d1d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCard(tt.input))
		})
	}
}

func TestCardEncode(t *testing.T) {
	assert.Equal(t, "custom-card:#7f1d1d", Card{Color: "#7f1d1d"}.Encode())
}
