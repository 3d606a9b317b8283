// Package style parses the string-encoded visual theme configuration stored
// on calendar rows.
//
// Two formats exist in stored data:
//
//	custom-bg:color1,color2,pattern,quantity,size,rotation,animation
//	custom-card:color
//
// plus legacy preset codes ("classic", "winter", ...) written by early
// clients. Storage keeps the string form for compatibility; the API exposes
// the parsed records so clients never split the string positionally again.
package style

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	bgPrefix   = "custom-bg:"
	cardPrefix = "custom-card:"
)

// Decoration defaults applied when the stored string omits trailing fields.
const (
	DefaultQuantity  = 20
	DefaultSize      = 1.0
	DefaultRotation  = 45
	DefaultAnimation = "float"
)

// legacyBackgrounds maps preset codes from early calendars to the encoded form.
var legacyBackgrounds = map[string]string{
	"classic": "custom-bg:#450a0a,#14532d",
	"winter":  "custom-bg:#0f172a,#1e293b",
	"cozy":    "custom-bg:#FDF6E3,#FDF6E3",
	"sugar":   "custom-bg:#ffe4e6,#ccfbf1",
}

// DefaultBackground and DefaultCard are the creation-flow fallbacks.
const (
	DefaultBackground = "custom-bg:#450a0a,#14532d"
	DefaultCard       = "custom-card:#7f1d1d"
)

// Background is the parsed background theme: a two-stop gradient plus an
// optional floating decoration layer.
type Background struct {
	ColorFrom string  `json:"color_from"`
	ColorTo   string  `json:"color_to"`
	Pattern   string  `json:"pattern,omitempty"` // emoji/glyph scattered over the page
	Quantity  int     `json:"quantity"`
	Size      float64 `json:"size"`
	Rotation  int     `json:"rotation"`
	Animation string  `json:"animation"`
}

// Card is the parsed day-card theme.
type Card struct {
	Color string `json:"color"`
}

// ParseBackground decodes a stored background string. Legacy preset codes
// are normalized first; unknown codes fall back to the classic preset, which
// matches what existing viewers render for them.
func ParseBackground(s string) Background {
	if !strings.HasPrefix(s, bgPrefix) {
		if mapped, ok := legacyBackgrounds[s]; ok {
			s = mapped
		} else {
			s = DefaultBackground
		}
	}

	parts := strings.Split(strings.TrimPrefix(s, bgPrefix), ",")

	bg := Background{
		ColorFrom: part(parts, 0),
		ColorTo:   part(parts, 1),
		Pattern:   part(parts, 2),
		Quantity:  DefaultQuantity,
		Size:      DefaultSize,
		Rotation:  DefaultRotation,
		Animation: DefaultAnimation,
	}

	if bg.ColorTo == "" {
		bg.ColorTo = bg.ColorFrom
	}
	if v := part(parts, 3); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			bg.Quantity = n
		}
	}
	if v := part(parts, 4); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			bg.Size = f
		}
	}
	if v := part(parts, 5); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			bg.Rotation = n
		}
	}
	if v := part(parts, 6); v != "" {
		bg.Animation = v
	}

	return bg
}

// Encode returns the storage form of the background.
func (b Background) Encode() string {
	return fmt.Sprintf("%s%s,%s,%s,%d,%g,%d,%s",
		bgPrefix, b.ColorFrom, b.ColorTo, b.Pattern,
		b.Quantity, b.Size, b.Rotation, b.Animation)
}

// ParseCard decodes a stored card style string. Anything that isn't the
// encoded form renders as the classic card.
func ParseCard(s string) Card {
	if !strings.HasPrefix(s, cardPrefix) {
		s = DefaultCard
	}
	return Card{Color: strings.TrimPrefix(s, cardPrefix)}
}

// Encode returns the storage form of the card style.
func (c Card) Encode() string {
	return cardPrefix + c.Color
}

// part returns parts[i] trimmed, or "" when out of range.
func part(parts []string, i int) string {
	if i >= len(parts) {
		return ""
	}
	return strings.TrimSpace(parts[i])
}
