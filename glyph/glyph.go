package glyph

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf16"
)

// Placeholder is used when the display name contains no characters at all.
const Placeholder = "?"

// Palette is the fixed set of glyph background colors.
var Palette = []string{
	"#4285F4", // blue
	"#34A853", // green
	"#FBBC05", // yellow
	"#EA4335", // red
	"#5851DB", // purple
	"#E1306C", // pink
	"#FD1D1D", // orange-red
	"#F77737", // orange
	"#833AB4", // deep purple
	"#1DA1F2", // light blue
	"#0077B5", // dark blue
	"#FF0000", // bright red
}

// Glyph is a deterministic fallback icon: one character over a color.
type Glyph struct {
	Char  string
	Color string
}

// Derive computes the glyph for a display name. The character comes from the
// name; the color hashes the name, falling back to the domain when the name
// is empty so the result is still stable per site.
//
// Pure and deterministic: the same inputs always produce the same glyph.
func Derive(name, domain string) Glyph {
	trimmed := strings.TrimSpace(name)

	colorKey := trimmed
	if colorKey == "" {
		colorKey = domain
	}

	return Glyph{
		Char:  deriveChar(trimmed),
		Color: Color(colorKey),
	}
}

// Color picks a palette color for a string using an order-sensitive hash
// over UTF-16 code units. The arithmetic is deliberately lopsided: each
// round computes u + ((h<<5) - h) where only the shifted operand is
// truncated to 32 bits while the running value accumulates unwrapped. The
// exact result is load-bearing: colors cached by earlier releases must keep
// resolving to the same palette index.
func Color(s string) string {
	var h float64
	for _, u := range utf16.Encode([]rune(s)) {
		h = float64(u) + float64(toInt32(h)<<5) - h
	}
	return Palette[int(math.Mod(math.Abs(h), float64(len(Palette))))]
}

// toInt32 truncates toward zero and wraps to 32-bit two's complement.
func toInt32(f float64) int32 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	t := math.Mod(math.Trunc(f), 1<<32)
	switch {
	case t >= 1<<31:
		t -= 1 << 32
	case t < -(1 << 31):
		t += 1 << 32
	}
	return int32(t)
}

// deriveChar returns the first Unicode letter of the trimmed name,
// upper-cased, or the placeholder when the name has no letter.
func deriveChar(trimmed string) string {
	for _, r := range trimmed {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
	}
	return Placeholder
}
