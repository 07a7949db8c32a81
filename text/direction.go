package text

import (
	"math"
	"unicode"

	"github.com/tsawler/colbox/model"
)

// Bidi is the inherent reading direction of a run of characters.
type Bidi int

const (
	// LTR (Left-to-Right) for Latin, Cyrillic, CJK, etc.
	LTR Bidi = iota
	// RTL (Right-to-Left) for Arabic, Hebrew, etc.
	RTL
	// Neutral for numbers, punctuation, whitespace
	Neutral
)

// String returns "LTR", "RTL" or "Neutral"
func (b Bidi) String() string {
	switch b {
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	case Neutral:
		return "Neutral"
	default:
		return "Unknown"
	}
}

var rtlScripts = []*unicode.RangeTable{
	unicode.Arabic,
	unicode.Hebrew,
	unicode.Syriac,
	unicode.Thaana,
	unicode.Nko,
}

// CharBidi returns the inherent direction of a single character.
func CharBidi(r rune) Bidi {
	if unicode.IsDigit(r) || unicode.IsPunct(r) || unicode.IsSpace(r) || unicode.IsSymbol(r) {
		return Neutral
	}
	if unicode.IsOneOf(rtlScripts, r) {
		return RTL
	}
	return LTR
}

// DetectBidi returns the dominant direction of s by counting strong
// characters. Ties go to LTR; strings without strong characters are Neutral.
func DetectBidi(s string) Bidi {
	ltr, rtl := 0, 0
	for _, r := range s {
		switch CharBidi(r) {
		case LTR:
			ltr++
		case RTL:
			rtl++
		}
	}
	if ltr == 0 && rtl == 0 {
		return Neutral
	}
	if rtl > ltr {
		return RTL
	}
	return LTR
}

// WritingDirection converts the advance between the first and last glyph of
// a line into a unit direction vector in top-down coordinates. Right-to-left
// scripts laid out leftward are still horizontal lines. A zero advance is
// treated as horizontal.
func WritingDirection(dx, dy float64, s string) model.Direction {
	if dx < 0 && math.Abs(dy) <= math.Abs(dx) && DetectBidi(s) == RTL {
		dx = -dx
	}
	length := math.Hypot(dx, dy)
	if length == 0 {
		return model.Horizontal
	}
	return model.Direction{Cos: dx / length, Sin: dy / length}
}
