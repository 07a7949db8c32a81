// Package text provides the character-level helpers the collectors and the
// column builder share.
//
// # Significant Characters
//
// [SignificantLength] counts the non-whitespace characters of a string
// after NFC normalization. The column builder ignores lines with fewer than
// two of them, which keeps bullets, stray page numbers and decorative glyphs
// from stretching column boxes.
//
// # Text Direction
//
// The package distinguishes the inherent direction of characters with the
// [Bidi] type:
//
//   - LTR - left-to-right (Latin, CJK, etc.)
//   - RTL - right-to-left (Arabic, Hebrew, etc.)
//   - Neutral - direction-neutral characters (numbers, punctuation)
//
// [WritingDirection] turns a line's glyph advance into the unit direction
// vector stored on [github.com/tsawler/colbox/model.TextLine], so Arabic and
// Hebrew lines laid out leftward still count as horizontal text.
package text
