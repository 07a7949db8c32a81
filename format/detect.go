// Package format detects whether an input file is a PDF document or a JSON
// primitives dump.
package format

import (
	"bytes"
	"encoding/json"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported input format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PDF indicates a PDF document.
	PDF
	// Primitives indicates a JSON document of page primitives.
	Primitives
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PDF:
		return "PDF"
	case Primitives:
		return "Primitives"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PDF:
		return ".pdf"
	case Primitives:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return PDF
	case ".json":
		return Primitives
	default:
		return Unknown
	}
}

// DetectFromMagic checks the leading bytes of a file to determine format.
// A JSON object whose first key is "pages" is a primitives document.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return PDF
	}
	if looksLikePrimitives(data) {
		return Primitives
	}
	return Unknown
}

// DetectFromReader inspects the content to determine format. Content wins
// over the file extension.
func DetectFromReader(r io.ReaderAt) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	return DetectFromMagic(magic[:n]), nil
}

// looksLikePrimitives reads the first JSON tokens and checks for an object
// opening with the "pages" key. The data may be truncated.
func looksLikePrimitives(data []byte) bool {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return false
	}
	tok, err = dec.Token()
	if err != nil {
		return false
	}
	key, ok := tok.(string)
	return ok && key == "pages"
}
