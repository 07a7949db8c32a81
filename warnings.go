package colbox

import (
	"fmt"
	"strings"
)

// Warning is a non-fatal issue met while processing a document. The
// operation succeeded but its result may be incomplete.
type Warning struct {
	// Page is the 1-based page number, or 0 for document-wide warnings
	Page    int
	Message string
}

// String formats the warning with its page number when it has one
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("page %d: %s", w.Page, w.Message)
	}
	return w.Message
}

// FormatWarnings joins warnings into one line for logging
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
