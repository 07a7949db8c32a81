package colbox

import (
	"github.com/tsawler/colbox/layout"
	"github.com/tsawler/colbox/model"
	"github.com/tsawler/colbox/render"
)

// ExtractOptions holds configuration for column reconstruction and
// reading order extraction.
type ExtractOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Clips in processing order (nil means whole page for columns and the
	// margin-trimmed page for extraction)
	clips []model.Rect

	columns      layout.ColumnConfig
	readingOrder layout.ReadingOrderConfig
	render       render.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:        nil,
		clips:        nil,
		columns:      layout.DefaultColumnConfig(),
		readingOrder: layout.DefaultReadingOrderConfig(),
		render:       render.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		columns:      o.columns,
		readingOrder: o.readingOrder,
		render:       o.render,
	}

	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}
	if o.clips != nil {
		newOpts.clips = make([]model.Rect, len(o.clips))
		copy(newOpts.clips, o.clips)
	}

	return newOpts
}
