package layout

import (
	"math"
	"sort"
)

// cleanColumns removes duplicate boxes and repairs the left-to-right order
// of boxes sharing a row.
func cleanColumns(columns []Column, rowTolerance float64) []Column {
	return sortRows(removeDuplicates(columns), rowTolerance)
}

// removeDuplicates drops every box identical to an earlier one. Runs of
// adjacent duplicates, which the merger produces when it keeps a candidate
// separate, collapse to their first element.
func removeDuplicates(columns []Column) []Column {
	if len(columns) < 2 {
		return columns
	}
	seen := make(map[Column]bool, len(columns))
	out := columns[:0:0]
	for _, c := range columns {
		if seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// sortRows groups consecutive boxes whose bottom edge lies within tolerance
// of the row's first bottom edge and sorts each group by left edge.
func sortRows(columns []Column, tolerance float64) []Column {
	if len(columns) < 2 {
		return columns
	}

	sortRow := func(row []Column) {
		sort.SliceStable(row, func(i, j int) bool {
			return row[i].BBox.X0 < row[j].BBox.X0
		})
	}

	start := 0
	bottom := columns[0].BBox.Y1
	for i := 1; i < len(columns); i++ {
		if math.Abs(columns[i].BBox.Y1-bottom) > tolerance {
			if i-start > 1 {
				sortRow(columns[start:i])
			}
			start = i
			bottom = columns[i].BBox.Y1
		}
	}
	if len(columns)-start > 1 {
		sortRow(columns[start:])
	}
	return columns
}
