// Package model provides the geometric primitives shared by the collectors,
// the column builder, and the renderers.
//
// # Geometry
//
// [Rect] is an axis-aligned rectangle in top-down page coordinates, the
// orientation used by page renderings: X0,Y0 is the top-left corner and
// X1,Y1 the bottom-right corner. The four predicates every layout decision
// is built from are:
//
//   - [Rect.Intersects] - overlap with positive area
//   - [Rect.Union] - smallest enclosing rectangle (empty is identity)
//   - [Rect.Contains] - full containment
//   - [Rect.IsEmpty] - non-positive area
//
// Malformed rectangles are reported by [Rect.Validate] as
// [ErrInvalidGeometry].
//
// # Page Primitives
//
// Collectors describe page text as [TextBlock] values made of [TextLine]
// and [TextSpan] values, each carrying its bounding box. A line's
// [Direction] tells horizontal text from rotated or vertical text.
// Embedded images are described by [Image].
package model
