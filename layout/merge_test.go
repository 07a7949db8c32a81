package layout

import (
	"errors"
	"math"
	"sort"
	"testing"

	"github.com/tsawler/colbox/model"
)

func TestMergeColumns_SideBySideWithFullRow(t *testing.T) {
	a := rect(0, 0, 50, 100)
	b := rect(60, 0, 110, 100)

	tests := []struct {
		name string
		row  model.Rect
	}{
		{"row below both columns", rect(0, 110, 110, 120)},
		{"row overlapping both columns", rect(0, 40, 110, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := NewColumnBuilder().MergeColumns([]model.Rect{tt.row, b, a}, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			want := []model.Rect{a, b, tt.row}
			if !sameRects(Rects(cols), want) {
				t.Errorf("got %v, want %v", Rects(cols), want)
			}
		})
	}
}

func TestMergeCandidates_SameBoxDifferentBackgrounds(t *testing.T) {
	box := rect(100, 100, 300, 150)
	candidates := []Column{
		{BBox: box, Background: 2},
		{BBox: box, Background: 1},
	}

	cols, err := NewColumnBuilder().MergeCandidates(candidates, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []Column{{BBox: box, Background: 1}, {BBox: box, Background: 2}}
	if len(cols) != len(want) {
		t.Fatalf("got %v, want %v", cols, want)
	}
	for i := range want {
		if cols[i] != want[i] {
			t.Errorf("column %d = %+v, want %+v", i, cols[i], want[i])
		}
	}
}

func TestMerger_PendingConflictKeepsCandidateSeparate(t *testing.T) {
	s := Column{BBox: rect(500, 0, 600, 10)}
	b := Column{BBox: rect(0, 5, 100, 20)}
	c := Column{BBox: rect(50, 10, 150, 30), Background: 1}

	raw := newMerger(nil, discardLogger()).run([]Column{s, b, c})
	wantRaw := []Column{s, b, b, c}
	if len(raw) != len(wantRaw) {
		t.Fatalf("raw merge = %v, want %v", raw, wantRaw)
	}
	for i := range wantRaw {
		if raw[i] != wantRaw[i] {
			t.Errorf("raw %d = %+v, want %+v", i, raw[i], wantRaw[i])
		}
	}

	cleaned := cleanColumns(raw, 10)
	wantClean := []Column{b, s, c}
	if len(cleaned) != len(wantClean) {
		t.Fatalf("cleaned = %v, want %v", cleaned, wantClean)
	}
	for i := range wantClean {
		if cleaned[i] != wantClean[i] {
			t.Errorf("cleaned %d = %+v, want %+v", i, cleaned[i], wantClean[i])
		}
	}

	cols, err := NewColumnBuilder().MergeCandidates([]Column{c, b, s}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cols) != len(wantClean) {
		t.Fatalf("MergeCandidates = %v, want %v", cols, wantClean)
	}
	for i := range wantClean {
		if cols[i] != wantClean[i] {
			t.Errorf("MergeCandidates %d = %+v, want %+v", i, cols[i], wantClean[i])
		}
	}
}

func TestMergeColumns_HorizontalSpanGate(t *testing.T) {
	tests := []struct {
		name       string
		candidates []model.Rect
		want       []model.Rect
	}{
		{
			name:       "separated by a gutter",
			candidates: []model.Rect{rect(0, 0, 50, 10), rect(51, 20, 100, 30)},
			want:       []model.Rect{rect(0, 0, 50, 10), rect(51, 20, 100, 30)},
		},
		{
			name:       "touching edges merge",
			candidates: []model.Rect{rect(0, 0, 50, 10), rect(50, 20, 100, 30)},
			want:       []model.Rect{rect(0, 0, 100, 30)},
		},
		{
			name:       "stacked lines merge",
			candidates: []model.Rect{rect(0, 0, 100, 10), rect(10, 12, 90, 22), rect(0, 24, 100, 34)},
			want:       []model.Rect{rect(0, 0, 100, 34)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cols, err := NewColumnBuilder().MergeColumns(tt.candidates, nil, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !sameRects(Rects(cols), tt.want) {
				t.Errorf("got %v, want %v", Rects(cols), tt.want)
			}
		})
	}
}

func TestMergeColumns_ObstacleGate(t *testing.T) {
	candidates := []model.Rect{rect(50, 100, 280, 112), rect(50, 130, 280, 142)}
	obstacle := rect(150, 114, 160, 128)

	cols, err := NewColumnBuilder().MergeColumns(candidates, nil, []model.Rect{obstacle})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sameRects(Rects(cols), candidates) {
		t.Errorf("got %v, want %v", Rects(cols), candidates)
	}

	// an obstacle outside the union does not block the merge
	cols, err = NewColumnBuilder().MergeColumns(candidates, nil, []model.Rect{rect(400, 114, 410, 128)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []model.Rect{rect(50, 100, 280, 142)}
	if !sameRects(Rects(cols), want) {
		t.Errorf("got %v, want %v", Rects(cols), want)
	}
}

func TestMergeColumns_EmptyInput(t *testing.T) {
	builder := NewColumnBuilder()

	cols, err := builder.MergeColumns(nil, []model.Rect{rect(0, 0, 10, 10)}, nil)
	if err != nil || cols != nil {
		t.Errorf("nil candidates: got %v, %v", cols, err)
	}

	cols, err = builder.MergeColumns([]model.Rect{rect(10, 10, 10, 20), rect(5, 5, 20, 5)}, nil, nil)
	if err != nil || cols != nil {
		t.Errorf("empty candidates: got %v, %v", cols, err)
	}
}

func TestMergeColumns_InvalidGeometry(t *testing.T) {
	good := []model.Rect{rect(0, 0, 10, 10)}
	bad := []model.Rect{rect(0, 0, math.NaN(), 10)}
	inverted := []model.Rect{rect(10, 0, 0, 10)}

	builder := NewColumnBuilder()
	checks := []struct {
		name                          string
		candidates, panels, obstacles []model.Rect
	}{
		{"candidate", bad, nil, nil},
		{"panel", good, inverted, nil},
		{"obstacle", good, nil, bad},
	}
	for _, c := range checks {
		if _, err := builder.MergeColumns(c.candidates, c.panels, c.obstacles); !errors.Is(err, model.ErrInvalidGeometry) {
			t.Errorf("%s: expected ErrInvalidGeometry, got %v", c.name, err)
		}
	}

	if _, err := builder.MergeCandidates([]Column{{BBox: inverted[0]}}, nil); !errors.Is(err, model.ErrInvalidGeometry) {
		t.Errorf("MergeCandidates: expected ErrInvalidGeometry, got %v", err)
	}
}

func TestMerger_CanExtend(t *testing.T) {
	m := newMerger([]model.Rect{rect(200, 200, 210, 210)}, discardLogger())
	a := rect(0, 0, 100, 10)
	b := rect(0, 20, 100, 30)
	others := []Column{{BBox: a}, {BBox: b}, {BBox: rect(300, 0, 400, 10)}}

	if !m.canExtend(a.Union(b), a, b, others) {
		t.Error("the boxes being joined must not block their own union")
	}
	if m.canExtend(rect(0, 0, 350, 30), a, b, others) {
		t.Error("union reaching another box must be rejected")
	}
	if m.canExtend(rect(0, 0, 205, 205), a, b, nil) {
		t.Error("union reaching an obstacle must be rejected")
	}
}

func TestMergeColumns_Properties(t *testing.T) {
	layouts := []struct {
		name       string
		candidates []model.Rect
		panels     []model.Rect
		obstacles  []model.Rect
	}{
		{
			name:       "two columns",
			candidates: Rects(candidatesOf(twoColumnBlocks())),
		},
		{
			name: "two columns under a heading",
			candidates: append([]model.Rect{rect(50, 60, 550, 80)},
				Rects(candidatesOf(twoColumnBlocks()))...),
		},
		{
			name:       "panel",
			candidates: Rects(candidatesOf(twoColumnBlocks())),
			panels:     []model.Rect{rect(300, 90, 560, 200)},
		},
		{
			name:       "side by side with footer",
			candidates: []model.Rect{rect(0, 0, 50, 100), rect(60, 0, 110, 100), rect(0, 110, 110, 120)},
		},
		{
			name:       "side by side with overlapping row",
			candidates: []model.Rect{rect(0, 0, 50, 100), rect(60, 0, 110, 100), rect(0, 40, 110, 60)},
		},
		{
			name:       "obstacle",
			candidates: []model.Rect{rect(50, 100, 280, 112), rect(50, 130, 280, 142)},
			obstacles:  []model.Rect{rect(150, 114, 160, 128)},
		},
	}

	builder := NewColumnBuilder()
	for _, l := range layouts {
		t.Run(l.name, func(t *testing.T) {
			first, err := builder.MergeColumns(l.candidates, l.panels, l.obstacles)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(first) == 0 {
				t.Fatal("non-empty candidates produced no columns")
			}
			if hasDuplicates(first) {
				t.Errorf("duplicate columns in %v", first)
			}
			for _, c := range first {
				for _, o := range l.obstacles {
					if c.BBox.Intersects(o) {
						t.Errorf("column %v intersects obstacle %v", c.BBox, o)
					}
				}
			}

			second, err := builder.MergeColumns(Rects(first), l.panels, l.obstacles)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			a, b := Rects(first), Rects(second)
			sortRects(a)
			sortRects(b)
			if !sameRects(a, b) {
				t.Errorf("merging the result again changed it: %v -> %v", a, b)
			}
		})
	}
}

// candidatesOf wraps block boxes as untagged candidates
func candidatesOf(blocks []model.TextBlock) []Column {
	out := make([]Column, len(blocks))
	for i, b := range blocks {
		out[i] = Column{BBox: b.BBox}
	}
	return out
}

func sortRects(rs []model.Rect) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i], rs[j]
		if a.Y0 != b.Y0 {
			return a.Y0 < b.Y0
		}
		if a.X0 != b.X0 {
			return a.X0 < b.X0
		}
		if a.Y1 != b.Y1 {
			return a.Y1 < b.Y1
		}
		return a.X1 < b.X1
	})
}
