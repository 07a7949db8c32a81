package spatial

import (
	"testing"

	"github.com/tsawler/colbox/model"
)

func TestIndexAnyIntersecting(t *testing.T) {
	idx := NewIndex([]model.Rect{
		{X0: 0, Y0: 0, X1: 10, Y1: 10},
		{X0: 100, Y0: 100, X1: 120, Y1: 200},
	})

	tests := []struct {
		name string
		r    model.Rect
		want bool
	}{
		{"overlap first", model.Rect{X0: 5, Y0: 5, X1: 20, Y1: 20}, true},
		{"overlap second", model.Rect{X0: 110, Y0: 0, X1: 115, Y1: 150}, true},
		{"touching edge", model.Rect{X0: 10, Y0: 0, X1: 20, Y1: 10}, false},
		{"far away", model.Rect{X0: 300, Y0: 300, X1: 400, Y1: 400}, false},
		{"empty query", model.Rect{X0: 5, Y0: 5, X1: 5, Y1: 5}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.AnyIntersecting(tt.r); got != tt.want {
				t.Errorf("AnyIntersecting(%v) = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestIndexFirstContainingUsesInsertionOrder(t *testing.T) {
	idx := NewIndex([]model.Rect{
		{X0: 0, Y0: 0, X1: 50, Y1: 50},     // 0: does not contain the query
		{X0: 0, Y0: 0, X1: 500, Y1: 500},   // 1: contains
		{X0: 10, Y0: 10, X1: 200, Y1: 200}, // 2: contains, but later
	})

	if got := idx.FirstContaining(model.Rect{X0: 20, Y0: 20, X1: 100, Y1: 100}); got != 1 {
		t.Errorf("FirstContaining() = %d, want 1", got)
	}
	if got := idx.FirstContaining(model.Rect{X0: 600, Y0: 600, X1: 700, Y1: 700}); got != -1 {
		t.Errorf("FirstContaining() = %d, want -1", got)
	}
}

func TestIndexEmpty(t *testing.T) {
	idx := NewIndex(nil)
	if idx.Len() != 0 {
		t.Errorf("Len() = %d, want 0", idx.Len())
	}
	r := model.Rect{X0: 0, Y0: 0, X1: 1, Y1: 1}
	if idx.AnyIntersecting(r) {
		t.Error("empty index should not intersect")
	}
	if idx.FirstContaining(r) != -1 {
		t.Error("empty index should not contain")
	}
}

func TestIndexEmptyRectNeverContains(t *testing.T) {
	idx := NewIndex([]model.Rect{{X0: 0, Y0: 100, X1: 500, Y1: 100}})
	if got := idx.FirstContaining(model.Rect{X0: 10, Y0: 100, X1: 20, Y1: 100}); got != -1 {
		t.Errorf("zero-height rule should contain nothing, got %d", got)
	}
}
