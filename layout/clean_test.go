package layout

import (
	"testing"
)

func TestRemoveDuplicates(t *testing.T) {
	a := Column{BBox: rect(0, 0, 10, 10)}
	b := Column{BBox: rect(20, 0, 30, 10)}
	aOnPanel := Column{BBox: rect(0, 0, 10, 10), Background: 1}

	tests := []struct {
		name string
		in   []Column
		want []Column
	}{
		{"empty", nil, nil},
		{"single", []Column{a}, []Column{a}},
		{"adjacent run", []Column{a, a, a, b}, []Column{a, b}},
		{"non-adjacent", []Column{a, b, a}, []Column{a, b}},
		{"background distinguishes", []Column{a, aOnPanel}, []Column{a, aOnPanel}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := removeDuplicates(tt.in)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSortRows(t *testing.T) {
	a := Column{BBox: rect(100, 0, 200, 50)}
	b := Column{BBox: rect(0, 0, 90, 55)}
	c := Column{BBox: rect(0, 100, 90, 200)}
	d := Column{BBox: rect(300, 150, 400, 205)}
	e := Column{BBox: rect(50, 300, 150, 400)}
	f := Column{BBox: rect(300, 450, 400, 500)}
	g := Column{BBox: rect(0, 470, 90, 520)}

	tests := []struct {
		name      string
		in        []Column
		tolerance float64
		want      []Column
	}{
		{
			name:      "rows within tolerance",
			in:        []Column{a, b, c, d, e},
			tolerance: 10,
			want:      []Column{b, a, c, d, e},
		},
		{
			name:      "bottoms too far apart",
			in:        []Column{f, g},
			tolerance: 10,
			want:      []Column{f, g},
		},
		{
			name:      "tighter tolerance",
			in:        []Column{a, b},
			tolerance: 2,
			want:      []Column{a, b},
		},
		{
			name:      "row measured from its first box",
			in:        []Column{{BBox: rect(200, 0, 300, 10)}, {BBox: rect(100, 0, 190, 18)}, {BBox: rect(0, 0, 90, 26)}},
			tolerance: 10,
			want:      []Column{{BBox: rect(100, 0, 190, 18)}, {BBox: rect(200, 0, 300, 10)}, {BBox: rect(0, 0, 90, 26)}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := append([]Column(nil), tt.in...)
			got := sortRows(in, tt.tolerance)
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i] != tt.want[i] {
					t.Errorf("index %d: got %v, want %v", i, got[i].BBox, tt.want[i].BBox)
				}
			}
		})
	}
}

func TestCleanColumns(t *testing.T) {
	left := Column{BBox: rect(0, 0, 90, 100)}
	right := Column{BBox: rect(100, 0, 200, 95)}

	got := cleanColumns([]Column{right, right, left, right}, 10)
	want := []Column{left, right}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("index %d: got %v, want %v", i, got[i].BBox, want[i].BBox)
		}
	}
}
