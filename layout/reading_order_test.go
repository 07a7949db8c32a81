package layout

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/colbox/model"
)

// articlePage is a two-column page with a banner, a running header and
// footer, and an image carrying a caption
func articlePage() *fakePage {
	page := letterPage()
	page.blocks = []model.TextBlock{
		makeBlock(50, 10, 550, 30, "Page header"),
		makeBlock(50, 60, 550, 80, "Title banner"),
		makeBlock(50, 100, 280, 112, "Left one"),
		makeBlock(50, 110, 280, 124, "Left two"),
		makeBlock(50, 140, 280, 152, "Left three"),
		makeBlock(320, 100, 550, 112, "Right one"),
		makeBlock(320, 620, 480, 640, "Caption on image"),
		makeBlock(50, 760, 550, 780, "Page footer"),
	}
	page.images = []model.Image{{ID: 7, BBox: rect(300, 600, 500, 700)}}
	return page
}

func TestNewReadingOrderDetector(t *testing.T) {
	d := NewReadingOrderDetector()
	if d == nil {
		t.Fatal("expected non-nil detector")
	}
	if d.config != DefaultReadingOrderConfig() {
		t.Errorf("config = %+v, want defaults", d.config)
	}
}

func TestNewReadingOrderDetectorWithConfig(t *testing.T) {
	config := ReadingOrderConfig{Margin: 20, MainWidthRatio: 2, MainAspectRatio: 1}
	d := NewReadingOrderDetectorWithConfig(config, nil)

	if d.config != config {
		t.Errorf("config = %+v, want %+v", d.config, config)
	}
	if d.builder == nil {
		t.Error("a nil builder should be replaced by a default one")
	}
}

func TestDefaultReadingOrderConfig(t *testing.T) {
	config := DefaultReadingOrderConfig()

	if config.Margin != 50.0 {
		t.Errorf("Margin = %v, want 50", config.Margin)
	}
	if config.MainWidthRatio != 1.5 {
		t.Errorf("MainWidthRatio = %v, want 1.5", config.MainWidthRatio)
	}
	if config.MainAspectRatio != 0.6 {
		t.Errorf("MainAspectRatio = %v, want 0.6", config.MainAspectRatio)
	}
}

func TestSplitMainColumns(t *testing.T) {
	d := NewReadingOrderDetector()

	tests := []struct {
		name      string
		boxes     []model.Rect
		wantMain  []model.Rect
		wantOther []model.Rect
	}{
		{
			name:  "empty",
			boxes: nil,
		},
		{
			name: "wide flat banner is an outlier",
			boxes: []model.Rect{
				rect(250, 0, 450, 300),
				rect(0, 320, 500, 340),
				rect(0, 0, 200, 300),
			},
			wantMain:  []model.Rect{rect(0, 0, 200, 300), rect(250, 0, 450, 300)},
			wantOther: []model.Rect{rect(0, 320, 500, 340)},
		},
		{
			name: "wide tall box stays main",
			boxes: []model.Rect{
				rect(0, 0, 100, 300),
				rect(120, 0, 220, 300),
				rect(0, 320, 600, 820),
			},
			wantMain: []model.Rect{rect(0, 0, 100, 300), rect(0, 320, 600, 820), rect(120, 0, 220, 300)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, other := d.SplitMainColumns(tt.boxes)
			if !sameRects(main, tt.wantMain) {
				t.Errorf("main = %v, want %v", main, tt.wantMain)
			}
			if !sameRects(other, tt.wantOther) {
				t.Errorf("other = %v, want %v", other, tt.wantOther)
			}
		})
	}
}

func TestExtract_DefaultClip(t *testing.T) {
	got, err := NewReadingOrderDetector().Extract(articlePage())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &PageText{
		Paragraphs: []string{"Left one Left two", "Left three", "Right one"},
		Other:      []string{"Title banner"},
		Images:     []ImageText{{ID: 7, Text: []string{"Caption on image"}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}

	for _, p := range got.Paragraphs {
		if strings.Contains(p, "Page header") || strings.Contains(p, "Page footer") {
			t.Errorf("margin text leaked into %q", p)
		}
	}
}

func TestExtract_ClipsDoNotRepeatText(t *testing.T) {
	clips := []model.Rect{
		rect(0, 50, 300, 742),
		rect(0, 50, 612, 742),
	}

	got, err := NewReadingOrderDetector().Extract(articlePage(), clips...)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := &PageText{
		Paragraphs: []string{"Title banner", "Left one Left two", "Left three", "Right one"},
		Other:      []string{},
		Images:     []ImageText{{ID: 7, Text: []string{"Caption on image"}}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v\nwant %+v", got, want)
	}
}

func TestExtract_EmptyPage(t *testing.T) {
	d := NewReadingOrderDetector()

	for name, page := range map[string]PagePrimitives{"nil": nil, "blank": letterPage()} {
		got, err := d.Extract(page)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if len(got.Paragraphs) != 0 || len(got.Other) != 0 || len(got.Images) != 0 {
			t.Errorf("%s: expected empty result, got %+v", name, got)
		}
		if got.Paragraphs == nil || got.Other == nil || got.Images == nil {
			t.Errorf("%s: result lists should be empty, not nil", name)
		}
	}
}

func TestExtract_InvalidClip(t *testing.T) {
	_, err := NewReadingOrderDetector().Extract(articlePage(), rect(100, 100, 0, 0))
	if err == nil {
		t.Error("expected error for inverted clip")
	}
}

func TestExtract_ClipWithoutArea(t *testing.T) {
	got, err := NewReadingOrderDetector().Extract(articlePage(), rect(500, 500, 500, 600))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Paragraphs) != 0 || len(got.Other) != 0 {
		t.Errorf("expected no text, got %+v", got)
	}
}

func TestPageText_JSON(t *testing.T) {
	pt := PageText{
		Paragraphs: []string{"a"},
		Other:      []string{},
		Images:     []ImageText{{ID: 3, Text: []string{"b"}}},
	}
	data, err := json.Marshal(pt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"paragraphs":["a"],"other":[],"images":[{"xref":3,"text":["b"]}]}`
	if string(data) != want {
		t.Errorf("got %s, want %s", data, want)
	}
}
