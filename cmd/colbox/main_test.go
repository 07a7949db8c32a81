package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/colbox"
	"github.com/tsawler/colbox/model"
)

const twoPages = `{"pages": [
	{
		"width": 612, "height": 792,
		"drawings": [{"items": [["re", 300, 90, 260, 110]]}],
		"blocks": [
			{"lines": [
				{"spans": [{"text": "Left column", "bbox": [50, 100, 280, 112]}]},
				{"spans": [{"text": "second line", "bbox": [50, 120, 280, 132]}]}
			]},
			{"lines": [
				{"spans": [{"text": "Right column", "bbox": [320, 100, 550, 112]}]},
				{"spans": [{"text": "more text", "bbox": [320, 120, 550, 132]}]}
			]}
		]
	},
	{"width": 612, "height": 792}
]}`

// run executes the CLI with args and returns stdout and stderr. A missing
// config file is passed unless args name one.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", filepath.Join(t.TempDir(), "none.toml")}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func sampleFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.json")
	require.NoError(t, os.WriteFile(path, []byte(twoPages), 0o644))
	return path
}

func TestColumnsCmd_JSON(t *testing.T) {
	stdout, stderr, err := run(t, "columns", "--json", sampleFile(t))
	require.NoError(t, err)

	var pages []colbox.PageColumns
	require.NoError(t, json.Unmarshal([]byte(stdout), &pages))
	require.Len(t, pages, 2)
	require.Len(t, pages[0].Columns, 2)
	assert.Equal(t, model.Rect{X0: 50, Y0: 100, X1: 280, Y1: 132}, pages[0].Columns[0].BBox)
	assert.Equal(t, 0, pages[0].Columns[0].Background)
	assert.Equal(t, 1, pages[0].Columns[1].Background)
	assert.Empty(t, pages[1].Columns)

	assert.Contains(t, stderr, "page 2: no text found")
}

func TestColumnsCmd_Table(t *testing.T) {
	stdout, _, err := run(t, "columns", "--pages", "1", sampleFile(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Page 1")
	assert.Contains(t, stdout, "320.0")
	assert.NotContains(t, stdout, "Page 2")
}

func TestColumnsCmd_Clip(t *testing.T) {
	stdout, _, err := run(t, "columns", "--json", "--pages", "1", "--clip", "0,0,300,792", sampleFile(t))
	require.NoError(t, err)

	var pages []colbox.PageColumns
	require.NoError(t, json.Unmarshal([]byte(stdout), &pages))
	require.Len(t, pages[0].Columns, 1)
	assert.Equal(t, 50.0, pages[0].Columns[0].BBox.X0)
}

func TestExtractCmd(t *testing.T) {
	stdout, _, err := run(t, "extract", "--text", sampleFile(t))
	require.NoError(t, err)
	assert.Equal(t, "Left column second line\n\nRight column more text\n", stdout)

	stdout, _, err = run(t, "extract", "--pages", "1", sampleFile(t))
	require.NoError(t, err)
	assert.JSONEq(t, `[{"paragraphs":["Left column second line","Right column more text"],"other":[],"images":[]}]`, stdout)
}

func TestRenderCmd_HTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.html")
	_, _, err := run(t, "render", "-o", out, sampleFile(t))
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
	assert.Contains(t, string(data), "Left column second line")
}

func TestRenderCmd_PNG(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "render", "--scale", "0.5", "-o", filepath.Join(dir, "page.png"), sampleFile(t))
	require.NoError(t, err)

	for _, name := range []string{"page-1.png", "page-2.png"} {
		info, err := os.Stat(filepath.Join(dir, name))
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size())
	}
}

func TestCommandErrors(t *testing.T) {
	file := sampleFile(t)
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"columns", filepath.Join(t.TempDir(), "missing.pdf")}},
		{"bad clip", []string{"columns", "--clip", "1,2,3", file}},
		{"inverted clip", []string{"columns", "--clip", "10,0,0,10", file}},
		{"page out of range", []string{"columns", "--pages", "9", file}},
		{"negative row tolerance", []string{"columns", "--row-tolerance", "-1", file}},
		{"bad log level", []string{"columns", "--log-level", "loud", file}},
		{"render output type", []string{"render", "-o", filepath.Join(t.TempDir(), "out.txt"), file}},
		{"render scale", []string{"render", "--scale", "0", file}},
		{"no arguments", []string{"extract"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := run(t, tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[log]\nlevel = \"debug\"\n"), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "columns", "--pages", "1", sampleFile(t)})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, stderr.String(), "column boxes built")

	require.NoError(t, os.WriteFile(cfgPath, []byte("[columns]\nrow_tolerence = 3\n"), 0o644))
	cmd = newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs([]string{"--config", cfgPath, "columns", sampleFile(t)})
	assert.Error(t, cmd.Execute(), "misspelled key is rejected")
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "colbox dev (commit: unknown, built: unknown)\n", stdout)
}

func TestParseClip(t *testing.T) {
	tests := []struct {
		in      string
		want    model.Rect
		wantErr bool
	}{
		{"0,50,300,742", model.Rect{X0: 0, Y0: 50, X1: 300, Y1: 742}, false},
		{" 1.5, 2 ,3,4", model.Rect{X0: 1.5, Y0: 2, X1: 3, Y1: 4}, false},
		{"1,2,3", model.Rect{}, true},
		{"a,2,3,4", model.Rect{}, true},
		{"5,5,1,1", model.Rect{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseClip(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
