package render

import (
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/colbox/layout"
	"github.com/tsawler/colbox/model"
)

const reportStyle = `body{font-family:sans-serif;max-width:60em;margin:2em auto}
svg{border:1px solid #ccc;max-width:100%;height:auto}
rect.panel{fill:lavender}
rect.image{fill:lightblue}
rect.block{fill:none;stroke:silver}
rect.obstacle{fill:none;stroke:red}
rect.column{fill:none;stroke:green;stroke-width:2}
text.label{fill:darkgreen;font-size:12px}
.other{color:#666}`

// PageReport is one page of an HTML report. Text may be nil when only
// columns were computed.
type PageReport struct {
	Number  int
	Overlay Overlay
	Text    *layout.PageText
}

// Report is a document-level HTML report
type Report struct {
	Title string
	Pages []PageReport
}

// HTML writes the report as a standalone HTML page with an inline SVG of
// each page's geometry followed by its text in reading order.
func HTML(w io.Writer, rep Report) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, "charset", "utf-8"))
	head.AppendChild(withText(element(atom.Title), rep.Title))
	head.AppendChild(withText(element(atom.Style), reportStyle))
	root.AppendChild(head)

	body := element(atom.Body)
	body.AppendChild(withText(element(atom.H1), rep.Title))
	for _, p := range rep.Pages {
		body.AppendChild(pageSection(p))
	}
	root.AppendChild(body)

	if err := html.Render(w, doc); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}

func pageSection(p PageReport) *html.Node {
	sec := element(atom.Section, "id", "page-"+strconv.Itoa(p.Number))
	sec.AppendChild(withText(element(atom.H2), fmt.Sprintf("Page %d", p.Number)))
	sec.AppendChild(pageSVG(p.Overlay))

	cols := element(atom.Ol, "class", "columns")
	for _, c := range p.Overlay.Columns {
		desc := c.BBox.String()
		if c.Background > 0 {
			desc += fmt.Sprintf(" on panel %d", c.Background)
		}
		cols.AppendChild(withText(element(atom.Li), desc))
	}
	sec.AppendChild(cols)

	if p.Text == nil {
		return sec
	}
	for _, para := range p.Text.Paragraphs {
		sec.AppendChild(withText(element(atom.P), para))
	}
	for _, other := range p.Text.Other {
		sec.AppendChild(withText(element(atom.P, "class", "other"), other))
	}
	if len(p.Text.Images) > 0 {
		list := element(atom.Ul, "class", "images")
		for _, img := range p.Text.Images {
			item := withText(element(atom.Li), fmt.Sprintf("Image %d", img.ID))
			for _, t := range img.Text {
				item.AppendChild(withText(element(atom.Blockquote), t))
			}
			list.AppendChild(item)
		}
		sec.AppendChild(list)
	}
	return sec
}

func pageSVG(ov Overlay) *html.Node {
	b := ov.Bounds
	svg := &html.Node{
		Type:     html.ElementNode,
		Data:     "svg",
		DataAtom: atom.Svg,
		Attr: attrs(
			"xmlns", "http://www.w3.org/2000/svg",
			"viewBox", fmt.Sprintf("%s %s %s %s", num(b.X0), num(b.Y0), num(b.Width()), num(b.Height())),
			"width", num(b.Width()),
			"height", num(b.Height()),
		),
	}
	add := func(class string, rects []model.Rect) {
		for _, r := range rects {
			svg.AppendChild(svgRect(class, r))
		}
	}
	add("panel", ov.Panels)
	add("image", ov.Images)
	add("block", ov.Blocks)
	add("obstacle", ov.Obstacles)
	for i, c := range ov.Columns {
		svg.AppendChild(svgRect("column", c.BBox))
		label := &html.Node{
			Type: html.ElementNode,
			Data: "text",
			Attr: attrs("class", "label", "x", num(c.BBox.X0+3), "y", num(c.BBox.Y0+12)),
		}
		svg.AppendChild(withText(label, strconv.Itoa(i+1)))
	}
	return svg
}

func svgRect(class string, r model.Rect) *html.Node {
	return &html.Node{
		Type: html.ElementNode,
		Data: "rect",
		Attr: attrs(
			"class", class,
			"x", num(r.X0),
			"y", num(r.Y0),
			"width", num(r.Width()),
			"height", num(r.Height()),
		),
	}
}

func element(a atom.Atom, kv ...string) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs(kv...)}
}

func attrs(kv ...string) []html.Attribute {
	out := make([]html.Attribute, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out = append(out, html.Attribute{Key: kv[i], Val: kv[i+1]})
	}
	return out
}

func withText(n *html.Node, s string) *html.Node {
	n.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return n
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
