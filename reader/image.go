package reader

import (
	"github.com/ledongthuc/pdf"

	"github.com/tsawler/colbox/model"
)

// maxFormDepth bounds the recursion into nested form XObjects
const maxFormDepth = 8

// matrix is a PDF transformation matrix [a b c d e f]
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// multiply returns m followed by n, the order in which the cm operator
// concatenates a matrix onto the current transformation.
func (m matrix) multiply(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) model.Point {
	return model.Point{X: m[0]*x + m[2]*y + m[4], Y: m[1]*x + m[3]*y + m[5]}
}

// unitSquare returns the bounds of the unit square under m, which is where
// an image XObject is painted.
func (m matrix) unitSquare() model.Rect {
	r := model.NewRectFromPoints(m.apply(0, 0), m.apply(1, 1))
	return r.Union(model.NewRectFromPoints(m.apply(1, 0), m.apply(0, 1)))
}

// imageScanner tracks the graphics state stack of a content stream and
// records where image XObjects are painted
type imageScanner struct {
	ids    map[string]int
	images []model.Image
}

// scanImages returns the image placements of page p in PDF user space.
// Images are numbered by first use; an image drawn twice keeps its number.
func scanImages(p pdf.Page) []model.Image {
	s := &imageScanner{ids: make(map[string]int)}
	s.scan(p.V.Key("Contents"), p.Resources(), identity, "", 0)
	return s.images
}

func (s *imageScanner) scan(contents, resources pdf.Value, ctm matrix, prefix string, depth int) {
	streams := []pdf.Value{contents}
	if contents.Kind() == pdf.Array {
		streams = streams[:0]
		for i := 0; i < contents.Len(); i++ {
			streams = append(streams, contents.Index(i))
		}
	}

	var saved []matrix
	for _, strm := range streams {
		if strm.Kind() != pdf.Stream {
			continue
		}
		pdf.Interpret(strm, func(stk *pdf.Stack, op string) {
			n := stk.Len()
			args := make([]pdf.Value, n)
			for i := n - 1; i >= 0; i-- {
				args[i] = stk.Pop()
			}

			switch op {
			case "q":
				saved = append(saved, ctm)
			case "Q":
				if len(saved) > 0 {
					ctm = saved[len(saved)-1]
					saved = saved[:len(saved)-1]
				}
			case "cm":
				if len(args) != 6 {
					return
				}
				var m matrix
				for i, a := range args {
					m[i] = a.Float64()
				}
				ctm = m.multiply(ctm)
			case "Do":
				if len(args) != 1 {
					return
				}
				s.paint(resources, args[0].Name(), ctm, prefix, depth)
			}
		})
	}
}

// paint handles one Do operator
func (s *imageScanner) paint(resources pdf.Value, name string, ctm matrix, prefix string, depth int) {
	xobj := resources.Key("XObject").Key(name)
	switch xobj.Key("Subtype").Name() {
	case "Image":
		key := prefix + name
		id, ok := s.ids[key]
		if !ok {
			id = len(s.ids) + 1
			s.ids[key] = id
		}
		s.images = append(s.images, model.Image{ID: id, BBox: ctm.unitSquare()})

	case "Form":
		if depth >= maxFormDepth {
			return
		}
		form := ctm
		if m := xobj.Key("Matrix"); m.Kind() == pdf.Array && m.Len() == 6 {
			var fm matrix
			for i := range fm {
				fm[i] = m.Index(i).Float64()
			}
			form = fm.multiply(ctm)
		}
		formResources := xobj.Key("Resources")
		if formResources.IsNull() {
			formResources = resources
		}
		s.scan(xobj, formResources, form, prefix+name+"/", depth+1)
	}
}
