package layout

import (
	"github.com/sirupsen/logrus"

	"github.com/tsawler/colbox/internal/spatial"
	"github.com/tsawler/colbox/model"
)

// merger folds sorted candidates into column boxes. The first structurally
// valid target wins; there is no search for a better one, so the candidate
// order fully determines the result.
type merger struct {
	obstacles *spatial.Index
	log       logrus.FieldLogger
}

func newMerger(obstacles []model.Rect, log logrus.FieldLogger) *merger {
	return &merger{
		obstacles: spatial.NewIndex(obstacles),
		log:       log,
	}
}

// run merges candidates, which must be sorted by background, top and left
// edge. Every candidate is visited exactly once.
func (m *merger) run(candidates []Column) []Column {
	if len(candidates) == 0 {
		return nil
	}

	acc := make([]Column, 1, len(candidates))
	acc[0] = candidates[0]

	for i := 1; i < len(candidates); i++ {
		bb := candidates[i]

		slot, temp := m.findTarget(bb, acc)
		if slot < 0 {
			acc = append(acc, bb)
			slot, temp = len(acc)-1, bb.BBox
		}

		// A later candidate inside temp would end up bridged into this box.
		if !m.canExtend(temp, bb.BBox, bb.BBox, candidates[i+1:]) {
			m.log.WithFields(logrus.Fields{
				"candidate": bb.BBox.String(),
				"reason":    "conflicts with pending candidate",
			}).Debug("candidate kept separate")
			acc = append(acc, bb)
			continue
		}

		m.log.WithFields(logrus.Fields{
			"candidate": bb.BBox.String(),
			"target":    slot,
		}).Debug("candidate committed")
		acc[slot] = Column{BBox: temp, Background: bb.Background}
	}
	return acc
}

// findTarget returns the index of the first accumulated box bb can extend
// and the extended rectangle, or -1.
func (m *merger) findTarget(bb Column, acc []Column) (int, model.Rect) {
	for j, nbb := range acc {
		// never join across columns
		if nbb.BBox.X1 < bb.BBox.X0 || bb.BBox.X1 < nbb.BBox.X0 {
			continue
		}
		// never join across different backgrounds
		if nbb.Background != bb.Background {
			continue
		}
		temp := nbb.BBox.Union(bb.BBox)
		if m.canExtend(temp, nbb.BBox, bb.BBox, acc) {
			return j, temp
		}
	}
	return -1, model.EmptyRect
}

// canExtend reports whether temp stays clear of every obstacle and of every
// box in others except those equal to a or b.
func (m *merger) canExtend(temp, a, b model.Rect, others []Column) bool {
	if m.obstacles.AnyIntersecting(temp) {
		return false
	}
	for _, o := range others {
		if o.BBox == a || o.BBox == b {
			continue
		}
		if temp.Intersects(o.BBox) {
			return false
		}
	}
	return true
}
