// File: internal/sandbox/apply.go
package sandbox

import (
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/raster"
)

// Persistent sandbox drawing geometry. Drawings are white-on-black and
// fully opaque; they accumulate across turns.
const (
	clickRadius   = 6
	dragThickness = 4
	typeTextScale = 2
	typeOffset    = 10
	rightW        = 12
	rightH        = 8
)

// Apply renders each instruction's visual effect onto the canvas in order
// and returns the applied subsequence as canonical strings plus a dirty
// flag. A type() with no known cursor position is silently skipped and
// excluded from applied — that exclusion is what the reconciliation
// protocol keys on. screenshot() and focus() never mutate and are never
// applied. Canvas and state are persisted only when something changed.
func (s *Store) Apply(cv *raster.Canvas, instrs []actions.Instruction, reset bool) (applied []string, dirty bool) {
	st := s.LoadState(reset)

	for _, in := range instrs {
		switch a := in.(type) {
		case actions.Drag:
			x1 := actions.ScaleCoord(a.X1, cv.W)
			y1 := actions.ScaleCoord(a.Y1, cv.H)
			x2 := actions.ScaleCoord(a.X2, cv.W)
			y2 := actions.ScaleCoord(a.Y2, cv.H)
			cv.LineOpaque(x1, y1, x2, y2, raster.White, dragThickness)
			st.Set(x2, y2)
			dirty = true
			applied = append(applied, a.Canonical())

		case actions.LeftClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			cv.CircleOpaque(x, y, clickRadius, raster.White)
			st.Set(x, y)
			dirty = true
			applied = append(applied, a.Canonical())

		case actions.DoubleLeftClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			cv.CircleOpaque(x, y, clickRadius, raster.White)
			st.Set(x, y)
			dirty = true
			applied = append(applied, a.Canonical())

		case actions.RightClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			cv.FillRectOpaque(x-rightW/2, y-rightH/2, rightW, rightH, raster.White)
			st.Set(x, y)
			dirty = true
			applied = append(applied, a.Canonical())

		case actions.Type:
			if !st.Known() {
				// No cursor position, nowhere to anchor the text. The
				// instruction stays out of applied so the caller can
				// demote it.
				s.log.Debug("type skipped: cursor position unknown")
				continue
			}
			cv.DrawText(*st.LastX+typeOffset, *st.LastY+typeOffset, a.Text, raster.White, typeTextScale)
			dirty = true
			applied = append(applied, a.Canonical())

		case actions.Screenshot, actions.Focus:
			// Informational; handled by the caller, no visual effect.

		default:
			s.log.Warn("unknown instruction kind ignored", zap.String("canonical", in.Canonical()))
		}
	}

	if dirty {
		s.SaveState(st)
	}
	return applied, dirty
}
