// File: internal/overlay/overlay.go

// Package overlay draws the ephemeral numbered marks the model uses to
// correlate feedback text with screen regions. Marks are drawn on a
// disposable copy of the frame, never on persistent state.
package overlay

import (
	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/raster"
)

// Overlay colors. Fill and trail are translucent so the underlying frame
// stays readable; digit fill is opaque with a black outline for contrast.
var (
	markFill    = raster.RGBA(255, 0, 0, 180)
	markOutline = raster.RGBA(255, 255, 255, 230)
	markText    = raster.RGBA(255, 255, 255, 255)
	trailColor  = raster.RGBA(255, 0, 0, 120)
)

const (
	markOuterR   = 32
	markInnerR   = 28
	ringR        = 42
	dragStartR   = 20
	dragInnerR   = 16
	trailMinDist = 30 // manhattan distance gate for trail lines
	numberScale  = 4
	dragNumScale = 3
	balloonPad   = 30
)

// DrawMarks renders one numbered marker per point-like instruction, in
// instruction order, onto cv. The counter starts at 1 and is shared across
// all instruction kinds within the turn. Consecutive markers further apart
// than a small threshold are joined by a translucent trail line.
//
// cv must be a throwaway copy of the current frame.
func DrawMarks(cv *raster.Canvas, instrs []actions.Instruction) {
	var haveAnchor bool
	var ax, ay int // last marker anchor, pixel space
	n := 1

	trail := func(x, y int) {
		if haveAnchor && abs(x-ax)+abs(y-ay) > trailMinDist {
			cv.Line(ax, ay, x, y, trailColor, 4)
		}
	}

	for _, in := range instrs {
		switch a := in.(type) {
		case actions.LeftClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			trail(x, y)
			cv.Circle(x, y, markOuterR, markOutline, true, 3)
			cv.Circle(x, y, markInnerR, markFill, true, 3)
			cv.DrawNumber(x, y, n, markText, raster.Black, numberScale)
			ax, ay, haveAnchor = x, y, true
			n++

		case actions.RightClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			trail(x, y)
			cv.Circle(x, y, markOuterR, markOutline, true, 3)
			cv.Circle(x, y, markInnerR, markFill, true, 3)
			// Square badge distinguishes the right button.
			cv.Rect(x+20, y-36, 16, 16, markText, 3)
			cv.DrawNumber(x, y, n, markText, raster.Black, numberScale)
			ax, ay, haveAnchor = x, y, true
			n++

		case actions.DoubleLeftClick:
			x := actions.ScaleCoord(a.X, cv.W)
			y := actions.ScaleCoord(a.Y, cv.H)
			trail(x, y)
			cv.Circle(x, y, markOuterR, markOutline, true, 3)
			cv.Circle(x, y, markInnerR, markFill, true, 3)
			// Concentric ring marks the second click.
			cv.Circle(x, y, ringR, markOutline, false, 3)
			cv.DrawNumber(x, y, n, markText, raster.Black, numberScale)
			ax, ay, haveAnchor = x, y, true
			n++

		case actions.Drag:
			x1 := actions.ScaleCoord(a.X1, cv.W)
			y1 := actions.ScaleCoord(a.Y1, cv.H)
			x2 := actions.ScaleCoord(a.X2, cv.W)
			y2 := actions.ScaleCoord(a.Y2, cv.H)
			trail(x1, y1)
			cv.Circle(x1, y1, dragStartR, markOutline, true, 3)
			cv.Circle(x1, y1, dragInnerR, markFill, true, 3)
			cv.DrawNumber(x1, y1, n, markText, raster.Black, dragNumScale)
			cv.Arrow(x1, y1, x2, y2, markFill, 6)
			cv.Circle(x2, y2, dragStartR, markOutline, false, 4)
			cv.Circle(x2, y2, dragInnerR, markFill, false, 3)
			ax, ay, haveAnchor = x2, y2, true
			n++

		case actions.Type:
			if !haveAnchor {
				continue
			}
			// Text balloon anchored at the last marker position.
			cv.Rect(ax-balloonPad, ay-balloonPad/2, balloonPad*2, balloonPad, markFill, 4)
			cv.Rect(ax-balloonPad-2, ay-balloonPad/2-2, balloonPad*2+4, balloonPad+4, markOutline, 2)
			cv.DrawNumber(ax, ay, n, markText, raster.Black, dragNumScale)
			n++

		case actions.Screenshot, actions.Focus:
			// Informational instructions carry no mark.
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
