// File: internal/overlay/overlay_test.go
package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/raster"
)

const testW, testH = 640, 480

func countNonBlack(cv *raster.Canvas) int {
	n := 0
	for i := 0; i < len(cv.Pix); i += 4 {
		if cv.Pix[i] != 0 || cv.Pix[i+1] != 0 || cv.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

func countRed(cv *raster.Canvas) int {
	n := 0
	for i := 0; i < len(cv.Pix); i += 4 {
		if cv.Pix[i] > 100 && cv.Pix[i+1] < 50 && cv.Pix[i+2] < 50 {
			n++
		}
	}
	return n
}

func TestDrawMarksPointKinds(t *testing.T) {
	for _, in := range []actions.Instruction{
		actions.LeftClick{X: 500, Y: 500},
		actions.RightClick{X: 500, Y: 500},
		actions.DoubleLeftClick{X: 500, Y: 500},
	} {
		t.Run(in.Name(), func(t *testing.T) {
			cv := raster.New(testW, testH)
			DrawMarks(cv, []actions.Instruction{in})
			assert.Positive(t, countRed(cv), "marker fill must be red")
		})
	}
}

func TestDrawMarksRightClickBadge(t *testing.T) {
	plain := raster.New(testW, testH)
	badged := raster.New(testW, testH)
	DrawMarks(plain, []actions.Instruction{actions.LeftClick{X: 500, Y: 500}})
	DrawMarks(badged, []actions.Instruction{actions.RightClick{X: 500, Y: 500}})

	// The badge adds lit pixels beyond the circular marker.
	assert.Greater(t, countNonBlack(badged), countNonBlack(plain))
}

func TestDrawMarksDoubleClickRing(t *testing.T) {
	single := raster.New(testW, testH)
	double := raster.New(testW, testH)
	DrawMarks(single, []actions.Instruction{actions.LeftClick{X: 500, Y: 500}})
	DrawMarks(double, []actions.Instruction{actions.DoubleLeftClick{X: 500, Y: 500}})

	assert.Greater(t, countNonBlack(double), countNonBlack(single))
}

func TestDrawMarksDrag(t *testing.T) {
	cv := raster.New(testW, testH)
	DrawMarks(cv, []actions.Instruction{actions.Drag{X1: 100, Y1: 500, X2: 900, Y2: 500}})

	require.Positive(t, countRed(cv))
	// The arrow shaft crosses the frame midline.
	midX, midY := testW/2, testH/2
	i := (midY*testW + midX) * 4
	assert.Positive(t, int(cv.Pix[i]), "arrow shaft expected near frame center")
}

func TestDrawMarksCounterIsShared(t *testing.T) {
	// Three markers at distinct spots; each subsequent marker carries a
	// larger number, so its lit area differs. Just verify all three draw
	// and the trail joins them.
	cv := raster.New(testW, testH)
	DrawMarks(cv, []actions.Instruction{
		actions.LeftClick{X: 150, Y: 150},
		actions.RightClick{X: 500, Y: 500},
		actions.DoubleLeftClick{X: 850, Y: 850},
	})
	assert.Positive(t, countRed(cv))
}

func TestDrawMarksTrailThreshold(t *testing.T) {
	near := raster.New(testW, testH)
	far := raster.New(testW, testH)

	// Two clicks at the same point: no trail.
	DrawMarks(near, []actions.Instruction{
		actions.LeftClick{X: 500, Y: 500},
		actions.LeftClick{X: 500, Y: 500},
	})
	// Two clicks far apart: a trail line joins them.
	DrawMarks(far, []actions.Instruction{
		actions.LeftClick{X: 100, Y: 500},
		actions.LeftClick{X: 900, Y: 500},
	})

	// The far frame carries strictly more lit pixels than two overlapping
	// markers plus no trail.
	assert.Greater(t, countNonBlack(far), countNonBlack(near))

	// Sample a point along the straight path between the two far markers.
	x := actions.ScaleCoord(500, testW)
	y := actions.ScaleCoord(500, testH)
	i := (y*testW + x) * 4
	assert.Positive(t, int(far.Pix[i]), "trail expected between distant markers")
}

func TestDrawMarksTypeNeedsAnchor(t *testing.T) {
	cv := raster.New(testW, testH)
	DrawMarks(cv, []actions.Instruction{actions.Type{Text: "hello"}})

	// Leading type() has no anchor: nothing is drawn.
	assert.Zero(t, countNonBlack(cv))
}

func TestDrawMarksTypeBalloon(t *testing.T) {
	cv := raster.New(testW, testH)
	DrawMarks(cv, []actions.Instruction{
		actions.LeftClick{X: 500, Y: 500},
		actions.Type{Text: "hello"},
	})

	// The balloon outline extends past the marker circle.
	x := actions.ScaleCoord(500, testW) - 30
	y := actions.ScaleCoord(500, testH)
	i := (y*testW + x) * 4
	assert.Positive(t, int(cv.Pix[i])+int(cv.Pix[i+1])+int(cv.Pix[i+2]))
}

func TestDrawMarksInformationalKindsInert(t *testing.T) {
	cv := raster.New(testW, testH)
	DrawMarks(cv, []actions.Instruction{actions.Screenshot{}, actions.Focus{}})
	assert.Zero(t, countNonBlack(cv))
}

func TestDrawMarksOffFrameDoesNotPanic(t *testing.T) {
	cv := raster.New(100, 100)
	DrawMarks(cv, []actions.Instruction{
		actions.LeftClick{X: 0, Y: 0},
		actions.Drag{X1: 1000, Y1: 1000, X2: 0, Y2: 0},
	})
	assert.Positive(t, countNonBlack(cv))
}
