// File: internal/input/injector_test.go
package input

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/config"
)

// fakeDriver records the event sequence instead of touching the OS.
type fakeDriver struct {
	w, h    int
	curX    int
	curY    int
	events  []string
	moveErr error
	posErr  error
}

func (d *fakeDriver) ScreenSize() (int, int) { return d.w, d.h }

func (d *fakeDriver) CursorPos() (int, int, error) {
	if d.posErr != nil {
		return 0, 0, d.posErr
	}
	return d.curX, d.curY, nil
}

func (d *fakeDriver) MoveAbs(x, y int) error {
	if d.moveErr != nil {
		return d.moveErr
	}
	d.curX, d.curY = x, y
	d.events = append(d.events, "move")
	return nil
}

func (d *fakeDriver) ButtonDown(b Button) error {
	if b == ButtonRight {
		d.events = append(d.events, "rdown")
	} else {
		d.events = append(d.events, "ldown")
	}
	return nil
}

func (d *fakeDriver) ButtonUp(b Button) error {
	if b == ButtonRight {
		d.events = append(d.events, "rup")
	} else {
		d.events = append(d.events, "lup")
	}
	return nil
}

func (d *fakeDriver) SendText(text string) error {
	d.events = append(d.events, "text:"+text)
	return nil
}

// fastConfig keeps the pacing real but the test quick.
func fastConfig() config.InputConfig {
	return config.InputConfig{MoveSteps: 4}
}

func newTestInjector(d *fakeDriver) *Injector {
	return NewInjector(d, fastConfig(), zap.NewNop())
}

func lastEvents(d *fakeDriver, n int) []string {
	if len(d.events) < n {
		return d.events
	}
	return d.events[len(d.events)-n:]
}

func TestDispatchLeftClick(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	err := inj.Dispatch(context.Background(), actions.LeftClick{X: 500, Y: 500})
	require.NoError(t, err)

	// Eased movement first, then press and release at rest.
	assert.Equal(t, []string{"ldown", "lup"}, lastEvents(d, 2))
	assert.Equal(t, 500, d.curX)
	assert.Equal(t, 500, d.curY)
	// MoveSteps+1 interpolation points.
	assert.Equal(t, "move", d.events[0])
	assert.Len(t, d.events, 4+1+2)
}

func TestDispatchRightClick(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.RightClick{X: 100, Y: 900}))
	assert.Equal(t, []string{"rdown", "rup"}, lastEvents(d, 2))
}

func TestDispatchDoubleClick(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.DoubleLeftClick{X: 200, Y: 200}))

	downs := 0
	for _, e := range d.events {
		if e == "ldown" {
			downs++
		}
	}
	assert.Equal(t, 2, downs)
}

func TestDispatchDragOrdering(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.Drag{X1: 100, Y1: 100, X2: 800, Y2: 800}))

	// Button goes down after reaching the start and up after reaching the
	// end: exactly one down, one up, with moves in between.
	var downIdx, upIdx, lastMoveBetween int
	for i, e := range d.events {
		switch e {
		case "ldown":
			downIdx = i
		case "lup":
			upIdx = i
		case "move":
			if downIdx > 0 && upIdx == 0 {
				lastMoveBetween = i
			}
		}
	}
	assert.Greater(t, upIdx, downIdx)
	assert.Greater(t, lastMoveBetween, downIdx)
	assert.Equal(t, 800, d.curX)
}

func TestDispatchType(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.Type{Text: "hello"}))
	assert.Equal(t, []string{"text:hello"}, d.events)
}

func TestDispatchInformationalNoOp(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.Screenshot{}))
	require.NoError(t, inj.Dispatch(context.Background(), actions.Focus{}))
	assert.Empty(t, d.events)
}

func TestDispatchScalesCoordinates(t *testing.T) {
	d := &fakeDriver{w: 1920, h: 1080}
	inj := newTestInjector(d)

	require.NoError(t, inj.Dispatch(context.Background(), actions.LeftClick{X: 1000, Y: 0}))
	assert.Equal(t, 1920, d.curX)
	assert.Equal(t, 0, d.curY)
}

func TestDispatchCursorPosError(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000, posErr: errors.New("no pointer")}
	inj := newTestInjector(d)

	err := inj.Dispatch(context.Background(), actions.LeftClick{X: 1, Y: 1})
	assert.Error(t, err)
	assert.Empty(t, d.events)
}

func TestDragReleasesButtonOnMoveFailure(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	inj := newTestInjector(d)

	// Fail movement after the button is down: flip moveErr mid-drag by
	// wrapping the driver.
	w := &failAfterDown{fakeDriver: d}
	inj = NewInjector(w, fastConfig(), zap.NewNop())

	err := inj.Dispatch(context.Background(), actions.Drag{X1: 0, Y1: 0, X2: 900, Y2: 900})
	require.Error(t, err)
	assert.Equal(t, "lup", d.events[len(d.events)-1], "button must be released after a failed move")
}

// failAfterDown fails every MoveAbs once the left button has gone down.
type failAfterDown struct {
	*fakeDriver
	down bool
}

func (d *failAfterDown) ButtonDown(b Button) error {
	d.down = true
	return d.fakeDriver.ButtonDown(b)
}

func (d *failAfterDown) MoveAbs(x, y int) error {
	if d.down {
		return errors.New("move rejected")
	}
	return d.fakeDriver.MoveAbs(x, y)
}

func TestDispatchRespectsCancelledContext(t *testing.T) {
	d := &fakeDriver{w: 1000, h: 1000}
	cfg := fastConfig()
	cfg.StepDelay = 1 // nanoseconds, but enough to hit the sleep path
	inj := NewInjector(d, cfg, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := inj.Dispatch(ctx, actions.LeftClick{X: 500, Y: 500})
	assert.ErrorIs(t, err, context.Canceled)
}
