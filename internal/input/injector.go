// File: internal/input/injector.go

// Package input issues real OS pointer and keyboard events for physical
// execution mode. The platform specifics live behind the Driver interface;
// the Injector adds the pacing that makes synthetic input reliable.
package input

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/config"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonLeft Button = iota
	ButtonRight
)

// ErrUnavailable is returned by NewDriver on platforms without an input
// backend.
var ErrUnavailable = errors.New("input: no driver available on this platform")

// Driver is the raw event sink. Implementations dispatch single events and
// report the pointer surface; all pacing and interpolation happens above.
type Driver interface {
	// ScreenSize returns the pointer surface extent in pixels.
	ScreenSize() (w, h int)
	// CursorPos reports the current pointer position in pixels.
	CursorPos() (x, y int, err error)
	// MoveAbs warps the pointer to an absolute pixel position.
	MoveAbs(x, y int) error
	// ButtonDown and ButtonUp press and release one pointer button at the
	// current position.
	ButtonDown(b Button) error
	ButtonUp(b Button) error
	// SendText injects text as Unicode code points. Carriage returns are
	// dropped; newlines arrive as Enter.
	SendText(text string) error
}

// Injector turns instructions into paced event sequences on a Driver.
type Injector struct {
	drv Driver
	cfg config.InputConfig
	log *zap.Logger
}

// NewInjector wires an injector over a platform driver.
func NewInjector(drv Driver, cfg config.InputConfig, log *zap.Logger) *Injector {
	return &Injector{drv: drv, cfg: cfg, log: log.Named("input")}
}

// Dispatch performs one instruction's physical effect. Coordinates on the
// instruction are normalized 0-1000 and are scaled to the driver's screen
// here. Screenshot and focus are no-ops at this layer.
func (in *Injector) Dispatch(ctx context.Context, instr actions.Instruction) error {
	sw, sh := in.drv.ScreenSize()
	switch a := instr.(type) {
	case actions.LeftClick:
		return in.click(ctx, actions.ScaleCoord(a.X, sw), actions.ScaleCoord(a.Y, sh), ButtonLeft)
	case actions.RightClick:
		return in.click(ctx, actions.ScaleCoord(a.X, sw), actions.ScaleCoord(a.Y, sh), ButtonRight)
	case actions.DoubleLeftClick:
		x, y := actions.ScaleCoord(a.X, sw), actions.ScaleCoord(a.Y, sh)
		if err := in.click(ctx, x, y, ButtonLeft); err != nil {
			return err
		}
		if err := sleep(ctx, in.cfg.DoubleClickGap); err != nil {
			return err
		}
		return in.click(ctx, x, y, ButtonLeft)
	case actions.Drag:
		return in.drag(ctx,
			actions.ScaleCoord(a.X1, sw), actions.ScaleCoord(a.Y1, sh),
			actions.ScaleCoord(a.X2, sw), actions.ScaleCoord(a.Y2, sh))
	case actions.Type:
		return in.drv.SendText(a.Text)
	case actions.Screenshot, actions.Focus:
		return nil
	}
	return fmt.Errorf("input: no physical dispatch for %q", instr.Canonical())
}

// smoothMove eases the pointer from its current position to the target
// over the configured step count. The smoothstep curve front- and
// back-loads the dwell time the way a hand movement does.
func (in *Injector) smoothMove(ctx context.Context, tx, ty int) error {
	sx, sy, err := in.drv.CursorPos()
	if err != nil {
		return fmt.Errorf("input: read cursor position: %w", err)
	}
	steps := in.cfg.MoveSteps
	dx, dy := tx-sx, ty-sy
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		t = t * t * (3.0 - 2.0*t)
		x := sx + int(float64(dx)*t)
		y := sy + int(float64(dy)*t)
		if err := in.drv.MoveAbs(x, y); err != nil {
			return fmt.Errorf("input: move step %d: %w", i, err)
		}
		if err := sleep(ctx, in.cfg.StepDelay); err != nil {
			return err
		}
	}
	return nil
}

func (in *Injector) click(ctx context.Context, x, y int, b Button) error {
	if err := in.smoothMove(ctx, x, y); err != nil {
		return err
	}
	if err := sleep(ctx, in.cfg.ClickDelay); err != nil {
		return err
	}
	if err := in.drv.ButtonDown(b); err != nil {
		return err
	}
	if err := sleep(ctx, in.cfg.ButtonGap); err != nil {
		return err
	}
	return in.drv.ButtonUp(b)
}

func (in *Injector) drag(ctx context.Context, x1, y1, x2, y2 int) error {
	if err := in.smoothMove(ctx, x1, y1); err != nil {
		return err
	}
	if err := sleep(ctx, in.cfg.DragPause); err != nil {
		return err
	}
	if err := in.drv.ButtonDown(ButtonLeft); err != nil {
		return err
	}
	if err := sleep(ctx, in.cfg.DragPause); err != nil {
		return err
	}
	if err := in.smoothMove(ctx, x2, y2); err != nil {
		// Release the button even when the move failed, otherwise the
		// desktop is left mid-drag.
		if upErr := in.drv.ButtonUp(ButtonLeft); upErr != nil {
			in.log.Warn("drag release after failed move also failed", zap.Error(upErr))
		}
		return err
	}
	if err := sleep(ctx, in.cfg.DragPause); err != nil {
		return err
	}
	return in.drv.ButtonUp(ButtonLeft)
}

// sleep pauses without ignoring cancellation.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
