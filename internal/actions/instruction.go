// File: internal/actions/instruction.go

// Package actions implements the restricted action language spoken by the
// vision model: a single function-call expression per line, bare-identifier
// callee from a fixed allow-list, literal-only arguments. Anything richer
// is rejected outright, which is what keeps untrusted model output from
// ever reaching an evaluator.
package actions

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// Instruction is one validated action. Implementations are immutable value
// types; an instruction always round-trips through its canonical text form.
// Coordinates are normalized to 0-1000 over the last shown frame and are
// scaled to pixels only at the point of use.
type Instruction interface {
	// Canonical returns the single deterministic textual form of the
	// instruction. It never fails: missing fields render as zero/empty,
	// because canonical text is also produced for feedback display.
	Canonical() string

	// Name returns the canonical callee name, the key used by per-tool
	// gating.
	Name() string

	isInstruction()
}

type LeftClick struct{ X, Y int }

type RightClick struct{ X, Y int }

type DoubleLeftClick struct{ X, Y int }

type Drag struct{ X1, Y1, X2, Y2 int }

type Type struct{ Text string }

type Screenshot struct{}

type Focus struct{}

func (LeftClick) isInstruction()       {}
func (RightClick) isInstruction()      {}
func (DoubleLeftClick) isInstruction() {}
func (Drag) isInstruction()            {}
func (Type) isInstruction()            {}
func (Screenshot) isInstruction()      {}
func (Focus) isInstruction()           {}

func (LeftClick) Name() string       { return "left_click" }
func (RightClick) Name() string      { return "right_click" }
func (DoubleLeftClick) Name() string { return "double_left_click" }
func (Drag) Name() string            { return "drag" }
func (Type) Name() string            { return "type" }
func (Screenshot) Name() string      { return "screenshot" }
func (Focus) Name() string           { return "focus" }

func (i LeftClick) Canonical() string  { return fmt.Sprintf("left_click(%d, %d)", i.X, i.Y) }
func (i RightClick) Canonical() string { return fmt.Sprintf("right_click(%d, %d)", i.X, i.Y) }
func (i DoubleLeftClick) Canonical() string {
	return fmt.Sprintf("double_left_click(%d, %d)", i.X, i.Y)
}
func (i Drag) Canonical() string {
	return fmt.Sprintf("drag(%d, %d, %d, %d)", i.X1, i.Y1, i.X2, i.Y2)
}
func (i Type) Canonical() string {
	quoted, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(i.Text)
	if err != nil {
		// Marshaling a string cannot fail, but Canonical must not either.
		return `type("")`
	}
	return fmt.Sprintf("type(%s)", quoted)
}
func (Screenshot) Canonical() string { return "screenshot()" }
func (Focus) Canonical() string      { return "focus()" }

// ScaleCoord maps a normalized 0-1000 coordinate into pixel space for a
// surface extent, clamping out-of-range input instead of rejecting it.
func ScaleCoord(v, extent int) int {
	if v < 0 {
		v = 0
	}
	if v > 1000 {
		v = 1000
	}
	return v * extent / 1000
}

// Canonicalize maps a list of instructions to their canonical strings,
// the only form exchanged across the executor and rasterizer boundaries.
func Canonicalize(instrs []Instruction) []string {
	out := make([]string, len(instrs))
	for i, in := range instrs {
		out[i] = in.Canonical()
	}
	return out
}
