// File: internal/engine/capture.go
package engine

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"

	"github.com/nfnt/resize"

	"github.com/wgabrys88/franz/api/schemas"
	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/codec"
	"github.com/wgabrys88/franz/internal/overlay"
	"github.com/wgabrys88/franz/internal/raster"
)

// Capturer grabs one native RGBA frame of the real surface.
type Capturer interface {
	Frame() (*raster.Canvas, error)
}

// Capture services a standalone capture request: apply canonical action
// strings (sandbox mode) or just grab the screen, then return the encoded
// frame. Action strings that fail to parse are dropped silently; a capture
// request carries already-canonical text, so there is nothing to report
// back about.
func (e *Engine) Capture(req schemas.CaptureRequest) (schemas.CaptureResponse, error) {
	var instrs []actions.Instruction
	for _, line := range req.Actions {
		if in, ok := actions.Parse(line); ok {
			instrs = append(instrs, in)
		}
	}

	if req.Sandbox {
		shot, applied, err := e.renderSandbox(instrs, req.SandboxReset, req.Marks, req.Width, req.Height)
		if err != nil {
			return schemas.CaptureResponse{}, err
		}
		return schemas.CaptureResponse{Screenshot: shot, Applied: applied}, nil
	}

	shot, err := e.captureScreen(instrs, req.Marks, req.Width, req.Height)
	if err != nil {
		return schemas.CaptureResponse{}, err
	}
	// Real input already happened elsewhere; on a real surface every
	// instruction counts as applied.
	return schemas.CaptureResponse{Screenshot: shot, Applied: actions.Canonicalize(instrs)}, nil
}

// renderSandbox runs the persistent-canvas pipeline: load, apply, persist
// when something changed, then encode a disposable annotated copy.
func (e *Engine) renderSandbox(instrs []actions.Instruction, reset, marks bool, outW, outH int) (shot string, applied []string, err error) {
	w, h := e.cfg.Surface.Width, e.cfg.Surface.Height
	cv := e.store.LoadCanvas(w, h, reset)

	applied, dirty := e.store.Apply(cv, instrs, reset)
	if dirty {
		e.store.SaveCanvas(cv)
	}
	if applied == nil {
		applied = []string{}
	}

	frame := cv.Clone()
	if marks {
		overlay.DrawMarks(frame, instrs)
	}
	shot, err = encodeFrame(frame, outW, outH)
	if err != nil {
		return "", nil, err
	}
	return shot, applied, nil
}

// captureScreen grabs the real surface and annotates the grabbed copy.
func (e *Engine) captureScreen(instrs []actions.Instruction, marks bool, outW, outH int) (string, error) {
	if e.capturer == nil {
		return "", ErrNoCapturer
	}
	frame, err := e.capturer.Frame()
	if err != nil {
		return "", fmt.Errorf("engine: frame grab: %w", err)
	}
	if marks {
		overlay.DrawMarks(frame, instrs)
	}
	return encodeFrame(frame, outW, outH)
}

// encodeFrame optionally resizes the frame and returns it as base64 PNG.
// A zero or matching requested size keeps the native frame.
func encodeFrame(cv *raster.Canvas, outW, outH int) (string, error) {
	pix, w, h := cv.Pix, cv.W, cv.H
	if outW > 0 && outH > 0 && (outW != w || outH != h) {
		scaled := resize.Resize(uint(outW), uint(outH), cv.Image(), resize.Lanczos3)
		rgba, ok := scaled.(*image.RGBA)
		if !ok {
			rgba = image.NewRGBA(scaled.Bounds())
			draw.Draw(rgba, rgba.Bounds(), scaled, scaled.Bounds().Min, draw.Src)
		}
		pix, w, h = rgba.Pix, outW, outH
	}
	data, err := codec.EncodePNG(pix, w, h)
	if err != nil {
		return "", fmt.Errorf("engine: encode frame: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
