// File: internal/engine/engine.go

// Package engine ties the pipeline together: raw model text in, a
// structured turn result out. It owns the gating decisions (master execute
// switch, per-tool switches, physical vs. simulated dispatch) and the
// reconciliation between what was executed and what the sandbox actually
// applied.
package engine

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/wgabrys88/franz/api/schemas"
	"github.com/wgabrys88/franz/internal/actions"
	"github.com/wgabrys88/franz/internal/config"
	"github.com/wgabrys88/franz/internal/input"
	"github.com/wgabrys88/franz/internal/sandbox"
)

// ErrNoCapturer is returned when a real-surface capture is requested on a
// host without a capture backend.
var ErrNoCapturer = errors.New("engine: no screen capturer available on this platform")

// Engine executes model turns in one of two modes: physical (real OS
// input plus a real frame grab) or simulated (persistent sandbox canvas).
// Both dependencies that touch the host are optional; without them the
// corresponding mode degrades per instruction instead of failing the turn.
type Engine struct {
	cfg      *config.Config
	log      *zap.Logger
	store    *sandbox.Store
	injector *input.Injector
	capturer Capturer
}

// New creates an Engine. The injector and capturer may be nil on hosts
// without an input or capture backend; the sandbox path works everywhere.
func New(cfg *config.Config, logger *zap.Logger, store *sandbox.Store, inj *input.Injector, capt Capturer) *Engine {
	return &Engine{
		cfg:      cfg,
		log:      logger.With(zap.String("component", "engine")),
		store:    store,
		injector: inj,
		capturer: capt,
	}
}

// ExecuteTurn processes one model turn. Every extracted line ends up in
// exactly one of Executed or Noted: unparseable lines are noted verbatim,
// recognized-but-invalid lines are noted in zero-filled canonical form,
// and everything that was recognized but not performed (informational
// kinds, gated, dispatch fault, demoted by the sandbox) is noted in
// canonical form. A fault on one instruction never aborts the batch.
func (e *Engine) ExecuteTurn(ctx context.Context, req schemas.TurnRequest) (schemas.TurnResult, error) {
	// The sandbox never coexists with real input in one turn.
	physical := req.Physical && !req.Sandbox

	res := schemas.TurnResult{Executed: []string{}, Noted: []string{}}
	var performed []actions.Instruction

	for _, line := range actions.ExtractLines(req.Raw) {
		instr, valid, known := actions.Recognize(line)
		if !known {
			res.Noted = append(res.Noted, line)
			continue
		}
		canon := instr.Canonical()
		if !valid {
			// Known verb, unusable fields. The zero-filled canonical form
			// shows the model what was understood.
			res.Noted = append(res.Noted, canon)
			continue
		}

		switch instr.(type) {
		case actions.Screenshot:
			res.WantsScreenshot = true
			res.Noted = append(res.Noted, canon)
			continue
		case actions.Focus:
			res.Noted = append(res.Noted, canon)
			continue
		}

		if !req.Execute || !toolAllowed(req.Tools, instr.Name()) {
			res.Noted = append(res.Noted, canon)
			continue
		}

		if physical {
			if err := e.dispatch(ctx, instr); err != nil {
				e.log.Warn("physical dispatch failed, noting instruction",
					zap.String("instruction", canon), zap.Error(err))
				res.Noted = append(res.Noted, canon)
				continue
			}
		}
		performed = append(performed, instr)
		res.Executed = append(res.Executed, canon)
	}

	if req.Sandbox {
		shot, applied, err := e.renderSandbox(performed, req.SandboxReset, req.Marks, req.Width, req.Height)
		if err != nil {
			return res, err
		}
		res.Executed, res.Noted = reconcile(res.Executed, res.Noted, applied)
		res.Screenshot = shot
		return res, nil
	}

	// The agent loop feeds the current frame into its next request, so
	// every turn carries one; screenshot() only raises WantsScreenshot.
	shot, err := e.captureScreen(performed, req.Marks, req.Width, req.Height)
	if err != nil {
		// A failed grab degrades the turn, it does not abort it.
		e.log.Warn("screen capture failed", zap.Error(err))
	} else {
		res.Screenshot = shot
	}
	return res, nil
}

// dispatch performs one instruction as real OS input.
func (e *Engine) dispatch(ctx context.Context, instr actions.Instruction) error {
	if e.injector == nil {
		return input.ErrUnavailable
	}
	return e.injector.Dispatch(ctx, instr)
}

// toolAllowed applies the per-tool switches. A verb is allowed unless its
// entry is explicitly false; a missing entry (or a missing map) allows.
func toolAllowed(tools map[string]bool, name string) bool {
	allowed, ok := tools[name]
	if !ok {
		return true
	}
	return allowed
}

// reconcile trims executed down to the subsequence the sandbox actually
// applied, preserving order, and demotes the rest to noted. Applied is
// always a subsequence of executed, so a single forward scan suffices.
func reconcile(executed, noted, applied []string) (kept, allNoted []string) {
	kept = make([]string, 0, len(applied))
	allNoted = noted
	j := 0
	for _, canon := range executed {
		if j < len(applied) && applied[j] == canon {
			kept = append(kept, canon)
			j++
			continue
		}
		allNoted = append(allNoted, canon)
	}
	return kept, allNoted
}
