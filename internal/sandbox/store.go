// File: internal/sandbox/store.go

// Package sandbox owns the persistent simulated desktop: a file-backed
// canvas bitmap plus a small cursor-state record, both replaced atomically
// every turn that mutates them. The sandbox stands in for the real desktop
// so the rest of the pipeline cannot tell the difference.
package sandbox

import (
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/wgabrys88/franz/internal/codec"
	"github.com/wgabrys88/franz/internal/config"
	"github.com/wgabrys88/franz/internal/raster"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// State is the cursor-position record persisted beside the canvas. Both
// fields are nil until an instruction implies a cursor position.
type State struct {
	LastX *int `json:"last_x"`
	LastY *int `json:"last_y"`
}

// Known reports whether a cursor position has been established.
func (s State) Known() bool { return s.LastX != nil && s.LastY != nil }

// Set records a pixel-space cursor position.
func (s *State) Set(x, y int) {
	s.LastX = &x
	s.LastY = &y
}

// Store persists one sandbox session: a canvas bitmap and its state
// record. It is a single-writer resource; the engine loads, mutates
// privately, and persists atomically within a turn.
type Store struct {
	canvasPath string
	statePath  string
	log        *zap.Logger
}

// NewStore builds a store over the configured file pair.
func NewStore(cfg config.SandboxConfig, log *zap.Logger) *Store {
	return &Store{
		canvasPath: filepath.Join(cfg.Dir, cfg.CanvasFile),
		statePath:  filepath.Join(cfg.Dir, cfg.StateFile),
		log:        log.Named("sandbox"),
	}
}

// LoadCanvas returns the persisted canvas at the given size. On reset the
// file is first overwritten with an opaque black bitmap and the state
// record cleared. A missing, unreadable, or size-mismatched file is
// treated as absent and recreated black; corruption is recoverable,
// never fatal.
func (s *Store) LoadCanvas(w, h int, reset bool) *raster.Canvas {
	if reset {
		s.writeAtomic(s.canvasPath, codec.BlackBMP(w, h))
		s.SaveState(State{})
	} else if _, err := os.Stat(s.canvasPath); err != nil {
		s.writeAtomic(s.canvasPath, codec.BlackBMP(w, h))
	}

	data, err := os.ReadFile(s.canvasPath)
	if err != nil {
		s.log.Warn("canvas unreadable, recreating black", zap.Error(err))
		s.writeAtomic(s.canvasPath, codec.BlackBMP(w, h))
		return raster.New(w, h)
	}
	pix := codec.DecodeBMP(data, w, h)
	if pix == nil {
		s.log.Warn("canvas rejected by decoder, recreating black",
			zap.String("path", s.canvasPath), zap.Int("bytes", len(data)))
		s.writeAtomic(s.canvasPath, codec.BlackBMP(w, h))
		return raster.New(w, h)
	}
	return raster.FromPix(pix, w, h)
}

// SaveCanvas persists the canvas with atomic replace.
func (s *Store) SaveCanvas(cv *raster.Canvas) {
	s.writeAtomic(s.canvasPath, codec.EncodeBMP(cv.Pix, cv.W, cv.H))
}

// LoadState returns the persisted cursor record; reset or any read/decode
// problem yields the empty state.
func (s *Store) LoadState(reset bool) State {
	if reset {
		return State{}
	}
	data, err := os.ReadFile(s.statePath)
	if err != nil {
		return State{}
	}
	var st State
	if err := json.Unmarshal(data, &st); err != nil {
		s.log.Warn("state record rejected, starting empty", zap.Error(err))
		return State{}
	}
	return st
}

// SaveState persists the cursor record with atomic replace.
func (s *Store) SaveState(st State) {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return
	}
	s.writeAtomic(s.statePath, data)
}

// writeAtomic writes to a temporary path and renames it over the target.
// A failed write is cleaned up best-effort and otherwise ignored; the
// current turn still proceeds on the in-memory result.
func (s *Store) writeAtomic(path string, data []byte) {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.log.Warn("atomic write failed", zap.String("path", path), zap.Error(err))
		os.Remove(tmp)
		return
	}
	if err := os.Rename(tmp, path); err != nil {
		s.log.Warn("atomic replace failed", zap.String("path", path), zap.Error(err))
		os.Remove(tmp)
	}
}
