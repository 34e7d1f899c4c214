//go:build !windows

// File: internal/input/driver_stub.go
package input

// NewDriver reports that physical input is unavailable. The engine keeps
// running; physically dispatched instructions are demoted per-instruction
// instead of failing the batch.
func NewDriver() (Driver, error) {
	return nil, ErrUnavailable
}
