//go:build !windows

// File: internal/engine/capturer_stub.go
package engine

// NewCapturer reports that no screen capture backend exists on this
// platform. The sandbox pipeline is the supported mode here.
func NewCapturer() (Capturer, error) {
	return nil, ErrNoCapturer
}
