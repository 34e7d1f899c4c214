//go:build windows

// File: internal/input/driver_windows.go
package input

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Win32 SendInput constants.
const (
	inputMouse    = 0
	inputKeyboard = 1

	mouseEventfMove      = 0x0001
	mouseEventfLeftDown  = 0x0002
	mouseEventfLeftUp    = 0x0004
	mouseEventfRightDown = 0x0008
	mouseEventfRightUp   = 0x0010
	mouseEventfAbsolute  = 0x8000

	keyEventfKeyUp   = 0x0002
	keyEventfUnicode = 0x0004

	smCxScreen = 0
	smCyScreen = 1
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	shcore           = windows.NewLazySystemDLL("shcore.dll")
	procSendInput    = user32.NewProc("SendInput")
	procGetCursorPos = user32.NewProc("GetCursorPos")
	procGetMetrics   = user32.NewProc("GetSystemMetrics")
	procSetDPIAware  = shcore.NewProc("SetProcessDpiAwareness")
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type keybdInput struct {
	Vk          uint16
	Scan        uint16
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

// win32Input matches the Win64 INPUT layout: a 4-byte type tag, 4 bytes of
// padding, then a union sized for MOUSEINPUT (32 bytes).
type win32Input struct {
	Type uint32
	_    uint32
	u    [32]byte
}

func (i *win32Input) setMouse(mi mouseInput) {
	i.Type = inputMouse
	*(*mouseInput)(unsafe.Pointer(&i.u)) = mi
}

func (i *win32Input) setKeyboard(ki keybdInput) {
	i.Type = inputKeyboard
	*(*keybdInput)(unsafe.Pointer(&i.u)) = ki
}

// win32Driver issues events through SendInput.
type win32Driver struct {
	screenW int
	screenH int
}

// NewDriver returns the SendInput-backed driver. DPI awareness is set per
// process so GetSystemMetrics reports physical pixels.
func NewDriver() (Driver, error) {
	procSetDPIAware.Call(2) // PROCESS_PER_MONITOR_DPI_AWARE
	w, _, _ := procGetMetrics.Call(smCxScreen)
	h, _, _ := procGetMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("input: GetSystemMetrics reported zero screen size")
	}
	return &win32Driver{screenW: int(w), screenH: int(h)}, nil
}

func (d *win32Driver) ScreenSize() (int, int) { return d.screenW, d.screenH }

func (d *win32Driver) CursorPos() (int, int, error) {
	var pt struct{ X, Y int32 }
	r, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if r == 0 {
		return 0, 0, fmt.Errorf("input: GetCursorPos: %w", err)
	}
	return int(pt.X), int(pt.Y), nil
}

func (d *win32Driver) sendInputs(items []win32Input) error {
	if len(items) == 0 {
		return nil
	}
	sent, _, err := procSendInput.Call(
		uintptr(len(items)),
		uintptr(unsafe.Pointer(&items[0])),
		unsafe.Sizeof(items[0]),
	)
	if int(sent) != len(items) {
		return fmt.Errorf("input: SendInput accepted %d of %d events: %w", sent, len(items), err)
	}
	return nil
}

// toAbs65535 maps a pixel position onto the 0-65535 absolute coordinate
// space SendInput uses for MOUSEEVENTF_ABSOLUTE.
func (d *win32Driver) toAbs65535(x, y int) (int32, int32) {
	ax := x * 65535 / max(1, d.screenW-1)
	ay := y * 65535 / max(1, d.screenH-1)
	return int32(clamp(ax, 0, 65535)), int32(clamp(ay, 0, 65535))
}

func (d *win32Driver) MoveAbs(x, y int) error {
	ax, ay := d.toAbs65535(x, y)
	var in win32Input
	in.setMouse(mouseInput{Dx: ax, Dy: ay, Flags: mouseEventfMove | mouseEventfAbsolute})
	return d.sendInputs([]win32Input{in})
}

func (d *win32Driver) button(flags uint32) error {
	var in win32Input
	in.setMouse(mouseInput{Flags: flags})
	return d.sendInputs([]win32Input{in})
}

func (d *win32Driver) ButtonDown(b Button) error {
	if b == ButtonRight {
		return d.button(mouseEventfRightDown)
	}
	return d.button(mouseEventfLeftDown)
}

func (d *win32Driver) ButtonUp(b Button) error {
	if b == ButtonRight {
		return d.button(mouseEventfRightUp)
	}
	return d.button(mouseEventfLeftUp)
}

func (d *win32Driver) SendText(text string) error {
	var items []win32Input
	for _, ch := range text {
		if ch == '\r' {
			continue
		}
		if ch == '\n' {
			ch = '\r' // KEYEVENTF_UNICODE expects CR for Enter
		}
		// Runes beyond the BMP go out as UTF-16 surrogate pairs.
		for _, code := range utf16.Encode([]rune{ch}) {
			var down, up win32Input
			down.setKeyboard(keybdInput{Scan: code, Flags: keyEventfUnicode})
			up.setKeyboard(keybdInput{Scan: code, Flags: keyEventfUnicode | keyEventfKeyUp})
			items = append(items, down, up)
		}
	}
	return d.sendInputs(items)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
