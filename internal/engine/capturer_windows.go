//go:build windows

// File: internal/engine/capturer_windows.go
package engine

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/wgabrys88/franz/internal/raster"
)

const (
	smCxScreen = 0
	smCyScreen = 1

	srcCopy    = 0x00CC0020
	captureBlt = 0x40000000

	biRGB         = 0
	dibRGBColors  = 0
	bitmapInfoLen = 40
)

var (
	user32           = windows.NewLazySystemDLL("user32.dll")
	gdi32            = windows.NewLazySystemDLL("gdi32.dll")
	procGetDC        = user32.NewProc("GetDC")
	procReleaseDC    = user32.NewProc("ReleaseDC")
	procGetMetrics   = user32.NewProc("GetSystemMetrics")
	procCreateCompDC = gdi32.NewProc("CreateCompatibleDC")
	procDeleteDC     = gdi32.NewProc("DeleteDC")
	procCreateDIB    = gdi32.NewProc("CreateDIBSection")
	procSelectObject = gdi32.NewProc("SelectObject")
	procDeleteObject = gdi32.NewProc("DeleteObject")
	procBitBlt       = gdi32.NewProc("BitBlt")
	procGdiFlush     = gdi32.NewProc("GdiFlush")
)

type bitmapInfoHeader struct {
	Size          uint32
	Width         int32
	Height        int32
	Planes        uint16
	BitCount      uint16
	Compression   uint32
	SizeImage     uint32
	XPelsPerMeter int32
	YPelsPerMeter int32
	ClrUsed       uint32
	ClrImportant  uint32
}

// gdiCapturer grabs the primary display through a 32-bit top-down DIB
// section. CAPTUREBLT is set so layered windows end up in the frame.
type gdiCapturer struct{}

// NewCapturer returns the GDI screen capturer.
func NewCapturer() (Capturer, error) {
	return &gdiCapturer{}, nil
}

func (g *gdiCapturer) Frame() (*raster.Canvas, error) {
	w, _, _ := procGetMetrics.Call(smCxScreen)
	h, _, _ := procGetMetrics.Call(smCyScreen)
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("engine: GetSystemMetrics reported zero screen size")
	}
	width, height := int(w), int(h)

	screenDC, _, _ := procGetDC.Call(0)
	if screenDC == 0 {
		return nil, fmt.Errorf("engine: GetDC failed")
	}
	defer procReleaseDC.Call(0, screenDC)

	memDC, _, _ := procCreateCompDC.Call(screenDC)
	if memDC == 0 {
		return nil, fmt.Errorf("engine: CreateCompatibleDC failed")
	}
	defer procDeleteDC.Call(memDC)

	hdr := bitmapInfoHeader{
		Size:        bitmapInfoLen,
		Width:       int32(width),
		Height:      -int32(height), // negative: top-down rows
		Planes:      1,
		BitCount:    32,
		Compression: biRGB,
	}
	var bits unsafe.Pointer
	bitmap, _, _ := procCreateDIB.Call(
		memDC,
		uintptr(unsafe.Pointer(&hdr)),
		dibRGBColors,
		uintptr(unsafe.Pointer(&bits)),
		0, 0,
	)
	if bitmap == 0 || bits == nil {
		return nil, fmt.Errorf("engine: CreateDIBSection failed")
	}
	defer procDeleteObject.Call(bitmap)

	prev, _, _ := procSelectObject.Call(memDC, bitmap)
	if prev == 0 {
		return nil, fmt.Errorf("engine: SelectObject failed")
	}
	defer procSelectObject.Call(memDC, prev)

	ok, _, err := procBitBlt.Call(
		memDC, 0, 0, uintptr(width), uintptr(height),
		screenDC, 0, 0,
		srcCopy|captureBlt,
	)
	if ok == 0 {
		return nil, fmt.Errorf("engine: BitBlt: %w", err)
	}
	procGdiFlush.Call()

	// BGRA in the DIB, RGBA in the canvas.
	src := unsafe.Slice((*byte)(bits), width*height*4)
	cv := raster.New(width, height)
	for i := 0; i < len(src); i += 4 {
		cv.Pix[i+0] = src[i+2]
		cv.Pix[i+1] = src[i+1]
		cv.Pix[i+2] = src[i+0]
		cv.Pix[i+3] = 255
	}
	return cv, nil
}
