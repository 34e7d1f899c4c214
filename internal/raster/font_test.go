// File: internal/raster/font_test.go
package raster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countNonBlack(c *Canvas) int {
	n := 0
	for i := 0; i < len(c.Pix); i += 4 {
		if c.Pix[i] != 0 || c.Pix[i+1] != 0 || c.Pix[i+2] != 0 {
			n++
		}
	}
	return n
}

func TestDrawTextRendersGlyphs(t *testing.T) {
	c := New(100, 20)
	c.DrawText(2, 2, "HI", White, 1)

	lit := countNonBlack(c)
	require.Positive(t, lit)

	// 'H' column strokes: leftmost and rightmost cells of the top row.
	assert.Equal(t, White, pixelAt(c, 2, 2))
	assert.Equal(t, White, pixelAt(c, 2+4, 2))
	// The gap cell between glyphs stays dark.
	assert.Equal(t, Black, pixelAt(c, 2+5, 2))
}

func TestDrawTextFoldsLowercase(t *testing.T) {
	a := New(40, 10)
	b := New(40, 10)
	a.DrawText(0, 0, "go", White, 1)
	b.DrawText(0, 0, "GO", White, 1)
	assert.Equal(t, a.Pix, b.Pix)
}

func TestDrawTextUnknownRuneIsBox(t *testing.T) {
	c := New(20, 10)
	c.DrawText(1, 1, "é", White, 1)

	// A filled 5x7 placeholder box.
	for y := 1; y < 1+7; y++ {
		for x := 1; x < 1+5; x++ {
			assert.Equal(t, White, pixelAt(c, x, y))
		}
	}
}

func TestDrawTextNewlineAndAdvance(t *testing.T) {
	c := New(40, 40)
	c.DrawText(0, 0, "I\nI", White, 2)

	// Second line starts 8 cells (scaled) below the first.
	first := countRegion(c, 0, 0, 12, 14)
	second := countRegion(c, 0, 16, 12, 14)
	assert.Positive(t, first)
	assert.Equal(t, first, second)
}

func countRegion(c *Canvas, x, y, w, h int) int {
	n := 0
	for yy := y; yy < y+h && yy < c.H; yy++ {
		for xx := x; xx < x+w && xx < c.W; xx++ {
			p := pixelAt(c, xx, yy)
			if p.R != 0 || p.G != 0 || p.B != 0 {
				n++
			}
		}
	}
	return n
}

func TestDrawTextScaling(t *testing.T) {
	small := New(60, 20)
	big := New(60, 20)
	small.DrawText(0, 0, "A", White, 1)
	big.DrawText(0, 0, "A", White, 2)

	// Doubling the scale quadruples the lit area.
	assert.Equal(t, 4*countNonBlack(small), countNonBlack(big))
}

func TestDrawDigitOutline(t *testing.T) {
	c := New(60, 60)
	red := Color{255, 0, 0, 255}
	c.DrawDigit(30, 30, 1, White, red, 2)

	require.Positive(t, countNonBlack(c))

	// Fill pass lands on top of the outline: the glyph center is white.
	assert.Equal(t, White, pixelAt(c, 30, 30))

	// Some outline color must survive around the fill.
	foundRed := false
	for i := 0; i < len(c.Pix); i += 4 {
		if c.Pix[i] == 255 && c.Pix[i+1] == 0 && c.Pix[i+2] == 0 {
			foundRed = true
			break
		}
	}
	assert.True(t, foundRed)
}

func TestDrawDigitRejectsOutOfRange(t *testing.T) {
	c := New(20, 20)
	c.DrawDigit(10, 10, 10, White, White, 1)
	c.DrawDigit(10, 10, -1, White, White, 1)
	assert.Zero(t, countNonBlack(c))
}

func TestDrawNumberMultipleDigits(t *testing.T) {
	one := New(200, 60)
	twelve := New(200, 60)
	one.DrawNumber(100, 30, 1, White, White, 2)
	twelve.DrawNumber(100, 30, 12, White, White, 2)

	// More digits, more lit pixels, still centered inside the frame.
	assert.Greater(t, countNonBlack(twelve), countNonBlack(one))
}

func TestDrawNumberZero(t *testing.T) {
	c := New(60, 60)
	c.DrawNumber(30, 30, 0, White, White, 2)
	assert.Positive(t, countNonBlack(c))
}
