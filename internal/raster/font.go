// File: internal/raster/font.go
package raster

// font5x7 is a fixed 5x7 dot-matrix glyph table. Each glyph is seven rows
// of five bits, most significant bit leftmost. Lowercase input is folded to
// uppercase before lookup; anything not in the table renders as a filled
// placeholder box.
var font5x7 = map[rune][7]byte{
	' ': {0, 0, 0, 0, 0, 0, 0},
	'0': {0b01110, 0b10001, 0b10011, 0b10101, 0b11001, 0b10001, 0b01110},
	'1': {0b00100, 0b01100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'2': {0b01110, 0b10001, 0b00001, 0b00110, 0b01000, 0b10000, 0b11111},
	'3': {0b01110, 0b10001, 0b00001, 0b00110, 0b00001, 0b10001, 0b01110},
	'4': {0b00010, 0b00110, 0b01010, 0b10010, 0b11111, 0b00010, 0b00010},
	'5': {0b11111, 0b10000, 0b11110, 0b00001, 0b00001, 0b10001, 0b01110},
	'6': {0b00110, 0b01000, 0b10000, 0b11110, 0b10001, 0b10001, 0b01110},
	'7': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b01000, 0b01000},
	'8': {0b01110, 0b10001, 0b10001, 0b01110, 0b10001, 0b10001, 0b01110},
	'9': {0b01110, 0b10001, 0b10001, 0b01111, 0b00001, 0b00010, 0b01100},
	'A': {0b01110, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'B': {0b11110, 0b10001, 0b10001, 0b11110, 0b10001, 0b10001, 0b11110},
	'C': {0b01110, 0b10001, 0b10000, 0b10000, 0b10000, 0b10001, 0b01110},
	'D': {0b11110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b11110},
	'E': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b11111},
	'F': {0b11111, 0b10000, 0b10000, 0b11110, 0b10000, 0b10000, 0b10000},
	'G': {0b01110, 0b10001, 0b10000, 0b10111, 0b10001, 0b10001, 0b01110},
	'H': {0b10001, 0b10001, 0b10001, 0b11111, 0b10001, 0b10001, 0b10001},
	'I': {0b01110, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b01110},
	'J': {0b00111, 0b00010, 0b00010, 0b00010, 0b10010, 0b10010, 0b01100},
	'K': {0b10001, 0b10010, 0b10100, 0b11000, 0b10100, 0b10010, 0b10001},
	'L': {0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b10000, 0b11111},
	'M': {0b10001, 0b11011, 0b10101, 0b10001, 0b10001, 0b10001, 0b10001},
	'N': {0b10001, 0b11001, 0b10101, 0b10011, 0b10001, 0b10001, 0b10001},
	'O': {0b01110, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'P': {0b11110, 0b10001, 0b10001, 0b11110, 0b10000, 0b10000, 0b10000},
	'Q': {0b01110, 0b10001, 0b10001, 0b10001, 0b10101, 0b10010, 0b01101},
	'R': {0b11110, 0b10001, 0b10001, 0b11110, 0b10100, 0b10010, 0b10001},
	'S': {0b01111, 0b10000, 0b10000, 0b01110, 0b00001, 0b00001, 0b11110},
	'T': {0b11111, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00100},
	'U': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01110},
	'V': {0b10001, 0b10001, 0b10001, 0b10001, 0b10001, 0b01010, 0b00100},
	'W': {0b10001, 0b10001, 0b10001, 0b10001, 0b10101, 0b11011, 0b10001},
	'X': {0b10001, 0b10001, 0b01010, 0b00100, 0b01010, 0b10001, 0b10001},
	'Y': {0b10001, 0b10001, 0b01010, 0b00100, 0b00100, 0b00100, 0b00100},
	'Z': {0b11111, 0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b11111},
	'.': {0b00000, 0b00000, 0b00000, 0b00000, 0b00000, 0b00100, 0b00100},
	',': {0b00000, 0b00000, 0b00000, 0b00000, 0b00100, 0b00100, 0b01000},
	'!': {0b00100, 0b00100, 0b00100, 0b00100, 0b00100, 0b00000, 0b00100},
	'?': {0b01110, 0b10001, 0b00001, 0b00010, 0b00100, 0b00000, 0b00100},
	'-': {0b00000, 0b00000, 0b00000, 0b11111, 0b00000, 0b00000, 0b00000},
	':': {0b00000, 0b00100, 0b00100, 0b00000, 0b00100, 0b00100, 0b00000},
	'/': {0b00001, 0b00010, 0b00100, 0b01000, 0b10000, 0b00000, 0b00000},
}

const (
	glyphW = 5
	glyphH = 7
	// glyph advance and line height in unscaled cells
	glyphAdvance = 6
	lineAdvance  = 8
)

// DrawText renders text opaquely at (x, y) with an integer scale factor.
// Newlines start a fresh line below the origin column.
func (c *Canvas) DrawText(x, y int, text string, col Color, scale int) {
	px, py := x, y
	for _, ch := range text {
		if ch == '\n' {
			py += lineAdvance * scale
			px = x
			continue
		}
		pat, ok := font5x7[upper(ch)]
		if !ok {
			c.FillRectOpaque(px, py, glyphW*scale, glyphH*scale, col)
			px += glyphAdvance * scale
			continue
		}
		c.drawGlyph(px, py, pat, col, scale)
		px += glyphAdvance * scale
	}
}

func (c *Canvas) drawGlyph(x, y int, pat [7]byte, col Color, scale int) {
	for row := 0; row < glyphH; row++ {
		bits := pat[row]
		for cell := 0; cell < glyphW; cell++ {
			if bits&(1<<(glyphW-1-cell)) == 0 {
				continue
			}
			for sy := 0; sy < scale; sy++ {
				for sx := 0; sx < scale; sx++ {
					c.PutOpaque(x+cell*scale+sx, y+row*scale+sy, col)
				}
			}
		}
	}
}

// DrawDigit renders one digit centered on (cx, cy) with an 8-neighbor
// outline pass before the fill pass, so numbers stay legible on arbitrary
// backgrounds.
func (c *Canvas) DrawDigit(cx, cy, d int, fill, outline Color, scale int) {
	if d < 0 || d > 9 {
		return
	}
	pat := font5x7[rune('0'+d)]
	gw := glyphW * scale
	gh := glyphH * scale
	ox := cx - gw/2
	oy := cy - gh/2
	for ddy := -1; ddy <= 1; ddy++ {
		for ddx := -1; ddx <= 1; ddx++ {
			if ddx == 0 && ddy == 0 {
				continue
			}
			c.drawGlyph(ox+ddx*2, oy+ddy*2, pat, outline, scale)
		}
	}
	c.drawGlyph(ox, oy, pat, fill, scale)
}

// DrawNumber renders a decimal number centered on (cx, cy) as a run of
// outlined digits with one scaled cell of spacing.
func (c *Canvas) DrawNumber(cx, cy, n int, fill, outline Color, scale int) {
	digits := []byte{}
	if n == 0 {
		digits = []byte{0}
	} else {
		if n < 0 {
			n = -n
		}
		for v := n; v > 0; v /= 10 {
			digits = append([]byte{byte(v % 10)}, digits...)
		}
	}
	gw := glyphW * scale
	gap := scale
	tw := len(digits)*gw + (len(digits)-1)*gap
	start := cx - tw/2 + gw/2
	for i, d := range digits {
		c.DrawDigit(start+i*(gw+gap), cy, int(d), fill, outline, scale)
	}
}

func upper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - 'a' + 'A'
	}
	return r
}
