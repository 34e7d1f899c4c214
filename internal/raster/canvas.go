// File: internal/raster/canvas.go
package raster

import (
	"image"
	"math"
	"sort"
)

// Color is a straight (non-premultiplied) RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA is a small constructor helper for color literals.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

var (
	Black = Color{0, 0, 0, 255}
	White = Color{255, 255, 255, 255}
)

// Point is an integer pixel coordinate.
type Point struct {
	X, Y int
}

// Canvas owns an RGBA pixel buffer, row-major, top row first.
//
// Every drawing operation silently clips at the buffer edges. Marker and
// trail geometry routinely extends past the frame, so out-of-range
// coordinates are a no-op, never an error.
type Canvas struct {
	Pix []byte
	W   int
	H   int
}

// New returns an opaque black canvas of the given size.
func New(w, h int) *Canvas {
	pix := make([]byte, w*h*4)
	for i := 3; i < len(pix); i += 4 {
		pix[i] = 255
	}
	return &Canvas{Pix: pix, W: w, H: h}
}

// FromPix wraps an existing RGBA buffer. The buffer is not copied.
func FromPix(pix []byte, w, h int) *Canvas {
	return &Canvas{Pix: pix, W: w, H: h}
}

// Clone returns a deep copy. The overlay draws on a clone so the
// persistent canvas is never touched by ephemeral marks.
func (c *Canvas) Clone() *Canvas {
	pix := make([]byte, len(c.Pix))
	copy(pix, c.Pix)
	return &Canvas{Pix: pix, W: c.W, H: c.H}
}

// Image wraps the buffer as an image.RGBA without copying.
func (c *Canvas) Image() *image.RGBA {
	return &image.RGBA{Pix: c.Pix, Stride: c.W * 4, Rect: image.Rect(0, 0, c.W, c.H)}
}

// Put writes one pixel with alpha blending: dst = (src*a + dst*(255-a))/255
// per channel. Full source opacity short-circuits to a direct write.
func (c *Canvas) Put(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	i := (y*c.W + x) * 4
	sa := int(col.A)
	if sa >= 255 {
		c.Pix[i] = col.R
		c.Pix[i+1] = col.G
		c.Pix[i+2] = col.B
		c.Pix[i+3] = 255
		return
	}
	da := 255 - sa
	c.Pix[i] = uint8((int(col.R)*sa + int(c.Pix[i])*da) / 255)
	c.Pix[i+1] = uint8((int(col.G)*sa + int(c.Pix[i+1])*da) / 255)
	c.Pix[i+2] = uint8((int(col.B)*sa + int(c.Pix[i+2])*da) / 255)
	c.Pix[i+3] = 255
}

// PutOpaque overwrites one pixel ignoring the source alpha. Persistent
// sandbox drawing is always fully opaque and takes this path.
func (c *Canvas) PutOpaque(x, y int, col Color) {
	if x < 0 || y < 0 || x >= c.W || y >= c.H {
		return
	}
	i := (y*c.W + x) * 4
	c.Pix[i] = col.R
	c.Pix[i+1] = col.G
	c.Pix[i+2] = col.B
	c.Pix[i+3] = 255
}

// putThick stamps a t×t square of blended pixels centered on (x, y).
func (c *Canvas) putThick(x, y int, col Color, t int) {
	half := t / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			c.Put(x+dx, y+dy, col)
		}
	}
}

func (c *Canvas) putThickOpaque(x, y int, col Color, t int) {
	half := t / 2
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			c.PutOpaque(x+dx, y+dy, col)
		}
	}
}

// Line draws a blended thick line using integer Bresenham stepping.
func (c *Canvas) Line(x1, y1, x2, y2 int, col Color, t int) {
	c.bresenham(x1, y1, x2, y2, func(x, y int) { c.putThick(x, y, col, t) })
}

// LineOpaque is Line with direct pixel overwrite.
func (c *Canvas) LineOpaque(x1, y1, x2, y2 int, col Color, t int) {
	c.bresenham(x1, y1, x2, y2, func(x, y int) { c.putThickOpaque(x, y, col, t) })
}

func (c *Canvas) bresenham(x1, y1, x2, y2 int, stamp func(x, y int)) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx := 1
	if x1 >= x2 {
		sx = -1
	}
	sy := 1
	if y1 >= y2 {
		sy = -1
	}
	err := dx - dy
	x, y := x1, y1
	for {
		stamp(x, y)
		if x == x2 && y == y2 {
			return
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// CircleOpaque draws a filled circle by squared-distance test.
func (c *Canvas) CircleOpaque(cx, cy, r int, col Color) {
	r2 := r * r
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			if ox*ox+oy*oy <= r2 {
				c.PutOpaque(cx+ox, cy+oy, col)
			}
		}
	}
}

// Circle draws a blended circle, either filled or as a ring of the given
// thickness. The ring is a squared-distance annulus with (r-thickness)^2
// as the inner bound, clamped at zero.
func (c *Canvas) Circle(cx, cy, r int, col Color, filled bool, thickness int) {
	r2o := r * r
	ri := r - thickness
	if ri < 0 {
		ri = 0
	}
	r2i := ri * ri
	for oy := -r; oy <= r; oy++ {
		for ox := -r; ox <= r; ox++ {
			d2 := ox*ox + oy*oy
			if filled {
				if d2 <= r2o {
					c.Put(cx+ox, cy+oy, col)
				}
			} else if r2i <= d2 && d2 <= r2o {
				c.Put(cx+ox, cy+oy, col)
			}
		}
	}
}

// FillRectOpaque fills a w×h rectangle with direct writes.
func (c *Canvas) FillRectOpaque(x, y, w, h int, col Color) {
	for yy := y; yy < y+h; yy++ {
		for xx := x; xx < x+w; xx++ {
			c.PutOpaque(xx, yy, col)
		}
	}
}

// Rect draws a blended rectangle outline from four thick lines.
func (c *Canvas) Rect(x, y, w, h int, col Color, t int) {
	c.Line(x, y, x+w, y, col, t)
	c.Line(x+w, y, x+w, y+h, col, t)
	c.Line(x+w, y+h, x, y+h, col, t)
	c.Line(x, y+h, x, y, col, t)
}

// FillPolygon fills a polygon with the classic scanline algorithm: for each
// scanline, collect the edge-crossing x intersections, sort them, and fill
// alternating spans.
func (c *Canvas) FillPolygon(pts []Point, col Color) {
	if len(pts) < 3 {
		return
	}
	lo, hi := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < lo {
			lo = p.Y
		}
		if p.Y > hi {
			hi = p.Y
		}
	}
	if lo < 0 {
		lo = 0
	}
	if hi > c.H-1 {
		hi = c.H - 1
	}
	n := len(pts)
	for y := lo; y <= hi; y++ {
		var nodes []int
		j := n - 1
		for i := 0; i < n; i++ {
			yi, yj := pts[i].Y, pts[j].Y
			if (yi < y && y <= yj) || (yj < y && y <= yi) {
				x := float64(pts[i].X) + float64(y-yi)/float64(yj-yi)*float64(pts[j].X-pts[i].X)
				nodes = append(nodes, int(x))
			}
			j = i
		}
		sort.Ints(nodes)
		for k := 0; k+1 < len(nodes); k += 2 {
			x0 := nodes[k]
			x1 := nodes[k+1]
			if x0 < 0 {
				x0 = 0
			}
			if x1 > c.W-1 {
				x1 = c.W - 1
			}
			for x := x0; x <= x1; x++ {
				c.Put(x, y, col)
			}
		}
	}
}

const (
	arrowHeadAngle = 25.0 * math.Pi / 180.0
	arrowHeadLen   = 28.0
)

// Arrow draws a thick line ending in a filled triangular head. The two back
// vertices sit 28 units behind the tip, at 25 degrees either side of the
// line direction.
func (c *Canvas) Arrow(x1, y1, x2, y2 int, col Color, t int) {
	c.Line(x1, y1, x2, y2, col, t)
	ang := math.Atan2(float64(y2-y1), float64(x2-x1))
	lx := int(float64(x2) - arrowHeadLen*math.Cos(ang-arrowHeadAngle))
	ly := int(float64(y2) - arrowHeadLen*math.Sin(ang-arrowHeadAngle))
	rx := int(float64(x2) - arrowHeadLen*math.Cos(ang+arrowHeadAngle))
	ry := int(float64(y2) - arrowHeadLen*math.Sin(ang+arrowHeadAngle))
	c.FillPolygon([]Point{{x2, y2}, {lx, ly}, {rx, ry}}, col)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
