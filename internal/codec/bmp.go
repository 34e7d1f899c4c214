// File: internal/codec/bmp.go
package codec

import "encoding/binary"

const (
	bmpHeaderSize     = 54 // 14-byte file header + 40-byte info header
	bmpInfoHeaderSize = 40
	bmpPxPerMeter     = 2835 // 72 DPI
)

func bmpStride(w, bytesPerPixel int) int {
	return (w*bytesPerPixel + 3) / 4 * 4
}

// DecodeBMP reads an uncompressed 24- or 32-bit single-plane bitmap into an
// RGBA buffer of exactly w×h. It returns nil on any deviation — wrong
// signature, short header, unexpected dimensions, truncated pixel data —
// rather than attempting partial recovery. BMP carries no alpha, so the
// result is fully opaque. A negative height field selects top-down row
// order.
func DecodeBMP(data []byte, w, h int) []byte {
	if w <= 0 || h <= 0 || len(data) < bmpHeaderSize {
		return nil
	}
	if data[0] != 'B' || data[1] != 'M' {
		return nil
	}
	off := int(binary.LittleEndian.Uint32(data[10:]))
	headerSize := int(binary.LittleEndian.Uint32(data[14:]))
	if headerSize < bmpInfoHeaderSize {
		return nil
	}
	bw := int(int32(binary.LittleEndian.Uint32(data[18:])))
	bh := int(int32(binary.LittleEndian.Uint32(data[22:])))
	planes := int(binary.LittleEndian.Uint16(data[26:]))
	bpp := int(binary.LittleEndian.Uint16(data[28:]))
	compression := int(binary.LittleEndian.Uint32(data[30:]))
	if planes != 1 || compression != 0 || (bpp != 24 && bpp != 32) {
		return nil
	}
	topDown := bh < 0
	ah := bh
	if topDown {
		ah = -bh
	}
	if bw != w || ah != h {
		return nil
	}
	bytesPP := bpp / 8
	stride := bmpStride(w, bytesPP)
	if off < 0 || off+stride*h > len(data) {
		return nil
	}

	out := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		sy := h - 1 - y
		if topDown {
			sy = y
		}
		row := data[off+sy*stride:]
		di := y * w * 4
		for x := 0; x < w; x++ {
			i := x * bytesPP
			out[di+x*4] = row[i+2]
			out[di+x*4+1] = row[i+1]
			out[di+x*4+2] = row[i]
			out[di+x*4+3] = 255
		}
	}
	return out
}

// EncodeBMP writes an RGBA buffer as a 24-bit bottom-up bitmap with
// blue-green-red channel order and rows padded to a 4-byte boundary.
// The alpha channel is discarded.
func EncodeBMP(pix []byte, w, h int) []byte {
	stride := bmpStride(w, 3)
	out := make([]byte, 0, bmpHeaderSize+stride*h)
	out = appendBMPHeaders(out, w, h, stride)
	pad := make([]byte, stride-w*3)
	for y := h - 1; y >= 0; y-- {
		row := pix[y*w*4 : (y+1)*w*4]
		for x := 0; x < w; x++ {
			i := x * 4
			out = append(out, row[i+2], row[i+1], row[i])
		}
		out = append(out, pad...)
	}
	return out
}

// BlackBMP builds an all-black w×h bitmap image, the reset baseline for
// the sandbox canvas.
func BlackBMP(w, h int) []byte {
	stride := bmpStride(w, 3)
	out := appendBMPHeaders(make([]byte, 0, bmpHeaderSize+stride*h), w, h, stride)
	return append(out, make([]byte, stride*h)...)
}

func appendBMPHeaders(out []byte, w, h, stride int) []byte {
	sizeImage := stride * h
	var fh [14]byte
	fh[0] = 'B'
	fh[1] = 'M'
	binary.LittleEndian.PutUint32(fh[2:], uint32(bmpHeaderSize+sizeImage))
	binary.LittleEndian.PutUint32(fh[10:], bmpHeaderSize)
	out = append(out, fh[:]...)

	var ih [40]byte
	binary.LittleEndian.PutUint32(ih[0:], bmpInfoHeaderSize)
	binary.LittleEndian.PutUint32(ih[4:], uint32(w))
	binary.LittleEndian.PutUint32(ih[8:], uint32(h)) // positive: bottom-up
	binary.LittleEndian.PutUint16(ih[12:], 1)        // planes
	binary.LittleEndian.PutUint16(ih[14:], 24)       // bits per pixel
	binary.LittleEndian.PutUint32(ih[20:], uint32(sizeImage))
	binary.LittleEndian.PutUint32(ih[24:], bmpPxPerMeter)
	binary.LittleEndian.PutUint32(ih[28:], bmpPxPerMeter)
	return append(out, ih[:]...)
}
