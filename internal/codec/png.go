// File: internal/codec/png.go
package codec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"hash/crc32"
)

var pngSignature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

// EncodePNG produces a minimal valid PNG from a raw RGBA buffer: 8-bit
// depth, color type 6, filter type "none" on every scanline, a single IDAT
// chunk holding the deflate stream, no ancillary chunks, no interlacing.
func EncodePNG(pix []byte, w, h int) ([]byte, error) {
	if w <= 0 || h <= 0 || len(pix) < w*h*4 {
		return nil, fmt.Errorf("codec: png buffer %d does not cover %dx%d", len(pix), w, h)
	}
	stride := w * 4

	// One filter byte per scanline, then the raw pixels.
	raw := make([]byte, 0, h*(stride+1))
	for y := 0; y < h; y++ {
		raw = append(raw, 0)
		raw = append(raw, pix[y*stride:(y+1)*stride]...)
	}

	var idat bytes.Buffer
	zw := zlib.NewWriter(&idat)
	if _, err := zw.Write(raw); err != nil {
		return nil, fmt.Errorf("codec: deflate scanlines: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("codec: close deflate stream: %w", err)
	}

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:], uint32(w))
	binary.BigEndian.PutUint32(ihdr[4:], uint32(h))
	ihdr[8] = 8  // bit depth
	ihdr[9] = 6  // color type: truecolor with alpha
	ihdr[10] = 0 // compression
	ihdr[11] = 0 // filter method
	ihdr[12] = 0 // no interlace

	var out bytes.Buffer
	out.Write(pngSignature)
	writeChunk(&out, "IHDR", ihdr)
	writeChunk(&out, "IDAT", idat.Bytes())
	writeChunk(&out, "IEND", nil)
	return out.Bytes(), nil
}

// writeChunk emits length, 4-byte tag, body, and CRC-32 over tag+body,
// lengths big-endian.
func writeChunk(out *bytes.Buffer, tag string, body []byte) {
	var hdr [8]byte
	binary.BigEndian.PutUint32(hdr[0:], uint32(len(body)))
	copy(hdr[4:], tag)
	out.Write(hdr[:])
	out.Write(body)

	crc := crc32.NewIEEE()
	crc.Write([]byte(tag))
	crc.Write(body)
	var tail [4]byte
	binary.BigEndian.PutUint32(tail[:], crc.Sum32())
	out.Write(tail[:])
}
