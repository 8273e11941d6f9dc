// ◄◄◄ tinybmp/rawpixels.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Raw pixel iteration
//

package tinybmp

import (
	"encoding/binary"
	"image"
)

// RawPixel is a pixel position, relative to the top left corner of the
// image, together with its raw color value. For indexed color types the
// value is the palette index; otherwise it holds the packed channel bits.
type RawPixel struct {
	Position image.Point
	Color    uint32
}

// unpackFunc extracts the raw value of the pixel at column x from a packed
// row. One is selected per session, so the per-pixel path has no dispatch.
type unpackFunc func(row []byte, x int) uint32

func unpack1(row []byte, x int) uint32 {
	return uint32(row[x/8]>>(7-x%8)) & 1
}

func unpack4(row []byte, x int) uint32 {
	if x%2 == 0 {
		return uint32(row[x/2] >> 4)
	}
	return uint32(row[x/2] & 0x0f)
}

func unpack8(row []byte, x int) uint32 {
	return uint32(row[x])
}

func unpack16(row []byte, x int) uint32 {
	return uint32(binary.LittleEndian.Uint16(row[x*2:]))
}

func unpack24(row []byte, x int) uint32 {
	return uint32(row[x*3]) | uint32(row[x*3+1])<<8 | uint32(row[x*3+2])<<16
}

func unpack32(row []byte, x int) uint32 {
	return binary.LittleEndian.Uint32(row[x*4:])
}

// RawPixels iterates over the pixels of a BMP image in canonical order:
// top-left origin, row-major, left to right. Bottom-up files are served by
// pulling rows from the back of the chunk sequence, so the whole image is
// never buffered or reversed.
//
// The iterator holds at most one row chunk at a time; for reader-backed
// sessions that bounds decoding memory to the reader's chunk buffer.
type RawPixels struct {
	chunks   ChunkSeq
	rowOrder RowOrder
	unpack   unpackFunc

	row    []byte
	x, y   int
	width  int
	height int
	done   bool
}

func newRawPixels(raw *RawBmp) (*RawPixels, error) {
	header := raw.Header()

	if header.Width == 0 || header.Height == 0 {
		return &RawPixels{done: true}, nil
	}

	chunks, err := raw.reader.Chunks(header.ImageDataStart, header.ImageDataLen, header.BytesPerRow())
	if err != nil {
		return nil, err
	}

	var unpack unpackFunc
	switch raw.colorType {
	case ColorTypeIndex1:
		unpack = unpack1
	case ColorTypeIndex4:
		unpack = unpack4
	case ColorTypeIndex8:
		unpack = unpack8
	case ColorTypeRgb555, ColorTypeRgb565:
		unpack = unpack16
	case ColorTypeRgb888:
		unpack = unpack24
	default:
		unpack = unpack32
	}

	return &RawPixels{
		chunks:   chunks,
		rowOrder: header.RowOrder,
		unpack:   unpack,
		width:    header.Width,
		height:   header.Height,
	}, nil
}

// Next returns the next pixel, or false once height*width pixels have been
// produced or the underlying source ended. If the source ended early, the
// cause is available from Err.
func (p *RawPixels) Next() (RawPixel, bool) {
	if p.done {
		return RawPixel{}, false
	}

	if p.x == 0 {
		// Row boundary: pull the next physical row. For bottom-up files
		// the next canonical row is the last unconsumed row in the file,
		// so it comes from the back cursor.
		var ok bool
		if p.rowOrder == RowOrderTopDown {
			p.row, ok = p.chunks.Next()
		} else {
			p.row, ok = p.chunks.NextBack()
		}
		if !ok {
			p.done = true
			return RawPixel{}, false
		}
	}

	pixel := RawPixel{
		Position: image.Point{X: p.x, Y: p.y},
		Color:    p.unpack(p.row, p.x),
	}

	// The packed row may hold more values than width (BMP padding); the
	// trailing ones are never emitted.
	p.x++
	if p.x == p.width {
		p.x = 0
		p.y++
		if p.y == p.height {
			p.done = true
		}
	}

	return pixel, true
}

// Err returns the read error that terminated the sequence early, or nil if
// the sequence is still running or completed normally.
func (p *RawPixels) Err() error {
	if p.chunks == nil {
		return nil
	}
	return p.chunks.Err()
}
