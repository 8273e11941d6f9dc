// ◄◄◄ tinybmp/pixels.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Raw color to color.RGBA conversion
//

package tinybmp

import (
	"image"
	"image/color"
)

// Pixel is a decoded pixel with its color converted to color.RGBA.
type Pixel struct {
	Position image.Point
	Color    color.RGBA
}

// Pixels iterates over the pixels of a BMP image, resolving palette
// indices through the color table and widening packed channel bits to
// 8 bits per channel. An out-of-range palette index degrades to black
// rather than terminating the sequence.
type Pixels struct {
	raw       *RawPixels
	colorType ColorType
	table     *ColorTable
}

// Next returns the next converted pixel, or false once the image is
// exhausted.
func (p *Pixels) Next() (Pixel, bool) {
	rawPixel, ok := p.raw.Next()
	if !ok {
		return Pixel{}, false
	}
	return Pixel{
		Position: rawPixel.Position,
		Color:    convertColor(p.colorType, p.table, rawPixel.Color),
	}, true
}

// Err reports the read error that terminated the sequence early, if any.
func (p *Pixels) Err() error {
	return p.raw.Err()
}

func convertColor(colorType ColorType, table *ColorTable, raw uint32) color.RGBA {
	switch colorType {
	case ColorTypeIndex1, ColorTypeIndex4, ColorTypeIndex8:
		rgb, ok := table.Get(raw)
		if !ok {
			rgb = 0 // corrupt index, degrade to black
		}
		return rgba888(rgb)
	case ColorTypeRgb555:
		return color.RGBA{
			R: widen5(uint8(raw >> 10 & 0x1f)),
			G: widen5(uint8(raw >> 5 & 0x1f)),
			B: widen5(uint8(raw & 0x1f)),
			A: 0xff,
		}
	case ColorTypeRgb565:
		return color.RGBA{
			R: widen5(uint8(raw >> 11 & 0x1f)),
			G: widen6(uint8(raw >> 5 & 0x3f)),
			B: widen5(uint8(raw & 0x1f)),
			A: 0xff,
		}
	default: // Rgb888, Xrgb8888: the top byte of a 32 bit value is unused
		return rgba888(raw)
	}
}

func rgba888(rgb uint32) color.RGBA {
	return color.RGBA{
		R: uint8(rgb >> 16),
		G: uint8(rgb >> 8),
		B: uint8(rgb),
		A: 0xff,
	}
}

// widen5 and widen6 scale 5 and 6 bit channel values to 8 bits by bit
// replication, so that full intensity maps to 0xff.
func widen5(v uint8) uint8 { return v<<3 | v>>2 }
func widen6(v uint8) uint8 { return v<<2 | v>>4 }
