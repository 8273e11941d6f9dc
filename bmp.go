// ◄◄◄ tinybmp/bmp.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Public decoding surface
//

// Package tinybmp implements a BMP image decoder designed for environments
// with very little memory. Beyond the header region, no allocations are
// required: pixels are produced lazily, and with a streaming reader the
// image data passes through a single caller-sized buffer one row at a
// time. Uncompressed files with 1, 4, 8, 16, 24 and 32 bits per pixel are
// supported.
//
// For ordinary desktop use the package also registers itself with the
// standard image package, so image.Decode handles BMP files once this
// package is imported.
package tinybmp

import (
	"image"
	"image/color"
	"io"
)

// Bmp is a decoded BMP image producing color.RGBA pixels. For access to
// headers, palette indices and raw packed colors, use RawBmp via Raw.
type Bmp struct {
	raw *RawBmp
}

// FromSlice creates an image from a byte slice holding a complete BMP
// file. The image borrows the slice and does not copy pixel data.
func FromSlice(data []byte) (*Bmp, error) {
	raw, err := RawFromSlice(data)
	if err != nil {
		return nil, err
	}
	return &Bmp{raw: raw}, nil
}

// FromReader creates an image over an external Reader. headerBuf must be
// large enough for the file's header-and-palette region and stays in use
// for the life of the image.
func FromReader(r Reader, headerBuf []byte) (*Bmp, error) {
	raw, err := RawFromReader(r, headerBuf)
	if err != nil {
		return nil, err
	}
	return &Bmp{raw: raw}, nil
}

// Raw returns the underlying low-level image.
func (b *Bmp) Raw() *RawBmp { return b.raw }

// Size returns the image dimensions in pixels.
func (b *Bmp) Size() (width, height int) {
	return b.raw.header.Width, b.raw.header.Height
}

// Pixels returns an iterator over the converted pixels of the image, in
// top-left-origin row-major order.
func (b *Bmp) Pixels() (*Pixels, error) {
	raw, err := b.raw.Pixels()
	if err != nil {
		return nil, err
	}
	return &Pixels{
		raw:       raw,
		colorType: b.raw.colorType,
		table:     b.raw.colorTable,
	}, nil
}

func tablePalette(table *ColorTable) color.Palette {
	pal := make(color.Palette, table.Len())
	for i := range pal {
		rgb, _ := table.Get(uint32(i))
		pal[i] = rgba888(rgb)
	}
	return pal
}

// Decode reads a BMP image from r and returns it as an image.Image.
// Indexed images decode to *image.Paletted, all others to *image.NRGBA.
func Decode(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	bmp, err := FromSlice(data)
	if err != nil {
		return nil, err
	}
	width, height := bmp.Size()
	bounds := image.Rect(0, 0, width, height)

	if table := bmp.raw.ColorTable(); table != nil {
		img := image.NewPaletted(bounds, tablePalette(table))
		pixels, err := bmp.raw.Pixels()
		if err != nil {
			return nil, err
		}
		for {
			px, ok := pixels.Next()
			if !ok {
				break
			}
			index := uint8(px.Color)
			if int(px.Color) >= table.Len() {
				index = 0
			}
			img.Pix[px.Position.Y*img.Stride+px.Position.X] = index
		}
		if err := pixels.Err(); err != nil {
			return nil, err
		}
		return img, nil
	}

	img := image.NewNRGBA(bounds)
	pixels, err := bmp.Pixels()
	if err != nil {
		return nil, err
	}
	for {
		px, ok := pixels.Next()
		if !ok {
			break
		}
		c := px.Color
		img.SetNRGBA(px.Position.X, px.Position.Y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A})
	}
	if err := pixels.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// DecodeConfig returns the color model and dimensions of a BMP image
// without decoding the image data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	var prefix [fileHeaderLen]byte
	if _, err := io.ReadFull(r, prefix[:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrUnexpectedEndOfFile
		}
		return image.Config{}, err
	}
	_, imageDataStart, err := parseHeaderPrefix(prefix[:])
	if err != nil {
		return image.Config{}, err
	}
	if imageDataStart < fileHeaderLen {
		return image.Config{}, ErrMalformedHeader
	}

	// The declared offset is untrusted; never allocate more than the
	// largest supported header region. Files with a gap between header
	// and pixel data still have everything the config needs in here.
	regionLen := imageDataStart
	if regionLen > MaxHeaderRegionLen {
		regionLen = MaxHeaderRegionLen
	}

	headerRegion := make([]byte, regionLen)
	copy(headerRegion, prefix[:])
	if _, err := io.ReadFull(r, headerRegion[fileHeaderLen:]); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrUnexpectedEndOfFile
		}
		return image.Config{}, err
	}

	header, table, err := parseHeader(headerRegion)
	if err != nil {
		return image.Config{}, err
	}
	if _, err := colorTypeFromHeader(&header); err != nil {
		return image.Config{}, err
	}

	cfg := image.Config{Width: header.Width, Height: header.Height}
	if table != nil {
		cfg.ColorModel = tablePalette(table)
	} else {
		cfg.ColorModel = color.NRGBAModel
	}
	return cfg, nil
}

func init() {
	image.RegisterFormat("bmp", "BM????\x00\x00\x00\x00", Decode, DecodeConfig)
}
