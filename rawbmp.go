// ◄◄◄ tinybmp/rawbmp.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Low-level BMP access without color conversion
//

package tinybmp

import "fmt"

// ColorType identifies how the raw bits of a pixel are to be interpreted.
// It is derived from the header once, when a decoding session is created.
type ColorType uint8

const (
	ColorTypeIndex1 ColorType = iota
	ColorTypeIndex4
	ColorTypeIndex8
	ColorTypeRgb555
	ColorTypeRgb565
	ColorTypeRgb888
	ColorTypeXrgb8888
)

func (c ColorType) String() string {
	switch c {
	case ColorTypeIndex1:
		return "1 bit indexed"
	case ColorTypeIndex4:
		return "4 bit indexed"
	case ColorTypeIndex8:
		return "8 bit indexed"
	case ColorTypeRgb555:
		return "RGB555"
	case ColorTypeRgb565:
		return "RGB565"
	case ColorTypeRgb888:
		return "RGB888"
	case ColorTypeXrgb8888:
		return "XRGB8888"
	}
	return fmt.Sprintf("ColorType(%d)", uint8(c))
}

// colorTypeFromHeader resolves the bit depth and channel masks of a parsed
// header to one of the supported pixel encodings.
func colorTypeFromHeader(h *Header) (ColorType, error) {
	switch h.Bpp {
	case Bpp1:
		return ColorTypeIndex1, nil
	case Bpp4:
		return ColorTypeIndex4, nil
	case Bpp8:
		return ColorTypeIndex8, nil
	case Bpp16:
		if h.ChannelMasks == nil {
			// Per the GDI docs the default 16 bpp format is RGB555 when
			// no masks are defined.
			return ColorTypeRgb555, nil
		}
		switch *h.ChannelMasks {
		case ChannelMasksRGB555:
			return ColorTypeRgb555, nil
		case ChannelMasksRGB565:
			return ColorTypeRgb565, nil
		}
		return 0, ErrUnsupportedChannelMasks
	case Bpp24:
		return ColorTypeRgb888, nil
	case Bpp32:
		if h.ChannelMasks == nil || *h.ChannelMasks == ChannelMasksRGB888 {
			return ColorTypeXrgb8888, nil
		}
		return 0, ErrUnsupportedChannelMasks
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBpp, h.Bpp)
}

// RawBmp gives low-level access to the image data in a BMP file. It does
// no color conversion and does not apply the color table: for indexed
// images the pixel iterator yields palette indices, which can be resolved
// manually through ColorTable. For converted colors use Bmp instead.
//
// A RawBmp borrows from the bytes it was created over (the input slice, or
// the caller-supplied header buffer); it must not outlive them.
type RawBmp struct {
	header     Header
	colorType  ColorType
	colorTable *ColorTable
	imageData  []byte
	reader     Reader
}

// RawFromSlice creates a decoding session over a byte slice holding a
// complete BMP file. No copies of the image data are made.
func RawFromSlice(data []byte) (*RawBmp, error) {
	header, colorTable, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	colorType, err := colorTypeFromHeader(&header)
	if err != nil {
		return nil, err
	}

	if header.ImageDataStart+header.ImageDataLen > len(data) {
		return nil, ErrUnexpectedEndOfFile
	}

	return &RawBmp{
		header:     header,
		colorType:  colorType,
		colorTable: colorTable,
		imageData:  data[header.ImageDataStart : header.ImageDataStart+header.ImageDataLen],
		reader:     NewSliceReader(data),
	}, nil
}

// RawFromReader creates a decoding session over an external reader.
// headerBuf is caller-supplied scratch space that must be large enough to
// hold the file's full header-and-palette region; the parsed header and
// color table keep borrowing from it for the life of the session. Image
// data is never held in memory as a whole: it is pulled through the
// reader's chunk buffer one row at a time.
func RawFromReader(r Reader, headerBuf []byte) (*RawBmp, error) {
	var prefix [fileHeaderLen]byte
	if err := r.ReadRange(0, fileHeaderLen, prefix[:]); err != nil {
		return nil, err
	}
	_, imageDataStart, err := parseHeaderPrefix(prefix[:])
	if err != nil {
		return nil, err
	}

	if imageDataStart > len(headerBuf) {
		return nil, fmt.Errorf("%w: header region %d exceeds buffer %d",
			ErrUnsupportedHeaderLength, imageDataStart, len(headerBuf))
	}
	if err := r.ReadRange(0, imageDataStart, headerBuf); err != nil {
		return nil, err
	}

	header, colorTable, err := parseHeader(headerBuf[:imageDataStart])
	if err != nil {
		return nil, err
	}

	colorType, err := colorTypeFromHeader(&header)
	if err != nil {
		return nil, err
	}

	if header.ImageDataStart+header.ImageDataLen > r.Size() {
		return nil, ErrUnexpectedEndOfFile
	}

	return &RawBmp{
		header:     header,
		colorType:  colorType,
		colorTable: colorTable,
		reader:     r,
	}, nil
}

// Header returns the parsed BMP header.
func (r *RawBmp) Header() *Header { return &r.header }

// ColorType returns the resolved pixel encoding.
func (r *RawBmp) ColorType() ColorType { return r.colorType }

// ColorTable returns the color table, or nil for images with more than
// 8 bits per pixel.
func (r *RawBmp) ColorTable() *ColorTable { return r.colorTable }

// ImageData returns the raw image data region for slice-backed sessions,
// or nil for reader-backed sessions, whose data is not resident.
func (r *RawBmp) ImageData() []byte { return r.imageData }

// Pixels returns an iterator over the raw pixels of the image, in
// top-left-origin row-major order regardless of the file's row order.
// The iterator is finite and not restartable; to decode again, create a
// fresh session from the same source.
func (r *RawBmp) Pixels() (*RawPixels, error) {
	return newRawPixels(r)
}
