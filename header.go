// ◄◄◄ tinybmp/header.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// BMP header parsing
//

package tinybmp

import (
	"encoding/binary"
	"fmt"
	"math"
)

// fileHeaderLen is the size of the fixed BITMAPFILEHEADER portion that
// precedes the DIB header.
const fileHeaderLen = 14

// MaxHeaderRegionLen is the largest header-and-palette region any
// supported file can declare: a 124 byte V5 header plus a 256 entry
// palette. A scratch buffer of this size is always enough for
// RawFromReader.
const MaxHeaderRegionLen = fileHeaderLen + 124 + 256*4

// Bpp is the number of bits used to encode one pixel.
type Bpp uint16

const (
	Bpp1  Bpp = 1
	Bpp4  Bpp = 4
	Bpp8  Bpp = 8
	Bpp16 Bpp = 16
	Bpp24 Bpp = 24
	Bpp32 Bpp = 32
)

// Bits returns the bit depth as an int.
func (b Bpp) Bits() int { return int(b) }

func bppFromRaw(v uint16) (Bpp, error) {
	switch v {
	case 1, 4, 8, 16, 24, 32:
		return Bpp(v), nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedBpp, v)
}

// RowOrder describes which end of the image the first stored row belongs to.
type RowOrder uint8

const (
	// RowOrderBottomUp is the BMP default: the first row in the file is the
	// bottom row of the image.
	RowOrderBottomUp RowOrder = iota

	// RowOrderTopDown is used by files with a negative height field.
	RowOrderTopDown
)

func (o RowOrder) String() string {
	if o == RowOrderTopDown {
		return "top-down"
	}
	return "bottom-up"
}

// ChannelMasks are the bit masks that locate each color channel inside a
// 16 or 32 bit pixel value.
type ChannelMasks struct {
	Red   uint32
	Green uint32
	Blue  uint32
	Alpha uint32
}

// Mask combinations accepted by the decoder.
var (
	ChannelMasksRGB555 = ChannelMasks{Red: 0x7c00, Green: 0x03e0, Blue: 0x001f}
	ChannelMasksRGB565 = ChannelMasks{Red: 0xf800, Green: 0x07e0, Blue: 0x001f}
	ChannelMasksRGB888 = ChannelMasks{Red: 0xff0000, Green: 0x00ff00, Blue: 0x0000ff}
)

// Header holds the geometry and encoding metadata of a BMP file. It is
// created once by parsing and never modified afterwards.
type Header struct {
	// FileSize is the total file size declared in the file header.
	FileSize uint32

	// ImageDataStart is the byte offset where pixel data begins.
	ImageDataStart int

	// Bpp is the image bit depth.
	Bpp Bpp

	// Width and Height are the image dimensions in pixels. Height is
	// always positive; the sign of the stored field is reported through
	// RowOrder instead.
	Width  int
	Height int

	// ImageDataLen is BytesPerRow() * Height.
	ImageDataLen int

	// ChannelMasks are the channel masks declared by the header, or nil
	// for header variants that carry none (or all-zero masks).
	ChannelMasks *ChannelMasks

	// RowOrder is the storage order of the image rows.
	RowOrder RowOrder
}

// BytesPerRow returns the length in bytes of one stored row, including the
// padding that rounds each row up to a 4 byte boundary.
func (h *Header) BytesPerRow() int {
	return ((h.Width*h.Bpp.Bits() + 31) / 32) * 4
}

// parseHeaderPrefix reads the fixed file header portion: enough to learn
// the declared file size and where pixel data starts, which in turn bounds
// the full header-and-palette region.
func parseHeaderPrefix(data []byte) (fileSize uint32, imageDataStart int, err error) {
	if len(data) < fileHeaderLen {
		return 0, 0, ErrUnexpectedEndOfFile
	}
	if data[0] != 'B' || data[1] != 'M' {
		return 0, 0, ErrInvalidFileSignature
	}
	fileSize = binary.LittleEndian.Uint32(data[2:6])
	imageDataStart = int(binary.LittleEndian.Uint32(data[10:14]))
	return fileSize, imageDataStart, nil
}

// parseHeader parses the header region of a BMP file: the file header, the
// DIB header, and (for indexed images) the color table that follows it.
// data must hold at least the full declared header region; it may also hold
// the rest of the file.
func parseHeader(data []byte) (Header, *ColorTable, error) {
	fileSize, imageDataStart, err := parseHeaderPrefix(data)
	if err != nil {
		return Header{}, nil, err
	}

	if len(data) < fileHeaderLen+4 {
		return Header{}, nil, ErrUnexpectedEndOfFile
	}
	headerLen := int(binary.LittleEndian.Uint32(data[14:18]))

	// Supported DIB header variants. Lengths of 52 and up carry channel
	// mask fields after the core fields.
	switch headerLen {
	case 40, 52, 56, 108, 124:
	default:
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedHeaderLength, headerLen)
	}
	if len(data) < fileHeaderLen+headerLen {
		return Header{}, nil, ErrUnexpectedEndOfFile
	}

	width := int(int32(binary.LittleEndian.Uint32(data[18:22])))
	height := int(int32(binary.LittleEndian.Uint32(data[22:26])))
	planes := binary.LittleEndian.Uint16(data[26:28])

	rowOrder := RowOrderBottomUp
	if height < 0 {
		rowOrder = RowOrderTopDown
		height = -height
	}
	if width < 0 || planes != 1 {
		return Header{}, nil, ErrMalformedHeader
	}
	// 46340 is the largest n with n*n below 1<<31; anything bigger
	// cannot survive the stride and data length arithmetic.
	if width > 46340 || height > 46340 {
		return Header{}, nil, ErrMalformedHeader
	}

	bpp, err := bppFromRaw(binary.LittleEndian.Uint16(data[28:30]))
	if err != nil {
		return Header{}, nil, err
	}

	compression := binary.LittleEndian.Uint32(data[30:34])
	if compression != 0 {
		return Header{}, nil, fmt.Errorf("%w: %d", ErrUnsupportedCompressionMethod, compression)
	}

	var masks *ChannelMasks
	if headerLen >= 52 {
		m := ChannelMasks{
			Red:   binary.LittleEndian.Uint32(data[54:58]),
			Green: binary.LittleEndian.Uint32(data[58:62]),
			Blue:  binary.LittleEndian.Uint32(data[62:66]),
		}
		if headerLen >= 56 {
			m.Alpha = binary.LittleEndian.Uint32(data[66:70])
		}
		// All-zero masks are what most encoders write for uncompressed
		// images; treat them the same as a header without mask fields.
		if m != (ChannelMasks{}) {
			masks = &m
		}
	}

	var colorTable *ColorTable
	if bpp.Bits() <= 8 {
		entries := int(binary.LittleEndian.Uint32(data[46:50]))
		if entries == 0 {
			entries = 1 << bpp.Bits()
		}
		if entries > 256 {
			return Header{}, nil, ErrMalformedHeader
		}
		tableStart := fileHeaderLen + headerLen
		tableEnd := tableStart + entries*4
		if tableEnd > len(data) || tableEnd > imageDataStart {
			return Header{}, nil, ErrMissingColorTable
		}
		colorTable = newColorTable(data[tableStart:tableEnd])
	}

	header := Header{
		FileSize:       fileSize,
		ImageDataStart: imageDataStart,
		Bpp:            bpp,
		Width:          width,
		Height:         height,
		ChannelMasks:   masks,
		RowOrder:       rowOrder,
	}
	dataLen := int64(header.BytesPerRow()) * int64(height)
	if dataLen > math.MaxInt32 {
		return Header{}, nil, ErrMalformedHeader
	}
	header.ImageDataLen = int(dataLen)

	return header, colorTable, nil
}
