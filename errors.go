// ◄◄◄ tinybmp/errors.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Decoder error taxonomy
//

package tinybmp

import "errors"

// Errors reported while parsing a BMP file or reading image data. All of
// them are terminal: a constructor that returns one of these never returns
// a partially valid session, and a pixel sequence that hits one produces no
// further pixels.
//
// Errors carrying detail (an unsupported header length, bit depth or
// compression code) are wrapped, so they must be matched with errors.Is.
var (
	// ErrInvalidFileSignature means the file does not start with "BM".
	ErrInvalidFileSignature = errors.New("tinybmp: invalid file signature")

	// ErrMalformedHeader means the header bytes could be read but do not
	// describe a plausible image (e.g. a negative width).
	ErrMalformedHeader = errors.New("tinybmp: malformed header")

	// ErrUnexpectedEndOfFile means the source ended before the declared
	// header or image data region.
	ErrUnexpectedEndOfFile = errors.New("tinybmp: unexpected end of file")

	// ErrUnsupportedHeaderLength means the DIB header length selects a BMP
	// version this package does not parse, or the declared header region
	// does not fit in the caller-supplied header buffer.
	ErrUnsupportedHeaderLength = errors.New("tinybmp: unsupported header length")

	// ErrUnsupportedBpp means a bit depth other than 1, 4, 8, 16, 24 or 32.
	ErrUnsupportedBpp = errors.New("tinybmp: unsupported bit depth")

	// ErrUnsupportedCompressionMethod means the compression field holds
	// anything other than the uncompressed code.
	ErrUnsupportedCompressionMethod = errors.New("tinybmp: unsupported compression method")

	// ErrUnsupportedChannelMasks means the header declares channel masks
	// that match none of the supported pixel formats.
	ErrUnsupportedChannelMasks = errors.New("tinybmp: unsupported channel masks")

	// ErrMissingColorTable means an image with 8 or fewer bits per pixel
	// does not carry the palette those depths require.
	ErrMissingColorTable = errors.New("tinybmp: missing color table")

	// ErrBufferTooSmall means a destination buffer is smaller than the
	// requested byte range.
	ErrBufferTooSmall = errors.New("tinybmp: buffer too small")

	// ErrRequestedChunkTooLarge means a chunk stride exceeds the reader's
	// internal buffer capacity.
	ErrRequestedChunkTooLarge = errors.New("tinybmp: requested chunk too large")

	// ErrAddressOutOfBounds means a byte range lies outside the source.
	ErrAddressOutOfBounds = errors.New("tinybmp: address out of bounds")
)
