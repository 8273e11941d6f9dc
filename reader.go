// ◄◄◄ tinybmp/reader.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.
//
// Storage readers: slice-backed and bounded streaming
//

package tinybmp

import (
	"fmt"
	"io"
)

// Reader is the storage capability the decoder runs over. It is satisfied
// either by a slice that already holds the whole file, or by a bounded
// streaming source such as a file or external flash.
type Reader interface {
	// Size returns the total number of accessible bytes.
	Size() int

	// ReadRange copies the byte range [start, end) into dst. It fails
	// with ErrBufferTooSmall if dst is shorter than the range and with
	// ErrAddressOutOfBounds if the range exceeds the source's extent.
	ReadRange(start, end int, dst []byte) error

	// Chunks returns a bidirectional sequence of stride-sized byte
	// windows covering [start, start+length). It fails eagerly with
	// ErrRequestedChunkTooLarge if stride exceeds the reader's internal
	// buffer capacity, so that no truncated row is ever returned, and
	// with ErrAddressOutOfBounds if the region exceeds the source.
	Chunks(start, length, stride int) (ChunkSeq, error)
}

// ChunkSeq yields successive fixed-stride byte windows over a region,
// advancing from the front with Next and from the back with NextBack. The
// two cursors never cross; once they meet the sequence is exhausted in
// both directions.
//
// A returned chunk may be a view over a buffer shared with the sequence:
// it is valid only until the following Next or NextBack call.
type ChunkSeq interface {
	// Next returns the next chunk from the front of the region, or false
	// when the sequence is exhausted or a read failed.
	Next() ([]byte, bool)

	// NextBack returns the next chunk from the back of the region.
	NextBack() ([]byte, bool)

	// Err returns the first read error encountered, if any. A sequence
	// that ends because its cursors met returns nil.
	Err() error
}

func checkRange(start, end, size int) error {
	if start < 0 || end < start || end > size {
		return fmt.Errorf("%w: [%d,%d) of %d", ErrAddressOutOfBounds, start, end, size)
	}
	return nil
}

// SliceReader is a Reader over a byte slice that holds the complete file.
// Chunks are subslices of the original data, so no copying occurs.
type SliceReader struct {
	data []byte
}

// NewSliceReader returns a Reader over data.
func NewSliceReader(data []byte) *SliceReader {
	return &SliceReader{data: data}
}

// Size implements Reader.
func (r *SliceReader) Size() int { return len(r.data) }

// ReadRange implements Reader.
func (r *SliceReader) ReadRange(start, end int, dst []byte) error {
	if err := checkRange(start, end, len(r.data)); err != nil {
		return err
	}
	if len(dst) < end-start {
		return fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, end-start, len(dst))
	}
	copy(dst, r.data[start:end])
	return nil
}

// Chunks implements Reader. The slice reader has no internal buffer, so
// any stride up to the region length is accepted.
func (r *SliceReader) Chunks(start, length, stride int) (ChunkSeq, error) {
	if err := checkRange(start, start+length, len(r.data)); err != nil {
		return nil, err
	}
	if stride <= 0 {
		return nil, fmt.Errorf("%w: stride %d", ErrRequestedChunkTooLarge, stride)
	}
	return &sliceChunks{
		data:   r.data,
		front:  start,
		back:   start + length - length%stride,
		stride: stride,
	}, nil
}

type sliceChunks struct {
	data   []byte
	front  int
	back   int
	stride int
}

func (c *sliceChunks) Next() ([]byte, bool) {
	if c.back-c.front < c.stride {
		return nil, false
	}
	chunk := c.data[c.front : c.front+c.stride]
	c.front += c.stride
	return chunk, true
}

func (c *sliceChunks) NextBack() ([]byte, bool) {
	if c.back-c.front < c.stride {
		return nil, false
	}
	c.back -= c.stride
	return c.data[c.back : c.back+c.stride], true
}

func (c *sliceChunks) Err() error { return nil }

// StreamReader is a Reader over an external byte source. It owns a single
// fixed-capacity buffer; every chunk it yields is a view over that buffer,
// overwritten by the following pull. The buffer bounds the RAM needed to
// decode an image of any size: a buffer holding one row is sufficient.
type StreamReader struct {
	src  io.ReaderAt
	size int
	buf  []byte
}

// NewStreamReader returns a Reader over src, which holds size accessible
// bytes. buf is the reusable chunk buffer; its length caps the stride of
// any chunk sequence the reader can serve.
func NewStreamReader(src io.ReaderAt, size int, buf []byte) *StreamReader {
	return &StreamReader{src: src, size: size, buf: buf}
}

// Size implements Reader.
func (r *StreamReader) Size() int { return r.size }

// ReadRange implements Reader.
func (r *StreamReader) ReadRange(start, end int, dst []byte) error {
	if err := checkRange(start, end, r.size); err != nil {
		return err
	}
	if len(dst) < end-start {
		return fmt.Errorf("%w: need %d, have %d", ErrBufferTooSmall, end-start, len(dst))
	}
	if _, err := r.src.ReadAt(dst[:end-start], int64(start)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrUnexpectedEndOfFile
		}
		return err
	}
	return nil
}

// Chunks implements Reader.
func (r *StreamReader) Chunks(start, length, stride int) (ChunkSeq, error) {
	if err := checkRange(start, start+length, r.size); err != nil {
		return nil, err
	}
	if stride <= 0 || stride > len(r.buf) {
		return nil, fmt.Errorf("%w: stride %d, buffer %d", ErrRequestedChunkTooLarge, stride, len(r.buf))
	}
	return &streamChunks{
		r:      r,
		front:  start,
		back:   start + length - length%stride,
		stride: stride,
	}, nil
}

type streamChunks struct {
	r      *StreamReader
	front  int
	back   int
	stride int
	err    error
}

func (c *streamChunks) fill(offset int) ([]byte, bool) {
	chunk := c.r.buf[:c.stride]
	if _, err := c.r.src.ReadAt(chunk, int64(offset)); err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			err = ErrUnexpectedEndOfFile
		}
		c.err = err
		c.back = c.front // exhaust both directions
		return nil, false
	}
	return chunk, true
}

func (c *streamChunks) Next() ([]byte, bool) {
	if c.err != nil || c.back-c.front < c.stride {
		return nil, false
	}
	chunk, ok := c.fill(c.front)
	if ok {
		c.front += c.stride
	}
	return chunk, ok
}

func (c *streamChunks) NextBack() ([]byte, bool) {
	if c.err != nil || c.back-c.front < c.stride {
		return nil, false
	}
	chunk, ok := c.fill(c.back - c.stride)
	if ok {
		c.back -= c.stride
	}
	return chunk, ok
}

func (c *streamChunks) Err() error { return c.err }
