// ◄◄◄ tinybmp/reader_test.go ►►►

package tinybmp

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testData(n int) []byte {
	data := make([]byte, n)
	for i := range data {
		data[i] = byte(i)
	}
	return data
}

func TestReadRange(t *testing.T) {
	data := testData(16)
	readers := map[string]Reader{
		"slice":  NewSliceReader(data),
		"stream": NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 8)),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, 16, r.Size())

			dst := make([]byte, 4)
			require.NoError(t, r.ReadRange(4, 8, dst))
			assert.Equal(t, []byte{4, 5, 6, 7}, dst)

			// whole extent
			whole := make([]byte, 16)
			require.NoError(t, r.ReadRange(0, 16, whole))
			assert.Equal(t, data, whole)

			err := r.ReadRange(0, 8, dst)
			assert.ErrorIs(t, err, ErrBufferTooSmall)

			err = r.ReadRange(10, 20, make([]byte, 10))
			assert.ErrorIs(t, err, ErrAddressOutOfBounds)

			err = r.ReadRange(-1, 3, dst)
			assert.ErrorIs(t, err, ErrAddressOutOfBounds)
		})
	}
}

func TestChunksForward(t *testing.T) {
	data := testData(16)
	readers := map[string]Reader{
		"slice":  NewSliceReader(data),
		"stream": NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4)),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			chunks, err := r.Chunks(4, 12, 4)
			require.NoError(t, err)

			var got [][]byte
			for {
				chunk, ok := chunks.Next()
				if !ok {
					break
				}
				got = append(got, append([]byte(nil), chunk...))
			}
			require.NoError(t, chunks.Err())
			assert.Equal(t, [][]byte{
				{4, 5, 6, 7},
				{8, 9, 10, 11},
				{12, 13, 14, 15},
			}, got)
		})
	}
}

func TestChunksBidirectional(t *testing.T) {
	data := testData(12)
	readers := map[string]Reader{
		"slice":  NewSliceReader(data),
		"stream": NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4)),
	}

	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			chunks, err := r.Chunks(0, 12, 4)
			require.NoError(t, err)

			chunk, ok := chunks.Next()
			require.True(t, ok)
			assert.Equal(t, []byte{0, 1, 2, 3}, chunk)

			chunk, ok = chunks.NextBack()
			require.True(t, ok)
			assert.Equal(t, []byte{8, 9, 10, 11}, chunk)

			chunk, ok = chunks.NextBack()
			require.True(t, ok)
			assert.Equal(t, []byte{4, 5, 6, 7}, chunk)

			// cursors have met: exhausted in both directions
			_, ok = chunks.Next()
			assert.False(t, ok)
			_, ok = chunks.NextBack()
			assert.False(t, ok)
			assert.NoError(t, chunks.Err())
		})
	}
}

func TestChunksBackwardOnly(t *testing.T) {
	data := testData(8)
	r := NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4))

	chunks, err := r.Chunks(0, 8, 4)
	require.NoError(t, err)

	chunk, ok := chunks.NextBack()
	require.True(t, ok)
	assert.Equal(t, []byte{4, 5, 6, 7}, chunk)

	chunk, ok = chunks.NextBack()
	require.True(t, ok)
	assert.Equal(t, []byte{0, 1, 2, 3}, chunk)

	_, ok = chunks.NextBack()
	assert.False(t, ok)
}

func TestStreamChunkOverwritesBuffer(t *testing.T) {
	data := testData(8)
	r := NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4))

	chunks, err := r.Chunks(0, 8, 4)
	require.NoError(t, err)

	first, ok := chunks.Next()
	require.True(t, ok)
	second, ok := chunks.Next()
	require.True(t, ok)

	// Both views share the reader's single buffer.
	assert.Equal(t, []byte{4, 5, 6, 7}, second)
	assert.Equal(t, second, first)
}

func TestChunkTooLarge(t *testing.T) {
	data := testData(16)
	r := NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4))

	_, err := r.Chunks(0, 16, 8)
	assert.ErrorIs(t, err, ErrRequestedChunkTooLarge)
}

func TestChunksOutOfBounds(t *testing.T) {
	readers := map[string]Reader{
		"slice":  NewSliceReader(testData(8)),
		"stream": NewStreamReader(bytes.NewReader(testData(8)), 8, make([]byte, 4)),
	}
	for name, r := range readers {
		t.Run(name, func(t *testing.T) {
			_, err := r.Chunks(4, 8, 4)
			assert.ErrorIs(t, err, ErrAddressOutOfBounds)
		})
	}
}

func TestStreamReadPastDeclaredSize(t *testing.T) {
	// The reader's declared size can exceed the actual source; a pull
	// that runs off the end surfaces through Err and ends the sequence.
	r := NewStreamReader(bytes.NewReader(testData(6)), 12, make([]byte, 4))

	chunks, err := r.Chunks(0, 12, 4)
	require.NoError(t, err)

	_, ok := chunks.Next()
	require.True(t, ok)
	_, ok = chunks.Next()
	assert.False(t, ok)
	assert.ErrorIs(t, chunks.Err(), ErrUnexpectedEndOfFile)

	_, ok = chunks.NextBack()
	assert.False(t, ok)
}
