// ◄◄◄ tinybmp/rawpixels_test.go ►►►

package tinybmp

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// checkerboardImage builds a width x height board alternating between two
// raw pixel values, starting with v0 at the top left.
func checkerboardImage(tb testing.TB, width, height, bpp int, topDown bool, v0, v1 uint32, palette []uint32) ([]byte, []uint32) {
	tb.Helper()

	rows := make([][]byte, height)
	var expected []uint32
	for y := 0; y < height; y++ {
		values := make([]uint32, width)
		for x := 0; x < width; x++ {
			v := v0
			if (x+y)%2 == 1 {
				v = v1
			}
			values[x] = v
			expected = append(expected, v)
		}
		if bpp <= 8 {
			indices := make([]int, width)
			for i, v := range values {
				indices[i] = int(v)
			}
			rows[y] = packIndexed(bpp, indices)
		} else {
			rows[y] = packLE(bpp, values)
		}
	}

	data := testImage{
		width: width, height: height, bpp: bpp,
		topDown: topDown,
		palette: palette,
		rows:    rows,
	}.build(tb)
	return data, expected
}

func TestCheckerboardAllDepths(t *testing.T) {
	twoEntries := []uint32{0x000000, 0xffffff}

	tests := []struct {
		name    string
		bpp     int
		v0, v1  uint32
		palette []uint32
	}{
		{name: "1 bit", bpp: 1, v0: 0, v1: 1, palette: twoEntries},
		{name: "4 bit", bpp: 4, v0: 3, v1: 12, palette: make([]uint32, 16)},
		{name: "8 bit", bpp: 8, v0: 7, v1: 200, palette: make([]uint32, 256)},
		{name: "16 bit", bpp: 16, v0: 0x7c1f, v1: 0x03e0},
		{name: "24 bit", bpp: 24, v0: 0x102030, v1: 0xf0e0d0},
		{name: "32 bit", bpp: 32, v0: 0x00ffffff, v1: 0x00123456},
	}

	const width, height = 5, 4

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, expected := checkerboardImage(t, width, height, tt.bpp, false, tt.v0, tt.v1, tt.palette)

			raw, err := RawFromSlice(data)
			require.NoError(t, err)
			pixels := collectRawPixels(t, raw)

			require.Len(t, pixels, width*height)
			for i, px := range pixels {
				// positions enumerate every (x,y) exactly once, row-major
				assert.Equal(t, image.Point{X: i % width, Y: i / width}, px.Position)
				assert.Equal(t, expected[i], px.Color)
			}
		})
	}
}

func TestRowOrderEquivalence(t *testing.T) {
	bottomUp, _ := checkerboardImage(t, 4, 3, 24, false, 0xff0000, 0x0000ff, nil)
	topDown, _ := checkerboardImage(t, 4, 3, 24, true, 0xff0000, 0x0000ff, nil)

	rawBottomUp, err := RawFromSlice(bottomUp)
	require.NoError(t, err)
	rawTopDown, err := RawFromSlice(topDown)
	require.NoError(t, err)

	assert.Equal(t,
		collectRawPixels(t, rawBottomUp),
		collectRawPixels(t, rawTopDown))
}

func TestStreamingMatchesSlice(t *testing.T) {
	for _, topDown := range []bool{false, true} {
		name := "bottom-up"
		if topDown {
			name = "top-down"
		}
		t.Run(name, func(t *testing.T) {
			data, _ := checkerboardImage(t, 6, 5, 24, topDown, 0x112233, 0xaabbcc, nil)

			fromSlice, err := RawFromSlice(data)
			require.NoError(t, err)

			// Chunk buffer sized to exactly one padded row.
			rowBuf := make([]byte, fromSlice.Header().BytesPerRow())
			headerBuf := make([]byte, fromSlice.Header().ImageDataStart)
			reader := NewStreamReader(bytes.NewReader(data), len(data), rowBuf)

			fromReader, err := RawFromReader(reader, headerBuf)
			require.NoError(t, err)
			assert.Equal(t, fromSlice.Header(), fromReader.Header())

			assert.Equal(t,
				collectRawPixels(t, fromSlice),
				collectRawPixels(t, fromReader))
		})
	}
}

func TestStreamingChunkBufferSmallerThanRow(t *testing.T) {
	data, _ := checkerboardImage(t, 6, 2, 24, false, 0, 0xffffff, nil)

	reader := NewStreamReader(bytes.NewReader(data), len(data), make([]byte, 4))
	raw, err := RawFromReader(reader, make([]byte, 256))
	require.NoError(t, err)

	// A row is 20 bytes; a 4 byte chunk buffer cannot hold one.
	_, err = raw.Pixels()
	assert.ErrorIs(t, err, ErrRequestedChunkTooLarge)
}

// Width 5, one row of 0b10110000: the three padding bits never become
// pixels.
func TestOneBitRowUnpacking(t *testing.T) {
	data := testImage{
		width: 5, height: 1, bpp: 1,
		palette: []uint32{0x000000, 0xffffff},
		rows:    [][]byte{{0b10110000}},
	}.build(t)

	raw, err := RawFromSlice(data)
	require.NoError(t, err)
	pixels := collectRawPixels(t, raw)

	require.Len(t, pixels, 5)
	for i, expected := range []uint32{1, 0, 1, 1, 0} {
		assert.Equal(t, image.Point{X: i, Y: 0}, pixels[i].Position)
		assert.Equal(t, expected, pixels[i].Color)
	}
}

func TestFourBitNibbleOrder(t *testing.T) {
	data := testImage{
		width: 3, height: 1, bpp: 4,
		palette: []uint32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
		rows:    [][]byte{{0xab, 0xc0}},
	}.build(t)

	raw, err := RawFromSlice(data)
	require.NoError(t, err)
	pixels := collectRawPixels(t, raw)

	require.Len(t, pixels, 3)
	assert.Equal(t, uint32(0xa), pixels[0].Color)
	assert.Equal(t, uint32(0xb), pixels[1].Color)
	assert.Equal(t, uint32(0xc), pixels[2].Color)
}

func TestPaletteRoundTrip(t *testing.T) {
	palette := []uint32{0x102030, 0x405060, 0x708090, 0xa0b0c0}
	logical := [][]int{
		{3, 1, 0},
		{2, 2, 1},
	}
	rows := make([][]byte, len(logical))
	for y, indices := range logical {
		rows[y] = packIndexed(8, indices)
	}
	data := testImage{width: 3, height: 2, bpp: 8, palette: palette, rows: rows}.build(t)

	raw, err := RawFromSlice(data)
	require.NoError(t, err)
	table := raw.ColorTable()
	require.NotNil(t, table)

	pixels := collectRawPixels(t, raw)
	require.Len(t, pixels, 6)
	for i, px := range pixels {
		require.Less(t, int(px.Color), table.Len())
		rgb, ok := table.Get(px.Color)
		require.True(t, ok)
		expected := palette[logical[px.Position.Y][px.Position.X]]
		assert.Equal(t, expected, rgb, "pixel %d", i)
	}
}

func TestTruncatedImageDataFailsBeforePixels(t *testing.T) {
	data, _ := checkerboardImage(t, 4, 4, 24, false, 0, 0xffffff, nil)

	t.Run("slice", func(t *testing.T) {
		_, err := RawFromSlice(data[:len(data)-1])
		assert.ErrorIs(t, err, ErrUnexpectedEndOfFile)
	})

	t.Run("reader", func(t *testing.T) {
		reader := NewStreamReader(bytes.NewReader(data), len(data)-1, make([]byte, 64))
		_, err := RawFromReader(reader, make([]byte, 256))
		assert.ErrorIs(t, err, ErrUnexpectedEndOfFile)
	})
}

func TestPixelsNotRestartable(t *testing.T) {
	data, _ := checkerboardImage(t, 2, 2, 24, false, 0, 0xffffff, nil)

	raw, err := RawFromSlice(data)
	require.NoError(t, err)

	pixels, err := raw.Pixels()
	require.NoError(t, err)
	for i := 0; i < 4; i++ {
		_, ok := pixels.Next()
		require.True(t, ok)
	}
	_, ok := pixels.Next()
	assert.False(t, ok)
	_, ok = pixels.Next()
	assert.False(t, ok)

	// A fresh session decodes again from the same source.
	fresh, err := RawFromSlice(data)
	require.NoError(t, err)
	assert.Len(t, collectRawPixels(t, fresh), 4)
}
