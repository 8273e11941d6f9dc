// ◄◄◄ tinybmp/colortable.go ►►►
// Use of this code is governed by an MIT-style license that can
// be found in the README.md file.

package tinybmp

// ColorTable is a read-only view over the palette region of a BMP file.
// Each entry is stored as 4 bytes in BGR0 order. The view borrows the
// bytes it was parsed from: it stays valid only as long as the backing
// slice (the input slice or the caller-supplied header buffer).
type ColorTable struct {
	data []byte
}

func newColorTable(data []byte) *ColorTable {
	return &ColorTable{data: data}
}

// Len returns the number of palette entries.
func (c *ColorTable) Len() int {
	return len(c.data) / 4
}

// Get resolves a palette index to a packed 0x00RRGGBB color. The second
// return value is false if index is outside the table; callers wanting a
// defined color for corrupt indices should substitute black rather than
// abort decoding.
func (c *ColorTable) Get(index uint32) (uint32, bool) {
	if index >= uint32(c.Len()) {
		return 0, false
	}
	offset := int(index) * 4
	b := uint32(c.data[offset+0])
	g := uint32(c.data[offset+1])
	r := uint32(c.data[offset+2])
	return r<<16 | g<<8 | b, true
}
