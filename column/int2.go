package column

import (
	"bytes"
	"encoding/binary"
)

// Int2Column stores a packed sequence of INT2 (2-byte signed, big-endian on
// the wire) elements, in host order in memory.
type Int2Column struct {
	values []int16
}

// NewInt2Column copies values into a new packed column.
func NewInt2Column(values []int16) *Int2Column {
	out := make([]int16, len(values))
	copy(out, values)
	return &Int2Column{values: out}
}

// Len reports the element count.
func (c *Int2Column) Len() int { return len(c.values) }

// Values exposes the packed elements, in host order.
func (c *Int2Column) Values() []int16 { return c.values }

// Encode appends 2 big-endian bytes per value, at the correct int16 width.
func (c *Int2Column) Encode(dst *bytes.Buffer) {
	var buf [2]byte
	for _, v := range c.values {
		binary.BigEndian.PutUint16(buf[:], uint16(v))
		dst.Write(buf[:])
	}
}

// Clone returns an independent copy.
func (c *Int2Column) Clone() *Int2Column {
	return NewInt2Column(c.values)
}
