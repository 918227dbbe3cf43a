package column

import (
	"bytes"
	"encoding/binary"
)

// Int4Column stores a packed sequence of INT4 (4-byte signed, big-endian on
// the wire) elements, in host order in memory.
type Int4Column struct {
	values []int32
}

// NewInt4Column copies values into a new packed column.
func NewInt4Column(values []int32) *Int4Column {
	out := make([]int32, len(values))
	copy(out, values)
	return &Int4Column{values: out}
}

// Len reports the element count.
func (c *Int4Column) Len() int { return len(c.values) }

// Values exposes the packed elements, in host order.
func (c *Int4Column) Values() []int32 { return c.values }

// Encode appends 4 big-endian bytes per value.
func (c *Int4Column) Encode(dst *bytes.Buffer) {
	var buf [4]byte
	for _, v := range c.values {
		binary.BigEndian.PutUint32(buf[:], uint32(v))
		dst.Write(buf[:])
	}
}

// Clone returns an independent copy.
func (c *Int4Column) Clone() *Int4Column {
	return NewInt4Column(c.values)
}
