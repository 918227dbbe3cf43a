package ktv

import (
	"bytes"
	"encoding/binary"

	"github.com/ichibown/ktv/column"
	"github.com/ichibown/ktv/schema"
)

// Encode walks r's fields in declared order and produces a positional
// big-endian wire encoding: no tags, no presence bitmap, every field
// occupies its fixed or length-prefixed region regardless of whether the
// in-memory slot is set.
func Encode(r *Record) []byte {
	var buf bytes.Buffer
	encodeInto(&buf, r)
	return buf.Bytes()
}

func encodeInto(buf *bytes.Buffer, r *Record) {
	model := r.Model()
	for i, field := range model.Fields {
		s := &r.slots[i]
		switch field.Type {
		case schema.Char:
			buf.WriteByte(s.char)
		case schema.Byte:
			buf.WriteByte(byte(s.byte_))
		case schema.Int2:
			var tmp [2]byte
			binary.BigEndian.PutUint16(tmp[:], uint16(s.int2))
			buf.Write(tmp[:])
		case schema.Int4:
			var tmp [4]byte
			binary.BigEndian.PutUint32(tmp[:], uint32(s.int4))
			buf.Write(tmp[:])
		case schema.Model:
			encodeModelField(buf, s)
		case schema.Array:
			encodeScalarArrayField(buf, s)
		case schema.ModelArray:
			encodeModelArrayField(buf, s)
		}
	}
}

func encodeModelField(buf *bytes.Buffer, s *slot) {
	if !s.set || s.record == nil {
		var lenBuf [2]byte
		buf.Write(lenBuf[:])
		return
	}
	var inner bytes.Buffer
	encodeInto(&inner, s.record)
	var lenBuf [2]byte
	binary.BigEndian.PutUint16(lenBuf[:], uint16(inner.Len()))
	buf.Write(lenBuf[:])
	buf.Write(inner.Bytes())
}

func encodeScalarArrayField(buf *bytes.Buffer, s *slot) {
	var countBuf [2]byte
	if !s.set || s.array == nil {
		buf.Write(countBuf[:])
		return
	}
	binary.BigEndian.PutUint16(countBuf[:], uint16(s.array.Len()))
	buf.Write(countBuf[:])
	switch {
	case s.array.chars != nil:
		s.array.chars.Encode(buf)
	case s.array.bytes != nil:
		s.array.bytes.Encode(buf)
	case s.array.int2s != nil:
		s.array.int2s.Encode(buf)
	case s.array.int4s != nil:
		s.array.int4s.Encode(buf)
	}
}

func encodeModelArrayField(buf *bytes.Buffer, s *slot) {
	var countBuf [2]byte
	if !s.set || s.array == nil {
		buf.Write(countBuf[:])
		return
	}
	binary.BigEndian.PutUint16(countBuf[:], uint16(len(s.array.records)))
	buf.Write(countBuf[:])
	for _, child := range s.array.records {
		var lenBuf [2]byte
		if child == nil {
			buf.Write(lenBuf[:])
			continue
		}
		var inner bytes.Buffer
		encodeInto(&inner, child)
		binary.BigEndian.PutUint16(lenBuf[:], uint16(inner.Len()))
		buf.Write(lenBuf[:])
		buf.Write(inner.Bytes())
	}
}

// Decode populates r, which must be a freshly constructed record for the
// target model, from the positional encoding in data. Decoding is lenient:
// truncation stops cleanly at the last fully readable field and leaves
// later fields unset, never returning an error.
func Decode(r *Record, data []byte) {
	dec := decoder{data: data}
	dec.decodeInto(r)
}

type decoder struct {
	data []byte
	pos  int
}

func (d *decoder) remaining() int { return len(d.data) - d.pos }

func (d *decoder) readBytes(n int) ([]byte, bool) {
	if n < 0 || d.remaining() < n {
		return nil, false
	}
	b := d.data[d.pos : d.pos+n]
	d.pos += n
	return b, true
}

func (d *decoder) readU16() (uint16, bool) {
	b, ok := d.readBytes(2)
	if !ok {
		return 0, false
	}
	return binary.BigEndian.Uint16(b), true
}

func (d *decoder) decodeInto(r *Record) {
	model := r.Model()
	for i, field := range model.Fields {
		s := &r.slots[i]
		switch field.Type {
		case schema.Char:
			b, ok := d.readBytes(1)
			if !ok {
				return
			}
			*s = slot{set: true, char: b[0]}
		case schema.Byte:
			b, ok := d.readBytes(1)
			if !ok {
				return
			}
			*s = slot{set: true, byte_: int8(b[0])}
		case schema.Int2:
			b, ok := d.readBytes(2)
			if !ok {
				return
			}
			*s = slot{set: true, int2: int16(binary.BigEndian.Uint16(b))}
		case schema.Int4:
			b, ok := d.readBytes(4)
			if !ok {
				return
			}
			*s = slot{set: true, int4: int32(binary.BigEndian.Uint32(b))}
		case schema.Model:
			if !d.decodeModelField(r, i, field) {
				return
			}
		case schema.Array:
			if !d.decodeScalarArrayField(s, field) {
				return
			}
		case schema.ModelArray:
			if !d.decodeModelArrayField(r, i, field) {
				return
			}
		}
	}
}

func (d *decoder) decodeModelField(r *Record, i int, field schema.Field) bool {
	length, ok := d.readU16()
	if !ok {
		return false
	}
	sub, ok := d.readBytes(int(length))
	if !ok {
		return false
	}
	child := newRecordAt(r.sch, field.SubType, optionFuncsOf(r.opts)...)
	Decode(child, sub)
	r.slots[i] = slot{set: true, record: child}
	return true
}

func (d *decoder) decodeScalarArrayField(s *slot, field schema.Field) bool {
	count, ok := d.readU16()
	if !ok {
		return false
	}
	n := int(count)
	arr := &Array{typ: schema.Array, subType: field.SubType}
	switch schema.FieldType(field.SubType) {
	case schema.Char:
		b, ok := d.readBytes(n)
		if !ok {
			return false
		}
		arr.chars = column.NewCharColumn(b)
	case schema.Byte:
		b, ok := d.readBytes(n)
		if !ok {
			return false
		}
		values := make([]int8, n)
		for i, v := range b {
			values[i] = int8(v)
		}
		arr.bytes = column.NewByteColumn(values)
	case schema.Int2:
		b, ok := d.readBytes(n * 2)
		if !ok {
			return false
		}
		values := make([]int16, n)
		for i := 0; i < n; i++ {
			values[i] = int16(binary.BigEndian.Uint16(b[i*2:]))
		}
		arr.int2s = column.NewInt2Column(values)
	case schema.Int4:
		b, ok := d.readBytes(n * 4)
		if !ok {
			return false
		}
		values := make([]int32, n)
		for i := 0; i < n; i++ {
			values[i] = int32(binary.BigEndian.Uint32(b[i*4:]))
		}
		arr.int4s = column.NewInt4Column(values)
	default:
		return false
	}
	*s = slot{set: true, array: arr}
	return true
}

func (d *decoder) decodeModelArrayField(r *Record, i int, field schema.Field) bool {
	count, ok := d.readU16()
	if !ok {
		return false
	}
	n := int(count)
	arr := &Array{typ: schema.ModelArray, subType: field.SubType, records: make([]*Record, n)}
	for j := 0; j < n; j++ {
		length, ok := d.readU16()
		if !ok {
			return false
		}
		sub, ok := d.readBytes(int(length))
		if !ok {
			return false
		}
		child := newRecordAt(r.sch, field.SubType, optionFuncsOf(r.opts)...)
		Decode(child, sub)
		arr.records[j] = child
	}
	r.slots[i] = slot{set: true, array: arr}
	return true
}

// optionFuncsOf re-derives an Option slice that reproduces o, so nested
// records created during decode inherit their parent's configured policy.
func optionFuncsOf(o options) []Option {
	var opts []Option
	if o.freeReplaced {
		opts = append(opts, WithFreeReplaced())
	}
	if o.strictJSON {
		opts = append(opts, WithStrictJSON())
	}
	return opts
}
