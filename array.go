package ktv

import (
	"github.com/ichibown/ktv/column"
	"github.com/ichibown/ktv/schema"
)

// Array is a fixed-element-type sequence: either a packed buffer of
// scalars (ARRAY) or a vector of record-instance references (MODEL_ARRAY).
// It carries its own Type/SubType redundantly with the owning field's
// declaration, for the same defensive-validation reason slot does.
type Array struct {
	typ     schema.FieldType
	subType uint8

	chars *column.CharColumn
	bytes *column.ByteColumn
	int2s *column.Int2Column
	int4s *column.Int4Column

	records []*Record
}

// NewCharArray builds a CHAR array (a string, byte-for-byte) from s.
func NewCharArray(s string) *Array {
	return &Array{typ: schema.Array, subType: uint8(schema.Char), chars: column.NewCharColumn([]byte(s))}
}

// NewByteArray builds a BYTE array by element-wise copy.
func NewByteArray(values []int8) *Array {
	return &Array{typ: schema.Array, subType: uint8(schema.Byte), bytes: column.NewByteColumn(values)}
}

// NewInt2Array builds an INT2 array by element-wise copy.
func NewInt2Array(values []int16) *Array {
	return &Array{typ: schema.Array, subType: uint8(schema.Int2), int2s: column.NewInt2Column(values)}
}

// NewInt4Array builds an INT4 array by element-wise copy.
func NewInt4Array(values []int32) *Array {
	return &Array{typ: schema.Array, subType: uint8(schema.Int4), int4s: column.NewInt4Column(values)}
}

// NewRecordArray allocates a MODEL_ARRAY of capacity empty (absent) slots,
// to be filled one at a time with SetRecord. subType is the model index the
// caller intends to populate; it is not itself validated here. Validation
// happens when the array is installed into a field via Record.SetArray,
// which checks it against the field's declared sub_type.
func NewRecordArray(subType uint8, capacity int) *Array {
	return &Array{typ: schema.ModelArray, subType: subType, records: make([]*Record, capacity)}
}

// Type reports whether this is a scalar ARRAY or a MODEL_ARRAY.
func (a *Array) Type() schema.FieldType { return a.typ }

// SubType reports the element type (for ARRAY) or referenced model index
// (for MODEL_ARRAY).
func (a *Array) SubType() uint8 { return a.subType }

// Len reports the number of logical elements.
func (a *Array) Len() int {
	switch {
	case a.chars != nil:
		return a.chars.Len()
	case a.bytes != nil:
		return a.bytes.Len()
	case a.int2s != nil:
		return a.int2s.Len()
	case a.int4s != nil:
		return a.int4s.Len()
	default:
		return len(a.records)
	}
}

// String returns the backing string for a CHAR array, or "" if this array
// does not hold CHAR elements.
func (a *Array) String() string {
	if a.chars == nil {
		return ""
	}
	return a.chars.String()
}

// Bytes returns the backing elements for a BYTE array, or nil.
func (a *Array) Bytes() []int8 {
	if a.bytes == nil {
		return nil
	}
	return a.bytes.Values()
}

// Int2s returns the backing elements for an INT2 array, or nil.
func (a *Array) Int2s() []int16 {
	if a.int2s == nil {
		return nil
	}
	return a.int2s.Values()
}

// Int4s returns the backing elements for an INT4 array, or nil.
func (a *Array) Int4s() []int32 {
	if a.int4s == nil {
		return nil
	}
	return a.int4s.Values()
}

// GetRecord returns the record at index within a MODEL_ARRAY, or false if
// index is out of range or the slot has not been filled yet. Bounds are
// checked with strict '<'.
func (a *Array) GetRecord(index int) (*Record, bool) {
	if index < 0 || index >= len(a.records) {
		return nil, false
	}
	rec := a.records[index]
	return rec, rec != nil
}

// SetRecord installs rec at index within a MODEL_ARRAY. Out-of-range index
// is a silent no-op, matching every other soft-error accessor in this
// package.
func (a *Array) SetRecord(index int, rec *Record) {
	if index < 0 || index >= len(a.records) {
		return
	}
	a.records[index] = rec
}

// clone returns an independent copy of a's backing storage. Installing a
// clone rather than arr itself (see Record.SetArray) keeps the record from
// being disturbed if the caller goes on to mutate the Array value it just
// handed over.
func (a *Array) clone() *Array {
	switch {
	case a.chars != nil:
		return &Array{typ: a.typ, subType: a.subType, chars: a.chars.Clone()}
	case a.bytes != nil:
		return &Array{typ: a.typ, subType: a.subType, bytes: a.bytes.Clone()}
	case a.int2s != nil:
		return &Array{typ: a.typ, subType: a.subType, int2s: a.int2s.Clone()}
	case a.int4s != nil:
		return &Array{typ: a.typ, subType: a.subType, int4s: a.int4s.Clone()}
	default:
		records := make([]*Record, len(a.records))
		copy(records, a.records)
		return &Array{typ: a.typ, subType: a.subType, records: records}
	}
}

// Delete recursively deletes any records this array owns. For a scalar
// ARRAY this is a no-op: packed scalar storage owns no children.
func (a *Array) Delete() {
	if a == nil {
		return
	}
	for i, rec := range a.records {
		rec.Delete()
		a.records[i] = nil
	}
}
