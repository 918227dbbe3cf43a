package ktv

import "github.com/ichibown/ktv/schema"

// Every accessor below is lenient by design: an unknown alias, a
// type mismatch against the field's declared kind, or (for Get*) an unset
// slot all resolve to the same observable outcome: Get returns the zero
// value and false, Set is a silent no-op. The single exception is a
// malformed schema, which can only surface at Load time, never here.

// GetChar returns the CHAR value stored at alias, if present.
func (r *Record) GetChar(alias string) (uint8, bool) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Char)
	if !ok || !r.slots[i].set {
		return 0, false
	}
	return r.slots[i].char, true
}

// SetChar stores v at alias if alias names a declared CHAR field.
func (r *Record) SetChar(alias string, v uint8) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Char)
	if !ok {
		return
	}
	r.slots[i] = slot{set: true, char: v}
}

// GetByte returns the BYTE value stored at alias, if present.
func (r *Record) GetByte(alias string) (int8, bool) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Byte)
	if !ok || !r.slots[i].set {
		return 0, false
	}
	return r.slots[i].byte_, true
}

// SetByte stores v at alias if alias names a declared BYTE field.
func (r *Record) SetByte(alias string, v int8) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Byte)
	if !ok {
		return
	}
	r.slots[i] = slot{set: true, byte_: v}
}

// GetInt2 returns the INT2 value stored at alias, if present.
func (r *Record) GetInt2(alias string) (int16, bool) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Int2)
	if !ok || !r.slots[i].set {
		return 0, false
	}
	return r.slots[i].int2, true
}

// SetInt2 stores v at alias if alias names a declared INT2 field.
func (r *Record) SetInt2(alias string, v int16) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Int2)
	if !ok {
		return
	}
	r.slots[i] = slot{set: true, int2: v}
}

// GetInt4 returns the INT4 value stored at alias, if present.
func (r *Record) GetInt4(alias string) (int32, bool) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Int4)
	if !ok || !r.slots[i].set {
		return 0, false
	}
	return r.slots[i].int4, true
}

// SetInt4 stores v at alias if alias names a declared INT4 field.
func (r *Record) SetInt4(alias string, v int32) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Int4)
	if !ok {
		return
	}
	r.slots[i] = slot{set: true, int4: v}
}

// GetRecord returns the nested record stored at alias, if present.
func (r *Record) GetRecord(alias string) (*Record, bool) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Model)
	if !ok || !r.slots[i].set {
		return nil, false
	}
	return r.slots[i].record, true
}

// SetRecord installs child as the nested record at alias. child's model
// must match the field's declared sub_type; otherwise this is a silent
// no-op, same as every other type mismatch in this package. If the slot
// already held a record and WithFreeReplaced was requested, the previous
// record is deleted before being overwritten.
func (r *Record) SetRecord(alias string, child *Record) {
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Model)
	if !ok {
		return
	}
	field := r.Model().Fields[i]
	if child == nil || child.modelIndex != field.SubType {
		return
	}
	s := &r.slots[i]
	if s.set && r.opts.freeReplaced {
		s.record.Delete()
	}
	*s = slot{set: true, record: child}
}

// GetArray returns the array stored at alias, if present. It probes ARRAY
// first and falls back to MODEL_ARRAY, so one accessor serves both
// array-shaped field kinds.
func (r *Record) GetArray(alias string) (*Array, bool) {
	if i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.Array); ok && r.slots[i].set {
		return r.slots[i].array, true
	}
	if i, ok := r.sch.FieldIndex(r.modelIndex, alias, schema.ModelArray); ok && r.slots[i].set {
		return r.slots[i].array, true
	}
	return nil, false
}

// SetArray installs arr as the array at alias. arr's Type must match the
// field's declared kind (ARRAY or MODEL_ARRAY) and, for ARRAY, its SubType
// must match the field's declared element type; for MODEL_ARRAY its
// SubType must match the field's declared referenced model. Any mismatch
// is a silent no-op.
func (r *Record) SetArray(alias string, arr *Array) {
	if arr == nil {
		return
	}
	i, ok := r.sch.FieldIndex(r.modelIndex, alias, arr.typ)
	if !ok {
		return
	}
	field := r.Model().Fields[i]
	if field.SubType != arr.subType {
		return
	}
	s := &r.slots[i]
	if s.set && r.opts.freeReplaced {
		s.array.Delete()
	}
	*s = slot{set: true, array: arr.clone()}
}
