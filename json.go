package ktv

import (
	"errors"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/ichibown/ktv/schema"
)

// ErrJsonKindMismatch is returned by FromJSON only when the record was
// constructed WithStrictJSON(); by default a kind mismatch is a silent
// per-field skip.
var ErrJsonKindMismatch = errors.New("ktv: json kind mismatch")

// ToJSON renders r as a JSON object whose keys are field aliases in the
// model's declared order. Absent slots are omitted entirely;
// there is no null placeholder.
func ToJSON(r *Record) ([]byte, error) {
	var buf []byte
	buf = append(buf, '{')
	model := r.Model()
	first := true
	for i, field := range model.Fields {
		if !r.slots[i].set {
			continue
		}
		if !first {
			buf = append(buf, ',')
		}
		first = false

		key, err := json.Marshal(field.Alias)
		if err != nil {
			return nil, err
		}
		buf = append(buf, key...)
		buf = append(buf, ':')

		val, err := fieldToJSON(r, i, field)
		if err != nil {
			return nil, err
		}
		buf = append(buf, val...)
	}
	buf = append(buf, '}')
	return buf, nil
}

func fieldToJSON(r *Record, i int, field schema.Field) ([]byte, error) {
	s := &r.slots[i]
	switch field.Type {
	case schema.Char:
		return json.Marshal(s.char)
	case schema.Byte:
		return json.Marshal(s.byte_)
	case schema.Int2:
		return json.Marshal(s.int2)
	case schema.Int4:
		return json.Marshal(s.int4)
	case schema.Model:
		return ToJSON(s.record)
	case schema.Array:
		return arrayToJSON(s.array)
	case schema.ModelArray:
		return modelArrayToJSON(s.array)
	default:
		return nil, fmt.Errorf("ktv: unknown field type %v", field.Type)
	}
}

func arrayToJSON(arr *Array) ([]byte, error) {
	switch {
	case arr.chars != nil:
		return json.Marshal(arr.chars.String())
	case arr.bytes != nil:
		return json.Marshal(arr.bytes.Values())
	case arr.int2s != nil:
		return json.Marshal(arr.int2s.Values())
	case arr.int4s != nil:
		return json.Marshal(arr.int4s.Values())
	default:
		return []byte("[]"), nil
	}
}

func modelArrayToJSON(arr *Array) ([]byte, error) {
	buf := []byte("[")
	for i, child := range arr.records {
		if i > 0 {
			buf = append(buf, ',')
		}
		if child == nil {
			buf = append(buf, "{}"...)
			continue
		}
		obj, err := ToJSON(child)
		if err != nil {
			return nil, err
		}
		buf = append(buf, obj...)
	}
	buf = append(buf, ']')
	return buf, nil
}

// FromJSON populates r from a JSON object, matching keys to field aliases.
// Unknown keys are ignored; absent keys leave their slot empty. A key
// whose JSON value kind doesn't match the field's expected kind is
// skipped silently, unless r was built WithStrictJSON(), in which case
// FromJSON returns ErrJsonKindMismatch.
func FromJSON(r *Record, data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	model := r.Model()
	for i, field := range model.Fields {
		node, ok := raw[field.Alias]
		if !ok {
			continue
		}
		if err := fieldFromJSON(r, i, field, node); err != nil {
			if r.opts.strictJSON {
				return err
			}
		}
	}
	return nil
}

// jsonInt decodes node as a JSON number into an int64, the intermediate
// width wide enough to hold any value this engine's scalar fields can
// declare. The caller narrows the result with a plain Go conversion, which
// truncates by implicit narrowing rather than rejecting an out-of-range
// value outright.
func jsonInt(node json.RawMessage) (int64, error) {
	var v int64
	err := json.Unmarshal(node, &v)
	return v, err
}

func fieldFromJSON(r *Record, i int, field schema.Field, node json.RawMessage) error {
	switch field.Type {
	case schema.Char:
		n, err := jsonInt(node)
		if err != nil {
			return kindErr(field, err)
		}
		r.slots[i] = slot{set: true, char: uint8(n)}
	case schema.Byte:
		n, err := jsonInt(node)
		if err != nil {
			return kindErr(field, err)
		}
		r.slots[i] = slot{set: true, byte_: int8(n)}
	case schema.Int2:
		n, err := jsonInt(node)
		if err != nil {
			return kindErr(field, err)
		}
		r.slots[i] = slot{set: true, int2: int16(n)}
	case schema.Int4:
		n, err := jsonInt(node)
		if err != nil {
			return kindErr(field, err)
		}
		r.slots[i] = slot{set: true, int4: int32(n)}
	case schema.Model:
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(node, &obj); err != nil {
			return kindErr(field, err)
		}
		child := newRecordAt(r.sch, field.SubType, optionFuncsOf(r.opts)...)
		if err := FromJSON(child, node); err != nil {
			return err
		}
		r.slots[i] = slot{set: true, record: child}
	case schema.Array:
		return arrayFromJSON(r, i, field, node)
	case schema.ModelArray:
		return modelArrayFromJSON(r, i, field, node)
	}
	return nil
}

func kindErr(field schema.Field, cause error) error {
	return fmt.Errorf("%w: field %q: %v", ErrJsonKindMismatch, field.Alias, cause)
}

func jsonIntSlice(node json.RawMessage) ([]int64, error) {
	var ns []int64
	err := json.Unmarshal(node, &ns)
	return ns, err
}

func arrayFromJSON(r *Record, i int, field schema.Field, node json.RawMessage) error {
	switch schema.FieldType(field.SubType) {
	case schema.Char:
		var s string
		if err := json.Unmarshal(node, &s); err != nil {
			return kindErr(field, err)
		}
		r.slots[i] = slot{set: true, array: NewCharArray(s)}
	case schema.Byte:
		ns, err := jsonIntSlice(node)
		if err != nil {
			return kindErr(field, err)
		}
		vs := make([]int8, len(ns))
		for j, n := range ns {
			vs[j] = int8(n)
		}
		r.slots[i] = slot{set: true, array: NewByteArray(vs)}
	case schema.Int2:
		ns, err := jsonIntSlice(node)
		if err != nil {
			return kindErr(field, err)
		}
		vs := make([]int16, len(ns))
		for j, n := range ns {
			vs[j] = int16(n)
		}
		r.slots[i] = slot{set: true, array: NewInt2Array(vs)}
	case schema.Int4:
		ns, err := jsonIntSlice(node)
		if err != nil {
			return kindErr(field, err)
		}
		vs := make([]int32, len(ns))
		for j, n := range ns {
			vs[j] = int32(n)
		}
		r.slots[i] = slot{set: true, array: NewInt4Array(vs)}
	}
	return nil
}

func modelArrayFromJSON(r *Record, i int, field schema.Field, node json.RawMessage) error {
	var items []json.RawMessage
	if err := json.Unmarshal(node, &items); err != nil {
		return kindErr(field, err)
	}
	arr := NewRecordArray(field.SubType, len(items))
	for j, item := range items {
		child := newRecordAt(r.sch, field.SubType, optionFuncsOf(r.opts)...)
		if err := FromJSON(child, item); err != nil {
			return err
		}
		arr.records[j] = child
	}
	r.slots[i] = slot{set: true, array: arr}
	return nil
}
