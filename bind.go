package ktv

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/ichibown/ktv/schema"
)

// Struct binding is sugar over the accessor API: it lets a caller populate
// a Record from a tagged Go struct, or the reverse, instead of calling
// Set*/Get* once per field by hand. The struct shape is resolved once per
// reflect.Type and cached.
var structCache sync.Map

type structDescriptor struct {
	fields map[string]structField
}

type structField struct {
	index []int
}

func describeStruct(t reflect.Type) *structDescriptor {
	if v, ok := structCache.Load(t); ok {
		return v.(*structDescriptor)
	}
	desc := &structDescriptor{fields: make(map[string]structField)}
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.PkgPath != "" {
			continue
		}
		tag := f.Tag.Get("ktv")
		if tag == "-" {
			continue
		}
		alias := f.Name
		if tag != "" {
			alias = tag
		}
		desc.fields[alias] = structField{index: f.Index}
	}
	structCache.Store(t, desc)
	return desc
}

// Bind copies exported fields of the struct pointed to by src into r,
// matching each field's `ktv:"alias"` tag (or its Go name, if untagged) to
// a field alias in r's model. Fields with no schema counterpart, or whose
// Go type doesn't convert cleanly to the declared wire type, are skipped
// silently, the same lenient policy every other accessor in this package
// follows.
func Bind(r *Record, src interface{}) error {
	v := reflect.ValueOf(src)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("ktv: Bind requires a non-nil struct pointer, got %T", src)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("ktv: Bind requires a struct pointer, got %T", src)
	}
	desc := describeStruct(v.Type())
	model := r.Model()
	for i, field := range model.Fields {
		sf, ok := desc.fields[field.Alias]
		if !ok {
			continue
		}
		fv := v.FieldByIndex(sf.index)
		bindField(r, i, field, fv)
	}
	return nil
}

func bindField(r *Record, i int, field schema.Field, fv reflect.Value) {
	switch field.Type {
	case schema.Char:
		if n, ok := asInt(fv); ok {
			r.SetChar(field.Alias, uint8(n))
		}
	case schema.Byte:
		if n, ok := asInt(fv); ok {
			r.SetByte(field.Alias, int8(n))
		}
	case schema.Int2:
		if n, ok := asInt(fv); ok {
			r.SetInt2(field.Alias, int16(n))
		}
	case schema.Int4:
		if n, ok := asInt(fv); ok {
			r.SetInt4(field.Alias, int32(n))
		}
	case schema.Array:
		bindArrayField(r, field, fv)
	}
}

func asInt(v reflect.Value) (int64, bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint()), true
	default:
		return 0, false
	}
}

func bindArrayField(r *Record, field schema.Field, fv reflect.Value) {
	switch schema.FieldType(field.SubType) {
	case schema.Char:
		if fv.Kind() == reflect.String {
			r.SetArray(field.Alias, NewCharArray(fv.String()))
		}
	case schema.Byte:
		if fv.Kind() == reflect.Slice {
			vals := make([]int8, fv.Len())
			for j := range vals {
				n, ok := asInt(fv.Index(j))
				if !ok {
					return
				}
				vals[j] = int8(n)
			}
			r.SetArray(field.Alias, NewByteArray(vals))
		}
	case schema.Int2:
		if fv.Kind() == reflect.Slice {
			vals := make([]int16, fv.Len())
			for j := range vals {
				n, ok := asInt(fv.Index(j))
				if !ok {
					return
				}
				vals[j] = int16(n)
			}
			r.SetArray(field.Alias, NewInt2Array(vals))
		}
	case schema.Int4:
		if fv.Kind() == reflect.Slice {
			vals := make([]int32, fv.Len())
			for j := range vals {
				n, ok := asInt(fv.Index(j))
				if !ok {
					return
				}
				vals[j] = int32(n)
			}
			r.SetArray(field.Alias, NewInt4Array(vals))
		}
	}
}

// Unmarshal is the dual of Bind: it copies r's populated scalar and
// scalar-array fields into the exported fields of the struct pointed to
// by dst. Absent slots and fields with no schema counterpart are left at
// their Go zero value.
func Unmarshal(r *Record, dst interface{}) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return fmt.Errorf("ktv: Unmarshal requires a non-nil struct pointer, got %T", dst)
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("ktv: Unmarshal requires a struct pointer, got %T", dst)
	}
	desc := describeStruct(v.Type())
	model := r.Model()
	for i, field := range model.Fields {
		if !r.slots[i].set {
			continue
		}
		sf, ok := desc.fields[field.Alias]
		if !ok {
			continue
		}
		unmarshalField(r, i, field, v.FieldByIndex(sf.index))
	}
	return nil
}

func unmarshalField(r *Record, i int, field schema.Field, fv reflect.Value) {
	if !fv.CanSet() {
		return
	}
	s := &r.slots[i]
	switch field.Type {
	case schema.Char:
		setInt(fv, int64(s.char))
	case schema.Byte:
		setInt(fv, int64(s.byte_))
	case schema.Int2:
		setInt(fv, int64(s.int2))
	case schema.Int4:
		setInt(fv, int64(s.int4))
	case schema.Array:
		unmarshalArrayField(s.array, fv)
	}
}

func setInt(v reflect.Value, n int64) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v.SetUint(uint64(n))
	}
}

func unmarshalArrayField(arr *Array, fv reflect.Value) {
	switch {
	case arr.chars != nil && fv.Kind() == reflect.String:
		fv.SetString(arr.String())
	case arr.bytes != nil && fv.Kind() == reflect.Slice:
		vals := arr.Bytes()
		out := reflect.MakeSlice(fv.Type(), len(vals), len(vals))
		for i, n := range vals {
			setInt(out.Index(i), int64(n))
		}
		fv.Set(out)
	case arr.int2s != nil && fv.Kind() == reflect.Slice:
		vals := arr.Int2s()
		out := reflect.MakeSlice(fv.Type(), len(vals), len(vals))
		for i, n := range vals {
			setInt(out.Index(i), int64(n))
		}
		fv.Set(out)
	case arr.int4s != nil && fv.Kind() == reflect.Slice:
		vals := arr.Int4s()
		out := reflect.MakeSlice(fv.Type(), len(vals), len(vals))
		for i, n := range vals {
			setInt(out.Index(i), int64(n))
		}
		fv.Set(out)
	}
}
