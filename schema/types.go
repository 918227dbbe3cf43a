package schema

// FieldType identifies a field's wire shape. The seven variants below are
// the whole of the type system the descriptor grammar can express; there is
// no eighth tag and no versioning of this list.
type FieldType uint8

const (
	// Char is a 1-byte unsigned character.
	Char FieldType = 0x01
	// Byte is a 1-byte signed integer.
	Byte FieldType = 0x02
	// Int2 is a 2-byte signed big-endian integer.
	Int2 FieldType = 0x03
	// Int4 is a 4-byte signed big-endian integer.
	Int4 FieldType = 0x04
	// Array is a homogeneous array of scalars; SubType names the element type.
	Array FieldType = 0x10
	// Model is a nested record; SubType is the referenced model index.
	Model FieldType = 0x11
	// ModelArray is an array of nested records; SubType is the referenced model index.
	ModelArray FieldType = 0x12
)

// IsScalar reports whether t is one of the four fixed-width scalar tags.
func (t FieldType) IsScalar() bool {
	switch t {
	case Char, Byte, Int2, Int4:
		return true
	default:
		return false
	}
}

// String renders a type tag for diagnostics. It is not part of the wire
// format and carries no contractual meaning.
func (t FieldType) String() string {
	switch t {
	case Char:
		return "char"
	case Byte:
		return "byte"
	case Int2:
		return "int2"
	case Int4:
		return "int4"
	case Array:
		return "array"
	case Model:
		return "model"
	case ModelArray:
		return "model_array"
	default:
		return "invalid"
	}
}

// Field is a single named, typed slot declared inside a Model. Aliases are
// unique within a model; that uniqueness is an invariant of a loaded
// Schema, not re-validated on every lookup.
type Field struct {
	Alias   string
	Type    FieldType
	SubType uint8
}

// Model is a named record type: an ordered sequence of fields. Field order
// in Fields is load-bearing: it is the order slots occupy in every record
// of this model, and the order the binary codec walks.
type Model struct {
	Name   string
	Fields []Field
}

// Schema is the immutable, ordered table of models produced by the loader.
// A Schema never changes after Load returns; every Record borrows it
// without synchronization.
type Schema struct {
	models []Model
}

// ModelCount returns the number of models in the schema.
func (s *Schema) ModelCount() int {
	if s == nil {
		return 0
	}
	return len(s.models)
}

// Model returns the model at index. The caller must have already validated
// index (e.g. via FindModel); an out-of-range index panics.
func (s *Schema) Model(index uint8) Model {
	return s.models[index]
}

// FindModel returns the index of the model named name, or false if no such
// model exists. Lookup is linear, same as field lookup.
func (s *Schema) FindModel(name string) (uint8, bool) {
	if s == nil {
		return 0, false
	}
	for i, m := range s.models {
		if m.Name == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// FieldIndex returns the index of the field named alias within the model at
// modelIndex, provided its declared type also matches expected. A type
// mismatch is reported exactly like an unknown alias (not found), never a
// distinct error.
func (s *Schema) FieldIndex(modelIndex uint8, alias string, expected FieldType) (uint8, bool) {
	model := s.models[modelIndex]
	for i, f := range model.Fields {
		if f.Alias == alias && f.Type == expected {
			return uint8(i), true
		}
	}
	return 0, false
}

// newSchema is used only by the loader; fields are never mutated in place
// after this call returns.
func newSchema(models []Model) *Schema {
	return &Schema{models: models}
}
