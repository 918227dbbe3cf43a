package schema_test

import (
	"errors"
	"testing"

	"github.com/ichibown/ktv/schema"
)

// buildDescriptor assembles a binary descriptor from model specs, mirroring
// the loader's grammar without depending on the loader itself.
func buildDescriptor(models ...modelSpec) []byte {
	buf := []byte{byte(len(models))}
	for _, m := range models {
		buf = append(buf, byte(len(m.name)))
		buf = append(buf, m.name...)
		buf = append(buf, byte(len(m.fields)))
		for _, f := range m.fields {
			buf = append(buf, byte(len(f.alias)))
			buf = append(buf, f.alias...)
			buf = append(buf, byte(f.typ), f.subType)
		}
	}
	return buf
}

type modelSpec struct {
	name   string
	fields []fieldSpec
}

type fieldSpec struct {
	alias   string
	typ     schema.FieldType
	subType uint8
}

func TestLoadBasicSchema(t *testing.T) {
	data := buildDescriptor(
		modelSpec{name: "job", fields: []fieldSpec{
			{alias: "title", typ: schema.Array, subType: uint8(schema.Char)},
			{alias: "type", typ: schema.Byte},
		}},
		modelSpec{name: "task", fields: []fieldSpec{
			{alias: "id", typ: schema.Int2},
			{alias: "status", typ: schema.Byte},
			{alias: "time", typ: schema.Array, subType: uint8(schema.Int4)},
		}},
		modelSpec{name: "user", fields: []fieldSpec{
			{alias: "age", typ: schema.Byte},
			{alias: "gender", typ: schema.Byte},
			{alias: "job", typ: schema.Model, subType: 0},
			{alias: "tasks", typ: schema.ModelArray, subType: 1},
			{alias: "name", typ: schema.Array, subType: uint8(schema.Char)},
		}},
	)

	sch, err := schema.Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := sch.ModelCount(); got != 3 {
		t.Fatalf("ModelCount() = %d, want 3", got)
	}

	idx, ok := sch.FindModel("user")
	if !ok || idx != 2 {
		t.Fatalf("FindModel(user) = (%d, %v), want (2, true)", idx, ok)
	}

	model := sch.Model(idx)
	if model.Name != "user" || len(model.Fields) != 5 {
		t.Fatalf("Model(2) = %+v, want user with 5 fields", model)
	}

	fi, ok := sch.FieldIndex(idx, "job", schema.Model)
	if !ok || fi != 2 {
		t.Fatalf("FieldIndex(user, job, Model) = (%d, %v), want (2, true)", fi, ok)
	}
	// Wrong expected type reports NotFound, not a distinct error.
	if _, ok := sch.FieldIndex(idx, "job", schema.ModelArray); ok {
		t.Fatalf("FieldIndex(user, job, ModelArray) should not be found")
	}
	if _, ok := sch.FieldIndex(idx, "nope", schema.Byte); ok {
		t.Fatalf("FieldIndex(user, nope, Byte) should not be found")
	}

	// The "job" field references model index 0 ("job"), declared before
	// "user" (index 2); the loader stores the sub_type exactly as given.
	jobField := model.Fields[2]
	if jobField.SubType != 0 {
		t.Fatalf("job field sub_type = %d, want 0", jobField.SubType)
	}
}

func TestLoadTruncatedDescriptor(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty model count needs a model", []byte{1}},
		{"missing name bytes", []byte{1, 3}},
		{"truncated name bytes", []byte{1, 3, 'a', 'b'}},
		{"truncated field count", []byte{1, 3, 'a', 'b', 'c'}},
		{"truncated field alias", []byte{1, 3, 'a', 'b', 'c', 1, 2}},
		{"truncated field type/subtype", []byte{1, 3, 'a', 'b', 'c', 1, 1, 'x', 0x01}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := schema.Load(tc.data)
			if !errors.Is(err, schema.ErrMalformedDescriptor) {
				t.Fatalf("Load(%v) error = %v, want ErrMalformedDescriptor", tc.data, err)
			}
		})
	}
}

func TestLoadEmptyDescriptorIsZeroModels(t *testing.T) {
	sch, err := schema.Load([]byte{0})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if sch.ModelCount() != 0 {
		t.Fatalf("ModelCount() = %d, want 0", sch.ModelCount())
	}
}
