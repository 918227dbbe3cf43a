package ktv_test

import (
	"testing"

	"github.com/ichibown/ktv/schema"
)

// testSchema builds the user/job/task schema used throughout its
// concrete scenarios: job (index 0), task (index 1), user (index 2).
func testSchema(t *testing.T) *schema.Schema {
	t.Helper()
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
	return sch
}

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
