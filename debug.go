package ktv

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ichibown/ktv/schema"
)

// DumpSchema renders every model and field in sch, substituting resolved
// model names for MODEL / MODEL_ARRAY sub_type references. Format is
// purely diagnostic and carries no contractual meaning.
func DumpSchema(sch *schema.Schema) string {
	var b strings.Builder
	for i := 0; i < sch.ModelCount(); i++ {
		model := sch.Model(uint8(i))
		fmt.Fprintf(&b, "model %s (%d)\n", model.Name, i)
		for _, f := range model.Fields {
			fmt.Fprintf(&b, "\t%s: %s\n", f.Alias, resolvedTypeName(sch, f))
		}
	}
	return b.String()
}

func resolvedTypeName(sch *schema.Schema, f schema.Field) string {
	switch f.Type {
	case schema.Model, schema.ModelArray:
		name := "model#" + strconv.Itoa(int(f.SubType))
		if int(f.SubType) < sch.ModelCount() {
			name = sch.Model(f.SubType).Name
		}
		if f.Type == schema.ModelArray {
			return "model_array->" + name
		}
		return "model->" + name
	case schema.Array:
		return "array(" + schema.FieldType(f.SubType).String() + ")"
	default:
		return f.Type.String()
	}
}

// DumpRecord renders every field of r recursively, with tab-indented
// nesting for MODEL and MODEL_ARRAY children. Absent slots are printed as
// "<absent>", mirroring the way a human debugging the wire format would
// want to see the distinction the JSON form erases.
func DumpRecord(r *Record) string {
	var b strings.Builder
	dumpRecordAt(&b, r, 0)
	return b.String()
}

func dumpRecordAt(b *strings.Builder, r *Record, depth int) {
	indent := strings.Repeat("\t", depth)
	model := r.Model()
	fmt.Fprintf(b, "%s%s {\n", indent, model.Name)
	for i, field := range model.Fields {
		s := &r.slots[i]
		fmt.Fprintf(b, "%s\t%s = ", indent, field.Alias)
		if !s.set {
			b.WriteString("<absent>\n")
			continue
		}
		switch field.Type {
		case schema.Char:
			fmt.Fprintf(b, "%d\n", s.char)
		case schema.Byte:
			fmt.Fprintf(b, "%d\n", s.byte_)
		case schema.Int2:
			fmt.Fprintf(b, "%d\n", s.int2)
		case schema.Int4:
			fmt.Fprintf(b, "%d\n", s.int4)
		case schema.Model:
			b.WriteString("\n")
			dumpRecordAt(b, s.record, depth+2)
		case schema.Array:
			fmt.Fprintf(b, "%s\n", dumpArray(s.array))
		case schema.ModelArray:
			b.WriteString("[\n")
			for _, child := range s.array.records {
				if child == nil {
					fmt.Fprintf(b, "%s\t\t<absent>\n", indent)
					continue
				}
				dumpRecordAt(b, child, depth+2)
			}
			fmt.Fprintf(b, "%s\t]\n", indent)
		}
	}
	fmt.Fprintf(b, "%s}\n", indent)
}

func dumpArray(arr *Array) string {
	switch {
	case arr.chars != nil:
		return strconv.Quote(arr.chars.String())
	case arr.bytes != nil:
		return fmt.Sprintf("%v", arr.bytes.Values())
	case arr.int2s != nil:
		return fmt.Sprintf("%v", arr.int2s.Values())
	case arr.int4s != nil:
		return fmt.Sprintf("%v", arr.int4s.Values())
	default:
		return "[]"
	}
}
