package ktv

import "github.com/ichibown/ktv/schema"

// slot is the tagged-variant storage for one field of a Record. Its kind is
// redundant with the owning model's declared field type: that redundancy
// is deliberate. It catches programming errors in this package itself, the
// same role an untyped-pointer-plus-parallel-tag representation would play,
// without the unchecked casts.
type slot struct {
	set bool

	char  uint8
	byte_ int8
	int2  int16
	int4  int32

	record *Record
	array  *Array
}

// Record is a schema-validated instance of one Model: an ordered sequence
// of slots, one per field, mirroring the model's declared field order.
// A Record borrows its Schema non-owningly for its entire lifetime, and
// owns whichever child Records and Arrays are installed into its MODEL /
// ARRAY / MODEL_ARRAY slots.
type Record struct {
	sch        *schema.Schema
	modelIndex uint8
	slots      []slot
	opts       options
}

// NewRecord constructs an empty record for the named model. It reports
// false if modelName does not exist in sch: the one constructor-level
// NotFound case in this API, handled the same lenient way every other
// lookup failure is.
func NewRecord(sch *schema.Schema, modelName string, opts ...Option) (*Record, bool) {
	idx, ok := sch.FindModel(modelName)
	if !ok {
		return nil, false
	}
	return newRecordAt(sch, idx, opts...), true
}

func newRecordAt(sch *schema.Schema, modelIndex uint8, opts ...Option) *Record {
	model := sch.Model(modelIndex)
	r := &Record{
		sch:        sch,
		modelIndex: modelIndex,
		slots:      make([]slot, len(model.Fields)),
		opts:       buildOptions(opts),
	}
	return r
}

// Schema returns the schema this record was built from.
func (r *Record) Schema() *schema.Schema { return r.sch }

// ModelIndex returns the index of this record's model within its schema.
func (r *Record) ModelIndex() uint8 { return r.modelIndex }

// Model returns this record's model definition.
func (r *Record) Model() schema.Model { return r.sch.Model(r.modelIndex) }

// IsSet reports whether the field at the given zero-based position holds a
// value. It lets a caller distinguish "absent" from "zero" without going
// through the alias-keyed accessors.
func (r *Record) IsSet(fieldIndex int) bool {
	return r.slots[fieldIndex].set
}

// Delete recursively releases any child records and arrays owned by this
// record's MODEL / ARRAY / MODEL_ARRAY slots. Go's garbage collector makes
// this non-essential for memory safety, but the ownership discipline it
// encodes is preserved so a caller that wants deterministic teardown (e.g.
// to drop large byte buffers promptly) has it available.
func (r *Record) Delete() {
	if r == nil {
		return
	}
	model := r.Model()
	for i := range r.slots {
		s := &r.slots[i]
		if !s.set {
			continue
		}
		switch model.Fields[i].Type {
		case schema.Model:
			s.record.Delete()
		case schema.Array, schema.ModelArray:
			s.array.Delete()
		}
		*s = slot{}
	}
}
