package schema

import (
	"errors"
	"fmt"
)

// ErrMalformedDescriptor is returned when the descriptor bytes do not
// satisfy the grammar below: typically a declared length that would
// read past the end of the input. It is the one error the loader returns;
// the record accessors and the decoder past the loader are lenient.
var ErrMalformedDescriptor = errors.New("ktv: malformed schema descriptor")

// Load parses a binary schema descriptor into an immutable Schema.
//
// Grammar (all lengths are uint8):
//
//	descriptor  := model_count:u8  model{model_count}
//	model       := name_len:u8  name:bytes[name_len]
//	               field_count:u8  field{field_count}
//	field       := alias_len:u8  alias:bytes[alias_len]
//	               type:u8  sub_type:u8
//
// The loader does not validate that a MODEL/MODEL_ARRAY sub_type refers to
// a valid model index: forward references within the same schema are
// permitted by construction, because every model is parsed before any of
// them is used.
func Load(data []byte) (*Schema, error) {
	c := cursor{data: data}
	modelCount, err := c.readU8()
	if err != nil {
		return nil, fmt.Errorf("%w: truncated model count", ErrMalformedDescriptor)
	}
	models := make([]Model, 0, modelCount)
	for i := 0; i < int(modelCount); i++ {
		model, err := c.readModel()
		if err != nil {
			return nil, err
		}
		models = append(models, model)
	}
	return newSchema(models), nil
}

type cursor struct {
	data []byte
	pos  int
}

var errShortDescriptor = errors.New("ktv: unexpected end of descriptor")

func (c *cursor) readU8() (uint8, error) {
	if c.pos >= len(c.data) {
		return 0, errShortDescriptor
	}
	v := c.data[c.pos]
	c.pos++
	return v, nil
}

func (c *cursor) readBytes(n int) ([]byte, error) {
	if n < 0 || c.pos+n > len(c.data) {
		return nil, errShortDescriptor
	}
	b := c.data[c.pos : c.pos+n]
	c.pos += n
	return b, nil
}

func (c *cursor) readModel() (Model, error) {
	nameLen, err := c.readU8()
	if err != nil {
		return Model{}, fmt.Errorf("%w: truncated model name length", ErrMalformedDescriptor)
	}
	nameBytes, err := c.readBytes(int(nameLen))
	if err != nil {
		return Model{}, fmt.Errorf("%w: truncated model name", ErrMalformedDescriptor)
	}
	fieldCount, err := c.readU8()
	if err != nil {
		return Model{}, fmt.Errorf("%w: truncated field count", ErrMalformedDescriptor)
	}
	fields := make([]Field, 0, fieldCount)
	for i := 0; i < int(fieldCount); i++ {
		field, err := c.readField()
		if err != nil {
			return Model{}, err
		}
		fields = append(fields, field)
	}
	return Model{Name: string(nameBytes), Fields: fields}, nil
}

func (c *cursor) readField() (Field, error) {
	aliasLen, err := c.readU8()
	if err != nil {
		return Field{}, fmt.Errorf("%w: truncated field alias length", ErrMalformedDescriptor)
	}
	aliasBytes, err := c.readBytes(int(aliasLen))
	if err != nil {
		return Field{}, fmt.Errorf("%w: truncated field alias", ErrMalformedDescriptor)
	}
	typ, err := c.readU8()
	if err != nil {
		return Field{}, fmt.Errorf("%w: truncated field type", ErrMalformedDescriptor)
	}
	subType, err := c.readU8()
	if err != nil {
		return Field{}, fmt.Errorf("%w: truncated field sub_type", ErrMalformedDescriptor)
	}
	return Field{Alias: string(aliasBytes), Type: FieldType(typ), SubType: subType}, nil
}
