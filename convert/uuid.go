package convert

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
)

type UUIDConverter struct {
	Base
}

func NewUUIDConverter(opts ...Option) *UUIDConverter {
	return &UUIDConverter{Base: newBase(newOptions(opts...))}
}

func (c *UUIDConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *UUIDConverter) DefaultType() reflect.Type {
	return uuidType
}

func (c *UUIDConverter) ConvertToString(value any) (string, error) {
	return toString(value)
}

func (c *UUIDConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ != uuidType {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	switch v := value.(type) {
	case [16]byte:
		return uuid.UUID(v), nil
	case []byte:
		if len(v) == 16 {
			return uuid.FromBytes(v)
		}
		id, err := uuid.ParseBytes(v)
		if err != nil {
			return nil, NewParseError(typ, string(v), err)
		}
		return id, nil
	}
	s, err := toString(value)
	if err != nil {
		return nil, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, NewMissingError(typ)
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, NewParseError(typ, s, err)
	}
	return id, nil
}
