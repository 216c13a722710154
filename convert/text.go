package convert

import (
	"encoding"
	"reflect"
)

// TextConverter converts text to any type whose pointer implements
// encoding.TextUnmarshaler, and formats values implementing
// encoding.TextMarshaler.
type TextConverter struct {
	Base
	typ reflect.Type
}

func NewTextConverter(typ reflect.Type, opts ...Option) *TextConverter {
	return &TextConverter{Base: newBase(newOptions(opts...)), typ: typ}
}

func (c *TextConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *TextConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *TextConverter) ConvertToString(value any) (string, error) {
	return toString(value)
}

func (c *TextConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if !IsTextUnmarshaler(typ) {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	var text []byte
	if b, ok := value.([]byte); ok {
		text = b
	} else {
		s, err := toString(value)
		if err != nil {
			return nil, err
		}
		text = []byte(s)
	}
	if typ.Kind() == reflect.Pointer {
		ptr := reflect.New(typ.Elem())
		if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(text); err != nil {
			return nil, NewParseError(typ, string(text), err)
		}
		return ptr.Interface(), nil
	}
	ptr := reflect.New(typ)
	if err := ptr.Interface().(encoding.TextUnmarshaler).UnmarshalText(text); err != nil {
		return nil, NewParseError(typ, string(text), err)
	}
	return ptr.Elem().Interface(), nil
}
