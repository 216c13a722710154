package convert

import (
	"reflect"
	"unicode/utf8"
)

// CharacterConverter converts strings and code points to rune.
type CharacterConverter struct {
	Base
}

func NewCharacterConverter(opts ...Option) *CharacterConverter {
	return &CharacterConverter{Base: newBase(newOptions(opts...))}
}

func (c *CharacterConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *CharacterConverter) DefaultType() reflect.Type {
	return runeType
}

// ConvertToString returns the character itself rather than its code point.
func (c *CharacterConverter) ConvertToString(value any) (string, error) {
	if r, ok := value.(rune); ok {
		return string(r), nil
	}
	return toString(value)
}

func (c *CharacterConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ.Kind() != reflect.Int32 {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	tgtVal := reflect.New(typ).Elem()
	srcVal := reflect.ValueOf(value)
	if isNumberKind(srcVal.Kind()) {
		if err := setNumber(tgtVal, srcVal); err != nil {
			return nil, err
		}
		return tgtVal.Interface(), nil
	}
	s, err := toString(value)
	if err != nil {
		return nil, err
	}
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return nil, NewMissingError(typ)
	}
	if r == utf8.RuneError {
		return nil, NewParseError(typ, s, nil)
	}
	tgtVal.SetInt(int64(r))
	return tgtVal.Interface(), nil
}
