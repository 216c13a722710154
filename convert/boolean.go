package convert

import (
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// BooleanConverter converts words such as "yes" or "off" and numbers to bool.
type BooleanConverter struct {
	Base
	trueStrings  []string
	falseStrings []string
}

func NewBooleanConverter(opts ...Option) *BooleanConverter {
	o := newOptions(opts...)
	c := &BooleanConverter{Base: newBase(o)}
	for _, s := range o.TrueStrings {
		c.trueStrings = append(c.trueStrings, strings.ToLower(s))
	}
	for _, s := range o.FalseStrings {
		c.falseStrings = append(c.falseStrings, strings.ToLower(s))
	}
	return c
}

func (c *BooleanConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *BooleanConverter) DefaultType() reflect.Type {
	return boolType
}

func (c *BooleanConverter) ConvertToString(value any) (string, error) {
	return toString(value)
}

func (c *BooleanConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ.Kind() != reflect.Bool {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	srcVal := reflect.ValueOf(value)
	switch srcVal.Kind() {
	case reflect.Bool:
		return srcVal.Convert(typ).Interface(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return reflect.ValueOf(srcVal.Int() != 0).Convert(typ).Interface(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return reflect.ValueOf(srcVal.Uint() != 0).Convert(typ).Interface(), nil
	case reflect.Float32, reflect.Float64:
		return reflect.ValueOf(srcVal.Float() != 0).Convert(typ).Interface(), nil
	}
	s, err := toString(value)
	if err != nil {
		return nil, err
	}
	word := strings.ToLower(strings.TrimSpace(s))
	switch {
	case slices.Contains(c.trueStrings, word):
		return reflect.ValueOf(true).Convert(typ).Interface(), nil
	case slices.Contains(c.falseStrings, word):
		return reflect.ValueOf(false).Convert(typ).Interface(), nil
	default:
		return nil, NewParseError(typ, s, strconv.ErrSyntax)
	}
}
