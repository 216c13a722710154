package convert

import (
	"fmt"
	"reflect"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"
)

// ArrayConverter converts values to slice or array types, delegating each
// element to an element converter.
//
// A string is split into elements: optional surrounding braces are removed,
// elements are separated by the delimiter or by whitespace, and single or
// double quotes protect a token.
type ArrayConverter struct {
	Base
	typ               reflect.Type
	elem              Converter
	delimiter         rune
	allowedChars      []rune
	onlyFirstToString bool
}

func NewArrayConverter(typ reflect.Type, elem Converter, opts ...Option) *ArrayConverter {
	o := newOptions(opts...)
	if o.ElementConverter != nil {
		elem = o.ElementConverter
	}
	if elem == nil {
		elem = ConverterFunc(func(typ reflect.Type, value any) (any, error) {
			return Default().Convert(value, typ)
		})
	}
	return &ArrayConverter{
		Base:              newBase(o),
		typ:               typ,
		elem:              elem,
		delimiter:         o.Delimiter,
		allowedChars:      o.AllowedChars,
		onlyFirstToString: o.OnlyFirstToString,
	}
}

func (c *ArrayConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *ArrayConverter) DefaultType() reflect.Type {
	return c.typ
}

// ConvertToString formats the first element only, or all elements joined by
// the delimiter when WithOnlyFirstToString(false) was given.
func (c *ArrayConverter) ConvertToString(value any) (string, error) {
	if b, ok := value.([]byte); ok {
		return string(b), nil
	}
	srcVal := reflect.ValueOf(value)
	if srcVal.Kind() != reflect.Slice && srcVal.Kind() != reflect.Array {
		return c.elementString(value)
	}
	if srcVal.Len() == 0 {
		return "", nil
	}
	if c.onlyFirstToString {
		return c.elementString(srcVal.Index(0).Interface())
	}
	items := make([]string, 0, srcVal.Len())
	for i := 0; i < srcVal.Len(); i++ {
		s, err := c.elementString(srcVal.Index(i).Interface())
		if err != nil {
			return "", err
		}
		items = append(items, s)
	}
	return strings.Join(items, string(c.delimiter)), nil
}

func (c *ArrayConverter) elementString(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	s, err := c.elem.Convert(stringType, value)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return toString(s)
}

func (c *ArrayConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ.Kind() != reflect.Slice && typ.Kind() != reflect.Array {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	var items []any
	srcVal := reflect.ValueOf(value)
	switch {
	case srcVal.Kind() == reflect.String:
		s := srcVal.String()
		if typ.Kind() == reflect.Slice && typ.Elem().Kind() == reflect.Uint8 {
			return reflect.ValueOf([]byte(s)).Convert(typ).Interface(), nil
		}
		tokens, err := c.ParseElements(s)
		if err != nil {
			return nil, NewParseError(typ, s, err)
		}
		for _, token := range tokens {
			items = append(items, token)
		}
	case srcVal.Kind() == reflect.Slice || srcVal.Kind() == reflect.Array:
		for i := 0; i < srcVal.Len(); i++ {
			items = append(items, srcVal.Index(i).Interface())
		}
	default:
		items = []any{value}
	}

	var tgtVal reflect.Value
	if typ.Kind() == reflect.Slice {
		tgtVal = reflect.MakeSlice(typ, len(items), len(items))
	} else {
		if len(items) > typ.Len() {
			return nil, NewOverflowError(typ, fmt.Sprintf("%d elements", len(items)))
		}
		tgtVal = reflect.New(typ).Elem()
	}
	elemType := typ.Elem()
	for i, item := range items {
		converted, err := c.elem.Convert(elemType, item)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		if err := assign(tgtVal.Index(i), converted); err != nil {
			return nil, err
		}
	}
	return tgtVal.Interface(), nil
}

// ParseElements splits s into element tokens.
func (c *ArrayConverter) ParseElements(s string) ([]string, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
		s = s[1 : len(s)-1]
	}
	runes := []rune(s)
	var tokens []string
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case r == c.delimiter || unicode.IsSpace(r) || unicode.IsControl(r):
			i++
		case r == '"' || r == '\'':
			j := i + 1
			for j < len(runes) && runes[j] != r && runes[j] != '\n' {
				j++
			}
			tokens = append(tokens, string(runes[i+1:j]))
			i = j + 1
		case c.isWordChar(r):
			j := i
			for j < len(runes) && runes[j] != c.delimiter && c.isWordChar(runes[j]) {
				j++
			}
			tokens = append(tokens, string(runes[i:j]))
			i = j
		default:
			return nil, fmt.Errorf("unexpected character %q at offset %d", r, i)
		}
	}
	return tokens, nil
}

func (c *ArrayConverter) isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || slices.Contains(c.allowedChars, r)
}

// assign stores value into v, converting between kinds where reflect allows it.
func assign(v reflect.Value, value any) error {
	if value == nil {
		v.Set(reflect.Zero(v.Type()))
		return nil
	}
	rv := reflect.ValueOf(value)
	switch {
	case rv.Type().AssignableTo(v.Type()):
		v.Set(rv)
	case rv.Type().ConvertibleTo(v.Type()) && sameKindFamily(rv.Type(), v.Type()):
		v.Set(rv.Convert(v.Type()))
	default:
		return NewUnsupportedTypeError(v.Type(), rv.Type())
	}
	return nil
}

// sameKindFamily guards reflect conversions that would silently reinterpret a
// value, such as int to string.
func sameKindFamily(src, dst reflect.Type) bool {
	if isNumberKind(src.Kind()) || isNumberKind(dst.Kind()) {
		return src.Kind() == dst.Kind()
	}
	if src.Kind() == reflect.String || dst.Kind() == reflect.String {
		return src.Kind() == dst.Kind()
	}
	return true
}
