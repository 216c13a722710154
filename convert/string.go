package convert

import (
	"encoding"
	"fmt"
	"reflect"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// StringConverter converts any value to its textual form.
type StringConverter struct {
	Base
}

func NewStringConverter(opts ...Option) *StringConverter {
	return &StringConverter{Base: newBase(newOptions(opts...))}
}

func (c *StringConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *StringConverter) DefaultType() reflect.Type {
	return stringType
}

func (c *StringConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
}

func (c *StringConverter) ConvertToString(value any) (string, error) {
	return toString(value)
}

func toString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case time.Time:
		return v.Format(time.RFC3339Nano), nil
	case *timestamppb.Timestamp:
		if v == nil {
			return "", nil
		}
		return v.AsTime().Format(time.RFC3339Nano), nil
	case *durationpb.Duration:
		if v == nil {
			return "", nil
		}
		return v.AsDuration().String(), nil
	case encoding.TextMarshaler:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", nil
		}
		text, err := v.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	case fmt.Stringer:
		if rv := reflect.ValueOf(v); rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", nil
		}
		return v.String(), nil
	}

	if s, err := cast.ToStringE(value); err == nil {
		return s, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return "", nil
		}
		return toString(rv.Elem().Interface())
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return jsoniter.ConfigCompatibleWithStandardLibrary.MarshalToString(value)
	}
	if baseType, ok := baseTypes[rv.Kind()]; ok {
		return cast.ToStringE(rv.Convert(baseType).Interface())
	}
	return "", NewUnsupportedTypeError(stringType, rv.Type())
}

// Format returns the text StringConverter produces for value.
func Format(value any) (string, error) {
	return toString(value)
}
