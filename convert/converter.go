package convert

import (
	"reflect"

	"go.uber.org/zap"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// Converter converts a value into an instance of the requested type.
//
// Converting a value that already has the requested type returns it unchanged.
type Converter interface {
	Convert(typ reflect.Type, value any) (any, error)
}

type ConverterFunc func(typ reflect.Type, value any) (any, error)

func (f ConverterFunc) Convert(typ reflect.Type, value any) (any, error) {
	return f(typ, value)
}

// Strategy holds the type specific parts of a converter. Base drives a
// Strategy through the shared missing, identity and default handling.
type Strategy interface {
	// DefaultType is used when Convert is called with a nil type.
	DefaultType() reflect.Type
	ConvertToType(typ reflect.Type, value any) (any, error)
	ConvertToString(value any) (string, error)
}

// Base implements the default value policy shared by all converters.
type Base struct {
	UseDefault bool
	// Default is the fallback value, or a DefaultFunc.
	Default any
}

func newBase(o *options) Base {
	return Base{UseDefault: o.UseDefault, Default: o.Default}
}

// Do converts value to typ using s.
func (b Base) Do(typ reflect.Type, value any, s Strategy) (any, error) {
	if typ == nil {
		typ = s.DefaultType()
	}
	value = normalize(typ, value)
	if value == nil {
		return b.HandleMissing(typ, s)
	}
	if typ.Kind() == reflect.String {
		str, err := s.ConvertToString(value)
		if err != nil {
			return b.HandleError(typ, value, err, s)
		}
		if typ == stringType {
			return str, nil
		}
		return reflect.ValueOf(str).Convert(typ).Interface(), nil
	}
	if reflect.TypeOf(value) == typ {
		return value, nil
	}
	result, err := s.ConvertToType(typ, value)
	if err != nil {
		return b.HandleError(typ, value, err, s)
	}
	return result, nil
}

// HandleMissing is called when the value to convert is nil.
func (b Base) HandleMissing(typ reflect.Type, s Strategy) (any, error) {
	if !b.UseDefault {
		return nil, NewMissingError(typ)
	}
	return b.defaultValue(typ, s), nil
}

// HandleError is called when a conversion fails.
func (b Base) HandleError(typ reflect.Type, value any, err error, s Strategy) (any, error) {
	if !b.UseDefault {
		return nil, Wrap(typ, value, err)
	}
	zap.L().Debug("convert: conversion failed, using default value",
		zap.Stringer("type", typ),
		zap.Any("value", value),
		zap.Error(err))
	return b.defaultValue(typ, s), nil
}

// DefaultValue returns the configured default for typ without converting it.
func (b Base) DefaultValue(typ reflect.Type) any {
	if !b.UseDefault {
		return nil
	}
	if f, ok := b.Default.(DefaultFunc); ok {
		return f(typ)
	}
	return b.Default
}

func (b Base) defaultValue(typ reflect.Type, s Strategy) any {
	value := b.DefaultValue(typ)
	if value == nil || typ == nil || reflect.TypeOf(value) == typ {
		return value
	}
	if typ.Kind() == reflect.String {
		if str, err := s.ConvertToString(value); err == nil {
			return reflect.ValueOf(str).Convert(typ).Interface()
		}
		return value
	}
	if converted, err := s.ConvertToType(typ, value); err == nil {
		return converted
	}
	return value
}

var stringType = reflect.TypeOf("")

// normalize dereferences pointers, unwraps protobuf wrapper messages and picks
// the first element of a slice when a non string scalar is requested.
func normalize(typ reflect.Type, value any) any {
	if value == nil {
		return nil
	}
	if reflect.TypeOf(value) == typ {
		return value
	}
	switch v := value.(type) {
	case *wrapperspb.BoolValue:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.Int32Value:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.Int64Value:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.UInt32Value:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.UInt64Value:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.FloatValue:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.DoubleValue:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.StringValue:
		return unwrap(v, func() any { return v.GetValue() })
	case *wrapperspb.BytesValue:
		return unwrap(v, func() any { return v.GetValue() })
	case *structpb.Value:
		if v == nil {
			return nil
		}
		return normalize(typ, v.AsInterface())
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		if typ.Kind() == reflect.Pointer {
			return value
		}
		if _, ok := value.(proto.Message); ok {
			return value
		}
		if rv.Type() == bigIntType || rv.Type() == urlType {
			return value
		}
		return normalize(typ, rv.Elem().Interface())
	case reflect.Slice, reflect.Array:
		if typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array || typ.Kind() == reflect.String {
			return value
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return value
		}
		if rv.Len() == 0 {
			return nil
		}
		return normalize(typ, rv.Index(0).Interface())
	}
	return value
}

func unwrap[T any](msg *T, get func() any) any {
	if msg == nil {
		return nil
	}
	return get()
}
