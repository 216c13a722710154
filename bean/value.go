package bean

import (
	"fmt"
	"reflect"
)

var anyType = reflect.TypeOf((*any)(nil)).Elem()

// indirect follows interfaces and pointers. It stops early at a DynaBean and
// reports false when it meets a nil.
func indirect(v reflect.Value) (reflect.Value, DynaBean, bool) {
	for {
		if !v.IsValid() {
			return v, nil, false
		}
		switch v.Kind() {
		case reflect.Interface:
			if v.IsNil() {
				return v, nil, false
			}
			v = v.Elem()
		case reflect.Pointer:
			if v.IsNil() {
				return v, nil, false
			}
			if db, ok := v.Interface().(DynaBean); ok {
				return v, db, true
			}
			v = v.Elem()
		default:
			return v, nil, true
		}
	}
}

func isNilValue(v reflect.Value) bool {
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// isReference reports whether changes made through v are visible to every
// holder of v.
func isReference(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		return true
	default:
		return false
	}
}

func interfaceOf(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}
	if v.Kind() == reflect.Interface && v.IsNil() {
		return nil
	}
	return v.Interface()
}

// allocate creates an empty value for a nil slot of type typ.
func allocate(typ reflect.Type) (reflect.Value, bool) {
	switch typ.Kind() {
	case reflect.Pointer:
		return reflect.New(typ.Elem()), true
	case reflect.Map:
		return reflect.MakeMap(typ), true
	case reflect.Interface:
		if typ.NumMethod() > 0 {
			return reflect.Value{}, false
		}
		return reflect.ValueOf(map[string]any{}), true
	case reflect.Struct, reflect.Array:
		return reflect.New(typ).Elem(), true
	default:
		return reflect.Value{}, false
	}
}

type coerceFunc func(typ reflect.Type, value any) (reflect.Value, error)

// assign stores value as is. nil becomes the zero value of typ.
func assign(typ reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	val := reflect.ValueOf(value)
	if !val.Type().AssignableTo(typ) {
		return reflect.Value{}, fmt.Errorf("%w: type(%s) -> type(%s)", ErrTypeMismatch, val.Type(), typ)
	}
	return val, nil
}

// valueOf turns a converter result into a value assignable to typ.
func valueOf(result any, typ reflect.Type) (reflect.Value, error) {
	if result == nil {
		return reflect.Zero(typ), nil
	}
	val := reflect.ValueOf(result)
	if val.Type().AssignableTo(typ) {
		return val, nil
	}
	if val.Type().ConvertibleTo(typ) && val.Kind() == typ.Kind() {
		return val.Convert(typ), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: type(%s) -> type(%s)", ErrTypeMismatch, val.Type(), typ)
}
