package bean

import (
	"fmt"
	"reflect"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// DynaBean is a bean whose properties are not fixed by a Go type.
type DynaBean interface {
	// Get returns the value of the property, nil when it does not exist.
	Get(name string) (any, error)
	Set(name string, value any) error
	GetIndexed(name string, index int) (any, error)
	SetIndexed(name string, index int, value any) error
	GetMapped(name string, key string) (any, error)
	SetMapped(name string, key string, value any) error
	// Contains reports whether the mapped property has the key.
	Contains(name string, key string) bool
	// Remove deletes the key from the mapped property.
	Remove(name string, key string)
	// Properties returns the property names in sorted order.
	Properties() []string
	// PropertyType returns the type of the property, nil when it is unknown.
	PropertyType(name string) reflect.Type
}

// LazyDynaBean creates properties the first time they are set. Indexed
// properties grow to fit the index, mapped properties start as
// map[string]any.
//
// LazyDynaBean is not safe for concurrent use.
type LazyDynaBean struct {
	values map[string]any
}

var _ DynaBean = (*LazyDynaBean)(nil)

// NewLazyDynaBean returns a bean holding a copy of values.
func NewLazyDynaBean(values map[string]any) *LazyDynaBean {
	b := &LazyDynaBean{values: make(map[string]any, len(values))}
	for name, value := range values {
		b.values[name] = value
	}
	return b
}

func (b *LazyDynaBean) Get(name string) (any, error) {
	return b.values[name], nil
}

func (b *LazyDynaBean) Set(name string, value any) error {
	if b.values == nil {
		b.values = make(map[string]any)
	}
	b.values[name] = value
	return nil
}

func (b *LazyDynaBean) GetIndexed(name string, index int) (any, error) {
	value, ok := b.values[name]
	if !ok || value == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchProperty, name)
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, fmt.Errorf("%w: %s", ErrNotIndexed, name)
	}
	if index < 0 || index >= rv.Len() {
		return nil, fmt.Errorf("%w: %s[%d], length %d", ErrIndexOutOfRange, name, index, rv.Len())
	}
	return rv.Index(index).Interface(), nil
}

func (b *LazyDynaBean) SetIndexed(name string, index int, value any) error {
	if index < 0 {
		return fmt.Errorf("%w: %s[%d]", ErrIndexOutOfRange, name, index)
	}
	current, ok := b.values[name]
	if !ok || current == nil {
		current = []any{}
	}
	rv := reflect.ValueOf(current)
	switch rv.Kind() {
	case reflect.Slice:
		if index >= rv.Len() {
			grown := reflect.MakeSlice(rv.Type(), index+1, index+1)
			reflect.Copy(grown, rv)
			rv = grown
		}
	case reflect.Array:
		if index >= rv.Len() {
			return fmt.Errorf("%w: %s[%d], length %d", ErrIndexOutOfRange, name, index, rv.Len())
		}
		array := reflect.New(rv.Type()).Elem()
		array.Set(rv)
		rv = array
	default:
		return fmt.Errorf("%w: %s", ErrNotIndexed, name)
	}
	val, err := assign(rv.Type().Elem(), value)
	if err != nil {
		return fmt.Errorf("%s[%d]: %w", name, index, err)
	}
	rv.Index(index).Set(val)
	return b.Set(name, rv.Interface())
}

func (b *LazyDynaBean) GetMapped(name string, key string) (any, error) {
	value, ok := b.values[name]
	if !ok || value == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, fmt.Errorf("%w: %s", ErrNotMapped, name)
	}
	return interfaceOf(rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))), nil
}

func (b *LazyDynaBean) SetMapped(name string, key string, value any) error {
	current, ok := b.values[name]
	if !ok || current == nil {
		current = map[string]any{}
		if err := b.Set(name, current); err != nil {
			return err
		}
	}
	rv := reflect.ValueOf(current)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return fmt.Errorf("%w: %s", ErrNotMapped, name)
	}
	val, err := assign(rv.Type().Elem(), value)
	if err != nil {
		return fmt.Errorf("%s(%s): %w", name, key, err)
	}
	rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), val)
	return nil
}

func (b *LazyDynaBean) Contains(name string, key string) bool {
	rv := reflect.ValueOf(b.values[name])
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return false
	}
	return rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key())).IsValid()
}

func (b *LazyDynaBean) Remove(name string, key string) {
	rv := reflect.ValueOf(b.values[name])
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return
	}
	rv.SetMapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()), reflect.Value{})
}

func (b *LazyDynaBean) Properties() []string {
	names := maps.Keys(b.values)
	slices.Sort(names)
	return names
}

func (b *LazyDynaBean) PropertyType(name string) reflect.Type {
	return reflect.TypeOf(b.values[name])
}

// Map returns a copy of the properties.
func (b *LazyDynaBean) Map() map[string]any {
	return maps.Clone(b.values)
}

func (b *LazyDynaBean) MarshalJSON() ([]byte, error) {
	return jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(b.values)
}
