package convert

import (
	"math/big"
	"reflect"
	"strings"
	"sync"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

type registryOptions struct {
	ThrowException   bool
	DefaultZero      bool
	DefaultArraySize int
}

func (o *registryOptions) apply(opts ...RegistryOption) *registryOptions {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *registryOptions) correct() *registryOptions {
	if o.DefaultArraySize < 0 {
		o.DefaultArraySize = 0
	}
	return o
}

type RegistryOption func(o *registryOptions)

// ThrowException makes the standard converters report failures as errors
// instead of returning defaults.
func ThrowException(throw bool) RegistryOption {
	return func(o *registryOptions) {
		o.ThrowException = throw
	}
}

// DefaultZero selects the zero value (true) or nil (false) as the default of
// the standard converters when ThrowException is off.
func DefaultZero(zero bool) RegistryOption {
	return func(o *registryOptions) {
		o.DefaultZero = zero
	}
}

// DefaultArraySize sets the length of the slice returned by the standard
// slice converters when a conversion fails and ThrowException is off.
func DefaultArraySize(n int) RegistryOption {
	return func(o *registryOptions) {
		o.DefaultArraySize = n
	}
}

// Registry maps target types to converters. It is safe for concurrent use.
// The last registration for a type wins.
type Registry struct {
	mu         sync.RWMutex
	converters map[reflect.Type]Converter
	opts       *registryOptions
}

// NewRegistry returns a registry holding the standard converters. By default
// failed conversions return the zero value of the target type.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := (&registryOptions{DefaultZero: true}).apply(opts...).correct()
	r := &Registry{converters: make(map[reflect.Type]Converter), opts: o}
	r.RegisterDefaults(o.ThrowException, o.DefaultZero, o.DefaultArraySize)
	return r
}

// RegisterDefaults (re)registers the standard converters.
func (r *Registry) RegisterDefaults(throwException bool, defaultZero bool, defaultArraySize int) {
	r.mu.Lock()
	r.opts = &registryOptions{ThrowException: throwException, DefaultZero: defaultZero, DefaultArraySize: defaultArraySize}
	r.mu.Unlock()

	policy := func(typ reflect.Type) []Option {
		switch {
		case throwException:
			return nil
		case !defaultZero:
			return []Option{WithDefault(nil)}
		case typ.Kind() == reflect.Slice:
			return []Option{WithDefaultSize(defaultArraySize)}
		case typ == bigIntType:
			return []Option{WithDefault(big.NewInt(0))}
		default:
			return []Option{WithDefault(reflect.Zero(typ).Interface())}
		}
	}

	scalars := map[reflect.Type]func(opts ...Option) Converter{
		boolType:          func(opts ...Option) Converter { return NewBooleanConverter(opts...) },
		stringType:        func(opts ...Option) Converter { return NewStringConverter(opts...) },
		bigIntType:        func(opts ...Option) Converter { return NewBigIntConverter(opts...) },
		decimalType:       func(opts ...Option) Converter { return NewDecimalConverter(opts...) },
		timeType:          func(opts ...Option) Converter { return NewDateTimeConverter(opts...) },
		timestampType:     func(opts ...Option) Converter { return NewTimestampConverter(opts...) },
		durationType:      func(opts ...Option) Converter { return NewDurationConverter(opts...) },
		protoDurationType: func(opts ...Option) Converter { return NewProtoDurationConverter(opts...) },
		uuidType:          func(opts ...Option) Converter { return NewUUIDConverter(opts...) },
		urlType:           func(opts ...Option) Converter { return NewURLConverter(opts...) },
	}
	for kind, typ := range baseTypes {
		if kind == reflect.Bool || kind == reflect.String {
			continue
		}
		typ := typ
		scalars[typ] = func(opts ...Option) Converter { return NewNumberConverter(typ, opts...) }
	}

	for typ, newConverter := range scalars {
		r.Register(typ, newConverter(policy(typ)...))
		if typ == protoDurationType || typ == timestampType || typ == urlType {
			continue
		}
		sliceType := reflect.SliceOf(typ)
		r.Register(sliceType, NewArrayConverter(sliceType, newConverter(policy(typ)...), policy(sliceType)...))
	}
}

func (r *Registry) Register(typ reflect.Type, c Converter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters[typ] = c
	zap.L().Debug("convert: register converter", zap.Stringer("type", typ))
}

func (r *Registry) Deregister(typ reflect.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.converters, typ)
	zap.L().Debug("convert: deregister converter", zap.Stringer("type", typ))
}

// DeregisterAll removes every converter, then restores the standard set with
// the settings of the last RegisterDefaults call.
func (r *Registry) DeregisterAll() {
	r.mu.Lock()
	r.converters = make(map[reflect.Type]Converter)
	o := *r.opts
	r.mu.Unlock()
	r.RegisterDefaults(o.ThrowException, o.DefaultZero, o.DefaultArraySize)
}

// Lookup returns the converter registered for typ. Named basic types fall
// back to the converter of their underlying kind.
func (r *Registry) Lookup(typ reflect.Type) (Converter, bool) {
	if typ == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.converters[typ]; ok {
		return c, true
	}
	if baseType, ok := baseTypes[typ.Kind()]; ok {
		c, ok := r.converters[baseType]
		return c, ok
	}
	return nil, false
}

// LookupPair returns the converter to use for converting a src value to dst.
// Formatting to a string prefers the converter of the source type.
func (r *Registry) LookupPair(src, dst reflect.Type) (Converter, bool) {
	if dst == nil {
		return nil, false
	}
	if dst.Kind() == reflect.String {
		if c, ok := r.Lookup(src); ok {
			return c, true
		}
		if src != nil && (src.Kind() == reflect.Slice || src.Kind() == reflect.Array) && src.Elem().Kind() != reflect.Uint8 {
			if c, ok := r.Lookup(reflect.SliceOf(stringType)); ok {
				return c, true
			}
		}
		return r.Lookup(dst)
	}
	if c, ok := r.Lookup(dst); ok {
		return c, true
	}
	if src != nil && src.Kind() == reflect.String && IsTextUnmarshaler(dst) {
		return NewTextConverter(dst), true
	}
	if dst.Kind() == reflect.Slice || dst.Kind() == reflect.Array {
		if elem, ok := r.LookupPair(nil, dst.Elem()); ok {
			return NewArrayConverter(dst, elem), true
		}
	}
	return nil, false
}

// Convert converts value to typ.
func (r *Registry) Convert(value any, typ reflect.Type) (any, error) {
	if typ == nil {
		return nil, NewUnsupportedTypeError(nil, reflect.TypeOf(value))
	}
	var src reflect.Type
	if value != nil {
		src = reflect.TypeOf(value)
		if src == typ {
			return value, nil
		}
	}
	if c, ok := r.LookupPair(src, typ); ok {
		converted, err := c.Convert(typ, value)
		if err != nil {
			return nil, err
		}
		if typ.Kind() == reflect.String && converted != nil && reflect.TypeOf(converted) != typ {
			s, err := toString(converted)
			if err != nil {
				return nil, Wrap(typ, value, err)
			}
			return reflect.ValueOf(s).Convert(typ).Interface(), nil
		}
		return converted, nil
	}
	if value == nil {
		return nil, NewMissingError(typ)
	}
	if typ.Kind() == reflect.Pointer {
		elem, err := r.Convert(value, typ.Elem())
		if err != nil {
			return nil, err
		}
		ptr := reflect.New(typ.Elem())
		if err := assign(ptr.Elem(), elem); err != nil {
			return nil, err
		}
		return ptr.Interface(), nil
	}
	if s, ok := stringOf(value); ok && isJSONTarget(typ) {
		ptr := reflect.New(typ)
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(s, ptr.Interface()); err != nil {
			return nil, NewParseError(typ, s, err)
		}
		return ptr.Elem().Interface(), nil
	}
	srcVal := reflect.ValueOf(value)
	if src.AssignableTo(typ) {
		out := reflect.New(typ).Elem()
		out.Set(srcVal)
		return out.Interface(), nil
	}
	if src.ConvertibleTo(typ) && sameKindFamily(src, typ) {
		return srcVal.Convert(typ).Interface(), nil
	}
	return nil, NewUnregisteredError(typ, src)
}

func isJSONTarget(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Struct, reflect.Map, reflect.Slice, reflect.Array:
		return true
	default:
		return false
	}
}

func (r *Registry) ConvertString(value string, typ reflect.Type) (any, error) {
	return r.Convert(value, typ)
}

// ConvertStrings converts values to typ when typ is a slice or array type,
// otherwise to a slice of typ.
func (r *Registry) ConvertStrings(values []string, typ reflect.Type) (any, error) {
	if typ == nil {
		return nil, NewUnsupportedTypeError(nil, reflect.TypeOf(values))
	}
	if typ.Kind() != reflect.Slice && typ.Kind() != reflect.Array {
		typ = reflect.SliceOf(typ)
	}
	return r.Convert(values, typ)
}

// ToString formats value. Slices and arrays are formatted by their first
// element, nil becomes the empty string.
func (r *Registry) ToString(value any) (string, error) {
	if value == nil {
		return "", nil
	}
	s, err := r.Convert(value, stringType)
	if err != nil {
		return "", err
	}
	if s == nil {
		return "", nil
	}
	return s.(string), nil
}

// Types returns the registered target types ordered by name.
func (r *Registry) Types() []reflect.Type {
	r.mu.RLock()
	types := make([]reflect.Type, 0, len(r.converters))
	for typ := range r.converters {
		types = append(types, typ)
	}
	r.mu.RUnlock()
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return strings.Compare(a.String(), b.String())
	})
	return types
}

// AsConverter exposes the registry as a Converter.
func (r *Registry) AsConverter() Converter {
	return ConverterFunc(func(typ reflect.Type, value any) (any, error) {
		return r.Convert(value, typ)
	})
}

// To converts value to T using r.
func To[T any](r *Registry, value any) (T, error) {
	var zero T
	v, err := r.Convert(value, reflect.TypeOf((*T)(nil)).Elem())
	if err != nil || v == nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, NewUnsupportedTypeError(reflect.TypeOf(zero), reflect.TypeOf(v))
	}
	return t, nil
}
