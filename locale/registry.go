package locale

import (
	"reflect"
	"strconv"
	"sync"

	"github.com/go-leo/beanutils/convert"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

type registryOptions struct {
	DefaultLocale  Locale
	ApplyLocalized bool
}

type RegistryOption func(o *registryOptions)

func WithDefaultLocale(l Locale) RegistryOption {
	return func(o *registryOptions) {
		o.DefaultLocale = l
	}
}

// ApplyLocalized makes the standard converters treat patterns as localized.
func ApplyLocalized(localized bool) RegistryOption {
	return func(o *registryOptions) {
		o.ApplyLocalized = localized
	}
}

// Registry maps (locale, target type) pairs to locale converters. The
// standard converters of a locale are created on first use. Registry is safe
// for concurrent use and the last registration wins.
type Registry struct {
	mu             sync.RWMutex
	defaultLocale  Locale
	applyLocalized bool
	converters     map[Locale]map[reflect.Type]Converter
}

// NewRegistry returns a registry whose default locale is en-US unless
// WithDefaultLocale says otherwise.
func NewRegistry(opts ...RegistryOption) *Registry {
	o := &registryOptions{DefaultLocale: language.AmericanEnglish}
	for _, opt := range opts {
		opt(o)
	}
	if o.DefaultLocale == language.Und {
		o.DefaultLocale = language.AmericanEnglish
	}
	return &Registry{
		defaultLocale:  o.DefaultLocale,
		applyLocalized: o.ApplyLocalized,
		converters:     make(map[Locale]map[reflect.Type]Converter),
	}
}

func (r *Registry) DefaultLocale() Locale {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.defaultLocale
}

func (r *Registry) SetDefaultLocale(l Locale) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l == language.Und {
		l = language.AmericanEnglish
	}
	r.defaultLocale = l
}

func (r *Registry) ApplyLocalized() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.applyLocalized
}

// SetApplyLocalized changes the flag for converter sets created afterwards.
// Sets that already exist keep their converters.
func (r *Registry) SetApplyLocalized(localized bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.applyLocalized = localized
}

func (r *Registry) Register(c Converter, typ reflect.Type, l Locale) {
	l = r.resolve(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	converters := r.loadLocked(l)
	converters[typ] = c
	zap.L().Debug("locale: register converter", zap.Stringer("type", typ), zap.Stringer("locale", l))
}

// Deregister drops every converter of every locale.
func (r *Registry) Deregister() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.converters = make(map[Locale]map[reflect.Type]Converter)
	zap.L().Debug("locale: deregister all converters")
}

// DeregisterLocale drops the converters of l. The standard set is created
// again on next use.
func (r *Registry) DeregisterLocale(l Locale) {
	l = r.resolve(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.converters, l)
	zap.L().Debug("locale: deregister locale", zap.Stringer("locale", l))
}

func (r *Registry) DeregisterType(typ reflect.Type, l Locale) {
	l = r.resolve(l)
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.loadLocked(l), typ)
	zap.L().Debug("locale: deregister converter", zap.Stringer("type", typ), zap.Stringer("locale", l))
}

// Lookup returns the converter for typ in locale l. Named basic types fall
// back to the converter of their underlying kind.
func (r *Registry) Lookup(typ reflect.Type, l Locale) (Converter, bool) {
	if typ == nil {
		return nil, false
	}
	converters := r.load(r.resolve(l))
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := converters[typ]; ok {
		return c, true
	}
	if baseType, ok := baseTypes[typ.Kind()]; ok {
		c, ok := converters[baseType]
		return c, ok
	}
	return nil, false
}

func (r *Registry) resolve(l Locale) Locale {
	if l == language.Und {
		return r.DefaultLocale()
	}
	return l
}

func (r *Registry) load(l Locale) map[reflect.Type]Converter {
	r.mu.RLock()
	converters, ok := r.converters[l]
	r.mu.RUnlock()
	if ok {
		return converters
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked(l)
}

func (r *Registry) loadLocked(l Locale) map[reflect.Type]Converter {
	if converters, ok := r.converters[l]; ok {
		return converters
	}
	converters := r.create(l)
	r.converters[l] = converters
	return converters
}

// create builds the standard converter set of l. The converters report
// failures as errors.
func (r *Registry) create(l Locale) map[reflect.Type]Converter {
	opts := []Option{WithLocale(l), WithLocalized(r.applyLocalized)}
	converters := map[reflect.Type]Converter{
		decimalType:   NewDecimalConverter(opts...),
		bigIntType:    NewBigIntConverter(opts...),
		stringType:    NewStringConverter(opts...),
		timeType:      NewDateConverter(opts...),
		timestampType: NewTimestampConverter(opts...),
	}
	for kind, typ := range baseTypes {
		if kind == reflect.String {
			continue
		}
		converters[typ] = NewNumberConverter(typ, opts...)
	}
	zap.L().Debug("locale: create converters", zap.Stringer("locale", l), zap.Int("count", len(converters)))
	return converters
}

var baseTypes = map[reflect.Kind]reflect.Type{
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  stringType,
}

// Convert parses value into typ with the default locale.
func (r *Registry) Convert(value string, typ reflect.Type, pattern string) (any, error) {
	return r.ConvertIn(language.Und, value, typ, pattern)
}

// ConvertIn parses value into typ with locale l. Types without a converter
// are handled by the string converter of l.
func (r *Registry) ConvertIn(l Locale, value string, typ reflect.Type, pattern string) (any, error) {
	c, ok := r.Lookup(typ, l)
	if !ok {
		if c, ok = r.Lookup(stringType, l); !ok {
			return nil, convert.NewUnregisteredError(typ, stringType)
		}
	}
	return c.ConvertPattern(typ, value, pattern)
}

func (r *Registry) ConvertStrings(values []string, typ reflect.Type, pattern string) (any, error) {
	return r.ConvertStringsIn(language.Und, values, typ, pattern)
}

// ConvertStringsIn parses every value into the element type of typ, or into
// typ itself when it is not a slice or array type, and returns the slice.
// An array type must be long enough for all values.
func (r *Registry) ConvertStringsIn(l Locale, values []string, typ reflect.Type, pattern string) (any, error) {
	if typ == nil {
		return nil, convert.NewUnsupportedTypeError(nil, reflect.TypeOf(values))
	}
	var out reflect.Value
	switch typ.Kind() {
	case reflect.Slice:
		out = reflect.MakeSlice(typ, len(values), len(values))
	case reflect.Array:
		if len(values) > typ.Len() {
			return nil, convert.NewOverflowError(typ, strconv.Itoa(len(values)))
		}
		out = reflect.New(typ).Elem()
	default:
		out = reflect.MakeSlice(reflect.SliceOf(typ), len(values), len(values))
	}
	elemType := out.Type().Elem()
	for i, value := range values {
		v, err := r.ConvertIn(l, value, elemType, pattern)
		if err != nil {
			return nil, err
		}
		if v != nil {
			out.Index(i).Set(reflect.ValueOf(v))
		}
	}
	return out.Interface(), nil
}

func (r *Registry) ToString(value any, pattern string) (string, error) {
	return r.ToStringIn(language.Und, value, pattern)
}

// ToStringIn formats value with locale l. nil formats as the empty string.
func (r *Registry) ToStringIn(l Locale, value any, pattern string) (string, error) {
	if value == nil {
		return "", nil
	}
	c, ok := r.Lookup(stringType, l)
	if !ok {
		return convert.Format(value)
	}
	s, err := c.ConvertPattern(stringType, value, pattern)
	if err != nil || s == nil {
		return "", err
	}
	return s.(string), nil
}
