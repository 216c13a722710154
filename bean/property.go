package bean

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/gox/reflectx"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// PropertyUtils reads and writes bean properties without converting values.
// A bean is a pointer to a struct, a map with string keys or a DynaBean.
// Struct beans passed by value can be read but not written.
type PropertyUtils struct {
	opts *options
}

func NewPropertyUtils(opts ...Option) *PropertyUtils {
	return &PropertyUtils{opts: (&options{}).apply(opts...).correct()}
}

func (p *PropertyUtils) converters() *convert.Registry {
	if p.opts.Converters != nil {
		return p.opts.Converters
	}
	return convert.Default()
}

// GetProperty is GetNestedProperty.
func (p *PropertyUtils) GetProperty(bean any, name string) (any, error) {
	return p.GetNestedProperty(bean, name)
}

// GetNestedProperty evaluates a full property expression such as
// "orders[0].lines(sku).price".
func (p *PropertyUtils) GetNestedProperty(bean any, name string) (any, error) {
	val, _, err := p.getNested(bean, name)
	if err != nil {
		return nil, err
	}
	return interfaceOf(val), nil
}

func (p *PropertyUtils) GetSimpleProperty(bean any, name string) (any, error) {
	v, err := p.root(bean, name)
	if err != nil {
		return nil, err
	}
	if err := p.checkSimple(name); err != nil {
		return nil, err
	}
	val, _, err := p.getSimple(v, name)
	if err != nil {
		return nil, err
	}
	return interfaceOf(val), nil
}

func (p *PropertyUtils) GetIndexedProperty(bean any, name string, index int) (any, error) {
	v, err := p.root(bean, name)
	if err != nil {
		return nil, err
	}
	if err := p.checkSimple(name); err != nil {
		return nil, err
	}
	val, _, err := p.getSimple(v, name)
	if err != nil {
		return nil, err
	}
	if val, _, err = p.getIndex(val, index, name); err != nil {
		return nil, err
	}
	return interfaceOf(val), nil
}

func (p *PropertyUtils) GetMappedProperty(bean any, name string, key string) (any, error) {
	v, err := p.root(bean, name)
	if err != nil {
		return nil, err
	}
	if err := p.checkSimple(name); err != nil {
		return nil, err
	}
	val, _, err := p.getSimple(v, name)
	if err != nil {
		return nil, err
	}
	if val, _, err = p.getKey(val, key, name); err != nil {
		return nil, err
	}
	return interfaceOf(val), nil
}

// SetProperty is SetNestedProperty.
func (p *PropertyUtils) SetProperty(bean any, name string, value any) error {
	return p.SetNestedProperty(bean, name, value)
}

// SetNestedProperty stores value at the end of a property expression. Nil
// pointers and maps on the way are allocated. value must be assignable to
// the property.
func (p *PropertyUtils) SetNestedProperty(bean any, name string, value any) error {
	return p.setNested(bean, name, value, assign)
}

func (p *PropertyUtils) SetSimpleProperty(bean any, name string, value any) error {
	v, err := p.root(bean, name)
	if err != nil {
		return err
	}
	if err := p.checkSimple(name); err != nil {
		return err
	}
	return p.setSimple(v, name, value, assign)
}

func (p *PropertyUtils) SetIndexedProperty(bean any, name string, index int, value any) error {
	v, err := p.root(bean, name)
	if err != nil {
		return err
	}
	if err := p.checkSimple(name); err != nil {
		return err
	}
	return p.setIndexed(v, name, index, value, assign)
}

func (p *PropertyUtils) SetMappedProperty(bean any, name string, key string, value any) error {
	v, err := p.root(bean, name)
	if err != nil {
		return err
	}
	if err := p.checkSimple(name); err != nil {
		return err
	}
	return p.setMapped(v, name, key, value, assign)
}

// GetPropertyType returns the declared type of the property the expression
// points at. Properties of maps and DynaBeans report their element type.
func (p *PropertyUtils) GetPropertyType(bean any, name string) (reflect.Type, error) {
	_, typ, err := p.getNested(bean, name)
	return typ, err
}

// IsReadable reports whether GetNestedProperty could read the expression.
func (p *PropertyUtils) IsReadable(bean any, name string) bool {
	prop, parent, ok := p.lastProperty(bean, name)
	if !ok {
		return false
	}
	if prop == nil {
		return parent.IsValid()
	}
	return prop.Readable()
}

// IsWriteable reports whether SetNestedProperty could write the expression.
func (p *PropertyUtils) IsWriteable(bean any, name string) bool {
	prop, parent, ok := p.lastProperty(bean, name)
	if !ok {
		return false
	}
	if prop == nil {
		return parent.IsValid()
	}
	if prop.Setter != nil {
		_, ok := receiver(parent, prop.Setter, false)
		return ok
	}
	return prop.Writeable() && parent.CanAddr()
}

// lastProperty walks to the bean holding the last segment of name. prop is
// nil when that bean is a map or a DynaBean.
func (p *PropertyUtils) lastProperty(bean any, name string) (*_PropertyInfo, reflect.Value, bool) {
	v, err := p.root(bean, name)
	if err != nil {
		return nil, reflect.Value{}, false
	}
	resolver := p.opts.Resolver
	for expr := name; ; {
		segment, rest := resolver.Next(expr), resolver.Remove(expr)
		if rest == "" {
			property := resolver.Property(segment)
			if property == "" {
				return nil, v, true
			}
			parent, db, ok := indirect(v)
			switch {
			case !ok:
				return nil, reflect.Value{}, false
			case db != nil:
				return nil, parent, true
			case parent.Kind() == reflect.Map:
				return nil, parent, true
			case parent.Kind() == reflect.Struct:
				prop := _CachedBeanInfo(parent.Type(), p.opts).FindProperty(property)
				return prop, parent, prop != nil
			default:
				return nil, reflect.Value{}, false
			}
		}
		if v, _, err = p.getSegment(v, segment); err != nil || isNilValue(v) {
			return nil, reflect.Value{}, false
		}
		expr = rest
	}
}

// Describe returns every readable property of bean. Fields tagged omitempty
// are left out when empty.
func (p *PropertyUtils) Describe(bean any) (map[string]any, error) {
	if bean == nil {
		return nil, ErrNilBean
	}
	v, db, ok := indirect(reflect.ValueOf(bean))
	if !ok {
		return nil, ErrNilBean
	}
	values := make(map[string]any)
	if db != nil {
		for _, name := range db.Properties() {
			value, err := db.Get(name)
			if err != nil {
				return nil, err
			}
			values[name] = value
		}
		return values, nil
	}
	switch v.Kind() {
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			key, err := p.converters().ToString(iter.Key().Interface())
			if err != nil {
				return nil, err
			}
			values[key] = interfaceOf(iter.Value())
		}
		return values, nil
	case reflect.Struct:
		for _, prop := range _CachedBeanInfo(v.Type(), p.opts).Properties {
			if !prop.Readable() {
				continue
			}
			val, err := prop.GetValue(v)
			if errors.Is(err, ErrNilNested) {
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("%s: %w", prop.Label, err)
			}
			if prop.OmitEmpty && reflectx.IsEmptyValue(val) {
				continue
			}
			values[prop.Label] = interfaceOf(val)
		}
		return values, nil
	default:
		return nil, fmt.Errorf("%w: %T is not a bean", ErrNotReadable, bean)
	}
}

// CopyProperties copies every readable property of orig to the writeable
// property of dest with the same name. Values that are not assignable are
// skipped.
func (p *PropertyUtils) CopyProperties(dest, orig any) error {
	if dest == nil || orig == nil {
		return ErrNilBean
	}
	values, err := p.Describe(orig)
	if err != nil {
		return err
	}
	for _, name := range sortedKeys(values) {
		if !p.IsWriteable(dest, name) {
			continue
		}
		err := p.setNested(dest, name, values[name], assign)
		if errors.Is(err, ErrTypeMismatch) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := maps.Keys(m)
	slices.Sort(keys)
	return keys
}

func (p *PropertyUtils) root(bean any, name string) (reflect.Value, error) {
	if bean == nil {
		return reflect.Value{}, ErrNilBean
	}
	if name == "" {
		return reflect.Value{}, fmt.Errorf("%w: empty expression", ErrInvalidExpression)
	}
	v := reflect.ValueOf(bean)
	if isNilValue(v) {
		return reflect.Value{}, ErrNilBean
	}
	return v, nil
}

func (p *PropertyUtils) checkSimple(name string) error {
	if strings.ContainsAny(name, ".[]()") {
		return fmt.Errorf("%w: %q is not a simple property name", ErrInvalidExpression, name)
	}
	return nil
}

func (p *PropertyUtils) getNested(bean any, name string) (reflect.Value, reflect.Type, error) {
	v, err := p.root(bean, name)
	if err != nil {
		return reflect.Value{}, nil, err
	}
	resolver := p.opts.Resolver
	var typ reflect.Type
	for expr := name; ; {
		segment := resolver.Next(expr)
		if v, typ, err = p.getSegment(v, segment); err != nil {
			return reflect.Value{}, nil, err
		}
		if expr = resolver.Remove(expr); expr == "" {
			return v, typ, nil
		}
		if isNilValue(v) {
			return reflect.Value{}, nil, fmt.Errorf("%w: %q in %q", ErrNilNested, segment, name)
		}
	}
}

// getSegment reads one segment. It returns the value, which is invalid for a
// missing map key, and the declared type of the slot holding it.
func (p *PropertyUtils) getSegment(v reflect.Value, segment string) (reflect.Value, reflect.Type, error) {
	resolver := p.opts.Resolver
	name := resolver.Property(segment)
	indexed, mapped := resolver.IsIndexed(segment), resolver.IsMapped(segment)
	if name == "" && !indexed && !mapped {
		return reflect.Value{}, nil, fmt.Errorf("%w: empty segment in %q", ErrInvalidExpression, segment)
	}
	cur, typ := v, v.Type()
	if name != "" {
		var err error
		if cur, typ, err = p.getSimple(v, name); err != nil {
			return reflect.Value{}, nil, err
		}
	}
	switch {
	case indexed:
		index, err := resolver.Index(segment)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return p.getIndex(cur, index, segment)
	case mapped:
		key, err := resolver.Key(segment)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return p.getKey(cur, key, segment)
	default:
		return cur, typ, nil
	}
}

func (p *PropertyUtils) getSimple(v reflect.Value, name string) (reflect.Value, reflect.Type, error) {
	v, db, ok := indirect(v)
	if !ok {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	if db != nil {
		value, err := db.Get(name)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		typ := db.PropertyType(name)
		if typ == nil {
			typ = anyType
		}
		return reflect.ValueOf(value), typ, nil
	}
	switch v.Kind() {
	case reflect.Map:
		key, err := p.mapKey(v.Type(), name)
		if err != nil {
			return reflect.Value{}, nil, err
		}
		return v.MapIndex(key), v.Type().Elem(), nil
	case reflect.Struct:
		prop := _CachedBeanInfo(v.Type(), p.opts).FindProperty(name)
		if prop == nil {
			return reflect.Value{}, nil, fmt.Errorf("%w: %s on %s", ErrNoSuchProperty, name, v.Type())
		}
		val, err := prop.GetValue(v)
		return val, prop.Type, err
	default:
		return reflect.Value{}, nil, fmt.Errorf("%w: %s on %s", ErrNoSuchProperty, name, v.Type())
	}
}

func (p *PropertyUtils) getIndex(v reflect.Value, index int, name string) (reflect.Value, reflect.Type, error) {
	v, _, ok := indirect(v)
	if !ok {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	switch v.Kind() {
	case reflect.Slice, reflect.Array:
		if index < 0 || index >= v.Len() {
			return reflect.Value{}, nil, fmt.Errorf("%w: %s, index %d, length %d", ErrIndexOutOfRange, name, index, v.Len())
		}
		return v.Index(index), v.Type().Elem(), nil
	default:
		return reflect.Value{}, nil, fmt.Errorf("%w: %s is %s", ErrNotIndexed, name, v.Type())
	}
}

func (p *PropertyUtils) getKey(v reflect.Value, key string, name string) (reflect.Value, reflect.Type, error) {
	v, _, ok := indirect(v)
	if !ok {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	if v.Kind() != reflect.Map {
		return reflect.Value{}, nil, fmt.Errorf("%w: %s is %s", ErrNotMapped, name, v.Type())
	}
	keyVal, err := p.mapKey(v.Type(), key)
	if err != nil {
		return reflect.Value{}, nil, err
	}
	return v.MapIndex(keyVal), v.Type().Elem(), nil
}

// mapKey builds a key of mapType from its string form.
func (p *PropertyUtils) mapKey(mapType reflect.Type, key string) (reflect.Value, error) {
	keyType := mapType.Key()
	if keyType.Kind() == reflect.String {
		return reflect.ValueOf(key).Convert(keyType), nil
	}
	result, err := p.converters().ConvertString(key, keyType)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: key %q for %s, %v", ErrNotMapped, key, mapType, err)
	}
	keyVal, err := valueOf(result, keyType)
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: key %q for %s, %v", ErrNotMapped, key, mapType, err)
	}
	return keyVal, nil
}

func (p *PropertyUtils) setNested(bean any, name string, value any, coerce coerceFunc) error {
	v, err := p.root(bean, name)
	if err != nil {
		return err
	}
	return p.setPath(v, name, value, coerce)
}

func (p *PropertyUtils) setPath(v reflect.Value, expr string, value any, coerce coerceFunc) error {
	resolver := p.opts.Resolver
	segment, rest := resolver.Next(expr), resolver.Remove(expr)
	if rest == "" {
		return p.setSegment(v, segment, value, coerce)
	}
	return p.update(v, segment, func(child reflect.Value) error {
		return p.setPath(child, rest, value, coerce)
	})
}

func (p *PropertyUtils) setSegment(v reflect.Value, segment string, value any, coerce coerceFunc) error {
	resolver := p.opts.Resolver
	name := resolver.Property(segment)
	switch {
	case resolver.IsIndexed(segment):
		index, err := resolver.Index(segment)
		if err != nil {
			return err
		}
		if name == "" {
			return p.setIndex(v, index, segment, value, coerce)
		}
		return p.setIndexed(v, name, index, value, coerce)
	case resolver.IsMapped(segment):
		key, err := resolver.Key(segment)
		if err != nil {
			return err
		}
		if name == "" {
			return p.setKey(v, key, segment, value, coerce)
		}
		return p.setMapped(v, name, key, value, coerce)
	case name == "":
		return fmt.Errorf("%w: empty segment in %q", ErrInvalidExpression, segment)
	default:
		return p.setSimple(v, name, value, coerce)
	}
}

func (p *PropertyUtils) setIndexed(v reflect.Value, name string, index int, value any, coerce coerceFunc) error {
	if _, db, ok := indirect(v); ok && db != nil {
		elemType := anyType
		if typ := db.PropertyType(name); typ != nil && (typ.Kind() == reflect.Slice || typ.Kind() == reflect.Array) {
			elemType = typ.Elem()
		}
		val, err := coerce(elemType, value)
		if err != nil {
			return err
		}
		return db.SetIndexed(name, index, interfaceOf(val))
	}
	return p.update(v, name, func(child reflect.Value) error {
		return p.setIndex(child, index, name, value, coerce)
	})
}

func (p *PropertyUtils) setMapped(v reflect.Value, name string, key string, value any, coerce coerceFunc) error {
	if _, db, ok := indirect(v); ok && db != nil {
		elemType := anyType
		if typ := db.PropertyType(name); typ != nil && typ.Kind() == reflect.Map {
			elemType = typ.Elem()
		}
		val, err := coerce(elemType, value)
		if err != nil {
			return err
		}
		return db.SetMapped(name, key, interfaceOf(val))
	}
	return p.update(v, name, func(child reflect.Value) error {
		return p.setKey(child, key, name, value, coerce)
	})
}

func (p *PropertyUtils) setSimple(v reflect.Value, name string, value any, coerce coerceFunc) error {
	v, db, ok := indirect(v)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	if db != nil {
		typ := db.PropertyType(name)
		if typ == nil {
			typ = anyType
		}
		val, err := coerce(typ, value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return db.Set(name, interfaceOf(val))
	}
	switch v.Kind() {
	case reflect.Map:
		return p.setKey(v, name, name, value, coerce)
	case reflect.Struct:
		prop := _CachedBeanInfo(v.Type(), p.opts).FindProperty(name)
		if prop == nil {
			return fmt.Errorf("%w: %s on %s", ErrNoSuchProperty, name, v.Type())
		}
		err := prop.SetValue(v, func(typ reflect.Type) (reflect.Value, error) {
			return coerce(typ, value)
		})
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %s on %s", ErrNoSuchProperty, name, v.Type())
	}
}

func (p *PropertyUtils) setIndex(v reflect.Value, index int, name string, value any, coerce coerceFunc) error {
	v, _, ok := indirect(v)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	if v.Kind() != reflect.Slice && v.Kind() != reflect.Array {
		return fmt.Errorf("%w: %s is %s", ErrNotIndexed, name, v.Type())
	}
	if index < 0 || index >= v.Len() {
		return fmt.Errorf("%w: %s, index %d, length %d", ErrIndexOutOfRange, name, index, v.Len())
	}
	elem := v.Index(index)
	if !elem.CanSet() {
		return fmt.Errorf("%w: %s, array is not addressable", ErrNotWriteable, name)
	}
	val, err := coerce(elem.Type(), value)
	if err != nil {
		return fmt.Errorf("%s[%d]: %w", name, index, err)
	}
	elem.Set(val)
	return nil
}

func (p *PropertyUtils) setKey(v reflect.Value, key string, name string, value any, coerce coerceFunc) error {
	v, _, ok := indirect(v)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNilNested, name)
	}
	if v.Kind() != reflect.Map {
		return fmt.Errorf("%w: %s is %s", ErrNotMapped, name, v.Type())
	}
	if v.IsNil() {
		return fmt.Errorf("%w: %s is a nil map", ErrNilNested, name)
	}
	keyVal, err := p.mapKey(v.Type(), key)
	if err != nil {
		return err
	}
	val, err := coerce(v.Type().Elem(), value)
	if err != nil {
		return fmt.Errorf("%s(%s): %w", name, key, err)
	}
	v.SetMapIndex(keyVal, val)
	return nil
}

// update hands the value of segment to fn so that fn can modify it. Nil
// pointers and maps are allocated first. Values that can not be modified in
// place, such as struct values held by a map, are copied and written back.
func (p *PropertyUtils) update(v reflect.Value, segment string, fn func(child reflect.Value) error) error {
	child, typ, err := p.getSegment(v, segment)
	if err != nil {
		return err
	}
	writeBack := false
	if isNilValue(child) {
		created, ok := allocate(typ)
		if !ok {
			return fmt.Errorf("%w: %s", ErrNilNested, segment)
		}
		child, writeBack = created, true
	}
	for child.Kind() == reflect.Interface {
		child = child.Elem()
	}
	if !isReference(child) && !child.CanSet() {
		copied := reflect.New(child.Type()).Elem()
		copied.Set(child)
		child, writeBack = copied, true
	}
	if err := fn(child); err != nil {
		return err
	}
	if !writeBack {
		return nil
	}
	return p.setSegment(v, segment, child.Interface(), assign)
}
