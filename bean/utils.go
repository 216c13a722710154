package bean

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/gox/convx"
	"github.com/go-leo/gox/reflectx"
	"go.uber.org/zap"
)

// Utils reads and writes bean properties as strings and converts values to
// the type of the destination property.
type Utils struct {
	Properties *PropertyUtils
	opts       *options
}

func NewUtils(opts ...Option) *Utils {
	p := NewPropertyUtils(opts...)
	return &Utils{Properties: p, opts: p.opts}
}

// Converters returns the registry used for conversions.
func (u *Utils) Converters() *convert.Registry {
	return u.Properties.converters()
}

func (u *Utils) coerce(typ reflect.Type, value any) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(typ), nil
	}
	if val := reflect.ValueOf(value); val.Type().AssignableTo(typ) {
		return val, nil
	}
	result, err := u.Converters().Convert(value, typ)
	if err != nil {
		return reflect.Value{}, err
	}
	return valueOf(result, typ)
}

// toString formats value. nil pointers and maps become "".
func (u *Utils) toString(value any) (string, error) {
	if value == nil || isNilValue(reflect.ValueOf(value)) {
		return "", nil
	}
	return u.Converters().ToString(value)
}

// GetProperty returns the property as a string. Slices are represented by
// their first element.
func (u *Utils) GetProperty(bean any, name string) (string, error) {
	value, err := u.Properties.GetNestedProperty(bean, name)
	if err != nil {
		return "", err
	}
	return u.toString(value)
}

// GetArrayProperty returns every element of a slice or array property as a
// string. Other values give a single element.
func (u *Utils) GetArrayProperty(bean any, name string) ([]string, error) {
	value, err := u.Properties.GetNestedProperty(bean, name)
	if err != nil {
		return nil, err
	}
	if value == nil {
		return nil, nil
	}
	rv := reflect.ValueOf(value)
	if (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() == reflect.Uint8 {
		s, err := u.toString(value)
		if err != nil {
			return nil, err
		}
		return []string{s}, nil
	}
	values := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		s, err := u.toString(interfaceOf(rv.Index(i)))
		if err != nil {
			return nil, fmt.Errorf("%s[%s]: %w", name, convx.ToString(i), err)
		}
		values = append(values, s)
	}
	return values, nil
}

// SetProperty converts value to the type of the property and stores it.
// Properties the bean does not have are ignored.
func (u *Utils) SetProperty(bean any, name string, value any) error {
	err := u.Properties.setNested(bean, name, value, u.coerce)
	if errors.Is(err, ErrNoSuchProperty) {
		zap.L().Debug("bean: skip unknown property", zap.String("name", name), zap.String("bean", fmt.Sprintf("%T", bean)))
		return nil
	}
	return err
}

// CopyProperty is SetProperty for properties that can be written. Read only
// and unknown properties are ignored.
func (u *Utils) CopyProperty(bean any, name string, value any) error {
	if !u.Properties.IsWriteable(bean, name) {
		zap.L().Debug("bean: skip property that is not writeable", zap.String("name", name), zap.String("bean", fmt.Sprintf("%T", bean)))
		return nil
	}
	return u.SetProperty(bean, name, value)
}

// CopyProperties copies every readable property of orig to the writeable
// property of dest with the same name, converting values as needed.
func (u *Utils) CopyProperties(dest, orig any) error {
	if dest == nil || orig == nil {
		return ErrNilBean
	}
	values, err := u.Properties.Describe(orig)
	if err != nil {
		return err
	}
	var errs []error
	for _, name := range sortedKeys(values) {
		value := values[name]
		if u.opts.SkipEmpty && (value == nil || reflectx.IsEmptyValue(reflect.ValueOf(value))) {
			continue
		}
		if err := u.CopyProperty(dest, name, value); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			if !u.opts.ContinueOnError {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Populate sets the properties of bean from values. Keys are property
// expressions and are applied in sorted order.
func (u *Utils) Populate(bean any, values map[string]any) error {
	if bean == nil {
		return ErrNilBean
	}
	var errs []error
	for _, name := range sortedKeys(values) {
		if name == "" {
			continue
		}
		if err := u.SetProperty(bean, name, values[name]); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			if !u.opts.ContinueOnError {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Describe returns every readable property of bean as a string.
func (u *Utils) Describe(bean any) (map[string]string, error) {
	values, err := u.Properties.Describe(bean)
	if err != nil {
		return nil, err
	}
	description := make(map[string]string, len(values))
	for name, value := range values {
		s, err := u.toString(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		description[name] = s
	}
	return description, nil
}

// CloneBean returns a shallow copy of bean built from its readable
// properties. Pointers to structs, struct values, maps and DynaBeans can be
// cloned.
func (u *Utils) CloneBean(bean any) (any, error) {
	if bean == nil {
		return nil, ErrNilBean
	}
	if db, ok := bean.(DynaBean); ok {
		if lazy, ok := db.(*LazyDynaBean); ok {
			return NewLazyDynaBean(lazy.values), nil
		}
		values := make(map[string]any)
		for _, name := range db.Properties() {
			value, err := db.Get(name)
			if err != nil {
				return nil, err
			}
			values[name] = value
		}
		return NewLazyDynaBean(values), nil
	}
	rv := reflect.ValueOf(bean)
	switch {
	case rv.Kind() == reflect.Pointer && rv.IsNil():
		return nil, ErrNilBean
	case rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct:
		clone := reflect.New(rv.Elem().Type())
		if err := u.CopyProperties(clone.Interface(), bean); err != nil {
			return nil, err
		}
		return clone.Interface(), nil
	case rv.Kind() == reflect.Struct:
		clone := reflect.New(rv.Type())
		if err := u.CopyProperties(clone.Interface(), bean); err != nil {
			return nil, err
		}
		return clone.Elem().Interface(), nil
	case rv.Kind() == reflect.Map:
		if rv.IsNil() {
			return nil, ErrNilBean
		}
		clone := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			clone.SetMapIndex(iter.Key(), iter.Value())
		}
		return clone.Interface(), nil
	default:
		return nil, fmt.Errorf("%w: %T is not a bean", ErrNotReadable, bean)
	}
}
