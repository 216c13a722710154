package bean

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-leo/beanutils/locale"
	"go.uber.org/zap"
)

// LocaleUtils is Utils with locale sensitive parsing and formatting. String
// values are parsed with the locale converter of the destination type.
type LocaleUtils struct {
	*Utils
	// Locale is used for every conversion. The zero value selects the
	// default locale of the registry.
	Locale locale.Locale
	// Pattern is used when a call passes an empty pattern.
	Pattern string
}

func NewLocaleUtils(l locale.Locale, opts ...Option) *LocaleUtils {
	return &LocaleUtils{Utils: NewUtils(opts...), Locale: l}
}

// Locales returns the registry used for locale conversions.
func (u *LocaleUtils) Locales() *locale.Registry {
	if u.opts.Locales != nil {
		return u.opts.Locales
	}
	return locale.Default()
}

func (u *LocaleUtils) pattern(pattern string) string {
	if pattern == "" {
		return u.Pattern
	}
	return pattern
}

// GetProperty formats the property with the locale and pattern.
func (u *LocaleUtils) GetProperty(bean any, name string, pattern string) (string, error) {
	value, err := u.Properties.GetNestedProperty(bean, name)
	if err != nil {
		return "", err
	}
	return u.format(value, u.pattern(pattern))
}

func (u *LocaleUtils) format(value any, pattern string) (string, error) {
	if value == nil || isNilValue(reflect.ValueOf(value)) {
		return "", nil
	}
	return u.Locales().ToStringIn(u.Locale, value, pattern)
}

// SetProperty parses string values with the locale and pattern. Other values
// are converted like Utils.SetProperty does.
func (u *LocaleUtils) SetProperty(bean any, name string, value any, pattern string) error {
	pattern = u.pattern(pattern)
	coerce := func(typ reflect.Type, value any) (reflect.Value, error) {
		s, ok := value.(string)
		if !ok || typ.Kind() == reflect.String {
			return u.coerce(typ, value)
		}
		c, target, ok := u.lookup(typ)
		if !ok {
			return u.coerce(typ, value)
		}
		if s == "" && typ != target {
			return reflect.Zero(typ), nil
		}
		result, err := c.ConvertPattern(target, s, pattern)
		if err != nil {
			return reflect.Value{}, err
		}
		val, err := valueOf(result, target)
		if err != nil {
			return reflect.Value{}, err
		}
		return pointerTo(val, typ, target), nil
	}
	err := u.Properties.setNested(bean, name, value, coerce)
	if errors.Is(err, ErrNoSuchProperty) {
		zap.L().Debug("bean: skip unknown property", zap.String("name", name), zap.String("bean", fmt.Sprintf("%T", bean)))
		return nil
	}
	return err
}

// lookup finds the locale converter of typ, or of the type typ points to.
func (u *LocaleUtils) lookup(typ reflect.Type) (locale.Converter, reflect.Type, bool) {
	for {
		if c, ok := u.Locales().Lookup(typ, u.Locale); ok {
			return c, typ, true
		}
		if typ.Kind() != reflect.Pointer {
			return nil, nil, false
		}
		typ = typ.Elem()
	}
}

// pointerTo wraps val, a value of target, in new pointers until it has type typ.
func pointerTo(val reflect.Value, typ, target reflect.Type) reflect.Value {
	if typ == target {
		return val
	}
	ptr := reflect.New(typ.Elem())
	ptr.Elem().Set(pointerTo(val, typ.Elem(), target))
	return ptr
}

// Populate is Utils.Populate with SetProperty parsing strings in the locale.
func (u *LocaleUtils) Populate(bean any, values map[string]any) error {
	if bean == nil {
		return ErrNilBean
	}
	var errs []error
	for _, name := range sortedKeys(values) {
		if name == "" {
			continue
		}
		if err := u.SetProperty(bean, name, values[name], ""); err != nil {
			err = fmt.Errorf("%s: %w", name, err)
			if !u.opts.ContinueOnError {
				return err
			}
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Describe formats every readable property with the locale.
func (u *LocaleUtils) Describe(bean any) (map[string]string, error) {
	values, err := u.Properties.Describe(bean)
	if err != nil {
		return nil, err
	}
	description := make(map[string]string, len(values))
	for name, value := range values {
		s, err := u.format(value, u.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		description[name] = s
	}
	return description, nil
}
