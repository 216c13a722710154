package locale

import (
	"reflect"

	"github.com/go-leo/beanutils/convert"
)

// Converter is a convert.Converter driven by a locale and a pattern.
type Converter interface {
	convert.Converter
	// ConvertPattern converts value using pattern. An empty pattern selects
	// the converter's pattern, then the locale default.
	ConvertPattern(typ reflect.Type, value any, pattern string) (any, error)
}

// Strategy holds the type specific part of a locale converter.
type Strategy interface {
	DefaultType() reflect.Type
	// Parse converts value to typ. pattern may be empty.
	Parse(typ reflect.Type, value any, pattern string) (any, error)
}

// Base implements the shared locale converter flow on top of the default
// value policy of convert.Base.
type Base struct {
	convert.Base
	Locale    Locale
	Pattern   string
	Localized bool
}

func newBase(o *options) Base {
	return Base{
		Base:      convert.Base{UseDefault: o.UseDefault, Default: o.Default},
		Locale:    o.Locale,
		Pattern:   o.Pattern,
		Localized: o.Localized,
	}
}

// Do converts value to typ with pattern, falling back to b.Pattern when
// pattern is empty.
func (b Base) Do(typ reflect.Type, value any, pattern string, s Strategy) (any, error) {
	if typ == nil {
		typ = s.DefaultType()
	}
	if pattern == "" {
		pattern = b.Pattern
	}
	adapter := strategyAdapter{s: s, pattern: pattern}
	if value == nil {
		return b.HandleMissing(typ, adapter)
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.Pointer && rv.IsNil() {
		return b.HandleMissing(typ, adapter)
	}
	if reflect.TypeOf(value) == typ {
		return value, nil
	}
	result, err := s.Parse(typ, value, pattern)
	if err != nil {
		return b.HandleError(typ, value, err, adapter)
	}
	if result == nil || reflect.TypeOf(result) != typ {
		return b.HandleError(typ, value, convert.NewUnsupportedTypeError(typ, reflect.TypeOf(value)), adapter)
	}
	return result, nil
}

// strategyAdapter lets convert.Base convert default values.
type strategyAdapter struct {
	s       Strategy
	pattern string
}

func (a strategyAdapter) DefaultType() reflect.Type {
	return a.s.DefaultType()
}

func (a strategyAdapter) ConvertToType(typ reflect.Type, value any) (any, error) {
	return a.s.Parse(typ, value, a.pattern)
}

func (a strategyAdapter) ConvertToString(value any) (string, error) {
	return convert.Format(value)
}
