package convert

import (
	"reflect"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultFunc computes a default value for the requested target type.
type DefaultFunc func(typ reflect.Type) any

// NumberFormat parses and formats numbers in a fixed textual form, for
// example a locale specific decimal pattern.
type NumberFormat interface {
	Parse(s string) (decimal.Decimal, error)
	Format(d decimal.Decimal) string
}

// DateFormat parses and formats times in a fixed textual form.
type DateFormat interface {
	Parse(s string) (time.Time, error)
	Format(t time.Time) string
}

type options struct {
	UseDefault        bool
	Default           any
	NumberFormat      NumberFormat
	DateFormats       []DateFormat
	Layouts           []string
	Location          *time.Location
	Delimiter         rune
	AllowedChars      []rune
	OnlyFirstToString bool
	ElementConverter  Converter
	TrueStrings       []string
	FalseStrings      []string
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) correct() *options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Delimiter == 0 {
		o.Delimiter = ','
	}
	if o.AllowedChars == nil {
		o.AllowedChars = []rune{'.', '-'}
	}
	if len(o.TrueStrings) == 0 {
		o.TrueStrings = []string{"true", "yes", "y", "on", "1"}
	}
	if len(o.FalseStrings) == 0 {
		o.FalseStrings = []string{"false", "no", "n", "off", "0"}
	}
	return o
}

func newOptions(opts ...Option) *options {
	return (&options{OnlyFirstToString: true}).apply(opts...).correct()
}

type Option func(o *options)

// WithDefault makes the converter return v instead of failing.
func WithDefault(v any) Option {
	return func(o *options) {
		o.UseDefault = true
		o.Default = v
	}
}

// WithDefaultFunc is WithDefault for defaults that depend on the target type.
func WithDefaultFunc(f DefaultFunc) Option {
	return func(o *options) {
		o.UseDefault = true
		o.Default = f
	}
}

// WithoutDefault makes every failure surface as an error.
func WithoutDefault() Option {
	return func(o *options) {
		o.UseDefault = false
		o.Default = nil
	}
}

func WithNumberFormat(f NumberFormat) Option {
	return func(o *options) {
		o.NumberFormat = f
	}
}

// WithDateFormats sets the formats a DateTimeConverter tries in order. The
// first one is used when formatting.
func WithDateFormats(formats ...DateFormat) Option {
	return func(o *options) {
		o.DateFormats = append(o.DateFormats, formats...)
	}
}

// WithLayouts sets Go reference layouts a DateTimeConverter tries in order.
func WithLayouts(layouts ...string) Option {
	return func(o *options) {
		o.Layouts = append(o.Layouts, layouts...)
	}
}

func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.Location = loc
	}
}

func WithDelimiter(delimiter rune) Option {
	return func(o *options) {
		o.Delimiter = delimiter
	}
}

// WithAllowedChars sets the non alphanumeric characters an ArrayConverter
// keeps inside a token.
func WithAllowedChars(chars ...rune) Option {
	return func(o *options) {
		o.AllowedChars = chars
	}
}

func WithOnlyFirstToString(only bool) Option {
	return func(o *options) {
		o.OnlyFirstToString = only
	}
}

func WithElementConverter(c Converter) Option {
	return func(o *options) {
		o.ElementConverter = c
	}
}

// WithDefaultSize makes an ArrayConverter default to a zeroed slice of n
// elements.
func WithDefaultSize(n int) Option {
	return WithDefaultFunc(func(typ reflect.Type) any {
		switch typ.Kind() {
		case reflect.Slice:
			return reflect.MakeSlice(typ, n, n).Interface()
		case reflect.Array:
			return reflect.New(typ).Elem().Interface()
		default:
			return nil
		}
	})
}

func WithTrueStrings(words ...string) Option {
	return func(o *options) {
		o.TrueStrings = words
	}
}

func WithFalseStrings(words ...string) Option {
	return func(o *options) {
		o.FalseStrings = words
	}
}
