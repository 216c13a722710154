package locale

import (
	"time"

	"golang.org/x/text/language"
)

type options struct {
	UseDefault bool
	Default    any
	Locale     Locale
	Pattern    string
	Localized  bool
	Lenient    bool
	Location   *time.Location
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) correct() *options {
	if o.Locale == language.Und {
		o.Locale = Default().DefaultLocale()
	}
	if o.Location == nil {
		o.Location = time.Local
	}
	return o
}

type Option func(o *options)

// WithDefault makes the converter return v instead of failing.
func WithDefault(v any) Option {
	return func(o *options) {
		o.UseDefault = true
		o.Default = v
	}
}

func WithoutDefault() Option {
	return func(o *options) {
		o.UseDefault = false
		o.Default = nil
	}
}

// WithLocale sets the locale. The default registry's default locale is used
// otherwise.
func WithLocale(l Locale) Option {
	return func(o *options) {
		o.Locale = l
	}
}

// WithPattern sets the pattern used when a conversion supplies none.
func WithPattern(pattern string) Option {
	return func(o *options) {
		o.Pattern = pattern
		o.Localized = false
	}
}

// WithLocalizedPattern is WithPattern for patterns written with the
// symbols of the locale.
func WithLocalizedPattern(pattern string) Option {
	return func(o *options) {
		o.Pattern = pattern
		o.Localized = true
	}
}

// WithLocalized marks every pattern given to the converter as localized.
func WithLocalized(localized bool) Option {
	return func(o *options) {
		o.Localized = localized
	}
}

func WithLenient(lenient bool) Option {
	return func(o *options) {
		o.Lenient = lenient
	}
}

func WithLocation(loc *time.Location) Option {
	return func(o *options) {
		o.Location = loc
	}
}
