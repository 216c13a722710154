package bean

import (
	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/locale"
)

type options struct {
	TagKey          string
	Resolver        Resolver
	Converters      *convert.Registry
	Locales         *locale.Registry
	SkipEmpty       bool
	ContinueOnError bool
}

func (o *options) apply(opts ...Option) *options {
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *options) correct() *options {
	if o.TagKey == "" {
		o.TagKey = "bean"
	}
	if o.Resolver == nil {
		o.Resolver = DefaultResolver{}
	}
	return o
}

type Option func(o *options)

// TagKey sets the struct tag used to rename or ignore fields, "bean" by default.
func TagKey(key string) Option {
	return func(o *options) {
		o.TagKey = key
	}
}

func WithResolver(r Resolver) Option {
	return func(o *options) {
		o.Resolver = r
	}
}

// WithConverters sets the registry used for conversions. The package level
// convert registry is used otherwise.
func WithConverters(r *convert.Registry) Option {
	return func(o *options) {
		o.Converters = r
	}
}

// WithLocales sets the registry used by LocaleUtils. The package level locale
// registry is used otherwise.
func WithLocales(r *locale.Registry) Option {
	return func(o *options) {
		o.Locales = r
	}
}

// SkipEmpty makes CopyProperties leave destination properties alone when the
// source value is empty.
func SkipEmpty(skip bool) Option {
	return func(o *options) {
		o.SkipEmpty = skip
	}
}

// ContinueOnError makes CopyProperties and Populate visit every property and
// return all failures joined.
func ContinueOnError(c bool) Option {
	return func(o *options) {
		o.ContinueOnError = c
	}
}
