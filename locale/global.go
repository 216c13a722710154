package locale

import (
	"reflect"
	"sync"
)

var (
	defaultRegistry = NewRegistry()
	defaultMutex    sync.RWMutex
)

func Default() *Registry {
	defaultMutex.RLock()
	defer defaultMutex.RUnlock()
	return defaultRegistry
}

// SetDefault replaces the package level registry and returns the previous one.
func SetDefault(r *Registry) *Registry {
	defaultMutex.Lock()
	defer defaultMutex.Unlock()
	old := defaultRegistry
	defaultRegistry = r
	return old
}

func Convert(value string, typ reflect.Type, pattern string) (any, error) {
	return Default().Convert(value, typ, pattern)
}

func ConvertIn(l Locale, value string, typ reflect.Type, pattern string) (any, error) {
	return Default().ConvertIn(l, value, typ, pattern)
}

func ConvertStrings(values []string, typ reflect.Type, pattern string) (any, error) {
	return Default().ConvertStrings(values, typ, pattern)
}

func ToString(value any, pattern string) (string, error) {
	return Default().ToString(value, pattern)
}

func ToStringIn(l Locale, value any, pattern string) (string, error) {
	return Default().ToStringIn(l, value, pattern)
}

func Register(c Converter, typ reflect.Type, l Locale) {
	Default().Register(c, typ, l)
}

func Deregister() {
	Default().Deregister()
}

func Lookup(typ reflect.Type, l Locale) (Converter, bool) {
	return Default().Lookup(typ, l)
}
