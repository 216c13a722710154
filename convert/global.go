package convert

import (
	"reflect"
	"sync"
)

var (
	defaultRegistry *Registry
	defaultMutex    sync.RWMutex
)

func init() {
	defaultRegistry = NewRegistry()
}

// Default returns the package level registry.
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

func Convert(value any, typ reflect.Type) (any, error) {
	return Default().Convert(value, typ)
}

func ConvertString(value string, typ reflect.Type) (any, error) {
	return Default().ConvertString(value, typ)
}

func ConvertStrings(values []string, typ reflect.Type) (any, error) {
	return Default().ConvertStrings(values, typ)
}

func ToString(value any) (string, error) {
	return Default().ToString(value)
}

func Register(typ reflect.Type, c Converter) {
	Default().Register(typ, c)
}

func Deregister(typ reflect.Type) {
	Default().Deregister(typ)
}

func Lookup(typ reflect.Type) (Converter, bool) {
	return Default().Lookup(typ)
}
