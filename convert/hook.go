package convert

import (
	"reflect"

	"github.com/go-viper/mapstructure/v2"
)

// DecodeHook lets a mapstructure decoder convert values through r. Values
// whose target type has no converter are passed through untouched.
func DecodeHook(r *Registry) mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if from == to || data == nil {
			return data, nil
		}
		// mapstructure already decodes into interfaces, structs and maps
		switch to.Kind() {
		case reflect.Interface, reflect.Struct, reflect.Map:
			if _, ok := r.Lookup(to); !ok {
				return data, nil
			}
		}
		if _, ok := r.LookupPair(from, to); !ok {
			return data, nil
		}
		return r.Convert(data, to)
	}
}
