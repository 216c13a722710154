package convert

import (
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
	"google.golang.org/protobuf/types/known/durationpb"
)

// DurationConverter converts values to time.Duration or *durationpb.Duration.
// Bare integers are nanoseconds.
type DurationConverter struct {
	Base
	typ reflect.Type
}

func NewDurationConverter(opts ...Option) *DurationConverter {
	return &DurationConverter{Base: newBase(newOptions(opts...)), typ: durationType}
}

func NewProtoDurationConverter(opts ...Option) *DurationConverter {
	return &DurationConverter{Base: newBase(newOptions(opts...)), typ: protoDurationType}
}

func (c *DurationConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *DurationConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *DurationConverter) ConvertToString(value any) (string, error) {
	if d, ok := value.(time.Duration); ok {
		return d.String(), nil
	}
	return toString(value)
}

func (c *DurationConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ != protoDurationType && typ.Kind() != reflect.Int64 {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	var d time.Duration
	switch v := value.(type) {
	case time.Duration:
		d = v
	case *durationpb.Duration:
		if err := v.CheckValid(); err != nil {
			return nil, NewParseError(typ, v.String(), err)
		}
		d = v.AsDuration()
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return nil, NewMissingError(typ)
		}
		var err error
		if d, err = cast.ToDurationE(s); err != nil {
			return nil, NewParseError(typ, s, err)
		}
	default:
		var err error
		if d, err = cast.ToDurationE(value); err != nil {
			return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
		}
	}
	if typ == protoDurationType {
		return durationpb.New(d), nil
	}
	return reflect.ValueOf(d).Convert(typ).Interface(), nil
}
