package convert

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/cast"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// DateTimeConverter converts values to time.Time or *timestamppb.Timestamp.
//
// Strings are parsed with the configured DateFormats first, then with the Go
// layouts. Without either, the layouts known to spf13/cast are tried. Integers
// are milliseconds since the Unix epoch.
type DateTimeConverter struct {
	Base
	typ      reflect.Type
	formats  []DateFormat
	layouts  []string
	location *time.Location
}

func NewDateTimeConverter(opts ...Option) *DateTimeConverter {
	return newDateTimeConverter(timeType, opts...)
}

func NewTimestampConverter(opts ...Option) *DateTimeConverter {
	return newDateTimeConverter(timestampType, opts...)
}

func newDateTimeConverter(typ reflect.Type, opts ...Option) *DateTimeConverter {
	o := newOptions(opts...)
	return &DateTimeConverter{
		Base:     newBase(o),
		typ:      typ,
		formats:  o.DateFormats,
		layouts:  o.Layouts,
		location: o.Location,
	}
}

func (c *DateTimeConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *DateTimeConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *DateTimeConverter) ConvertToString(value any) (string, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v.In(c.location)
	case *timestamppb.Timestamp:
		t = v.AsTime().In(c.location)
	default:
		return toString(value)
	}
	if len(c.formats) > 0 {
		return c.formats[0].Format(t), nil
	}
	if len(c.layouts) > 0 {
		return t.Format(c.layouts[0]), nil
	}
	return t.Format(time.RFC3339Nano), nil
}

func (c *DateTimeConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	if typ != timeType && typ != timestampType {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	t, err := c.toTime(typ, value)
	if err != nil {
		return nil, err
	}
	if typ == timestampType {
		return timestamppb.New(t), nil
	}
	return t, nil
}

func (c *DateTimeConverter) toTime(typ reflect.Type, value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case *timestamppb.Timestamp:
		if err := v.CheckValid(); err != nil {
			return time.Time{}, NewParseError(typ, v.String(), err)
		}
		return v.AsTime().In(c.location), nil
	}
	srcVal := reflect.ValueOf(value)
	switch srcVal.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return time.UnixMilli(srcVal.Int()).In(c.location), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return time.UnixMilli(int64(srcVal.Uint())).In(c.location), nil
	}
	s, err := toString(value)
	if err != nil {
		return time.Time{}, err
	}
	return c.parse(typ, strings.TrimSpace(s))
}

func (c *DateTimeConverter) parse(typ reflect.Type, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, NewMissingError(typ)
	}
	if len(c.formats) == 0 && len(c.layouts) == 0 {
		t, err := cast.ToTimeInDefaultLocationE(s, c.location)
		if err != nil {
			return time.Time{}, NewParseError(typ, s, err)
		}
		return t, nil
	}
	var errs []error
	for _, format := range c.formats {
		t, err := format.Parse(s)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}
	for _, layout := range c.layouts {
		t, err := time.ParseInLocation(layout, s, c.location)
		if err == nil {
			return t, nil
		}
		errs = append(errs, err)
	}
	return time.Time{}, NewParseError(typ, s, errors.Join(errs...))
}
