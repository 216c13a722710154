package locale

import (
	"reflect"
	"time"

	"github.com/go-leo/beanutils/convert"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	timeType      = reflect.TypeOf(time.Time{})
	timestampType = reflect.TypeOf((*timestamppb.Timestamp)(nil))
)

// DateConverter parses locale formatted dates into time.Time or
// *timestamppb.Timestamp. Without a pattern the short date pattern of the
// locale is used.
type DateConverter struct {
	Base
	typ      reflect.Type
	lenient  bool
	location *time.Location
}

func NewDateConverter(opts ...Option) *DateConverter {
	return newDateConverter(timeType, opts...)
}

func NewTimestampConverter(opts ...Option) *DateConverter {
	return newDateConverter(timestampType, opts...)
}

func newDateConverter(typ reflect.Type, opts ...Option) *DateConverter {
	o := (&options{}).apply(opts...).correct()
	return &DateConverter{Base: newBase(o), typ: typ, lenient: o.Lenient, location: o.Location}
}

func (c *DateConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.ConvertPattern(typ, value, "")
}

func (c *DateConverter) ConvertPattern(typ reflect.Type, value any, pattern string) (any, error) {
	return c.Do(typ, value, pattern, c)
}

func (c *DateConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *DateConverter) Parse(typ reflect.Type, value any, pattern string) (any, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case *time.Time:
		t = *v
	case *timestamppb.Timestamp:
		t = v.AsTime().In(c.location)
	default:
		s, err := convert.Format(value)
		if err != nil {
			return nil, err
		}
		format, err := c.dateFormat(pattern)
		if err != nil {
			return nil, err
		}
		if t, err = format.Parse(s); err != nil {
			return nil, convert.NewParseError(typ, s, err)
		}
	}
	switch typ {
	case timeType:
		return t, nil
	case timestampType:
		return timestamppb.New(t), nil
	default:
		return nil, convert.NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
}

func (c *DateConverter) dateFormat(pattern string) (*DateFormat, error) {
	if pattern == "" {
		pattern = SymbolsOf(c.Locale).ShortDatePattern
	}
	format, err := NewDateFormat(c.Locale, pattern)
	if err != nil {
		return nil, err
	}
	return format.In(c.location).Lenient(c.lenient), nil
}
