package locale

import (
	"math/big"
	"reflect"
	"time"

	"github.com/go-leo/beanutils/convert"
	"github.com/shopspring/decimal"
)

var stringType = reflect.TypeOf("")

// StringConverter formats numbers and times for a locale. Other values are
// formatted like convert.StringConverter does.
type StringConverter struct {
	Base
	location *time.Location
}

func NewStringConverter(opts ...Option) *StringConverter {
	o := (&options{}).apply(opts...).correct()
	return &StringConverter{Base: newBase(o), location: o.Location}
}

func (c *StringConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.ConvertPattern(typ, value, "")
}

func (c *StringConverter) ConvertPattern(typ reflect.Type, value any, pattern string) (any, error) {
	return c.Do(typ, value, pattern, c)
}

func (c *StringConverter) DefaultType() reflect.Type {
	return stringType
}

func (c *StringConverter) Parse(typ reflect.Type, value any, pattern string) (any, error) {
	if typ.Kind() != reflect.String {
		return nil, convert.NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}
	s, err := c.format(value, pattern)
	if err != nil {
		return nil, err
	}
	return reflect.ValueOf(s).Convert(typ).Interface(), nil
}

func (c *StringConverter) format(value any, pattern string) (string, error) {
	var d decimal.Decimal
	switch v := value.(type) {
	case time.Time:
		return c.formatTime(v, pattern)
	case *time.Time:
		return c.formatTime(*v, pattern)
	case decimal.Decimal:
		d = v
	case *big.Int:
		d = decimal.NewFromBigInt(v, 0)
	default:
		rv := reflect.ValueOf(value)
		switch rv.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
			reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
			reflect.Float32, reflect.Float64:
			if _, ok := value.(time.Duration); ok {
				return convert.Format(value)
			}
			v, err := convert.NewDecimalConverter().Convert(decimalType, value)
			if err != nil {
				return "", err
			}
			d = v.(decimal.Decimal)
		case reflect.Slice, reflect.Array:
			if rv.Len() > 0 && rv.Type().Elem().Kind() != reflect.Uint8 {
				return c.format(rv.Index(0).Interface(), pattern)
			}
			return convert.Format(value)
		default:
			return convert.Format(value)
		}
	}
	var format *NumberFormat
	var err error
	if c.Localized && pattern != "" {
		format, err = NewLocalizedNumberFormat(c.Locale, pattern)
	} else {
		format, err = NewNumberFormat(c.Locale, pattern)
	}
	if err != nil {
		return "", err
	}
	return format.Format(d), nil
}

func (c *StringConverter) formatTime(t time.Time, pattern string) (string, error) {
	if pattern == "" {
		pattern = SymbolsOf(c.Locale).ShortDatePattern
	}
	format, err := NewDateFormat(c.Locale, pattern)
	if err != nil {
		return "", err
	}
	return format.In(c.location).Format(t), nil
}
