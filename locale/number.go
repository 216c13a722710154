package locale

import (
	"math/big"
	"reflect"

	"github.com/go-leo/beanutils/convert"
	"github.com/shopspring/decimal"
)

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	bigIntType  = reflect.TypeOf((*big.Int)(nil))
	intType     = reflect.TypeOf(0)
	float64Type = reflect.TypeOf(float64(0))
)

// NumberConverter parses locale formatted numbers into decimal.Decimal,
// *big.Int or any integer or floating point type. Integer targets drop the
// fraction and reject values out of their range.
type NumberConverter struct {
	Base
	typ reflect.Type
}

func NewNumberConverter(typ reflect.Type, opts ...Option) *NumberConverter {
	return &NumberConverter{Base: newBase((&options{}).apply(opts...).correct()), typ: typ}
}

func NewDecimalConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(decimalType, opts...)
}

func NewBigIntConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(bigIntType, opts...)
}

func NewIntConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(intType, opts...)
}

func NewFloatConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(float64Type, opts...)
}

func (c *NumberConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.ConvertPattern(typ, value, "")
}

func (c *NumberConverter) ConvertPattern(typ reflect.Type, value any, pattern string) (any, error) {
	return c.Do(typ, value, pattern, c)
}

func (c *NumberConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *NumberConverter) Parse(typ reflect.Type, value any, pattern string) (any, error) {
	var d decimal.Decimal
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		s := rv.String()
		format, err := c.numberFormat(pattern)
		if err != nil {
			return nil, err
		}
		if d, err = format.Parse(s); err != nil {
			return nil, convert.NewParseError(typ, s, err)
		}
	} else {
		v, err := convert.NewDecimalConverter().Convert(decimalType, value)
		if err != nil {
			return nil, err
		}
		d = v.(decimal.Decimal)
	}
	switch typ {
	case decimalType:
		return d, nil
	case bigIntType:
		return d.Truncate(0).BigInt(), nil
	default:
		return convert.DecimalTo(typ, d)
	}
}

func (c *NumberConverter) numberFormat(pattern string) (*NumberFormat, error) {
	if c.Localized && pattern != "" {
		return NewLocalizedNumberFormat(c.Locale, pattern)
	}
	return NewNumberFormat(c.Locale, pattern)
}
