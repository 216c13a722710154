package convert

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// NumberConverter converts values to integer, unsigned, floating point,
// *big.Int and decimal.Decimal types. Narrowing conversions are range checked.
type NumberConverter struct {
	Base
	typ    reflect.Type
	format NumberFormat
}

// NewNumberConverter returns a converter whose default target is typ.
func NewNumberConverter(typ reflect.Type, opts ...Option) *NumberConverter {
	o := newOptions(opts...)
	return &NumberConverter{Base: newBase(o), typ: typ, format: o.NumberFormat}
}

func NewBigIntConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(bigIntType, opts...)
}

func NewDecimalConverter(opts ...Option) *NumberConverter {
	return NewNumberConverter(decimalType, opts...)
}

func (c *NumberConverter) Convert(typ reflect.Type, value any) (any, error) {
	return c.Do(typ, value, c)
}

func (c *NumberConverter) DefaultType() reflect.Type {
	return c.typ
}

func (c *NumberConverter) ConvertToString(value any) (string, error) {
	if c.format != nil {
		if d, err := c.decimalOf(decimalType, value); err == nil {
			return c.format.Format(d), nil
		}
	}
	return toString(value)
}

func (c *NumberConverter) ConvertToType(typ reflect.Type, value any) (any, error) {
	switch typ {
	case decimalType:
		return c.decimalOf(typ, value)
	case bigIntType:
		if s, ok := stringOf(value); ok && c.format == nil {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, NewMissingError(typ)
			}
			b, ok := new(big.Int).SetString(s, 10)
			if !ok {
				return nil, NewParseError(typ, s, strconv.ErrSyntax)
			}
			return b, nil
		}
		d, err := c.decimalOf(typ, value)
		if err != nil {
			return nil, err
		}
		return d.Truncate(0).BigInt(), nil
	}
	if !isNumberKind(typ.Kind()) {
		return nil, NewUnsupportedTypeError(typ, reflect.TypeOf(value))
	}

	tgtVal := reflect.New(typ).Elem()
	switch v := value.(type) {
	case bool:
		if v {
			if err := setNumber(tgtVal, reflect.ValueOf(1)); err != nil {
				return nil, err
			}
		}
		return tgtVal.Interface(), nil
	case time.Time:
		if err := setNumber(tgtVal, reflect.ValueOf(v.UnixMilli())); err != nil {
			return nil, err
		}
		return tgtVal.Interface(), nil
	case decimal.Decimal:
		return DecimalTo(typ, v)
	case *big.Int:
		return DecimalTo(typ, decimal.NewFromBigInt(v, 0))
	}

	srcVal := reflect.ValueOf(value)
	if isNumberKind(srcVal.Kind()) {
		if err := setNumber(tgtVal, srcVal); err != nil {
			return nil, err
		}
		return tgtVal.Interface(), nil
	}
	s, ok := stringOf(value)
	if !ok {
		var err error
		if s, err = toString(value); err != nil {
			return nil, err
		}
	}
	if err := c.parse(tgtVal, strings.TrimSpace(s)); err != nil {
		return nil, err
	}
	return tgtVal.Interface(), nil
}

func (c *NumberConverter) parse(tgtVal reflect.Value, s string) error {
	typ := tgtVal.Type()
	if s == "" {
		return NewMissingError(typ)
	}
	if c.format != nil {
		d, err := c.format.Parse(s)
		if err != nil {
			return NewParseError(typ, s, err)
		}
		v, err := DecimalTo(typ, d)
		if err != nil {
			return err
		}
		tgtVal.Set(reflect.ValueOf(v))
		return nil
	}
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return numError(typ, s, err)
		}
		return setInt(tgtVal, i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if strings.HasPrefix(s, "-") {
			if _, err := strconv.ParseInt(s, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
				return NewNegativeNumberError(typ, s)
			}
		}
		u, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return numError(typ, s, err)
		}
		return setUint(tgtVal, u)
	default:
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return numError(typ, s, err)
		}
		if math.IsInf(f, 0) && !strings.Contains(strings.ToLower(s), "inf") {
			return NewOverflowError(typ, s)
		}
		return setFloat(tgtVal, f)
	}
}

func numError(typ reflect.Type, s string, err error) error {
	if errors.Is(err, strconv.ErrRange) {
		return NewOverflowError(typ, s)
	}
	return NewParseError(typ, s, err)
}

func (c *NumberConverter) decimalOf(typ reflect.Type, value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *big.Int:
		return decimal.NewFromBigInt(v, 0), nil
	case bool:
		if v {
			return decimal.NewFromInt(1), nil
		}
		return decimal.Zero, nil
	case time.Time:
		return decimal.NewFromInt(v.UnixMilli()), nil
	}
	srcVal := reflect.ValueOf(value)
	switch srcVal.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return decimal.NewFromInt(srcVal.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(srcVal.Uint()), 0), nil
	case reflect.Float32:
		f := srcVal.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, NewParseError(typ, strconv.FormatFloat(f, 'g', -1, 32), strconv.ErrSyntax)
		}
		return decimal.NewFromFloat32(float32(f)), nil
	case reflect.Float64:
		f := srcVal.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, NewParseError(typ, strconv.FormatFloat(f, 'g', -1, 64), strconv.ErrSyntax)
		}
		return decimal.NewFromFloat(f), nil
	}
	s, ok := stringOf(value)
	if !ok {
		var err error
		if s, err = toString(value); err != nil {
			return decimal.Zero, err
		}
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, NewMissingError(typ)
	}
	if c.format != nil {
		d, err := c.format.Parse(s)
		if err != nil {
			return decimal.Zero, NewParseError(typ, s, err)
		}
		return d, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, NewParseError(typ, s, err)
	}
	return d, nil
}

// stringOf returns the string held by value, including named string types.
func stringOf(value any) (string, bool) {
	if s, ok := value.(string); ok {
		return s, true
	}
	if rv := reflect.ValueOf(value); rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
