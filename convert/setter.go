package convert

import (
	"math"
	"reflect"
	"strconv"

	"github.com/shopspring/decimal"
)

func setInt(tgtVal reflect.Value, i int64) error {
	if tgtVal.OverflowInt(i) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatInt(i, 10))
	}
	tgtVal.SetInt(i)
	return nil
}

func setUint(tgtVal reflect.Value, u uint64) error {
	if tgtVal.OverflowUint(u) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatUint(u, 10))
	}
	tgtVal.SetUint(u)
	return nil
}

func setFloat(tgtVal reflect.Value, f float64) error {
	if tgtVal.OverflowFloat(f) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatFloat(f, 'f', -1, 64))
	}
	tgtVal.SetFloat(f)
	return nil
}

func setInt2Uint(tgtVal reflect.Value, i int64) error {
	if i < 0 {
		return NewNegativeNumberError(tgtVal.Type(), strconv.FormatInt(i, 10))
	}
	return setUint(tgtVal, uint64(i))
}

func setUint2Int(tgtVal reflect.Value, u uint64) error {
	if u > uint64(math.MaxInt64) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatUint(u, 10))
	}
	return setInt(tgtVal, int64(u))
}

func setFloat2Int(tgtVal reflect.Value, f float64) error {
	if math.IsNaN(f) || f >= float64(math.MaxInt64) || f < float64(math.MinInt64) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatFloat(f, 'f', -1, 64))
	}
	return setInt(tgtVal, int64(f))
}

func setFloat2Uint(tgtVal reflect.Value, f float64) error {
	if math.IsNaN(f) || f >= float64(math.MaxUint64) {
		return NewOverflowError(tgtVal.Type(), strconv.FormatFloat(f, 'f', -1, 64))
	}
	if f < 0 {
		return NewNegativeNumberError(tgtVal.Type(), strconv.FormatFloat(f, 'f', -1, 64))
	}
	return setUint(tgtVal, uint64(f))
}

// setNumber stores src, which must be of a numeric kind, into tgtVal with
// overflow checking.
func setNumber(tgtVal reflect.Value, src reflect.Value) error {
	switch src.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i := src.Int()
		switch tgtVal.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return setInt(tgtVal, i)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return setInt2Uint(tgtVal, i)
		case reflect.Float32, reflect.Float64:
			return setFloat(tgtVal, float64(i))
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := src.Uint()
		switch tgtVal.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return setUint2Int(tgtVal, u)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return setUint(tgtVal, u)
		case reflect.Float32, reflect.Float64:
			return setFloat(tgtVal, float64(u))
		}
	case reflect.Float32, reflect.Float64:
		f := src.Float()
		switch tgtVal.Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			return setFloat2Int(tgtVal, f)
		case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
			return setFloat2Uint(tgtVal, f)
		case reflect.Float32, reflect.Float64:
			return setFloat(tgtVal, f)
		}
	}
	return NewUnsupportedTypeError(tgtVal.Type(), src.Type())
}

// DecimalTo converts d to the numeric type typ. Integer targets drop the
// fraction. Values outside the range of typ are reported as overflow.
func DecimalTo(typ reflect.Type, d decimal.Decimal) (any, error) {
	tgtVal := reflect.New(typ).Elem()
	switch typ.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b := d.Truncate(0).BigInt()
		if !b.IsInt64() {
			return nil, NewOverflowError(typ, d.String())
		}
		if err := setInt(tgtVal, b.Int64()); err != nil {
			return nil, err
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b := d.Truncate(0).BigInt()
		if b.Sign() < 0 {
			return nil, NewNegativeNumberError(typ, d.String())
		}
		if !b.IsUint64() {
			return nil, NewOverflowError(typ, d.String())
		}
		if err := setUint(tgtVal, b.Uint64()); err != nil {
			return nil, err
		}
	case reflect.Float32, reflect.Float64:
		f, _ := d.Float64()
		if math.IsInf(f, 0) {
			return nil, NewOverflowError(typ, d.String())
		}
		if err := setFloat(tgtVal, f); err != nil {
			return nil, err
		}
	default:
		return nil, NewUnsupportedTypeError(typ, decimalType)
	}
	return tgtVal.Interface(), nil
}

func isNumberKind(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}
