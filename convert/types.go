package convert

import (
	"encoding"
	"math/big"
	"net/url"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var (
	boolType          = reflect.TypeOf(false)
	runeType          = reflect.TypeOf(rune(0))
	bigIntType        = reflect.TypeOf((*big.Int)(nil))
	decimalType       = reflect.TypeOf(decimal.Decimal{})
	timeType          = reflect.TypeOf(time.Time{})
	durationType      = reflect.TypeOf(time.Duration(0))
	timestampType     = reflect.TypeOf((*timestamppb.Timestamp)(nil))
	protoDurationType = reflect.TypeOf((*durationpb.Duration)(nil))
	uuidType          = reflect.TypeOf(uuid.UUID{})
	urlType           = reflect.TypeOf((*url.URL)(nil))

	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// baseTypes maps every basic kind to its predeclared type, so that named types
// such as `type Celsius float64` find the converter of their underlying type.
var baseTypes = map[reflect.Kind]reflect.Type{
	reflect.Bool:    boolType,
	reflect.Int:     reflect.TypeOf(int(0)),
	reflect.Int8:    reflect.TypeOf(int8(0)),
	reflect.Int16:   reflect.TypeOf(int16(0)),
	reflect.Int32:   reflect.TypeOf(int32(0)),
	reflect.Int64:   reflect.TypeOf(int64(0)),
	reflect.Uint:    reflect.TypeOf(uint(0)),
	reflect.Uint8:   reflect.TypeOf(uint8(0)),
	reflect.Uint16:  reflect.TypeOf(uint16(0)),
	reflect.Uint32:  reflect.TypeOf(uint32(0)),
	reflect.Uint64:  reflect.TypeOf(uint64(0)),
	reflect.Uintptr: reflect.TypeOf(uintptr(0)),
	reflect.Float32: reflect.TypeOf(float32(0)),
	reflect.Float64: reflect.TypeOf(float64(0)),
	reflect.String:  stringType,
}

// IsTextUnmarshaler reports whether a *typ (or typ itself, for pointer types)
// implements encoding.TextUnmarshaler.
func IsTextUnmarshaler(typ reflect.Type) bool {
	if typ == nil {
		return false
	}
	if typ.Kind() == reflect.Pointer {
		return typ.Implements(textUnmarshalerType)
	}
	return reflect.PointerTo(typ).Implements(textUnmarshalerType)
}
