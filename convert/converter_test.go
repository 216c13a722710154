package convert_test

import (
	"math"
	"math/big"
	"net"
	"reflect"
	"testing"
	"time"

	"github.com/go-leo/beanutils/convert"
	"github.com/google/uuid"
	"github.com/kinbiko/jsonassert"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"google.golang.org/protobuf/types/known/durationpb"
	"google.golang.org/protobuf/types/known/timestamppb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

var (
	intType    = reflect.TypeOf(0)
	stringType = reflect.TypeOf("")
)

type celsius float64

func assertCode(t *testing.T, err error, code convert.Code) {
	t.Helper()
	var convErr convert.Error
	if assert.ErrorAs(t, err, &convErr) {
		assert.Equal(t, code, convErr.Code)
	}
	assert.ErrorIs(t, err, convert.ErrConversion)
}

func TestNumberConverter(t *testing.T) {
	c := convert.NewNumberConverter(intType)

	v, err := c.Convert(nil, "  42 ")
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = c.Convert(reflect.TypeOf(int8(0)), "128")
	assert.Nil(t, v)
	assertCode(t, err, convert.Overflow)

	_, err = c.Convert(reflect.TypeOf(int8(0)), 300)
	assertCode(t, err, convert.Overflow)

	_, err = c.Convert(reflect.TypeOf(uint8(0)), "-1")
	assertCode(t, err, convert.NegativeNumber)

	_, err = c.Convert(reflect.TypeOf(uint(0)), -5)
	assertCode(t, err, convert.NegativeNumber)

	_, err = c.Convert(intType, "1.5")
	assertCode(t, err, convert.FailedParse)

	_, err = c.Convert(reflect.TypeOf(float32(0)), math.MaxFloat64)
	assertCode(t, err, convert.Overflow)

	_, err = c.Convert(reflect.TypeOf(int64(0)), float64(math.MaxInt64))
	assertCode(t, err, convert.Overflow)

	_, err = c.Convert(intType, math.NaN())
	assertCode(t, err, convert.Overflow)

	v, err = c.Convert(reflect.TypeOf(float32(0)), 3.5)
	assert.NoError(t, err)
	assert.Equal(t, float32(3.5), v)

	v, err = c.Convert(reflect.TypeOf(int64(0)), true)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v)

	v, err = c.Convert(reflect.TypeOf(int64(0)), time.UnixMilli(1700000000000))
	assert.NoError(t, err)
	assert.Equal(t, int64(1700000000000), v)

	v, err = c.Convert(intType, decimal.RequireFromString("12.9"))
	assert.NoError(t, err)
	assert.Equal(t, 12, v)

	v, err = c.Convert(reflect.TypeOf(uint64(0)), new(big.Int).SetUint64(math.MaxUint64))
	assert.NoError(t, err)
	assert.Equal(t, uint64(math.MaxUint64), v)

	v, err = c.Convert(reflect.TypeOf(celsius(0)), "21.5")
	assert.NoError(t, err)
	assert.Equal(t, celsius(21.5), v)

	v, err = c.Convert(reflect.TypeOf(int64(0)), wrapperspb.Int64(5))
	assert.NoError(t, err)
	assert.Equal(t, int64(5), v)

	x := 5
	v, err = c.Convert(intType, &x)
	assert.NoError(t, err)
	assert.Equal(t, 5, v)

	v, err = c.Convert(intType, []string{"3", "4"})
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = c.Convert(stringType, 42)
	assert.NoError(t, err)
	assert.Equal(t, "42", v)

	_, err = c.Convert(intType, nil)
	assertCode(t, err, convert.Missing)

	_, err = c.Convert(intType, "   ")
	assertCode(t, err, convert.Missing)
}

func TestNumberConverterDefault(t *testing.T) {
	c := convert.NewNumberConverter(intType, convert.WithDefault(7))

	v, err := c.Convert(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = c.Convert(nil, "abc")
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	// the default is converted to the requested type
	v, err = c.Convert(reflect.TypeOf(int64(0)), "abc")
	assert.NoError(t, err)
	assert.Equal(t, int64(7), v)

	c = convert.NewNumberConverter(intType, convert.WithDefault(7), convert.WithoutDefault())
	_, err = c.Convert(nil, "abc")
	assertCode(t, err, convert.FailedParse)
}

func TestBigIntAndDecimalConverter(t *testing.T) {
	c := convert.NewBigIntConverter()

	v, err := c.Convert(nil, "123456789012345678901234567890")
	assert.NoError(t, err)
	assert.Equal(t, "123456789012345678901234567890", v.(*big.Int).String())

	_, err = c.Convert(nil, "1.5")
	assertCode(t, err, convert.FailedParse)

	v, err = c.Convert(nil, 3.9)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), v.(*big.Int).Int64())

	d := convert.NewDecimalConverter()

	v, err = d.Convert(nil, "12.34")
	assert.NoError(t, err)
	assert.True(t, decimal.RequireFromString("12.34").Equal(v.(decimal.Decimal)))

	v, err = d.Convert(nil, uint64(math.MaxUint64))
	assert.NoError(t, err)
	assert.Equal(t, "18446744073709551615", v.(decimal.Decimal).String())

	v, err = d.Convert(nil, 0.1)
	assert.NoError(t, err)
	assert.Equal(t, "0.1", v.(decimal.Decimal).String())

	v, err = d.Convert(nil, big.NewInt(-9))
	assert.NoError(t, err)
	assert.Equal(t, "-9", v.(decimal.Decimal).String())

	_, err = d.Convert(nil, math.NaN())
	assertCode(t, err, convert.FailedParse)
}

func TestBooleanConverter(t *testing.T) {
	c := convert.NewBooleanConverter()

	v, err := c.Convert(nil, "Yes")
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = c.Convert(nil, " off ")
	assert.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = c.Convert(nil, 0)
	assert.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = c.Convert(nil, 2.5)
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = c.Convert(nil, "maybe")
	assertCode(t, err, convert.FailedParse)

	c = convert.NewBooleanConverter(convert.WithTrueStrings("si"), convert.WithFalseStrings("no"))
	v, err = c.Convert(nil, "SI")
	assert.NoError(t, err)
	assert.Equal(t, true, v)

	_, err = c.Convert(nil, "yes")
	assert.Error(t, err)

	v, err = c.Convert(stringType, true)
	assert.NoError(t, err)
	assert.Equal(t, "true", v)
}

func TestCharacterConverter(t *testing.T) {
	c := convert.NewCharacterConverter()

	v, err := c.Convert(nil, "abc")
	assert.NoError(t, err)
	assert.Equal(t, 'a', v)

	v, err = c.Convert(nil, 66)
	assert.NoError(t, err)
	assert.Equal(t, 'B', v)

	v, err = c.Convert(stringType, 'x')
	assert.NoError(t, err)
	assert.Equal(t, "x", v)

	_, err = c.Convert(nil, "")
	assertCode(t, err, convert.Missing)
}

func TestStringConverter(t *testing.T) {
	c := convert.NewStringConverter()

	v, err := c.Convert(nil, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-05T10:30:00Z", v)

	v, err = c.Convert(nil, decimal.RequireFromString("1.50"))
	assert.NoError(t, err)
	assert.Equal(t, "1.5", v)

	v, err = c.Convert(nil, 2.5)
	assert.NoError(t, err)
	assert.Equal(t, "2.5", v)

	v, err = c.Convert(nil, celsius(-3))
	assert.NoError(t, err)
	assert.Equal(t, "-3", v)

	v, err = c.Convert(nil, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"))
	assert.NoError(t, err)
	assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", v)

	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	v, err = c.Convert(nil, person{Name: "Ada", Age: 36})
	assert.NoError(t, err)
	jsonassert.New(t).Assertf(v.(string), `{"name": "Ada", "age": 36}`)

	v, err = c.Convert(nil, map[string]any{"a": []int{1, 2}})
	assert.NoError(t, err)
	jsonassert.New(t).Assertf(v.(string), `{"a": [1, 2]}`)

	_, err = c.Convert(nil, nil)
	assertCode(t, err, convert.Missing)

	_, err = c.Convert(intType, "1")
	assertCode(t, err, convert.UnsupportedType)
}

func TestDateTimeConverter(t *testing.T) {
	c := convert.NewDateTimeConverter(convert.WithLayouts("2006-01-02", "02.01.2006"), convert.WithLocation(time.UTC))

	v, err := c.Convert(nil, "2024-03-05")
	assert.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))

	v, err = c.Convert(nil, "05.03.2024")
	assert.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))

	_, err = c.Convert(nil, "March 5th")
	assertCode(t, err, convert.FailedParse)

	v, err = c.Convert(nil, int64(0))
	assert.NoError(t, err)
	assert.True(t, time.Unix(0, 0).Equal(v.(time.Time)))

	v, err = c.Convert(stringType, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2024-03-05", v)

	v, err = c.Convert(nil, timestamppb.New(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)))
	assert.NoError(t, err)
	assert.True(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC).Equal(v.(time.Time)))

	c = convert.NewDateTimeConverter(convert.WithLocation(time.UTC))
	v, err = c.Convert(nil, "2024-03-05T10:30:00Z")
	assert.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC).Equal(v.(time.Time)))

	plusOne := time.FixedZone("UTC+1", 3600)
	c = convert.NewDateTimeConverter(convert.WithLayouts("2006-01-02 15:04"), convert.WithLocation(plusOne))
	v, err = c.Convert(stringType, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01 13:00", v)

	v, err = c.Convert(stringType, timestamppb.New(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-01 13:00", v)

	ts := convert.NewTimestampConverter()
	v, err = ts.Convert(nil, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC))
	assert.NoError(t, err)
	assert.True(t, time.Date(2024, 3, 5, 10, 30, 0, 0, time.UTC).Equal(v.(*timestamppb.Timestamp).AsTime()))
}

func TestDurationConverter(t *testing.T) {
	c := convert.NewDurationConverter()

	v, err := c.Convert(nil, "1h30m")
	assert.NoError(t, err)
	assert.Equal(t, 90*time.Minute, v)

	v, err = c.Convert(nil, "1500")
	assert.NoError(t, err)
	assert.Equal(t, 1500*time.Nanosecond, v)

	v, err = c.Convert(nil, 10)
	assert.NoError(t, err)
	assert.Equal(t, 10*time.Nanosecond, v)

	v, err = c.Convert(nil, durationpb.New(time.Second))
	assert.NoError(t, err)
	assert.Equal(t, time.Second, v)

	v, err = c.Convert(stringType, time.Minute)
	assert.NoError(t, err)
	assert.Equal(t, "1m0s", v)

	_, err = c.Convert(nil, "soon")
	assertCode(t, err, convert.FailedParse)

	pc := convert.NewProtoDurationConverter()
	v, err = pc.Convert(nil, "2s")
	assert.NoError(t, err)
	assert.Equal(t, 2*time.Second, v.(*durationpb.Duration).AsDuration())
}

func TestUUIDAndURLConverter(t *testing.T) {
	id := uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8")
	c := convert.NewUUIDConverter()

	v, err := c.Convert(nil, id.String())
	assert.NoError(t, err)
	assert.Equal(t, id, v)

	v, err = c.Convert(nil, [16]byte(id))
	assert.NoError(t, err)
	assert.Equal(t, id, v)

	v, err = c.Convert(nil, id[:])
	assert.NoError(t, err)
	assert.Equal(t, id, v)

	_, err = c.Convert(nil, "not-a-uuid")
	assertCode(t, err, convert.FailedParse)

	u := convert.NewURLConverter()
	v, err = u.Convert(nil, " https://example.com/a?b=c ")
	assert.NoError(t, err)
	assert.Equal(t, "example.com", v.(interface{ Hostname() string }).Hostname())
}

func TestTextConverter(t *testing.T) {
	c := convert.NewTextConverter(reflect.TypeOf(net.IP{}))

	v, err := c.Convert(nil, "127.0.0.1")
	assert.NoError(t, err)
	assert.True(t, net.ParseIP("127.0.0.1").Equal(v.(net.IP)))

	v, err = c.Convert(stringType, net.ParseIP("10.0.0.1"))
	assert.NoError(t, err)
	assert.Equal(t, "10.0.0.1", v)

	_, err = c.Convert(nil, "999.0.0.1")
	assertCode(t, err, convert.FailedParse)
}

func TestArrayConverter(t *testing.T) {
	c := convert.NewArrayConverter(reflect.TypeOf([]int{}), convert.NewNumberConverter(intType))

	v, err := c.Convert(nil, "{1, 2, 3}")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, v)

	v, err = c.Convert(nil, "4 5,6")
	assert.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, v)

	v, err = c.Convert(nil, []string{"7", "8"})
	assert.NoError(t, err)
	assert.Equal(t, []int{7, 8}, v)

	v, err = c.Convert(nil, 9)
	assert.NoError(t, err)
	assert.Equal(t, []int{9}, v)

	_, err = c.Convert(nil, "1;2")
	assertCode(t, err, convert.FailedParse)

	_, err = c.Convert(nil, "1,x")
	assert.ErrorIs(t, err, convert.ErrConversion)

	v, err = c.Convert(reflect.TypeOf([2]int{}), "1,2")
	assert.NoError(t, err)
	assert.Equal(t, [2]int{1, 2}, v)

	_, err = c.Convert(reflect.TypeOf([2]int{}), "1,2,3")
	assertCode(t, err, convert.Overflow)

	v, err = c.Convert(stringType, []int{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, "1", v)

	v, err = c.Convert(stringType, []int{})
	assert.NoError(t, err)
	assert.Equal(t, "", v)

	c = convert.NewArrayConverter(reflect.TypeOf([]int{}), convert.NewNumberConverter(intType),
		convert.WithOnlyFirstToString(false), convert.WithDelimiter(';'), convert.WithDefaultSize(2))
	v, err = c.Convert(stringType, []int{1, 2})
	assert.NoError(t, err)
	assert.Equal(t, "1;2", v)

	v, err = c.Convert(nil, "3;4")
	assert.NoError(t, err)
	assert.Equal(t, []int{3, 4}, v)

	v, err = c.Convert(nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0}, v)

	s := convert.NewArrayConverter(reflect.TypeOf([]string{}), convert.NewStringConverter())
	v, err = s.Convert(nil, `'a b', "c", d-1.5`)
	assert.NoError(t, err)
	assert.Equal(t, []string{"a b", "c", "d-1.5"}, v)

	tokens, err := s.ParseElements("{x y}")
	assert.NoError(t, err)
	assert.Equal(t, []string{"x", "y"}, tokens)

	d := convert.NewArrayConverter(reflect.TypeOf([]int{}), nil)
	v, err = d.Convert(nil, "5, 6")
	assert.NoError(t, err)
	assert.Equal(t, []int{5, 6}, v)
	assert.NotNil(t, convert.Default())
}
