package convert_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-viper/mapstructure/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type label struct {
	Text string
}

func TestRegistryConvert(t *testing.T) {
	r := convert.NewRegistry(convert.ThrowException(true))

	v, err := r.Convert("42", intType)
	assert.NoError(t, err)
	assert.Equal(t, 42, v)

	v, err = r.Convert(42, stringType)
	assert.NoError(t, err)
	assert.Equal(t, "42", v)

	v, err = r.Convert([]int{7, 8}, stringType)
	assert.NoError(t, err)
	assert.Equal(t, "7", v)

	v, err = r.Convert("2024-01-02T03:04:05Z", reflect.TypeOf(time.Time{}))
	assert.NoError(t, err)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(v.(time.Time)))

	v, err = r.Convert(`{"x": 1, "y": 2}`, reflect.TypeOf(point{}))
	assert.NoError(t, err)
	assert.Equal(t, point{X: 1, Y: 2}, v)

	v, err = r.Convert("5", reflect.TypeOf((*int)(nil)))
	assert.NoError(t, err)
	assert.Equal(t, 5, *v.(*int))

	v, err = r.Convert(celsius(3), intType)
	assert.NoError(t, err)
	assert.Equal(t, 3, v)

	v, err = r.Convert("1,2,3", reflect.TypeOf([]uuid.UUID{}))
	assert.Error(t, err)
	assert.Nil(t, v)

	p := point{X: 1}
	v, err = r.Convert(p, reflect.TypeOf((*any)(nil)).Elem())
	assert.NoError(t, err)
	assert.Equal(t, p, v)

	_, err = r.Convert(point{}, reflect.TypeOf(label{}))
	assertCode(t, err, convert.Unregistered)

	_, err = r.Convert(nil, reflect.TypeOf(label{}))
	assertCode(t, err, convert.Missing)

	_, err = r.Convert("abc", intType)
	assertCode(t, err, convert.FailedParse)
}

func TestRegistryDefaults(t *testing.T) {
	r := convert.NewRegistry()

	v, err := r.Convert("abc", intType)
	assert.NoError(t, err)
	assert.Equal(t, 0, v)

	v, err = r.Convert(nil, reflect.TypeOf(false))
	assert.NoError(t, err)
	assert.Equal(t, false, v)

	r = convert.NewRegistry(convert.DefaultZero(false))
	v, err = r.Convert("abc", intType)
	assert.NoError(t, err)
	assert.Nil(t, v)

	r = convert.NewRegistry(convert.DefaultArraySize(3))
	v, err = r.Convert(nil, reflect.TypeOf([]int{}))
	assert.NoError(t, err)
	assert.Equal(t, []int{0, 0, 0}, v)
}

func TestRegistryRegister(t *testing.T) {
	r := convert.NewRegistry(convert.ThrowException(true))
	celsiusType := reflect.TypeOf(celsius(0))

	c, ok := r.Lookup(celsiusType)
	assert.True(t, ok)
	assert.NotNil(t, c)

	r.Register(celsiusType, convert.ConverterFunc(func(typ reflect.Type, value any) (any, error) {
		return celsius(100), nil
	}))
	v, err := r.Convert("1", celsiusType)
	assert.NoError(t, err)
	assert.Equal(t, celsius(100), v)

	r.Deregister(celsiusType)
	v, err = r.Convert("1", celsiusType)
	assert.NoError(t, err)
	assert.Equal(t, celsius(1), v)

	r.Deregister(intType)
	_, ok = r.Lookup(intType)
	assert.False(t, ok)

	r.DeregisterAll()
	_, ok = r.Lookup(intType)
	assert.True(t, ok)
	_, err = r.Convert("abc", intType)
	assert.Error(t, err)

	assert.Contains(t, r.Types(), intType)
	assert.Contains(t, r.Types(), reflect.TypeOf([]string{}))
}

func TestRegistryStrings(t *testing.T) {
	r := convert.NewRegistry(convert.ThrowException(true))

	v, err := r.ConvertStrings([]string{"1", "2"}, intType)
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2}, v)

	v, err = r.ConvertStrings([]string{"true", "no"}, reflect.TypeOf([]bool{}))
	assert.NoError(t, err)
	assert.Equal(t, []bool{true, false}, v)

	v, err = r.ConvertString("1s", reflect.TypeOf(time.Duration(0)))
	assert.NoError(t, err)
	assert.Equal(t, time.Second, v)

	s, err := r.ToString(nil)
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = r.ToString([]string{})
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	s, err = r.ToString([]float64{1.5, 2})
	assert.NoError(t, err)
	assert.Equal(t, "1.5", s)

	s, err = r.ToString(true)
	assert.NoError(t, err)
	assert.Equal(t, "true", s)

	d, err := convert.To[time.Duration](r, "2m")
	assert.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	n, err := convert.To[int64](r, "12")
	assert.NoError(t, err)
	assert.Equal(t, int64(12), n)

	v, err = r.AsConverter().Convert(intType, "9")
	assert.NoError(t, err)
	assert.Equal(t, 9, v)
}

func TestDefaultRegistry(t *testing.T) {
	r := convert.NewRegistry(convert.ThrowException(true))
	old := convert.SetDefault(r)
	defer convert.SetDefault(old)

	assert.Same(t, r, convert.Default())

	_, err := convert.Convert("abc", intType)
	assert.Error(t, err)

	v, err := convert.ConvertString("7", intType)
	assert.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = convert.ConvertStrings([]string{"7"}, intType)
	assert.NoError(t, err)
	assert.Equal(t, []int{7}, v)

	s, err := convert.ToString(12)
	assert.NoError(t, err)
	assert.Equal(t, "12", s)

	convert.Register(reflect.TypeOf(label{}), convert.ConverterFunc(func(typ reflect.Type, value any) (any, error) {
		return label{Text: "fixed"}, nil
	}))
	_, ok := convert.Lookup(reflect.TypeOf(label{}))
	assert.True(t, ok)
	convert.Deregister(reflect.TypeOf(label{}))
	_, ok = convert.Lookup(reflect.TypeOf(label{}))
	assert.False(t, ok)
}

func TestDecodeHook(t *testing.T) {
	type config struct {
		Timeout time.Duration
		Port    int
		Started time.Time
		ID      uuid.UUID
		Ratios  []float64
		Name    string
	}
	input := map[string]any{
		"timeout": "2s",
		"port":    "8080",
		"started": "2024-01-02T03:04:05Z",
		"id":      "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"ratios":  "0.5, 1.5",
		"name":    "svc",
	}

	var cfg config
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: convert.DecodeHook(convert.NewRegistry(convert.ThrowException(true))),
		Result:     &cfg,
	})
	require.NoError(t, err)
	require.NoError(t, decoder.Decode(input))

	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.Equal(t, 8080, cfg.Port)
	assert.True(t, time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC).Equal(cfg.Started))
	assert.Equal(t, uuid.MustParse("6ba7b810-9dad-11d1-80b4-00c04fd430c8"), cfg.ID)
	assert.Equal(t, []float64{0.5, 1.5}, cfg.Ratios)
	assert.Equal(t, "svc", cfg.Name)
}
