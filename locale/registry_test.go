package locale_test

import (
	"reflect"
	"testing"

	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/locale"
	"github.com/shopspring/decimal"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestRegistry(t *testing.T) {
	r := locale.NewRegistry()
	assert.Equal(t, language.AmericanEnglish, r.DefaultLocale())

	v, err := r.ConvertIn(language.German, "1.234,56", float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	v, err = r.Convert("1,234.56", float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, 1234.56, v)

	v, err = r.ConvertIn(language.German, "21,5", reflect.TypeOf(celsius(0)), "")
	assert.NoError(t, err)
	assert.Equal(t, celsius(21.5), v)

	s, err := r.ToStringIn(language.German, 1234.56, "")
	assert.NoError(t, err)
	assert.Equal(t, "1.234,56", s)

	s, err = r.ToString(nil, "")
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	v, err = r.ConvertStrings([]string{"1", "2,000"}, intType, "")
	assert.NoError(t, err)
	assert.Equal(t, []int{1, 2000}, v)

	_, err = r.ConvertStrings([]string{"1", "x"}, reflect.TypeOf([]int{}), "")
	assert.Error(t, err)

	v, err = r.ConvertStringsIn(language.German, []string{"1,5", "2,5"}, reflect.TypeOf([3]float64{}), "")
	assert.NoError(t, err)
	assert.Equal(t, [3]float64{1.5, 2.5, 0}, v)

	_, err = r.ConvertStrings([]string{"1", "2", "3"}, reflect.TypeOf([2]int{}), "")
	assert.ErrorIs(t, err, convert.ErrConversion)

	_, err = r.ConvertStrings([]string{"1"}, nil, "")
	assert.ErrorIs(t, err, convert.ErrConversion)

	_, ok := r.Lookup(reflect.TypeOf(struct{}{}), language.German)
	assert.False(t, ok)

	// the standard converters report failures
	_, err = r.Convert("garbage", intType, "")
	assert.ErrorIs(t, err, convert.ErrConversion)
}

func TestRegistryRegister(t *testing.T) {
	r := locale.NewRegistry()
	percent := locale.NewDecimalConverter(locale.WithLocale(language.AmericanEnglish), locale.WithPattern("0.00%"))
	r.Register(percent, decimalType, language.AmericanEnglish)

	c, ok := r.Lookup(decimalType, language.Und)
	assert.True(t, ok)
	assert.Same(t, percent, c)

	v, err := r.Convert("12.50%", decimalType, "")
	assert.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("0.125")))

	// other locales keep the standard converter
	v, err = r.ConvertIn(language.German, "12,5", decimalType, "")
	assert.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("12.5")))

	r.DeregisterType(decimalType, language.AmericanEnglish)
	_, ok = r.Lookup(decimalType, language.AmericanEnglish)
	assert.False(t, ok)

	r.DeregisterLocale(language.AmericanEnglish)
	v, err = r.Convert("1,234.5", decimalType, "")
	assert.NoError(t, err)
	assert.True(t, v.(decimal.Decimal).Equal(decimal.RequireFromString("1234.5")))

	r.Register(percent, decimalType, language.Und)
	r.Deregister()
	c, ok = r.Lookup(decimalType, language.AmericanEnglish)
	assert.True(t, ok)
	assert.NotSame(t, percent, c)
}

func TestRegistryDefaultLocale(t *testing.T) {
	r := locale.NewRegistry(locale.WithDefaultLocale(language.German))
	v, err := r.Convert("1.234,5", float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	r.SetDefaultLocale(language.Und)
	assert.Equal(t, language.AmericanEnglish, r.DefaultLocale())
	v, err = r.Convert("1,234.5", float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	localized := locale.NewRegistry(locale.ApplyLocalized(true))
	assert.True(t, localized.ApplyLocalized())
	v, err = localized.ConvertIn(language.German, "1.234,50", float64Type, "#.##0,00")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, v)
}

func TestDefaultRegistry(t *testing.T) {
	old := locale.SetDefault(locale.NewRegistry(locale.WithDefaultLocale(language.German)))
	defer locale.SetDefault(old)

	v, err := locale.Convert("1.234,5", float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	s, err := locale.ToString(1234.5, "#,##0.00")
	assert.NoError(t, err)
	assert.Equal(t, "1.234,50", s)

	s, err = locale.ToStringIn(language.AmericanEnglish, 1234.5, "#,##0.00")
	assert.NoError(t, err)
	assert.Equal(t, "1,234.50", s)

	v, err = locale.ConvertStrings([]string{"1,5", "2,5"}, float64Type, "")
	assert.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2.5}, v)
}

func TestLocaleRoundTrip(t *testing.T) {
	Convey("Given the same amount written for two locales", t, func() {
		r := locale.NewRegistry()

		Convey("both parse to the same number", func() {
			german, err := r.ConvertIn(language.German, "1.234,56", decimalType, "")
			So(err, ShouldBeNil)
			american, err := r.ConvertIn(language.AmericanEnglish, "1,234.56", decimalType, "")
			So(err, ShouldBeNil)
			So(german.(decimal.Decimal).Equal(american.(decimal.Decimal)), ShouldBeTrue)
			So(german.(decimal.Decimal).String(), ShouldEqual, "1234.56")
		})

		Convey("formatting for the other locale gives the other text", func() {
			v, err := r.ConvertIn(language.German, "1.234,56", float64Type, "#,##0.00")
			So(err, ShouldBeNil)
			s, err := r.ToStringIn(language.AmericanEnglish, v, "#,##0.00")
			So(err, ShouldBeNil)
			So(s, ShouldEqual, "1,234.56")
		})

		Convey("a locale is resolved to its closest supported one", func() {
			symbols := locale.SymbolsOf(locale.MustParseLocale("de_DE"))
			So(symbols.Decimal, ShouldEqual, ',')
			So(locale.SymbolsOf(language.AmericanEnglish).Decimal, ShouldEqual, '.')
		})
	})
}

func TestBridgeOptions(t *testing.T) {
	opt, err := locale.NumberFormatOption(language.German, "#,##0.00", false)
	assert.NoError(t, err)
	c := convert.NewNumberConverter(float64Type, opt)

	v, err := c.Convert(float64Type, "1.234,50")
	assert.NoError(t, err)
	assert.Equal(t, 1234.5, v)

	v, err = c.Convert(stringType, 1234.5)
	assert.NoError(t, err)
	assert.Equal(t, "1.234,50", v)

	_, err = locale.NumberFormatOption(language.German, "#,##0.0#0", false)
	assert.ErrorIs(t, err, locale.ErrInvalidPattern)

	opt, err = locale.DateFormatOption(language.German, "dd.MM.yyyy", "yyyy-MM-dd")
	assert.NoError(t, err)
	dates := convert.NewDateTimeConverter(opt)

	v, err = dates.Convert(timeType, "2023-04-05")
	assert.NoError(t, err)
	assert.Equal(t, "05.04.2023", mustString(t, dates, v))
}

func mustString(t *testing.T, c convert.Converter, v any) string {
	t.Helper()
	s, err := c.Convert(stringType, v)
	assert.NoError(t, err)
	return s.(string)
}
