package bean_test

import (
	"testing"
	"time"

	"github.com/go-leo/beanutils/bean"
	"github.com/go-leo/beanutils/convert"
	"github.com/go-leo/beanutils/locale"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type Invoice struct {
	Amount float64
	Count  int
	Due    time.Time
	Note   string
	Lines  map[string]float64
	Tip    *float64
	Paid   *time.Time
}

func newLocaleUtils(l locale.Locale, opts ...bean.Option) *bean.LocaleUtils {
	opts = append([]bean.Option{
		bean.WithLocales(locale.NewRegistry()),
		bean.WithConverters(convert.NewRegistry(convert.ThrowException(true))),
	}, opts...)
	return bean.NewLocaleUtils(l, opts...)
}

func TestLocaleUtilsSetProperty(t *testing.T) {
	u := newLocaleUtils(language.German)
	invoice := &Invoice{}

	require.NoError(t, u.SetProperty(invoice, "Amount", "1.234,56", ""))
	require.NoError(t, u.SetProperty(invoice, "Count", "1.234", ""))
	require.NoError(t, u.SetProperty(invoice, "Due", "24.12.2023", "dd.MM.yyyy"))
	require.NoError(t, u.SetProperty(invoice, "Note", "hallo", ""))
	require.NoError(t, u.SetProperty(invoice, "Lines(a)", "0,5", ""))
	require.NoError(t, u.SetProperty(invoice, "Missing", "1", ""))

	assert.Equal(t, 1234.56, invoice.Amount)
	assert.Equal(t, 1234, invoice.Count)
	assert.Equal(t, 2023, invoice.Due.Year())
	assert.Equal(t, time.December, invoice.Due.Month())
	assert.Equal(t, 24, invoice.Due.Day())
	assert.Equal(t, "hallo", invoice.Note)
	assert.Equal(t, map[string]float64{"a": 0.5}, invoice.Lines)

	require.NoError(t, u.SetProperty(invoice, "Count", 5, ""))
	assert.Equal(t, 5, invoice.Count)

	assert.ErrorIs(t, u.SetProperty(invoice, "Amount", "1,234.56", ""), locale.ErrUnparseable)

	require.NoError(t, u.SetProperty(invoice, "Tip", "1.234,56", ""))
	require.NoError(t, u.SetProperty(invoice, "Paid", "02.01.2024", "dd.MM.yyyy"))
	if assert.NotNil(t, invoice.Tip) {
		assert.Equal(t, 1234.56, *invoice.Tip)
	}
	if assert.NotNil(t, invoice.Paid) {
		assert.Equal(t, 2024, invoice.Paid.Year())
		assert.Equal(t, time.January, invoice.Paid.Month())
		assert.Equal(t, 2, invoice.Paid.Day())
	}
	assert.ErrorIs(t, u.SetProperty(invoice, "Tip", "abc", ""), locale.ErrUnparseable)

	require.NoError(t, u.SetProperty(invoice, "Tip", "", ""))
	assert.Nil(t, invoice.Tip)
}

func TestLocaleUtilsGetProperty(t *testing.T) {
	u := newLocaleUtils(language.German)
	invoice := &Invoice{
		Amount: 1234.5,
		Due:    time.Date(2023, 12, 24, 0, 0, 0, 0, time.Local),
	}

	s, err := u.GetProperty(invoice, "Amount", "#,##0.00")
	assert.NoError(t, err)
	assert.Equal(t, "1.234,50", s)

	s, err = u.GetProperty(invoice, "Due", "yyyy-MM-dd")
	assert.NoError(t, err)
	assert.Equal(t, "2023-12-24", s)

	s, err = u.GetProperty(invoice, "Lines(x)", "")
	assert.NoError(t, err)
	assert.Equal(t, "", s)

	u.Pattern = "#,##0.0"
	s, err = u.GetProperty(invoice, "Amount", "")
	assert.NoError(t, err)
	assert.Equal(t, "1.234,5", s)

	us := newLocaleUtils(language.AmericanEnglish)
	s, err = us.GetProperty(invoice, "Amount", "#,##0.00")
	assert.NoError(t, err)
	assert.Equal(t, "1,234.50", s)
}

func TestLocaleUtilsPopulateDescribe(t *testing.T) {
	u := newLocaleUtils(language.German)
	invoice := &Invoice{}
	require.NoError(t, u.Populate(invoice, map[string]any{
		"Amount": "2,5",
		"Count":  "3",
	}))
	assert.Equal(t, 2.5, invoice.Amount)
	assert.Equal(t, 3, invoice.Count)

	description, err := u.Describe(invoice)
	require.NoError(t, err)
	assert.Equal(t, "2,5", description["Amount"])
	assert.Equal(t, "3", description["Count"])
	assert.Equal(t, "", description["Lines"])
}
