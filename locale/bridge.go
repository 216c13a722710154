package locale

import (
	"github.com/go-leo/beanutils/convert"
)

// NumberFormatOption makes a plain convert number converter parse and format
// with a locale pattern.
func NumberFormatOption(l Locale, pattern string, localized bool) (convert.Option, error) {
	var (
		format *NumberFormat
		err    error
	)
	if localized {
		format, err = NewLocalizedNumberFormat(l, pattern)
	} else {
		format, err = NewNumberFormat(l, pattern)
	}
	if err != nil {
		return nil, err
	}
	return convert.WithNumberFormat(format), nil
}

// DateFormatOption makes a plain convert date converter try the given
// patterns in order. The first one is used for formatting.
func DateFormatOption(l Locale, patterns ...string) (convert.Option, error) {
	formats := make([]convert.DateFormat, 0, len(patterns))
	for _, pattern := range patterns {
		format, err := NewDateFormat(l, pattern)
		if err != nil {
			return nil, err
		}
		formats = append(formats, format)
	}
	return convert.WithDateFormats(formats...), nil
}
