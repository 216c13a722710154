package locale

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultNumberPattern is used when no number pattern is given.
const DefaultNumberPattern = "#,##0.###"

// NumberFormat parses and formats decimal numbers with a DecimalFormat style
// pattern such as "#,##0.00", "0.###E0", "#%" or "#,##0;(#,##0)".
//
// A NumberFormat is immutable and safe for concurrent use.
type NumberFormat struct {
	symbols *Symbols
	pattern string

	posPrefix string
	posSuffix string
	negPrefix string
	negSuffix string

	shift         int32
	grouping      bool
	groupSize     int
	minInt        int
	minFrac       int
	maxFrac       int
	decimalAlways bool
	exponent      bool
	minExpDigits  int
}

// NewNumberFormat compiles pattern for locale l. An empty pattern selects
// DefaultNumberPattern.
func NewNumberFormat(l Locale, pattern string) (*NumberFormat, error) {
	if pattern == "" {
		pattern = DefaultNumberPattern
	}
	f := &NumberFormat{symbols: SymbolsOf(l)}
	if err := f.compile(pattern); err != nil {
		return nil, err
	}
	return f, nil
}

// NewLocalizedNumberFormat compiles a pattern written with the symbols of l,
// for example "#.##0,00" for German.
func NewLocalizedNumberFormat(l Locale, pattern string) (*NumberFormat, error) {
	symbols := SymbolsOf(l)
	if pattern == "" {
		pattern = DefaultNumberPattern
	} else {
		pattern = symbols.delocalize(pattern)
	}
	f := &NumberFormat{symbols: symbols}
	if err := f.compile(pattern); err != nil {
		return nil, err
	}
	return f, nil
}

// Pattern returns the compiled pattern in its standard form.
func (f *NumberFormat) Pattern() string {
	return f.pattern
}

func (f *NumberFormat) Symbols() *Symbols {
	return f.symbols
}

func (s *Symbols) delocalize(pattern string) string {
	var b strings.Builder
	quoted := false
	for _, r := range pattern {
		switch {
		case r == '\'':
			quoted = !quoted
			b.WriteRune(r)
		case quoted:
			b.WriteRune(r)
		case r == s.Group || (isSpaceLike(s.Group) && isSpaceLike(r)):
			b.WriteRune(',')
		case r == s.Decimal:
			b.WriteRune('.')
		case r == s.Minus:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type subpattern struct {
	prefix        string
	suffix        string
	shift         int32
	grouping      bool
	groupSize     int
	minInt        int
	minFrac       int
	maxFrac       int
	decimalAlways bool
	exponent      bool
	minExpDigits  int
}

func (f *NumberFormat) compile(pattern string) error {
	parts, err := splitUnquoted(pattern, ';')
	if err != nil {
		return err
	}
	if len(parts) > 2 {
		return fmt.Errorf("%w: %q has more than one negative subpattern", ErrInvalidPattern, pattern)
	}
	pos, err := f.parseSubpattern(parts[0])
	if err != nil {
		return fmt.Errorf("%w: %q, %v", ErrInvalidPattern, pattern, err)
	}
	f.pattern = pattern
	f.posPrefix, f.posSuffix = pos.prefix, pos.suffix
	f.shift = pos.shift
	f.grouping, f.groupSize = pos.grouping, pos.groupSize
	f.minInt, f.minFrac, f.maxFrac = pos.minInt, pos.minFrac, pos.maxFrac
	f.decimalAlways = pos.decimalAlways
	f.exponent, f.minExpDigits = pos.exponent, pos.minExpDigits

	if len(parts) == 2 {
		neg, err := f.parseSubpattern(parts[1])
		if err != nil {
			return fmt.Errorf("%w: %q, %v", ErrInvalidPattern, pattern, err)
		}
		f.negPrefix, f.negSuffix = neg.prefix, neg.suffix
	} else {
		f.negPrefix, f.negSuffix = string(f.symbols.Minus)+f.posPrefix, f.posSuffix
	}
	return nil
}

func splitUnquoted(pattern string, sep rune) ([]string, error) {
	var parts []string
	quoted := false
	start := 0
	for i, r := range pattern {
		switch {
		case r == '\'':
			quoted = !quoted
		case r == sep && !quoted:
			parts = append(parts, pattern[start:i])
			start = i + len(string(sep))
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: %q has an unterminated quote", ErrInvalidPattern, pattern)
	}
	return append(parts, pattern[start:]), nil
}

func (f *NumberFormat) parseSubpattern(p string) (subpattern, error) {
	const (
		phasePrefix = iota
		phaseNumber
		phaseSuffix
	)
	var (
		sp          subpattern
		prefix      strings.Builder
		suffix      strings.Builder
		phase       = phasePrefix
		quoted      bool
		intZeros    int
		intHashes   int
		fracHash    bool
		seenDecimal bool
		groupDigits = -1
	)
	affix := func() *strings.Builder {
		if phase == phasePrefix {
			return &prefix
		}
		phase = phaseSuffix
		return &suffix
	}

	runes := []rune(p)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\'' {
			if i+1 < len(runes) && runes[i+1] == '\'' {
				affix().WriteRune('\'')
				i++
				continue
			}
			affix()
			quoted = !quoted
			continue
		}
		if quoted {
			affix().WriteRune(r)
			continue
		}
		if phase != phaseSuffix && strings.ContainsRune("#0,.", r) || phase == phaseNumber && r == 'E' {
			phase = phaseNumber
			switch r {
			case '#':
				if seenDecimal {
					sp.maxFrac++
					fracHash = true
					break
				}
				if intZeros > 0 {
					return sp, fmt.Errorf("unexpected '#' after '0'")
				}
				intHashes++
				if groupDigits >= 0 {
					groupDigits++
				}
			case '0':
				if seenDecimal {
					if fracHash {
						return sp, fmt.Errorf("unexpected '0' after '#'")
					}
					sp.minFrac++
					sp.maxFrac++
					break
				}
				intZeros++
				if groupDigits >= 0 {
					groupDigits++
				}
			case ',':
				if seenDecimal {
					return sp, fmt.Errorf("grouping separator in fraction")
				}
				sp.grouping = true
				groupDigits = 0
			case '.':
				if seenDecimal {
					return sp, fmt.Errorf("multiple decimal separators")
				}
				seenDecimal = true
			case 'E':
				for i+1 < len(runes) && runes[i+1] == '0' {
					sp.minExpDigits++
					i++
				}
				if sp.minExpDigits == 0 {
					return sp, fmt.Errorf("missing exponent digits")
				}
				sp.exponent = true
				phase = phaseSuffix
			}
			continue
		}
		switch r {
		case '%':
			if sp.shift != 0 {
				return sp, fmt.Errorf("multiple percent or per mille signs")
			}
			sp.shift = 2
			affix().WriteRune(f.symbols.Percent)
		case '‰':
			if sp.shift != 0 {
				return sp, fmt.Errorf("multiple percent or per mille signs")
			}
			sp.shift = 3
			affix().WriteRune(f.symbols.PerMill)
		case '-':
			affix().WriteRune(f.symbols.Minus)
		case '¤':
			return sp, fmt.Errorf("currency sign is not supported")
		default:
			affix().WriteRune(r)
		}
	}
	if quoted {
		return sp, fmt.Errorf("unterminated quote")
	}
	if intZeros+intHashes+sp.maxFrac == 0 {
		return sp, fmt.Errorf("missing digits")
	}
	if sp.grouping {
		if groupDigits <= 0 {
			return sp, fmt.Errorf("empty grouping")
		}
		sp.groupSize = groupDigits
	}
	sp.minInt = intZeros
	sp.decimalAlways = seenDecimal && sp.maxFrac == 0
	sp.prefix = prefix.String()
	sp.suffix = suffix.String()
	return sp, nil
}

// Format formats d, rounding half-even to the maximum fraction digits.
func (f *NumberFormat) Format(d decimal.Decimal) string {
	neg := d.Sign() < 0
	d = d.Abs()
	if f.shift != 0 {
		d = d.Shift(f.shift)
	}
	var (
		body string
		zero bool
	)
	if f.exponent {
		body, zero = f.formatExponent(d)
	} else {
		body, zero = f.formatFixed(d, f.minInt, f.grouping)
	}
	if neg && !zero {
		return f.negPrefix + body + f.negSuffix
	}
	return f.posPrefix + body + f.posSuffix
}

func (f *NumberFormat) formatFixed(d decimal.Decimal, minInt int, grouping bool) (string, bool) {
	rounded := d.RoundBank(int32(f.maxFrac))
	intDigits, fracDigits, _ := strings.Cut(rounded.StringFixed(int32(f.maxFrac)), ".")
	for len(fracDigits) > f.minFrac && strings.HasSuffix(fracDigits, "0") {
		fracDigits = fracDigits[:len(fracDigits)-1]
	}
	if intDigits == "0" && minInt == 0 {
		intDigits = ""
	}
	if len(intDigits) < minInt {
		intDigits = strings.Repeat("0", minInt-len(intDigits)) + intDigits
	}
	if intDigits == "" && fracDigits == "" {
		intDigits = "0"
	}
	if grouping {
		intDigits = group(intDigits, f.groupSize, f.symbols.Group)
	}
	if fracDigits == "" && !f.decimalAlways {
		return intDigits, rounded.IsZero()
	}
	return intDigits + string(f.symbols.Decimal) + fracDigits, rounded.IsZero()
}

func (f *NumberFormat) formatExponent(d decimal.Decimal) (string, bool) {
	intCount := f.minInt
	if intCount < 1 {
		intCount = 1
	}
	exp := 0
	mantissa := d
	if !d.IsZero() {
		magnitude := len(d.Coefficient().String()) + int(d.Exponent()) - 1
		exp = magnitude - (intCount - 1)
		mantissa = d.Shift(int32(-exp)).RoundBank(int32(f.maxFrac))
		if mantissa.GreaterThanOrEqual(decimal.New(1, int32(intCount))) {
			exp++
			mantissa = d.Shift(int32(-exp)).RoundBank(int32(f.maxFrac))
		}
	}
	body, zero := f.formatFixed(mantissa, intCount, false)
	if zero {
		exp = 0
	}
	var b strings.Builder
	b.WriteString(body)
	b.WriteString(f.symbols.Exponent)
	if exp < 0 {
		b.WriteRune(f.symbols.Minus)
		exp = -exp
	}
	digits := fmt.Sprint(exp)
	if len(digits) < f.minExpDigits {
		b.WriteString(strings.Repeat("0", f.minExpDigits-len(digits)))
	}
	b.WriteString(digits)
	return b.String(), zero
}

func group(digits string, size int, sep rune) string {
	if size <= 0 || len(digits) <= size {
		return digits
	}
	var b strings.Builder
	first := len(digits) % size
	if first == 0 {
		first = size
	}
	b.WriteString(digits[:first])
	for i := first; i < len(digits); i += size {
		b.WriteRune(sep)
		b.WriteString(digits[i : i+size])
	}
	return b.String()
}

// Parse parses s. The whole input, apart from surrounding whitespace, must
// match the pattern.
func (f *NumberFormat) Parse(s string) (decimal.Decimal, error) {
	text := strings.TrimSpace(s)
	if text == "" {
		return decimal.Zero, fmt.Errorf("%w: empty input", ErrUnparseable)
	}
	type affixes struct {
		prefix string
		suffix string
		neg    bool
	}
	candidates := []affixes{
		{prefix: f.negPrefix, suffix: f.negSuffix, neg: true},
		{prefix: f.posPrefix, suffix: f.posSuffix},
	}
	if f.symbols.Minus != '-' {
		candidates = append(candidates, affixes{prefix: "-" + f.posPrefix, suffix: f.posSuffix, neg: true})
	}
	// the longest matching prefix decides the sign
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && len(candidates[j].prefix) > len(candidates[j-1].prefix); j-- {
			candidates[j], candidates[j-1] = candidates[j-1], candidates[j]
		}
	}

	var lastErr error
	for _, c := range candidates {
		if !strings.HasPrefix(text, c.prefix) {
			continue
		}
		rest := text[len(c.prefix):]
		if !strings.HasSuffix(rest, c.suffix) || len(rest) < len(c.suffix) {
			continue
		}
		d, err := f.parseNumber(rest[:len(rest)-len(c.suffix)])
		if err != nil {
			lastErr = err
			continue
		}
		if c.neg {
			d = d.Neg()
		}
		return d, nil
	}
	if lastErr != nil {
		return decimal.Zero, fmt.Errorf("%w: %q, %v", ErrUnparseable, s, lastErr)
	}
	return decimal.Zero, fmt.Errorf("%w: %q does not match %q", ErrUnparseable, s, f.pattern)
}

func (f *NumberFormat) parseNumber(body string) (decimal.Decimal, error) {
	var (
		intDigits   strings.Builder
		fracDigits  strings.Builder
		seenDecimal bool
		seenDigit   bool
		exp         int32
	)
	runes := []rune(body)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r >= '0' && r <= '9':
			seenDigit = true
			if seenDecimal {
				fracDigits.WriteRune(r)
			} else {
				intDigits.WriteRune(r)
			}
		case r == f.symbols.Decimal && !seenDecimal:
			seenDecimal = true
		case f.grouping && seenDigit && !seenDecimal && f.isGroup(r):
		case seenDigit && (strings.HasPrefix(string(runes[i:]), f.symbols.Exponent) || r == 'e'):
			n := len([]rune(f.symbols.Exponent))
			if r == 'e' {
				n = 1
			}
			e, err := parseExponent(runes[i+n:], f.symbols.Minus)
			if err != nil {
				return decimal.Zero, err
			}
			exp = e
			i = len(runes)
		default:
			return decimal.Zero, fmt.Errorf("unexpected %q", r)
		}
	}
	if !seenDigit {
		return decimal.Zero, fmt.Errorf("no digits")
	}
	number := intDigits.String()
	if number == "" {
		number = "0"
	}
	if fracDigits.Len() > 0 {
		number += "." + fracDigits.String()
	}
	d, err := decimal.NewFromString(number)
	if err != nil {
		return decimal.Zero, err
	}
	if exp != 0 {
		d = d.Shift(exp)
	}
	if f.shift != 0 {
		d = d.Shift(-f.shift)
	}
	return d, nil
}

func (f *NumberFormat) isGroup(r rune) bool {
	group := f.symbols.Group
	return r == group ||
		(isSpaceLike(group) && isSpaceLike(r)) ||
		(group == '’' && r == '\'')
}

func parseExponent(runes []rune, minus rune) (int32, error) {
	neg := false
	if len(runes) > 0 && (runes[0] == '-' || runes[0] == minus || runes[0] == '+') {
		neg = runes[0] != '+'
		runes = runes[1:]
	}
	if len(runes) == 0 {
		return 0, fmt.Errorf("missing exponent digits")
	}
	var exp int32
	for _, r := range runes {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("unexpected %q in exponent", r)
		}
		exp = exp*10 + (r - '0')
		if exp > 100000 {
			return 0, fmt.Errorf("exponent out of range")
		}
	}
	if neg {
		exp = -exp
	}
	return exp, nil
}
