package locale

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

const dateLetters = "GyYMLdDEuaHkKhmsSzZX"

type dateToken struct {
	letter  rune
	count   int
	literal string
}

func (t dateToken) numeric() bool {
	switch t.letter {
	case 'y', 'Y', 'd', 'D', 'u', 'H', 'k', 'K', 'h', 'm', 's', 'S':
		return true
	case 'M', 'L':
		return t.count <= 2
	default:
		return false
	}
}

// DateFormat parses and formats times with a SimpleDateFormat style pattern
// such as "dd.MM.yyyy HH:mm" or "EEE, d MMM yyyy h:mm a".
//
// Parsing is strict unless Lenient(true) is set: out of range fields are
// rejected instead of rolled over. A DateFormat is immutable and safe for
// concurrent use.
type DateFormat struct {
	symbols  *Symbols
	pattern  string
	tokens   []dateToken
	location *time.Location
	lenient  bool
	now      func() time.Time
}

// NewDateFormat compiles pattern for locale l. Times without a zone in the
// input are interpreted in time.Local, see In.
func NewDateFormat(l Locale, pattern string) (*DateFormat, error) {
	tokens, err := compileDatePattern(pattern)
	if err != nil {
		return nil, err
	}
	return &DateFormat{
		symbols:  SymbolsOf(l),
		pattern:  pattern,
		tokens:   tokens,
		location: time.Local,
		now:      time.Now,
	}, nil
}

func (f *DateFormat) Pattern() string {
	return f.pattern
}

// In returns a copy of f that formats in, and parses zoneless input in, loc.
func (f *DateFormat) In(loc *time.Location) *DateFormat {
	c := *f
	if loc != nil {
		c.location = loc
	}
	return &c
}

// Lenient returns a copy of f with lenient parsing switched on or off.
func (f *DateFormat) Lenient(lenient bool) *DateFormat {
	c := *f
	c.lenient = lenient
	return &c
}

func compileDatePattern(pattern string) ([]dateToken, error) {
	var (
		tokens  []dateToken
		literal strings.Builder
		quoted  bool
	)
	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, dateToken{literal: literal.String()})
			literal.Reset()
		}
	}
	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '\'':
			if i+1 < len(runes) && runes[i+1] == '\'' {
				literal.WriteRune('\'')
				i++
				continue
			}
			quoted = !quoted
		case quoted:
			literal.WriteRune(r)
		case r < utf8.RuneSelf && unicode.IsLetter(r):
			if !strings.ContainsRune(dateLetters, r) {
				return nil, fmt.Errorf("%w: %q, illegal letter %q", ErrInvalidPattern, pattern, r)
			}
			flush()
			count := 1
			for i+1 < len(runes) && runes[i+1] == r {
				count++
				i++
			}
			tokens = append(tokens, dateToken{letter: r, count: count})
		default:
			literal.WriteRune(r)
		}
	}
	if quoted {
		return nil, fmt.Errorf("%w: %q has an unterminated quote", ErrInvalidPattern, pattern)
	}
	flush()
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty pattern", ErrInvalidPattern)
	}
	return tokens, nil
}

// Format formats t in the location of f.
func (f *DateFormat) Format(t time.Time) string {
	t = t.In(f.location)
	var b strings.Builder
	for _, tok := range f.tokens {
		if tok.letter == 0 {
			b.WriteString(tok.literal)
			continue
		}
		switch tok.letter {
		case 'G':
			if t.Year() > 0 {
				b.WriteString("AD")
			} else {
				b.WriteString("BC")
			}
		case 'y', 'Y':
			year := t.Year()
			if year <= 0 {
				year = 1 - year
			}
			if tok.count == 2 {
				b.WriteString(pad(year%100, 2))
			} else {
				b.WriteString(pad(year, tok.count))
			}
		case 'M', 'L':
			switch {
			case tok.count >= 4:
				b.WriteString(f.symbols.MonthsWide[t.Month()-1])
			case tok.count == 3:
				b.WriteString(f.symbols.MonthsAbbreviated[t.Month()-1])
			default:
				b.WriteString(pad(int(t.Month()), tok.count))
			}
		case 'd':
			b.WriteString(pad(t.Day(), tok.count))
		case 'D':
			b.WriteString(pad(t.YearDay(), tok.count))
		case 'E':
			if tok.count >= 4 {
				b.WriteString(f.symbols.WeekdaysWide[t.Weekday()])
			} else {
				b.WriteString(f.symbols.WeekdaysAbbreviated[t.Weekday()])
			}
		case 'u':
			weekday := int(t.Weekday())
			if weekday == 0 {
				weekday = 7
			}
			b.WriteString(pad(weekday, tok.count))
		case 'a':
			if t.Hour() < 12 {
				b.WriteString(f.symbols.AM)
			} else {
				b.WriteString(f.symbols.PM)
			}
		case 'H':
			b.WriteString(pad(t.Hour(), tok.count))
		case 'k':
			hour := t.Hour()
			if hour == 0 {
				hour = 24
			}
			b.WriteString(pad(hour, tok.count))
		case 'K':
			b.WriteString(pad(t.Hour()%12, tok.count))
		case 'h':
			hour := t.Hour() % 12
			if hour == 0 {
				hour = 12
			}
			b.WriteString(pad(hour, tok.count))
		case 'm':
			b.WriteString(pad(t.Minute(), tok.count))
		case 's':
			b.WriteString(pad(t.Second(), tok.count))
		case 'S':
			b.WriteString(pad(t.Nanosecond()/int(time.Millisecond), tok.count))
		case 'z':
			b.WriteString(t.Format("MST"))
		case 'Z':
			b.WriteString(t.Format("-0700"))
		case 'X':
			switch tok.count {
			case 1:
				b.WriteString(t.Format("Z07"))
			case 2:
				b.WriteString(t.Format("Z0700"))
			default:
				b.WriteString(t.Format("Z07:00"))
			}
		}
	}
	return b.String()
}

func pad(n int, width int) string {
	s := strconv.Itoa(n)
	if len(s) < width {
		return strings.Repeat("0", width-len(s)) + s
	}
	return s
}

type dateFields struct {
	era       int
	year      int
	twoDigit  bool
	month     int
	day       int
	yearDay   int
	hour      int
	hourOf12  bool
	pm        int
	minute    int
	second    int
	milli     int
	location  *time.Location
	hourLimit [2]int
}

// Parse parses s. Fields missing from the pattern default to 1970-01-01
// 00:00:00. The whole input must be consumed.
func (f *DateFormat) Parse(s string) (time.Time, error) {
	fields := dateFields{era: 1, year: 1970, month: 1, day: 1, pm: -1, hourLimit: [2]int{0, 23}}
	pos := 0
	for i, tok := range f.tokens {
		if tok.letter == 0 {
			if !strings.HasPrefix(s[pos:], tok.literal) {
				return time.Time{}, f.parseError(s, pos)
			}
			pos += len(tok.literal)
			continue
		}
		var err error
		abutting := i+1 < len(f.tokens) && f.tokens[i+1].letter != 0 && f.tokens[i+1].numeric()
		if pos, err = f.parseField(s, pos, tok, abutting, &fields); err != nil {
			return time.Time{}, err
		}
	}
	if pos != len(s) {
		return time.Time{}, f.parseError(s, pos)
	}
	return f.resolve(s, &fields)
}

func (f *DateFormat) parseError(s string, pos int) error {
	return fmt.Errorf("%w: %q does not match %q at offset %d", ErrUnparseable, s, f.pattern, pos)
}

func (f *DateFormat) parseField(s string, pos int, tok dateToken, abutting bool, fields *dateFields) (int, error) {
	if tok.numeric() {
		width := 10
		if abutting {
			width = tok.count
		}
		n, end := readNumber(s, pos, width)
		if end == pos {
			return pos, f.parseError(s, pos)
		}
		switch tok.letter {
		case 'y', 'Y':
			fields.year = n
			fields.twoDigit = tok.count <= 2 && end-pos == 2
		case 'M', 'L':
			fields.month = n
		case 'd':
			fields.day = n
		case 'D':
			fields.yearDay = n
		case 'H':
			fields.hour, fields.hourOf12, fields.hourLimit = n, false, [2]int{0, 23}
		case 'k':
			if n == 24 {
				n = 0
			}
			fields.hour, fields.hourOf12, fields.hourLimit = n, false, [2]int{0, 23}
		case 'K':
			fields.hour, fields.hourOf12, fields.hourLimit = n, true, [2]int{0, 11}
		case 'h':
			if n == 12 {
				n = 0
			}
			fields.hour, fields.hourOf12, fields.hourLimit = n, true, [2]int{0, 11}
		case 'm':
			fields.minute = n
		case 's':
			fields.second = n
		case 'S':
			fields.milli = n
		}
		return end, nil
	}
	switch tok.letter {
	case 'M', 'L':
		index, end := matchName(s, pos, f.symbols.MonthsWide, f.symbols.MonthsAbbreviated)
		if index < 0 {
			return pos, f.parseError(s, pos)
		}
		fields.month = index + 1
		return end, nil
	case 'E':
		index, end := matchName(s, pos, f.symbols.WeekdaysWide, f.symbols.WeekdaysAbbreviated)
		if index < 0 {
			return pos, f.parseError(s, pos)
		}
		return end, nil
	case 'a':
		index, end := matchName(s, pos, []string{f.symbols.AM, f.symbols.PM}, []string{"AM", "PM"})
		if index < 0 {
			return pos, f.parseError(s, pos)
		}
		fields.pm = index
		return end, nil
	case 'G':
		index, end := matchName(s, pos, []string{"BC", "AD"}, nil)
		if index < 0 {
			return pos, f.parseError(s, pos)
		}
		fields.era = index
		return end, nil
	default:
		loc, end, ok := parseZone(s, pos)
		if !ok {
			return pos, f.parseError(s, pos)
		}
		fields.location = loc
		return end, nil
	}
}

func readNumber(s string, pos int, width int) (int, int) {
	end := pos
	n := 0
	for end < len(s) && end-pos < width && s[end] >= '0' && s[end] <= '9' {
		n = n*10 + int(s[end]-'0')
		end++
	}
	return n, end
}

// matchName returns the index of the longest name matching s at pos, ignoring
// case.
func matchName(s string, pos int, names ...[]string) (int, int) {
	best, bestEnd := -1, pos
	rest := s[pos:]
	for _, list := range names {
		for i, name := range list {
			if name == "" || len(name) > len(rest) {
				continue
			}
			if strings.EqualFold(rest[:len(name)], name) && pos+len(name) > bestEnd {
				best, bestEnd = i, pos+len(name)
			}
		}
	}
	return best, bestEnd
}

func parseZone(s string, pos int) (*time.Location, int, bool) {
	rest := s[pos:]
	switch {
	case strings.HasPrefix(rest, "Z"):
		return time.UTC, pos + 1, true
	case strings.HasPrefix(rest, "GMT"), strings.HasPrefix(rest, "UTC"):
		if loc, end, ok := parseOffset(s, pos+3); ok {
			return loc, end, true
		}
		return time.UTC, pos + 3, true
	case strings.HasPrefix(rest, "+"), strings.HasPrefix(rest, "-"):
		return parseOffset(s, pos)
	}
	end := pos
	for end < len(s) && (unicode.IsLetter(rune(s[end])) || s[end] == '/' || s[end] == '_') {
		end++
	}
	if end == pos {
		return nil, pos, false
	}
	loc, err := time.LoadLocation(s[pos:end])
	if err != nil {
		return nil, pos, false
	}
	return loc, end, true
}

// parseOffset parses +hh, +hhmm or +hh:mm.
func parseOffset(s string, pos int) (*time.Location, int, bool) {
	if pos >= len(s) || (s[pos] != '+' && s[pos] != '-') {
		return nil, pos, false
	}
	sign := 1
	if s[pos] == '-' {
		sign = -1
	}
	hours, end := readNumber(s, pos+1, 2)
	if end-pos-1 == 0 {
		return nil, pos, false
	}
	minutes := 0
	next := end
	if next < len(s) && s[next] == ':' {
		next++
	}
	if m, e := readNumber(s, next, 2); e-next == 2 {
		minutes, end = m, e
	}
	if hours > 23 || minutes > 59 {
		return nil, pos, false
	}
	offset := sign * (hours*3600 + minutes*60)
	return time.FixedZone(s[pos:end], offset), end, true
}

func (f *DateFormat) resolve(s string, fields *dateFields) (time.Time, error) {
	year := fields.year
	if fields.twoDigit {
		start := f.now().Year() - 80
		year = start - start%100 + year
		if year < start {
			year += 100
		}
	}
	if fields.era == 0 {
		year = 1 - year
	}
	hour := fields.hour
	if fields.hourOf12 && fields.pm == 1 {
		hour += 12
	}
	loc := fields.location
	if loc == nil {
		loc = f.location
	}

	if !f.lenient {
		outOfRange := fields.month < 1 || fields.month > 12 ||
			fields.day < 1 || fields.day > daysIn(time.Month(fields.month), year) ||
			fields.hour < fields.hourLimit[0] || fields.hour > fields.hourLimit[1] ||
			fields.minute > 59 || fields.second > 59 || fields.milli > 999 ||
			fields.yearDay > time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
		if outOfRange {
			return time.Time{}, fmt.Errorf("%w: %q has a field out of range for %q", ErrUnparseable, s, f.pattern)
		}
	}
	if fields.yearDay != 0 {
		return time.Date(year, time.January, fields.yearDay, hour, fields.minute, fields.second, fields.milli*int(time.Millisecond), loc), nil
	}
	return time.Date(year, time.Month(fields.month), fields.day, hour, fields.minute, fields.second, fields.milli*int(time.Millisecond), loc), nil
}

func daysIn(month time.Month, year int) int {
	if month < time.January || month > time.December {
		return 0
	}
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
