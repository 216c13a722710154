package locale

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	deCH "github.com/go-playground/locales/de_CH"
	deDE "github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en"
	enGB "github.com/go-playground/locales/en_GB"
	enUS "github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	esES "github.com/go-playground/locales/es_ES"
	"github.com/go-playground/locales/fr"
	frFR "github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/it"
	itIT "github.com/go-playground/locales/it_IT"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/nl"
	ptBR "github.com/go-playground/locales/pt_BR"
	"github.com/go-playground/locales/ru"
	"github.com/go-playground/locales/zh"
	"golang.org/x/text/language"
)

// Locale identifies a language and region, for example de-CH.
type Locale = language.Tag

// ParseLocale parses a BCP 47 tag. POSIX style identifiers such as "de_DE"
// are accepted as well.
func ParseLocale(s string) (Locale, error) {
	return language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
}

func MustParseLocale(s string) Locale {
	l, err := ParseLocale(s)
	if err != nil {
		panic(err)
	}
	return l
}

type translator struct {
	tag              language.Tag
	new              func() locales.Translator
	shortDatePattern string
}

// translators lists the supported locales. The first entry is the fallback
// for tags that match nothing.
var translators = []translator{
	{tag: language.English, new: en.New, shortDatePattern: "M/d/yy"},
	{tag: language.AmericanEnglish, new: enUS.New, shortDatePattern: "M/d/yy"},
	{tag: language.BritishEnglish, new: enGB.New, shortDatePattern: "dd/MM/yyyy"},
	{tag: language.German, new: de.New, shortDatePattern: "dd.MM.yy"},
	{tag: language.MustParse("de-DE"), new: deDE.New, shortDatePattern: "dd.MM.yy"},
	{tag: language.MustParse("de-CH"), new: deCH.New, shortDatePattern: "dd.MM.yy"},
	{tag: language.French, new: fr.New, shortDatePattern: "dd/MM/yyyy"},
	{tag: language.MustParse("fr-FR"), new: frFR.New, shortDatePattern: "dd/MM/yyyy"},
	{tag: language.Italian, new: it.New, shortDatePattern: "dd/MM/yy"},
	{tag: language.MustParse("it-IT"), new: itIT.New, shortDatePattern: "dd/MM/yy"},
	{tag: language.Spanish, new: es.New, shortDatePattern: "d/M/yy"},
	{tag: language.MustParse("es-ES"), new: esES.New, shortDatePattern: "d/M/yy"},
	{tag: language.Dutch, new: nl.New, shortDatePattern: "dd-MM-yyyy"},
	{tag: language.BrazilianPortuguese, new: ptBR.New, shortDatePattern: "dd/MM/yyyy"},
	{tag: language.Russian, new: ru.New, shortDatePattern: "dd.MM.yyyy"},
	{tag: language.Japanese, new: ja.New, shortDatePattern: "yyyy/MM/dd"},
	{tag: language.Chinese, new: zh.New, shortDatePattern: "yyyy/M/d"},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, 0, len(translators))
	for _, t := range translators {
		tags = append(tags, t.tag)
	}
	return language.NewMatcher(tags)
}()

// Supported returns the locales with their own symbol tables.
func Supported() []Locale {
	tags := make([]Locale, 0, len(translators))
	for _, t := range translators {
		tags = append(tags, t.tag)
	}
	return tags
}

// Symbols holds the locale data used to parse and format numbers and dates.
type Symbols struct {
	Locale   Locale
	Decimal  rune
	Group    rune
	Minus    rune
	Percent  rune
	PerMill  rune
	Exponent string
	// MonthsWide and MonthsAbbreviated start with January.
	MonthsWide        []string
	MonthsAbbreviated []string
	// WeekdaysWide and WeekdaysAbbreviated start with Sunday.
	WeekdaysWide        []string
	WeekdaysAbbreviated []string
	AM                  string
	PM                  string
	ShortDatePattern    string
}

var symbolsCache sync.Map

// SymbolsOf returns the symbols of the supported locale closest to l.
func SymbolsOf(l Locale) *Symbols {
	_, index, _ := matcher.Match(l)
	if cached, ok := symbolsCache.Load(index); ok {
		return cached.(*Symbols)
	}
	symbols, _ := symbolsCache.LoadOrStore(index, newSymbols(translators[index]))
	return symbols.(*Symbols)
}

func newSymbols(t translator) *Symbols {
	tr := t.new()
	s := &Symbols{
		Locale:           t.tag,
		Decimal:          '.',
		Group:            ',',
		Minus:            '-',
		Percent:          '%',
		PerMill:          '\u2030',
		Exponent:         "E",
		AM:               "AM",
		PM:               "PM",
		ShortDatePattern: t.shortDatePattern,
	}

	var seps []rune
	for _, r := range tr.FmtNumber(1234567.891, 3) {
		if !unicode.IsDigit(r) {
			seps = append(seps, r)
		}
	}
	switch {
	case len(seps) >= 2:
		s.Group, s.Decimal = seps[0], seps[len(seps)-1]
	case len(seps) == 1:
		s.Decimal = seps[0]
		if s.Decimal == ',' {
			s.Group = '.'
		}
	}
	for _, r := range tr.FmtNumber(-1, 0) {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) && !unicode.Is(unicode.Bidi_Control, r) {
			s.Minus = r
			break
		}
	}

	for m := time.January; m <= time.December; m++ {
		s.MonthsWide = append(s.MonthsWide, tr.MonthWide(m))
		s.MonthsAbbreviated = append(s.MonthsAbbreviated, strings.TrimSuffix(tr.MonthAbbreviated(m), "."))
	}
	for d := time.Sunday; d <= time.Saturday; d++ {
		s.WeekdaysWide = append(s.WeekdaysWide, tr.WeekdayWide(d))
		s.WeekdaysAbbreviated = append(s.WeekdaysAbbreviated, strings.TrimSuffix(tr.WeekdayAbbreviated(d), "."))
	}

	am := periodOf(tr.FmtTimeShort(time.Date(2000, 1, 1, 1, 0, 0, 0, time.UTC)))
	pm := periodOf(tr.FmtTimeShort(time.Date(2000, 1, 1, 13, 0, 0, 0, time.UTC)))
	if am != "" && pm != "" && am != pm {
		s.AM, s.PM = am, pm
	}
	return s
}

// periodOf extracts the day period marker from a formatted time.
func periodOf(formatted string) string {
	var b strings.Builder
	for _, r := range formatted {
		if unicode.IsLetter(r) || (b.Len() > 0 && r == '.') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isSpaceLike(r rune) bool {
	return r == ' ' || r == '\u00a0' || r == '\u202f' || r == '\u2009'
}
