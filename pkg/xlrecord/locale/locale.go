// Package locale provides the number and date conventions used when coercing
// cell text into typed fields.
package locale

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de_DE"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/fr_FR"
	"github.com/go-playground/locales/nb_NO"
	"github.com/go-playground/locales/nl_NL"
	"github.com/go-playground/locales/sv_SE"
	"golang.org/x/text/language"
)

// ErrUnsupportedLocale indicates a locale name with no registered conventions.
var ErrUnsupportedLocale = errors.New("unsupported locale")

type entry struct {
	tag     language.Tag
	newFunc func() locales.Translator
	layouts []string
}

// registry is ordered; the first entry is the default.
var registry = []entry{
	{
		tag:     language.AmericanEnglish,
		newFunc: en_US.New,
		layouts: []string{
			"1/2/2006", "1/2/2006 3:04 PM", "1/2/2006 3:04:05 PM",
			"1/2/2006 15:04", "1/2/2006 15:04:05",
			"January 2, 2006", "Jan 2, 2006", "Monday, January 2, 2006",
		},
	},
	{
		tag:     language.BritishEnglish,
		newFunc: en_GB.New,
		layouts: []string{
			"2/1/2006", "2/1/2006 15:04", "2/1/2006 15:04:05",
			"2 January 2006", "2 Jan 2006",
		},
	},
	{
		tag:     language.MustParse("de-DE"),
		newFunc: de_DE.New,
		layouts: []string{
			"2.1.2006", "2.1.2006 15:04", "2.1.2006 15:04:05",
			"2. January 2006", "2. Jan 2006",
		},
	},
	{
		tag:     language.MustParse("fr-FR"),
		newFunc: fr_FR.New,
		layouts: []string{
			"2/1/2006", "2/1/2006 15:04", "2/1/2006 15:04:05",
			"2 January 2006", "2 Jan 2006",
		},
	},
	{
		tag:     language.MustParse("sv-SE"),
		newFunc: sv_SE.New,
		layouts: []string{
			"2006-01-02", "2006-01-02 15:04", "2006-01-02 15:04:05",
			"2 January 2006", "2 Jan 2006",
		},
	},
	{
		tag:     language.MustParse("nb-NO"),
		newFunc: nb_NO.New,
		layouts: []string{
			"2.1.2006", "2.1.2006 15:04", "2.1.2006 15:04:05",
			"2. January 2006", "2. Jan 2006",
		},
	},
	{
		tag:     language.MustParse("nl-NL"),
		newFunc: nl_NL.New,
		layouts: []string{
			"2-1-2006", "2-1-2006 15:04", "2-1-2006 15:04:05",
			"2 January 2006", "2 Jan 2006",
		},
	},
}

var matcher = func() language.Matcher {
	tags := make([]language.Tag, len(registry))
	for i, e := range registry {
		tags[i] = e.tag
	}
	return language.NewMatcher(tags)
}()

// invariantLayouts are tried after the locale's own layouts.
var invariantLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Locale holds the separators, month names and date layouts of one culture.
// A Locale is immutable and safe for concurrent use.
type Locale struct {
	tag     language.Tag
	trans   locales.Translator
	decimal string
	group   string
	minus   string
	layouts []string
	months  map[string]string // lower-case localized name -> English name
}

// Default returns the en_US locale.
func Default() *Locale {
	return newLocale(registry[0])
}

// Lookup returns the locale best matching name. Both "de_DE" and "de-DE"
// spellings are accepted, as is a bare language such as "de".
func Lookup(name string) (*Locale, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(name), "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrUnsupportedLocale, name, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLocale, name)
	}
	return newLocale(registry[idx]), nil
}

// Supported returns the names of all registered locales.
func Supported() []string {
	names := make([]string, len(registry))
	for i, e := range registry {
		names[i] = e.newFunc().Locale()
	}
	return names
}

func newLocale(e entry) *Locale {
	trans := e.newFunc()
	l := &Locale{
		tag:     e.tag,
		trans:   trans,
		layouts: e.layouts,
		months:  make(map[string]string, 48),
	}
	l.decimal, l.group, l.minus = numberSymbols(trans)

	for m := time.January; m <= time.December; m++ {
		english := m.String()
		l.months[strings.ToLower(trans.MonthWide(m))] = english
		abbr := strings.ToLower(trans.MonthAbbreviated(m))
		if _, taken := l.months[abbr]; !taken {
			l.months[abbr] = english[:3]
		}
		if trimmed := strings.TrimSuffix(abbr, "."); trimmed != abbr {
			if _, taken := l.months[trimmed]; !taken {
				l.months[trimmed] = english[:3]
			}
		}
	}
	return l
}

// numberSymbols derives the decimal, group and minus symbols from the
// translator's own number formatting.
func numberSymbols(trans locales.Translator) (decimal, group, minus string) {
	// 1234.5 formats as 1<group>234<decimal>5
	s := trans.FmtNumber(1234.5, 1)
	if i := strings.Index(s, "234"); i > 0 {
		group = s[len("1"):i]
		decimal = strings.TrimSuffix(s[i+len("234"):], "5")
	}
	if decimal == "" {
		decimal = "."
	}

	n := trans.FmtNumber(-1, 0)
	minus = strings.TrimSuffix(n, "1")
	if minus == "" {
		minus = "-"
	}
	return decimal, group, minus
}

// Name returns the locale name, e.g. "en_US".
func (l *Locale) Name() string {
	return l.trans.Locale()
}

// Tag returns the BCP 47 tag of the locale.
func (l *Locale) Tag() language.Tag {
	return l.tag
}

// Decimal returns the decimal separator.
func (l *Locale) Decimal() string {
	return l.decimal
}

// Group returns the digit group separator.
func (l *Locale) Group() string {
	return l.group
}

func (l *Locale) String() string {
	return l.Name()
}
