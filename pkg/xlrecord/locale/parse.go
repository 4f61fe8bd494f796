package locale

import (
	"errors"
	"strconv"
	"strings"
	"time"
	"unicode"
)

var (
	errEmpty  = errors.New("empty value")
	errSyntax = errors.New("invalid syntax")
)

// spaceSeparators are treated as one separator when the locale groups digits
// with a space of any width.
var spaceSeparators = []string{" ", "\u00a0", "\u202f"}

// ParseFloat parses s as a number written in the locale's conventions, with
// bitSize 32 or 64 as for strconv.ParseFloat. Group separators are ignored
// wherever they appear.
func (l *Locale) ParseFloat(s string, bitSize int) (float64, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return 0, errEmpty
	}

	if isSpace(l.group) {
		for _, sep := range spaceSeparators {
			v = strings.ReplaceAll(v, sep, "")
		}
	} else if l.group != "" {
		v = strings.ReplaceAll(v, l.group, "")
	}
	if l.minus != "-" {
		v = strings.Replace(v, l.minus, "-", 1)
	}
	if l.decimal != "." {
		if strings.Contains(v, ".") {
			return 0, errSyntax
		}
		v = strings.Replace(v, l.decimal, ".", 1)
	}
	if strings.ContainsAny(v, "xX_") {
		return 0, errSyntax
	}
	if lower := strings.ToLower(v); strings.Contains(lower, "inf") || strings.Contains(lower, "nan") {
		return 0, errSyntax
	}

	f, err := strconv.ParseFloat(v, bitSize)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) {
			return 0, numErr.Err
		}
		return 0, err
	}
	return f, nil
}

// ParseTime parses s as a date or date/time written in the locale's
// conventions, falling back to ISO 8601 layouts. Localized month names are
// accepted in either wide or abbreviated form. Times without a zone are
// interpreted in loc; a nil loc means UTC.
func (l *Locale) ParseTime(s string, loc *time.Location) (time.Time, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return time.Time{}, errEmpty
	}
	if loc == nil {
		loc = time.UTC
	}

	v = l.englishMonths(v)
	for _, layout := range l.layouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	for _, layout := range invariantLayouts {
		if t, err := time.ParseInLocation(layout, v, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errSyntax
}

// englishMonths replaces localized month names in s with English ones so the
// time package can parse them.
func (l *Locale) englishMonths(s string) string {
	fields := strings.Fields(s)
	changed := false
	for i, f := range fields {
		word := strings.TrimRightFunc(f, func(r rune) bool { return r == ',' })
		suffix := f[len(word):]
		if en, ok := l.months[strings.ToLower(word)]; ok {
			fields[i] = en + suffix
			changed = true
		}
	}
	if !changed {
		return s
	}
	return strings.Join(fields, " ")
}

func isSpace(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
