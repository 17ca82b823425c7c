package timeutil

import (
	"time"

	"golang.org/x/text/language"
)

// RFC3339Millis is RFC 3339 UTC with fixed millisecond precision.
const RFC3339Millis = "2006-01-02T15:04:05.000Z"

// RFC3339Micros is RFC 3339 UTC with fixed microsecond precision.
// Use this format for log timestamps where higher precision is needed.
const RFC3339Micros = "2006-01-02T15:04:05.000000Z"

// DefaultLocale is used when no requested locale matches.
var DefaultLocale = language.AmericanEnglish

// shortDateLayouts mirrors the numeric short date each locale shows in browsers.
var shortDateLayouts = []struct {
	tag    language.Tag
	layout string
}{
	{language.AmericanEnglish, "1/2/2006"},
	{language.BritishEnglish, "02/01/2006"},
	{language.German, "2.1.2006"},
	{language.Finnish, "2.1.2006"},
	{language.French, "02/01/2006"},
	{language.Spanish, "2/1/2006"},
	{language.Italian, "2/1/2006"},
	{language.Dutch, "2-1-2006"},
	{language.Swedish, "2006-01-02"},
	{language.Japanese, "2006/1/2"},
	{language.Chinese, "2006/1/2"},
}

var shortDateMatcher = func() language.Matcher {
	tags := make([]language.Tag, len(shortDateLayouts))
	for i, l := range shortDateLayouts {
		tags[i] = l.tag
	}
	return language.NewMatcher(tags)
}()

// MatchLocale picks the best supported locale for an Accept-Language header value.
// fallback is returned when the header is empty or unparsable.
func MatchLocale(acceptLanguage string, fallback language.Tag) language.Tag {
	if acceptLanguage == "" {
		return fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(prefs) == 0 {
		return fallback
	}
	_, idx, conf := shortDateMatcher.Match(prefs...)
	if conf == language.No {
		return fallback
	}
	return shortDateLayouts[idx].tag
}

// ShortDate formats t as the numeric short date used by locale.
// Unsupported locales fall back to the closest supported one.
func ShortDate(t time.Time, locale language.Tag) string {
	_, idx, conf := shortDateMatcher.Match(locale)
	if conf == language.No {
		idx = 0
	}
	return t.Format(shortDateLayouts[idx].layout)
}
