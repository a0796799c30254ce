package validator

import (
	"errors"
	"html"
	"strings"
	"time"
)

// ErrInvalidDate is returned by ParseDate for values that are not ISO-8601 dates.
var ErrInvalidDate = errors.New("invalid date")

var escaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"/", "&#x2F;",
	`\`, "&#x5C;",
	"`", "&#96;",
)

// Escape trims s and replaces markup-significant characters with entities.
// Existing entities are decoded first, so Escape(Escape(s)) == Escape(s).
func Escape(s string) string {
	return escaper.Replace(html.UnescapeString(strings.TrimSpace(s)))
}

// Unescape reverses Escape for values that must be compared or measured
// as the user typed them.
func Unescape(s string) string {
	return html.UnescapeString(strings.TrimSpace(s))
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	time.RFC3339Nano,
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
}

// ParseDate parses an ISO-8601 date or timestamp and normalizes it to
// midnight UTC of that calendar day. A blank value yields (nil, nil).
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		d := CanonicalDate(t)
		return &d, nil
	}
	return nil, ErrInvalidDate
}

// CanonicalDate truncates t to midnight UTC of its UTC calendar day.
func CanonicalDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
