package news

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const (
	searchScheme = "https"
	searchHost   = "newsapi.org"
	searchPath   = "/v2/everything"

	minSearchYear = 1
	maxSearchYear = 9999
)

// BuildSearchURL returns the "everything" search URL for query, limited to
// articles published since one calendar month before now.
//
// The query string is always "q=<query>&from=<Y-M-D>&apiKey=<key>" in that
// order. Month and day are not zero padded ("1969-12-1").
func BuildSearchURL(now time.Time, query, apiKey string) (*url.URL, error) {
	from, err := oneMonthBefore(now)
	if err != nil {
		return nil, err
	}

	u := &url.URL{
		Scheme: searchScheme,
		Host:   searchHost,
		Path:   searchPath,
	}
	// url.Values.Encode sorts keys, so the query is assembled by hand.
	u.RawQuery = "q=" + escapeQueryValue(query) +
		"&from=" + escapeQueryValue(formatSearchDate(from)) +
		"&apiKey=" + escapeQueryValue(apiKey)

	return u, nil
}

// escapeQueryValue percent-encodes v with spaces as %20 rather than '+'.
// A literal '+' is already escaped to %2B, so the replacement is unambiguous.
func escapeQueryValue(v string) string {
	return strings.ReplaceAll(url.QueryEscape(v), "+", "%20")
}

// oneMonthBefore steps back one calendar month in t's location.
// The day is clamped to the last day of the target month, so Mar 31
// becomes Feb 28 (or 29) instead of overflowing into March.
func oneMonthBefore(t time.Time) (time.Time, error) {
	year, month, day := t.Date()

	month--
	if month < time.January {
		month = time.December
		year--
	}
	if year < minSearchYear || year > maxSearchYear {
		return time.Time{}, fmt.Errorf("%w: year %d", ErrSearchWindowUndefined, year)
	}

	if last := daysIn(year, month); day > last {
		day = last
	}

	hour, minute, sec := t.Clock()
	return time.Date(year, month, day, hour, minute, sec, t.Nanosecond(), t.Location()), nil
}

func daysIn(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func formatSearchDate(t time.Time) string {
	year, month, day := t.Date()
	return fmt.Sprintf("%d-%d-%d", year, int(month), day)
}
