// Package dates parses and normalizes the textual job dates the backend
// stores. Dates arrive either as DD/MM/YYYY or YYYY-MM-DD and are always
// submitted back in the latter, canonical form.
package dates

import (
	"errors"
	"time"
)

// Wire is the canonical form used for submission and display.
const Wire = "2006-01-02"

// layouts tried in order: slash-delimited day/month/year, dash-delimited
// year/month/day, then generic fallbacks.
var layouts = []string{
	"02/01/2006",
	Wire,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ErrUnparseable reports a date string matching none of the known layouts.
var ErrUnparseable = errors.New("unparseable date")

// Parse converts a stored date string into a calendar day.
func Parse(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrUnparseable
}

// Normalize rewrites s into the canonical Wire form. The input is returned
// untouched when it cannot be parsed.
func Normalize(s string) string {
	t, err := Parse(s)
	if err != nil {
		return s
	}
	return t.Format(Wire)
}
