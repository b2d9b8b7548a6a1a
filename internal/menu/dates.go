package menu

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidDate marks a query date that is not a real YYYY-MM-DD calendar date.
	ErrInvalidDate = errors.New("invalid date")
	// ErrWeekNotFound marks document text without a usable week-commencing phrase.
	ErrWeekNotFound = errors.New("week commencing date not found")
	// ErrNotFound marks a lookup that matched no entry.
	ErrNotFound = errors.New("meal not found")
)

var (
	documentWeekExpr = regexp.MustCompile(`(?i)(?:week\s+commencing|w/c)\s+\w+\s+(\d+)(?:st|nd|rd|th)?\s+(\w+)\s+(\d{4})`)
	linkWeekExpr     = regexp.MustCompile(`w/c\s+\w+\s+(\d+)(?:st|nd|rd|th)?\s+(\w+)\s+(\d{4})`)
)

var months = map[string]time.Month{
	"january":   time.January,
	"february":  time.February,
	"march":     time.March,
	"april":     time.April,
	"may":       time.May,
	"june":      time.June,
	"july":      time.July,
	"august":    time.August,
	"september": time.September,
	"october":   time.October,
	"november":  time.November,
	"december":  time.December,
}

// ParseDate accepts YYYY-MM-DD, YYYY/MM/DD or any mix of '-' and '/'
// separators. Empty components are ignored, so "2026--02/09" is valid.
func ParseDate(input string) (time.Time, error) {
	parts := strings.FieldsFunc(input, func(r rune) bool { return r == '-' || r == '/' })
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}

	values := make([]int, 3)
	for i, part := range parts {
		v, err := strconv.Atoi(part)
		if err != nil {
			return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
		}
		values[i] = v
	}

	date, ok := calendarDate(values[0], values[1], values[2])
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, input)
	}
	return date, nil
}

// WeekCommencing finds a "week commencing" or "w/c" phrase anywhere in
// document text, case-insensitively, e.g. "Week Commencing Monday 2 February 2026".
func WeekCommencing(text string) (time.Time, bool) {
	return matchWeek(documentWeekExpr, text)
}

// LinkWeekCommencing parses the anchor-text form "Menu for w/c Monday 26th January 2026".
// The "w/c" marker is case-sensitive here, as link titles are consistently lower case.
func LinkWeekCommencing(text string) (time.Time, bool) {
	return matchWeek(linkWeekExpr, text)
}

// Only the first phrase in text is considered; a bad month or impossible
// date there rejects the text rather than searching further.
func matchWeek(expr *regexp.Regexp, text string) (time.Time, bool) {
	m := expr.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}

	dayOfMonth, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := months[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(m[3])
	if err != nil {
		return time.Time{}, false
	}

	return calendarDate(year, int(month), dayOfMonth)
}

// calendarDate rejects dates that time.Date would silently normalise.
func calendarDate(year, month, dayOfMonth int) (time.Time, bool) {
	if month < 1 || month > 12 || dayOfMonth < 1 || dayOfMonth > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), dayOfMonth, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || int(t.Month()) != month || t.Day() != dayOfMonth {
		return time.Time{}, false
	}
	return t, true
}
