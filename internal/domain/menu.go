package domain

import (
	"fmt"
	"time"
)

// DateLayout is the fixed-width ISO form used in every composite key.
const DateLayout = "2006-01-02"

// Period is a named meal slot of the day.
type Period string

const (
	PeriodBreakfast Period = "breakfast"
	PeriodBrunch    Period = "brunch"
	PeriodLunch     Period = "lunch"
	PeriodDinner    Period = "dinner"
)

// Periods lists every period in header-detection order.
var Periods = []Period{PeriodBreakfast, PeriodBrunch, PeriodLunch, PeriodDinner}

// Document is the extracted plain text of one weekly menu.
type Document struct {
	URL       string
	Text      string
	WeekStart *time.Time
}

// WeekCandidate is a discovered menu link with its optional week-commencing date.
// Text is set when the document had to be fetched to learn the week start.
type WeekCandidate struct {
	URL       string
	Title     string
	WeekStart *time.Time
	Text      string
}

// Known reports whether the candidate's week start has been resolved.
func (c WeekCandidate) Known() bool {
	return c.WeekStart != nil
}

// Entry is one meal description addressed by its composite key.
type Entry struct {
	Date   time.Time
	Period Period
	Meal   string
}

// Key returns the composite key of the entry.
func (e Entry) Key() string {
	return Key(e.Date, e.Period)
}

// Key builds the composite `<YYYY-MM-DD>-<period>` identifier.
func Key(date time.Time, period Period) string {
	return fmt.Sprintf("%s-%s", FormatDate(date), period)
}

// FormatDate renders a calendar date as YYYY-MM-DD.
func FormatDate(date time.Time) string {
	return date.Format(DateLayout)
}

// Civil truncates t to midnight UTC of its calendar day in t's own location.
func Civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
