package menu

import (
	"slices"
	"time"

	"MenuScanner/internal/domain"
)

const oneDay = 24 * time.Hour

// ChooseWeek picks the published week whose menu should answer a request
// for requested, given the current date today.
//
// A week containing requested wins outright. Otherwise the week nearest to
// today is taken as the current menu week, shifted by whole weeks between
// today and requested (floor division, so past dates round toward the
// earlier week), and the published week nearest that target is returned.
// Ties in either distance go to the earliest week start. The boolean is
// false only when weekStarts is empty.
func ChooseWeek(weekStarts []time.Time, requested, today time.Time) (time.Time, bool) {
	starts := sortedWeeks(weekStarts)
	if len(starts) == 0 {
		return time.Time{}, false
	}
	requested = domain.Civil(requested)
	today = domain.Civil(today)

	for _, start := range starts {
		if !requested.Before(start) && !requested.After(start.AddDate(0, 0, 6)) {
			return start, true
		}
	}

	todayWeek := nearest(starts, today)
	deltaWeeks := floorDiv(daysBetween(requested, today), 7)
	target := todayWeek.AddDate(0, 0, deltaWeeks*7)
	return nearest(starts, target), true
}

// WeekdayOffset counts days since Monday: 0 for Monday through 6 for Sunday.
func WeekdayOffset(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// sortedWeeks normalises, de-duplicates and orders week starts ascending so
// that strict-less comparisons resolve ties toward the earliest week.
func sortedWeeks(weekStarts []time.Time) []time.Time {
	starts := make([]time.Time, 0, len(weekStarts))
	for _, w := range weekStarts {
		starts = append(starts, domain.Civil(w))
	}
	slices.SortFunc(starts, func(a, b time.Time) int { return a.Compare(b) })
	return slices.CompactFunc(starts, func(a, b time.Time) bool { return a.Equal(b) })
}

func nearest(starts []time.Time, target time.Time) time.Time {
	best := starts[0]
	bestDist := absInt(daysBetween(target, best))
	for _, start := range starts[1:] {
		if dist := absInt(daysBetween(target, start)); dist < bestDist {
			best, bestDist = start, dist
		}
	}
	return best
}

// daysBetween returns a-b in whole days; both must be civil dates.
func daysBetween(a, b time.Time) int {
	return int(a.Sub(b) / oneDay)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
