package menu

import (
	"strings"

	"MenuScanner/internal/domain"
)

// headerRepeat is how many times a period label must appear on one line
// for it to count as a table header row (one label per day column).
const headerRepeat = 3

type section int

const (
	sectionNone section = iota
	sectionBreakfast
	sectionBrunchSat
	sectionBrunchSun
	sectionLunch
	sectionDinner
)

func (s section) String() string {
	switch s {
	case sectionBreakfast:
		return "breakfast"
	case sectionBrunchSat:
		return "brunch-saturday"
	case sectionBrunchSun:
		return "brunch-sunday"
	case sectionLunch:
		return "lunch"
	case sectionDinner:
		return "dinner"
	default:
		return "none"
	}
}

// Sections holds the raw, untrimmed lines that fell inside each region of
// the document. Header lines are consumed and never appear here; lines
// before the first header are dropped.
type Sections struct {
	Breakfast      []string
	BrunchSaturday []string
	BrunchSunday   []string
	Lunch          []string
	Dinner         []string
}

// Segment partitions text into meal-period regions.
//
// Headers are detected on every line before any junk filtering, in this
// order: three or more "breakfast", any "brunch" (Saturday first, then
// Sunday on the next brunch header), three or more "lunch", three or more
// "dinner". Matching is case-insensitive substring counting.
func Segment(text string) Sections {
	var (
		out   Sections
		state = sectionNone
	)

	for _, line := range splitLines(text) {
		if next, ok := nextSection(state, line); ok {
			state = next
			continue
		}

		switch state {
		case sectionBreakfast:
			out.Breakfast = append(out.Breakfast, line)
		case sectionBrunchSat:
			out.BrunchSaturday = append(out.BrunchSaturday, line)
		case sectionBrunchSun:
			out.BrunchSunday = append(out.BrunchSunday, line)
		case sectionLunch:
			out.Lunch = append(out.Lunch, line)
		case sectionDinner:
			out.Dinner = append(out.Dinner, line)
		}
	}

	return out
}

func nextSection(current section, line string) (section, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))

	switch {
	case strings.Count(lower, string(domain.PeriodBreakfast)) >= headerRepeat:
		return sectionBreakfast, true
	case strings.Count(lower, string(domain.PeriodBrunch)) >= 1:
		if current == sectionBrunchSat {
			return sectionBrunchSun, true
		}
		return sectionBrunchSat, true
	case strings.Count(lower, string(domain.PeriodLunch)) >= headerRepeat:
		return sectionLunch, true
	case strings.Count(lower, string(domain.PeriodDinner)) >= headerRepeat:
		return sectionDinner, true
	}
	return current, false
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
