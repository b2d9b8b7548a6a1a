package menu

import (
	"time"

	"MenuScanner/internal/domain"
)

// BrunchText is the fixed description served for weekend brunch; the
// published document only ever lists the buffet, not its contents.
const BrunchText = "Brunch buffet available"

// Day offsets from the Monday week start.
const (
	saturday = 5
	sunday   = 6
)

const (
	weekdays   = 5
	lunchDays  = weekdays
	dinnerDays = 7
)

// Parser turns one week's document text into an Index.
type Parser struct {
	classifier Classifier
}

// NewParser builds a parser. A zero Classifier gives the default junk rules.
func NewParser(classifier Classifier) *Parser {
	return &Parser{classifier: classifier}
}

// ParseWeek extracts every entry of the week starting on weekStart.
// Layout mismatches never fail: at worst days are missing or collapse to
// single-line descriptions.
func (p *Parser) ParseWeek(text string, weekStart time.Time) Index {
	weekStart = domain.Civil(weekStart)
	sections := Segment(text)
	out := make(Index)

	for day, line := range p.classifier.FirstLinePerDay(sections.Breakfast, weekdays) {
		out.put(weekStart, day, domain.PeriodBreakfast, line)
	}
	if p.hasContent(sections.BrunchSaturday) {
		out.put(weekStart, saturday, domain.PeriodBrunch, BrunchText)
	}
	if p.hasContent(sections.BrunchSunday) {
		out.put(weekStart, sunday, domain.PeriodBrunch, BrunchText)
	}

	p.fillTable(out, sections.Lunch, weekStart, lunchDays, domain.PeriodLunch)
	p.fillTable(out, sections.Dinner, weekStart, dinnerDays, domain.PeriodDinner)

	return out
}

func (p *Parser) fillTable(out Index, lines []string, weekStart time.Time, days int, period domain.Period) {
	blocks := p.classifier.SplitBlocks(lines, days)
	if len(blocks) == days {
		for day, block := range blocks {
			out.put(weekStart, day, period, block.Text())
		}
		return
	}
	for day, line := range p.classifier.FirstLinePerDay(lines, days) {
		out.put(weekStart, day, period, line)
	}
}

func (p *Parser) hasContent(lines []string) bool {
	for _, line := range lines {
		if !p.classifier.IsJunk(line) {
			return true
		}
	}
	return false
}

// ParseWeek parses text with the default classifier.
func ParseWeek(text string, weekStart time.Time) Index {
	return NewParser(Classifier{}).ParseWeek(text, weekStart)
}
