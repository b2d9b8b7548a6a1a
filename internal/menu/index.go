package menu

import (
	"slices"
	"strings"
	"time"

	"MenuScanner/internal/domain"
)

// Index maps composite keys to meal descriptions.
type Index map[string]string

// WeekText is one week's extracted document, ready to parse.
type WeekText struct {
	Start time.Time
	Text  string
}

func (ix Index) put(weekStart time.Time, offset int, period domain.Period, meal string) {
	ix[domain.Key(weekStart.AddDate(0, 0, offset), period)] = meal
}

// Merge copies other into ix; entries in other replace existing keys.
func (ix Index) Merge(other Index) {
	for k, v := range other {
		ix[k] = v
	}
}

// Get returns the entry stored for exactly date and period.
func (ix Index) Get(date time.Time, period domain.Period) (string, bool) {
	meal, ok := ix[domain.Key(date, period)]
	return meal, ok
}

// Keys returns all keys in ascending order. Keys sort by date first since
// dates are fixed width.
func (ix Index) Keys() []string {
	keys := make([]string, 0, len(ix))
	for k := range ix {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Entries lists the index as domain entries ordered by key.
func (ix Index) Entries() []domain.Entry {
	entries := make([]domain.Entry, 0, len(ix))
	for _, k := range ix.Keys() {
		if len(k) <= len(domain.DateLayout)+1 {
			continue
		}
		date, err := time.Parse(domain.DateLayout, k[:len(domain.DateLayout)])
		if err != nil {
			continue
		}
		entries = append(entries, domain.Entry{
			Date:   date,
			Period: domain.Period(k[len(domain.DateLayout)+1:]),
			Meal:   ix[k],
		})
	}
	return entries
}

// Build parses every week and merges the results in the order given.
func (p *Parser) Build(weeks []WeekText) Index {
	out := make(Index)
	for _, w := range weeks {
		out.Merge(p.ParseWeek(w.Text, w.Start))
	}
	return out
}

// NormalizePeriod lower-cases a requested period name. Unknown names are
// allowed; they simply never match a key.
func NormalizePeriod(name string) domain.Period {
	return domain.Period(strings.ToLower(strings.TrimSpace(name)))
}

// Lookup answers a query against ix. The exact key is tried first; failing
// that, the week chosen for date among weekStarts is used as a template and
// the entry for the same weekday in that week is returned.
func Lookup(ix Index, weekStarts []time.Time, date time.Time, period domain.Period, today time.Time) (string, bool) {
	if meal, ok := ix.Get(date, period); ok {
		return meal, true
	}
	week, ok := ChooseWeek(weekStarts, date, today)
	if !ok {
		return "", false
	}
	return ix.Get(week.AddDate(0, 0, WeekdayOffset(date)), period)
}
