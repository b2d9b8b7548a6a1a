package menu

import (
	"slices"
	"testing"
	"time"

	"MenuScanner/internal/domain"
)

func TestLookup(t *testing.T) {
	t.Parallel()

	week := mustDate(t, "2026-02-09")
	ix := ParseWeek(sampleWeek, week)
	weeks := []time.Time{week}
	today := mustDate(t, "2026-02-10")

	meal, ok := Lookup(ix, weeks, mustDate(t, "2026-02-11"), domain.PeriodLunch, today)
	if !ok || meal != "Fish and chips" {
		t.Fatalf("direct lookup: got %q %v", meal, ok)
	}

	// Wednesday three weeks out maps onto Wednesday of the published week.
	meal, ok = Lookup(ix, weeks, mustDate(t, "2026-03-04"), domain.PeriodLunch, today)
	if !ok || meal != "Fish and chips" {
		t.Fatalf("mapped lookup: got %q %v", meal, ok)
	}

	meal, ok = Lookup(ix, weeks, mustDate(t, "2026-03-08"), domain.PeriodBrunch, today)
	if !ok || meal != BrunchText {
		t.Fatalf("mapped sunday brunch: got %q %v", meal, ok)
	}

	if _, ok := Lookup(ix, weeks, mustDate(t, "2026-02-14"), domain.PeriodLunch, today); ok {
		t.Fatalf("saturday lunch is never published")
	}
	if _, ok := Lookup(ix, weeks, mustDate(t, "2026-02-11"), NormalizePeriod("supper"), today); ok {
		t.Fatalf("unknown period should miss")
	}
	if _, ok := Lookup(Index{}, nil, mustDate(t, "2026-02-11"), domain.PeriodLunch, today); ok {
		t.Fatalf("empty index should miss")
	}
}

func TestNormalizePeriod(t *testing.T) {
	t.Parallel()

	if got := NormalizePeriod("  DiNNer "); got != domain.PeriodDinner {
		t.Fatalf("unexpected period %q", got)
	}
}

func TestIndexEntriesAndKeys(t *testing.T) {
	t.Parallel()

	ix := Index{
		"2026-02-10-lunch":     "Pie",
		"2026-02-09-dinner":    "Soup",
		"2026-02-09-breakfast": "Toast",
	}
	want := []string{"2026-02-09-breakfast", "2026-02-09-dinner", "2026-02-10-lunch"}
	if !slices.Equal(ix.Keys(), want) {
		t.Fatalf("unexpected key order: %v", ix.Keys())
	}

	entries := ix.Entries()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	if entries[2].Period != domain.PeriodLunch || entries[2].Meal != "Pie" || entries[2].Key() != "2026-02-10-lunch" {
		t.Fatalf("unexpected entry: %+v", entries[2])
	}
}

func TestMergeOverwrites(t *testing.T) {
	t.Parallel()

	ix := Index{"2026-02-09-lunch": "old"}
	ix.Merge(Index{"2026-02-09-lunch": "new", "2026-02-10-lunch": "pie"})
	if ix["2026-02-09-lunch"] != "new" || len(ix) != 2 {
		t.Fatalf("unexpected merge result: %v", ix)
	}
}
