package usecase

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/logging"
	"MenuScanner/internal/menu"
	"MenuScanner/internal/ports"
)

const defaultConcurrency = 4

// PipelineDeps wires all driven adapters into the index-building pipeline.
type PipelineDeps struct {
	Source      ports.LinkSource
	Downloader  ports.Downloader
	Extractor   ports.TextExtractor
	Cache       ports.DocumentCache
	Parser      *menu.Parser
	Logger      *slog.Logger
	Concurrency int
}

// Pipeline implements discover, resolve week, extract, parse and merge.
type Pipeline struct {
	source      ports.LinkSource
	downloader  ports.Downloader
	extractor   ports.TextExtractor
	cache       ports.DocumentCache
	parser      *menu.Parser
	logger      *slog.Logger
	concurrency int
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	p := &Pipeline{
		source:      deps.Source,
		downloader:  deps.Downloader,
		extractor:   deps.Extractor,
		cache:       deps.Cache,
		parser:      deps.Parser,
		logger:      deps.Logger,
		concurrency: deps.Concurrency,
	}
	if p.parser == nil {
		p.parser = menu.NewParser(menu.NewClassifier())
	}
	if p.logger == nil {
		p.logger = logging.Discard()
	}
	if p.concurrency <= 0 {
		p.concurrency = defaultConcurrency
	}
	return p
}

// Week is one indexed menu week and the document it came from.
type Week struct {
	Start time.Time
	URL   string
	Title string
}

// Snapshot is the result of one BuildIndex run.
type Snapshot struct {
	Index   menu.Index
	Weeks   []Week
	BuiltAt time.Time
}

// WeekStarts lists the distinct indexed week starts in ascending order.
func (s Snapshot) WeekStarts() []time.Time {
	starts := make([]time.Time, 0, len(s.Weeks))
	for _, w := range s.Weeks {
		starts = append(starts, w.Start)
	}
	return slices.CompactFunc(starts, time.Time.Equal)
}

type weekResult struct {
	week  Week
	index menu.Index
}

// BuildIndex discovers every menu document and parses the ones whose week can
// be determined. Candidates are processed concurrently; each produces its own
// per-week index and the results are merged by a single owner in ascending
// (week start, url) order.
func (p *Pipeline) BuildIndex(ctx context.Context) (Snapshot, error) {
	if p.source == nil {
		return Snapshot{}, errors.New("link source is not configured")
	}

	candidates, err := p.source.FetchLinks(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("fetch links: %w", err)
	}
	p.logger.Debug("links discovered", "count", len(candidates))

	results := make([]*weekResult, len(candidates))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, candidate := range candidates {
		g.Go(func() error {
			res, err := p.processCandidate(gctx, candidate)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	collected := slices.DeleteFunc(results, func(r *weekResult) bool { return r == nil })
	slices.SortFunc(collected, func(a, b *weekResult) int {
		if c := a.week.Start.Compare(b.week.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.week.URL, b.week.URL)
	})

	snap := Snapshot{Index: make(menu.Index), BuiltAt: time.Now()}
	for _, r := range collected {
		snap.Index.Merge(r.index)
		snap.Weeks = append(snap.Weeks, r.week)
	}

	p.logger.Info("menu index built", "weeks", len(snap.Weeks), "entries", len(snap.Index))
	return snap, nil
}

// processCandidate returns nil without error when the document is skipped.
// A failure to obtain text for a link with a known week aborts the build; the
// same failure for a link without one only skips that link.
func (p *Pipeline) processCandidate(ctx context.Context, c domain.WeekCandidate) (*weekResult, error) {
	logger := p.logger.With("url", c.URL)
	logger.Debug("processing link", "title", c.Title, "known_week", c.Known())

	doc, err := p.documentText(ctx, c)
	if err != nil {
		if c.Known() {
			return nil, fmt.Errorf("document %s: %w", c.URL, err)
		}
		logger.Warn("skipping document", "error", err)
		return nil, nil
	}

	var start time.Time
	switch {
	case c.Known():
		start = domain.Civil(*c.WeekStart)
	case doc.WeekStart != nil:
		start = domain.Civil(*doc.WeekStart)
	default:
		found, ok := menu.WeekCommencing(doc.Text)
		if !ok {
			logger.Warn("skipping document", "error", menu.ErrWeekNotFound)
			return nil, nil
		}
		start = found
	}
	logger.Debug("week start resolved", "week_start", domain.FormatDate(start))

	if doc.WeekStart == nil || !doc.WeekStart.Equal(start) {
		doc.WeekStart = &start
		p.store(ctx, logger, doc)
	}

	return &weekResult{
		week:  Week{Start: start, URL: c.URL, Title: c.Title},
		index: p.parser.ParseWeek(doc.Text, start),
	}, nil
}

// documentText prefers text already attached to the candidate, then the cache,
// then a fresh download and extraction.
func (p *Pipeline) documentText(ctx context.Context, c domain.WeekCandidate) (domain.Document, error) {
	if c.Text != "" {
		return domain.Document{URL: c.URL, Text: c.Text}, nil
	}

	if p.cache != nil {
		doc, ok, err := p.cache.Get(ctx, c.URL)
		if err != nil {
			p.logger.Warn("cache read failed", "url", c.URL, "error", err)
		} else if ok {
			p.logger.Debug("cache hit", "url", c.URL)
			return doc, nil
		}
	}

	if p.downloader == nil || p.extractor == nil {
		return domain.Document{}, errors.New("document fetching is not configured")
	}

	data, err := p.downloader.Download(ctx, c.URL)
	if err != nil {
		return domain.Document{}, fmt.Errorf("download: %w", err)
	}
	text, err := p.extractor.ExtractText(ctx, data)
	if err != nil {
		return domain.Document{}, fmt.Errorf("extract text: %w", err)
	}

	return domain.Document{URL: c.URL, Text: text}, nil
}

func (p *Pipeline) store(ctx context.Context, logger *slog.Logger, doc domain.Document) {
	if p.cache == nil {
		return
	}
	if err := p.cache.Put(ctx, doc); err != nil {
		logger.Warn("cache write failed", "error", err)
	}
}
