package parser

import (
	"context"
	"fmt"
	"log/slog"

	"MenuScanner/internal/config"
	"MenuScanner/internal/domain"
	"MenuScanner/internal/ports"
	"MenuScanner/internal/scanner"
)

// StrategySource implements LinkSource via registered scanner strategies.
type StrategySource struct {
	registry *scanner.Registry
	sites    []config.SiteConfig
	logger   *slog.Logger
}

var _ ports.LinkSource = (*StrategySource)(nil)

// NewStrategySource wires scanner registry with config-defined sites.
func NewStrategySource(reg *scanner.Registry, sites []config.SiteConfig, log *slog.Logger) *StrategySource {
	return &StrategySource{
		registry: reg,
		sites:    sites,
		logger:   log,
	}
}

// FetchLinks runs every configured site's scanner and concatenates the
// links in site order. The same URL reported by two sites is kept once.
func (s *StrategySource) FetchLinks(ctx context.Context) ([]domain.WeekCandidate, error) {
	if s.registry == nil {
		return nil, fmt.Errorf("scanner registry is not configured")
	}

	s.debug("fetch links", "sites", len(s.sites))

	var (
		aggregated []domain.WeekCandidate
		seen       = map[string]struct{}{}
	)
	for _, site := range s.sites {
		s.debug("process site", "site", site.Name, "scanner", site.Scanner, "page", site.PageURL)
		strategy, err := s.registry.Resolve(site.Scanner)
		if err != nil {
			return nil, fmt.Errorf("site %s: %w", site.Name, err)
		}

		results, err := strategy.Scan(ctx, scanner.Request{
			SiteName: site.Name,
			PageURL:  site.PageURL,
			BaseURL:  site.BaseURL,
			Options:  site.Options,
		})
		if err != nil {
			return nil, fmt.Errorf("scan site %s: %w", site.Name, err)
		}

		for _, link := range results {
			if _, dup := seen[link.URL]; dup {
				continue
			}
			seen[link.URL] = struct{}{}
			aggregated = append(aggregated, link)
		}
		s.debug("site produced links", "site", site.Name, "count", len(results))
	}

	s.debug("strategy source done", "total_links", len(aggregated))
	return aggregated, nil
}

func (s *StrategySource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
