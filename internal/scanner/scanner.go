package scanner

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"MenuScanner/internal/domain"
)

// Request carries all parameters required to scan one site for menu links.
type Request struct {
	SiteName string
	PageURL  string
	BaseURL  string
	Options  map[string]string
}

// Scanner captures a single link-discovery strategy.
type Scanner interface {
	Name() string
	Scan(ctx context.Context, req Request) ([]domain.WeekCandidate, error)
}

// Registry keeps a mapping from scanner names to their implementations.
type Registry struct {
	scanners map[string]Scanner
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{scanners: map[string]Scanner{}}
}

// Register adds or replaces a scanner implementation.
func (r *Registry) Register(scanner Scanner) {
	if r.scanners == nil {
		r.scanners = map[string]Scanner{}
	}
	r.scanners[scanner.Name()] = scanner
}

// Resolve returns a scanner by name or an error listing the known names.
func (r *Registry) Resolve(name string) (Scanner, error) {
	if scanner, ok := r.scanners[name]; ok {
		return scanner, nil
	}
	return nil, fmt.Errorf("scanner %q is not registered (known: %s)", name, strings.Join(r.Names(), ", "))
}

// Names lists registered scanner names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.scanners))
	for name := range r.scanners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
