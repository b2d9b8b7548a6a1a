package parser

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"MenuScanner/internal/domain"
	"MenuScanner/internal/menu"
	"MenuScanner/internal/scanner"
)

const (
	defaultUserAgent = "cranbrook-catering-api/0.1"
	optionMatch      = "match"
)

// defaultLinkTokens must all appear in a lower-cased href for the link to count.
var defaultLinkTokens = []string{".pdf", "menu"}

// CateringScanner finds weekly menu PDFs linked from a catering page.
type CateringScanner struct {
	client    *http.Client
	userAgent string
}

// NewCateringScanner wires an HTTP client; a nil client gets a 20s timeout.
func NewCateringScanner(client *http.Client, userAgent string) *CateringScanner {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	if strings.TrimSpace(userAgent) == "" {
		userAgent = defaultUserAgent
	}
	return &CateringScanner{client: client, userAgent: userAgent}
}

// Name identifies the strategy inside the registry.
func (c *CateringScanner) Name() string {
	return "catering"
}

// Scan fetches the page and returns every menu link in document order.
// The week start comes from anchor text such as "Menu for w/c Monday 26th January 2026"
// and stays nil when the text does not carry one.
func (c *CateringScanner) Scan(ctx context.Context, req scanner.Request) ([]domain.WeekCandidate, error) {
	if req.PageURL == "" {
		return nil, fmt.Errorf("no page url provided for site %s", req.SiteName)
	}

	baseRaw := req.BaseURL
	if baseRaw == "" {
		baseRaw = req.PageURL
	}
	base, err := url.Parse(baseRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", baseRaw, err)
	}

	doc, err := c.fetchDocument(ctx, req.PageURL)
	if err != nil {
		return nil, fmt.Errorf("site %s: %w", req.SiteName, err)
	}

	return extractLinks(doc, base, linkTokens(req.Options)), nil
}

func (c *CateringScanner) fetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catering page returned %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}

	return doc, nil
}

func extractLinks(doc *goquery.Document, base *url.URL, tokens []string) []domain.WeekCandidate {
	var (
		collected []domain.WeekCandidate
		seen      = map[string]struct{}{}
	)

	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		if !matchesAll(strings.ToLower(href), tokens) {
			return
		}

		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		link := base.ResolveReference(ref).String()
		if _, dup := seen[link]; dup {
			return
		}
		seen[link] = struct{}{}

		title := strings.Join(strings.Fields(a.Text()), " ")
		candidate := domain.WeekCandidate{URL: link, Title: title}
		if start, ok := menu.LinkWeekCommencing(title); ok {
			candidate.WeekStart = &start
		}
		collected = append(collected, candidate)
	})

	return collected
}

func linkTokens(options map[string]string) []string {
	raw, ok := options[optionMatch]
	if !ok {
		return defaultLinkTokens
	}
	var tokens []string
	for _, tok := range strings.Split(raw, ",") {
		if tok = strings.ToLower(strings.TrimSpace(tok)); tok != "" {
			tokens = append(tokens, tok)
		}
	}
	if len(tokens) == 0 {
		return defaultLinkTokens
	}
	return tokens
}

func matchesAll(s string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(s, tok) {
			return false
		}
	}
	return true
}
