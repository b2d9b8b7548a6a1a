package ports

import (
	"context"
	"time"

	"MenuScanner/internal/domain"
)

// LinkSource discovers the published weekly menu documents.
type LinkSource interface {
	FetchLinks(ctx context.Context) ([]domain.WeekCandidate, error)
}

// Downloader fetches the raw bytes behind a document link.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// TextExtractor converts a binary document (PDF) into plain text.
type TextExtractor interface {
	ExtractText(ctx context.Context, data []byte) (string, error)
}

// DocumentCache keeps extracted text between refreshes so unchanged
// documents are not downloaded and converted again.
type DocumentCache interface {
	Get(ctx context.Context, url string) (domain.Document, bool, error)
	Put(ctx context.Context, doc domain.Document) error
}

// Scheduler controls when index refreshes execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
