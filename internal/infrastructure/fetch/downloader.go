package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"MenuScanner/internal/ports"
)

// maxDocumentBytes bounds a single download.
const maxDocumentBytes = 32 << 20

// HTTPDownloader fetches document bytes over HTTP(S).
type HTTPDownloader struct {
	client    *http.Client
	userAgent string
}

var _ ports.Downloader = (*HTTPDownloader)(nil)

// NewHTTPDownloader builds a downloader with its own client and timeout.
func NewHTTPDownloader(timeout time.Duration, userAgent string) *HTTPDownloader {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	return NewHTTPDownloaderWithClient(&http.Client{Timeout: timeout}, userAgent)
}

// NewHTTPDownloaderWithClient reuses an existing client.
func NewHTTPDownloaderWithClient(client *http.Client, userAgent string) *HTTPDownloader {
	return &HTTPDownloader{client: client, userAgent: userAgent}
}

// Download returns the response body. Any non-2xx status is an error.
func (d *HTTPDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if d.userAgent != "" {
		req.Header.Set("User-Agent", d.userAgent)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("download %s: unexpected status %s", url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}
	if len(data) > maxDocumentBytes {
		return nil, fmt.Errorf("download %s: document exceeds %d bytes", url, maxDocumentBytes)
	}
	return data, nil
}
