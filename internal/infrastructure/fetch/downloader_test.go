package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestDownload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "agent/1.0" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		switch r.URL.Path {
		case "/menu.pdf":
			_, _ = w.Write([]byte("%PDF-1.4 body"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	d := NewHTTPDownloader(5*time.Second, "agent/1.0")

	data, err := d.Download(context.Background(), server.URL+"/menu.pdf")
	if err != nil {
		t.Fatalf("Download error: %v", err)
	}
	if string(data) != "%PDF-1.4 body" {
		t.Fatalf("unexpected body %q", data)
	}

	_, err = d.Download(context.Background(), server.URL+"/missing.pdf")
	if err == nil || !strings.Contains(err.Error(), "404") {
		t.Fatalf("expected 404 error, got %v", err)
	}
}

func TestDownloadCanceled(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewHTTPDownloaderWithClient(server.Client(), "").Download(ctx, server.URL); err == nil {
		t.Fatal("expected error for canceled context")
	}
}
