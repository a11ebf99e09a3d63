package netx

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestDownloadFromPresignedURL_OK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("%PDF-1.4 fake"))
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := DownloadFromPresignedURL(srv.URL, path); err != nil {
		t.Fatalf("download: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(b) != "%PDF-1.4 fake" {
		t.Fatalf("unexpected content: %q", b)
	}
}

func TestDownloadFromPresignedURL_HTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	path := filepath.Join(t.TempDir(), "invoice.pdf")
	if err := DownloadFromPresignedURL(srv.URL, path); err == nil {
		t.Fatal("expected error for 403 response")
	}
}
