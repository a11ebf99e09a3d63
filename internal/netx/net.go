// Package netx holds small HTTP helpers that do not belong to the API client.
package netx

import (
	"fmt"
	"io"
	"net/http"
	"os"
)

// DownloadFromPresignedURL fetches the object behind a presigned GET URL and
// writes it to path. Used by the CLI to pull invoice PDF documents from the
// external blob store.
func DownloadFromPresignedURL(url string, path string) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
