// pkg/repo/client.go
package repo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/architecture-mechanism/bospm/pkg/core"
)

// webClient handles HTTP requests to website sources
type webClient struct {
	httpClient *http.Client
	userAgent  string
}

// newWebClient creates an HTTP client with the given timeout
func newWebClient(timeout time.Duration) *webClient {
	if timeout <= 0 {
		timeout = core.DefaultTimeout
	}
	return &webClient{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: "bospm/0.1",
	}
}

// Get performs an HTTP GET request
func (c *webClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrNetwork, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: unexpected status %d for %s", core.ErrNetwork, resp.StatusCode, url)
	}

	return resp, nil
}

// GetString fetches a URL and returns the body as a string
func (c *webClient) GetString(ctx context.Context, url string) (string, error) {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", core.ErrNetwork, err)
	}

	return string(body), nil
}

// Download fetches a URL into destPath, writing to a temp file in the
// same directory and renaming into place so partial downloads never
// surface under the final name.
func (c *webClient) Download(ctx context.Context, url, destPath string) error {
	resp, err := c.Get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(destPath), filepath.Base(destPath)+".*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("%w: downloading %s: %v", core.ErrNetwork, url, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), destPath); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("renaming download: %w", err)
	}
	return nil
}
