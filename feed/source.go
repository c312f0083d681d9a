package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/theoremus-urban-solutions/telltale/arrivals"
)

// Source produces arrival samples.
type Source interface {
	FetchArrivals(ctx context.Context) ([]arrivals.Sample, error)
}

// FetchError wraps any transport, HTTP or decoding failure of a refresh.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string { return fmt.Sprintf("fetch %s: %v", e.Source, e.Err) }

func (e *FetchError) Unwrap() error { return e.Err }

// fetch reads a URL or local file path. Non-200 responses are errors.
func fetch(ctx context.Context, client *http.Client, urlOrPath string, header http.Header) ([]byte, error) {
	if !strings.HasPrefix(urlOrPath, "http://") && !strings.HasPrefix(urlOrPath, "https://") {
		return os.ReadFile(urlOrPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlOrPath, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", urlOrPath, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, urlOrPath)
	}

	return io.ReadAll(resp.Body)
}
