package client

import (
	"bytes"
	"context"
	"fmt"
	"net/http"

	"github.com/PuerkitoBio/goquery"
)

// PageFetcher retrieves job-board pages as parsed documents.
type PageFetcher struct {
	httpClient *http.Client
	debug      bool
}

// NewPageFetcher builds a fetcher, optionally routed through proxyURL.
func NewPageFetcher(proxyURL string, debug bool) *PageFetcher {
	return &PageFetcher{
		httpClient: NewHTTPClient(proxyURL),
		debug:      debug,
	}
}

// FetchDocument downloads a single page and parses it. A non-200
// response is an error; callers decide whether that means "no job".
func (f *PageFetcher) FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	for key, values := range BrowserHeaders() {
		req.Header[key] = values
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("received non-200 status code: %d", resp.StatusCode)
	}

	body, err := ReadResponseBody(resp)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %v", err)
	}

	if f.debug {
		fmt.Printf("Fetched %s (%d bytes)\n", pageURL, len(body))
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %v", err)
	}

	return doc, nil
}
