package watch

import (
	"context"
	"log"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobstash/internal/extract"
	"jobstash/internal/models"
)

const (
	defaultPollInterval = 30 * time.Second
	// settleDelay lets a freshly changed page finish rendering before
	// re-extraction, mirroring the debounce on SPA route changes.
	settleDelay = time.Second
)

// Fetcher retrieves a page as a parsed document.
type Fetcher interface {
	FetchDocument(ctx context.Context, pageURL string) (*goquery.Document, error)
}

// Watcher re-extracts a page on an interval and reconciles its session
// whenever the content changes.
type Watcher struct {
	session  *Session
	fetcher  Fetcher
	url      string
	interval time.Duration
	debug    bool

	lastTitle string
}

// NewWatcher builds a watcher for one page URL. interval <= 0 uses the
// default poll interval.
func NewWatcher(session *Session, fetcher Fetcher, pageURL string, interval time.Duration, debug bool) *Watcher {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	return &Watcher{
		session:  session,
		fetcher:  fetcher,
		url:      pageURL,
		interval: interval,
		debug:    debug,
	}
}

// Run polls until the context is cancelled. The first pass runs
// immediately; later passes wait out the interval, then the settle
// delay once a change is seen.
func (w *Watcher) Run(ctx context.Context) error {
	if err := w.pass(ctx, false); err != nil {
		log.Printf("watch %s: %v", w.url, err)
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := w.pass(ctx, true); err != nil {
				log.Printf("watch %s: %v", w.url, err)
			}
		}
	}
}

// pass fetches the page once and reconciles if it looks different from
// the last pass.
func (w *Watcher) pass(ctx context.Context, debounce bool) error {
	doc, err := w.fetcher.FetchDocument(ctx, w.url)
	if err != nil {
		return err
	}

	title := pageTitle(doc)
	if title == w.lastTitle && w.lastTitle != "" {
		return nil // unchanged
	}

	if debounce {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(settleDelay):
		}
		// Refetch after the settle delay so we reconcile the rendered
		// view, not the transitional one.
		doc, err = w.fetcher.FetchDocument(ctx, w.url)
		if err != nil {
			return err
		}
		title = pageTitle(doc)
	}

	w.lastTitle = title
	w.session.Reconcile(doc, w.url, extract.Extract)

	if w.debug {
		if posting := w.session.Posting(); !posting.IsEmpty() {
			log.Printf("watch %s: detected %q at %q [%s]", w.url, posting.Title, posting.Company, posting.Platform)
		} else {
			log.Printf("watch %s: no job detected", w.url)
		}
	}
	return nil
}

func pageTitle(doc *goquery.Document) string {
	return doc.Find("title").First().Text()
}

// SupportedURL reports whether the page belongs to a platform with a
// save trigger.
func SupportedURL(pageURL string) bool {
	return models.DetectPlatform(pageURL) != models.PlatformUnknown
}
