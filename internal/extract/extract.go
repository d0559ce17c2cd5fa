// Package extract turns a fetched job-board page into a structured
// JobPosting. Strategies are tried in a fixed order: an embedded
// schema.org JSON-LD block wins everywhere; per-platform selector
// tables are the fallback. A nil result means "no job detected";
// extraction never surfaces an error.
package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"jobstash/internal/models"
)

// strategy attempts one extraction approach. A nil posting means the
// strategy found nothing and the next one should run.
type strategy func(doc *goquery.Document, platform models.Platform) *models.JobPosting

var strategies = []strategy{
	fromJSONLD,
	fromSelectors,
}

// Extract produces a JobPosting from a parsed page, or nil when no job
// could be detected. The platform is derived from pageURL; the JSON-LD
// path runs even for unrecognized platforms.
func Extract(doc *goquery.Document, pageURL string) *models.JobPosting {
	if doc == nil {
		return nil
	}
	platform := models.DetectPlatform(pageURL)

	for _, s := range strategies {
		posting := s(doc, platform)
		if posting.IsEmpty() {
			continue
		}
		posting.URL = pageURL
		posting.Platform = platform
		posting.Description = truncate(posting.Description, models.DescriptionLimit)
		return posting
	}
	return nil
}

// stripTags reduces an HTML fragment to its text content. Fragments
// that fail to parse fall back to the raw input.
func stripTags(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return strings.TrimSpace(html)
	}
	return strings.TrimSpace(doc.Text())
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
